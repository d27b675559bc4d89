package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stratify/stratify/internal/auth"
	"github.com/stratify/stratify/internal/cache"
	"github.com/stratify/stratify/internal/config"
	"github.com/stratify/stratify/internal/handlers"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/middleware"
	"github.com/stratify/stratify/internal/repository"
	"github.com/stratify/stratify/internal/service"
)

// Server wires the repositories, services and handlers behind a gin engine.
type Server struct {
	config *config.Config
	db     *sql.DB
	router *gin.Engine
	logger *logger.Logger

	portfolioService *service.PortfolioService
	programService   *service.ProgramService
	demandService    *service.DemandService
	projectService   *service.ProjectService
	productService   *service.ProductService
	lookupService    *service.LookupService
	userService      *service.UserService
	auditService     *service.AuditService
	dashboardService *service.DashboardService
	relationService  *service.RelationService

	sessions *middleware.SessionAuth
	oidc     *auth.OIDCService
	resolver middleware.ActorResolver
}

// NewServer builds a fully wired server. In oidc auth mode the OIDC provider
// is contacted during construction to fetch its discovery document.
func NewServer(cfg *config.Config, db *sql.DB, appCache *cache.Cache, log *logger.Logger) (*Server, error) {
	portfolioRepo := repository.NewPortfolioRepository(db)
	programRepo := repository.NewProgramRepository(db)
	demandRepo := repository.NewDemandRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	productRepo := repository.NewProductRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	relationRepo := repository.NewRelationRepository(db)

	s := &Server{
		config: cfg,
		db:     db,
		logger: log,

		portfolioService: service.NewPortfolioService(portfolioRepo, log),
		programService:   service.NewProgramService(programRepo, portfolioRepo, log),
		demandService:    service.NewDemandService(demandRepo, programRepo, lookupRepo, log),
		projectService:   service.NewProjectService(projectRepo, programRepo, demandRepo, lookupRepo, userRepo, log),
		productService:   service.NewProductService(productRepo, programRepo, log),
		lookupService:    service.NewLookupService(lookupRepo, log),
		userService:      service.NewUserService(userRepo, log),
		auditService:     service.NewAuditService(auditRepo, log),
		relationService:  service.NewRelationService(relationRepo, projectRepo, productRepo, userRepo, log),

		sessions: middleware.NewSessionAuth(cfg),
	}

	metricsTTL := time.Duration(cfg.MetricsCacheTTLSeconds) * time.Second
	s.dashboardService = service.NewDashboardService(projectRepo, demandRepo, appCache, metricsTTL, log)

	switch cfg.AuthMode {
	case config.AuthModeDev:
		actor, err := middleware.DevActor(cfg)
		if err != nil {
			return nil, fmt.Errorf("invalid dev actor config: %w", err)
		}
		s.resolver = middleware.NewStaticResolver(actor)
	case config.AuthModeOIDC:
		oidcService, err := auth.NewOIDCService(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("oidc setup: %w", err)
		}
		s.oidc = oidcService
		s.resolver = middleware.NewSessionResolver(s.sessions)
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}

	s.router = s.setupRouter()
	return s, nil
}

func (s *Server) setupRouter() *gin.Engine {
	if !s.config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if s.config.IsDevelopment() {
		router.Use(gin.Logger())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", s.healthCheck)

	authHandler := handlers.NewAuthHandler(s.oidc, s.userService, s.sessions, s.config, s.logger)
	authHandler.RegisterRoutes(router.Group(""), s.resolver)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequireAuth(s.resolver))
	{
		handlers.NewPortfolioHandler(s.portfolioService, s.logger).RegisterRoutes(v1)
		handlers.NewProgramHandler(s.programService, s.logger).RegisterRoutes(v1)
		handlers.NewDemandHandler(s.demandService, s.logger).RegisterRoutes(v1)
		handlers.NewProjectHandler(s.projectService, s.relationService, s.logger).RegisterRoutes(v1)
		handlers.NewProductHandler(s.productService, s.logger).RegisterRoutes(v1)
		handlers.NewLookupHandler(s.lookupService, s.logger).RegisterRoutes(v1)
		handlers.NewUserHandler(s.userService, s.logger).RegisterRoutes(v1, middleware.RequireAdmin())
		handlers.NewAuditHandler(s.auditService, s.logger).RegisterRoutes(v1)
		handlers.NewDashboardHandler(s.dashboardService, s.logger).RegisterRoutes(v1)
		handlers.NewRelationHandler(s.relationService, s.logger).RegisterRoutes(v1)
	}

	return router
}

func (s *Server) healthCheck(c *gin.Context) {
	if err := s.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server on the configured port.
func (s *Server) Start() error {
	addr := ":" + s.config.Port
	s.logger.Info("starting server on " + addr)
	return s.router.Run(addr)
}
