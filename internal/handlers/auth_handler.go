package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/auth"
	"github.com/stratify/stratify/internal/config"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/middleware"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/service"
)

const stateCookieName = "oauth_state"

// AuthHandler handles the OIDC login flow and session endpoints. In dev
// auth mode the login and callback routes are not registered; the static
// resolver supplies the actor instead.
type AuthHandler struct {
	oidc     *auth.OIDCService
	users    *service.UserService
	sessions *middleware.SessionAuth
	cfg      *config.Config
	logger   *logger.Logger
}

func NewAuthHandler(oidc *auth.OIDCService, users *service.UserService, sessions *middleware.SessionAuth, cfg *config.Config, log *logger.Logger) *AuthHandler {
	return &AuthHandler{oidc: oidc, users: users, sessions: sessions, cfg: cfg, logger: log}
}

// RegisterRoutes registers the auth routes on the root engine group.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, resolver middleware.ActorResolver) {
	authGroup := rg.Group("/auth")
	{
		if h.oidc != nil {
			authGroup.GET("/login", h.Login)
			authGroup.GET("/callback", h.Callback)
		}
		authGroup.GET("/user", middleware.RequireAuth(resolver), h.CurrentUser)
		authGroup.POST("/logout", h.Logout)
	}
}

// Login starts the OIDC authorization code flow.
// GET /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	state, err := h.oidc.GenerateState()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	secure := h.cfg.Environment == "production"
	c.SetCookie(stateCookieName, state, 300, "/", "", secure, true)
	c.Redirect(http.StatusFound, h.oidc.AuthCodeURL(state))
}

// Callback completes the OIDC flow: verifies state, exchanges the code,
// upserts the user record and mints a session cookie.
// GET /auth/callback
func (h *AuthHandler) Callback(c *gin.Context) {
	wantState, err := c.Cookie(stateCookieName)
	if err != nil || wantState == "" || c.Query("state") != wantState {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	token, err := h.oidc.Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("token exchange failed", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
		return
	}

	claims, err := h.oidc.VerifyIDToken(c.Request.Context(), token)
	if err != nil {
		h.logger.Error("id token verification failed", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		// Providers with non-uuid subjects get a stable derived id.
		userID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(claims.Subject))
	}

	user, err := h.users.Upsert(c.Request.Context(), &models.UpsertUserInput{
		ID:              userID,
		Email:           &claims.Email,
		FirstName:       &claims.GivenName,
		LastName:        &claims.FamilyName,
		ProfileImageURL: &claims.Picture,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	sessionToken, err := h.sessions.MintToken(models.Actor{
		ID:    user.ID,
		Email: email,
		Name:  user.DisplayName(),
		Role:  user.Role,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	secure := h.cfg.Environment == "production"
	c.SetCookie(middleware.SessionCookieName, sessionToken, int(h.sessions.TTL().Seconds()), "/", "", secure, true)
	c.Redirect(http.StatusFound, "/")
}

// CurrentUser returns the authenticated actor and its stored user record.
// GET /auth/user
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	user, err := h.users.Get(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout clears the session cookie.
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}
