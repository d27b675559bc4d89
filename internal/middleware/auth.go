package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/config"
	"github.com/stratify/stratify/internal/models"
)

// SessionCookieName carries the session token for browser clients; API
// clients send it as a bearer token instead.
const SessionCookieName = "stratify_session"

const actorContextKey = "actor"

// SessionClaims are the JWT claims minted after a successful sign-in.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SessionAuth mints and validates session tokens.
type SessionAuth struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionAuth creates a session token authority from the configured
// signing secret.
func NewSessionAuth(cfg *config.Config) *SessionAuth {
	return &SessionAuth{
		secret: []byte(cfg.JWTSecret),
		ttl:    time.Duration(cfg.SessionTTLMin) * time.Minute,
	}
}

// MintToken issues a signed session token for the actor.
func (a *SessionAuth) MintToken(actor models.Actor) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: actor.ID.String(),
		Email:  actor.Email,
		Name:   actor.Name,
		Role:   string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// TTL returns the configured session lifetime.
func (a *SessionAuth) TTL() time.Duration {
	return a.ttl
}

func (a *SessionAuth) validateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// ActorResolver turns an incoming request into the acting identity. There is
// exactly one implementation per deployment, selected by configuration, so
// dev-mode shortcuts never leak into individual handlers.
type ActorResolver interface {
	Resolve(c *gin.Context) (models.Actor, error)
}

// SessionResolver resolves the actor from a bearer token or session cookie.
type SessionResolver struct {
	auth *SessionAuth
}

// NewSessionResolver creates a session-backed resolver.
func NewSessionResolver(auth *SessionAuth) *SessionResolver {
	return &SessionResolver{auth: auth}
}

// Resolve extracts and validates the session token.
func (r *SessionResolver) Resolve(c *gin.Context) (models.Actor, error) {
	tokenString := ""

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = authHeader[7:]
	} else if cookie, err := c.Cookie(SessionCookieName); err == nil {
		tokenString = cookie
	}

	if tokenString == "" {
		return models.Actor{}, errors.New("no session token")
	}

	claims, err := r.auth.validateToken(tokenString)
	if err != nil {
		return models.Actor{}, fmt.Errorf("invalid session token: %w", err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return models.Actor{}, errors.New("invalid user id in session token")
	}

	return models.Actor{
		ID:    userID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  models.UserRole(claims.Role),
	}, nil
}

// StaticResolver returns a fixed actor for every request. Used in dev mode
// where no identity provider is wired up.
type StaticResolver struct {
	actor models.Actor
}

// NewStaticResolver creates a resolver returning actor unconditionally.
func NewStaticResolver(actor models.Actor) *StaticResolver {
	return &StaticResolver{actor: actor}
}

// Resolve returns the fixed actor.
func (r *StaticResolver) Resolve(_ *gin.Context) (models.Actor, error) {
	return r.actor, nil
}

// DevActor builds the configured dev-mode identity.
func DevActor(cfg *config.Config) (models.Actor, error) {
	id, err := uuid.Parse(cfg.DevActorID)
	if err != nil {
		return models.Actor{}, fmt.Errorf("invalid DEV_ACTOR_ID: %w", err)
	}
	return models.Actor{
		ID:    id,
		Email: cfg.DevActorEmail,
		Name:  cfg.DevActorName,
		Role:  models.UserRole(cfg.DevActorRole),
	}, nil
}

// RequireAuth resolves the actor and aborts with 401 when resolution fails.
func RequireAuth(resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := resolver.Resolve(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the resolved actor holds the admin
// role. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		if actor.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorFrom returns the actor set by RequireAuth.
func ActorFrom(c *gin.Context) (models.Actor, bool) {
	val, exists := c.Get(actorContextKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := val.(models.Actor)
	return actor, ok
}
