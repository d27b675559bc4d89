package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratify/stratify/internal/config"
	"github.com/stratify/stratify/internal/models"
)

func testSessionAuth() *SessionAuth {
	return NewSessionAuth(&config.Config{JWTSecret: "test-secret", SessionTTLMin: 60})
}

func testRouter(resolver ActorResolver, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{RequireAuth(resolver)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		actor, _ := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID.String(), "role": actor.Role})
	})
	r.GET("/probe", chain...)
	return r
}

func TestSessionTokenRoundTrip(t *testing.T) {
	auth := testSessionAuth()
	actor := models.Actor{ID: uuid.New(), Email: "a@example.com", Name: "A", Role: models.RoleProgramManager}

	token, err := auth.MintToken(actor)
	require.NoError(t, err)

	claims, err := auth.validateToken(token)
	require.NoError(t, err)
	assert.Equal(t, actor.ID.String(), claims.UserID)
	assert.Equal(t, string(models.RoleProgramManager), claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := testSessionAuth().MintToken(models.Actor{ID: uuid.New()})
	require.NoError(t, err)

	other := NewSessionAuth(&config.Config{JWTSecret: "different", SessionTTLMin: 60})
	_, err = other.validateToken(token)
	assert.Error(t, err)
}

func TestRequireAuthBearerHeader(t *testing.T) {
	auth := testSessionAuth()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleContributor}
	token, err := auth.MintToken(actor)
	require.NoError(t, err)

	router := testRouter(NewSessionResolver(auth))

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), actor.ID.String())
}

func TestRequireAuthSessionCookie(t *testing.T) {
	auth := testSessionAuth()
	token, err := auth.MintToken(models.Actor{ID: uuid.New(), Role: models.RoleContributor})
	require.NoError(t, err)

	router := testRouter(NewSessionResolver(auth))

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthMissingToken(t *testing.T) {
	router := testRouter(NewSessionResolver(testSessionAuth()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	contributor := models.Actor{ID: uuid.New(), Role: models.RoleContributor}
	admin := models.Actor{ID: uuid.New(), Role: models.RoleAdmin}

	w := httptest.NewRecorder()
	testRouter(NewStaticResolver(contributor), RequireAdmin()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	testRouter(NewStaticResolver(admin), RequireAdmin()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDevActorParsesConfig(t *testing.T) {
	cfg := &config.Config{
		DevActorID:    "00000000-0000-0000-0000-000000000001",
		DevActorEmail: "dev@stratify.local",
		DevActorName:  "Dev User",
		DevActorRole:  "admin",
	}
	actor, err := DevActor(cfg)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, actor.Role)

	cfg.DevActorID = "not-a-uuid"
	_, err = DevActor(cfg)
	assert.Error(t, err)
}
