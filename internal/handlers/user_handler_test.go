package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/middleware"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/repository"
	"github.com/stratify/stratify/internal/service"
)

type stubUserStore struct {
	items map[uuid.UUID]*models.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{items: map[uuid.UUID]*models.User{}}
}

func (s *stubUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (s *stubUserStore) Upsert(_ context.Context, u *models.User) (*models.User, error) {
	s.items[u.ID] = u
	return u, nil
}

func (s *stubUserStore) Search(_ context.Context, _ string, limit int) ([]*models.User, error) {
	out := []*models.User{}
	for _, u := range s.items {
		out = append(out, u)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubUserStore) UpdateRole(_ context.Context, id uuid.UUID, role models.UserRole, _ *models.AuditLog) (*models.User, error) {
	u, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Role = role
	return u, nil
}

func userTestRouter(store *stubUserStore, actor models.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequireAuth(middleware.NewStaticResolver(actor)))
	svc := service.NewUserService(store, logger.New())
	NewUserHandler(svc, logger.New()).RegisterRoutes(v1, middleware.RequireAdmin())
	return router
}

func TestUpdateRoleAdminGate(t *testing.T) {
	store := newStubUserStore()
	target := &models.User{ID: uuid.New(), Role: models.RoleContributor}
	store.items[target.ID] = target

	patch := `{"role":"project_manager"}`
	url := "/api/v1/users/" + target.ID.String() + "/role"

	// Non-admin actor is rejected by the route middleware.
	router := userTestRouter(store, models.Actor{ID: uuid.New(), Role: models.RoleContributor})
	req := httptest.NewRequest(http.MethodPut, url, bytes.NewBufferString(patch))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, models.RoleContributor, target.Role)

	// Admin succeeds.
	router = userTestRouter(store, models.Actor{ID: uuid.New(), Role: models.RoleAdmin})
	req = httptest.NewRequest(http.MethodPut, url, bytes.NewBufferString(patch))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleProjectManager, target.Role)
}

func TestUserSearchEmptyQuery(t *testing.T) {
	store := newStubUserStore()
	store.items[uuid.New()] = &models.User{ID: uuid.New(), Role: models.RoleContributor}
	router := userTestRouter(store, models.Actor{ID: uuid.New(), Role: models.RoleContributor})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/search", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
