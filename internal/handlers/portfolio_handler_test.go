package handlers

import (
	"bytes"
	"context"
	"encoding/json"
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

type stubPortfolioStore struct {
	items  map[uuid.UUID]*models.Portfolio
	delErr error
}

func newStubPortfolioStore() *stubPortfolioStore {
	return &stubPortfolioStore{items: map[uuid.UUID]*models.Portfolio{}}
}

func (s *stubPortfolioStore) List(_ context.Context) ([]*models.Portfolio, error) {
	out := []*models.Portfolio{}
	for _, p := range s.items {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubPortfolioStore) GetByID(_ context.Context, id uuid.UUID) (*models.Portfolio, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (s *stubPortfolioStore) Create(_ context.Context, p *models.Portfolio, _ *models.AuditLog) error {
	s.items[p.ID] = p
	return nil
}

func (s *stubPortfolioStore) Update(_ context.Context, p *models.Portfolio, _ *models.AuditLog) error {
	s.items[p.ID] = p
	return nil
}

func (s *stubPortfolioStore) Delete(_ context.Context, id uuid.UUID, _ *models.AuditLog) error {
	if s.delErr != nil {
		return s.delErr
	}
	if _, ok := s.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func portfolioTestRouter(store *stubPortfolioStore, actor models.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequireAuth(middleware.NewStaticResolver(actor)))
	svc := service.NewPortfolioService(store, logger.New())
	NewPortfolioHandler(svc, logger.New()).RegisterRoutes(v1)
	return router
}

func TestPortfolioEndpointsCRUD(t *testing.T) {
	store := newStubPortfolioStore()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleAdmin}
	router := portfolioTestRouter(store, actor)

	// Create
	body := bytes.NewBufferString(`{"name":"Core IT","budget":1000}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolios", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Portfolio
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, actor.ID, created.OwnerID, "owner stamped from actor, not payload")
	require.NotNil(t, created.Budget)
	assert.Equal(t, int64(100000), *created.Budget)

	// List
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/portfolios", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Portfolio
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	// Patch
	patch := bytes.NewBufferString(`{"name":"Renamed"}`)
	req = httptest.NewRequest(http.MethodPut, "/api/v1/portfolios/"+created.ID.String(), patch)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Renamed")

	// Delete
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/portfolios/"+created.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPortfolioCreateValidationError(t *testing.T) {
	router := portfolioTestRouter(newStubPortfolioStore(), models.Actor{ID: uuid.New(), Role: models.RoleAdmin})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolios", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"name"`)
}

func TestPortfolioGetUnknownID(t *testing.T) {
	router := portfolioTestRouter(newStubPortfolioStore(), models.Actor{ID: uuid.New(), Role: models.RoleAdmin})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/portfolios/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/portfolios/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPortfolioDeleteWithChildrenConflicts(t *testing.T) {
	store := newStubPortfolioStore()
	store.delErr = repository.ErrHasChildren
	p := &models.Portfolio{ID: uuid.New(), Name: "Busy"}
	store.items[p.ID] = p
	router := portfolioTestRouter(store, models.Actor{ID: uuid.New(), Role: models.RoleAdmin})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/portfolios/"+p.ID.String(), nil))
	assert.Equal(t, http.StatusConflict, w.Code)
}
