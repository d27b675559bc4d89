package service

import (
	"context"
	"time"

	"github.com/stratify/stratify/internal/cache"
	"github.com/stratify/stratify/internal/logger"
)

// budgetUtilizedPlaceholder stands in until spend tracking exists; the field
// must stay an integer percentage for API compatibility.
const budgetUtilizedPlaceholder = 72

const metricsCacheKey = "dashboard:metrics"

// Metrics is the dashboard aggregation payload.
type Metrics struct {
	ActiveProjects int64 `json:"activeProjects"`
	PendingDemands int64 `json:"pendingDemands"`
	AtRiskProjects int64 `json:"atRiskProjects"`
	BudgetUtilized int   `json:"budgetUtilized"`
}

// DashboardService computes portfolio health counts by joining entities to
// their status lookup rows. The redis cache is a read-through accelerator;
// the database remains authoritative.
type DashboardService struct {
	projects ProjectStore
	demands  DemandStore
	cache    *cache.Cache
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewDashboardService creates a new dashboard service. cache may be nil.
func NewDashboardService(projects ProjectStore, demands DemandStore, c *cache.Cache, cacheTTL time.Duration, log *logger.Logger) *DashboardService {
	return &DashboardService{
		projects: projects,
		demands:  demands,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

// GetMetrics returns the dashboard counts, serving from cache when a fresh
// copy exists.
func (s *DashboardService) GetMetrics(ctx context.Context) (*Metrics, error) {
	var cached Metrics
	if err := s.cache.Get(ctx, metricsCacheKey, &cached); err == nil {
		return &cached, nil
	} else if !cache.Missed(err) {
		s.logger.Error("dashboard cache read failed", err)
	}

	active, err := s.projects.CountByStatusNames(ctx, []string{"Active"})
	if err != nil {
		return nil, err
	}
	pending, err := s.demands.CountByStatusNames(ctx, []string{"Pending", "Under Review"})
	if err != nil {
		return nil, err
	}
	atRisk, err := s.projects.CountByStatusNames(ctx, []string{"At Risk"})
	if err != nil {
		return nil, err
	}

	metrics := &Metrics{
		ActiveProjects: active,
		PendingDemands: pending,
		AtRiskProjects: atRisk,
		BudgetUtilized: budgetUtilizedPlaceholder,
	}

	if err := s.cache.Set(ctx, metricsCacheKey, metrics, s.cacheTTL); err != nil {
		s.logger.Error("dashboard cache write failed", err)
	}
	return metrics, nil
}
