package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratify/stratify/internal/logger"
)

func TestDashboardMetricsCounts(t *testing.T) {
	projects := newFakeProjectStore()
	demands := newFakeDemandStore()
	projects.statusCounts["Active"] = 5
	projects.statusCounts["At Risk"] = 2
	demands.statusCounts["Pending"] = 3
	demands.statusCounts["Under Review"] = 4

	svc := NewDashboardService(projects, demands, nil, time.Minute, logger.New())

	m, err := svc.GetMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), m.ActiveProjects)
	assert.Equal(t, int64(7), m.PendingDemands, "pending plus under review")
	assert.Equal(t, int64(2), m.AtRiskProjects)
	assert.Equal(t, 72, m.BudgetUtilized)
}

func TestDashboardMetricsZeroState(t *testing.T) {
	svc := NewDashboardService(newFakeProjectStore(), newFakeDemandStore(), nil, time.Minute, logger.New())

	m, err := svc.GetMetrics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, m.ActiveProjects)
	assert.Zero(t, m.PendingDemands)
	assert.Zero(t, m.AtRiskProjects)
	assert.Equal(t, 72, m.BudgetUtilized, "placeholder survives empty data")
}
