package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/validation"
)

func TestListPhasesRejectsUnknownType(t *testing.T) {
	svc := NewLookupService(newFakeLookupStore(), logger.New())

	_, err := svc.ListPhases(context.Background(), models.LookupType("epic"))
	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "type", verrs.Fields[0].Field)
}

func TestListPhasesHidesInactive(t *testing.T) {
	store := newFakeLookupStore()
	store.addPhase(models.LookupDemand, "Intake", true)
	retired := store.addPhase(models.LookupDemand, "Triage", false)
	svc := NewLookupService(store, logger.New())

	phases, err := svc.ListPhases(context.Background(), models.LookupDemand)
	require.NoError(t, err)
	require.Len(t, phases, 1)
	assert.Equal(t, "Intake", phases[0].Name)

	// The retired phase still resolves by id.
	got, err := svc.GetPhase(context.Background(), retired.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestCreateStatusDefaultsColor(t *testing.T) {
	svc := NewLookupService(newFakeLookupStore(), logger.New())

	st, err := svc.CreateStatus(context.Background(), &models.CreateStatusInput{
		Name: "Blocked",
		Type: models.LookupProject,
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultStatusColor, st.Color)
	assert.True(t, st.IsActive)
}

func TestCreatePhaseOrderAssignment(t *testing.T) {
	store := newFakeLookupStore()
	store.addPhase(models.LookupDemand, "Intake", true).Order = 3
	svc := NewLookupService(store, logger.New())

	// Omitted order continues the sequence within the type.
	next, err := svc.CreatePhase(context.Background(), &models.CreatePhaseInput{
		Name: "Qualification",
		Type: models.LookupDemand,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, next.Order)

	// An explicit zero is kept, not treated as omitted.
	zero := 0
	pinned, err := svc.CreatePhase(context.Background(), &models.CreatePhaseInput{
		Name:  "Backlog",
		Type:  models.LookupDemand,
		Order: &zero,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, pinned.Order)
}

func TestCreatePhaseRequiresNameAndType(t *testing.T) {
	svc := NewLookupService(newFakeLookupStore(), logger.New())

	_, err := svc.CreatePhase(context.Background(), &models.CreatePhaseInput{})
	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs.Fields, 2)
}

func TestSetPhaseActiveToggle(t *testing.T) {
	store := newFakeLookupStore()
	phase := store.addPhase(models.LookupProject, "Closure", true)
	svc := NewLookupService(store, logger.New())

	require.NoError(t, svc.SetPhaseActive(context.Background(), phase.ID, false))
	got, err := svc.GetPhase(context.Background(), phase.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}
