package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/validation"
)

type demandFixture struct {
	svc     *DemandService
	demands *fakeDemandStore
	lookups *fakeLookupStore
	program *models.Program
}

func newDemandFixture() *demandFixture {
	demands := newFakeDemandStore()
	programs := newFakeProgramStore()
	lookups := newFakeLookupStore()
	return &demandFixture{
		svc:     NewDemandService(demands, programs, lookups, logger.New()),
		demands: demands,
		lookups: lookups,
		program: addProgram(programs),
	}
}

func TestDemandCreateDefaults(t *testing.T) {
	fx := newDemandFixture()
	actor := testActor(models.RoleContributor)

	d, err := fx.svc.Create(context.Background(), actor, &models.CreateDemandInput{
		Title:     "Customer portal revamp",
		ProgramID: fx.program.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PriorityMedium, d.Priority)
	assert.Equal(t, actor.ID, d.OwnerID)
	assert.False(t, d.RequestedDate.IsZero())
	require.Len(t, fx.demands.audits, 1)
	assert.Equal(t, models.EntityDemand, fx.demands.audits[0].EntityType)
}

func TestDemandCreateRejectsUnknownProgram(t *testing.T) {
	fx := newDemandFixture()

	_, err := fx.svc.Create(context.Background(), testActor(models.RoleContributor), &models.CreateDemandInput{
		Title:     "Orphan",
		ProgramID: uuid.New(),
	})
	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "programId", verrs.Fields[0].Field)
}

func TestDemandCreateRejectsProjectTypedPhase(t *testing.T) {
	fx := newDemandFixture()
	phase := fx.lookups.addPhase(models.LookupProject, "Execution", true)

	_, err := fx.svc.Create(context.Background(), testActor(models.RoleContributor), &models.CreateDemandInput{
		Title:     "Wrong domain",
		ProgramID: fx.program.ID,
		PhaseID:   &phase.ID,
	})
	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "phaseId", verrs.Fields[0].Field)
}

func TestDemandCreateRejectsInvalidPriority(t *testing.T) {
	fx := newDemandFixture()
	bad := models.Priority("urgent")

	_, err := fx.svc.Create(context.Background(), testActor(models.RoleContributor), &models.CreateDemandInput{
		Title:     "Prioritized",
		ProgramID: fx.program.ID,
		Priority:  &bad,
	})
	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "priority", verrs.Fields[0].Field)
}

func TestDemandCreateAcceptsInactivePhase(t *testing.T) {
	// A disabled phase stays resolvable; only pick lists hide it.
	fx := newDemandFixture()
	phase := fx.lookups.addPhase(models.LookupDemand, "Qualification", false)

	d, err := fx.svc.Create(context.Background(), testActor(models.RoleContributor), &models.CreateDemandInput{
		Title:     "Revived flow",
		ProgramID: fx.program.ID,
		PhaseID:   &phase.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, phase.ID, *d.PhaseID)
}

func TestDemandUpdateStatusTagsStatusChanged(t *testing.T) {
	fx := newDemandFixture()
	actor := testActor(models.RoleContributor)
	status := fx.lookups.addStatus(models.LookupDemand, "Approved")

	d, err := fx.svc.Create(context.Background(), actor, &models.CreateDemandInput{
		Title:     "Approval path",
		ProgramID: fx.program.ID,
	})
	require.NoError(t, err)

	_, err = fx.svc.Update(context.Background(), actor, d.ID, &models.UpdateDemandInput{StatusID: &status.ID})
	require.NoError(t, err)

	require.Len(t, fx.demands.audits, 2)
	entry := fx.demands.audits[1]
	assert.Equal(t, models.ChangeStatusChanged, entry.ChangeType)

	var diff map[string]interface{}
	require.NoError(t, json.Unmarshal(entry.Details, &diff))
	assert.Equal(t, status.ID.String(), diff["statusId"])
}

func TestDemandUpdateWithoutStatusStaysUpdated(t *testing.T) {
	fx := newDemandFixture()
	actor := testActor(models.RoleContributor)

	d, err := fx.svc.Create(context.Background(), actor, &models.CreateDemandInput{
		Title:     "Plain edit",
		ProgramID: fx.program.ID,
	})
	require.NoError(t, err)

	title := "Renamed"
	updated, err := fx.svc.Update(context.Background(), actor, d.ID, &models.UpdateDemandInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, models.ChangeUpdated, fx.demands.audits[1].ChangeType)
}
