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

type projectFixture struct {
	svc      *ProjectService
	projects *fakeProjectStore
	demands  *fakeDemandStore
	lookups  *fakeLookupStore
	users    *fakeUserStore
	program  *models.Program
}

func newProjectFixture() *projectFixture {
	projects := newFakeProjectStore()
	programs := newFakeProgramStore()
	demands := newFakeDemandStore()
	lookups := newFakeLookupStore()
	users := newFakeUserStore()
	return &projectFixture{
		svc:      NewProjectService(projects, programs, demands, lookups, users, logger.New()),
		projects: projects,
		demands:  demands,
		lookups:  lookups,
		users:    users,
		program:  addProgram(programs),
	}
}

func TestProjectCreateConvertsBudgetToCents(t *testing.T) {
	fx := newProjectFixture()
	budget := int64(500000)

	p, err := fx.svc.Create(context.Background(), testActor(models.RoleProjectManager), &models.CreateProjectInput{
		Title:     "ERP rollout",
		ProgramID: fx.program.ID,
		Budget:    &budget,
	})
	require.NoError(t, err)
	require.NotNil(t, p.Budget)
	assert.Equal(t, int64(50000000), *p.Budget)
}

func TestProjectCreateRejectsUnknownDemand(t *testing.T) {
	fx := newProjectFixture()
	demandID := uuid.New()

	_, err := fx.svc.Create(context.Background(), testActor(models.RoleProjectManager), &models.CreateProjectInput{
		Title:     "From thin air",
		ProgramID: fx.program.ID,
		DemandID:  &demandID,
	})
	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "demandId", verrs.Fields[0].Field)
}

func TestProjectCreateRejectsDemandTypedStatus(t *testing.T) {
	fx := newProjectFixture()
	status := fx.lookups.addStatus(models.LookupDemand, "Pending")

	_, err := fx.svc.Create(context.Background(), testActor(models.RoleProjectManager), &models.CreateProjectInput{
		Title:     "Cross-domain",
		ProgramID: fx.program.ID,
		StatusID:  &status.ID,
	})
	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "statusId", verrs.Fields[0].Field)
}

func TestProjectProgressBounds(t *testing.T) {
	fx := newProjectFixture()
	actor := testActor(models.RoleProjectManager)

	for _, tc := range []struct {
		progress int
		valid    bool
	}{
		{-1, false},
		{0, true},
		{100, true},
		{101, false},
	} {
		in := &models.CreateProjectInput{
			Title:     "Bounds",
			ProgramID: fx.program.ID,
			Progress:  &tc.progress,
		}
		_, err := fx.svc.Create(context.Background(), actor, in)
		if tc.valid {
			assert.NoError(t, err, "progress %d", tc.progress)
		} else {
			var verrs *validation.Errors
			require.ErrorAs(t, err, &verrs, "progress %d", tc.progress)
			assert.Equal(t, "progress", verrs.Fields[0].Field)
		}
	}
}

func TestProjectUpdatePartialPatch(t *testing.T) {
	fx := newProjectFixture()
	actor := testActor(models.RoleProjectManager)

	p, err := fx.svc.Create(context.Background(), actor, &models.CreateProjectInput{
		Title:     "Original title",
		ProgramID: fx.program.ID,
	})
	require.NoError(t, err)

	progress := 40
	updated, err := fx.svc.Update(context.Background(), actor, p.ID, &models.UpdateProjectInput{Progress: &progress})
	require.NoError(t, err)

	assert.Equal(t, "Original title", updated.Title)
	assert.Equal(t, 40, updated.Progress)

	entry := fx.projects.audits[1]
	assert.Equal(t, models.ChangeUpdated, entry.ChangeType)
	var diff map[string]interface{}
	require.NoError(t, json.Unmarshal(entry.Details, &diff))
	assert.Len(t, diff, 1)
	assert.Equal(t, float64(40), diff["progress"])
}

func TestProjectSurvivesDemandDeletion(t *testing.T) {
	fx := newProjectFixture()
	actor := testActor(models.RoleProjectManager)

	d := &models.Demand{ID: uuid.New(), Title: "Seed", ProgramID: fx.program.ID}
	fx.demands.items[d.ID] = d

	p, err := fx.svc.Create(context.Background(), actor, &models.CreateProjectInput{
		Title:     "Realized demand",
		ProgramID: fx.program.ID,
		DemandID:  &d.ID,
	})
	require.NoError(t, err)

	delete(fx.demands.items, d.ID)

	got, err := fx.svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DemandID)
	assert.Equal(t, d.ID, *got.DemandID, "provenance reference kept after demand deletion")
}
