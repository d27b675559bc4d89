package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratify/stratify/internal/models"
)

func fieldNames(err error) []string {
	verrs, ok := err.(*Errors)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(verrs.Fields))
	for _, f := range verrs.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestValidateCreatePortfolio(t *testing.T) {
	tests := []struct {
		name   string
		in     models.CreatePortfolioInput
		fields []string
	}{
		{"valid", models.CreatePortfolioInput{Name: "Core IT"}, nil},
		{"missing name", models.CreatePortfolioInput{}, []string{"name"}},
		{"name too long", models.CreatePortfolioInput{Name: strings.Repeat("a", 256)}, []string{"name"}},
		{"negative budget", models.CreatePortfolioInput{Name: "x", Budget: ptrInt64(-1)}, []string{"budget"}},
		{"bad status", models.CreatePortfolioInput{Name: "x", Status: ptrStatus("archived")}, []string{"status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreatePortfolio(&tt.in)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.fields, fieldNames(err))
		})
	}
}

func TestValidateUpdatePortfolioSkipsAbsentFields(t *testing.T) {
	assert.NoError(t, ValidateUpdatePortfolio(&models.UpdatePortfolioInput{}))

	empty := ""
	err := ValidateUpdatePortfolio(&models.UpdatePortfolioInput{Name: &empty})
	require.Error(t, err)
	assert.Equal(t, []string{"name"}, fieldNames(err))
}

func TestValidateCreateProgramRequiresPortfolio(t *testing.T) {
	err := ValidateCreateProgram(&models.CreateProgramInput{Name: "Growth"})
	require.Error(t, err)
	assert.Equal(t, []string{"portfolioId"}, fieldNames(err))
}

func TestValidateCreateDemandPriority(t *testing.T) {
	good := models.PriorityHigh
	assert.NoError(t, ValidateCreateDemand(&models.CreateDemandInput{
		Title:     "t",
		ProgramID: uuid.New(),
		Priority:  &good,
	}))

	bad := models.Priority("urgent")
	err := ValidateCreateDemand(&models.CreateDemandInput{
		Title:     "t",
		ProgramID: uuid.New(),
		Priority:  &bad,
	})
	require.Error(t, err)
	assert.Equal(t, []string{"priority"}, fieldNames(err))
}

func TestValidateProjectProgress(t *testing.T) {
	for progress, valid := range map[int]bool{-1: false, 0: true, 50: true, 100: true, 101: false} {
		p := progress
		err := ValidateCreateProject(&models.CreateProjectInput{
			Title:     "t",
			ProgramID: uuid.New(),
			Progress:  &p,
		})
		if valid {
			assert.NoError(t, err, "progress %d", progress)
		} else {
			require.Error(t, err, "progress %d", progress)
			assert.Equal(t, []string{"progress"}, fieldNames(err))
		}
	}
}

func TestValidateProjectDateRange(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)

	err := ValidateCreateProject(&models.CreateProjectInput{
		Title:     "t",
		ProgramID: uuid.New(),
		StartDate: &start,
		EndDate:   &end,
	})
	require.Error(t, err)
	assert.Equal(t, []string{"endDate"}, fieldNames(err))
}

func TestValidateCreateProductStatus(t *testing.T) {
	bad := models.ProductStatus("retired")
	err := ValidateCreateProduct(&models.CreateProductInput{
		Name:      "App",
		ProgramID: uuid.New(),
		Status:    &bad,
	})
	require.Error(t, err)
	assert.Equal(t, []string{"status"}, fieldNames(err))
}

func TestErrorsErrNilWhenEmpty(t *testing.T) {
	errs := &Errors{}
	assert.NoError(t, errs.Err())

	errs.Add("f", "broken")
	assert.Error(t, errs.Err())
	assert.Contains(t, errs.Error(), "f: broken")
}

func ptrInt64(v int64) *int64 { return &v }

func ptrStatus(s models.InvestmentStatus) *models.InvestmentStatus { return &s }
