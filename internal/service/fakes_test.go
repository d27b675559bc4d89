package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/repository"
)

// In-memory store fakes. Every mutating call appends its audit entry to
// audits so tests can assert the write/audit pairing.

type fakePortfolioStore struct {
	items  map[uuid.UUID]*models.Portfolio
	audits []*models.AuditLog
	err    error
}

func newFakePortfolioStore() *fakePortfolioStore {
	return &fakePortfolioStore{items: map[uuid.UUID]*models.Portfolio{}}
}

func (f *fakePortfolioStore) List(_ context.Context) ([]*models.Portfolio, error) {
	out := []*models.Portfolio{}
	for _, p := range f.items {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePortfolioStore) GetByID(_ context.Context, id uuid.UUID) (*models.Portfolio, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePortfolioStore) Create(_ context.Context, p *models.Portfolio, entry *models.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.items[p.ID] = p
	f.audits = append(f.audits, entry)
	return nil
}

func (f *fakePortfolioStore) Update(_ context.Context, p *models.Portfolio, entry *models.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.items[p.ID] = p
	f.audits = append(f.audits, entry)
	return nil
}

func (f *fakePortfolioStore) Delete(_ context.Context, id uuid.UUID, entry *models.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	f.audits = append(f.audits, entry)
	return nil
}

type fakeProgramStore struct {
	items  map[uuid.UUID]*models.Program
	audits []*models.AuditLog
}

func newFakeProgramStore() *fakeProgramStore {
	return &fakeProgramStore{items: map[uuid.UUID]*models.Program{}}
}

func (f *fakeProgramStore) List(_ context.Context, portfolioID *uuid.UUID) ([]*models.Program, error) {
	out := []*models.Program{}
	for _, p := range f.items {
		if portfolioID == nil || p.PortfolioID == *portfolioID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProgramStore) GetByID(_ context.Context, id uuid.UUID) (*models.Program, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProgramStore) Create(_ context.Context, p *models.Program, entry *models.AuditLog) error {
	f.items[p.ID] = p
	f.audits = append(f.audits, entry)
	return nil
}

func (f *fakeProgramStore) Update(_ context.Context, p *models.Program, entry *models.AuditLog) error {
	f.items[p.ID] = p
	f.audits = append(f.audits, entry)
	return nil
}

func (f *fakeProgramStore) Delete(_ context.Context, id uuid.UUID, entry *models.AuditLog) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	f.audits = append(f.audits, entry)
	return nil
}

type fakeDemandStore struct {
	items        map[uuid.UUID]*models.Demand
	audits       []*models.AuditLog
	statusCounts map[string]int64
}

func newFakeDemandStore() *fakeDemandStore {
	return &fakeDemandStore{items: map[uuid.UUID]*models.Demand{}, statusCounts: map[string]int64{}}
}

func (f *fakeDemandStore) List(_ context.Context, programID *uuid.UUID) ([]*models.Demand, error) {
	out := []*models.Demand{}
	for _, d := range f.items {
		if programID == nil || d.ProgramID == *programID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDemandStore) GetByID(_ context.Context, id uuid.UUID) (*models.Demand, error) {
	d, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (f *fakeDemandStore) Create(_ context.Context, d *models.Demand, entry *models.AuditLog) error {
	f.items[d.ID] = d
	f.audits = append(f.audits, entry)
	return nil
}

func (f *fakeDemandStore) Update(_ context.Context, d *models.Demand, entry *models.AuditLog) error {
	f.items[d.ID] = d
	f.audits = append(f.audits, entry)
	return nil
}

func (f *fakeDemandStore) Delete(_ context.Context, id uuid.UUID, entry *models.AuditLog) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	f.audits = append(f.audits, entry)
	return nil
}

func (f *fakeDemandStore) CountByStatusNames(_ context.Context, names []string) (int64, error) {
	var n int64
	for _, name := range names {
		n += f.statusCounts[name]
	}
	return n, nil
}

type fakeProjectStore struct {
	items        map[uuid.UUID]*models.Project
	audits       []*models.AuditLog
	statusCounts map[string]int64
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{items: map[uuid.UUID]*models.Project{}, statusCounts: map[string]int64{}}
}

func (f *fakeProjectStore) List(_ context.Context, programID *uuid.UUID) ([]*models.Project, error) {
	out := []*models.Project{}
	for _, p := range f.items {
		if programID == nil || p.ProgramID == *programID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectStore) GetByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProjectStore) Create(_ context.Context, p *models.Project, entry *models.AuditLog) error {
	f.items[p.ID] = p
	f.audits = append(f.audits, entry)
	return nil
}

func (f *fakeProjectStore) Update(_ context.Context, p *models.Project, entry *models.AuditLog) error {
	f.items[p.ID] = p
	f.audits = append(f.audits, entry)
	return nil
}

func (f *fakeProjectStore) Delete(_ context.Context, id uuid.UUID, entry *models.AuditLog) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	f.audits = append(f.audits, entry)
	return nil
}

func (f *fakeProjectStore) CountByStatusNames(_ context.Context, names []string) (int64, error) {
	var n int64
	for _, name := range names {
		n += f.statusCounts[name]
	}
	return n, nil
}

type fakeProductStore struct {
	items  map[uuid.UUID]*models.Product
	audits []*models.AuditLog
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{items: map[uuid.UUID]*models.Product{}}
}

func (f *fakeProductStore) List(_ context.Context, programID *uuid.UUID) ([]*models.Product, error) {
	out := []*models.Product{}
	for _, p := range f.items {
		if programID == nil || p.ProgramID == *programID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductStore) Create(_ context.Context, p *models.Product, entry *models.AuditLog) error {
	f.items[p.ID] = p
	f.audits = append(f.audits, entry)
	return nil
}

func (f *fakeProductStore) Update(_ context.Context, p *models.Product, entry *models.AuditLog) error {
	f.items[p.ID] = p
	f.audits = append(f.audits, entry)
	return nil
}

func (f *fakeProductStore) Delete(_ context.Context, id uuid.UUID, entry *models.AuditLog) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	f.audits = append(f.audits, entry)
	return nil
}

type fakeLookupStore struct {
	phases   map[uuid.UUID]*models.Phase
	statuses map[uuid.UUID]*models.Status
}

func newFakeLookupStore() *fakeLookupStore {
	return &fakeLookupStore{phases: map[uuid.UUID]*models.Phase{}, statuses: map[uuid.UUID]*models.Status{}}
}

func (f *fakeLookupStore) ListPhases(_ context.Context, lookupType models.LookupType) ([]*models.Phase, error) {
	out := []*models.Phase{}
	for _, p := range f.phases {
		if p.Type == lookupType && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeLookupStore) GetPhaseByID(_ context.Context, id uuid.UUID) (*models.Phase, error) {
	p, ok := f.phases[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeLookupStore) CreatePhase(_ context.Context, p *models.Phase, order *int) error {
	if order != nil {
		p.Order = *order
	} else {
		max := 0
		for _, existing := range f.phases {
			if existing.Type == p.Type && existing.Order > max {
				max = existing.Order
			}
		}
		p.Order = max + 1
	}
	f.phases[p.ID] = p
	return nil
}

func (f *fakeLookupStore) SetPhaseActive(_ context.Context, id uuid.UUID, active bool) error {
	p, ok := f.phases[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsActive = active
	return nil
}

func (f *fakeLookupStore) ListStatuses(_ context.Context, lookupType models.LookupType) ([]*models.Status, error) {
	out := []*models.Status{}
	for _, s := range f.statuses {
		if s.Type == lookupType && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeLookupStore) GetStatusByID(_ context.Context, id uuid.UUID) (*models.Status, error) {
	s, ok := f.statuses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeLookupStore) CreateStatus(_ context.Context, s *models.Status) error {
	f.statuses[s.ID] = s
	return nil
}

func (f *fakeLookupStore) SetStatusActive(_ context.Context, id uuid.UUID, active bool) error {
	s, ok := f.statuses[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.IsActive = active
	return nil
}

func (f *fakeLookupStore) addPhase(lookupType models.LookupType, name string, active bool) *models.Phase {
	p := &models.Phase{ID: uuid.New(), Name: name, Type: lookupType, IsActive: active}
	f.phases[p.ID] = p
	return p
}

func (f *fakeLookupStore) addStatus(lookupType models.LookupType, name string) *models.Status {
	s := &models.Status{ID: uuid.New(), Name: name, Type: lookupType, Color: models.DefaultStatusColor, IsActive: true}
	f.statuses[s.ID] = s
	return s
}

type fakeUserStore struct {
	items       map[uuid.UUID]*models.User
	audits      []*models.AuditLog
	searchCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{items: map[uuid.UUID]*models.User{}}
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Upsert(_ context.Context, u *models.User) (*models.User, error) {
	if existing, ok := f.items[u.ID]; ok {
		existing.Email = u.Email
		existing.FirstName = u.FirstName
		existing.LastName = u.LastName
		existing.ProfileImageURL = u.ProfileImageURL
		return existing, nil
	}
	f.items[u.ID] = u
	return u, nil
}

func (f *fakeUserStore) Search(_ context.Context, q string, limit int) ([]*models.User, error) {
	f.searchCalls++
	out := []*models.User{}
	for _, u := range f.items {
		out = append(out, u)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id uuid.UUID, role models.UserRole, entry *models.AuditLog) (*models.User, error) {
	u, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Role = role
	f.audits = append(f.audits, entry)
	return u, nil
}

type fakeRelationStore struct {
	links       map[uuid.UUID]*models.ProjectProduct
	assignments map[uuid.UUID]*models.Assignment
}

func newFakeRelationStore() *fakeRelationStore {
	return &fakeRelationStore{
		links:       map[uuid.UUID]*models.ProjectProduct{},
		assignments: map[uuid.UUID]*models.Assignment{},
	}
}

func (f *fakeRelationStore) ListProjectProducts(_ context.Context, filters repository.ProjectProductFilters) ([]*models.ProjectProduct, error) {
	out := []*models.ProjectProduct{}
	for _, l := range f.links {
		if filters.ProjectID != nil && l.ProjectID != *filters.ProjectID {
			continue
		}
		if filters.ProductID != nil && l.ProductID != *filters.ProductID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeRelationStore) CreateProjectProduct(_ context.Context, link *models.ProjectProduct) error {
	for _, l := range f.links {
		if l.ProjectID == link.ProjectID && l.ProductID == link.ProductID {
			return repository.ErrDuplicate
		}
	}
	f.links[link.ID] = link
	return nil
}

func (f *fakeRelationStore) DeleteProjectProduct(_ context.Context, id uuid.UUID) error {
	if _, ok := f.links[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.links, id)
	return nil
}

func (f *fakeRelationStore) ListAssignments(_ context.Context, projectID *uuid.UUID) ([]*models.Assignment, error) {
	out := []*models.Assignment{}
	for _, a := range f.assignments {
		if projectID == nil || a.ProjectID == *projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRelationStore) CreateAssignment(_ context.Context, a *models.Assignment) error {
	f.assignments[a.ID] = a
	return nil
}

func (f *fakeRelationStore) DeleteAssignment(_ context.Context, id uuid.UUID) error {
	if _, ok := f.assignments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.assignments, id)
	return nil
}

// Shared test fixtures.

func testActor(role models.UserRole) models.Actor {
	return models.Actor{ID: uuid.New(), Email: "actor@example.com", Name: "Test Actor", Role: role}
}

func addProgram(programs *fakeProgramStore) *models.Program {
	p := &models.Program{ID: uuid.New(), Name: "Modernization", PortfolioID: uuid.New(), Status: models.InvestmentActive}
	programs.items[p.ID] = p
	return p
}
