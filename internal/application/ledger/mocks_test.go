package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smbc/backend/internal/domain/construction"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/stretchr/testify/mock"
)

// MockInvoiceSequence is a mock implementation of ledger.InvoiceSequence
type MockInvoiceSequence struct {
	mock.Mock
}

func (m *MockInvoiceSequence) Next(ctx context.Context, day time.Time) (ledger.InvoiceNumber, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(ledger.InvoiceNumber), args.Error(1)
}

func (m *MockInvoiceSequence) Peek(ctx context.Context, day time.Time) (ledger.InvoiceNumber, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(ledger.InvoiceNumber), args.Error(1)
}

// MockEntryRepository is a mock implementation of ledger.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) Find(ctx context.Context, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) SaveBatch(ctx context.Context, entries []*ledger.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockEntryRepository) Save(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEntryRepository) FindByRef(ctx context.Context, refID uuid.UUID, category ledger.Category) ([]ledger.Entry, error) {
	args := m.Called(ctx, refID, category)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) AvailableMonths(ctx context.Context, venture ledger.Venture) ([]ledger.YearMonth, error) {
	args := m.Called(ctx, venture)
	return args.Get(0).([]ledger.YearMonth), args.Error(1)
}

// MockWageRepository is a mock implementation of ledger.WageRepository
type MockWageRepository struct {
	mock.Mock
}

func (m *MockWageRepository) SaveBatch(ctx context.Context, lines []*ledger.WageLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockWageRepository) FindByMonth(ctx context.Context, venture ledger.Venture, year int, month time.Month) ([]ledger.WageLine, error) {
	args := m.Called(ctx, venture, year, month)
	return args.Get(0).([]ledger.WageLine), args.Error(1)
}

// MockProjectRepository is a mock implementation of construction.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*construction.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*construction.Project), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, p *construction.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) FindAll(ctx context.Context) ([]construction.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]construction.Project), args.Error(1)
}

// MockActivityRepository is a mock implementation of construction.ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (*construction.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*construction.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]construction.Activity, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]construction.Activity), args.Error(1)
}

func (m *MockActivityRepository) SaveBatch(ctx context.Context, activities []*construction.Activity) error {
	args := m.Called(ctx, activities)
	return args.Error(0)
}

func (m *MockActivityRepository) Save(ctx context.Context, a *construction.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
