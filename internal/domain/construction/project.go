package construction

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smbc/backend/internal/domain/shared"
)

// ProjectStatus represents the state of a construction contract
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusOngoing    ProjectStatus = "ongoing"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusTerminated ProjectStatus = "terminated"
)

// AcceptsExpenses reports whether new expense lines may be recorded
func (s ProjectStatus) AcceptsExpenses() bool {
	return s == ProjectStatusPlanning || s == ProjectStatusOngoing
}

// Project is a construction contract that expense lines are booked against
type Project struct {
	shared.BaseEntity
	ContractorName  string
	ProjectName     string
	ProjectSite     string
	NoticeToProceed *time.Time
	CompletionDate  *time.Time
	DurationDays    int
	ContractPrice   decimal.Decimal
	Status          ProjectStatus
}

// NewProject creates a project in planning
func NewProject(contractor, name string, durationDays int, price decimal.Decimal) (*Project, error) {
	if strings.TrimSpace(contractor) == "" || strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("contractor and project name are required")
	}
	if durationDays <= 0 {
		return nil, shared.NewValidationError("contract duration must be positive")
	}
	if price.IsNegative() {
		return nil, shared.NewValidationError("contract price cannot be negative")
	}
	return &Project{
		BaseEntity:     shared.NewBaseEntity(),
		ContractorName: strings.TrimSpace(contractor),
		ProjectName:    strings.TrimSpace(name),
		DurationDays:   durationDays,
		ContractPrice:  price,
		Status:         ProjectStatusPlanning,
	}, nil
}

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	// FindByID finds a project by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// FindAll lists every project ordered by name
	FindAll(ctx context.Context) ([]Project, error)

	// Save creates or updates a project
	Save(ctx context.Context, p *Project) error
}
