package construction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smbc/backend/internal/domain/shared"
)

// DefaultActivityStatus is given to activities recorded without a status
const DefaultActivityStatus = "Pending"

const (
	maxActivityLength = 255
	maxStatusLength   = 30
)

// activityLayouts are the accepted activity timestamp forms, most precise first
var activityLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04", shared.DateLayout}

// Activity is a dated site log line of a project. It carries no amount and
// takes no invoice number.
type Activity struct {
	shared.BaseEntity
	ProjectID   uuid.UUID
	Description string
	At          time.Time
	Status      string
	CreatedBy   *uuid.UUID
}

// NewActivity creates a validated activity
func NewActivity(projectID uuid.UUID, description string, at time.Time, status string) (*Activity, error) {
	if projectID == uuid.Nil {
		return nil, shared.NewValidationError("project is required")
	}
	a := &Activity{BaseEntity: shared.NewBaseEntity(), ProjectID: projectID}
	if err := a.set(description, at, status); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces the text, time and status of the activity
func (a *Activity) Update(description string, at time.Time, status string) error {
	if err := a.set(description, at, status); err != nil {
		return err
	}
	a.UpdatedAt = time.Now()
	return nil
}

func (a *Activity) set(description string, at time.Time, status string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return shared.NewValidationError("activity is required")
	}
	if len(description) > maxActivityLength {
		return shared.NewValidationError(fmt.Sprintf("activity cannot exceed %d characters", maxActivityLength))
	}
	if at.IsZero() {
		return shared.NewValidationError("activity date is required")
	}
	status = strings.TrimSpace(status)
	if status == "" {
		status = DefaultActivityStatus
	}
	if len(status) > maxStatusLength {
		return shared.NewValidationError(fmt.Sprintf("activity status cannot exceed %d characters", maxStatusLength))
	}
	a.Description = description
	a.At = at.Truncate(time.Second)
	a.Status = status
	return nil
}

// ParseActivityTime parses YYYY-MM-DD, YYYY-MM-DDTHH:MM or
// YYYY-MM-DDTHH:MM:SS as a wall-clock time in UTC
func ParseActivityTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range activityLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, shared.NewValidationError(fmt.Sprintf("invalid activity date %q", s))
}

// ActivityRepository defines the interface for project activity persistence
type ActivityRepository interface {
	// FindByID finds an activity by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Activity, error)

	// FindByProject lists the activities of a project, latest first
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]Activity, error)

	// SaveBatch inserts activities in one statement
	SaveBatch(ctx context.Context, activities []*Activity) error

	// Save updates an existing activity
	Save(ctx context.Context, a *Activity) error

	// Delete removes an activity
	Delete(ctx context.Context, id uuid.UUID) error
}
