package ledger

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/smbc/backend/internal/domain/construction"
	"github.com/smbc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ActivityService keeps the site log of construction projects. Activities
// carry no amount, so they never touch the ledger or the invoice sequence.
type ActivityService struct {
	activities construction.ActivityRepository
	projects   construction.ProjectRepository
	logger     *zap.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(activities construction.ActivityRepository, projects construction.ProjectRepository, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{activities: activities, projects: projects, logger: logger}
}

// Record saves the non-blank lines of a batch against a project
func (s *ActivityService) Record(ctx context.Context, projectID uuid.UUID, req RecordActivitiesRequest, actor uuid.UUID) ([]ActivityResponse, error) {
	batchDate, err := shared.ParseDate(req.ExpenseDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	activities := make([]*construction.Activity, 0, len(req.Lines))
	for _, line := range req.Lines {
		if strings.TrimSpace(line.Activity) == "" {
			continue
		}
		at := batchDate
		if strings.TrimSpace(line.ActivityDate) != "" {
			if at, err = construction.ParseActivityTime(line.ActivityDate); err != nil {
				return nil, err
			}
		}
		a, err := construction.NewActivity(projectID, line.Activity, at, line.Status)
		if err != nil {
			return nil, err
		}
		a.CreatedBy = &actor
		activities = append(activities, a)
	}
	if len(activities) == 0 {
		return nil, shared.NewValidationError("at least one activity is required")
	}

	if err := s.activities.SaveBatch(ctx, activities); err != nil {
		return nil, err
	}
	s.logger.Info("project activities recorded",
		zap.String("project_id", projectID.String()),
		zap.Int("count", len(activities)))

	out := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		out[i] = ToActivityResponse(a)
	}
	return out, nil
}

// List returns a project's activities, latest first
func (s *ActivityService) List(ctx context.Context, projectID uuid.UUID) ([]ActivityResponse, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	activities, err := s.activities.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]ActivityResponse, len(activities))
	for i := range activities {
		out[i] = ToActivityResponse(&activities[i])
	}
	return out, nil
}

// Update rewrites an activity of the project
func (s *ActivityService) Update(ctx context.Context, projectID, id uuid.UUID, req UpdateActivityRequest) (*ActivityResponse, error) {
	a, err := s.findProjectActivity(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	at, err := construction.ParseActivityTime(req.ActivityDate)
	if err != nil {
		return nil, err
	}
	if err := a.Update(req.Activity, at, req.Status); err != nil {
		return nil, err
	}
	if err := s.activities.Save(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("project activity updated", zap.String("activity_id", id.String()))
	resp := ToActivityResponse(a)
	return &resp, nil
}

// Delete removes an activity of the project
func (s *ActivityService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	if _, err := s.findProjectActivity(ctx, projectID, id); err != nil {
		return err
	}
	if err := s.activities.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project activity deleted", zap.String("activity_id", id.String()))
	return nil
}

// findProjectActivity hides activities of other projects
func (s *ActivityService) findProjectActivity(ctx context.Context, projectID, id uuid.UUID) (*construction.Activity, error) {
	a, err := s.activities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.ProjectID != projectID {
		return nil, shared.ErrNotFound
	}
	return a, nil
}
