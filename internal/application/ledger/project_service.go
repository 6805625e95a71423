package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/smbc/backend/internal/domain/construction"
	"github.com/smbc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProjectService manages the construction projects expense batches are booked against
type ProjectService struct {
	projects construction.ProjectRepository
	logger   *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects construction.ProjectRepository, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{projects: projects, logger: logger}
}

// Create creates a project. When a notice to proceed is given the expected
// completion date is derived from the contract duration.
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	p, err := construction.NewProject(req.ContractorName, req.ProjectName, req.DurationDays, req.ContractPrice)
	if err != nil {
		return nil, err
	}
	p.ProjectSite = req.ProjectSite
	if req.NoticeToProceed != "" {
		ntp, err := shared.ParseDate(req.NoticeToProceed)
		if err != nil {
			return nil, err
		}
		completion := ntp.AddDate(0, 0, req.DurationDays)
		p.NoticeToProceed = &ntp
		p.CompletionDate = &completion
		p.Status = construction.ProjectStatusOngoing
	}
	if err := s.projects.Save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("project created", zap.String("project_id", p.ID.String()), zap.String("name", p.ProjectName))
	resp := ToProjectResponse(p)
	return &resp, nil
}

// Get returns a project by id
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProjectResponse(p)
	return &resp, nil
}

// List returns every project ordered by name
func (s *ProjectService) List(ctx context.Context) ([]ProjectResponse, error) {
	projects, err := s.projects.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProjectResponse, len(projects))
	for i := range projects {
		out[i] = ToProjectResponse(&projects[i])
	}
	return out, nil
}
