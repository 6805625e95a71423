package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/smbc/backend/internal/domain/construction"
	"github.com/smbc/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProjectRepository implements construction.ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*construction.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, classifyError("find project", err)
	}
	return model.ToDomain(), nil
}

// FindAll lists every project ordered by name
func (r *GormProjectRepository) FindAll(ctx context.Context) ([]construction.Project, error) {
	var rows []models.ProjectModel
	if err := r.db.WithContext(ctx).Order("project_name ASC").Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, classifyError("find projects", err)
	}
	out := make([]construction.Project, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a project
func (r *GormProjectRepository) Save(ctx context.Context, p *construction.Project) error {
	if err := r.db.WithContext(ctx).Save(models.ProjectModelFromDomain(p)).Error; err != nil {
		return classifyError("save project", err)
	}
	return nil
}

var _ construction.ProjectRepository = (*GormProjectRepository)(nil)
