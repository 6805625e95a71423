package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smbc/backend/internal/domain/construction"
	"github.com/smbc/backend/internal/domain/shared"
	"github.com/smbc/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormActivityRepository implements construction.ActivityRepository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// FindByID finds an activity by ID
func (r *GormActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (*construction.Activity, error) {
	var model models.ActivityModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, classifyError("find activity", err)
	}
	return model.ToDomain(), nil
}

// FindByProject lists the activities of a project, latest first
func (r *GormActivityRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]construction.Activity, error) {
	var rows []models.ActivityModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("activity_at DESC").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, classifyError("find activities", err)
	}
	out := make([]construction.Activity, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// SaveBatch inserts activities in one statement
func (r *GormActivityRepository) SaveBatch(ctx context.Context, activities []*construction.Activity) error {
	if len(activities) == 0 {
		return nil
	}
	rows := make([]*models.ActivityModel, len(activities))
	for i, a := range activities {
		rows[i] = models.ActivityModelFromDomain(a)
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return classifyError("insert activities", err)
	}
	return nil
}

// Save updates an existing activity
func (r *GormActivityRepository) Save(ctx context.Context, a *construction.Activity) error {
	result := r.db.WithContext(ctx).
		Model(&models.ActivityModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"activity":    a.Description,
			"activity_at": a.At,
			"status":      a.Status,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return classifyError("update activity", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an activity
func (r *GormActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ActivityModel{})
	if result.Error != nil {
		return classifyError("delete activity", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ construction.ActivityRepository = (*GormActivityRepository)(nil)
