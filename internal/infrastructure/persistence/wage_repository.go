package persistence

import (
	"context"
	"time"

	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
	"github.com/smbc/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormWageRepository implements ledger.WageRepository using GORM
type GormWageRepository struct {
	db *gorm.DB
}

// NewGormWageRepository creates a new GormWageRepository
func NewGormWageRepository(db *gorm.DB) *GormWageRepository {
	return &GormWageRepository{db: db}
}

// WithTx returns a new repository with the given transaction
func (r *GormWageRepository) WithTx(tx *gorm.DB) *GormWageRepository {
	return &GormWageRepository{db: tx}
}

// SaveBatch inserts all wage lines in one statement
func (r *GormWageRepository) SaveBatch(ctx context.Context, lines []*ledger.WageLine) error {
	if len(lines) == 0 {
		return nil
	}
	rows := make([]*models.WageLineModel, len(lines))
	for i, l := range lines {
		rows[i] = models.WageLineModelFromDomain(l)
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return classifyError("insert wage lines", err)
	}
	return nil
}

// FindByMonth returns the wage lines of a venture for a month, newest day first
func (r *GormWageRepository) FindByMonth(ctx context.Context, venture ledger.Venture, year int, month time.Month) ([]ledger.WageLine, error) {
	from, to := shared.MonthBounds(year, month)

	var rows []models.WageLineModel
	err := r.db.WithContext(ctx).
		Where("venture = ? AND work_date >= ? AND work_date <= ?", venture, from, to).
		Order("work_date DESC").
		Order("employee_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, classifyError("find wage lines", err)
	}

	lines := make([]ledger.WageLine, len(rows))
	for i := range rows {
		lines[i] = *rows[i].ToDomain()
	}
	return lines, nil
}

var _ ledger.WageRepository = (*GormWageRepository)(nil)
