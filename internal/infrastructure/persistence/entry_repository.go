package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
	"github.com/smbc/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEntryRepository implements ledger.EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// WithTx returns a new repository with the given transaction
func (r *GormEntryRepository) WithTx(tx *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: tx}
}

// FindByID finds an entry by ID
func (r *GormEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	var model models.EntryModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, classifyError("find entry", err)
	}
	return model.ToDomain(), nil
}

// Find returns entries matching the filter
func (r *GormEntryRepository) Find(ctx context.Context, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	query := r.db.WithContext(ctx).Model(&models.EntryModel{})

	if filter.Venture != "" {
		query = query.Where("venture = ?", filter.Venture)
	}
	if filter.RefID != nil {
		query = query.Where("ref_id = ?", *filter.RefID)
	}
	if len(filter.Categories) > 0 {
		query = query.Where("category IN ?", filter.Categories)
	}
	if filter.From != nil {
		query = query.Where("entry_date >= ?", shared.DayOf(*filter.From))
	}
	if filter.To != nil {
		query = query.Where("entry_date <= ?", shared.DayOf(*filter.To))
	}
	if filter.Invoice != nil {
		query = query.Where("invoice_number = ?", filter.Invoice.String())
	}
	if filter.Descending {
		query = query.Order("entry_date DESC").Order("created_at DESC").Order("id DESC")
	} else {
		query = query.Order("entry_date ASC").Order("created_at ASC").Order("id ASC")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.EntryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, classifyError("find entries", err)
	}
	return toDomainEntries(rows), nil
}

// SaveBatch inserts all entries in one statement
func (r *GormEntryRepository) SaveBatch(ctx context.Context, entries []*ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]*models.EntryModel, len(entries))
	for i, e := range entries {
		rows[i] = models.EntryModelFromDomain(e)
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return classifyError("insert entries", err)
	}
	return nil
}

// Save updates an existing entry
func (r *GormEntryRepository) Save(ctx context.Context, entry *ledger.Entry) error {
	model := models.EntryModelFromDomain(entry)
	model.UpdatedAt = time.Now().UTC()
	// detail goes through its json serializer only on struct updates
	result := r.db.WithContext(ctx).
		Model(&models.EntryModel{}).
		Where("id = ?", entry.ID).
		Select("category", "amount", "entry_date", "description", "reference", "detail", "updated_at").
		Updates(model)
	if result.Error != nil {
		return classifyError("update entry", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an entry
func (r *GormEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.EntryModel{})
	if result.Error != nil {
		return classifyError("delete entry", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByRef returns the entries of a category recorded against a project or booking, oldest first
func (r *GormEntryRepository) FindByRef(ctx context.Context, refID uuid.UUID, category ledger.Category) ([]ledger.Entry, error) {
	var rows []models.EntryModel
	err := r.db.WithContext(ctx).
		Where("ref_id = ? AND category = ?", refID, category).
		Order("entry_date ASC").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, classifyError("find entries by ref", err)
	}
	return toDomainEntries(rows), nil
}

// AvailableMonths lists months that have entries, newest first.
// Distinct dates are grouped in Go so the query stays portable across drivers.
func (r *GormEntryRepository) AvailableMonths(ctx context.Context, venture ledger.Venture) ([]ledger.YearMonth, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&models.EntryModel{}).
		Where("venture = ?", venture).
		Distinct("entry_date").
		Order("entry_date DESC").
		Pluck("entry_date", &dates).Error
	if err != nil {
		return nil, classifyError("list entry months", err)
	}

	months := make([]ledger.YearMonth, 0)
	seen := make(map[ledger.YearMonth]bool)
	for _, d := range dates {
		ym := ledger.YearMonth{Year: d.Year(), Month: d.Month()}
		if seen[ym] {
			continue
		}
		seen[ym] = true
		months = append(months, ym)
	}
	return months, nil
}

func toDomainEntries(rows []models.EntryModel) []ledger.Entry {
	entries := make([]ledger.Entry, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries
}

var _ ledger.EntryRepository = (*GormEntryRepository)(nil)
