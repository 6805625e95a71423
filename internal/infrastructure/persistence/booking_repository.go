package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/smbc/backend/internal/domain/booking"
	"github.com/smbc/backend/internal/domain/shared"
	"github.com/smbc/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBookingRepository implements booking.Repository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// WithTx returns a new repository with the given transaction
func (r *GormBookingRepository) WithTx(tx *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: tx}
}

// FindByID finds a booking by ID
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var model models.BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, classifyError("find booking", err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads a booking with SELECT ... FOR UPDATE.
// sqlite has no row locks; its write transactions are already exclusive.
func (r *GormBookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var model models.BookingModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		return nil, classifyError("lock booking", err)
	}
	return model.ToDomain(), nil
}

// FindByStatus lists bookings in a status ordered by event date; an empty status lists all
func (r *GormBookingRepository) FindByStatus(ctx context.Context, status booking.Status) ([]booking.Booking, error) {
	query := r.db.WithContext(ctx).Model(&models.BookingModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []models.BookingModel
	if err := query.Order("event_date ASC").Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, classifyError("list bookings", err)
	}

	bookings := make([]booking.Booking, len(rows))
	for i := range rows {
		bookings[i] = *rows[i].ToDomain()
	}
	return bookings, nil
}

// Save inserts a new booking (version 1) or updates an existing one,
// requiring the stored version to be exactly one behind.
func (r *GormBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	model := models.BookingModelFromDomain(b)

	if b.Version <= 1 {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return classifyError("insert booking", err)
		}
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.BookingModel{}).
		Where("id = ? AND version = ?", b.ID, b.Version-1).
		Updates(map[string]any{
			"requestor_name":  model.RequestorName,
			"address":         model.Address,
			"contact_number":  model.ContactNumber,
			"email":           model.Email,
			"event_date":      model.EventDate,
			"event_time":      model.EventTime,
			"items_requested": model.ItemsRequested,
			"contract_amount": model.ContractAmount,
			"status":          model.Status,
			"version":         b.Version,
			"updated_at":      b.UpdatedAt,
		})
	if result.Error != nil {
		return classifyError("update booking", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var _ booking.Repository = (*GormBookingRepository)(nil)
