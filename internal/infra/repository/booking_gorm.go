package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/barberlink/booking-api/internal/domain/booking"
	"github.com/barberlink/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// Statuses that keep a slot blocked.
var activeStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
	string(domain.StatusInProgress),
	string(domain.StatusCompleted),
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *BookingGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*domain.Booking, error) {

	var row models.Booking
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking_not_found", "booking %d not found", id)
		}
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}
	return toAggregate(&row)
}

func (r *BookingGormRepository) FindConflicting(
	ctx context.Context,
	providerID uint,
	slot domain.TimeSlot,
) ([]*domain.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			providerID,
			activeStatuses,
			slot.End(),
			slot.Start(),
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find conflicting bookings for barber %d: %w", providerID, err)
	}

	return toAggregates(rows)
}

func (r *BookingGormRepository) FindActiveByProviderAndRange(
	ctx context.Context,
	providerID uint,
	start time.Time,
	end time.Time,
) ([]*domain.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			providerID, activeStatuses, start, end,
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list active bookings for barber %d: %w", providerID, err)
	}

	return toAggregates(rows)
}

func (r *BookingGormRepository) FindByProviderAndRange(
	ctx context.Context,
	providerID uint,
	start time.Time,
	end time.Time,
) ([]*domain.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			providerID, start, end,
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bookings for barber %d: %w", providerID, err)
	}

	return toAggregates(rows)
}

func (r *BookingGormRepository) FindByCustomer(
	ctx context.Context,
	customerID uint,
) ([]*domain.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("start_time DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bookings for customer %d: %w", customerID, err)
	}

	return toAggregates(rows)
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *BookingGormRepository) Create(
	ctx context.Context,
	b *domain.Booking,
) error {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, b.ProviderID()).Error; err != nil {
		return fmt.Errorf("create booking: resolve barber %d: %w", b.ProviderID(), err)
	}

	row := toRow(b)
	row.BarbershopID = barber.BarbershopID
	row.Version = 0

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	b.SetID(row.ID)
	return nil
}

// Save is the optimistic-concurrency write: the update only lands when
// the stored version still matches the one the aggregate was loaded
// with. A vanished row count means someone else wrote first.
func (r *BookingGormRepository) Save(
	ctx context.Context,
	b *domain.Booking,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND version = ?", b.ID(), b.Version()).
		Updates(map[string]any{
			"start_time":          b.Slot().Start(),
			"end_time":            b.Slot().End(),
			"status":              string(b.Status()),
			"notes":               b.Notes(),
			"payment_json":        b.PaymentJSON(),
			"cancellation_reason": b.CancellationReason(),
			"cancelled_at":        b.CancelledAt(),
			"completed_at":        b.CompletedAt(),
			"updated_at":          b.UpdatedAt(),
			"version":             b.Version() + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("save booking %d: %w", b.ID(), res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Booking{}).
			Where("id = ?", b.ID()).
			Count(&count).Error; err == nil && count == 0 {
			return domain.NewNotFoundError("booking_not_found", "booking %d not found", b.ID())
		}
		return domain.ErrVersionConflict
	}

	return nil
}

// --------------------------------------------------
// Mapping
// --------------------------------------------------

func toAggregate(row *models.Booking) (*domain.Booking, error) {
	slot, err := domain.TimeSlotFromStorage(row.StartTime, row.EndTime)
	if err != nil {
		return nil, fmt.Errorf("booking %d: %w", row.ID, err)
	}
	status, err := domain.ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("booking %d: %w", row.ID, err)
	}

	return domain.Restore(domain.RestoreParams{
		ID:                 row.ID,
		ProviderID:         row.BarberID,
		CustomerID:         row.CustomerID,
		ServiceID:          row.ServiceID,
		Slot:               slot,
		Status:             status,
		Notes:              row.Notes,
		PaymentJSON:        row.PaymentJSON,
		CancellationReason: row.CancellationReason,
		Version:            row.Version,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
		CancelledAt:        row.CancelledAt,
		CompletedAt:        row.CompletedAt,
	})
}

func toAggregates(rows []models.Booking) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0, len(rows))
	for i := range rows {
		b, err := toAggregate(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func toRow(b *domain.Booking) models.Booking {
	return models.Booking{
		ID:                 b.ID(),
		BarberID:           b.ProviderID(),
		CustomerID:         b.CustomerID(),
		ServiceID:          b.ServiceID(),
		StartTime:          b.Slot().Start(),
		EndTime:            b.Slot().End(),
		Status:             string(b.Status()),
		PaymentJSON:        b.PaymentJSON(),
		Notes:              b.Notes(),
		CancellationReason: b.CancellationReason(),
		Version:            b.Version(),
		CancelledAt:        b.CancelledAt(),
		CompletedAt:        b.CompletedAt(),
		CreatedAt:          b.CreatedAt(),
		UpdatedAt:          b.UpdatedAt(),
	}
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
