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

type ProviderGormRepository struct {
	db *gorm.DB
}

func NewProviderGormRepository(db *gorm.DB) *ProviderGormRepository {
	return &ProviderGormRepository{db: db}
}

func (r *ProviderGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("barber_not_found", "barber %d not found", id)
		}
		return nil, fmt.Errorf("find barber %d: %w", id, err)
	}
	return &barber, nil
}

// FindActiveForService returns the shop's active barbers holding every
// skill the service requires. Skill matching happens here so every
// caller gets the same filtering.
func (r *ProviderGormRepository) FindActiveForService(
	ctx context.Context,
	barbershopID uint,
	svc *models.Service,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND active = ?", barbershopID, true).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		return nil, fmt.Errorf("list barbers for shop %d: %w", barbershopID, err)
	}

	required := svc.RequiredSkillList()
	out := make([]models.Barber, 0, len(barbers))
	for _, b := range barbers {
		if b.HasSkills(required) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *ProviderGormRepository) WeekScheduleFor(
	ctx context.Context,
	barberID uint,
) (domain.WeekSchedule, error) {

	var rows []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return domain.WeekSchedule{}, fmt.Errorf("load schedule for barber %d: %w", barberID, err)
	}

	// Weekdays without a row count as days off.
	days := make([]domain.DaySchedule, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		days[wd] = domain.DaySchedule{Weekday: wd}
	}
	for _, row := range rows {
		if row.Weekday < 0 || row.Weekday > 6 {
			continue
		}
		days[row.Weekday] = domain.DaySchedule{
			Weekday: time.Weekday(row.Weekday),
			Working: row.Active,
			Start:   row.StartTime,
			End:     row.EndTime,
		}
	}

	return domain.NewWeekSchedule(days)
}

// ReplaceWeekSchedule swaps the barber's weekly template wholesale, the
// schedule being a value that is replaced rather than edited in place.
func (r *ProviderGormRepository) ReplaceWeekSchedule(
	ctx context.Context,
	barberID uint,
	ws domain.WeekSchedule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&models.WorkingHours{}).Error; err != nil {
			return fmt.Errorf("clear schedule for barber %d: %w", barberID, err)
		}

		rows := make([]models.WorkingHours, 0, 7)
		for _, d := range ws.Days() {
			rows = append(rows, models.WorkingHours{
				BarberID:  barberID,
				Weekday:   int(d.Weekday),
				Active:    d.Working,
				StartTime: d.Start,
				EndTime:   d.End,
			})
		}

		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("save schedule for barber %d: %w", barberID, err)
		}
		return nil
	})
}

// Compile-time check
var _ domain.ProviderRepository = (*ProviderGormRepository)(nil)
