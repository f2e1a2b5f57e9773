package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/barberflowapp/barberflow-api/internal/domain/booking"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/models"
)

// blockingStatuses são os status que ocupam horário.
var blockingStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
}

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Barber / schedule
// --------------------------------------------------

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).First(&barber, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetSchedule(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.BarberSchedule, error) {

	var sch models.BarberSchedule
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("barber_id = ? AND weekday = ?", barberID, weekday).
			First(&sch).Error
	})
	if err != nil {
		return nil, err
	}
	return &sch, nil
}

func (r *BookingGormRepository) ListSchedules(
	ctx context.Context,
	barberID uint,
) ([]models.BarberSchedule, error) {

	var schedules []models.BarberSchedule
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("barber_id = ?", barberID).
			Order("weekday ASC").
			Find(&schedules).Error
	})
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *BookingGormRepository) GetServices(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("id IN ?", ids).
			Find(&services).Error
	})
	if err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Bookings (availability)
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Select("start_time", "end_time", "status").
			Where(
				"barber_id = ? AND date = ? AND status IN ?",
				barberID, date, blockingStatuses,
			).
			Order("start_time ASC").
			Find(&bookings).Error
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForRange(
	ctx context.Context,
	barberID uint,
	from string,
	to string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Select("date", "start_time", "end_time", "status").
			Where(
				"barber_id = ? AND date >= ? AND date < ? AND status IN ?",
				barberID, from, to, blockingStatuses,
			).
			Order("date ASC, start_time ASC").
			Find(&bookings).Error
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Bookings (write)
// --------------------------------------------------

// AssertSlotFree reconfere o intervalo com lock de linha; o índice
// único (barber, date, start_time) cobre a corrida restante.
func (r *BookingGormRepository) AssertSlotFree(
	ctx context.Context,
	barberID uint,
	date string,
	start string,
	end string,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"barber_id = ? AND date = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID, date, blockingStatuses, end, start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("slot_conflict")
	}

	return nil
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	err := r.db.WithContext(ctx).Create(b).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness("slot_conflict")
	}
	return err
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
