package booking

import (
	"context"

	"github.com/barberflowapp/barberflow-api/internal/models"
)

type Repository interface {
	// -------- Barber / schedule --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetSchedule(
		ctx context.Context,
		barberID uint,
		weekday int,
	) (*models.BarberSchedule, error)

	ListSchedules(
		ctx context.Context,
		barberID uint,
	) ([]models.BarberSchedule, error)

	// -------- Services --------
	GetServices(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	// -------- Bookings (availability) --------
	ListBookingsForDay(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.Booking, error)

	ListBookingsForRange(
		ctx context.Context,
		barberID uint,
		from string,
		to string,
	) ([]models.Booking, error)

	// -------- Bookings (write) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	AssertSlotFree(
		ctx context.Context,
		barberID uint,
		date string,
		start string,
		end string,
	) error

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		id uint,
	) error
}
