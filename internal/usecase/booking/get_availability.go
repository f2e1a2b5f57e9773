package booking

import (
	"context"
	"time"

	domain "github.com/barberflowapp/barberflow-api/internal/domain/booking"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
)

type AvailabilityInput struct {
	BarberID   uint
	ServiceIDs []uint

	// Date deve vir ancorada no fuso da barbearia (meia-noite local).
	Date time.Time
	Now  time.Time
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute devolve os horários livres do dia, em ordem cronológica.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]domain.TimeSlot, error) {

	duration, err := uc.effectiveDuration(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	now := in.Now.In(in.Date.Location())

	// Dias no passado nunca têm vaga.
	if dateOnly(in.Date).Before(dateOnly(now)) {
		return []domain.TimeSlot{}, nil
	}

	sch, err := uc.repo.GetSchedule(ctx, in.BarberID, int(in.Date.Weekday()))
	if err != nil {
		return []domain.TimeSlot{}, nil
	}

	window, ok := domain.DayWindow(sch, in.Date)
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	bookings, err := uc.repo.ListBookingsForDay(
		ctx,
		in.BarberID,
		in.Date.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}

	var notBefore time.Time
	if dateOnly(in.Date).Equal(dateOnly(now)) {
		notBefore = now.Add(domain.MinLeadTime)
	}

	return domain.SlotsInWindow(
		window,
		duration,
		domain.BusyIntervals(in.Date, bookings),
		notBefore,
	), nil
}

func (uc *GetAvailability) effectiveDuration(
	ctx context.Context,
	serviceIDs []uint,
) (time.Duration, error) {

	if len(serviceIDs) == 0 {
		return domain.DefaultDuration, nil
	}

	services, err := uc.repo.GetServices(ctx, serviceIDs)
	if err != nil {
		return 0, err
	}
	if len(services) == 0 {
		return 0, httperr.ErrBusiness("service_not_found")
	}

	return domain.EffectiveDuration(services), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
