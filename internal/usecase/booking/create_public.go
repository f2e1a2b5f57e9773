package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/barberflowapp/barberflow-api/internal/audit"
	domain "github.com/barberflowapp/barberflow-api/internal/domain/booking"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/models"
	"github.com/barberflowapp/barberflow-api/internal/timezone"
)

// VersionBumper invalida o cache de disponibilidade do barbeiro após
// qualquer escrita de agendamento.
type VersionBumper interface {
	Bump(ctx context.Context, barberID uint)
}

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarberID   uint
	ServiceIDs []uint

	Date string // YYYY-MM-DD
	Time string // HH:mm

	ClientName  string
	ClientPhone string
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache VersionBumper
}

func NewCreateBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	cache VersionBumper,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: auditDispatcher,
		cache: cache,
	}
}

// Execute revalida o horário na hora da escrita: outro cliente pode ter
// consumido o slot entre a consulta de disponibilidade e a confirmação.
// O índice único (barber, date, start_time) fecha a corrida que sobra;
// os dois caminhos viram o erro de negócio "slot_conflict".
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	loc := timezone.Location("")
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

	var services []models.Service
	if len(in.ServiceIDs) > 0 {
		services, err = uc.repo.GetServices(ctx, in.ServiceIDs)
		if err != nil {
			return nil, err
		}
		if len(services) == 0 {
			return nil, httperr.ErrBusiness("service_not_found")
		}
	}
	duration := domain.EffectiveDuration(services)
	end := start.Add(duration)

	slots, err := NewGetAvailability(uc.repo).Execute(ctx, AvailabilityInput{
		BarberID:   in.BarberID,
		ServiceIDs: in.ServiceIDs,
		Date:       day,
		Now:        timezone.Now(),
	})
	if err != nil {
		return nil, err
	}
	if !containsSlot(slots, in.Time) {
		return nil, httperr.ErrBusiness("slot_conflict")
	}

	if err := uc.repo.AssertSlotFree(
		ctx,
		in.BarberID,
		in.Date,
		start.Format("15:04"),
		end.Format("15:04"),
	); err != nil {
		return nil, err
	}

	b := &models.Booking{
		Reference:   uuid.NewString(),
		BarberID:    in.BarberID,
		Date:        in.Date,
		StartTime:   start.Format("15:04"),
		EndTime:     end.Format("15:04"),
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		Notes:       in.Notes,
		ServiceIDs:  domain.IDList(in.ServiceIDs).String(),
		Status:      string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Bump(ctx, in.BarberID)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

func containsSlot(slots []domain.TimeSlot, start string) bool {
	for _, s := range slots {
		if s.Start == start {
			return true
		}
	}
	return false
}
