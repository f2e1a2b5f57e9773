package booking

import (
	"context"
	"errors"

	domain "github.com/barberflowapp/barberflow-api/internal/domain/booking"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/models"
)

var errNotFound = errors.New("record not found")

// stubRepo guarda tudo em memória para os testes dos casos de uso.
type stubRepo struct {
	barber    *models.Barber
	schedules map[int]*models.BarberSchedule
	services  []models.Service

	// bookings indexados por data "2006-01-02".
	bookings map[string][]models.Booking
	byID     map[uint]*models.Booking

	created []*models.Booking
	nextID  uint

	listDayCalls   int
	listRangeCalls int
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		schedules: make(map[int]*models.BarberSchedule),
		bookings:  make(map[string][]models.Booking),
		byID:      make(map[uint]*models.Booking),
		nextID:    1,
	}
}

func (r *stubRepo) withSchedule(weekday int, start, end string) *stubRepo {
	r.schedules[weekday] = &models.BarberSchedule{
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
		Active:    true,
	}
	return r
}

func (r *stubRepo) withBooking(date, start, end, status string) *stubRepo {
	r.bookings[date] = append(r.bookings[date], models.Booking{
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	})
	return r
}

func (r *stubRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	if r.barber == nil || r.barber.ID != id {
		return nil, errNotFound
	}
	return r.barber, nil
}

func (r *stubRepo) GetSchedule(_ context.Context, _ uint, weekday int) (*models.BarberSchedule, error) {
	sch, ok := r.schedules[weekday]
	if !ok {
		return nil, errNotFound
	}
	return sch, nil
}

func (r *stubRepo) ListSchedules(_ context.Context, _ uint) ([]models.BarberSchedule, error) {
	var out []models.BarberSchedule
	for _, sch := range r.schedules {
		out = append(out, *sch)
	}
	return out, nil
}

func (r *stubRepo) GetServices(_ context.Context, ids []uint) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (r *stubRepo) ListBookingsForDay(_ context.Context, _ uint, date string) ([]models.Booking, error) {
	r.listDayCalls++

	var out []models.Booking
	for _, b := range r.bookings[date] {
		st, ok := domain.NormalizeStatus(b.Status)
		if ok && st.Blocks() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubRepo) ListBookingsForRange(_ context.Context, _ uint, from, to string) ([]models.Booking, error) {
	r.listRangeCalls++

	var out []models.Booking
	for date, list := range r.bookings {
		if date < from || date >= to {
			continue
		}
		for _, b := range list {
			st, ok := domain.NormalizeStatus(b.Status)
			if ok && st.Blocks() {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func (r *stubRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	b.ID = r.nextID
	r.nextID++

	r.created = append(r.created, b)
	r.bookings[b.Date] = append(r.bookings[b.Date], *b)
	r.byID[b.ID] = b
	return nil
}

func (r *stubRepo) AssertSlotFree(_ context.Context, _ uint, date, start, end string) error {
	for _, b := range r.bookings[date] {
		st, ok := domain.NormalizeStatus(b.Status)
		if ok && !st.Blocks() {
			continue
		}
		if b.StartTime < end && b.EndTime > start {
			return httperr.ErrBusiness("slot_conflict")
		}
	}
	return nil
}

func (r *stubRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, errNotFound
	}
	return b, nil
}

func (r *stubRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	r.byID[b.ID] = b
	return nil
}

func (r *stubRepo) DeleteBooking(_ context.Context, id uint) error {
	delete(r.byID, id)
	return nil
}

var _ domain.Repository = (*stubRepo)(nil)

// noopSink descarta os eventos de auditoria nos testes.
type noopSink struct{}

func (noopSink) Log(*uint, string, string, *uint, any) error { return nil }
