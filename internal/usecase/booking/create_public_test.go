package booking

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberflowapp/barberflow-api/internal/audit"
	"github.com/barberflowapp/barberflow-api/internal/httperr"
	"github.com/barberflowapp/barberflow-api/internal/models"
)

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(noopSink{}, zerolog.Nop())
}

// 2030-01-07 é uma segunda-feira (futuro distante: antecedência mínima
// nunca interfere).
func bookingRepo() *stubRepo {
	repo := newStubRepo().withSchedule(1, "09:00", "18:00")
	repo.barber = &models.Barber{ID: 1, Name: "João"}
	repo.services = []models.Service{{ID: 1, Name: "Corte", DurationMin: 45}}
	return repo
}

func TestCreateBooking(t *testing.T) {
	repo := bookingRepo()
	uc := NewCreateBooking(repo, testDispatcher(), nil)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		BarberID:    1,
		ServiceIDs:  []uint{1},
		Date:        "2030-01-07",
		Time:        "10:00",
		ClientName:  "Carlos",
		ClientPhone: "11999990000",
	})

	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	assert.Equal(t, "pending", b.Status)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, "10:00", b.StartTime)
	assert.Equal(t, "10:45", b.EndTime)
	assert.Equal(t, "1", b.ServiceIDs)
}

func TestCreateBookingSlotTaken(t *testing.T) {
	repo := bookingRepo().withBooking("2030-01-07", "10:00", "10:30", "pending")
	uc := NewCreateBooking(repo, testDispatcher(), nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BarberID:    1,
		ServiceIDs:  []uint{1},
		Date:        "2030-01-07",
		Time:        "10:00",
		ClientName:  "Carlos",
		ClientPhone: "11999990000",
	})

	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))
	assert.Empty(t, repo.created)
}

func TestCreateBookingOutsideSchedule(t *testing.T) {
	repo := bookingRepo()
	uc := NewCreateBooking(repo, testDispatcher(), nil)

	// 2030-01-06 é domingo, sem expediente.
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BarberID:    1,
		ServiceIDs:  []uint{1},
		Date:        "2030-01-06",
		Time:        "10:00",
		ClientName:  "Carlos",
		ClientPhone: "11999990000",
	})

	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))
}

func TestCreateBookingUnknownBarber(t *testing.T) {
	repo := newStubRepo()
	uc := NewCreateBooking(repo, testDispatcher(), nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BarberID: 42,
		Date:     "2030-01-07",
		Time:     "10:00",
	})

	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
}

func TestCreateBookingInvalidTime(t *testing.T) {
	repo := bookingRepo()
	uc := NewCreateBooking(repo, testDispatcher(), nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BarberID: 1,
		Date:     "2030-01-07",
		Time:     "10h00",
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestCreateBookingBumpsCacheVersion(t *testing.T) {
	repo := bookingRepo()
	bumper := &fakeBumper{}
	uc := NewCreateBooking(repo, testDispatcher(), bumper)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BarberID:    1,
		ServiceIDs:  []uint{1},
		Date:        "2030-01-07",
		Time:        "10:00",
		ClientName:  "Carlos",
		ClientPhone: "11999990000",
	})

	require.NoError(t, err)
	assert.Equal(t, []uint{1}, bumper.bumped)
}

type fakeBumper struct {
	bumped []uint
}

func (f *fakeBumper) Bump(_ context.Context, barberID uint) {
	f.bumped = append(f.bumped, barberID)
}
