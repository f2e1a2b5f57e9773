package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMonthCache devolve sempre o mesmo mapa, quando armado.
type fakeMonthCache struct {
	stored map[string]bool
	sets   int
}

func (f *fakeMonthCache) GetMonth(_ context.Context, _ string) (map[string]bool, bool) {
	if f.stored == nil {
		return nil, false
	}
	return f.stored, true
}

func (f *fakeMonthCache) SetMonth(_ context.Context, _ string, days map[string]bool) {
	f.stored = days
	f.sets++
}

func (f *fakeMonthCache) Version(_ context.Context, _ uint) int64 { return 0 }

func TestMonthAvailability(t *testing.T) {
	repo := newStubRepo()
	for weekday := 1; weekday <= 5; weekday++ {
		repo.withSchedule(weekday, "09:00", "18:00")
	}

	// 2030-01-08 (terça) inteiramente tomado.
	repo.withBooking("2030-01-08", "09:00", "18:00", "confirmed")

	days, err := NewMonthAvailability(repo, nil).Execute(context.Background(), MonthAvailabilityInput{
		BarberID: 1,
		Year:     2030,
		Month:    time.January,
		Now:      time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, days, 31)

	assert.True(t, days["2030-01-07"])  // segunda
	assert.False(t, days["2030-01-05"]) // sábado, sem expediente
	assert.False(t, days["2030-01-06"]) // domingo
	assert.False(t, days["2030-01-08"]) // dia lotado

	// Uma consulta de expediente e uma de agendamentos para o mês todo.
	assert.Equal(t, 1, repo.listRangeCalls)
	assert.Equal(t, 0, repo.listDayCalls)
}

func TestMonthAvailabilityPastDaysFalse(t *testing.T) {
	repo := newStubRepo()
	for weekday := 0; weekday <= 6; weekday++ {
		repo.withSchedule(weekday, "09:00", "18:00")
	}

	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	days, err := NewMonthAvailability(repo, nil).Execute(context.Background(), MonthAvailabilityInput{
		BarberID: 1,
		Year:     2026,
		Month:    time.September,
		Now:      now,
	})

	require.NoError(t, err)
	assert.False(t, days["2026-09-14"])
	assert.True(t, days["2026-09-15"]) // hoje ainda tem fim de dia livre
	assert.True(t, days["2026-09-16"])
}

func TestMonthAvailabilityUsesCache(t *testing.T) {
	repo := newStubRepo().withSchedule(1, "09:00", "18:00")
	cache := &fakeMonthCache{stored: map[string]bool{"2030-01-07": true}}

	days, err := NewMonthAvailability(repo, cache).Execute(context.Background(), MonthAvailabilityInput{
		BarberID: 1,
		Year:     2030,
		Month:    time.January,
		Now:      time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"2030-01-07": true}, days)
	assert.Equal(t, 0, repo.listRangeCalls)
}

func TestMonthAvailabilityFillsCache(t *testing.T) {
	repo := newStubRepo().withSchedule(1, "09:00", "18:00")
	cache := &fakeMonthCache{}

	_, err := NewMonthAvailability(repo, cache).Execute(context.Background(), MonthAvailabilityInput{
		BarberID: 1,
		Year:     2030,
		Month:    time.January,
		Now:      time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Len(t, cache.stored, 31)
}
