package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberflowapp/barberflow-api/internal/models"
)

var testDay = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func at(hm string) time.Time {
	return AtTime(testDay, hm)
}

func starts(slots []TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestOverlapsHalfOpen(t *testing.T) {
	a := Interval{Start: at("09:00"), End: at("09:30")}

	// Encostado não conflita.
	assert.False(t, a.Overlaps(Interval{Start: at("09:30"), End: at("10:00")}))
	assert.False(t, a.Overlaps(Interval{Start: at("08:30"), End: at("09:00")}))

	// Um minuto de sobreposição conflita.
	assert.True(t, a.Overlaps(Interval{Start: at("09:29"), End: at("10:00")}))
	assert.True(t, a.Overlaps(Interval{Start: at("08:30"), End: at("09:01")}))

	// Contido e contendo.
	assert.True(t, a.Overlaps(Interval{Start: at("09:10"), End: at("09:20")}))
	assert.True(t, a.Overlaps(Interval{Start: at("08:00"), End: at("11:00")}))
}

func TestSlotsInWindowStepAndBounds(t *testing.T) {
	window := Interval{Start: at("09:00"), End: at("10:00")}

	slots := SlotsInWindow(window, 30*time.Minute, nil, time.Time{})

	// O último candidato é o que ainda cabe inteiro na janela.
	assert.Equal(t, []string{"09:00", "09:15", "09:30"}, starts(slots))
	assert.Equal(t, "10:00", slots[len(slots)-1].End)
}

func TestSlotsInWindowSkipsBusy(t *testing.T) {
	window := Interval{Start: at("09:00"), End: at("11:00")}
	busy := []Interval{{Start: at("09:30"), End: at("10:00")}}

	slots := SlotsInWindow(window, 30*time.Minute, busy, time.Time{})

	assert.Equal(t, []string{"09:00", "10:00", "10:15", "10:30"}, starts(slots))
}

func TestSlotsInWindowLeadTimeCut(t *testing.T) {
	window := Interval{Start: at("09:00"), End: at("12:00")}

	slots := SlotsInWindow(window, 30*time.Minute, nil, at("10:30"))

	require.NotEmpty(t, slots)
	// Candidatos até o corte (inclusive) saem.
	assert.Equal(t, "10:45", slots[0].Start)
}

func TestSlotsInWindowDurationLongerThanWindow(t *testing.T) {
	window := Interval{Start: at("09:00"), End: at("09:30")}

	slots := SlotsInWindow(window, 45*time.Minute, nil, time.Time{})
	assert.Empty(t, slots)
}

func TestDayWindow(t *testing.T) {
	sch := &models.BarberSchedule{
		Weekday:   1,
		StartTime: "09:00",
		EndTime:   "18:00",
		Active:    true,
	}

	window, ok := DayWindow(sch, testDay)
	require.True(t, ok)
	assert.Equal(t, at("09:00"), window.Start)
	assert.Equal(t, at("18:00"), window.End)

	_, ok = DayWindow(nil, testDay)
	assert.False(t, ok)

	inactive := *sch
	inactive.Active = false
	_, ok = DayWindow(&inactive, testDay)
	assert.False(t, ok)

	inverted := *sch
	inverted.StartTime = "18:00"
	inverted.EndTime = "09:00"
	_, ok = DayWindow(&inverted, testDay)
	assert.False(t, ok)
}

func TestValidWindow(t *testing.T) {
	assert.True(t, ValidWindow("09:00", "18:00"))
	assert.False(t, ValidWindow("18:00", "09:00"))
	assert.False(t, ValidWindow("09:00", "09:00"))
	assert.False(t, ValidWindow("9h", "18:00"))
	assert.False(t, ValidWindow("", "18:00"))
}

func TestBusyIntervalsIgnoresCancelled(t *testing.T) {
	bookings := []models.Booking{
		{StartTime: "09:00", EndTime: "09:30", Status: "pending"},
		{StartTime: "10:00", EndTime: "10:30", Status: "cancelled"},
		{StartTime: "11:00", EndTime: "11:30", Status: "canceled"},
		{StartTime: "12:00", EndTime: "12:30", Status: "confirmed"},
	}

	busy := BusyIntervals(testDay, bookings)

	require.Len(t, busy, 2)
	assert.Equal(t, at("09:00"), busy[0].Start)
	assert.Equal(t, at("12:00"), busy[1].Start)
}

func TestNormalizeStatus(t *testing.T) {
	for input, want := range map[string]Status{
		"pending":   StatusPending,
		"confirmed": StatusConfirmed,
		"cancelled": StatusCancelled,
		"canceled":  StatusCancelled,
		"CANCELED":  StatusCancelled,
		" pending ": StatusPending,
	} {
		got, ok := NormalizeStatus(input)
		require.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := NormalizeStatus("done")
	assert.False(t, ok)
}
