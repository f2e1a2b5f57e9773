package booking

import (
	"time"

	"github.com/barberflowapp/barberflow-api/internal/models"
)

// SlotStep é a granularidade fixa dos horários candidatos.
const SlotStep = 15 * time.Minute

// MinLeadTime é a antecedência mínima para agendar no próprio dia.
const MinLeadTime = 30 * time.Minute

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps usa semântica meio-aberta [start, end): horários encostados
// (candEnd == bookStart ou candStart == bookEnd) não conflitam.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayWindow resolve o expediente do barbeiro para uma data concreta.
// Sem linha ativa para o dia da semana → dia inteiro indisponível.
func DayWindow(sch *models.BarberSchedule, date time.Time) (Interval, bool) {
	if sch == nil || !sch.Active || sch.StartTime == "" || sch.EndTime == "" {
		return Interval{}, false
	}

	start := AtTime(date, sch.StartTime)
	end := AtTime(date, sch.EndTime)
	if !start.Before(end) {
		return Interval{}, false
	}

	return Interval{Start: start, End: end}, true
}

// ValidWindow confere um par "15:04" de expediente: ambos parseáveis e
// início estritamente antes do fim.
func ValidWindow(startHM, endHM string) bool {
	start, err := time.Parse("15:04", startHM)
	if err != nil {
		return false
	}
	end, err := time.Parse("15:04", endHM)
	if err != nil {
		return false
	}
	return start.Before(end)
}

// AtTime ancora um "15:04" na data (e fuso) informados.
func AtTime(date time.Time, hm string) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}

// SlotsInWindow percorre os candidatos de window.Start até
// window.End − duration (inclusive), de 15 em 15 minutos, e mantém os
// que não conflitam com nenhum intervalo ocupado nem começam antes de
// notBefore (zero = sem corte). Resultado em ordem cronológica.
func SlotsInWindow(
	window Interval,
	duration time.Duration,
	busy []Interval,
	notBefore time.Time,
) []TimeSlot {

	var slots []TimeSlot

	for cur := window.Start; !cur.Add(duration).After(window.End); cur = cur.Add(SlotStep) {

		candidate := Interval{Start: cur, End: cur.Add(duration)}

		if !notBefore.IsZero() && !candidate.Start.After(notBefore) {
			continue
		}

		conflict := false
		for _, b := range busy {
			if candidate.Overlaps(b) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{
				Start: candidate.Start.Format("15:04"),
				End:   candidate.End.Format("15:04"),
			})
		}
	}

	return slots
}

// BusyIntervals converte os agendamentos de um dia em intervalos
// ocupados, ignorando cancelados.
func BusyIntervals(date time.Time, bookings []models.Booking) []Interval {
	var busy []Interval
	for _, b := range bookings {
		st, ok := NormalizeStatus(b.Status)
		if ok && !st.Blocks() {
			continue
		}
		busy = append(busy, Interval{
			Start: AtTime(date, b.StartTime),
			End:   AtTime(date, b.EndTime),
		})
	}
	return busy
}
