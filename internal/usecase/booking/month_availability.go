package booking

import (
	"context"
	"fmt"
	"time"

	domain "github.com/barberflowapp/barberflow-api/internal/domain/booking"
	"github.com/barberflowapp/barberflow-api/internal/models"
)

// MonthCache é o cache de disponibilidade mensal (Redis em produção).
// A chave embute um contador de versão por barbeiro: qualquer escrita
// de agendamento dá Bump e invalida o mês inteiro sem varrer chaves.
type MonthCache interface {
	GetMonth(ctx context.Context, key string) (map[string]bool, bool)
	SetMonth(ctx context.Context, key string, days map[string]bool)
	Version(ctx context.Context, barberID uint) int64
}

type MonthAvailabilityInput struct {
	BarberID   uint
	ServiceIDs []uint

	Year  int
	Month time.Month

	// Now no fuso da barbearia; também define o Location do mês.
	Now time.Time
}

type MonthAvailability struct {
	repo  domain.Repository
	cache MonthCache
}

func NewMonthAvailability(repo domain.Repository, cache MonthCache) *MonthAvailability {
	return &MonthAvailability{repo: repo, cache: cache}
}

// Execute calcula, para cada dia do mês, se existe ao menos um horário
// livre. Dias antes de hoje são sempre indisponíveis. As idas ao banco
// são em lote: uma consulta para o expediente da semana e uma para os
// agendamentos do mês, nunca uma por dia.
func (uc *MonthAvailability) Execute(
	ctx context.Context,
	in MonthAvailabilityInput,
) (map[string]bool, error) {

	var key string
	if uc.cache != nil {
		key = uc.cacheKey(ctx, in)
		if days, ok := uc.cache.GetMonth(ctx, key); ok {
			return days, nil
		}
	}

	loc := in.Now.Location()
	first := time.Date(in.Year, in.Month, 1, 0, 0, 0, 0, loc)
	next := first.AddDate(0, 1, 0)

	duration := domain.DefaultDuration
	if len(in.ServiceIDs) > 0 {
		services, err := uc.repo.GetServices(ctx, in.ServiceIDs)
		if err != nil {
			return nil, err
		}
		duration = domain.EffectiveDuration(services)
	}

	schedules, err := uc.repo.ListSchedules(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	byWeekday := make(map[int]*models.BarberSchedule, len(schedules))
	for i := range schedules {
		byWeekday[schedules[i].Weekday] = &schedules[i]
	}

	bookings, err := uc.repo.ListBookingsForRange(
		ctx,
		in.BarberID,
		first.Format("2006-01-02"),
		next.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string][]models.Booking)
	for _, b := range bookings {
		byDate[b.Date] = append(byDate[b.Date], b)
	}

	today := dateOnly(in.Now.In(loc))
	days := make(map[string]bool)

	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format("2006-01-02")

		if day.Before(today) {
			days[dateStr] = false
			continue
		}

		window, ok := domain.DayWindow(byWeekday[int(day.Weekday())], day)
		if !ok {
			days[dateStr] = false
			continue
		}

		var notBefore time.Time
		if day.Equal(today) {
			notBefore = in.Now.In(loc).Add(domain.MinLeadTime)
		}

		slots := domain.SlotsInWindow(
			window,
			duration,
			domain.BusyIntervals(day, byDate[dateStr]),
			notBefore,
		)
		days[dateStr] = len(slots) > 0
	}

	if uc.cache != nil {
		uc.cache.SetMonth(ctx, key, days)
	}

	return days, nil
}

func (uc *MonthAvailability) cacheKey(ctx context.Context, in MonthAvailabilityInput) string {
	ids := domain.IDList(in.ServiceIDs)
	return fmt.Sprintf(
		"avail:%d:v%d:%s:%04d-%02d",
		in.BarberID,
		uc.cache.Version(ctx, in.BarberID),
		ids.String(),
		in.Year, int(in.Month),
	)
}
