package handlers

import (
	"time"

	"github.com/barberflowapp/barberflow-api/internal/timezone"
)

func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(""),
	)
}
