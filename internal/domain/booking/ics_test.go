package booking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberflowapp/barberflow-api/internal/models"
)

func TestICS(t *testing.T) {
	b := &models.Booking{
		Reference:   "a1b2c3d4",
		Date:        "2026-09-07",
		StartTime:   "10:00",
		EndTime:     "10:45",
		ClientName:  "Carlos",
		ClientPhone: "11999990000",
	}
	barber := &models.Barber{Name: "João"}
	services := []models.Service{{Name: "Corte"}, {Name: "Barba"}}

	body := ICS(b, barber, services)

	require.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n"))
	require.True(t, strings.HasSuffix(body, "END:VCALENDAR\r\n"))

	assert.Contains(t, body, "UID:a1b2c3d4")
	assert.Contains(t, body, "DTSTART;TZID=America/Sao_Paulo:20260907T100000")
	assert.Contains(t, body, "DTEND;TZID=America/Sao_Paulo:20260907T104500")
	assert.Contains(t, body, "SUMMARY:Barbearia: Corte + Barba")

	// Todas as quebras são CRLF.
	assert.NotContains(t, strings.ReplaceAll(body, "\r\n", ""), "\n")
}

func TestICSEscaping(t *testing.T) {
	b := &models.Booking{
		Reference: "ref",
		Date:      "2026-09-07",
		StartTime: "10:00",
		EndTime:   "10:30",
		Notes:     "sem máquina; só tesoura",
	}

	body := ICS(b, nil, []models.Service{{Name: "Corte, Simples"}})

	assert.Contains(t, body, `Corte\, Simples`)
	assert.Contains(t, body, `sem máquina\; só tesoura`)
}
