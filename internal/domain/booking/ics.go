package booking

import (
	"strings"
	"time"

	"github.com/barberflowapp/barberflow-api/internal/models"
)

const icsTimezone = "America/Sao_Paulo"

// ICS monta o convite de calendário do agendamento. Função pura:
// a saída usa terminação CRLF, como o formato exige.
func ICS(b *models.Booking, barber *models.Barber, services []models.Service) string {
	loc, _ := time.LoadLocation(icsTimezone)

	date, _ := time.ParseInLocation("2006-01-02", b.Date, loc)
	start := AtTime(date, b.StartTime)
	end := AtTime(date, b.EndTime)

	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, s.Name)
	}

	barberName := ""
	if barber != nil {
		barberName = barber.Name
	}

	descParts := []string{
		"Serviços: " + strings.Join(names, ", "),
		"Barbeiro: " + barberName,
		"Cliente: " + b.ClientName,
		"Telefone: " + b.ClientPhone,
	}
	if b.Notes != "" {
		descParts = append(descParts, "Observações: "+b.Notes)
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//BarberFlow//Agenda//PT-BR",
		"CALSCALE:GREGORIAN",
		"BEGIN:VEVENT",
		"UID:" + b.Reference,
		"DTSTART;TZID=" + icsTimezone + ":" + start.Format("20060102T150405"),
		"DTEND;TZID=" + icsTimezone + ":" + end.Format("20060102T150405"),
		"SUMMARY:" + escapeICS("Barbearia: "+strings.Join(names, " + ")),
		"DESCRIPTION:" + escapeICS(strings.Join(descParts, "\n")),
		"END:VEVENT",
		"END:VCALENDAR",
	}

	return strings.Join(lines, "\r\n") + "\r\n"
}

// escapeICS aplica o escaping de texto do RFC 5545.
func escapeICS(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
