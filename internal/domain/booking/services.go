package booking

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/barberflowapp/barberflow-api/internal/models"
)

// DefaultDuration é usada quando o agendamento não referencia nenhum
// serviço (fluxo antigo do formulário público).
const DefaultDuration = 30 * time.Minute

// IDList é a lista de serviços de um agendamento, persistida como
// "1,4,7". Parse e serialização vivem aqui para a coluna nunca ser
// montada à mão.
type IDList []uint

func ParseIDList(s string) IDList {
	var ids IDList
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(v))
	}
	return ids
}

func (l IDList) String() string {
	parts := make([]string, 0, len(l))
	for _, id := range l {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	return strings.Join(parts, ",")
}

// EffectiveDuration devolve a duração que ocupa a agenda: o MAIOR
// serviço selecionado, não a soma. Os serviços do mesmo atendimento
// são tratados como executados dentro do bloco do mais longo.
func EffectiveDuration(services []models.Service) time.Duration {
	if len(services) == 0 {
		return DefaultDuration
	}
	max := 0
	for _, s := range services {
		if s.DurationMin > max {
			max = s.DurationMin
		}
	}
	if max <= 0 {
		return DefaultDuration
	}
	return time.Duration(max) * time.Minute
}

// TotalPrice é a soma dos preços de todos os serviços selecionados.
func TotalPrice(services []models.Service) decimal.Decimal {
	total := decimal.Zero
	for _, s := range services {
		total = total.Add(s.Price)
	}
	return total
}
