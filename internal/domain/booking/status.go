package booking

import (
	"strings"

	"github.com/barberflowapp/barberflow-api/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// NormalizeStatus aceita as duas grafias de cancelamento
// ("canceled"/"cancelled") e devolve o status canônico.
func NormalizeStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, true
	case "confirmed":
		return StatusConfirmed, true
	case "cancelled", "canceled":
		return StatusCancelled, true
	}
	return "", false
}

// Blocks informa se um agendamento neste status ocupa o horário
// para fins de disponibilidade.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
