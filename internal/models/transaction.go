package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Type ∈ {product, service, fiado, mixed}, derivado da descrição.
	Type string `gorm:"size:20" json:"type"`

	// Description é a lista "2x Shampoo, 1x Corte (João)"; ver domain/ledger.
	Description string          `gorm:"size:500" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2)" json:"amount"`

	UserID   *uint `json:"user_id"`
	BarberID *uint `json:"barber_id"`

	ClientName  string `gorm:"size:100" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	// PaymentMethod ∈ {dinheiro, cartao, pix, fiado}.
	PaymentMethod string `gorm:"size:20" json:"payment_method"`
	Status        string `gorm:"size:20;default:'completed'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}
