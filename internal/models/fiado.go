package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FiadoClient identifica o cliente do caderninho pelo par exato
// (name, phone). Telefone vazio também é chave válida.
type FiadoClient struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`

	TotalDebt decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_debt"`

	Transactions []FiadoTransaction `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE;" json:"transactions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FiadoTransaction struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"index" json:"client_id"`

	TransactionID uint `gorm:"index" json:"transaction_id"`

	Amount      decimal.Decimal `gorm:"type:numeric(10,2)" json:"amount"`
	Description string          `gorm:"size:500" json:"description"`

	// Status ∈ {pending, paid}.
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}
