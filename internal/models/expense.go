package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Category    string          `gorm:"size:50" json:"category"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2)" json:"amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
