package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	Name     string          `gorm:"size:100;not null" json:"name"`
	Price    decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	Stock    int             `json:"stock"`
	MinStock int             `json:"min_stock"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}
