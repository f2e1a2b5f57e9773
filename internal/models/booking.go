package models

import "time"

type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	BarberID uint   `gorm:"uniqueIndex:idx_booking_slot" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	// Date é "2006-01-02", StartTime/EndTime "15:04" no fuso da barbearia.
	Date      string `gorm:"size:10;uniqueIndex:idx_booking_slot" json:"date"`
	StartTime string `gorm:"size:5;uniqueIndex:idx_booking_slot" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20;not null" json:"client_phone"`
	Notes       string `gorm:"size:255" json:"notes"`

	// ServiceIDs guarda a lista de serviços no formato "1,4,7"
	// (parse/serialização em domain/booking).
	ServiceIDs string `gorm:"size:255" json:"service_ids"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
