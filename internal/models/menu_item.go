package models

import "time"

type MenuItem struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;not null;unique"`
	Category  string  `gorm:"size:50"` // çorba, ana yemek, tatlı vs.
	Price     float64 `gorm:"not null"`
	Available bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
