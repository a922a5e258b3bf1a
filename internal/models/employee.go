package models

import "time"

// Employee: Stok hareketlerinde referans verilen personel kaydı.
// Kullanıcı hesabından ayrı; her personelin sistem girişi olmak zorunda değil.
type Employee struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Role      string `gorm:"size:50"` // garson, aşçı, depo vs.
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
