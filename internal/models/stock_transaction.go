package models

import "time"

type TransactionType string

const (
	TransactionIn  TransactionType = "in"
	TransactionOut TransactionType = "out"
)

// StockTransaction: Bir stok kaydına yapılan tek bir giriş/çıkış hareketi.
// TotalStock her zaman bu hareketlerin id sırasıyla tekrar oynatılmasına eşittir.
type StockTransaction struct {
	ID         uint            `gorm:"primaryKey"`
	StockID    uint            `gorm:"index;not null"` // oluşturulduktan sonra değişmez
	Quantity   int             `gorm:"not null"`       // 1..10000
	Type       TransactionType `gorm:"size:10;not null"`
	Date       time.Time       `gorm:"index;not null"` // hareket tarihi, geriye dönük girilebilir
	ExpiresAt  *time.Time      // sadece giriş hareketleri için son kullanma tarihi
	EmployeeID *uint           `gorm:"index"` // zayıf referans; çalışan silinirse null'a çekilir
	Employee   *Employee
	Notes     string    `gorm:"size:500"`
	CreatedAt time.Time // değişmez denetim zamanı, tekrar oynatma sırası buna (id'ye) göre
}

func (t TransactionType) Valid() bool {
	return t == TransactionIn || t == TransactionOut
}

// Reverse: Giriş <-> çıkış. Amend/retract'taki geri alma adımı için.
func (t TransactionType) Reverse() TransactionType {
	if t == TransactionIn {
		return TransactionOut
	}
	return TransactionIn
}
