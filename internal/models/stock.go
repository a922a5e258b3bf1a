package models

import "time"

type StockStatus string

const (
	StatusOutOfStock StockStatus = "out_of_stock"
	StatusCritical   StockStatus = "critical"
	StatusLow        StockStatus = "low"
	StatusNormal     StockStatus = "normal"
)

// Stock: Bir kalemin güncel miktar sayacı ve hedef seviyesi.
// TotalStock sadece işlem defteri (register/amend/retract) üzerinden değişir;
// tek istisna hiç işlem yokken yapılan başlangıç düzeltmesi.
type Stock struct {
	ID                   uint `gorm:"primaryKey"`
	StockItemID          uint `gorm:"uniqueIndex;not null"` // kalem başına en fazla bir stok kaydı
	StockItem            StockItem
	TotalStock           int                `gorm:"not null"` // güncel miktar, asla negatif olmaz
	OptimalStockQuantity int                `gorm:"not null"` // hedef seviye, >= 1
	Transactions         []StockTransaction `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
