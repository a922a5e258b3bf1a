package models

import "time"

type StockItemCategory string

const (
	CategoryIngredient StockItemCategory = "ingredient"
	CategoryUtensil    StockItemCategory = "utensil"
	CategoryContainer  StockItemCategory = "container"
	CategoryOther      StockItemCategory = "other"
)

// StockItem: Takip edilen envanter kalemi (malzeme, gereç, kap vs.)
type StockItem struct {
	ID         uint              `gorm:"primaryKey"`
	Name       string            `gorm:"size:100;not null;uniqueIndex"` // büyük/küçük harf duyarsız benzersiz (servis katmanında kontrol ediliyor)
	Unit       string            `gorm:"size:20;not null"`              // kg, adet, litre vs.
	Category   StockItemCategory `gorm:"size:20;not null"`
	MenuItemID *uint             `gorm:"index"` // sadece ingredient için; menü silinirse null'a çekilir
	MenuItem   *MenuItem
	UnitPrice  float64 `gorm:"not null;default:0"` // rapor toplam değeri için birim maliyet
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (c StockItemCategory) Valid() bool {
	switch c {
	case CategoryIngredient, CategoryUtensil, CategoryContainer, CategoryOther:
		return true
	}
	return false
}
