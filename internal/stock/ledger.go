package stock

import (
	"fmt"

	"lokanta-backend/internal/models"
)

// Hareket miktarı sınırları
const (
	MinTransactionQuantity = 1
	MaxTransactionQuantity = 10000
)

// applyMovement: Bir hareketin miktara etkisi. Giriş ekler, çıkış düşer.
func applyMovement(total int, quantity int, txType models.TransactionType) int {
	if txType == models.TransactionIn {
		return total + quantity
	}
	return total - quantity
}

// validateMovement: Bir hareketi uygulamadan ÖNCE kontrol eder.
// total: hareketin uygulanacağı mevcut (amend'de geri alınmış) miktar.
// ceiling: optimal_stock_quantity * ceilingFactor.
//
// Kurallar:
//  1. Miktar 1..10000 aralığında olmalı
//  2. Tip in/out olmalı
//  3. Sonuç negatif olamaz (çıkış mevcut stoku aşamaz; bir girişin
//     küçültülmesi de sonradan yapılmış çıkışları açıkta bırakamaz)
//  4. Giriş tavanı aşamaz
func validateMovement(total int, quantity int, txType models.TransactionType, ceiling int) error {
	if quantity < MinTransactionQuantity || quantity > MaxTransactionQuantity {
		return fmt.Errorf("%w: miktar %d ile %d arasında olmalı", ErrInvalidTransaction, MinTransactionQuantity, MaxTransactionQuantity)
	}
	if !txType.Valid() {
		return fmt.Errorf("%w: bilinmeyen hareket tipi %q", ErrInvalidTransaction, txType)
	}

	next := applyMovement(total, quantity, txType)
	if next < 0 {
		return fmt.Errorf("%w: mevcut %d, istenen çıkış %d", ErrInsufficientStock, total, quantity)
	}
	if txType == models.TransactionIn && next > ceiling {
		return fmt.Errorf("%w: tavan %d, giriş sonrası %d olurdu", ErrCapacityExceeded, ceiling, next)
	}
	return nil
}

// ClassifyStatus: Stok kaydının durum sınıfı. Saf fonksiyon, yan etkisiz.
func ClassifyStatus(s *models.Stock) models.StockStatus {
	optimal := float64(s.OptimalStockQuantity)
	current := float64(s.TotalStock)
	switch {
	case s.TotalStock == 0:
		return models.StatusOutOfStock
	case current < 0.2*optimal:
		return models.StatusCritical
	case current < 0.5*optimal:
		return models.StatusLow
	default:
		return models.StatusNormal
	}
}
