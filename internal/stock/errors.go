package stock

import "errors"

// Defter hataları. Handler katmanı bunları HTTP statülerine çeviriyor;
// servis katmanı hiçbir zaman fiber hatası üretmez.
var (
	ErrItemNotFound        = errors.New("stok kalemi bulunamadı")
	ErrStockNotFound       = errors.New("stok kaydı bulunamadı")
	ErrTransactionNotFound = errors.New("stok hareketi bulunamadı")
	ErrMenuItemNotFound    = errors.New("menü ürünü bulunamadı")
	ErrEmployeeNotFound    = errors.New("çalışan bulunamadı")

	ErrDuplicateName  = errors.New("bu isimde bir stok kalemi zaten var")
	ErrDuplicateStock = errors.New("bu kalem için zaten bir stok kaydı var")

	ErrItemInUse       = errors.New("kalem bir stok kaydı tarafından kullanılıyor")
	ErrStockHasHistory = errors.New("stok kaydının hareket geçmişi var, miktar düzeltilemez")

	ErrInvalidField       = errors.New("geçersiz alan değeri")
	ErrInvalidTransaction = errors.New("geçersiz stok hareketi")
	ErrInsufficientStock  = errors.New("stok yetersiz")
	ErrCapacityExceeded   = errors.New("stok kapasitesi aşılıyor")
)
