package stock

import (
	"errors"
	"strings"
	"sync"
	"time"

	"lokanta-backend/internal/models"

	"gorm.io/gorm"
)

// Service: Stok defterinin tek yazma yolu. Bir stok kaydının TotalStock'u
// yalnızca buradaki Register/Amend/Retract (ve hiç hareket yokken yapılan
// başlangıç düzeltmesi) üzerinden değişir.
//
// Aynı stok kaydına giden eşzamanlı çağrılar kayıt başına tutulan process-içi
// kilitle sıraya sokuluyor; oku-doğrula-yaz dizisi hiçbir zaman iç içe geçmez.
// Farklı kayıtlar birbirini bekletmez.
type Service struct {
	db            *gorm.DB
	ceilingFactor int

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewService(db *gorm.DB, ceilingFactor int) *Service {
	return &Service{
		db:            db,
		ceilingFactor: ceilingFactor,
		locks:         make(map[uint]*sync.Mutex),
	}
}

func (s *Service) DB() *gorm.DB { return s.db }

// lockStock: Stok kaydına özel kilidi alır, bırakma fonksiyonunu döndürür.
func (s *Service) lockStock(stockID uint) func() {
	s.mu.Lock()
	l, ok := s.locks[stockID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[stockID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *Service) ceiling(stk *models.Stock) int {
	return stk.OptimalStockQuantity * s.ceilingFactor
}

// =========================================================================
// Kalem kataloğu
// =========================================================================

type ItemInput struct {
	Name       string
	Unit       string
	Category   models.StockItemCategory
	MenuItemID *uint
	UnitPrice  float64
}

type ItemUpdateInput struct {
	Unit       *string
	Category   *models.StockItemCategory
	MenuItemID *uint
	ClearMenu  bool // MenuItemID'yi null'a çek
	UnitPrice  *float64
}

func (s *Service) CreateItem(in ItemInput) (*models.StockItem, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)

	if in.Name == "" || in.Unit == "" {
		return nil, ErrInvalidField
	}
	if !in.Category.Valid() {
		return nil, ErrInvalidField
	}
	if in.UnitPrice < 0 {
		return nil, ErrInvalidField
	}
	// Menü referansı sadece malzemeler için anlamlı
	if in.MenuItemID != nil && in.Category != models.CategoryIngredient {
		return nil, ErrInvalidField
	}

	if err := s.checkUniqueName(in.Name, 0); err != nil {
		return nil, err
	}

	if in.MenuItemID != nil {
		var menu models.MenuItem
		if err := s.db.First(&menu, *in.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMenuItemNotFound
			}
			return nil, err
		}
	}

	item := models.StockItem{
		Name:       in.Name,
		Unit:       in.Unit,
		Category:   in.Category,
		MenuItemID: in.MenuItemID,
		UnitPrice:  in.UnitPrice,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) RenameItem(id uint, newName string) (*models.StockItem, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, ErrInvalidField
	}

	var item models.StockItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	// Kendi kaydı hariç benzersizlik kontrolü
	if err := s.checkUniqueName(newName, item.ID); err != nil {
		return nil, err
	}

	item.Name = newName
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) UpdateItem(id uint, in ItemUpdateInput) (*models.StockItem, error) {
	var item models.StockItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if in.Unit != nil {
		unit := strings.TrimSpace(*in.Unit)
		if unit == "" {
			return nil, ErrInvalidField
		}
		item.Unit = unit
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return nil, ErrInvalidField
		}
		item.Category = *in.Category
	}
	if in.ClearMenu {
		item.MenuItemID = nil
	} else if in.MenuItemID != nil {
		var menu models.MenuItem
		if err := s.db.First(&menu, *in.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMenuItemNotFound
			}
			return nil, err
		}
		item.MenuItemID = in.MenuItemID
	}
	if in.UnitPrice != nil {
		if *in.UnitPrice < 0 {
			return nil, ErrInvalidField
		}
		item.UnitPrice = *in.UnitPrice
	}

	// Güncelleme sonrası tutarlılık: malzeme olmayan kalemde menü referansı kalamaz
	if item.MenuItemID != nil && item.Category != models.CategoryIngredient {
		return nil, ErrInvalidField
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) DeleteItem(id uint) error {
	var item models.StockItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	// Önce stok kaydı silinmeli
	var count int64
	if err := s.db.Model(&models.Stock{}).Where("stock_item_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrItemInUse
	}

	return s.db.Delete(&item).Error
}

func (s *Service) GetItem(id uint) (*models.StockItem, error) {
	var item models.StockItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Service) ListItems() ([]models.StockItem, error) {
	var items []models.StockItem
	if err := s.db.Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) checkUniqueName(name string, excludeID uint) error {
	var count int64
	q := s.db.Model(&models.StockItem{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateName
	}
	return nil
}

// =========================================================================
// Stok kayıtları
// =========================================================================

func (s *Service) CreateStock(itemID uint, initialQuantity, optimalQuantity int) (*models.Stock, error) {
	if optimalQuantity < 1 || initialQuantity < 0 {
		return nil, ErrInvalidField
	}

	var item models.StockItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	stk := models.Stock{
		StockItemID:          itemID,
		TotalStock:           initialQuantity,
		OptimalStockQuantity: optimalQuantity,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Stock{}).Where("stock_item_id = ?", itemID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateStock
		}
		return tx.Create(&stk).Error
	})
	if err != nil {
		return nil, err
	}

	stk.StockItem = item
	return &stk, nil
}

// OverrideInitialQuantity: Başlangıç miktarı düzeltmesi. Sadece hiç hareket
// kaydı yokken (bootstrap) izin verilir; geçmişi olan bir kaydın miktarı
// yalnızca defter üzerinden değişebilir.
func (s *Service) OverrideInitialQuantity(stockID uint, newTotal int) (*models.Stock, error) {
	if newTotal < 0 {
		return nil, ErrInvalidField
	}

	unlock := s.lockStock(stockID)
	defer unlock()

	var stk models.Stock
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&stk, stockID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStockNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.StockTransaction{}).Where("stock_id = ?", stockID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrStockHasHistory
		}

		stk.TotalStock = newTotal
		return tx.Save(&stk).Error
	})
	if err != nil {
		return nil, err
	}
	return &stk, nil
}

// DeleteStock: Stok kaydını ve tüm hareket geçmişini siler. Geri alınamaz.
func (s *Service) DeleteStock(stockID uint) error {
	unlock := s.lockStock(stockID)
	defer unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var stk models.Stock
		if err := tx.First(&stk, stockID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStockNotFound
			}
			return err
		}
		if err := tx.Where("stock_id = ?", stockID).Delete(&models.StockTransaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&stk).Error
	})
}

func (s *Service) GetStock(stockID uint) (*models.Stock, error) {
	var stk models.Stock
	if err := s.db.Preload("StockItem").First(&stk, stockID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStockNotFound
		}
		return nil, err
	}
	return &stk, nil
}

// GetStockByItem: Kalemin stok kaydını döndürür; kayıt yoksa (nil, nil).
func (s *Service) GetStockByItem(itemID uint) (*models.Stock, error) {
	var item models.StockItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	var stk models.Stock
	if err := s.db.Preload("StockItem").Where("stock_item_id = ?", itemID).First(&stk).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stk, nil
}

func (s *Service) ListStocks() ([]models.Stock, error) {
	var stocks []models.Stock
	if err := s.db.Preload("StockItem").Order("id asc").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// =========================================================================
// Hareket defteri: Register / Amend / Retract
// =========================================================================

type TransactionInput struct {
	StockID    uint
	Quantity   int
	Type       models.TransactionType
	Date       time.Time // sıfırsa şimdi
	ExpiresAt  *time.Time
	EmployeeID *uint
	Notes      string
}

// RegisterTransaction: Yeni hareket. Doğrula -> uygula -> stok ve hareketi
// tek transaction'da kaydet.
func (s *Service) RegisterTransaction(in TransactionInput) (*models.StockTransaction, error) {
	if err := s.checkTransactionFields(&in); err != nil {
		return nil, err
	}

	unlock := s.lockStock(in.StockID)
	defer unlock()

	var rec models.StockTransaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var stk models.Stock
		if err := tx.First(&stk, in.StockID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStockNotFound
			}
			return err
		}

		if err := validateMovement(stk.TotalStock, in.Quantity, in.Type, s.ceiling(&stk)); err != nil {
			return err
		}

		stk.TotalStock = applyMovement(stk.TotalStock, in.Quantity, in.Type)
		if err := tx.Save(&stk).Error; err != nil {
			return err
		}

		rec = models.StockTransaction{
			StockID:    in.StockID,
			Quantity:   in.Quantity,
			Type:       in.Type,
			Date:       in.Date,
			ExpiresAt:  in.ExpiresAt,
			EmployeeID: in.EmployeeID,
			Notes:      in.Notes,
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// AmendTransaction: Mevcut hareketin miktarını/tipini değiştirir.
// Önce eski etki geri alınır, yeni etki geri alınmış duruma karşı doğrulanır,
// sonra uygulanır. Doğrulama başarısızsa transaction geri sarılır; ne stok
// ne hareket kaydı değişmiş olur.
func (s *Service) AmendTransaction(txID uint, newQuantity *int, newType *models.TransactionType) (*models.StockTransaction, error) {
	var rec models.StockTransaction
	if err := s.db.First(&rec, txID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	unlock := s.lockStock(rec.StockID)
	defer unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Kilidi aldıktan sonra taze oku
		if err := tx.First(&rec, txID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		quantity := rec.Quantity
		txType := rec.Type
		if newQuantity != nil {
			quantity = *newQuantity
		}
		if newType != nil {
			txType = *newType
		}
		if quantity == rec.Quantity && txType == rec.Type {
			return nil // değişiklik yok
		}

		var stk models.Stock
		if err := tx.First(&stk, rec.StockID).Error; err != nil {
			return err
		}

		// Eski etkiyi geri al (bellekte; ara durum kalıcı olmaz)
		reverted := applyMovement(stk.TotalStock, rec.Quantity, rec.Type.Reverse())

		// Yeni etkiyi geri alınmış duruma karşı doğrula
		if err := validateMovement(reverted, quantity, txType, s.ceiling(&stk)); err != nil {
			return err
		}

		stk.TotalStock = applyMovement(reverted, quantity, txType)
		if err := tx.Save(&stk).Error; err != nil {
			return err
		}

		rec.Quantity = quantity
		rec.Type = txType
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RetractTransaction: Hareketi siler ve etkisini geri alır. Geri alma da
// normal bir hareket gibi doğrulanır: bir çıkışın geri alınması tavanı,
// bir girişin geri alınması mevcut stoku aşamaz.
func (s *Service) RetractTransaction(txID uint) error {
	var rec models.StockTransaction
	if err := s.db.First(&rec, txID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}

	unlock := s.lockStock(rec.StockID)
	defer unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, txID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		var stk models.Stock
		if err := tx.First(&stk, rec.StockID).Error; err != nil {
			return err
		}

		reverse := rec.Type.Reverse()
		if err := validateMovement(stk.TotalStock, rec.Quantity, reverse, s.ceiling(&stk)); err != nil {
			return err
		}

		stk.TotalStock = applyMovement(stk.TotalStock, rec.Quantity, reverse)
		if err := tx.Save(&stk).Error; err != nil {
			return err
		}
		return tx.Delete(&rec).Error
	})
}

func (s *Service) GetTransaction(txID uint) (*models.StockTransaction, error) {
	var rec models.StockTransaction
	if err := s.db.Preload("Employee").First(&rec, txID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Service) checkTransactionFields(in *TransactionInput) error {
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	if in.ExpiresAt != nil {
		// Son kullanma tarihi sadece girişler için ve gelecekte olmalı
		if in.Type != models.TransactionIn || !in.ExpiresAt.After(time.Now()) {
			return ErrInvalidTransaction
		}
	}
	if in.EmployeeID != nil {
		var emp models.Employee
		if err := s.db.First(&emp, *in.EmployeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}
	}
	return nil
}
