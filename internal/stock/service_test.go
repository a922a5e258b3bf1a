package stock

import (
	"sync"
	"testing"
	"time"

	"lokanta-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =========================================================================
// Kalem kataloğu
// =========================================================================

func TestCreateItemValidation(t *testing.T) {
	svc := newTestService(t)

	menuID := uint(1)
	cases := []struct {
		name string
		in   ItemInput
	}{
		{"boş isim", ItemInput{Name: "  ", Unit: "kg", Category: models.CategoryIngredient}},
		{"boş birim", ItemInput{Name: "Un", Unit: "", Category: models.CategoryIngredient}},
		{"bilinmeyen kategori", ItemInput{Name: "Un", Unit: "kg", Category: "gadget"}},
		{"malzeme olmayan kalemde menü referansı", ItemInput{Name: "Tencere", Unit: "adet", Category: models.CategoryUtensil, MenuItemID: &menuID}},
		{"negatif fiyat", ItemInput{Name: "Un", Unit: "kg", Category: models.CategoryIngredient, UnitPrice: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateItem(tc.in)
			require.ErrorIs(t, err, ErrInvalidField)
		})
	}

	item, err := svc.CreateItem(ItemInput{Name: " Un ", Unit: " kg ", Category: models.CategoryIngredient, UnitPrice: 12.5})
	require.NoError(t, err)
	assert.Equal(t, "Un", item.Name)
	assert.Equal(t, "kg", item.Unit)
}

func TestCreateItemDuplicateNameCaseInsensitive(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateItem(ItemInput{Name: "Domates", Unit: "kg", Category: models.CategoryIngredient})
	require.NoError(t, err)

	_, err = svc.CreateItem(ItemInput{Name: "DOMATES", Unit: "kg", Category: models.CategoryIngredient})
	require.ErrorIs(t, err, ErrDuplicateName)

	_, err = svc.CreateItem(ItemInput{Name: "domates", Unit: "kg", Category: models.CategoryIngredient})
	require.ErrorIs(t, err, ErrDuplicateName)
}

func TestCreateItemUnknownMenuRef(t *testing.T) {
	svc := newTestService(t)

	menuID := uint(999)
	_, err := svc.CreateItem(ItemInput{Name: "Un", Unit: "kg", Category: models.CategoryIngredient, MenuItemID: &menuID})
	require.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestRenameItem(t *testing.T) {
	svc := newTestService(t)

	a, err := svc.CreateItem(ItemInput{Name: "Un", Unit: "kg", Category: models.CategoryIngredient})
	require.NoError(t, err)
	_, err = svc.CreateItem(ItemInput{Name: "Şeker", Unit: "kg", Category: models.CategoryIngredient})
	require.NoError(t, err)

	// başka kalemin ismine çakışma
	_, err = svc.RenameItem(a.ID, "şeker")
	require.ErrorIs(t, err, ErrDuplicateName)

	// kendi ismi (farklı büyük/küçük harfle) serbest
	renamed, err := svc.RenameItem(a.ID, "UN")
	require.NoError(t, err)
	assert.Equal(t, "UN", renamed.Name)

	_, err = svc.RenameItem(12345, "Tuz")
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestDeleteItemInUse(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Un", 10, 10)

	err := svc.DeleteItem(stk.StockItemID)
	require.ErrorIs(t, err, ErrItemInUse)

	// önce stok kaydı silinirse kalem de silinebilir
	require.NoError(t, svc.DeleteStock(stk.ID))
	require.NoError(t, svc.DeleteItem(stk.StockItemID))

	_, err = svc.GetItem(stk.StockItemID)
	require.ErrorIs(t, err, ErrItemNotFound)
}

// =========================================================================
// Stok kayıtları
// =========================================================================

func TestCreateStockValidation(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.CreateItem(ItemInput{Name: "Un", Unit: "kg", Category: models.CategoryIngredient})
	require.NoError(t, err)

	_, err = svc.CreateStock(item.ID, -1, 10)
	require.ErrorIs(t, err, ErrInvalidField)

	_, err = svc.CreateStock(item.ID, 5, 0)
	require.ErrorIs(t, err, ErrInvalidField)

	_, err = svc.CreateStock(9999, 5, 10)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestCreateStockDuplicate(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Un", 10, 10)

	_, err := svc.CreateStock(stk.StockItemID, 3, 5)
	require.ErrorIs(t, err, ErrDuplicateStock)

	// ikinci kayıt açılmamış olmalı
	var count int64
	require.NoError(t, svc.DB().Model(&models.Stock{}).Where("stock_item_id = ?", stk.StockItemID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestOverrideInitialQuantity(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Un", 10, 10)

	_, err := svc.OverrideInitialQuantity(stk.ID, -5)
	require.ErrorIs(t, err, ErrInvalidField)

	updated, err := svc.OverrideInitialQuantity(stk.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.TotalStock)

	// hareket girildikten sonra düzeltme kapalı
	mustRegister(t, svc, stk.ID, 2, models.TransactionOut)
	_, err = svc.OverrideInitialQuantity(stk.ID, 40)
	require.ErrorIs(t, err, ErrStockHasHistory)
	assert.Equal(t, 23, currentTotal(t, svc, stk.ID))
}

func TestGetStockByItem(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.CreateItem(ItemInput{Name: "Un", Unit: "kg", Category: models.CategoryIngredient})
	require.NoError(t, err)

	stk, err := svc.GetStockByItem(item.ID)
	require.NoError(t, err)
	assert.Nil(t, stk)

	created, err := svc.CreateStock(item.ID, 5, 10)
	require.NoError(t, err)

	stk, err = svc.GetStockByItem(item.ID)
	require.NoError(t, err)
	require.NotNil(t, stk)
	assert.Equal(t, created.ID, stk.ID)

	_, err = svc.GetStockByItem(9999)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestDeleteStockCascadesHistory(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Un", 10, 10)

	rec := mustRegister(t, svc, stk.ID, 3, models.TransactionOut)

	require.NoError(t, svc.DeleteStock(stk.ID))

	_, err := svc.GetStock(stk.ID)
	require.ErrorIs(t, err, ErrStockNotFound)
	_, err = svc.GetTransaction(rec.ID)
	require.ErrorIs(t, err, ErrTransactionNotFound)

	require.ErrorIs(t, svc.DeleteStock(stk.ID), ErrStockNotFound)
}

// =========================================================================
// Hareket defteri
// =========================================================================

func TestRegisterTransactionBoundaries(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Un", 10, 10)

	// mevcut stok kadar çıkış serbest, bir fazlası değil
	mustRegister(t, svc, stk.ID, 10, models.TransactionOut)
	assert.Equal(t, 0, currentTotal(t, svc, stk.ID))

	_, err := svc.RegisterTransaction(TransactionInput{StockID: stk.ID, Quantity: 1, Type: models.TransactionOut})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 0, currentTotal(t, svc, stk.ID))
}

func TestRegisterTransactionQuantityRange(t *testing.T) {
	svc := newTestService(t)
	// tavan 4000*3 = 12000, 10000'lik giriş sığar
	stk := seedStock(t, svc, "Un", 0, 4000)

	_, err := svc.RegisterTransaction(TransactionInput{StockID: stk.ID, Quantity: 0, Type: models.TransactionIn})
	require.ErrorIs(t, err, ErrInvalidTransaction)

	_, err = svc.RegisterTransaction(TransactionInput{StockID: stk.ID, Quantity: 10001, Type: models.TransactionIn})
	require.ErrorIs(t, err, ErrInvalidTransaction)

	mustRegister(t, svc, stk.ID, 1, models.TransactionIn)
	mustRegister(t, svc, stk.ID, 10000, models.TransactionIn)
	assert.Equal(t, 10001, currentTotal(t, svc, stk.ID))
}

func TestRegisterTransactionCeiling(t *testing.T) {
	svc := newTestService(t) // faktör 3
	stk := seedStock(t, svc, "Un", 25, 10)

	_, err := svc.RegisterTransaction(TransactionInput{StockID: stk.ID, Quantity: 6, Type: models.TransactionIn})
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 25, currentTotal(t, svc, stk.ID))

	// tam tavana kadar serbest
	mustRegister(t, svc, stk.ID, 5, models.TransactionIn)
	assert.Equal(t, 30, currentTotal(t, svc, stk.ID))
}

func TestRegisterTransactionUnknownStock(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RegisterTransaction(TransactionInput{StockID: 42, Quantity: 1, Type: models.TransactionIn})
	require.ErrorIs(t, err, ErrStockNotFound)
}

func TestRegisterTransactionExpiresRules(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Süt", 10, 20)

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(72 * time.Hour)

	// geçmiş son kullanma tarihi olmaz
	_, err := svc.RegisterTransaction(TransactionInput{StockID: stk.ID, Quantity: 2, Type: models.TransactionIn, ExpiresAt: &past})
	require.ErrorIs(t, err, ErrInvalidTransaction)

	// çıkışta son kullanma tarihi olmaz
	_, err = svc.RegisterTransaction(TransactionInput{StockID: stk.ID, Quantity: 2, Type: models.TransactionOut, ExpiresAt: &future})
	require.ErrorIs(t, err, ErrInvalidTransaction)

	rec, err := svc.RegisterTransaction(TransactionInput{StockID: stk.ID, Quantity: 2, Type: models.TransactionIn, ExpiresAt: &future})
	require.NoError(t, err)
	require.NotNil(t, rec.ExpiresAt)
}

func TestRegisterTransactionEmployeeRef(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Un", 10, 10)

	empID := uint(77)
	_, err := svc.RegisterTransaction(TransactionInput{StockID: stk.ID, Quantity: 1, Type: models.TransactionOut, EmployeeID: &empID})
	require.ErrorIs(t, err, ErrEmployeeNotFound)

	emp := models.Employee{Name: "Ayşe", Role: "depo", Active: true}
	require.NoError(t, svc.DB().Create(&emp).Error)

	rec, err := svc.RegisterTransaction(TransactionInput{StockID: stk.ID, Quantity: 1, Type: models.TransactionOut, EmployeeID: &emp.ID})
	require.NoError(t, err)
	require.NotNil(t, rec.EmployeeID)
	assert.Equal(t, emp.ID, *rec.EmployeeID)
}

// Spec'lenmiş uçtan uca akış: 10 başla, IN 5, OUT 20 reddedilir,
// IN 5 -> IN 3 düzeltilir, sonra geri çekilir.
func TestLedgerScenario(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Un", 10, 10)

	in5 := mustRegister(t, svc, stk.ID, 5, models.TransactionIn)
	assert.Equal(t, 15, currentTotal(t, svc, stk.ID))

	_, err := svc.RegisterTransaction(TransactionInput{StockID: stk.ID, Quantity: 20, Type: models.TransactionOut})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 15, currentTotal(t, svc, stk.ID))

	newQty := 3
	amended, err := svc.AmendTransaction(in5.ID, &newQty, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, amended.Quantity)
	assert.Equal(t, 13, currentTotal(t, svc, stk.ID))

	require.NoError(t, svc.RetractTransaction(in5.ID))
	assert.Equal(t, 10, currentTotal(t, svc, stk.ID))

	_, err = svc.GetTransaction(in5.ID)
	require.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestAmendTransactionTypeChange(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Un", 10, 10)

	rec := mustRegister(t, svc, stk.ID, 4, models.TransactionOut)
	assert.Equal(t, 6, currentTotal(t, svc, stk.ID))

	// OUT 4 -> IN 4: geri alınca 10, giriş sonrası 14
	newType := models.TransactionIn
	amended, err := svc.AmendTransaction(rec.ID, nil, &newType)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionIn, amended.Type)
	assert.Equal(t, 14, currentTotal(t, svc, stk.ID))
}

func TestAmendTransactionAtomicOnFailure(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Un", 10, 10)

	rec := mustRegister(t, svc, stk.ID, 4, models.TransactionOut)
	assert.Equal(t, 6, currentTotal(t, svc, stk.ID))

	// geri alınmış durum 10; OUT 20 sığmaz
	newQty := 20
	_, err := svc.AmendTransaction(rec.ID, &newQty, nil)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// ne stok ne hareket değişmiş olmalı
	assert.Equal(t, 6, currentTotal(t, svc, stk.ID))
	unchanged, err := svc.GetTransaction(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, unchanged.Quantity)
	assert.Equal(t, models.TransactionOut, unchanged.Type)
}

func TestAmendShrinkingInCannotStrandLaterOuts(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Un", 0, 10)

	in5 := mustRegister(t, svc, stk.ID, 5, models.TransactionIn)
	mustRegister(t, svc, stk.ID, 4, models.TransactionOut)
	assert.Equal(t, 1, currentTotal(t, svc, stk.ID))

	// IN 5 -> IN 2 olursa toplam -2'ye düşerdi
	newQty := 2
	_, err := svc.AmendTransaction(in5.ID, &newQty, nil)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, currentTotal(t, svc, stk.ID))
}

func TestAmendNoChangeIsNoOp(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Un", 10, 10)

	rec := mustRegister(t, svc, stk.ID, 4, models.TransactionOut)

	amended, err := svc.AmendTransaction(rec.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, rec.Quantity, amended.Quantity)
	assert.Equal(t, 6, currentTotal(t, svc, stk.ID))
}

func TestRetractTransactionAtomicOnFailure(t *testing.T) {
	svc := newTestService(t) // tavan 10*3 = 30
	stk := seedStock(t, svc, "Un", 28, 10)

	out5 := mustRegister(t, svc, stk.ID, 5, models.TransactionOut)
	mustRegister(t, svc, stk.ID, 7, models.TransactionIn)
	assert.Equal(t, 30, currentTotal(t, svc, stk.ID))

	// OUT 5'in geri alınması 35 yapardı, tavan 30
	err := svc.RetractTransaction(out5.ID)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	assert.Equal(t, 30, currentTotal(t, svc, stk.ID))
	_, err = svc.GetTransaction(out5.ID)
	require.NoError(t, err) // hareket silinmemiş olmalı
}

func TestRetractInExceedingCurrentStock(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Un", 0, 10)

	in5 := mustRegister(t, svc, stk.ID, 5, models.TransactionIn)
	mustRegister(t, svc, stk.ID, 4, models.TransactionOut)
	assert.Equal(t, 1, currentTotal(t, svc, stk.ID))

	// IN 5'in geri alınması toplamı -4 yapardı
	err := svc.RetractTransaction(in5.ID)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, currentTotal(t, svc, stk.ID))
}

// Tekrar oynatma değişmezi: toplam = başlangıç + toplam giriş - toplam çıkış
func TestReplayInvariant(t *testing.T) {
	svc := newTestService(t)
	initial := 10
	stk := seedStock(t, svc, "Un", initial, 50)

	moves := []struct {
		q int
		t models.TransactionType
	}{
		{5, models.TransactionIn},
		{3, models.TransactionOut},
		{40, models.TransactionIn},
		{12, models.TransactionOut},
		{1, models.TransactionIn},
	}
	var recs []*models.StockTransaction
	for _, m := range moves {
		recs = append(recs, mustRegister(t, svc, stk.ID, m.q, m.t))
	}

	// araya bir düzeltme ve bir geri çekme
	newQty := 7
	_, err := svc.AmendTransaction(recs[1].ID, &newQty, nil) // OUT 3 -> OUT 7
	require.NoError(t, err)
	require.NoError(t, svc.RetractTransaction(recs[4].ID)) // IN 1 silindi

	var live []models.StockTransaction
	require.NoError(t, svc.DB().Where("stock_id = ?", stk.ID).Order("id asc").Find(&live).Error)

	replayed := initial
	for _, rec := range live {
		replayed = applyMovement(replayed, rec.Quantity, rec.Type)
	}
	assert.Equal(t, replayed, currentTotal(t, svc, stk.ID))
	assert.Equal(t, 10+5-7+40-12, currentTotal(t, svc, stk.ID))
}

// Aynı kayda eşzamanlı çıkışlar asla eksiye düşüremez (lost-update koruması).
func TestConcurrentOutsDoNotOverdraw(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Un", 5, 10)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RegisterTransaction(TransactionInput{StockID: stk.ID, Quantity: 1, Type: models.TransactionOut})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ErrInsufficientStock)
		}
	}
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 0, currentTotal(t, svc, stk.ID))
}
