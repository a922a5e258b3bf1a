package stock

import (
	"fmt"
	"testing"

	"lokanta-backend/internal/database"
	"lokanta-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB: Her test için izole in-memory SQLite. Tek bağlantıya
// sabitleniyor, yoksa her pool bağlantısı ayrı boş veritabanı görür.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(newTestDB(t), 3)
}

// seedStock: Kalem + stok kaydı açar.
func seedStock(t *testing.T, svc *Service, name string, initial, optimal int) *models.Stock {
	t.Helper()

	item, err := svc.CreateItem(ItemInput{Name: name, Unit: "kg", Category: models.CategoryIngredient})
	require.NoError(t, err)

	stk, err := svc.CreateStock(item.ID, initial, optimal)
	require.NoError(t, err)
	return stk
}

func mustRegister(t *testing.T, svc *Service, stockID uint, quantity int, txType models.TransactionType) *models.StockTransaction {
	t.Helper()
	rec, err := svc.RegisterTransaction(TransactionInput{StockID: stockID, Quantity: quantity, Type: txType})
	require.NoError(t, err)
	return rec
}

func currentTotal(t *testing.T, svc *Service, stockID uint) int {
	t.Helper()
	stk, err := svc.GetStock(stockID)
	require.NoError(t, err)
	return stk.TotalStock
}
