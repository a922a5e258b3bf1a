package stock

import (
	"bytes"
	"time"

	"lokanta-backend/internal/models"
)

// StockLedger: Defterin dışarıya açtığı işlemler. Sipariş, satın alma ve
// yönetim tarafı defteri bu arayüz üzerinden kullanır; HTTP katmanı da
// somut Service yerine buna bağlanabilir.
type StockLedger interface {
	// Kalem kataloğu
	CreateItem(in ItemInput) (*models.StockItem, error)
	RenameItem(id uint, newName string) (*models.StockItem, error)
	UpdateItem(id uint, in ItemUpdateInput) (*models.StockItem, error)
	DeleteItem(id uint) error
	GetItem(id uint) (*models.StockItem, error)
	ListItems() ([]models.StockItem, error)

	// Stok kayıtları
	CreateStock(itemID uint, initialQuantity, optimalQuantity int) (*models.Stock, error)
	OverrideInitialQuantity(stockID uint, newTotal int) (*models.Stock, error)
	DeleteStock(stockID uint) error
	GetStock(stockID uint) (*models.Stock, error)
	GetStockByItem(itemID uint) (*models.Stock, error)
	ListStocks() ([]models.Stock, error)

	// Hareket defteri
	RegisterTransaction(in TransactionInput) (*models.StockTransaction, error)
	AmendTransaction(txID uint, newQuantity *int, newType *models.TransactionType) (*models.StockTransaction, error)
	RetractTransaction(txID uint) error
	GetTransaction(txID uint) (*models.StockTransaction, error)

	// Raporlama
	GetHistory(stockID uint, from, to *time.Time) ([]models.StockTransaction, error)
	GenerateReport(filter ReportFilter) (*Report, error)
	ExportReportXLSX(filter ReportFilter) (*bytes.Buffer, error)
}

var _ StockLedger = (*Service)(nil)
