package stock

import (
	"testing"
	"time"

	"lokanta-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGetHistoryOrderAndRange(t *testing.T) {
	svc := newTestService(t)
	stk := seedStock(t, svc, "Un", 100, 100)

	day := func(d int) time.Time { return time.Date(2025, 12, d, 0, 0, 0, 0, time.UTC) }

	// geriye dönük tarihlerle karışık sırada gir
	_, err := svc.RegisterTransaction(TransactionInput{StockID: stk.ID, Quantity: 5, Type: models.TransactionOut, Date: day(20)})
	require.NoError(t, err)
	_, err = svc.RegisterTransaction(TransactionInput{StockID: stk.ID, Quantity: 3, Type: models.TransactionOut, Date: day(5)})
	require.NoError(t, err)
	_, err = svc.RegisterTransaction(TransactionInput{StockID: stk.ID, Quantity: 8, Type: models.TransactionIn, Date: day(12)})
	require.NoError(t, err)

	all, err := svc.GetHistory(stk.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// hareket tarihine göre sıralı
	assert.Equal(t, 3, all[0].Quantity)
	assert.Equal(t, 8, all[1].Quantity)
	assert.Equal(t, 5, all[2].Quantity)

	from := day(6)
	to := day(15)
	ranged, err := svc.GetHistory(stk.ID, &from, &to)
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, 8, ranged[0].Quantity)

	_, err = svc.GetHistory(9999, nil, nil)
	require.ErrorIs(t, err, ErrStockNotFound)
}

func seedReportData(t *testing.T, svc *Service) {
	t.Helper()

	seed := func(name string, price float64, total, optimal int) {
		item, err := svc.CreateItem(ItemInput{Name: name, Unit: "kg", Category: models.CategoryIngredient, UnitPrice: price})
		require.NoError(t, err)
		_, err = svc.CreateStock(item.ID, total, optimal)
		require.NoError(t, err)
	}

	seed("Un", 10, 1, 10)      // %10 -> critical
	seed("Şeker", 5, 6, 10)    // %60 -> normal
	seed("Tuz", 2, 4, 10)      // %40 -> low
	seed("Mercimek", 8, 0, 10) // out_of_stock
}

func TestGenerateReportFilters(t *testing.T) {
	svc := newTestService(t)
	seedReportData(t, svc)

	full, err := svc.GenerateReport(FilterFull)
	require.NoError(t, err)
	assert.Equal(t, 4, full.TotalItems)
	assert.Len(t, full.Items, 4)
	// 1*10 + 6*5 + 4*2 + 0*8
	assert.InDelta(t, 48.0, full.TotalValue, 0.001)

	low, err := svc.GenerateReport(FilterLow)
	require.NoError(t, err)
	assert.Equal(t, 3, low.TotalItems) // critical + low + out_of_stock

	critical, err := svc.GenerateReport(FilterCritical)
	require.NoError(t, err)
	require.Equal(t, 2, critical.TotalItems)
	names := []string{critical.Items[0].ItemName, critical.Items[1].ItemName}
	assert.Contains(t, names, "Un")
	assert.Contains(t, names, "Mercimek")
	for _, row := range critical.Items {
		assert.Contains(t, []models.StockStatus{models.StatusCritical, models.StatusOutOfStock}, row.Status)
	}
}

func TestGenerateReportCriticalScenario(t *testing.T) {
	svc := newTestService(t)

	seed := func(name string, total, optimal int) {
		item, err := svc.CreateItem(ItemInput{Name: name, Unit: "kg", Category: models.CategoryIngredient})
		require.NoError(t, err)
		_, err = svc.CreateStock(item.ID, total, optimal)
		require.NoError(t, err)
	}
	seed("Un", 1, 10)   // %10
	seed("Şeker", 6, 10) // %60

	report, err := svc.GenerateReport(FilterCritical)
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.Equal(t, "Un", report.Items[0].ItemName)
	assert.Equal(t, models.StatusCritical, report.Items[0].Status)
}

func TestGenerateReportUnknownFilter(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GenerateReport("weekly")
	require.ErrorIs(t, err, ErrInvalidField)
}

func TestExportReportXLSX(t *testing.T) {
	svc := newTestService(t)
	seedReportData(t, svc)

	buf, err := svc.ExportReportXLSX(FilterFull)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Stok Raporu")
	require.NoError(t, err)
	// başlık + 4 kalem + boş satır + özet
	require.GreaterOrEqual(t, len(rows), 5)
	assert.Equal(t, []string{"Kalem", "Birim", "Mevcut", "Optimal", "Durum"}, rows[0])
	assert.Len(t, rows[1:5], 4)
}
