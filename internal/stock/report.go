package stock

import (
	"time"

	"lokanta-backend/internal/models"
)

type ReportFilter string

const (
	FilterFull     ReportFilter = "full"
	FilterLow      ReportFilter = "low"      // low + critical + out_of_stock
	FilterCritical ReportFilter = "critical" // critical + out_of_stock
)

type ReportRow struct {
	ItemName string             `json:"item_name"`
	Unit     string             `json:"unit"`
	Current  int                `json:"current"`
	Optimal  int                `json:"optimal"`
	Status   models.StockStatus `json:"status"`
}

type Report struct {
	TotalItems int         `json:"total_items"`
	TotalValue float64     `json:"total_value"`
	Items      []ReportRow `json:"items"`
}

// GetHistory: Stok kaydının hareket geçmişi, istenirse tarih aralığıyla.
// Sıralama hareket tarihine göre; aynı gün içinde kayıt sırasına göre.
func (s *Service) GetHistory(stockID uint, from, to *time.Time) ([]models.StockTransaction, error) {
	var stk models.Stock
	if err := s.db.First(&stk, stockID).Error; err != nil {
		return nil, ErrStockNotFound
	}

	q := s.db.Preload("Employee").Where("stock_id = ?", stockID)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}

	var txs []models.StockTransaction
	if err := q.Order("date asc, id asc").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// GenerateReport: Tüm stok kayıtları üzerinden durum raporu.
// full: hepsi; low: low/critical/out_of_stock; critical: critical/out_of_stock.
func (s *Service) GenerateReport(filter ReportFilter) (*Report, error) {
	switch filter {
	case FilterFull, FilterLow, FilterCritical:
	default:
		return nil, ErrInvalidField
	}

	stocks, err := s.ListStocks()
	if err != nil {
		return nil, err
	}

	report := &Report{Items: []ReportRow{}}
	for i := range stocks {
		stk := &stocks[i]
		status := ClassifyStatus(stk)
		if !filterIncludes(filter, status) {
			continue
		}
		report.Items = append(report.Items, ReportRow{
			ItemName: stk.StockItem.Name,
			Unit:     stk.StockItem.Unit,
			Current:  stk.TotalStock,
			Optimal:  stk.OptimalStockQuantity,
			Status:   status,
		})
		report.TotalItems++
		report.TotalValue += float64(stk.TotalStock) * stk.StockItem.UnitPrice
	}
	return report, nil
}

func filterIncludes(filter ReportFilter, status models.StockStatus) bool {
	switch filter {
	case FilterFull:
		return true
	case FilterLow:
		return status == models.StatusLow || status == models.StatusCritical || status == models.StatusOutOfStock
	case FilterCritical:
		return status == models.StatusCritical || status == models.StatusOutOfStock
	default:
		return false
	}
}
