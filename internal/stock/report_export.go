package stock

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportReportXLSX: Durum raporunu Excel dosyası olarak üretir.
func (s *Service) ExportReportXLSX(filter ReportFilter) (*bytes.Buffer, error) {
	report, err := s.GenerateReport(filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Stok Raporu"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Kalem", "Birim", "Mevcut", "Optimal", "Durum"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, item := range report.Items {
		values := []interface{}{item.ItemName, item.Unit, item.Current, item.Optimal, string(item.Status)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// Özet satırı
	summaryRow := len(report.Items) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	_ = f.SetCellValue(sheet, cell, fmt.Sprintf("Toplam %d kalem, toplam değer %.2f (%s)",
		report.TotalItems, report.TotalValue, time.Now().Format("2006-01-02")))

	return f.WriteToBuffer()
}
