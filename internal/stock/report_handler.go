package stock

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GET /api/stocks/:id/history?from=2025-12-01&to=2025-12-31
func StockHistoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stockID, err := paramID(c)
		if err != nil {
			return err
		}

		var from, to *time.Time
		if s := c.Query("from"); s != "" {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from formatı 'YYYY-MM-DD' olmalı")
			}
			from = &d
		}
		if s := c.Query("to"); s != "" {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to formatı 'YYYY-MM-DD' olmalı")
			}
			// Gün sonuna kadar dahil
			end := d.Add(24*time.Hour - time.Second)
			to = &end
		}

		stk, err := svc.GetStock(stockID)
		if err != nil {
			return httpError(err)
		}

		txs, err := svc.GetHistory(stockID, from, to)
		if err != nil {
			return httpError(err)
		}

		res := make([]TransactionResponse, 0, len(txs))
		for i := range txs {
			res = append(res, transactionResponse(&txs[i], stk.TotalStock))
		}
		return c.JSON(res)
	}
}

// GET /api/stock-report?filter=full|low|critical
func StockReportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := ReportFilter(c.Query("filter", string(FilterFull)))

		report, err := svc.GenerateReport(filter)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(report)
	}
}

// GET /api/stock-report/export?filter=full|low|critical — Excel indir
func StockReportExportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := ReportFilter(c.Query("filter", string(FilterFull)))

		buf, err := svc.ExportReportXLSX(filter)
		if err != nil {
			return httpError(err)
		}

		filename := fmt.Sprintf("stok-raporu-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
