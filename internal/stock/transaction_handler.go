package stock

import (
	"fmt"
	"time"

	"lokanta-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RegisterTransactionRequest struct {
	Quantity   int                    `json:"quantity"`
	Type       models.TransactionType `json:"type"`
	Date       string                 `json:"date"`       // "2025-12-09", boşsa bugün
	ExpiresAt  string                 `json:"expires_at"` // "2026-01-15", opsiyonel
	EmployeeID *uint                  `json:"employee_id"`
	Notes      string                 `json:"notes"`
}

type AmendTransactionRequest struct {
	Quantity *int                    `json:"quantity"`
	Type     *models.TransactionType `json:"type"`
}

type TransactionResponse struct {
	ID         uint                   `json:"id"`
	StockID    uint                   `json:"stock_id"`
	Quantity   int                    `json:"quantity"`
	Type       models.TransactionType `json:"type"`
	Date       string                 `json:"date"`
	ExpiresAt  *string                `json:"expires_at"`
	EmployeeID *uint                  `json:"employee_id"`
	Notes      string                 `json:"notes"`
	TotalStock int                    `json:"total_stock"` // hareket sonrası güncel miktar
	CreatedAt  string                 `json:"created_at"`
}

func transactionResponse(rec *models.StockTransaction, totalStock int) TransactionResponse {
	var expires *string
	if rec.ExpiresAt != nil {
		s := rec.ExpiresAt.Format("2006-01-02")
		expires = &s
	}
	return TransactionResponse{
		ID:         rec.ID,
		StockID:    rec.StockID,
		Quantity:   rec.Quantity,
		Type:       rec.Type,
		Date:       rec.Date.Format("2006-01-02"),
		ExpiresAt:  expires,
		EmployeeID: rec.EmployeeID,
		Notes:      rec.Notes,
		TotalStock: totalStock,
		CreatedAt:  rec.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/stocks/:id/transactions
func RegisterTransactionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stockID, err := paramID(c)
		if err != nil {
			return err
		}

		var body RegisterTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in := TransactionInput{
			StockID:    stockID,
			Quantity:   body.Quantity,
			Type:       body.Type,
			EmployeeID: body.EmployeeID,
			Notes:      body.Notes,
		}

		if body.Date != "" {
			d, err := time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			in.Date = d
		}
		if body.ExpiresAt != "" {
			ex, err := time.Parse("2006-01-02", body.ExpiresAt)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Son kullanma tarihi formatı 'YYYY-MM-DD' olmalı")
			}
			in.ExpiresAt = &ex
		}

		rec, err := svc.RegisterTransaction(in)
		if err != nil {
			return httpError(err)
		}

		stk, err := svc.GetStock(stockID)
		if err != nil {
			return httpError(err)
		}

		writeAudit(c, "stock_transaction", rec.ID, models.AuditActionCreate,
			fmt.Sprintf("Stok hareketi: %s %d %s", rec.Type, rec.Quantity, stk.StockItem.Name), nil, rec)

		return c.Status(fiber.StatusCreated).JSON(transactionResponse(rec, stk.TotalStock))
	}
}

// PUT /api/stock-transactions/:id
func AmendTransactionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txID, err := paramID(c)
		if err != nil {
			return err
		}

		var body AmendTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		before, err := svc.GetTransaction(txID)
		if err != nil {
			return httpError(err)
		}

		rec, err := svc.AmendTransaction(txID, body.Quantity, body.Type)
		if err != nil {
			return httpError(err)
		}

		stk, err := svc.GetStock(rec.StockID)
		if err != nil {
			return httpError(err)
		}

		writeAudit(c, "stock_transaction", rec.ID, models.AuditActionUpdate,
			fmt.Sprintf("Hareket düzeltildi: %s %d -> %s %d", before.Type, before.Quantity, rec.Type, rec.Quantity),
			before, rec)

		return c.JSON(transactionResponse(rec, stk.TotalStock))
	}
}

// DELETE /api/stock-transactions/:id
func RetractTransactionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txID, err := paramID(c)
		if err != nil {
			return err
		}

		before, err := svc.GetTransaction(txID)
		if err != nil {
			return httpError(err)
		}

		if err := svc.RetractTransaction(txID); err != nil {
			return httpError(err)
		}

		writeAudit(c, "stock_transaction", txID, models.AuditActionDelete,
			fmt.Sprintf("Hareket geri çekildi: %s %d", before.Type, before.Quantity), before, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/stock-transactions/:id
func GetTransactionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txID, err := paramID(c)
		if err != nil {
			return err
		}

		rec, err := svc.GetTransaction(txID)
		if err != nil {
			return httpError(err)
		}

		stk, err := svc.GetStock(rec.StockID)
		if err != nil {
			return httpError(err)
		}

		return c.JSON(transactionResponse(rec, stk.TotalStock))
	}
}
