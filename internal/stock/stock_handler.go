package stock

import (
	"fmt"

	"lokanta-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockResponse struct {
	ID                   uint               `json:"id"`
	StockItemID          uint               `json:"stock_item_id"`
	ItemName             string             `json:"item_name"`
	Unit                 string             `json:"unit"`
	TotalStock           int                `json:"total_stock"`
	OptimalStockQuantity int                `json:"optimal_stock_quantity"`
	Status               models.StockStatus `json:"status"`
}

type CreateStockRequest struct {
	StockItemID     uint `json:"stock_item_id"`
	InitialQuantity int  `json:"initial_quantity"`
	OptimalQuantity int  `json:"optimal_quantity"`
}

type OverrideQuantityRequest struct {
	NewTotal int `json:"new_total"`
}

func stockResponse(stk *models.Stock) StockResponse {
	return StockResponse{
		ID:                   stk.ID,
		StockItemID:          stk.StockItemID,
		ItemName:             stk.StockItem.Name,
		Unit:                 stk.StockItem.Unit,
		TotalStock:           stk.TotalStock,
		OptimalStockQuantity: stk.OptimalStockQuantity,
		Status:               ClassifyStatus(stk),
	}
}

// GET /api/stocks
func ListStocksHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stocks, err := svc.ListStocks()
		if err != nil {
			return httpError(err)
		}
		res := make([]StockResponse, 0, len(stocks))
		for i := range stocks {
			res = append(res, stockResponse(&stocks[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/stocks/:id
func GetStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		stk, err := svc.GetStock(id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(stockResponse(stk))
	}
}

// POST /api/stocks
func CreateStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.StockItemID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "stock_item_id zorunlu")
		}

		stk, err := svc.CreateStock(body.StockItemID, body.InitialQuantity, body.OptimalQuantity)
		if err != nil {
			return httpError(err)
		}

		writeAudit(c, "stock", stk.ID, models.AuditActionCreate,
			fmt.Sprintf("Stok kaydı açıldı: %s, başlangıç %d", stk.StockItem.Name, stk.TotalStock), nil, stk)

		return c.Status(fiber.StatusCreated).JSON(stockResponse(stk))
	}
}

// PUT /api/stocks/:id/quantity (sadece admin, sadece hareketsiz kayıtlarda)
func OverrideQuantityHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		var body OverrideQuantityRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		before, err := svc.GetStock(id)
		if err != nil {
			return httpError(err)
		}

		stk, err := svc.OverrideInitialQuantity(id, body.NewTotal)
		if err != nil {
			return httpError(err)
		}

		writeAudit(c, "stock", stk.ID, models.AuditActionUpdate,
			fmt.Sprintf("Başlangıç miktarı düzeltildi: %d -> %d", before.TotalStock, stk.TotalStock), before, stk)

		// Yanıt için kalem bilgisiyle taze oku
		full, err := svc.GetStock(id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(stockResponse(full))
	}
}

// DELETE /api/stocks/:id (sadece admin, geçmişiyle birlikte siler)
func DeleteStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		before, err := svc.GetStock(id)
		if err != nil {
			return httpError(err)
		}

		if err := svc.DeleteStock(id); err != nil {
			return httpError(err)
		}

		writeAudit(c, "stock", id, models.AuditActionDelete,
			fmt.Sprintf("Stok kaydı ve geçmişi silindi: %s", before.StockItem.Name), before, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/stock-items/:id/stock — kalemin stok kaydı (varsa)
func GetStockByItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		stk, err := svc.GetStockByItem(id)
		if err != nil {
			return httpError(err)
		}
		if stk == nil {
			return fiber.NewError(fiber.StatusNotFound, "Bu kalem için stok kaydı yok")
		}
		return c.JSON(stockResponse(stk))
	}
}
