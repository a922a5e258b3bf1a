package stock

import (
	"fmt"

	"lokanta-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockItemResponse struct {
	ID         uint                     `json:"id"`
	Name       string                   `json:"name"`
	Unit       string                   `json:"unit"`
	Category   models.StockItemCategory `json:"category"`
	MenuItemID *uint                    `json:"menu_item_id"`
	UnitPrice  float64                  `json:"unit_price"`
}

type CreateStockItemRequest struct {
	Name       string                   `json:"name"`
	Unit       string                   `json:"unit"`
	Category   models.StockItemCategory `json:"category"`
	MenuItemID *uint                    `json:"menu_item_id"`
	UnitPrice  float64                  `json:"unit_price"`
}

type UpdateStockItemRequest struct {
	Name       *string                   `json:"name"`
	Unit       *string                   `json:"unit"`
	Category   *models.StockItemCategory `json:"category"`
	MenuItemID *uint                     `json:"menu_item_id"`
	ClearMenu  bool                      `json:"clear_menu"`
	UnitPrice  *float64                  `json:"unit_price"`
}

func itemResponse(item *models.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:         item.ID,
		Name:       item.Name,
		Unit:       item.Unit,
		Category:   item.Category,
		MenuItemID: item.MenuItemID,
		UnitPrice:  item.UnitPrice,
	}
}

// GET /api/stock-items
func ListStockItemsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListItems()
		if err != nil {
			return httpError(err)
		}
		res := make([]StockItemResponse, 0, len(items))
		for i := range items {
			res = append(res, itemResponse(&items[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/stock-items/:id
func GetStockItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		item, err := svc.GetItem(id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(itemResponse(item))
	}
}

// POST /api/stock-items (sadece admin)
func CreateStockItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStockItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		item, err := svc.CreateItem(ItemInput{
			Name:       body.Name,
			Unit:       body.Unit,
			Category:   body.Category,
			MenuItemID: body.MenuItemID,
			UnitPrice:  body.UnitPrice,
		})
		if err != nil {
			return httpError(err)
		}

		writeAudit(c, "stock_item", item.ID, models.AuditActionCreate,
			fmt.Sprintf("Stok kalemi oluşturuldu: %s (%s)", item.Name, item.Unit), nil, item)

		return c.Status(fiber.StatusCreated).JSON(itemResponse(item))
	}
}

// PUT /api/stock-items/:id (sadece admin)
func UpdateStockItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		var body UpdateStockItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		before, err := svc.GetItem(id)
		if err != nil {
			return httpError(err)
		}

		if body.Name != nil {
			if _, err := svc.RenameItem(id, *body.Name); err != nil {
				return httpError(err)
			}
		}

		item, err := svc.UpdateItem(id, ItemUpdateInput{
			Unit:       body.Unit,
			Category:   body.Category,
			MenuItemID: body.MenuItemID,
			ClearMenu:  body.ClearMenu,
			UnitPrice:  body.UnitPrice,
		})
		if err != nil {
			return httpError(err)
		}

		writeAudit(c, "stock_item", item.ID, models.AuditActionUpdate,
			fmt.Sprintf("Stok kalemi güncellendi: %s", item.Name), before, item)

		return c.JSON(itemResponse(item))
	}
}

// DELETE /api/stock-items/:id (sadece admin)
func DeleteStockItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		item, err := svc.GetItem(id)
		if err != nil {
			return httpError(err)
		}

		if err := svc.DeleteItem(id); err != nil {
			return httpError(err)
		}

		writeAudit(c, "stock_item", id, models.AuditActionDelete,
			fmt.Sprintf("Stok kalemi silindi: %s", item.Name), item, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
