package menu

import (
	"strings"

	"lokanta-backend/internal/database"
	"lokanta-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MenuItemResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

type CreateMenuItemRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

type UpdateMenuItemRequest struct {
	Name      *string  `json:"name"`
	Category  *string  `json:"category"`
	Price     *float64 `json:"price"`
	Available *bool    `json:"available"`
}

func response(m *models.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:        m.ID,
		Name:      m.Name,
		Category:  m.Category,
		Price:     m.Price,
		Available: m.Available,
	}
}

// GET /api/menu-items
func ListMenuItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.MenuItem
		if err := database.DB.Order("name asc").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Menü listelenemedi")
		}
		res := make([]MenuItemResponse, 0, len(items))
		for i := range items {
			res = append(res, response(&items[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/menu-items (sadece admin)
func CreateMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "İsim zorunlu, fiyat negatif olamaz")
		}

		var existing models.MenuItem
		if err := database.DB.Where("name = ?", body.Name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Bu isimde bir menü ürünü zaten var")
		}

		item := models.MenuItem{
			Name:      body.Name,
			Category:  strings.TrimSpace(body.Category),
			Price:     body.Price,
			Available: true,
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Menü ürünü oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(response(&item))
	}
}

// PUT /api/menu-items/:id (sadece admin)
func UpdateMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.MenuItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Menü ürünü bulunamadı")
		}

		var body UpdateMenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "İsim boş olamaz")
			}
			item.Name = name
		}
		if body.Category != nil {
			item.Category = strings.TrimSpace(*body.Category)
		}
		if body.Price != nil {
			if *body.Price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
			}
			item.Price = *body.Price
		}
		if body.Available != nil {
			item.Available = *body.Available
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Menü ürünü güncellenemedi")
		}

		return c.JSON(response(&item))
	}
}

// DELETE /api/menu-items/:id (sadece admin)
// Stok kalemlerindeki referanslar silinmez, null'a çekilir (zayıf referans).
func DeleteMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.MenuItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Menü ürünü bulunamadı")
		}

		if err := database.DB.Model(&models.StockItem{}).
			Where("menu_item_id = ?", item.ID).
			Update("menu_item_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok kalemi referansları temizlenemedi")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Menü ürünü silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
