package staff

import (
	"strings"

	"lokanta-backend/internal/database"
	"lokanta-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type EmployeeResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

type CreateEmployeeRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type UpdateEmployeeRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

func response(e *models.Employee) EmployeeResponse {
	return EmployeeResponse{ID: e.ID, Name: e.Name, Role: e.Role, Active: e.Active}
}

// GET /api/employees
func ListEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var employees []models.Employee
		if err := database.DB.Order("name asc").Find(&employees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışanlar listelenemedi")
		}
		res := make([]EmployeeResponse, 0, len(employees))
		for i := range employees {
			res = append(res, response(&employees[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/employees (sadece admin)
func CreateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim zorunlu")
		}

		emp := models.Employee{
			Name:   body.Name,
			Role:   strings.TrimSpace(body.Role),
			Active: true,
		}
		if err := database.DB.Create(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışan oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(response(&emp))
	}
}

// PUT /api/employees/:id (sadece admin)
func UpdateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çalışan bulunamadı")
		}

		var body UpdateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "İsim boş olamaz")
			}
			emp.Name = name
		}
		if body.Role != nil {
			emp.Role = strings.TrimSpace(*body.Role)
		}
		if body.Active != nil {
			emp.Active = *body.Active
		}

		if err := database.DB.Save(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışan güncellenemedi")
		}

		return c.JSON(response(&emp))
	}
}

// DELETE /api/employees/:id (sadece admin)
// Hareketlerdeki referanslar silinmez, null'a çekilir (zayıf referans).
func DeleteEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çalışan bulunamadı")
		}

		if err := database.DB.Model(&models.StockTransaction{}).
			Where("employee_id = ?", emp.ID).
			Update("employee_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareket referansları temizlenemedi")
		}

		if err := database.DB.Delete(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışan silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
