package stock

import (
	"errors"
	"log"

	"lokanta-backend/internal/audit"
	"lokanta-backend/internal/auth"
	"lokanta-backend/internal/database"
	"lokanta-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// httpError: Servis hatasını fiber hatasına çevirir.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrItemNotFound),
		errors.Is(err, ErrStockNotFound),
		errors.Is(err, ErrTransactionNotFound),
		errors.Is(err, ErrMenuItemNotFound),
		errors.Is(err, ErrEmployeeNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())

	case errors.Is(err, ErrDuplicateName),
		errors.Is(err, ErrDuplicateStock),
		errors.Is(err, ErrItemInUse),
		errors.Is(err, ErrStockHasHistory):
		return fiber.NewError(fiber.StatusConflict, err.Error())

	case errors.Is(err, ErrInvalidField),
		errors.Is(err, ErrInvalidTransaction):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())

	case errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrCapacityExceeded):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())

	default:
		log.Println("Stok servisi hatası:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Beklenmeyen stok hatası")
	}
}

// Yardımcı: Kullanıcı bilgilerini al
func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userID, ok := c.Locals(auth.CtxUserIDKey).(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}

	return userID, user.Name, nil
}

// Yardımcı: Denetim kaydı yaz (hata durumunda sessizce geç, asıl işlem bitti)
func writeAudit(c *fiber.Ctx, entityType string, entityID uint, action models.AuditAction, description string, before, after any) {
	userID, userName, err := getUserInfo(c)
	if err != nil {
		return
	}
	_ = audit.WriteLog(database.DB, audit.LogOptions{
		UserID:      userID,
		UserName:    userName,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	})
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
	}
	return uint(id), nil
}
