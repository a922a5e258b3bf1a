package main

import (
	"log"

	"lokanta-backend/internal/audit"
	"lokanta-backend/internal/auth"
	"lokanta-backend/internal/config"
	"lokanta-backend/internal/database"
	"lokanta-backend/internal/menu"
	"lokanta-backend/internal/models"
	"lokanta-backend/internal/staff"
	"lokanta-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	svc := stock.NewService(database.DB, cfg.StockCeilingFactor)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Stok kalemi kataloğu
	protected.Get("/stock-items", stock.ListStockItemsHandler(svc))
	protected.Get("/stock-items/:id", stock.GetStockItemHandler(svc))
	protected.Get("/stock-items/:id/stock", stock.GetStockByItemHandler(svc))

	// Stok kayıtları ve hareketler
	protected.Get("/stocks", stock.ListStocksHandler(svc))
	protected.Get("/stocks/:id", stock.GetStockHandler(svc))
	protected.Post("/stocks/:id/transactions", stock.RegisterTransactionHandler(svc))
	protected.Get("/stocks/:id/history", stock.StockHistoryHandler(svc))
	protected.Get("/stock-transactions/:id", stock.GetTransactionHandler(svc))
	protected.Put("/stock-transactions/:id", stock.AmendTransactionHandler(svc))
	protected.Delete("/stock-transactions/:id", stock.RetractTransactionHandler(svc))

	// Raporlama
	protected.Get("/stock-report", stock.StockReportHandler(svc))
	protected.Get("/stock-report/export", stock.StockReportExportHandler(svc))

	// Menü
	protected.Get("/menu-items", menu.ListMenuItemsHandler())

	// Çalışanlar
	protected.Get("/employees", staff.ListEmployeesHandler())

	// Admin route'ları
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/stock-items", stock.CreateStockItemHandler(svc))
	adminRoutes.Put("/stock-items/:id", stock.UpdateStockItemHandler(svc))
	adminRoutes.Delete("/stock-items/:id", stock.DeleteStockItemHandler(svc))

	adminRoutes.Post("/stocks", stock.CreateStockHandler(svc))
	adminRoutes.Put("/stocks/:id/quantity", stock.OverrideQuantityHandler(svc))
	adminRoutes.Delete("/stocks/:id", stock.DeleteStockHandler(svc))

	adminRoutes.Post("/menu-items", menu.CreateMenuItemHandler())
	adminRoutes.Put("/menu-items/:id", menu.UpdateMenuItemHandler())
	adminRoutes.Delete("/menu-items/:id", menu.DeleteMenuItemHandler())

	adminRoutes.Post("/employees", staff.CreateEmployeeHandler())
	adminRoutes.Put("/employees/:id", staff.UpdateEmployeeHandler())
	adminRoutes.Delete("/employees/:id", staff.DeleteEmployeeHandler())

	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
