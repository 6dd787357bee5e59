package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-retail-pos/internal/handler"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/service"
	"go-retail-pos/internal/ws"
	"go-retail-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Category{}, &model.Product{}, &model.Customer{},
		&model.Sale{}, &model.SaleItem{}, &model.User{})

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	catalogService := service.NewCatalogService(categoryRepo, productRepo)
	customerService := service.NewCustomerService(customerRepo)
	checkoutService := service.NewCheckoutService(productRepo, customerRepo, saleRepo, db, wsHub)
	reportService := service.NewReportService(saleRepo)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	customerHandler := handler.NewCustomerHandler(customerService)
	saleHandler := handler.NewSaleHandler(checkoutService)
	reportHandler := handler.NewReportHandler(reportService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Retail POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api")

	// Category Routes
	api.Get("/categories", catalogHandler.GetCategories)
	api.Post("/categories", catalogHandler.CreateCategory)
	api.Get("/categories/:id", catalogHandler.GetCategory)
	api.Put("/categories/:id", catalogHandler.UpdateCategory)
	api.Delete("/categories/:id", catalogHandler.DeleteCategory)

	// Product Routes
	api.Get("/products", catalogHandler.GetProducts)
	api.Post("/products", catalogHandler.CreateProduct)
	api.Get("/products/:id", catalogHandler.GetProduct)
	api.Put("/products/:id", catalogHandler.UpdateProduct)
	api.Delete("/products/:id", catalogHandler.DeleteProduct)

	// Customer Routes
	api.Get("/customers", customerHandler.GetCustomers)
	api.Post("/customers", customerHandler.CreateCustomer)
	api.Get("/customers/:id", customerHandler.GetCustomer)
	api.Put("/customers/:id", customerHandler.UpdateCustomer)
	api.Delete("/customers/:id", customerHandler.DeleteCustomer)

	// Sale Routes (checkout + read-only history)
	api.Post("/sales", saleHandler.CreateSale)
	api.Get("/sales", saleHandler.GetSales)
	api.Get("/sales/:id", saleHandler.GetSale)

	// Report Routes
	api.Get("/reports/sales", reportHandler.GetSalesReport)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
