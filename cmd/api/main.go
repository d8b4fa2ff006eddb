package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-storefront-api/internal/config"
	"go-storefront-api/internal/handler"
	"go-storefront-api/internal/middleware"
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/service"
	"go-storefront-api/internal/ws"
	"go-storefront-api/pkg/database"
	"go-storefront-api/pkg/jwt"

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

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Setup Database
	db := database.Connect(cfg.DB.DSN())
	if err := db.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{}, &model.OrderItem{}); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// 3. WebSocket hub for the admin panel
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)

	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	authService := service.NewAuthService(userRepo, tokens, cfg.Admin.Username, cfg.Admin.Password)
	catalogService := service.NewCatalogService(productRepo)
	orderService := service.NewOrderService(orderRepo, wsHub)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	adminHandler := handler.NewAdminHandler(authService, userRepo, cfg.Admin.SetupToken)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Storefront API v1.0",
	})

	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Storefront backend server is running.")
	})

	// 6. Routes
	api := app.Group("/api")

	requireAuth := middleware.RequireAuth(userRepo, tokens)
	requireAdmin := middleware.RequireAdmin()

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)

	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.Get)

	api.Post("/orders", orderHandler.Create) // Guest checkout allowed

	// One-time bootstrap; see AdminHandler.CreateFirstAdmin for the guard.
	api.Post("/admin/create-first-admin", adminHandler.CreateFirstAdmin)

	// ============ ADMIN ROUTES ============
	api.Post("/products", requireAuth, requireAdmin, productHandler.Create)
	api.Put("/products/:id", requireAuth, requireAdmin, productHandler.Update)
	api.Delete("/products/:id", requireAuth, requireAdmin, productHandler.Delete)

	api.Get("/orders/all", requireAuth, requireAdmin, orderHandler.ListAll)
	api.Put("/orders/:id/status", requireAuth, requireAdmin, orderHandler.UpdateStatus)

	api.Get("/admin/users", requireAuth, requireAdmin, adminHandler.ListUsers)

	// WebSocket Route (admin panel live updates)
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
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
