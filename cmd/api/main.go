package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-catalog-admin/internal/handler"
	"go-catalog-admin/internal/middleware"
	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/repository"
	"go-catalog-admin/internal/service"
	"go-catalog-admin/internal/storage"
	"go-catalog-admin/internal/ws"
	"go-catalog-admin/pkg/database"

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
	db.AutoMigrate(&model.Product{}, &model.Image{}, &model.Variant{}, &model.Category{}, &model.Setting{})

	// 3. Object storage + CDN mapping, both validated here so a bad config
	// kills the process instead of producing broken image URLs later
	store, err := storage.NewObjectStore(context.Background(), storage.Config{
		Region:          os.Getenv("STORAGE_REGION"),
		Bucket:          os.Getenv("STORAGE_BUCKET"),
		Endpoint:        os.Getenv("STORAGE_ENDPOINT"),
		AccessKeyID:     os.Getenv("STORAGE_ACCESS_KEY"),
		SecretAccessKey: os.Getenv("STORAGE_SECRET_KEY"),
		PublicBaseURL:   os.Getenv("STORAGE_PUBLIC_URL"),
	})
	if err != nil {
		log.Fatal("Object storage setup failed: ", err)
	}

	rewriter, err := storage.NewRewriter(os.Getenv("STORAGE_PUBLIC_URL"), os.Getenv("CDN_BASE_URL"))
	if err != nil {
		log.Fatal("CDN mapping setup failed: ", err)
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	variantRepo := repository.NewVariantRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	settingRepo := repository.NewSettingRepo(db)

	catalogService := service.NewCatalogService(productRepo, variantRepo, wsHub)
	categoryService := service.NewCategoryService(categoryRepo, wsHub)
	settingsService := service.NewSettingsService(settingRepo)
	submissionService := service.NewSubmissionService(store, rewriter, catalogService)

	productHandler := handler.NewProductHandler(catalogService, submissionService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	uploadHandler := handler.NewUploadHandler(submissionService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "Catalog Admin v1.0",
		BodyLimit: 64 * 1024 * 1024, // multipart submissions carry several images
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES (storefront reads) ============
	storefront := api.Group("/storefront")
	storefront.Get("/products", productHandler.GetActiveProducts)
	storefront.Get("/products/category/:id", productHandler.GetActiveProductsByCategory)
	storefront.Get("/categories", categoryHandler.GetActiveCategories)
	api.Get("/settings/banner", settingsHandler.GetBanner)

	// ============ PROTECTED ROUTES (admin shell token) ============
	protected := api.Group("", middleware.RequireAuth())

	// Product Routes
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Get("/products/:id/images", productHandler.GetProductImages)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Post("/products/submit", productHandler.SubmitProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Patch("/products/:id/status", productHandler.ToggleProductStatus)
	protected.Delete("/products/:id", productHandler.DeleteProduct)
	protected.Post("/products/:id/images", productHandler.AddProductImage)
	protected.Delete("/products/:id/images/:imageId", productHandler.DeleteProductImage)
	protected.Put("/products/:id/category", productHandler.SetProductCategory)
	protected.Delete("/products/:id/categories", productHandler.ClearProductCategories)

	// Variant Routes
	protected.Post("/variants/batch", productHandler.UpsertVariants)
	protected.Delete("/variants/:id", productHandler.DeleteVariant)

	// Category Routes
	protected.Get("/categories", categoryHandler.GetCategories)
	protected.Post("/categories", categoryHandler.CreateCategory)
	protected.Put("/categories/:id", categoryHandler.UpdateCategory)
	protected.Patch("/categories/:id/status", categoryHandler.ToggleCategoryStatus)
	protected.Delete("/categories/:id", categoryHandler.DeleteCategory)

	// Settings + Uploads
	protected.Put("/settings/banner", settingsHandler.SetBanner)
	protected.Post("/uploads", uploadHandler.Upload)

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

	// 8. Graceful Shutdown
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
