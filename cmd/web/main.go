package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tokkun-notice/internal/app"
	"tokkun-notice/internal/config"
	"tokkun-notice/internal/router"
	"tokkun-notice/internal/service"
	"tokkun-notice/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// LOG_LEVEL may come from .env, so the level is applied after Load
	log := utils.GetLogger()
	if err := utils.SetLogLevel(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to configure logger: %v", err)
	}

	// Pipeline and view state
	decoder, err := service.NewDecoder(cfg.SheetDecoder)
	if err != nil {
		log.Fatalf("Failed to create decoder: %v", err)
	}
	importService := service.NewImportService(decoder, utils.ComponentLogger("import"))
	controller := app.NewController(importService, utils.ComponentLogger("controller"),
		app.LogPort{Logger: utils.ComponentLogger("view")})

	// Initialize template engine
	engine := html.New(cfg.ViewsPath, ".html")
	engine.Reload(cfg.IsDevelopment())

	// Initialize Fiber app
	server := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		Views:        engine,
		BodyLimit:    cfg.UploadMaxSize,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	server.Use(recover.New())
	server.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	server.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, OPTIONS",
	}))

	// Setup routes
	router.Setup(server, router.Dependencies{
		Controller:   controller,
		ExcelService: service.NewExcelService(),
		Config:       cfg,
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Println("\nGracefully shutting down...")
		_ = server.Shutdown()
	}()

	// Start server
	addr := cfg.GetListenAddr()
	log.WithFields(logrus.Fields{
		"decoder": cfg.SheetDecoder,
		"url":     cfg.AppURL,
	}).Infof("Server starting on %s", addr)
	if err := server.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	fmt.Println("Server exited")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Check if request expects JSON
	if c.Accepts("application/json") != "" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"message": message,
			"error":   err.Error(),
		})
	}

	// Return HTML error page
	return c.Status(code).Render("error", fiber.Map{
		"Code":    code,
		"Message": message,
	})
}
