package router

import (
	"tokkun-notice/internal/app"
	"tokkun-notice/internal/config"
	"tokkun-notice/internal/models"
	"tokkun-notice/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Dependencies are the long-lived objects the routes share.
type Dependencies struct {
	Controller   *app.Controller
	ExcelService *service.ExcelService
	Config       *config.Config
}

func Setup(server *fiber.App, deps Dependencies) {
	// Health check
	server.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"app":     deps.Config.AppName,
			"decoder": deps.Config.SheetDecoder,
		})
	})

	if deps.Config.StaticPath != "" {
		server.Static("/static", deps.Config.StaticPath)
	}

	// Web routes (HTML)
	web := server.Group("")
	setupWebRoutes(web, deps)

	// API routes (JSON)
	api := server.Group("/api/v1")
	SetupAPIRoutes(api, deps)
}

func setupWebRoutes(router fiber.Router, deps Dependencies) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{
			"Title":     deps.Config.AppName,
			"SheetName": models.SheetName,
			"Campus":    models.CampusToken,
			"MaxUpload": deps.Config.UploadMaxSize,
		})
	})
}
