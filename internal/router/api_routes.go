package router

import (
	"tokkun-notice/internal/handler"

	"github.com/gofiber/fiber/v2"
)

func SetupAPIRoutes(router fiber.Router, deps Dependencies) {
	importHandler := handler.NewImportHandler(deps.Controller, deps.ExcelService, deps.Config)

	imports := router.Group("/imports")
	imports.Post("/", importHandler.Upload)
	imports.Get("/current", importHandler.GetCurrent)
	imports.Get("/current/items", importHandler.GetItems)
	imports.Get("/current/export", importHandler.Export)
	imports.Put("/:batch/items/:index/sent", importHandler.SetSent)
	imports.Post("/:batch/items/:index/copied", importHandler.MarkCopied)
}
