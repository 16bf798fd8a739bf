package main

import (
	"fmt"

	"tokkun-notice/internal/app"
	"tokkun-notice/internal/config"
	"tokkun-notice/internal/router"
	"tokkun-notice/internal/service"
	"tokkun-notice/internal/utils"

	"github.com/gofiber/fiber/v2"
)

func main() {
	server := fiber.New()

	cfg := &config.Config{AppName: "debug", SheetDecoder: config.DecoderExcelize, UploadMaxSize: 20971520}
	excelService := service.NewExcelService()
	logger := utils.ComponentLogger("debug")
	controller := app.NewController(service.NewImportService(excelService, logger), logger)

	router.Setup(server, router.Dependencies{
		Controller:   controller,
		ExcelService: excelService,
		Config:       cfg,
	})

	// Print all routes
	fmt.Println("=== Registered Routes ===")
	for _, route := range server.GetRoutes(true) {
		fmt.Printf("%-8s %s\n", route.Method, route.Path)
	}
}
