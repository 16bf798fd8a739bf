package handler

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tokkun-notice/internal/app"
	"tokkun-notice/internal/config"
	"tokkun-notice/internal/markup"
	"tokkun-notice/internal/models"
	"tokkun-notice/internal/progress"
	"tokkun-notice/internal/service"
	"tokkun-notice/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ImportHandler struct {
	controller   *app.Controller
	excelService *service.ExcelService
	cfg          *config.Config
}

func NewImportHandler(controller *app.Controller, excelService *service.ExcelService, cfg *config.Config) *ImportHandler {
	return &ImportHandler{
		controller:   controller,
		excelService: excelService,
		cfg:          cfg,
	}
}

// RowResponse is returned after a progress mutation.
type RowResponse struct {
	Row        models.RowProgress     `json:"row"`
	Summary    models.ProgressSummary `json:"summary"`
	CopyLabel  string                 `json:"copy_label"`
	CopyClass  string                 `json:"copy_class"`
	LineLabel  string                 `json:"line_label"`
	LineClass  string                 `json:"line_class"`
	SentAtText string                 `json:"sent_at_text,omitempty"`
}

type sentRequest struct {
	Sent bool `json:"sent"`
}

func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	if file.Size > int64(h.cfg.UploadMaxSize) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File size exceeds maximum limit", nil)
	}

	src, err := file.Open()
	if err != nil {
		return h.importError(c, service.FileReadError(err))
	}
	defer src.Close()

	view, err := h.controller.Import(c.UserContext(), file.Filename, src)
	if err != nil {
		return h.importError(c, err)
	}

	message := fmt.Sprintf("✅ %d名の%s生徒のテンプレートを生成しました", view.Batch.Len(), models.CampusToken)
	return utils.SuccessResponse(c, message, buildImportResult(view, message))
}

func (h *ImportHandler) GetCurrent(c *fiber.Ctx) error {
	view, err := h.controller.Current()
	if errors.Is(err, app.ErrNoBatch) {
		if lastErr := h.controller.LastError(); lastErr != nil {
			return utils.KindErrorResponse(c, fiber.StatusNotFound, service.ErrorKind(lastErr), service.BannerMessage(lastErr), lastErr)
		}
	}
	if err != nil {
		return h.progressError(c, err)
	}
	return utils.SuccessResponse(c, "Batch retrieved successfully", buildImportResult(view, ""))
}

func (h *ImportHandler) GetItems(c *fiber.Ctx) error {
	view, err := h.controller.Current()
	if err != nil {
		return h.progressError(c, err)
	}

	params := utils.GetPaginationParams(c)
	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(view.Batch.Len()))
	start, end := pagination.PageBounds()

	items := buildItemViews(view)[start:end]

	responseData := fiber.Map{
		"batch_id":   view.Batch.ID,
		"items":      items,
		"summary":    view.Summary,
		"pagination": pagination,
	}

	return utils.PaginatedResponseBuilder(c, "Items retrieved successfully", responseData, pagination)
}

func (h *ImportHandler) SetSent(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid row index", err)
	}

	var req sentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	row, summary, err := h.controller.SetSent(c.Params("batch"), index, req.Sent)
	if err != nil {
		return h.progressError(c, err)
	}

	return utils.SuccessResponse(c, "Send status updated", buildRowResponse(row, summary))
}

func (h *ImportHandler) MarkCopied(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid row index", err)
	}

	row, summary, err := h.controller.MarkCopied(c.Params("batch"), index)
	if err != nil {
		return h.progressError(c, err)
	}

	return utils.SuccessResponse(c, "Copy status updated", buildRowResponse(row, summary))
}

func (h *ImportHandler) Export(c *fiber.Ctx) error {
	view, err := h.controller.Current()
	if err != nil {
		return h.progressError(c, err)
	}

	var buf bytes.Buffer
	if err := h.excelService.WriteProgressReport(&buf, view.Batch, view.Progress, view.Summary); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export data", err)
	}

	exportFileName := fmt.Sprintf("progress_%s_%s.xlsx", view.Batch.ID, time.Now().Format("20060102_150405"))
	c.Attachment(exportFileName)
	return c.Send(buf.Bytes())
}

func (h *ImportHandler) importError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidFileType), errors.Is(err, service.ErrFileRead):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrMissingSheet),
		errors.Is(err, service.ErrNoDataRows),
		errors.Is(err, service.ErrNoMatchingRows):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, app.ErrStaleBatch):
		status = fiber.StatusConflict
	}
	kind := service.ErrorKind(err)
	if errors.Is(err, app.ErrStaleBatch) {
		kind = "stale_batch"
	}
	return utils.KindErrorResponse(c, status, kind, service.BannerMessage(err), err)
}

func (h *ImportHandler) progressError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, app.ErrNoBatch):
		return utils.KindErrorResponse(c, fiber.StatusNotFound, "no_batch", "No templates have been generated yet", err)
	case errors.Is(err, app.ErrStaleBatch):
		return utils.KindErrorResponse(c, fiber.StatusConflict, "stale_batch", "The list was replaced by a newer import. Reload the page.", err)
	case errors.Is(err, progress.ErrUnknownRow):
		return utils.KindErrorResponse(c, fiber.StatusNotFound, "unknown_row", "Row not found", err)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update progress", err)
}

func buildImportResult(view app.View, message string) models.ImportResult {
	return models.ImportResult{
		BatchID:    view.Batch.ID,
		Filename:   view.Batch.Filename,
		TotalRows:  view.Batch.TotalRows,
		Summary:    view.Summary,
		Message:    message,
		Items:      buildItemViews(view),
		ImportTime: view.Batch.ImportedAt,
	}
}

func buildItemViews(view app.View) []models.ItemView {
	items := make([]models.ItemView, 0, view.Batch.Len())
	for i, item := range view.Batch.Items {
		items = append(items, models.ItemView{
			TemplateItem: item,
			Progress:     view.Progress[i],
			HTML:         markup.ItemHTML(view.Batch.ID, item, view.Progress[i]),
		})
	}
	return items
}

func buildRowResponse(row models.RowProgress, summary models.ProgressSummary) RowResponse {
	resp := RowResponse{Row: row, Summary: summary}
	resp.CopyLabel, resp.CopyClass = markup.CopyStatus(row)
	resp.LineLabel, resp.LineClass = markup.LineStatus(row)
	if row.SentAt != nil {
		resp.SentAtText = row.SentAt.Format(service.SentAtLayout)
	}
	return resp
}
