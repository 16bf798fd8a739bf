package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"tokkun-notice/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ImportService runs the ingestion pipeline: decode, map, filter, render.
type ImportService struct {
	decoder SheetDecoder
	legacy  SheetDecoder
	logger  *logrus.Entry
	now     func() time.Time
	newID   func() string
}

func NewImportService(decoder SheetDecoder, logger *logrus.Entry) *ImportService {
	return &ImportService{
		decoder: decoder,
		legacy:  NewLegacyDecoder(),
		logger:  logger,
		now:     time.Now,
		newID:   newBatchID,
	}
}

func newBatchID() string {
	return fmt.Sprintf("IMPORT-%s", uuid.New().String()[:8])
}

// ValidateFileType accepts .xlsx and .xls in any letter case.
func ValidateFileType(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return nil
	}
	return newImportError(ErrInvalidFileType, MsgInvalidFileType, fmt.Errorf("unsupported file %q", filename))
}

// ReadFile reads the whole upload into memory.
func ReadFile(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, FileReadError(err)
	}
	return data, nil
}

// Import validates, reads and processes one upload.
func (s *ImportService) Import(ctx context.Context, filename string, r io.Reader) (*models.Batch, error) {
	if err := ValidateFileType(filename); err != nil {
		return nil, err
	}

	data, err := ReadFile(r)
	if err != nil {
		return nil, err
	}

	return s.Process(ctx, filename, data)
}

// Process turns workbook bytes into a batch of rendered items.
func (s *ImportService) Process(ctx context.Context, filename string, data []byte) (*models.Batch, error) {
	log := s.logger.WithFields(logrus.Fields{
		"filename": filename,
		"bytes":    len(data),
	})

	decoder := s.decoder
	if isLegacyWorkbook(data) {
		log = log.WithField("format", "biff")
		decoder = s.legacy
	}

	rows, err := decoder.Decode(ctx, data, models.SheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, newImportError(ErrNoDataRows, MsgNoData, nil)
	}

	// The first row after the key row holds the column titles.
	dataRows := rows[1:]
	if len(dataRows) == 0 {
		return nil, newImportError(ErrNoDataRows, MsgNoDataRows, nil)
	}

	records := MapRows(dataRows)
	students, err := FilterCampus(records, models.CampusToken)
	if err != nil {
		log.WithField("rows", len(records)).Debug("no rows matched campus")
		return nil, err
	}

	batch := &models.Batch{
		ID:         s.newID(),
		Filename:   filename,
		ImportedAt: s.now(),
		TotalRows:  len(records),
		Items:      make([]models.TemplateItem, 0, len(students)),
	}
	for i, student := range students {
		batch.Items = append(batch.Items, models.TemplateItem{
			Index:       i,
			Record:      student,
			DisplayName: DisplayName(student),
			Text:        RenderTemplate(student),
		})
	}

	log.WithFields(logrus.Fields{
		"batch_id": batch.ID,
		"rows":     len(records),
		"students": len(students),
	}).Info("workbook imported")

	return batch, nil
}
