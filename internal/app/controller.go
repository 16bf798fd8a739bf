// Package app holds the view controller: it runs imports, owns the current batch
// and its progress tracker, and keeps presentation ports in sync.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"tokkun-notice/internal/models"
	"tokkun-notice/internal/progress"
	"tokkun-notice/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNoBatch is returned when nothing has been imported yet.
	ErrNoBatch = errors.New("no batch imported")
	// ErrStaleBatch is returned for a mutation addressed to a replaced batch.
	ErrStaleBatch = errors.New("batch has been replaced")
)

// Importer runs the ingestion pipeline.
type Importer interface {
	Import(ctx context.Context, filename string, r io.Reader) (*models.Batch, error)
}

// View is a consistent snapshot of the current batch and its progress.
type View struct {
	Batch    *models.Batch
	Progress []models.RowProgress
	Summary  models.ProgressSummary
}

// Controller owns the batch of the latest import. A new import replaces the
// batch and its tracker wholesale.
type Controller struct {
	importer Importer
	logger   *logrus.Entry
	now      func() time.Time

	mu      sync.Mutex
	batch   *models.Batch
	tracker *progress.Tracker
	lastErr error
	gen     uint64
	ports   []Port
}

func NewController(importer Importer, logger *logrus.Entry, ports ...Port) *Controller {
	return &Controller{
		importer: importer,
		logger:   logger,
		now:      time.Now,
		ports:    ports,
	}
}

// Attach registers another port.
func (c *Controller) Attach(p Port) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ports = append(c.ports, p)
}

// Import runs one file through the pipeline. A file with the wrong extension
// is refused before anything changes; otherwise the previous batch is dropped
// as soon as the import starts, whether or not it succeeds. When a newer import
// starts before this one finishes, this one is discarded with ErrStaleBatch.
func (c *Controller) Import(ctx context.Context, filename string, r io.Reader) (View, error) {
	if err := service.ValidateFileType(filename); err != nil {
		c.logger.WithError(err).WithField("filename", filename).Warn("Rejected file")

		c.mu.Lock()
		c.lastErr = err
		ports := append([]Port(nil), c.ports...)
		c.mu.Unlock()

		for _, p := range ports {
			p.Failed(service.BannerMessage(err), err)
		}
		return View{}, err
	}

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.batch = nil
	c.tracker = nil
	c.lastErr = nil
	ports := append([]Port(nil), c.ports...)
	c.mu.Unlock()

	for _, p := range ports {
		p.Loading(filename)
	}

	batch, err := c.importer.Import(ctx, filename, r)
	if err != nil {
		c.logger.WithError(err).WithField("filename", filename).Error("Error processing file")

		c.mu.Lock()
		if c.gen != gen {
			c.mu.Unlock()
			return View{}, fmt.Errorf("%w: import of %s was superseded: %w", ErrStaleBatch, filename, err)
		}
		c.lastErr = err
		c.mu.Unlock()

		message := service.BannerMessage(err)
		for _, p := range ports {
			p.Failed(message, err)
		}
		return View{}, err
	}

	tracker := progress.NewTracker(batch.Items)
	view := View{
		Batch:    batch,
		Progress: tracker.States(),
		Summary:  tracker.Summary(),
	}

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return View{}, fmt.Errorf("%w: import of %s was superseded", ErrStaleBatch, filename)
	}
	c.batch = batch
	c.tracker = tracker
	c.mu.Unlock()

	for _, p := range ports {
		p.Rendered(view)
	}
	return view, nil
}

// Current returns a snapshot of the current batch.
func (c *Controller) Current() (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.batch == nil {
		return View{}, ErrNoBatch
	}
	return View{
		Batch:    c.batch,
		Progress: c.tracker.States(),
		Summary:  c.tracker.Summary(),
	}, nil
}

// LastError returns the failure of the latest import, if any.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// SetSent marks or unmarks a row as sent.
func (c *Controller) SetSent(batchID string, index int, sent bool) (models.RowProgress, models.ProgressSummary, error) {
	return c.mutate(batchID, index, func(t *progress.Tracker, item models.TemplateItem) error {
		return t.SetSent(index, item.DisplayName, sent, c.now())
	})
}

// MarkCopied records a successful copy of a row.
func (c *Controller) MarkCopied(batchID string, index int) (models.RowProgress, models.ProgressSummary, error) {
	return c.mutate(batchID, index, func(t *progress.Tracker, _ models.TemplateItem) error {
		return t.MarkCopied(index)
	})
}

func (c *Controller) mutate(batchID string, index int, fn func(*progress.Tracker, models.TemplateItem) error) (models.RowProgress, models.ProgressSummary, error) {
	c.mu.Lock()
	if c.batch == nil {
		c.mu.Unlock()
		return models.RowProgress{}, models.ProgressSummary{}, ErrNoBatch
	}
	if batchID != c.batch.ID {
		current := c.batch.ID
		c.mu.Unlock()
		return models.RowProgress{}, models.ProgressSummary{}, fmt.Errorf("%w: got %s, current is %s", ErrStaleBatch, batchID, current)
	}

	item, ok := c.batch.Item(index)
	if !ok {
		c.mu.Unlock()
		return models.RowProgress{}, models.ProgressSummary{}, fmt.Errorf("%w: %d", progress.ErrUnknownRow, index)
	}
	if err := fn(c.tracker, item); err != nil {
		c.mu.Unlock()
		return models.RowProgress{}, models.ProgressSummary{}, err
	}

	state, _ := c.tracker.State(index)
	summary := c.tracker.Summary()
	ports := append([]Port(nil), c.ports...)
	c.mu.Unlock()

	for _, p := range ports {
		p.Updated(batchID, state, summary)
	}
	return state, summary, nil
}
