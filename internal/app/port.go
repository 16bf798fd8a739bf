package app

import (
	"tokkun-notice/internal/models"

	"github.com/sirupsen/logrus"
)

// Port is a presentation surface the Controller keeps informed. Methods are called
// with the Controller's lock released, in mutation order.
type Port interface {
	// Loading is called when an import starts; any previous error is cleared.
	Loading(filename string)
	// Rendered is called with the new batch after a successful import.
	Rendered(view View)
	// Updated is called after a row's progress changed.
	Updated(batchID string, row models.RowProgress, summary models.ProgressSummary)
	// Failed is called with the banner message of a failed import.
	Failed(message string, err error)
}

// LogPort reports controller events to the diagnostic log.
type LogPort struct {
	Logger *logrus.Entry
}

func (p LogPort) Loading(filename string) {
	p.Logger.WithField("filename", filename).Debug("import started")
}

func (p LogPort) Rendered(view View) {
	p.Logger.WithFields(logrus.Fields{
		"batch_id": view.Batch.ID,
		"items":    view.Batch.Len(),
	}).Info("templates rendered")
}

func (p LogPort) Updated(batchID string, row models.RowProgress, summary models.ProgressSummary) {
	p.Logger.WithFields(logrus.Fields{
		"batch_id": batchID,
		"index":    row.Index,
		"copied":   row.Copied,
		"sent":     row.Sent,
		"summary":  summary,
	}).Debug("progress updated")
}

func (p LogPort) Failed(message string, err error) {
	p.Logger.WithError(err).Warn(message)
}
