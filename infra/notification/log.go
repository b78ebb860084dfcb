// Package notification provides mismatch notification sinks.
package notification

import (
	"context"
	"log/slog"

	"github.com/amirasaad/brokerage/pkg/notification"
)

// LogNotifier reports mismatches to the process log. It is the fallback
// sink when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// ReportMismatch implements notification.Notifier.
func (n *LogNotifier) ReportMismatch(_ context.Context, m notification.Mismatch) error {
	n.logger.Warn("price mismatch",
		"id", m.ID,
		"source", m.Source,
		"target", m.Target,
		"checked_by", m.CheckedBy,
		"deviation", m.Deviation,
		"limit", m.Limit,
	)
	return nil
}

var _ notification.Notifier = (*LogNotifier)(nil)
