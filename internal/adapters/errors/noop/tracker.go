package noop

import (
	"context"

	"github.com/NIRMITI18/health-care-agent/pkg/errors"
)

// Tracker discards everything. Used when SENTRY_DSN is unset and in tests.
type Tracker struct{}

// New creates a new no-op tracker
func New() *Tracker {
	return &Tracker{}
}

func (t *Tracker) CaptureError(context.Context, error, map[string]string) error { return nil }

func (t *Tracker) CaptureMessage(context.Context, string, errors.Level, map[string]string) error {
	return nil
}

func (t *Tracker) AddBreadcrumb(context.Context, string, string, errors.Level, map[string]interface{}) {
}

func (t *Tracker) Flush(context.Context) error { return nil }

var _ errors.Tracker = (*Tracker)(nil)
