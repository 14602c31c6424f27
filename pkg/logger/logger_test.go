package logger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NIRMITI18/health-care-agent/pkg/errors"
)

type recordingTracker struct {
	mu     sync.Mutex
	errors []error
	tags   []map[string]string
}

func (r *recordingTracker) CaptureError(_ context.Context, err error, tags map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
	r.tags = append(r.tags, tags)
	return nil
}

func (r *recordingTracker) CaptureMessage(context.Context, string, errors.Level, map[string]string) error {
	return nil
}

func (r *recordingTracker) AddBreadcrumb(context.Context, string, string, errors.Level, map[string]interface{}) {
}

func (r *recordingTracker) Flush(context.Context) error { return nil }

func TestInit_FallsBackToInfoOnBadLevel(t *testing.T) {
	require.NoError(t, Init("not-a-level", "development"))
	t.Cleanup(func() { SetGlobal(nil) })

	assert.NotNil(t, Get())
}

func TestErrorWithContext_ForwardsTags(t *testing.T) {
	SetGlobal(NewNop())
	t.Cleanup(func() { SetGlobal(nil) })

	tracker := &recordingTracker{}
	SetErrorTracker(tracker)

	log := Get().With("component", "test")
	log.ErrorWithContext(context.Background(), errors.ErrEmptyResponse, map[string]string{"role": "planner"})
	log.Errorf("lead failed: %s", "boom")

	require.Len(t, tracker.errors, 2)
	assert.ErrorIs(t, tracker.errors[0], errors.ErrEmptyResponse)
	assert.Equal(t, "planner", tracker.tags[0]["role"])
	assert.EqualError(t, tracker.errors[1], "lead failed: boom")
}
