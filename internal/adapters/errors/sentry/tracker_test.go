package sentry

import (
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"

	"github.com/NIRMITI18/health-care-agent/pkg/errors"
)

func TestConvertLevel(t *testing.T) {
	cases := map[errors.Level]sentry.Level{
		errors.LevelDebug:   sentry.LevelDebug,
		errors.LevelInfo:    sentry.LevelInfo,
		errors.LevelWarning: sentry.LevelWarning,
		errors.LevelError:   sentry.LevelError,
		errors.LevelFatal:   sentry.LevelFatal,
		errors.Level("odd"): sentry.LevelInfo,
	}

	for in, want := range cases {
		assert.Equal(t, want, convertLevel(in), "level %s", in)
	}
}
