package obs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerJSON(t *testing.T) {
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "scheduler", "debug", "json")
	l.Debug().Msg("hello")
	assert.Contains(t, buf.String(), `"component":"scheduler"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestNewLoggerLevel(t *testing.T) {
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "x", "warn", "json")
	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	l = NewLoggerTo(&buf, "x", "nonsense", "json")
	l.Info().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestTimeLogsFailure(t *testing.T) {
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "x", "debug", "json")
	ctx := context.WithValue(l.WithContext(context.Background()), RequestIDKey, "r1")

	err := errors.New("boom")
	Time(ctx, "op.test")(&err)
	assert.Contains(t, buf.String(), `"req_id":"r1"`)
	assert.Contains(t, buf.String(), `"op":"op.test"`)
	assert.Contains(t, buf.String(), "boom")
}
