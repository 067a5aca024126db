package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csoai/entitlement/pkg/logger"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with static attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "entitlement")),
		)

		log.Info("catalog loaded")

		line := logLine(t, &buf)
		assert.Equal(t, "catalog loaded", line["msg"])
		assert.Equal(t, "entitlement", line["service"])
	})

	t.Run("debug suppressed at default level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))

		log.Debug("noise")

		assert.Zero(t, buf.Len())
	})

	t.Run("context extractor injects attributes", func(t *testing.T) {
		t.Parallel()

		type ctxKey struct{}
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
				if v, ok := ctx.Value(ctxKey{}).(string); ok {
					return slog.String("tier", v), true
				}
				return slog.Attr{}, false
			}),
		)

		ctx := context.WithValue(context.Background(), ctxKey{}, "pro")
		log.InfoContext(ctx, "entitlement denied")

		line := logLine(t, &buf)
		assert.Equal(t, "pro", line["tier"])
	})

	t.Run("text format for development", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithDevelopment("entitlement"),
			logger.WithOutput(&buf),
		)

		log.Debug("verbose detail")

		assert.Contains(t, buf.String(), "verbose detail")
		assert.Contains(t, buf.String(), "service=entitlement")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			logger.New(logger.WithFormat(logger.Format("xml")))
		})
	})
}
