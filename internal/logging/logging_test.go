package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Format: FormatJSON}, &buf)

	logger.Debug().Str("section", "skills").Msg("scored")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "skills", entry["section"])
	assert.Equal(t, "scored", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		level    string
		wantInfo bool
	}{
		{"", true},
		{"nonsense", true},
		{"info", true},
		{"warn", false},
		{"error", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.level}, &buf)
			logger.Info().Msg("hello")
			assert.Equal(t, tt.wantInfo, buf.Len() > 0)
		})
	}
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: FormatPretty}, &buf)
	logger.Info().Msg("ready")

	assert.Contains(t, buf.String(), "ready")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNew_ReportCaller(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", ReportCaller: true}, &buf)
	logger.Info().Msg("x")

	assert.Contains(t, buf.String(), `"caller"`)
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info"}, &buf)
	ctx := logger.WithContext(context.Background())

	Ctx(ctx).Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	assert.NotNil(t, Ctx(context.Background()))
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
