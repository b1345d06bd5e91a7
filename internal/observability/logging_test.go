package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRunIDAndStage(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")
	ctx = WithStage(ctx, "merge")
	ctx = WithLanguage(ctx, "python")

	lc := GetContext(ctx)
	assert.Equal(t, "run-123", lc.RunID)
	assert.Equal(t, "merge", lc.Stage)
	assert.Equal(t, "python", lc.Language)
}

func TestNewRunIDIsUUID(t *testing.T) {
	id := NewRunID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, NewRunID())
}

func TestInfoContextIncludesContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := WithStage(WithRunID(context.Background(), "abc"), "llms")
	InfoContext(ctx, "export written", slog.String("file", "llms_python.txt"))
	DebugContext(ctx, "debug line")

	out := buf.String()
	assert.Contains(t, out, "run_id=abc")
	assert.Contains(t, out, "stage=llms")
	assert.Contains(t, out, "file=llms_python.txt")
	assert.Contains(t, out, "debug line")
}
