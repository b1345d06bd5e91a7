package errors

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("invalid input").Build(), expected: 2},
		{name: "structure", err: StructureError("duplicate title").Build(), expected: 2},
		{name: "config", err: ConfigError("bad config").Build(), expected: 7},
		{name: "template", err: TemplateError("merge failed").Build(), expected: 11},
		{name: "filesystem", err: FileSystemError("write failed").Build(), expected: 11},
		{name: "internal", err: InternalError("boom").Build(), expected: 10},
		{name: "unclassified", err: stderrors.New("unknown"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	err := StructureError("no # heading found").WithContext("path", "a.md").Build()

	assert.Equal(t, "Error: no # heading found", quiet.FormatError(err))
	assert.Equal(t, "[structure:fatal] no # heading found (path=a.md)", verbose.FormatError(err))
	assert.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(InternalError("x").Build()))
	assert.Equal(t, "Error: plain", quiet.FormatError(stderrors.New("plain")))
	assert.Empty(t, quiet.FormatError(nil))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var buf bytes.Buffer
	var logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &buf
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("missing paths.docs").Build())

	assert.Equal(t, 7, code)
	assert.Equal(t, "Error: missing paths.docs\n", buf.String())
	assert.Contains(t, logs.String(), "category=config")
}
