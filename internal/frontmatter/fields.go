package frontmatter

import (
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/microsoft/teams-sdk/internal/logfields"
)

// Frontmatter keys understood by the generators.
const (
	KeySidebarPosition = "sidebar_position"
	KeyTitle           = "title"
	KeySidebarLabel    = "sidebar_label"
	KeyLLMs            = "llms"
	KeySummary         = "summary"
)

// DefaultOrder is used when sidebar_position is absent or not an integer.
const DefaultOrder = 999

var (
	blockPattern = regexp.MustCompile(`^---\s*\n((?s:.*?))\n---`)
	linePattern  = regexp.MustCompile(`^(\w+):\s*(.+)$`)
	digits       = regexp.MustCompile(`^\d+$`)
)

// Fields holds flat key/value frontmatter. Values are string, bool or int.
type Fields map[string]any

// Result is the outcome of Extract.
type Result struct {
	Fields         Fields
	Content        string
	HadFrontmatter bool
}

// Extract parses a leading frontmatter block from content.
//
// This is deliberately not a YAML parser: each `key: value` line is read on its
// own and nested structures are ignored. Content is returned without the block
// and with leading whitespace removed. Without a block, Fields is empty and
// Content is the input unchanged.
func Extract(content string) Result {
	loc := blockPattern.FindStringSubmatchIndex(content)
	if loc == nil {
		return Result{Fields: Fields{}, Content: content}
	}
	fields := Parse(content[loc[2]:loc[3]])
	rest := content[:loc[0]] + content[loc[1]:]
	return Result{
		Fields:         fields,
		Content:        strings.TrimLeft(rest, " \t\r\n"),
		HadFrontmatter: true,
	}
}

// Parse reads the inside of a frontmatter block (without delimiters).
func Parse(block string) Fields {
	fields := Fields{}
	for _, line := range strings.Split(block, "\n") {
		m := linePattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		fields[m[1]] = parseValue(strings.TrimSpace(m[2]))
	}
	return fields
}

func parseValue(value string) any {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return value[1 : len(value)-1]
		}
	}
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if digits.MatchString(value) {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return value
}

// String returns the value for key when it is a non-empty string.
func (f Fields) String(key string) (string, bool) {
	v, ok := f[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Int returns the integer value for key, or def when absent or not an integer.
func (f Fields) Int(key string, def int) int {
	if v, ok := f[key].(int); ok {
		return v
	}
	return def
}

// Order returns sidebar_position, defaulting to DefaultOrder. An explicit 0 is honored.
func (f Fields) Order() int {
	return f.Int(KeySidebarPosition, DefaultOrder)
}

// Title returns title, falling back to sidebar_label.
func (f Fields) Title() (string, bool) {
	if t, ok := f.String(KeyTitle); ok {
		return t, true
	}
	return f.String(KeySidebarLabel)
}

// IgnoresFile reports whether llms excludes this document (ignore, ignore-file or false).
func (f Fields) IgnoresFile() bool {
	switch v := f[KeyLLMs].(type) {
	case string:
		return v == "ignore" || v == "ignore-file"
	case bool:
		return !v
	}
	return false
}

// IgnoresSection reports whether llms excludes the whole folder an index file
// describes (ignore or false). ignore-file only affects the index file itself.
func (f Fields) IgnoresSection() bool {
	switch v := f[KeyLLMs].(type) {
	case string:
		return v == "ignore"
	case bool:
		return !v
	}
	return false
}

// ShouldIgnore reports whether source is excluded from generated outputs.
// source is either raw content or the path of an existing file.
func ShouldIgnore(source string) bool {
	res, ok := load(source)
	if !ok {
		return false
	}
	return res.Fields.IgnoresFile()
}

// GetProperty returns key from the frontmatter of source, or def when absent.
// source is either raw content or the path of an existing file.
func GetProperty(source, key string, def any) any {
	res, ok := load(source)
	if !ok {
		return def
	}
	if v, exists := res.Fields[key]; exists {
		return v
	}
	return def
}

// ExtractFile reads path and extracts its frontmatter.
func ExtractFile(path string) (Result, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- paths come from the docs walk
	if err != nil {
		return Result{}, err
	}
	return Extract(string(data)), nil
}

func load(source string) (Result, bool) {
	if !strings.Contains(source, "\n") {
		if info, err := os.Stat(source); err == nil && !info.IsDir() {
			res, err := ExtractFile(source)
			if err != nil {
				slog.Warn("Failed to read frontmatter", logfields.Path(source), logfields.Error(err))
				return Result{}, false
			}
			return res, true
		}
	}
	return Extract(source), true
}
