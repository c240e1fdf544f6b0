package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/parsely/internal/errors"
	"github.com/mcncl/parsely/internal/models"
)

// OutputFormat is the text format values are rendered in
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// KeyCase is a naming convention applied to object keys on output
type KeyCase string

const (
	KeyCaseAsIs       KeyCase = ""
	KeyCaseSnake      KeyCase = "snake"
	KeyCaseCamel      KeyCase = "camel"
	KeyCaseLowerCamel KeyCase = "lower_camel"
	KeyCaseKebab      KeyCase = "kebab"
)

var keyCases = map[KeyCase]func(string) string{
	KeyCaseSnake:      strcase.ToSnake,
	KeyCaseCamel:      strcase.ToCamel,
	KeyCaseLowerCamel: strcase.ToLowerCamel,
	KeyCaseKebab:      strcase.ToKebab,
}

// Valid reports whether c is a known key case
func (c KeyCase) Valid() bool {
	if c == KeyCaseAsIs {
		return true
	}
	_, ok := keyCases[c]
	return ok
}

// Valid reports whether f is a known output format
func (f OutputFormat) Valid() bool {
	return f == FormatJSON || f == FormatYAML
}

// Options controls rendering
type Options struct {
	Format OutputFormat
	// Indent is the number of spaces per nesting level. Zero renders
	// JSON on a single line.
	Indent  int
	KeyCase KeyCase
}

// Formatter renders parsed values as text
type Formatter struct {
	opts Options
}

// NewFormatter creates a new Formatter instance
func NewFormatter(opts Options) *Formatter {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	return &Formatter{opts: opts}
}

// Format renders v according to the formatter's options
func (f *Formatter) Format(v models.Value) (string, error) {
	if !f.opts.KeyCase.Valid() {
		return "", errors.NewFormatError(fmt.Sprintf("unknown key case '%s'", f.opts.KeyCase), nil)
	}
	plain := toPlain(RenameKeys(v, f.opts.KeyCase))

	switch f.opts.Format {
	case FormatJSON:
		return f.formatJSON(plain)
	case FormatYAML:
		return f.formatYAML(plain)
	default:
		return "", errors.NewFormatError(fmt.Sprintf("unknown output format '%s'", f.opts.Format), nil)
	}
}

func (f *Formatter) formatJSON(plain any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if f.opts.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", f.opts.Indent))
	}
	if err := enc.Encode(plain); err != nil {
		return "", errors.NewFormatError("failed to render JSON", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (f *Formatter) formatYAML(plain any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if f.opts.Indent > 0 {
		enc.SetIndent(f.opts.Indent)
	}
	if err := enc.Encode(plain); err != nil {
		return "", errors.NewFormatError("failed to render YAML", err)
	}
	if err := enc.Close(); err != nil {
		return "", errors.NewFormatError("failed to render YAML", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// RenameKeys returns a copy of v with every object key converted to the
// given case. When two keys convert to the same name, the one that sorts
// last wins.
func RenameKeys(v models.Value, c KeyCase) models.Value {
	convert, ok := keyCases[c]
	if !ok {
		return v
	}
	return renameKeys(v, convert)
}

func renameKeys(v models.Value, convert func(string) string) models.Value {
	switch val := v.(type) {
	case models.Array:
		out := make(models.Array, len(val))
		for i, item := range val {
			out[i] = renameKeys(item, convert)
		}
		return out
	case models.Object:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make(models.Object, len(val))
		for _, k := range keys {
			out[convert(k)] = renameKeys(val[k], convert)
		}
		return out
	default:
		return v
	}
}

// toPlain converts a value to the Go types the encoders understand
func toPlain(v models.Value) any {
	switch val := v.(type) {
	case models.Bool:
		return bool(val)
	case models.Number:
		return float64(val)
	case models.String:
		return string(val)
	case models.Array:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = toPlain(item)
		}
		return out
	case models.Object:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = toPlain(item)
		}
		return out
	default:
		return nil
	}
}
