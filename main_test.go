package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/parsely/internal/config"
	"github.com/mcncl/parsely/internal/errors"
	"github.com/mcncl/parsely/internal/logging"
	"github.com/mcncl/parsely/internal/models"
	"github.com/mcncl/parsely/internal/parser"
)

// withCLI restores the global flag state and stdout after the test
func withCLI(t *testing.T) *bytes.Buffer {
	t.Helper()
	originalCLI := CLI
	originalStdout := stdout
	var buf bytes.Buffer
	stdout = &buf
	t.Cleanup(func() {
		CLI = originalCLI
		stdout = originalStdout
	})
	return &buf
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_SimpleJSON(t *testing.T) {
	out := withCLI(t)
	CLI.Input = writeTemp(t, "input.json", `{"name": "John", "age": 30, "active": true}`)

	cfg := config.NewConfig()
	cfg.Output.Indent = 0
	err := run(&Context{Config: cfg})
	require.NoError(t, err)

	assert.Equal(t, `{"active":true,"age":30,"name":"John"}`+"\n", out.String())
}

func TestRun_YAMLWithKeyCase(t *testing.T) {
	out := withCLI(t)
	CLI.Input = writeTemp(t, "input.json", `{"firstName": "Ada", "tags": ["x"]}`)

	cfg := config.NewConfig()
	cfg.Output.Format = "yaml"
	cfg.Naming.KeyCase = "snake"
	err := run(&Context{Config: cfg})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "first_name: Ada")
	assert.Contains(t, out.String(), "tags:")
}

func TestRun_WithOutputFile(t *testing.T) {
	withCLI(t)
	CLI.Input = writeTemp(t, "input.json", `{"id": 1, "email": "test@example.com"}`)
	CLI.Output = filepath.Join(t.TempDir(), "out.json")

	err := run(&Context{Config: config.NewConfig()})
	require.NoError(t, err)

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"email\": \"test@example.com\",\n  \"id\": 1\n}\n", string(content))
}

func TestRun_EveryEngine(t *testing.T) {
	for _, engine := range parser.Engines {
		t.Run(string(engine), func(t *testing.T) {
			out := withCLI(t)
			CLI.Input = writeTemp(t, "input.json", `[1, {"a": null}]`)

			cfg := config.NewConfig()
			cfg.Engine = string(engine)
			cfg.Output.Indent = 0
			require.NoError(t, run(&Context{Config: cfg, Logger: logging.Nop()}))
			assert.Equal(t, `[1,{"a":null}]`+"\n", out.String())
		})
	}
}

func TestRun_StrictRejectsTrailingData(t *testing.T) {
	withCLI(t)
	CLI.Input = writeTemp(t, "input.json", `{"a": 1} extra`)

	err := run(&Context{Config: config.NewConfig()})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTrailingData)
}

func TestRun_LenientIgnoresTrailingData(t *testing.T) {
	out := withCLI(t)
	CLI.Input = writeTemp(t, "input.json", `{"a": 1} extra`)

	var logs bytes.Buffer
	cfg := config.NewConfig()
	cfg.Strict = false
	cfg.Output.Indent = 0
	err := run(&Context{Config: cfg, Logger: logging.New(false, &logs)})
	require.NoError(t, err)

	assert.Equal(t, `{"a":1}`+"\n", out.String())
	assert.Contains(t, logs.String(), "ignored 5 bytes")
}

func TestRun_DebugLogging(t *testing.T) {
	withCLI(t)
	CLI.Input = writeTemp(t, "input.json", `[[1]]`)

	var logs bytes.Buffer
	err := run(&Context{Config: config.NewConfig(), Logger: logging.New(true, &logs)})
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "engine=dynamic")
	assert.Contains(t, logs.String(), "parsed array root: depth=2 nodes=3")
}

// recordingLogger keeps formatted messages per level
type recordingLogger struct {
	debug, warn []string
}

func (r *recordingLogger) Debugf(format string, args ...any) {
	r.debug = append(r.debug, fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warn = append(r.warn, fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Infof(string, ...any) {}

func (r *recordingLogger) Errorf(string, ...any) {}

func (r *recordingLogger) Sync() error { return nil }

func TestRun_AcceptsAnyLogger(t *testing.T) {
	withCLI(t)
	CLI.Input = writeTemp(t, "input.json", `{"a": [1, 2]} tail`)

	cfg := config.NewConfig()
	cfg.Engine = "static"
	cfg.Strict = false
	rec := &recordingLogger{}
	require.NoError(t, run(&Context{Config: cfg, Logger: rec}))

	assert.Equal(t, []string{
		"parsing with engine=static lenient=true",
		"parsed object root: depth=2 nodes=4",
	}, rec.debug)
	assert.Equal(t, []string{"ignored 4 bytes after the JSON value"}, rec.warn)
}

func TestRun_NilConfigUsesDefaults(t *testing.T) {
	out := withCLI(t)
	CLI.Input = writeTemp(t, "input.json", `true`)

	require.NoError(t, run(&Context{}))
	assert.Equal(t, "true\n", out.String())
}

func TestParseInput_FromFile(t *testing.T) {
	withCLI(t)
	CLI.Input = writeTemp(t, "input.json", `{"user": {"name": "Alice", "id": 42}}`)

	doc, err := parseInput(parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, models.KindObject, doc.RootKind())
}

func TestParseInput_FromStdin(t *testing.T) {
	withCLI(t)
	originalStdin := os.Stdin
	defer func() { os.Stdin = originalStdin }()

	CLI.Input = ""

	r, w, err := os.Pipe()
	require.NoError(t, err)
	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString(`[{"item": "apple"}, {"item": "banana"}]`)
	}()
	os.Stdin = r
	defer func() { _ = r.Close() }()

	doc, err := parseInput(parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, models.KindArray, doc.RootKind())
	assert.Len(t, doc.Root, 2)
}

func TestParseInput_EmptyFile(t *testing.T) {
	withCLI(t)
	CLI.Input = writeTemp(t, "empty.json", "")

	_, err := parseInput(parser.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileEmpty)
}

func TestParseInput_InvalidJSON(t *testing.T) {
	withCLI(t)
	CLI.Input = writeTemp(t, "bad.json", `{"name": "John", "age": }`)

	_, err := parseInput(parser.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidJSON)
}

func TestParseInput_NonExistentFile(t *testing.T) {
	withCLI(t)
	CLI.Input = "/non/existent/file.json"

	_, err := parseInput(parser.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}

func TestWriteOutput_ToFile(t *testing.T) {
	withCLI(t)
	CLI.Output = filepath.Join(t.TempDir(), "out.yaml")

	require.NoError(t, writeOutput("a: 1"))

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(content))
}

func TestWriteOutput_ToStdout(t *testing.T) {
	out := withCLI(t)
	CLI.Output = ""

	require.NoError(t, writeOutput("  [1,2]\n"))
	assert.Equal(t, "[1,2]\n", out.String())
}

func TestWriteOutput_FileError(t *testing.T) {
	withCLI(t)
	CLI.Output = "/non/existent/dir/output.json"

	err := writeOutput("{}")
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeOutput})
}

func TestReadInteractiveInput(t *testing.T) {
	// The last line has no trailing newline and must still be kept
	doc, err := readInteractiveInput(strings.NewReader("{\n  \"a\": [1,\n2]}"), parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, models.Object{"a": models.Array{models.Number(1), models.Number(2)}}, doc.Root)
}

func TestReadInteractiveInput_Empty(t *testing.T) {
	_, err := readInteractiveInput(strings.NewReader(""), parser.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	withCLI(t)
	CLI.Config = writeTemp(t, "parsely.yml", "engine: static\noutput:\n  indent: 4\n")
	CLI.Engine = "both"
	CLI.Indent = -1
	CLI.Lenient = true

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "both", cfg.Engine)
	assert.Equal(t, 4, cfg.Output.Indent)
	assert.False(t, cfg.Strict)
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	withCLI(t)
	CLI.Config = writeTemp(t, "parsely.yml", "")
	CLI.Indent = -1
	CLI.Format = "xml"

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, errors.UserFriendlyError(err), "Configuration error: unknown output format 'xml'")
}

// Full pipeline over the bundled sample document
func TestFullPipeline_SampleDocument(t *testing.T) {
	out := withCLI(t)
	CLI.Input = filepath.Join("testdata", "sample.json")

	cfg := config.NewConfig()
	cfg.Engine = "both"
	cfg.Output.Format = "yaml"
	require.NoError(t, run(&Context{Config: cfg}))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Len(t, decoded, 20)
	assert.Equal(t, "Deep Nested", decoded["nested_object"].(map[string]any)["level1"].(map[string]any)["level2"].(map[string]any)["level3"].(map[string]any)["name"])
}
