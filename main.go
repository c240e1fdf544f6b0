package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mcncl/parsely/internal/analyzer"
	"github.com/mcncl/parsely/internal/config"
	"github.com/mcncl/parsely/internal/errors"
	"github.com/mcncl/parsely/internal/formatter"
	"github.com/mcncl/parsely/internal/logging"
	"github.com/mcncl/parsely/internal/models"
	"github.com/mcncl/parsely/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Engine      string `help:"Parser engine: dynamic, static or both." short:"e" placeholder:"ENGINE"`
	Lenient     bool   `help:"Ignore data after the first JSON value instead of failing."`
	Format      string `help:"Output format: json or yaml." short:"F" placeholder:"FORMAT"`
	Indent      int    `help:"Indentation width for output. Negative keeps the configured value." default:"-1"`
	KeyCase     string `help:"Rename object keys: snake, camel, lower_camel or kebab." name:"key-case" placeholder:"CASE"`
	Stats       bool   `help:"Print structural statistics to stderr."`
	Config      string `help:"Path to config file. Searched for upwards from the working directory if not given." short:"c" type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger logging.Logger
}

// Version information
const (
	Version = "0.1.0"
)

// stdout is swapped out in tests
var stdout io.Writer = os.Stdout

func main() {
	app := kong.Must(&CLI,
		kong.Name("parsely"),
		kong.Description("Parse JSON with a parser-combinator engine and re-emit it"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	_, err := app.Parse(os.Args[1:])
	if err != nil {
		// Usage has already been shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("parsely version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	logger := logging.New(cfg.Dev.Debug, os.Stderr)
	defer func() { _ = logger.Sync() }()

	err = run(&Context{Config: cfg, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: parsely --help\n")
		_ = logger.Sync()
		os.Exit(1)
	}
}

// loadConfig merges the config file (explicit or discovered) with CLI flags
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}

	overrides := config.CLIOverrides{
		Engine:  CLI.Engine,
		Lenient: CLI.Lenient,
		Format:  CLI.Format,
		KeyCase: CLI.KeyCase,
		Stats:   CLI.Stats,
		Debug:   CLI.Debug,
	}
	if CLI.Indent >= 0 {
		indent := CLI.Indent
		overrides.Indent = &indent
	}

	return config.LoadConfigWithCLI(path, overrides)
}

// run executes the main program logic
func run(ctx *Context) error {
	var logger logging.Logger = logging.Nop()
	if ctx.Logger != nil {
		logger = ctx.Logger
	}
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	// 1. Parse JSON input
	opts := cfg.ParserOptions()
	logger.Debugf("parsing with engine=%s lenient=%t", opts.Engine, opts.Lenient)
	doc, err := parseInput(opts)
	if err != nil {
		return err
	}
	if doc.Rest != "" {
		logger.Warnf("ignored %d bytes after the JSON value", len(doc.Rest))
	}

	// 2. Collect statistics
	stats := analyzer.NewAnalyzer().Analyze(doc)
	logger.Debugf("parsed %s root: depth=%d nodes=%d", doc.RootKind(), stats.Depth, stats.Nodes)
	if cfg.Output.Stats {
		fmt.Fprint(os.Stderr, stats.Summary())
	}

	// 3. Render
	out, err := formatter.NewFormatter(cfg.FormatterOptions()).Format(doc.Root)
	if err != nil {
		return err
	}

	// 4. Output the result
	return writeOutput(out)
}

// parseInput reads JSON from file or stdin
func parseInput(opts parser.Options) (models.Document, error) {
	if CLI.Input != "" {
		return parser.ParseFile(CLI.Input, opts)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput(os.Stdin, opts)
		}
		return models.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return models.Document{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseString(string(jsonData), opts)
}

// writeOutput writes the rendered value to file or stdout
func writeOutput(out string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(out+"\n"), 0o644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", CLI.Output)
		return nil
	}

	_, err := fmt.Fprintln(stdout, strings.TrimSpace(out))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput lets users paste JSON and signal completion with
// Ctrl+D (EOF)
func readInteractiveInput(in io.Reader, opts parser.Options) (models.Document, error) {
	fmt.Fprintln(os.Stderr, "Parsely Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(in)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Document{}, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if len(jsonData) == 0 {
		return models.Document{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return parser.ParseString(jsonData, opts)
}
