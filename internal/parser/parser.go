package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/parsely/internal/errors" // Custom errors package
	"github.com/mcncl/parsely/internal/harness"
	"github.com/mcncl/parsely/internal/models"
)

// Engine selects which grammar realization parses the input.
type Engine string

const (
	EngineDynamic Engine = "dynamic"
	EngineStatic  Engine = "static"
	// EngineBoth runs both realizations and fails if they disagree.
	EngineBoth Engine = "both"
)

// Engines lists the accepted engine names
var Engines = []Engine{EngineDynamic, EngineStatic, EngineBoth}

// ParseEngine validates an engine name. The empty name selects the dynamic engine.
func ParseEngine(name string) (Engine, error) {
	if name == "" {
		return EngineDynamic, nil
	}
	for _, e := range Engines {
		if string(e) == name {
			return e, nil
		}
	}
	return "", errors.NewConfigError(fmt.Sprintf("unknown engine '%s'", name), errors.ErrUnknownEngine)
}

// Options controls how input is parsed
type Options struct {
	Engine Engine
	// Lenient accepts data after the first JSON value and returns it in
	// Document.Rest instead of failing.
	Lenient bool
}

// Parse reads all of reader and parses it as a single JSON value
func Parse(reader io.Reader, opts Options) (models.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read input", err)
	}
	return parseText(string(data), opts)
}

func parseText(text string, opts Options) (models.Document, error) {
	if strings.TrimSpace(text) == "" {
		return models.Document{}, errors.NewInputError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	res, err := run(text, opts.Engine)
	if err != nil {
		return models.Document{}, err
	}
	if !res.OK {
		return models.Document{}, errors.NewParsingError("input does not match the JSON grammar", errors.ErrInvalidJSON)
	}

	// The grammar consumes trailing whitespace, so any remainder is real data.
	if res.Rest != "" && !opts.Lenient {
		offset := len(text) - len(res.Rest)
		return models.Document{}, errors.NewParsingError(
			fmt.Sprintf("unexpected data at offset %d", offset),
			errors.ErrTrailingData,
		)
	}

	return models.Document{Root: res.Value, Rest: res.Rest}, nil
}

func run(text string, engine Engine) (harness.Result, error) {
	switch engine {
	case EngineDynamic, "":
		return harness.Dynamic.Run(text), nil
	case EngineStatic:
		return harness.Static.Run(text), nil
	case EngineBoth:
		return harness.Compare(text, harness.Dynamic, harness.Static)
	default:
		return harness.Result{}, errors.NewConfigError(fmt.Sprintf("unknown engine '%s'", engine), errors.ErrUnknownEngine)
	}
}

// ParseString parses JSON from a string
func ParseString(jsonString string, opts Options) (models.Document, error) {
	return parseText(jsonString, opts)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string, opts Options) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file, opts)
}
