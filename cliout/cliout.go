package cliout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	// FormatDefault is the default human-readable format.
	FormatDefault Format = "default"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
	// FormatYAML is YAML format.
	FormatYAML Format = "yaml"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
)

// Unicode symbols for modern CLI output
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

// ASCII fallback symbols for terminals that don't support Unicode
const (
	ASCIICheck   = "[+]"
	ASCIICross   = "[-]"
	ASCIIWarning = "[!]"
	ASCIIInfo    = "[i]"
)

var (
	// mu protects global state variables
	mu           sync.RWMutex
	globalFormat           = FormatDefault
	out          io.Writer = os.Stdout
	color                  = detectColor(os.Stdout)
)

// supportsUnicode detects if the terminal supports Unicode symbols
var supportsUnicode = detectUnicodeSupport()

// detectUnicodeSupport checks if the terminal can display Unicode properly.
// Unix-like systems are assumed to; on Windows modern terminals set one of
// these variables while the legacy console sets none.
func detectUnicodeSupport() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	for _, v := range []string{"WT_SESSION", "ConEmuPID", "PSModulePath", "TERM"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return os.Getenv("TERM_PROGRAM") == "vscode"
}

func detectColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetOutput redirects output to w and returns a function restoring the
// previous writer. Color is re-detected for w.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prevOut, prevColor := out, color
	out, color = w, detectColor(w)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		out, color = prevOut, prevColor
	}
}

// ForceColor enables color output regardless of terminal detection.
func ForceColor() {
	mu.Lock()
	color = true
	mu.Unlock()
}

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	color = false
	mu.Unlock()
}

func state() (io.Writer, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return out, color
}

// SetFormat sets the global output format. "table" is an alias for the
// default format.
func SetFormat(format string) error {
	var f Format
	switch format {
	case "default", "table", "":
		f = FormatDefault
	case "json":
		f = FormatJSON
	case "yaml":
		f = FormatYAML
	default:
		return fmt.Errorf("invalid output format: %s (valid options: table, json, yaml)", format)
	}

	mu.Lock()
	globalFormat = f
	mu.Unlock()
	return nil
}

// GetFormat returns the current output format.
func GetFormat() Format {
	mu.RLock()
	defer mu.RUnlock()
	return globalFormat
}

// IsJSON returns true if the output format is JSON.
func IsJSON() bool {
	return GetFormat() == FormatJSON
}

// PrintJSON prints data as indented JSON. HTML characters are written
// as is so URLs keep their query strings readable.
func PrintJSON(data any) error {
	w, _ := state()
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// PrintYAML prints data as YAML.
func PrintYAML(data any) error {
	w, _ := state()
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// Print outputs data in the configured format.
// For default format, uses the formatter function.
// For JSON and YAML formats, marshals the data object.
func Print(data any, formatter func() error) error {
	switch GetFormat() {
	case FormatJSON:
		return PrintJSON(data)
	case FormatYAML:
		return PrintYAML(data)
	default:
		return formatter()
	}
}

// Table prints rows under headers. An empty table prints nothing.
func Table(headers []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	w, _ := state()
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	table := tablewriter.NewWriter(w)
	table.Header(cells...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to add table row: %w", err)
		}
	}
	return table.Render()
}

// Header prints a bold header with a divider
func Header(text string) {
	w, c := state()
	fmt.Fprintf(w, "\n%s\n", paint(c, Bold, text))
	fmt.Fprintln(w, strings.Repeat("=", len(text)))
}

// Success prints a success message with green checkmark
func Success(format string, args ...any) {
	status(BrightGreen, SymbolCheck, ASCIICheck, format, args...)
}

// Error prints an error message with red X
func Error(format string, args ...any) {
	status(BrightRed, SymbolCross, ASCIICross, format, args...)
}

// Warning prints a warning message with yellow triangle
func Warning(format string, args ...any) {
	status(BrightYellow, SymbolWarning, ASCIIWarning, format, args...)
}

// Info prints an info message with blue info icon
func Info(format string, args ...any) {
	status(BrightBlue, SymbolInfo, ASCIIInfo, format, args...)
}

func status(colorCode, symbol, ascii, format string, args ...any) {
	w, c := state()
	icon := ascii
	if c && supportsUnicode {
		icon = symbol
	}
	fmt.Fprintf(w, "%s %s\n", paint(c, colorCode, icon), fmt.Sprintf(format, args...))
}

// Label prints a label and value pair
func Label(label, value string) {
	w, c := state()
	fmt.Fprintf(w, "   %s %s\n", paint(c, Dim, fmt.Sprintf("%-12s", label+":")), value)
}

// Plain prints plain text without any formatting.
func Plain(format string, args ...any) {
	w, _ := state()
	fmt.Fprintf(w, format+"\n", args...)
}

func paint(enabled bool, code, s string) string {
	if !enabled {
		return s
	}
	return code + s + Reset
}
