package cliout

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// captureOutput redirects package output to a buffer during fn.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	fn()
	return buf.String()
}

func resetFormat(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { _ = SetFormat("default") })
}

func TestSetFormat(t *testing.T) {
	resetFormat(t)

	tests := []struct {
		input string
		want  Format
	}{
		{"default", FormatDefault},
		{"table", FormatDefault},
		{"", FormatDefault},
		{"json", FormatJSON},
		{"yaml", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if err := SetFormat(tt.input); err != nil {
				t.Fatalf("SetFormat(%q) failed: %v", tt.input, err)
			}
			if got := GetFormat(); got != tt.want {
				t.Errorf("GetFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetFormatInvalid(t *testing.T) {
	resetFormat(t)
	_ = SetFormat("json")

	err := SetFormat("xml")
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	if !strings.Contains(err.Error(), "invalid output format") {
		t.Errorf("unexpected error: %v", err)
	}
	if GetFormat() != FormatJSON {
		t.Errorf("format changed after invalid SetFormat: %q", GetFormat())
	}
}

func TestIsJSON(t *testing.T) {
	resetFormat(t)

	_ = SetFormat("json")
	if !IsJSON() {
		t.Error("expected IsJSON() to be true")
	}
	_ = SetFormat("yaml")
	if IsJSON() {
		t.Error("expected IsJSON() to be false")
	}
}

func TestStatusMessagesWithoutColor(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(string, ...any)
		prefix string
	}{
		{"success", Success, ASCIICheck},
		{"error", Error, ASCIICross},
		{"warning", Warning, ASCIIWarning},
		{"info", Info, ASCIIInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(t, func() {
				tt.fn("Saved %s", ".env")
			})
			want := tt.prefix + " Saved .env\n"
			if output != want {
				t.Errorf("output = %q, want %q", output, want)
			}
		})
	}
}

func TestStatusMessagesWithColor(t *testing.T) {
	output := captureOutput(t, func() {
		ForceColor()
		Success("done")
	})
	if !strings.Contains(output, BrightGreen) || !strings.Contains(output, Reset) {
		t.Errorf("expected colored output, got %q", output)
	}
	if !strings.HasSuffix(output, " done\n") {
		t.Errorf("expected message at end of line, got %q", output)
	}
}

func TestNoColor(t *testing.T) {
	output := captureOutput(t, func() {
		ForceColor()
		NoColor()
		Header("Services")
	})
	if strings.Contains(output, "\033[") {
		t.Errorf("expected no escape sequences, got %q", output)
	}
	if output != "\nServices\n========\n" {
		t.Errorf("unexpected header output %q", output)
	}
}

func TestSetOutputRestores(t *testing.T) {
	var outer, inner bytes.Buffer
	restoreOuter := SetOutput(&outer)
	defer restoreOuter()

	restoreInner := SetOutput(&inner)
	Plain("inner")
	restoreInner()
	Plain("outer")

	if inner.String() != "inner\n" {
		t.Errorf("inner = %q", inner.String())
	}
	if outer.String() != "outer\n" {
		t.Errorf("outer = %q", outer.String())
	}
}

func TestLabel(t *testing.T) {
	output := captureOutput(t, func() {
		Label("Port", "8080")
	})
	if output != "   Port:        8080\n" {
		t.Errorf("Label output = %q", output)
	}
}

func TestPrintJSON(t *testing.T) {
	data := map[string]any{"label": "p-mysql", "count": 2}
	output := captureOutput(t, func() {
		if err := PrintJSON(data); err != nil {
			t.Fatalf("PrintJSON failed: %v", err)
		}
	})

	var got map[string]any
	if err := json.Unmarshal([]byte(output), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output)
	}
	if got["label"] != "p-mysql" {
		t.Errorf("label = %v", got["label"])
	}
	if !strings.Contains(output, "\n  \"") {
		t.Errorf("expected indented JSON, got %s", output)
	}
}

func TestPrintJSONKeepsHTMLCharacters(t *testing.T) {
	output := captureOutput(t, func() {
		if err := PrintJSON(map[string]string{"url": "https://h/db?a=1&b=<2>"}); err != nil {
			t.Fatalf("PrintJSON failed: %v", err)
		}
	})
	if !strings.Contains(output, `"https://h/db?a=1&b=<2>"`) {
		t.Errorf("expected unescaped URL, got %s", output)
	}
	if strings.Contains(output, `\u0026`) {
		t.Errorf("unexpected HTML escape in %s", output)
	}
}

func TestPrintJSONError(t *testing.T) {
	captureOutput(t, func() {
		if err := PrintJSON(make(chan int)); err == nil {
			t.Error("expected error encoding a channel")
		}
	})
}

func TestPrintYAML(t *testing.T) {
	data := map[string]string{"name": "db", "plan": "small"}
	output := captureOutput(t, func() {
		if err := PrintYAML(data); err != nil {
			t.Fatalf("PrintYAML failed: %v", err)
		}
	})

	var got map[string]string
	if err := yaml.Unmarshal([]byte(output), &got); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, output)
	}
	if got["name"] != "db" || got["plan"] != "small" {
		t.Errorf("decoded %v", got)
	}
}

func TestPrintDispatchesOnFormat(t *testing.T) {
	resetFormat(t)
	data := map[string]string{"k": "v"}

	tests := []struct {
		format string
		want   string
	}{
		{"default", "formatted\n"},
		{"json", "{\n  \"k\": \"v\"\n}\n"},
		{"yaml", "k: v\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			_ = SetFormat(tt.format)
			output := captureOutput(t, func() {
				err := Print(data, func() error {
					Plain("formatted")
					return nil
				})
				if err != nil {
					t.Fatalf("Print failed: %v", err)
				}
			})
			if output != tt.want {
				t.Errorf("output = %q, want %q", output, tt.want)
			}
		})
	}
}

func TestTable(t *testing.T) {
	output := captureOutput(t, func() {
		err := Table([]string{"Label", "Name"}, [][]string{
			{"p-mysql", "orders-db"},
			{"p-redis", "cache"},
		})
		if err != nil {
			t.Fatalf("Table failed: %v", err)
		}
	})

	upper := strings.ToUpper(output)
	for _, want := range []string{"LABEL", "NAME", "P-MYSQL", "ORDERS-DB", "P-REDIS", "CACHE"} {
		if !strings.Contains(upper, want) {
			t.Errorf("expected %q in table output:\n%s", want, output)
		}
	}
	if strings.Index(output, "p-mysql") > strings.Index(output, "p-redis") {
		t.Errorf("rows out of order:\n%s", output)
	}
}

func TestTableEmpty(t *testing.T) {
	output := captureOutput(t, func() {
		if err := Table([]string{"Label"}, nil); err != nil {
			t.Fatalf("Table failed: %v", err)
		}
	})
	if output != "" {
		t.Errorf("expected no output for empty table, got %q", output)
	}
}
