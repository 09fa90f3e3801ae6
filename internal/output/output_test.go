package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/statutree/statutree/pkg/statute"
)

func sampleSection(number, title string) statute.Section {
	return statute.Section{
		Citation: statute.Citation{
			Prefix:        "WV",
			TitleOrCode:   "West Virginia Code",
			SectionNumber: number,
		},
		SectionTitle: title,
		Text:         "Chapeau text.",
		Subsections: []statute.Subsection{
			{Identifier: "a", Text: "First subsection."},
		},
		Status: statute.StatusOK,
	}
}

func TestNewWriterFormats(t *testing.T) {
	buf := &bytes.Buffer{}

	w, err := NewWriter(buf, FormatJSON)
	if err != nil {
		t.Fatalf("NewWriter(json) error = %v", err)
	}
	if _, ok := w.(*JSONWriter); !ok {
		t.Errorf("expected *JSONWriter, got %T", w)
	}

	w, err = NewWriter(buf, FormatJSONL)
	if err != nil {
		t.Fatalf("NewWriter(jsonl) error = %v", err)
	}
	if _, ok := w.(*JSONLWriter); !ok {
		t.Errorf("expected *JSONLWriter, got %T", w)
	}

	w, err = NewWriter(buf, FormatYAML)
	if err != nil {
		t.Fatalf("NewWriter(yaml) error = %v", err)
	}
	if _, ok := w.(*YAMLWriter); !ok {
		t.Errorf("expected *YAMLWriter, got %T", w)
	}

	if _, err := NewWriter(buf, Format("csv")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONWriterSingleSection(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, true, "  ")

	if err := w.Write(sampleSection("11-15-3", "Amount of tax")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	// A single section is emitted bare, not wrapped in an array.
	var result statute.Section
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if result.Citation.SectionNumber != "11-15-3" {
		t.Errorf("unexpected result: %+v", result)
	}
	if !strings.Contains(buf.String(), "\n") {
		t.Error("expected pretty-printed output")
	}
}

func TestJSONWriterMultipleSectionsArray(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	if err := w.Write(sampleSection("11-15-3", "Amount of tax")); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(sampleSection("11-15-4", "Purchaser to pay")); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	var result []statute.Section
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(result))
	}
	if result[1].SectionTitle != "Purchaser to pay" {
		t.Errorf("unexpected order: %+v", result)
	}
}

func TestJSONLWriterOneSectionPerLine(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)

	if err := w.WriteAll([]any{
		sampleSection("231-1", "Definitions"),
		sampleSection("231-2", "Administration"),
	}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	for i, line := range lines {
		var s statute.Section
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestYAMLWriterRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.Write(sampleSection("11-15-3", "Amount of tax")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var result statute.Section
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if result.SectionTitle != "Amount of tax" || len(result.Subsections) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestCloseFlushes(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	if err := w.Write(sampleSection("1-1-1", "Short title")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected output after Close()")
	}
}

func TestEmptyFlush(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatJSONL, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			buf := &bytes.Buffer{}
			w, err := NewWriter(buf, format)
			if err != nil {
				t.Fatal(err)
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}
		})
	}
}
