package statutree

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/statutree/statutree/pkg/profile"
	"github.com/statutree/statutree/pkg/statute"
)

func readTestdata(t *testing.T, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("failed to read testdata %s: %v", filename, err)
	}
	return string(data)
}

func builderFor(t *testing.T, code string) *Builder {
	t.Helper()
	p, err := profile.Get(code)
	if err != nil {
		t.Fatalf("profile.Get(%s) error = %v", code, err)
	}
	b, err := NewBuilder(p)
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	return b
}

func TestBuildPlainText(t *testing.T) {
	b := builderFor(t, "WV")

	s, err := b.Build(Input{
		Text:          readTestdata(t, "wv-11-15-3.txt"),
		SectionNumber: "11-15-3",
		SourceURL:     "https://code.wvlegislature.gov/11-15-3/",
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := s.Citation.String(); got != "WV-11-15-3" {
		t.Errorf("citation = %q, want WV-11-15-3", got)
	}
	if s.Status != statute.StatusOK {
		t.Errorf("status = %v, want OK", s.Status)
	}
	if !strings.Contains(s.SectionTitle, "Amount of tax") {
		t.Errorf("section title = %q", s.SectionTitle)
	}

	if !strings.Contains(s.SourceNote, "1933, c. 33") {
		t.Errorf("source note = %q", s.SourceNote)
	}
	for _, sub := range s.Subsections {
		if strings.Contains(sub.Text, "History:") {
			t.Errorf("history note leaked into subsection %s: %q", sub.Identifier, sub.Text)
		}
	}

	if len(s.Subsections) != 3 {
		t.Fatalf("got %d subsections, want 3 (a, b, c)", len(s.Subsections))
	}
	ids := []string{s.Subsections[0].Identifier, s.Subsections[1].Identifier, s.Subsections[2].Identifier}
	if ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("identifiers = %v", ids)
	}

	bNode := s.Subsections[1]
	if len(bNode.Children) != 2 {
		t.Fatalf("subsection b has %d children, want 2", len(bNode.Children))
	}
	if bNode.Children[0].Identifier != "1" || bNode.Children[1].Identifier != "2" {
		t.Errorf("b children = %q, %q", bNode.Children[0].Identifier, bNode.Children[1].Identifier)
	}
	if !strings.Contains(bNode.Text, "six cents on the dollar") {
		t.Errorf("b direct text = %q", bNode.Text)
	}
	if strings.Contains(bNode.Text, "third decimal place") {
		t.Errorf("b direct text includes child content: %q", bNode.Text)
	}

	// Chapeau invariant: top-level text stops at the first marker.
	if strings.Contains(s.Text, "(a)") || strings.Contains(s.Text, "Vendor to collect") {
		t.Errorf("section text overlaps first subsection: %q", s.Text)
	}
}

func TestBuildHTML(t *testing.T) {
	b := builderFor(t, "HI")

	s, err := b.Build(Input{
		HTML:          readTestdata(t, "hi-231-1.html"),
		SectionNumber: "231-1",
		SourceURL:     "https://www.capitol.hawaii.gov/hrs/231-1",
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if s.SectionTitle != "Definitions" {
		t.Errorf("section title = %q, want Definitions (page-title strategy)", s.SectionTitle)
	}
	if s.SourceNote != "L 1999, c 45, §2" {
		t.Errorf("source note = %q", s.SourceNote)
	}
	if len(s.Subsections) != 2 {
		t.Fatalf("got %d subsections %+v, want 2", len(s.Subsections), s.Subsections)
	}
	if len(s.Subsections[1].Children) != 2 {
		t.Errorf("subsection b children = %+v, want nested (1), (2)", s.Subsections[1].Children)
	}
	if !strings.Contains(s.Text, "As used in this chapter") {
		t.Errorf("chapeau = %q", s.Text)
	}
	if strings.Contains(s.Text, "department of taxation") {
		t.Errorf("chapeau overlaps subsection text: %q", s.Text)
	}
}

func TestBuildNotFound(t *testing.T) {
	b := builderFor(t, "WV")

	_, err := b.Build(Input{
		HTML:          `<html><head><title>404 - Page Not Found</title></head><body></body></html>`,
		SectionNumber: "11-15-999",
	})
	if !errors.Is(err, statute.ErrNotFound) {
		t.Errorf("Build() error = %v, want ErrNotFound", err)
	}
}

func TestBuildRepealed(t *testing.T) {
	b := builderFor(t, "WV")

	s, err := b.Build(Input{
		Text:          "Repealed by Acts 2011, c. 120.",
		SectionNumber: "11-15-9a",
	})
	if err != nil {
		t.Fatalf("Build() error = %v, repealed sections are stored, not dropped", err)
	}
	if s.Status != statute.StatusRepealed {
		t.Errorf("status = %v, want Repealed", s.Status)
	}
	if s.Text != "" || len(s.Subsections) != 0 {
		t.Errorf("repealed section should carry an empty body, got %+v", s)
	}
}

func TestBuildMalformedNumber(t *testing.T) {
	b := builderFor(t, "WV")

	_, err := b.Build(Input{
		Text:          "(a) Some text.",
		SectionNumber: "11-15", // WV requires three hyphen-delimited parts
	})
	if !errors.Is(err, statute.ErrMalformed) {
		t.Errorf("Build() error = %v, want ErrMalformed", err)
	}
}

func TestBuildNoSubsections(t *testing.T) {
	b := builderFor(t, "WV")

	text := "§11-1-1. Findings. The legislature finds that uniform administration benefits all taxpayers."
	s, err := b.Build(Input{Text: text, SectionNumber: "11-1-1"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(s.Subsections) != 0 {
		t.Errorf("subsections = %+v, want none", s.Subsections)
	}
	if !strings.Contains(s.Text, "uniform administration") {
		t.Errorf("unenumerated section must keep full body, got %q", s.Text)
	}
}

func TestBuildIdempotent(t *testing.T) {
	b := builderFor(t, "WV")
	in := Input{Text: readTestdata(t, "wv-11-15-3.txt"), SectionNumber: "11-15-3"}

	first, err := b.Build(in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Build(in)
	if err != nil {
		t.Fatal(err)
	}
	if first.CountNodes() != second.CountNodes() || first.Text != second.Text {
		t.Error("Build is not deterministic across invocations")
	}
}

func TestParseConvenience(t *testing.T) {
	s, err := Parse(Input{
		Text:          "(a) Foo bar. (b) Baz qux.",
		SectionNumber: "5-5-5",
	}, "WV")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(s.Subsections) != 2 {
		t.Errorf("got %d subsections, want 2", len(s.Subsections))
	}

	if _, err := Parse(Input{Text: "x", SectionNumber: "1"}, "NOPE"); err == nil {
		t.Error("Parse(unknown jurisdiction) error = nil")
	}
}
