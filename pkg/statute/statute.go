// Package statute defines the normalized data model for statute and
// regulation sections: a Citation, a Section, and its ordered tree of
// Subsections. Values are immutable once built.
package statute

import (
	"errors"
	"fmt"
	"time"
)

// Status classifies a raw source document before segmentation.
type Status string

const (
	StatusOK        Status = "ok"
	StatusNotFound  Status = "not_found"
	StatusRepealed  Status = "repealed"
	StatusMalformed Status = "malformed"
)

// Sentinel errors corresponding to terminal classifications. Callers
// use errors.Is to decide whether to skip, store an empty-body marker,
// or abort a batch.
var (
	ErrNotFound  = errors.New("section not found at source")
	ErrRepealed  = errors.New("section repealed")
	ErrMalformed = errors.New("section number or document malformed")
)

// Citation identifies one section within one jurisdiction. The
// SectionNumber is the untouched source-format string: it may contain
// letters, dots, and dashes, and is never reinterpreted.
type Citation struct {
	Prefix        string `json:"prefix" yaml:"prefix"`
	TitleOrCode   string `json:"title_or_code,omitempty" yaml:"title_or_code,omitempty"`
	SectionNumber string `json:"section_number" yaml:"section_number"`
}

// String renders the jurisdiction-qualified citation, e.g. "WV-11-15-3".
func (c Citation) String() string {
	return fmt.Sprintf("%s-%s", c.Prefix, c.SectionNumber)
}

// Subsection is one node of a section's enumeration tree. Identifier
// is the bare marker token ("a", "1", "iv", "1.5"); Children preserve
// source document order, which may differ from lexical order.
type Subsection struct {
	Identifier string       `json:"identifier" yaml:"identifier"`
	Heading    string       `json:"heading,omitempty" yaml:"heading,omitempty"`
	Text       string       `json:"text" yaml:"text"`
	Children   []Subsection `json:"children,omitempty" yaml:"children,omitempty"`
}

// Section is the normalized form of one statute or regulation section.
// When Subsections is non-empty, Text holds only the chapeau: the
// content preceding the first subsection marker.
type Section struct {
	Citation      Citation     `json:"citation" yaml:"citation"`
	TitleName     string       `json:"title_name,omitempty" yaml:"title_name,omitempty"`
	SectionTitle  string       `json:"section_title" yaml:"section_title"`
	Text          string       `json:"text" yaml:"text"`
	Subsections   []Subsection `json:"subsections,omitempty" yaml:"subsections,omitempty"`
	SourceNote    string       `json:"source_note,omitempty" yaml:"source_note,omitempty"`
	EffectiveDate *time.Time   `json:"effective_date,omitempty" yaml:"effective_date,omitempty"`
	SourceURL     string       `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	Status        Status       `json:"status" yaml:"status"`
}

// DefaultTitle is the fallback section title used when no extraction
// strategy produced a heading.
func DefaultTitle(sectionNumber string) string {
	return fmt.Sprintf("Section %s", sectionNumber)
}

// Walk visits s and every descendant in document order.
func (s Subsection) Walk(fn func(Subsection)) {
	fn(s)
	for _, c := range s.Children {
		c.Walk(fn)
	}
}

// CountNodes returns the total number of subsection nodes in the tree.
func (s *Section) CountNodes() int {
	n := 0
	for _, sub := range s.Subsections {
		sub.Walk(func(Subsection) { n++ })
	}
	return n
}
