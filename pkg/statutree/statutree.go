// Package statutree is the main entry point: it composes
// classification, title extraction, history-note extraction, and
// profile-driven segmentation into one normalized Section per input
// document. The whole pipeline is a pure transformation; it performs
// no I/O and is safe for unbounded concurrent use.
package statutree

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/statutree/statutree/internal/htmltext"
	"github.com/statutree/statutree/internal/logger"
	"github.com/statutree/statutree/pkg/classify"
	"github.com/statutree/statutree/pkg/histnote"
	"github.com/statutree/statutree/pkg/profile"
	"github.com/statutree/statutree/pkg/segment"
	"github.com/statutree/statutree/pkg/statute"
	"github.com/statutree/statutree/pkg/title"
)

// Version returns the module version consumers pulled via go get.
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}
	return "(unknown)"
}

// Input is one source document awaiting normalization. Exactly one of
// Text or HTML should carry content; when HTML is set it is flattened
// first and its parsed form feeds the element-based strategies.
type Input struct {
	Text          string
	HTML          string
	SectionNumber string
	SourceURL     string
}

// Builder normalizes documents for one jurisdiction. Construct once
// per profile and reuse freely across goroutines.
type Builder struct {
	profile    *profile.Profile
	engine     *segment.Engine
	notes      *histnote.Extractor
	strategies []title.Strategy
}

// NewBuilder compiles a builder from a validated profile.
func NewBuilder(p *profile.Profile) (*Builder, error) {
	notes, err := histnote.New(p)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Code, err)
	}
	return &Builder{
		profile:    p,
		engine:     segment.NewEngine(p),
		notes:      notes,
		strategies: title.ForProfile(p),
	}, nil
}

// Build classifies, extracts, and segments one document.
//
// Terminal classifications map to the statute sentinel errors:
// NotFound and Malformed return a nil Section; Repealed returns a
// Section with an empty body (callers typically store it as an
// empty-body marker rather than drop the citation) and a nil error.
// Missing title or note never fail; they degrade to defaults.
func (b *Builder) Build(in Input) (*statute.Section, error) {
	citation := statute.Citation{
		Prefix:        b.profile.Code,
		TitleOrCode:   b.profile.TitleOrCode,
		SectionNumber: in.SectionNumber,
	}

	text := in.Text
	titleIn := title.Input{Text: text}
	if in.HTML != "" {
		flat, doc, err := htmltext.Flatten(in.HTML)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", citation, statute.ErrMalformed)
		}
		if text == "" {
			text = flat
		}
		titleIn = title.Input{Text: text, Doc: doc}
	}

	switch status := classify.Classify(titleIn.Doc, text, in.SectionNumber, b.profile); status {
	case statute.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", citation, statute.ErrNotFound)
	case statute.StatusMalformed:
		return nil, fmt.Errorf("%s: %w", citation, statute.ErrMalformed)
	case statute.StatusRepealed:
		logger.Debug("section repealed", "citation", citation.String())
		return &statute.Section{
			Citation:     citation,
			TitleName:    b.profile.TitleOrCode,
			SectionTitle: title.Extract(titleIn, in.SectionNumber, b.strategies),
			SourceURL:    in.SourceURL,
			Status:       statute.StatusRepealed,
		}, nil
	}

	sectionTitle := title.Extract(titleIn, in.SectionNumber, b.strategies)

	note := b.notes.Extract(text)
	body := text[:note.BodyEnd]

	subs := b.engine.Segment(body)
	sectionText := body
	if len(subs) > 0 {
		sectionText = b.engine.Chapeau(body)
	}

	section := &statute.Section{
		Citation:      citation,
		TitleName:     b.profile.TitleOrCode,
		SectionTitle:  sectionTitle,
		Text:          strings.TrimSpace(sectionText),
		Subsections:   subs,
		SourceNote:    note.Text,
		EffectiveDate: note.EffectiveDate,
		SourceURL:     in.SourceURL,
		Status:        statute.StatusOK,
	}
	logger.Debug("section built",
		"citation", citation.String(),
		"subsections", section.CountNodes(),
		"has_note", note.Text != "")
	return section, nil
}

// Parse is the one-shot convenience: look up the jurisdiction,
// build, and normalize a single document.
func Parse(in Input, jurisdiction string) (*statute.Section, error) {
	p, err := profile.Get(jurisdiction)
	if err != nil {
		return nil, err
	}
	b, err := NewBuilder(p)
	if err != nil {
		return nil, err
	}
	return b.Build(in)
}
