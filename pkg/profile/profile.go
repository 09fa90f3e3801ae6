// Package profile defines declarative jurisdiction profiles: the
// numbering-level order, size limits, and extraction settings that
// drive the shared segmentation engine. A profile is plain data, built
// once at startup and never mutated, so adding a jurisdiction means
// writing a record, not a parser.
package profile

// MarkerKind names a registered numbering-marker convention. The
// segment package owns the pattern each kind compiles to.
type MarkerKind string

const (
	// Letter matches parenthetical lowercase letters: (a), (b), (aa).
	Letter MarkerKind = "letter"
	// Number matches parenthetical numbers with optional decimal or
	// letter suffix, kept atomic: (1), (1.5), (6B).
	Number MarkerKind = "number"
	// Roman matches parenthetical lowercase roman numerals validated
	// against a strict numeral grammar: (i), (iv), (ix).
	Roman MarkerKind = "roman"
	// UpperLetter matches parenthetical uppercase letters: (A), (B).
	UpperLetter MarkerKind = "upper-letter"
	// UpperRoman matches parenthetical uppercase roman numerals: (I), (IV).
	UpperRoman MarkerKind = "upper-roman"
	// NumberDot matches line-leading numbered paragraphs: "1. ", "2.5. ".
	NumberDot MarkerKind = "number-dot"
	// UpperLetterDot matches line-leading lettered paragraphs: "A. ".
	UpperLetterDot MarkerKind = "upper-letter-dot"
)

// Kinds lists every registered marker convention.
func Kinds() []MarkerKind {
	return []MarkerKind{Letter, Number, Roman, UpperLetter, UpperRoman, NumberDot, UpperLetterDot}
}

// Known reports whether k is a registered marker convention.
func Known(k MarkerKind) bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Title-extraction strategy names, tried in profile order.
const (
	StrategyPageTitle = "page-title"
	StrategyHeading   = "heading"
	StrategyBoldText  = "bold-text"
	StrategyBodyRegex = "body-regex"
)

// DefaultSizeLimits bounds each nesting depth's direct text when a
// profile does not override them. Pathological inputs are truncated
// rather than ballooning memory.
var DefaultSizeLimits = []int{50000, 20000, 10000, 5000}

// DefaultNoteMaxLen caps an extracted history/source note.
const DefaultNoteMaxLen = 1000

// Profile describes one jurisdiction's conventions. All fields are
// data; the segment, title, histnote, and classify packages interpret
// them. Instances must not be mutated after construction.
type Profile struct {
	// Code is the short jurisdiction prefix used in citations ("WV").
	Code string `yaml:"code" json:"code" validate:"required,min=2,max=8"`
	// Name is the human-readable jurisdiction name.
	Name string `yaml:"name" json:"name" validate:"required"`
	// TitleOrCode identifies the compilation the sections belong to
	// ("West Virginia Code"), carried through to Citation.
	TitleOrCode string `yaml:"title_or_code,omitempty" json:"title_or_code,omitempty"`

	// Levels is the nesting order of marker conventions, outermost
	// first. Depth is hard-capped by its length.
	Levels []MarkerKind `yaml:"levels" json:"levels" validate:"required,min=1,max=6"`
	// FallbackLevels, when set, is tried whenever Levels produces zero
	// subsections at depth zero. Some jurisdictions open sections with
	// numbered paragraphs instead of lettered ones.
	FallbackLevels []MarkerKind `yaml:"fallback_levels,omitempty" json:"fallback_levels,omitempty" validate:"omitempty,min=1,max=6"`

	// SizeLimits caps each level's direct text length, index-aligned
	// with Levels. Missing entries fall back to DefaultSizeLimits.
	SizeLimits []int `yaml:"size_limits,omitempty" json:"size_limits,omitempty" validate:"omitempty,dive,min=100"`

	// TitleStrategies orders the heading-recognition strategies. Empty
	// means body-regex only.
	TitleStrategies []string `yaml:"title_strategies,omitempty" json:"title_strategies,omitempty" validate:"omitempty,dive,oneof=page-title heading bold-text body-regex"`
	// TitlePattern is the body-regex strategy's pattern. The literal
	// %s is replaced with the quoted section number; the first capture
	// group is the title.
	TitlePattern string `yaml:"title_pattern,omitempty" json:"title_pattern,omitempty"`

	// NotePatterns are regexes recognizing a trailing history/source
	// note; the first capture group is the note text. Tried in order
	// against the tail of the document.
	NotePatterns []string `yaml:"note_patterns,omitempty" json:"note_patterns,omitempty"`
	// NoteMaxLen caps the extracted note; 0 means DefaultNoteMaxLen.
	NoteMaxLen int `yaml:"note_max_len,omitempty" json:"note_max_len,omitempty" validate:"omitempty,min=100,max=5000"`

	// DatePattern extracts an effective date from the note; the first
	// capture group is parsed with DateLayout. Empty disables date
	// extraction for the jurisdiction.
	DatePattern string `yaml:"date_pattern,omitempty" json:"date_pattern,omitempty"`
	// DateLayout is the Go time layout for DatePattern's capture.
	DateLayout string `yaml:"date_layout,omitempty" json:"date_layout,omitempty"`

	// RepealMarkers are phrases that, alone in a short body, classify
	// the section as repealed.
	RepealMarkers []string `yaml:"repeal_markers,omitempty" json:"repeal_markers,omitempty"`
	// NotFoundSignals are title-scoped phrases indicating the source
	// page does not exist.
	NotFoundSignals []string `yaml:"not_found_signals,omitempty" json:"not_found_signals,omitempty"`

	// CitationParts, when positive, requires the section number to
	// carry at least that many hyphen-delimited components; fewer
	// classifies the input as malformed.
	CitationParts int `yaml:"citation_parts,omitempty" json:"citation_parts,omitempty" validate:"omitempty,min=1,max=6"`
}

// SizeLimit returns the direct-text cap for a nesting level, falling
// back to DefaultSizeLimits and finally to the deepest default.
func (p *Profile) SizeLimit(level int) int {
	if level < len(p.SizeLimits) && p.SizeLimits[level] > 0 {
		return p.SizeLimits[level]
	}
	if level < len(DefaultSizeLimits) {
		return DefaultSizeLimits[level]
	}
	return DefaultSizeLimits[len(DefaultSizeLimits)-1]
}

// NoteLimit returns the history-note length cap.
func (p *Profile) NoteLimit() int {
	if p.NoteMaxLen > 0 {
		return p.NoteMaxLen
	}
	return DefaultNoteMaxLen
}

// DefaultRepealMarkers are used when a profile declares none.
var DefaultRepealMarkers = []string{"Repealed", "REPEALED", "Repealed by"}

// DefaultNotFoundSignals are used when a profile declares none. The
// phrases are deliberately specific; a bare "not found" would trip on
// sections that legitimately discuss the concept.
var DefaultNotFoundSignals = []string{"404", "page not found", "page cannot be found"}
