package segment

import (
	"strings"
	"unicode/utf8"

	"github.com/statutree/statutree/pkg/profile"
	"github.com/statutree/statutree/pkg/statute"
)

// Engine turns flat statute text into a subsection tree using a
// profile's level sequence. It is stateless after construction and
// safe for concurrent use.
type Engine struct {
	p        *profile.Profile
	primary  []*Matcher
	fallback []*Matcher
}

// NewEngine compiles the matchers for a profile's level sequences.
func NewEngine(p *profile.Profile) *Engine {
	return &Engine{
		p:        p,
		primary:  buildMatchers(p.Levels),
		fallback: buildMatchers(p.FallbackLevels),
	}
}

func buildMatchers(sequence []profile.MarkerKind) []*Matcher {
	if len(sequence) == 0 {
		return nil
	}
	matchers := make([]*Matcher, len(sequence))
	for i, kind := range sequence {
		matchers[i] = NewMatcher(kind, sequence)
	}
	return matchers
}

// Segment splits text into an ordered subsection tree. An empty result
// means the section has no enumerated subsections and callers should
// keep the full text as the body. When the primary level order finds
// nothing at depth zero and the profile declares a fallback order,
// the fallback is tried; some jurisdictions open sections directly
// with numbered paragraphs rather than lettered ones.
func (e *Engine) Segment(text string) []statute.Subsection {
	subs := e.segment(text, e.primary, 0)
	if len(subs) == 0 && e.fallback != nil {
		subs = e.segment(text, e.fallback, 0)
	}
	return subs
}

func (e *Engine) segment(text string, levels []*Matcher, depth int) []statute.Subsection {
	// Depth is hard-capped by the declared sequence; adversarial input
	// cannot recurse past it.
	if depth >= len(levels) {
		return nil
	}
	spans := levels[depth].Split(text)
	if len(spans) == 0 {
		return nil
	}

	subs := make([]statute.Subsection, 0, len(spans))
	for _, span := range spans {
		children := e.segment(span.Content, levels, depth+1)

		direct := span.Content
		if len(children) > 0 {
			// Direct text is the prefix before the first child marker.
			if idx := levels[depth+1].FirstIndex(span.Content); idx >= 0 {
				direct = span.Content[:idx]
			}
		}
		direct = e.bound(direct, levels, depth)

		subs = append(subs, statute.Subsection{
			Identifier: span.Identifier,
			Text:       strings.TrimSpace(direct),
			Children:   children,
		})
	}
	return subs
}

// bound truncates a node's direct text at the first occurrence of a
// marker at its own level or any parent level, then applies the
// profile's per-level size cap. A same-level or parent-level marker
// surviving inside direct text means the true boundary was missed by
// the split, a known source-text inconsistency.
func (e *Engine) bound(text string, levels []*Matcher, depth int) string {
	cut := len(text)
	for i := 0; i <= depth && i < len(levels); i++ {
		if idx := levels[i].FirstIndex(text); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	text = text[:cut]
	return truncate(text, e.p.SizeLimit(depth))
}

// truncate caps s at limit bytes, backing up so a multi-byte rune is
// never split.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// Chapeau returns the section's introductory text: everything before
// the first top-level marker of whichever level order Segment would
// use. When the text has no markers at all, the full text is returned.
func (e *Engine) Chapeau(text string) string {
	top := e.primary[0]
	if len(top.Split(text)) == 0 && e.fallback != nil {
		top = e.fallback[0]
	}
	if idx := top.FirstIndex(text); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(truncate(text, e.p.SizeLimit(0)))
}
