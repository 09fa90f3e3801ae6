// Package segment splits a block of statute text into a nested
// subsection tree, driven entirely by a jurisdiction profile's level
// sequence. Matching is lexical: a missing identifier in a sequence
// does not break splitting, and no semantic numbering validation is
// performed beyond the strict roman-numeral grammar.
package segment

import (
	"regexp"
	"strings"

	"github.com/statutree/statutree/pkg/profile"
)

// kindPatterns maps each marker convention to its recognizer. The
// first capture group is always the bare identifier.
var kindPatterns = map[profile.MarkerKind]*regexp.Regexp{
	profile.Letter:         regexp.MustCompile(`\(([a-z]{1,2})\)`),
	profile.Number:         regexp.MustCompile(`\((\d+(?:\.\d+)?[A-Z]?)\)`),
	profile.Roman:          regexp.MustCompile(`\(([ivxlcdm]+)\)`),
	profile.UpperLetter:    regexp.MustCompile(`\(([A-Z]{1,2})\)`),
	profile.UpperRoman:     regexp.MustCompile(`\(([IVXLCDM]+)\)`),
	profile.NumberDot:      regexp.MustCompile(`(?m)^[ \t]*(\d+(?:\.\d+)?[A-Z]?)\.\s+`),
	profile.UpperLetterDot: regexp.MustCompile(`(?m)^[ \t]*([A-Z])\.\s+`),
}

// romanPattern is the strict numeral grammar. Arbitrary runs of the
// letters i/v/x/l/c/d/m ("(vv)", "(im)") are rejected so prose in
// parentheses cannot masquerade as a marker.
var romanPattern = regexp.MustCompile(`^M{0,3}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)

// IsRoman reports whether s is a well-formed roman numeral in either
// case. Case must be uniform; mixed-case tokens are rejected.
func IsRoman(s string) bool {
	if s == "" {
		return false
	}
	upper := strings.ToUpper(s)
	if s != upper && s != strings.ToLower(s) {
		return false
	}
	return romanPattern.MatchString(upper)
}

// Span is one marker occurrence: the bare identifier, the content
// running up to the next same-convention marker, and the byte offset
// of the marker itself within the input.
type Span struct {
	Identifier string
	Content    string
	Start      int
}

// Matcher recognizes one marker convention. When the surrounding
// level sequence also uses roman numerals, letter matchers cede
// roman-shaped tokens to the roman level: "(iv)" always, and a lone
// "(i)" or "(v)" unless it continues an alphabetic run, so the "(i)"
// after "(h)" stays a letter while a freestanding "(i)" nests as a
// roman.
type Matcher struct {
	kind      profile.MarkerKind
	re        *regexp.Regexp
	skipRoman bool
}

// NewMatcher builds a matcher for kind. The full level sequence gives
// the matcher enough context to disambiguate letters from romans.
func NewMatcher(kind profile.MarkerKind, sequence []profile.MarkerKind) *Matcher {
	m := &Matcher{kind: kind, re: kindPatterns[kind]}
	if kind == profile.Letter || kind == profile.UpperLetter {
		for _, other := range sequence {
			if other == profile.Roman || other == profile.UpperRoman {
				m.skipRoman = true
			}
		}
	}
	return m
}

// Kind returns the convention this matcher recognizes.
func (m *Matcher) Kind() profile.MarkerKind { return m.kind }

// skip reports whether id is a false positive for this convention.
// prev is the previously accepted identifier at the same level, empty
// when id would be the first.
func (m *Matcher) skip(id, prev string) bool {
	switch m.kind {
	case profile.Roman, profile.UpperRoman:
		return !IsRoman(id)
	case profile.Letter, profile.UpperLetter:
		if !m.skipRoman || !IsRoman(id) {
			return false
		}
		if len(id) > 1 {
			return true
		}
		// A lone roman-shaped token ("i", "v", "x") is a letter only
		// when it continues the alphabetic run at this level.
		return !continuesRun(prev, id)
	}
	return false
}

// continuesRun reports whether id is the alphabetic successor of prev,
// e.g. "h" then "i", or "u" then "v".
func continuesRun(prev, id string) bool {
	return len(prev) == 1 && len(id) == 1 && prev[0]+1 == id[0]
}

// Split returns every marker occurrence with its content. Content runs
// from just past the marker up to (not including) the next occurrence
// of the same convention. Lexically out-of-sequence identifiers
// ("(a) ... (c)") split exactly as written.
func (m *Matcher) Split(text string) []Span {
	if m.re == nil || text == "" {
		return nil
	}
	matches := m.re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	// Filter false positives before pairing content boundaries, so a
	// rejected token does not truncate its neighbor's content.
	live := matches[:0:0]
	prev := ""
	for _, loc := range matches {
		id := text[loc[2]:loc[3]]
		if m.skip(id, prev) {
			continue
		}
		live = append(live, loc)
		prev = id
	}
	if len(live) == 0 {
		return nil
	}

	spans := make([]Span, 0, len(live))
	for i, loc := range live {
		end := len(text)
		if i+1 < len(live) {
			end = live[i+1][0]
		}
		spans = append(spans, Span{
			Identifier: text[loc[2]:loc[3]],
			Content:    text[loc[1]:end],
			Start:      loc[0],
		})
	}
	return spans
}

// FirstIndex returns the byte offset of the first live marker of this
// convention in text, or -1 when none occurs. With no preceding run
// to continue, ambiguous lone romans are not counted.
func (m *Matcher) FirstIndex(text string) int {
	if m.re == nil {
		return -1
	}
	offset := 0
	for {
		loc := m.re.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			return -1
		}
		if !m.skip(text[offset+loc[2]:offset+loc[3]], "") {
			return offset + loc[0]
		}
		offset += loc[1]
	}
}
