// Package histnote pulls the trailing history/source note from the
// tail of a section's text, and an effective date when the profile
// knows how to recognize one.
package histnote

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/statutree/statutree/pkg/profile"
)

// Note is the result of tail extraction. BodyEnd is the byte offset
// where the substantive body stops; callers strip the note by slicing
// text[:BodyEnd]. A zero-value Note (BodyEnd == -1 sentinel avoided;
// missing notes report BodyEnd == len(text)) means nothing matched.
type Note struct {
	Text          string
	EffectiveDate *time.Time
	BodyEnd       int
}

// trailingSlack is how far from the end of the document a note match
// may terminate and still count as trailing. Notes are the last thing
// printed on statute pages; a "History:" mention mid-document is
// prose, not a note.
const trailingSlack = 120

// Extractor applies a profile's note and date patterns. Build one per
// profile with New; it is immutable and safe for concurrent use.
type Extractor struct {
	patterns []*regexp.Regexp
	datePat  *regexp.Regexp
	layout   string
	maxLen   int
}

// New compiles a profile's note patterns. Patterns were validated at
// profile load, so compile errors indicate a hand-built profile.
func New(p *profile.Profile) (*Extractor, error) {
	e := &Extractor{
		layout: p.DateLayout,
		maxLen: p.NoteLimit(),
	}
	for i, pat := range p.NotePatterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("note pattern %d: %w", i, err)
		}
		e.patterns = append(e.patterns, re)
	}
	if p.DatePattern != "" {
		re, err := regexp.Compile(p.DatePattern)
		if err != nil {
			return nil, fmt.Errorf("date pattern: %w", err)
		}
		e.datePat = re
	}
	return e, nil
}

// Extract scans the tail of text for the first configured introducer.
// Missing notes degrade: the returned Note has empty Text and BodyEnd
// equal to len(text).
func (e *Extractor) Extract(text string) Note {
	note := Note{BodyEnd: len(text)}
	trimmed := strings.TrimRight(text, " \t\n")

	for _, re := range e.patterns {
		matches := re.FindAllStringSubmatchIndex(trimmed, -1)
		if len(matches) == 0 {
			continue
		}
		// Only the last occurrence can be the trailing note.
		m := matches[len(matches)-1]
		if m[1] < len(trimmed)-trailingSlack {
			continue
		}
		noteText := strings.TrimSpace(trimmed[m[2]:m[3]])
		if noteText == "" {
			continue
		}
		if len(noteText) > e.maxLen {
			cut := e.maxLen
			// Back up so the cap never splits a multi-byte rune;
			// section symbols are common in note text.
			for cut > 0 && !utf8.RuneStart(noteText[cut]) {
				cut--
			}
			noteText = noteText[:cut]
		}
		note.Text = noteText
		note.BodyEnd = m[0]
		break
	}

	if note.Text != "" && e.datePat != nil {
		if dm := e.datePat.FindStringSubmatch(note.Text); dm != nil && len(dm) > 1 {
			if t, err := time.Parse(e.layout, dm[1]); err == nil {
				note.EffectiveDate = &t
			}
		}
	}
	return note
}
