// Package title extracts a section's heading by trying an ordered
// chain of recognition strategies. Each strategy is pure and consults
// only its own input; profiles compose chains explicitly, never by
// inheritance from another jurisdiction.
package title

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/statutree/statutree/pkg/profile"
	"github.com/statutree/statutree/pkg/statute"
)

// Input is the material a strategy may inspect: the flattened text,
// and the parsed source document when the input came from HTML.
type Input struct {
	Text string
	Doc  *goquery.Document
}

// Strategy attempts to recognize a section heading. The boolean is
// false when the strategy found nothing; extraction falls through to
// the next strategy in the chain.
type Strategy interface {
	Name() string
	Attempt(in Input, sectionNumber string) (string, bool)
}

// Extract runs the chain and returns the first non-empty result,
// falling back to "Section {number}" when every strategy misses.
// Missing titles degrade, they never fail.
func Extract(in Input, sectionNumber string, strategies []Strategy) string {
	for _, s := range strategies {
		if t, ok := s.Attempt(in, sectionNumber); ok && t != "" {
			return t
		}
	}
	return statute.DefaultTitle(sectionNumber)
}

// ForProfile builds the strategy chain a profile declares. An empty
// declaration yields the body-regex strategy alone.
func ForProfile(p *profile.Profile) []Strategy {
	names := p.TitleStrategies
	if len(names) == 0 {
		names = []string{profile.StrategyBodyRegex}
	}
	strategies := make([]Strategy, 0, len(names))
	for _, name := range names {
		switch name {
		case profile.StrategyPageTitle:
			strategies = append(strategies, PageTitle{})
		case profile.StrategyHeading:
			strategies = append(strategies, Heading{})
		case profile.StrategyBoldText:
			strategies = append(strategies, BoldText{})
		case profile.StrategyBodyRegex:
			strategies = append(strategies, BodyRegex{Pattern: p.TitlePattern})
		}
	}
	return strategies
}

// PageTitle matches the document's <title> element when it carries the
// section number, returning the heading portion after the number.
type PageTitle struct{}

func (PageTitle) Name() string { return profile.StrategyPageTitle }

func (PageTitle) Attempt(in Input, sectionNumber string) (string, bool) {
	if in.Doc == nil {
		return "", false
	}
	text := strings.TrimSpace(in.Doc.Find("title").First().Text())
	return headingAfterNumber(text, sectionNumber)
}

// Heading scans h1 through h4 elements for one anchored on the
// section number.
type Heading struct{}

func (Heading) Name() string { return profile.StrategyHeading }

func (Heading) Attempt(in Input, sectionNumber string) (string, bool) {
	return scanElements(in, "h1,h2,h3,h4", sectionNumber)
}

// BoldText scans bold and strong elements; several state legislature
// sites mark section headings only with <b>.
type BoldText struct{}

func (BoldText) Name() string { return profile.StrategyBoldText }

func (BoldText) Attempt(in Input, sectionNumber string) (string, bool) {
	return scanElements(in, "b,strong", sectionNumber)
}

func scanElements(in Input, selector, sectionNumber string) (string, bool) {
	if in.Doc == nil {
		return "", false
	}
	var found string
	in.Doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if t, ok := headingAfterNumber(strings.TrimSpace(sel.Text()), sectionNumber); ok {
			found = t
			return false
		}
		return true
	})
	return found, found != ""
}

// BodyRegex is the bare-text fallback: a profile-supplied pattern with
// %s standing for the quoted section number, first capture group being
// the title.
type BodyRegex struct {
	Pattern string
}

func (BodyRegex) Name() string { return profile.StrategyBodyRegex }

// defaultBodyPattern anchors on "§ <number>." or "<number>." followed
// by a short heading sentence.
const defaultBodyPattern = `§?\s*%s[.:\-\s]+([^\n.]{2,200})`

func (s BodyRegex) Attempt(in Input, sectionNumber string) (string, bool) {
	pattern := s.Pattern
	if pattern == "" {
		pattern = defaultBodyPattern
	}
	re, err := regexp.Compile(strings.ReplaceAll(pattern, "%s", regexp.QuoteMeta(sectionNumber)))
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(in.Text)
	if m == nil || len(m) < 2 {
		return "", false
	}
	t := strings.TrimSpace(m[1])
	return t, t != ""
}

// headingAfterNumber returns the cleaned heading portion of an element
// text that contains the section number; element texts without the
// number are rejected so unrelated headings never leak in.
func headingAfterNumber(text, sectionNumber string) (string, bool) {
	if text == "" || sectionNumber == "" {
		return "", false
	}
	idx := strings.Index(text, sectionNumber)
	if idx < 0 {
		return "", false
	}
	rest := text[idx+len(sectionNumber):]
	// Drop site-name suffixes appended by CMSes.
	if cut := strings.IndexAny(rest, "|"); cut >= 0 {
		rest = rest[:cut]
	}
	rest = strings.Trim(rest, " \t.:-–—§")
	rest = strings.TrimSuffix(strings.TrimSpace(rest), ".")
	if rest == "" {
		return "", false
	}
	return rest, true
}
