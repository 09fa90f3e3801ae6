// Package classify inspects raw source input for terminal conditions
// before segmentation is attempted: missing pages, repealed sections,
// and section numbers that cannot satisfy the jurisdiction's citation
// shape.
package classify

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/statutree/statutree/pkg/profile"
	"github.com/statutree/statutree/pkg/statute"
)

// repealedBodyMax is the longest body still considered "essentially a
// repeal marker". Sections that merely discuss a repeal run far past
// this.
const repealedBodyMax = 240

// Classify runs the pre-segmentation checks. doc may be nil for
// plain-text inputs; in that case not-found detection is scoped to the
// first line, the plain-text stand-in for a title element.
func Classify(doc *goquery.Document, text, sectionNumber string, p *profile.Profile) statute.Status {
	if malformedNumber(sectionNumber, p) {
		return statute.StatusMalformed
	}
	if notFound(doc, text, p) {
		return statute.StatusNotFound
	}
	if repealed(text, p) {
		return statute.StatusRepealed
	}
	return statute.StatusOK
}

func malformedNumber(sectionNumber string, p *profile.Profile) bool {
	if strings.TrimSpace(sectionNumber) == "" {
		return true
	}
	if p.CitationParts > 0 {
		if len(strings.Split(sectionNumber, "-")) < p.CitationParts {
			return true
		}
	}
	return false
}

// notFound checks title/heading-scoped signals only. A body that
// legitimately contains the phrase "not found" must not trip this,
// so the scan never touches arbitrary body text.
func notFound(doc *goquery.Document, text string, p *profile.Profile) bool {
	signals := p.NotFoundSignals
	if len(signals) == 0 {
		signals = profile.DefaultNotFoundSignals
	}

	var scope []string
	if doc != nil {
		scope = append(scope, doc.Find("title").First().Text())
		doc.Find("h1,h2,h3").Each(func(_ int, sel *goquery.Selection) {
			scope = append(scope, sel.Text())
		})
	} else {
		scope = append(scope, firstLine(text))
	}

	for _, candidate := range scope {
		lower := strings.ToLower(strings.TrimSpace(candidate))
		if lower == "" {
			continue
		}
		for _, signal := range signals {
			if strings.Contains(lower, strings.ToLower(signal)) {
				return true
			}
		}
	}
	return false
}

func repealed(text string, p *profile.Profile) bool {
	body := strings.TrimSpace(text)
	if body == "" || len(body) > repealedBodyMax {
		return false
	}
	markers := p.RepealMarkers
	if len(markers) == 0 {
		markers = profile.DefaultRepealMarkers
	}
	for _, marker := range markers {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}

func firstLine(text string) string {
	text = strings.TrimLeft(text, " \t\n")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
