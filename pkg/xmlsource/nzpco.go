package xmlsource

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/statutree/statutree/pkg/statute"
)

// NZ Parliamentary Counsel Office schema: a prov is a section, its
// subprovs are the first nesting level, and label-para elements nest
// arbitrarily below that. The element tree is the subsection tree.

type nzProv struct {
	XMLName  xml.Name      `xml:"prov"`
	ID       string        `xml:"id,attr"`
	Label    string        `xml:"label"`
	Heading  string        `xml:"heading"`
	Paras    []string      `xml:"para>text"`
	Subprovs []nzSubprov   `xml:"subprov"`
	History  []nzHistoryEl `xml:"history>history-note"`
}

type nzSubprov struct {
	Label      string        `xml:"label"`
	Paras      []string      `xml:"para>text"`
	LabelParas []nzLabelPara `xml:"para>label-para"`
}

type nzLabelPara struct {
	Label    string        `xml:"label"`
	Paras    []string      `xml:"para>text"`
	Children []nzLabelPara `xml:"para>label-para"`
}

type nzHistoryEl struct {
	Text string `xml:",chardata"`
}

// ParseNZProv decodes one PCO prov element into a Section. The prefix
// qualifies the citation (typically "NZ").
func ParseNZProv(r io.Reader, prefix, titleOrCode, sourceURL string) (*statute.Section, error) {
	var prov nzProv
	if err := xml.NewDecoder(r).Decode(&prov); err != nil {
		return nil, fmt.Errorf("failed to decode PCO XML: %w", err)
	}

	number := strings.TrimSpace(prov.Label)
	if number == "" {
		return nil, fmt.Errorf("prov without label: %w", statute.ErrMalformed)
	}

	sectionTitle := strings.TrimSpace(prov.Heading)
	if sectionTitle == "" {
		sectionTitle = statute.DefaultTitle(number)
	}

	subs := make([]statute.Subsection, 0, len(prov.Subprovs))
	for _, sp := range prov.Subprovs {
		subs = append(subs, statute.Subsection{
			Identifier: strings.TrimSpace(sp.Label),
			Text:       joinParas(sp.Paras),
			Children:   labelParas(sp.LabelParas),
		})
	}

	var notes []string
	for _, h := range prov.History {
		if t := strings.TrimSpace(h.Text); t != "" {
			notes = append(notes, t)
		}
	}

	return &statute.Section{
		Citation: statute.Citation{
			Prefix:        prefix,
			TitleOrCode:   titleOrCode,
			SectionNumber: number,
		},
		SectionTitle: sectionTitle,
		Text:         joinParas(prov.Paras),
		Subsections:  subs,
		SourceNote:   strings.Join(notes, "; "),
		SourceURL:    sourceURL,
		Status:       statute.StatusOK,
	}, nil
}

func labelParas(lps []nzLabelPara) []statute.Subsection {
	if len(lps) == 0 {
		return nil
	}
	out := make([]statute.Subsection, 0, len(lps))
	for _, lp := range lps {
		out = append(out, statute.Subsection{
			Identifier: strings.Trim(strings.TrimSpace(lp.Label), "()"),
			Text:       joinParas(lp.Paras),
			Children:   labelParas(lp.Children),
		})
	}
	return out
}

func joinParas(paras []string) string {
	cleaned := make([]string, 0, len(paras))
	for _, p := range paras {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "\n")
}
