// Package xmlsource adapts XML legal-document formats whose element
// nesting already encodes the subsection hierarchy. These inputs map
// 1:1 onto Subsection nodes and bypass the text segmentation engine
// entirely.
package xmlsource

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/statutree/statutree/pkg/statute"
)

// cfrDiv models the eCFR DIV1..DIV9 hierarchy. DIV5 is a part, DIV8 a
// section; P elements carry the paragraph text with inline "(a)"
// style markers at their head.
type cfrDiv struct {
	XMLName  xml.Name
	Type     string    `xml:"TYPE,attr"`
	N        string    `xml:"N,attr"`
	Head     string    `xml:"HEAD"`
	Paras    []cfrPara `xml:"P"`
	Cita     string    `xml:"CITA"`
	Children []cfrDiv  `xml:",any"`
}

// cfrPara is the text of one <P>, including character data inside
// inline markup like <E T="03">. Decoding a P into a plain string
// keeps only the top-level character data and loses emphasized terms.
type cfrPara string

func (p *cfrPara) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}
	*p = cfrPara(sb.String())
	return nil
}

// cfrMarker matches the leading paragraph marker of a CFR <P>.
var cfrMarker = regexp.MustCompile(`^\(([A-Za-z0-9]{1,4}(?:\.\d+)?)\)\s*`)

// headNumber pulls the section number out of a HEAD like
// "§ 101.1   Definitions.".
var headNumber = regexp.MustCompile(`§+\s*([0-9]+[0-9A-Za-z.\-]*)\s*(.*)`)

// ParseCFRSection decodes one DIV8 SECTION element into a Section.
// The prefix qualifies the citation (typically "CFR").
func ParseCFRSection(r io.Reader, prefix, sourceURL string) (*statute.Section, error) {
	var div cfrDiv
	if err := xml.NewDecoder(r).Decode(&div); err != nil {
		return nil, fmt.Errorf("failed to decode CFR XML: %w", err)
	}
	return cfrSection(&div, prefix, sourceURL)
}

// ParseCFRPart decodes a DIV5 PART element and returns every SECTION
// it contains, in document order.
func ParseCFRPart(r io.Reader, prefix, sourceURL string) ([]*statute.Section, error) {
	var div cfrDiv
	if err := xml.NewDecoder(r).Decode(&div); err != nil {
		return nil, fmt.Errorf("failed to decode CFR XML: %w", err)
	}

	var sections []*statute.Section
	var walk func(d *cfrDiv) error
	walk = func(d *cfrDiv) error {
		if d.Type == "SECTION" || d.XMLName.Local == "DIV8" {
			s, err := cfrSection(d, prefix, sourceURL)
			if err != nil {
				return err
			}
			sections = append(sections, s)
			return nil
		}
		for i := range d.Children {
			if err := walk(&d.Children[i]); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(&div); err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("no SECTION elements found: %w", statute.ErrMalformed)
	}
	return sections, nil
}

func cfrSection(div *cfrDiv, prefix, sourceURL string) (*statute.Section, error) {
	number := strings.TrimSpace(div.N)
	sectionTitle := ""
	if m := headNumber.FindStringSubmatch(div.Head); m != nil {
		if number == "" {
			number = m[1]
		}
		sectionTitle = strings.TrimSuffix(strings.TrimSpace(m[2]), ".")
	}
	number = strings.TrimPrefix(number, "§ ")
	number = strings.TrimSpace(strings.TrimPrefix(number, "§"))
	if number == "" {
		return nil, fmt.Errorf("CFR section without number: %w", statute.ErrMalformed)
	}
	if sectionTitle == "" {
		sectionTitle = statute.DefaultTitle(number)
	}

	chapeau, subs := groupParagraphs(div.Paras)

	return &statute.Section{
		Citation: statute.Citation{
			Prefix:        prefix,
			TitleOrCode:   "Code of Federal Regulations",
			SectionNumber: number,
		},
		SectionTitle: sectionTitle,
		Text:         chapeau,
		Subsections:  subs,
		SourceNote:   strings.Trim(strings.TrimSpace(div.Cita), "[]"),
		SourceURL:    sourceURL,
		Status:       statute.StatusOK,
	}, nil
}

// groupParagraphs folds flat <P> elements into a tree using each
// paragraph's leading marker as the structural hint. A paragraph
// without a marker extends the node that is currently open, or the
// chapeau when none is.
func groupParagraphs(paras []cfrPara) (string, []statute.Subsection) {
	var chapeau []string
	var roots []statute.Subsection
	// Stack of open nodes, indexed by depth.
	var stack []*statute.Subsection

	appendText := func(node *statute.Subsection, text string) {
		if node.Text == "" {
			node.Text = text
		} else {
			node.Text += "\n" + text
		}
	}

	for _, p := range paras {
		para := strings.TrimSpace(string(p))
		if para == "" {
			continue
		}

		m := cfrMarker.FindStringSubmatch(para)
		if m == nil {
			if len(stack) > 0 {
				appendText(stack[len(stack)-1], para)
			} else {
				chapeau = append(chapeau, para)
			}
			continue
		}

		id := m[1]
		rest := strings.TrimSpace(para[len(m[0]):])
		depth := markerDepth(id, len(stack))
		if depth > len(stack) {
			depth = len(stack)
		}
		stack = stack[:depth]

		node := statute.Subsection{Identifier: id, Text: rest}
		if depth == 0 {
			roots = append(roots, node)
			stack = append(stack[:0], &roots[len(roots)-1])
		} else {
			parent := stack[depth-1]
			parent.Children = append(parent.Children, node)
			stack = append(stack, &parent.Children[len(parent.Children)-1])
		}
	}
	return strings.Join(chapeau, "\n"), roots
}

// markerDepth maps a CFR marker shape onto its canonical nesting
// depth: (a) → 0, (1) → 1, (i) → 2, (A) → 3, (I) → 4. A lone roman
// letter like "i" is read as a lowercase letter unless a numbered
// level is already open, which mirrors how the printed CFR nests.
func markerDepth(id string, openDepth int) int {
	switch {
	case isDigits(id):
		return 1
	case isLowerRoman(id) && (len(id) > 1 || openDepth >= 2):
		return 2
	case isUpperRoman(id) && len(id) > 1:
		return 4
	case id == strings.ToUpper(id) && id != strings.ToLower(id):
		return 3
	default:
		return 0
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return s != ""
}

func isLowerRoman(s string) bool {
	return s != "" && strings.Trim(s, "ivxlcdm") == ""
}

func isUpperRoman(s string) bool {
	return s != "" && strings.Trim(s, "IVXLCDM") == ""
}
