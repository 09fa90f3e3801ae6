package profile

import (
	"fmt"
	"sort"
)

// registry holds the built-in jurisdiction profiles plus any the
// caller registers at startup. Profiles are read-only once published.
var registry = map[string]*Profile{
	"WV": {
		Code:        "WV",
		Name:        "West Virginia",
		TitleOrCode: "West Virginia Code",
		Levels:      []MarkerKind{Letter, Number, UpperLetter, Roman},
		TitleStrategies: []string{
			StrategyPageTitle, StrategyBoldText, StrategyBodyRegex,
		},
		TitlePattern: `§?\s*%s[.\s]+([^.\n]{2,200})[.\n]`,
		NotePatterns: []string{
			`(?s)History[.:]\s*(.+?)\s*$`,
		},
		RepealMarkers: []string{"Repealed", "Repealed by"},
		CitationParts: 3,
	},
	"CO": {
		Code:        "CO",
		Name:        "Colorado",
		TitleOrCode: "Colorado Revised Statutes",
		Levels:      []MarkerKind{Number, Letter, UpperRoman, UpperLetter},
		TitleStrategies: []string{
			StrategyHeading, StrategyBodyRegex,
		},
		TitlePattern: `%s\.\s+([^.\n]{2,200})[.\n]`,
		NotePatterns: []string{
			`(?s)Source:\s*(.+?)\s*$`,
		},
		DatePattern:   `effective\s+([A-Z][a-z]+ \d{1,2}, \d{4})`,
		DateLayout:    "January 2, 2006",
		CitationParts: 3,
	},
	"IL": {
		Code:        "IL",
		Name:        "Illinois",
		TitleOrCode: "Illinois Compiled Statutes",
		Levels:      []MarkerKind{Letter, Number, UpperLetter},
		TitleStrategies: []string{
			StrategyBoldText, StrategyBodyRegex,
		},
		TitlePattern: `Sec\.\s*%s\.\s+([^.\n]{2,200})[.\n]`,
		NotePatterns: []string{
			`\(Source:\s*([^)]+)\)\s*$`,
		},
	},
	"HI": {
		Code:        "HI",
		Name:        "Hawaii",
		TitleOrCode: "Hawaii Revised Statutes",
		Levels:      []MarkerKind{Letter, Number, UpperLetter},
		TitleStrategies: []string{
			StrategyPageTitle, StrategyHeading, StrategyBodyRegex,
		},
		TitlePattern: `§?\s*%s\s+([^.\n]{2,200})[.\n]`,
		NotePatterns: []string{
			`\[(L\s+\d{4}[^\]]*)\]\s*$`,
		},
	},
	"DE": {
		Code:        "DE",
		Name:        "Delaware",
		TitleOrCode: "Delaware Code",
		Levels:      []MarkerKind{Letter, Number, Letter},
		TitleStrategies: []string{
			StrategyHeading, StrategyBodyRegex,
		},
		TitlePattern: `§\s*%s[.\s]+([^.\n]{2,200})[.\n]`,
		NotePatterns: []string{
			`\(Source:\s*([^)]+)\)\s*$`,
			`(?s)History[.:]\s*(.+?)\s*$`,
		},
	},
	"TXADMIN": {
		Code:           "TXADMIN",
		Name:           "Texas Administrative Code",
		TitleOrCode:    "Texas Administrative Code",
		Levels:         []MarkerKind{Letter, Number, UpperLetter, Roman},
		FallbackLevels: []MarkerKind{Number, Letter},
		TitleStrategies: []string{
			StrategyPageTitle, StrategyBodyRegex,
		},
		TitlePattern: `RULE\s+§?\s*%s\s+([^.\n]{2,200})[.\n]`,
		NotePatterns: []string{
			`(?s)Source Note:\s*(.+?)\s*$`,
		},
		DatePattern: `[Ee]ffective\s+([A-Z][a-z]+ \d{1,2}, \d{4})`,
		DateLayout:  "January 2, 2006",
	},
}

// Get returns the registered profile for a jurisdiction code.
func Get(code string) (*Profile, error) {
	p, ok := registry[code]
	if !ok {
		return nil, fmt.Errorf("unknown jurisdiction: %s (available: %v)", code, Codes())
	}
	return p, nil
}

// Register adds or replaces a profile. Call during startup only; the
// registry is not synchronized for concurrent mutation.
func Register(p *Profile) error {
	if err := Validate(p); err != nil {
		return err
	}
	registry[p.Code] = p
	return nil
}

// Codes returns the registered jurisdiction codes, sorted.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
