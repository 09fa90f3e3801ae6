package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// FromFile loads a profile from a JSON or YAML file.
func FromFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FromJSON(data)
	case ".yaml", ".yml":
		return FromYAML(data)
	default:
		return nil, fmt.Errorf("unsupported profile file format: %s", filepath.Ext(path))
	}
}

// FromYAML parses and validates a profile from YAML bytes.
func FromYAML(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML profile: %w", err)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FromJSON parses and validates a profile from JSON bytes.
func FromJSON(data []byte) (*Profile, error) {
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse JSON profile: %w", err)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks structural constraints plus everything the struct
// tags cannot express: marker kinds must be registered, regex fields
// must compile, and a declared date pattern needs a layout.
func Validate(p *Profile) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	for _, k := range p.Levels {
		if !Known(k) {
			return fmt.Errorf("invalid profile: unknown marker kind %q", k)
		}
	}
	for _, k := range p.FallbackLevels {
		if !Known(k) {
			return fmt.Errorf("invalid profile: unknown fallback marker kind %q", k)
		}
	}

	for i, pat := range p.NotePatterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return fmt.Errorf("invalid profile: note pattern %d: %w", i, err)
		}
		if re.NumSubexp() < 1 {
			return fmt.Errorf("invalid profile: note pattern %d has no capture group", i)
		}
	}

	if p.TitlePattern != "" {
		// The %s placeholder is substituted before compiling for real;
		// validate with a representative number in its place.
		probe := strings.ReplaceAll(p.TitlePattern, "%s", regexp.QuoteMeta("1-1"))
		if _, err := regexp.Compile(probe); err != nil {
			return fmt.Errorf("invalid profile: title pattern: %w", err)
		}
	}

	if p.DatePattern != "" {
		if _, err := regexp.Compile(p.DatePattern); err != nil {
			return fmt.Errorf("invalid profile: date pattern: %w", err)
		}
		if p.DateLayout == "" {
			return fmt.Errorf("invalid profile: date pattern declared without date layout")
		}
	}

	return nil
}
