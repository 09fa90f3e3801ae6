package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/statutree/statutree/internal/logger"
	"github.com/statutree/statutree/internal/output"
	"github.com/statutree/statutree/pkg/profile"
	"github.com/statutree/statutree/pkg/statute"
	"github.com/statutree/statutree/pkg/statutree"
	"github.com/statutree/statutree/pkg/xmlsource"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse one source document into a normalized section",
	Long: `Parse a local text, HTML, or XML file into a section with its
subsection tree, title, and trailing history note.

Text and HTML inputs are segmented with the jurisdiction profile's
numbering conventions. XML inputs (eCFR DIV8/DIV5, NZ PCO prov) carry
their own element nesting and map directly onto the tree.`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("input", "i", "", "input file (.txt, .html, .xml)")
	parseCmd.Flags().StringP("jurisdiction", "j", "", "jurisdiction code (see 'statutree profiles')")
	parseCmd.Flags().String("profile", "", "custom profile file (YAML or JSON), overrides -j")
	parseCmd.Flags().StringP("number", "n", "", "section number in source format")
	parseCmd.Flags().String("source-url", "", "original source URL recorded on the section")
	parseCmd.Flags().String("xml-format", "", "XML input format: cfr-section, cfr-part, nzpco")
	parseCmd.Flags().StringP("format", "f", "json", "output format: json, jsonl, yaml")
	parseCmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	_ = parseCmd.MarkFlagRequired("input")
}

func runParse(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	jurisdiction, _ := cmd.Flags().GetString("jurisdiction")
	profilePath, _ := cmd.Flags().GetString("profile")
	number, _ := cmd.Flags().GetString("number")
	sourceURL, _ := cmd.Flags().GetString("source-url")
	xmlFormat, _ := cmd.Flags().GetString("xml-format")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	data, err := os.ReadFile(inputPath)
	if err != nil {
		logError("reading input: %v", err)
		return err
	}

	var sections []*statute.Section
	if xmlFormat != "" || strings.EqualFold(filepath.Ext(inputPath), ".xml") {
		sections, err = parseXML(data, xmlFormat, jurisdiction, sourceURL)
	} else {
		var section *statute.Section
		section, err = parseText(data, inputPath, jurisdiction, profilePath, number, sourceURL)
		if section != nil {
			sections = []*statute.Section{section}
		}
	}
	if err != nil {
		if errors.Is(err, statute.ErrNotFound) {
			logger.Warn("source page reports the section does not exist", "input", inputPath)
		}
		logError("%v", err)
		return err
	}

	return writeSections(sections, format, outputPath)
}

func parseText(data []byte, inputPath, jurisdiction, profilePath, number, sourceURL string) (*statute.Section, error) {
	var p *profile.Profile
	var err error
	switch {
	case profilePath != "":
		p, err = profile.FromFile(profilePath)
	case jurisdiction != "":
		p, err = profile.Get(jurisdiction)
	default:
		return nil, fmt.Errorf("either --jurisdiction or --profile is required for text input")
	}
	if err != nil {
		return nil, err
	}

	builder, err := statutree.NewBuilder(p)
	if err != nil {
		return nil, err
	}

	in := statutree.Input{SectionNumber: number, SourceURL: sourceURL}
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".html", ".htm":
		in.HTML = string(data)
	default:
		in.Text = string(data)
	}
	return builder.Build(in)
}

func parseXML(data []byte, xmlFormat, jurisdiction, sourceURL string) ([]*statute.Section, error) {
	if xmlFormat == "" {
		xmlFormat = "cfr-section"
	}
	switch xmlFormat {
	case "cfr-section":
		prefix := jurisdiction
		if prefix == "" {
			prefix = "CFR"
		}
		s, err := xmlsource.ParseCFRSection(bytes.NewReader(data), prefix, sourceURL)
		if err != nil {
			return nil, err
		}
		return []*statute.Section{s}, nil
	case "cfr-part":
		prefix := jurisdiction
		if prefix == "" {
			prefix = "CFR"
		}
		return xmlsource.ParseCFRPart(bytes.NewReader(data), prefix, sourceURL)
	case "nzpco":
		prefix := jurisdiction
		if prefix == "" {
			prefix = "NZ"
		}
		s, err := xmlsource.ParseNZProv(bytes.NewReader(data), prefix, "", sourceURL)
		if err != nil {
			return nil, err
		}
		return []*statute.Section{s}, nil
	default:
		return nil, fmt.Errorf("unknown xml format: %s (available: cfr-section, cfr-part, nzpco)", xmlFormat)
	}
}

func writeSections(sections []*statute.Section, format, outputPath string) error {
	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			logError("creating output file: %v", err)
			return err
		}
		defer f.Close()
		out = f
	}

	writer, err := output.NewWriter(out, output.Format(format))
	if err != nil {
		logError("%v", err)
		return err
	}
	for _, s := range sections {
		if err := writer.Write(s); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	logger.Debug("wrote sections", "count", len(sections), "format", format)
	return nil
}
