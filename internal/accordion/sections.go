package accordion

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"gopkg.in/yaml.v3"
)

// Body formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// SectionConfig declares one accordion section.
//
//	sections:
//	  - title: Install
//	    open: true
//	    body: |
//	      go install ./cmd/accordion
type SectionConfig struct {
	Title    string `yaml:"title"`
	Body     string `yaml:"body"`
	Format   string `yaml:"format"` // text (default) or markdown
	Open     bool   `yaml:"open"`
	Disabled bool   `yaml:"disabled"`
}

// Render returns the body's display lines, rendering markdown bodies for
// the given wrap width.
func (s SectionConfig) Render(width int) ([]string, error) {
	if s.Format != FormatMarkdown {
		return s.Lines(), nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(s.Body)
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", s.Title, err)
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// Lines splits the body into display lines, dropping a trailing newline.
func (s SectionConfig) Lines() []string {
	body := strings.TrimRight(s.Body, "\n")
	if body == "" {
		return nil
	}
	return strings.Split(body, "\n")
}

// ParseSections decodes a YAML section list.
func ParseSections(data []byte) ([]SectionConfig, error) {
	var doc struct {
		Sections []SectionConfig `yaml:"sections"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(doc.Sections) == 0 {
		return nil, errors.New("no sections")
	}
	for i, s := range doc.Sections {
		if strings.TrimSpace(s.Title) == "" {
			return nil, fmt.Errorf("section %d: title is required", i)
		}
		switch s.Format {
		case "", FormatText, FormatMarkdown:
		default:
			return nil, fmt.Errorf("section %q: format %q: want text or markdown", s.Title, s.Format)
		}
	}
	return doc.Sections, nil
}

// LoadSections reads a YAML section list from path.
func LoadSections(path string) ([]SectionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sections, err := ParseSections(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sections, nil
}

// DefaultSections is shown when no section file is given.
func DefaultSections() []SectionConfig {
	return []SectionConfig{
		{
			Title: "What is this?",
			Open:  true,
			Body: "Each section is a collapsible region.\n" +
				"Closing one plays its collapse animation\n" +
				"before the body is removed.",
		},
		{
			Title:  "Measuring",
			Format: FormatMarkdown,
			Body: "Content is measured with animations **pinned off**, so the " +
				"spring knows the natural height before it starts.\n\n" +
				"- `--collapsible-content-height`\n" +
				"- `--collapsible-content-width`\n",
		},
		{
			Title: "Interrupting",
			Body: "Toggle a section while it is closing\n" +
				"and it reopens from where it was.",
		},
		{
			Title:    "Disabled",
			Disabled: true,
			Body:     "This section ignores toggles.",
		},
	}
}
