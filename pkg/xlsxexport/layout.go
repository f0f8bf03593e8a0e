package xlsxexport

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_layout.yaml
var defaultLayout []byte

// Layout is the YAML description of a workbook.
type Layout struct {
	Sheets []SheetLayout `yaml:"sheets"`
}

// SheetLayout describes one sheet and the sections stacked on it.
type SheetLayout struct {
	Name     string          `yaml:"name"`
	Sections []SectionLayout `yaml:"sections"`
}

// SectionLayout is a title row, an optional header row and one row per bound item.
type SectionLayout struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	ShowHeader  bool           `yaml:"show_header"`
	HasFilter   bool           `yaml:"has_filter"`
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	Columns     []Column       `yaml:"columns"`
}

// Column maps a struct field or map key to a spreadsheet column.
type Column struct {
	FieldName    string  `yaml:"field_name"`
	Header       string  `yaml:"header"`
	Width        float64 `yaml:"width"`
	Formatter    string  `yaml:"formatter"`     // name of a registered formatter
	NumberFormat string  `yaml:"number_format"` // excel custom number format, e.g. "$#,##0"
}

// StyleTemplate is the subset of excelize styling a layout can ask for.
type StyleTemplate struct {
	Bold      bool   `yaml:"bold"`
	FontColor string `yaml:"font_color"`
	FillColor string `yaml:"fill_color"`
	Align     string `yaml:"align"`
}

// ParseLayout decodes a YAML layout.
func ParseLayout(raw []byte) (*Layout, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("layout is empty")
	}
	var l Layout
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if len(l.Sheets) == 0 {
		return nil, fmt.Errorf("layout has no sheets")
	}
	for _, s := range l.Sheets {
		if s.Name == "" {
			return nil, fmt.Errorf("layout sheet without a name")
		}
	}
	return &l, nil
}

// LoadLayout reads the layout at path, or the built-in employee layout when
// path is empty.
func LoadLayout(path string) (*Layout, error) {
	if path == "" {
		return ParseLayout(defaultLayout)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	return ParseLayout(raw)
}
