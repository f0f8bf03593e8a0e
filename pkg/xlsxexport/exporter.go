// Package xlsxexport renders slices of structs or maps into an xlsx workbook
// described by a YAML layout.
package xlsxexport

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Formatter converts a cell value before it is written.
type Formatter func(interface{}) interface{}

// Exporter binds data to the sections of a layout and renders the workbook.
type Exporter struct {
	layout     *Layout
	data       map[string]interface{}
	formatters map[string]Formatter
}

// New creates an exporter for layout with the "string" formatter registered.
func New(layout *Layout) *Exporter {
	e := &Exporter{
		layout:     layout,
		data:       make(map[string]interface{}),
		formatters: make(map[string]Formatter),
	}
	e.RegisterFormatter("string", func(v interface{}) interface{} { return fmt.Sprint(v) })
	return e
}

// Bind attaches a slice to the section with the given id.
func (e *Exporter) Bind(sectionID string, data interface{}) *Exporter {
	e.data[sectionID] = data
	return e
}

// RegisterFormatter makes f available to layout columns under name.
func (e *Exporter) RegisterFormatter(name string, f Formatter) *Exporter {
	e.formatters[name] = f
	return e
}

// Build renders every sheet of the layout. The caller closes the file.
func (e *Exporter) Build() (*excelize.File, error) {
	f := excelize.NewFile()
	for i, sheet := range e.layout.Sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			f.Close()
			return nil, err
		}

		row := 1
		for _, sec := range sheet.Sections {
			next, err := e.renderSection(f, sheet.Name, sec, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("sheet %s section %s: %w", sheet.Name, sec.ID, err)
			}
			// blank row between sections
			row = next + 1
		}
	}
	return f, nil
}

// WriteTo renders the workbook into w.
func (e *Exporter) WriteTo(w io.Writer) error {
	f, err := e.Build()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func (e *Exporter) renderSection(f *excelize.File, sheet string, sec SectionLayout, row int) (int, error) {
	if len(sec.Columns) == 0 {
		return row, fmt.Errorf("no columns")
	}
	lastCol, err := excelize.ColumnNumberToName(len(sec.Columns))
	if err != nil {
		return row, err
	}

	for i, col := range sec.Columns {
		if col.Width <= 0 {
			continue
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
			return row, err
		}
	}

	if sec.Title != "" {
		cell := cellName(1, row)
		if err := f.SetCellValue(sheet, cell, sec.Title); err != nil {
			return row, err
		}
		if len(sec.Columns) > 1 {
			if err := f.MergeCell(sheet, cell, cellName(len(sec.Columns), row)); err != nil {
				return row, err
			}
		}
		if err := applyStyle(f, sheet, cell, cell, sec.TitleStyle, ""); err != nil {
			return row, err
		}
		row++
	}

	headerRow := 0
	if sec.ShowHeader {
		headerRow = row
		for i, col := range sec.Columns {
			header := col.Header
			if header == "" {
				header = col.FieldName
			}
			if err := f.SetCellValue(sheet, cellName(i+1, row), header); err != nil {
				return row, err
			}
		}
		if err := applyStyle(f, sheet, cellName(1, row), cellName(len(sec.Columns), row), sec.HeaderStyle, ""); err != nil {
			return row, err
		}
		row++
	}

	items := reflect.Indirect(reflect.ValueOf(e.data[sec.ID]))
	count := 0
	if items.IsValid() && (items.Kind() == reflect.Slice || items.Kind() == reflect.Array) {
		count = items.Len()
	}

	firstDataRow := row
	for i := 0; i < count; i++ {
		item := reflect.Indirect(items.Index(i))
		for j, col := range sec.Columns {
			val := extractValue(item, col.FieldName)
			if fn, ok := e.formatters[col.Formatter]; ok && col.Formatter != "" {
				val = fn(val)
			}
			if err := f.SetCellValue(sheet, cellName(j+1, row), val); err != nil {
				return row, err
			}
		}
		row++
	}

	if count > 0 {
		for j, col := range sec.Columns {
			if col.NumberFormat == "" {
				continue
			}
			if err := applyStyle(f, sheet, cellName(j+1, firstDataRow), cellName(j+1, row-1), nil, col.NumberFormat); err != nil {
				return row, err
			}
		}
	}

	if sec.HasFilter && headerRow > 0 {
		ref := fmt.Sprintf("A%d:%s%d", headerRow, lastCol, row-1)
		if err := f.AutoFilter(sheet, ref, nil); err != nil {
			return row, err
		}
	}
	return row, nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func extractValue(item reflect.Value, field string) interface{} {
	switch item.Kind() {
	case reflect.Struct:
		if f := item.FieldByName(field); f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
	case reflect.Map:
		if v := item.MapIndex(reflect.ValueOf(field)); v.IsValid() {
			return v.Interface()
		}
	}
	return ""
}

func applyStyle(f *excelize.File, sheet, from, to string, tmpl *StyleTemplate, numFmt string) error {
	if tmpl == nil && numFmt == "" {
		return nil
	}
	style := &excelize.Style{}
	if tmpl != nil {
		style.Font = &excelize.Font{
			Bold:  tmpl.Bold,
			Color: strings.TrimPrefix(tmpl.FontColor, "#"),
		}
		if tmpl.FillColor != "" {
			style.Fill = excelize.Fill{
				Type:    "pattern",
				Color:   []string{strings.TrimPrefix(tmpl.FillColor, "#")},
				Pattern: 1,
			}
		}
		if tmpl.Align != "" {
			style.Alignment = &excelize.Alignment{Horizontal: tmpl.Align}
		}
	}
	if numFmt != "" {
		style.CustomNumFmt = &numFmt
	}

	id, err := f.NewStyle(style)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, id)
}
