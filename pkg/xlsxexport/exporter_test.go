package xlsxexport

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type row struct {
	ID     uuid.UUID
	Name   string
	Title  string
	Age    int
	Salary int
	Email  string
}

func render(t *testing.T, e *Exporter) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, e.WriteTo(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func TestDefaultLayout(t *testing.T) {
	layout, err := LoadLayout("")
	require.NoError(t, err)
	require.Len(t, layout.Sheets, 1)
	assert.Equal(t, "Employees", layout.Sheets[0].Name)

	id := uuid.MustParse("0f6c3c6e-9a53-4c5e-8d5e-1b2f8d0e6a02")
	rows := []row{
		{ID: id, Name: "Jane Smith", Title: "Senior Developer", Age: 35, Salary: 120000, Email: "jane@example.com"},
		{ID: uuid.New(), Name: "John Doe", Title: "Developer", Age: 30, Salary: 100000, Email: "john@example.com"},
	}
	f := render(t, New(layout).Bind("employees", rows))

	assert.Equal(t, "Employee Directory", cell(t, f, "Employees", "A1"))
	assert.Equal(t, "ID", cell(t, f, "Employees", "A2"))
	assert.Equal(t, "Salary", cell(t, f, "Employees", "E2"))
	assert.Equal(t, id.String(), cell(t, f, "Employees", "A3"))
	assert.Equal(t, "Jane Smith", cell(t, f, "Employees", "B3"))
	assert.Equal(t, "120000", cell(t, f, "Employees", "E3"))
	assert.Equal(t, "john@example.com", cell(t, f, "Employees", "F4"))
	assert.Empty(t, cell(t, f, "Employees", "A5"))
}

func TestEmptyDataStillRendersHeader(t *testing.T) {
	layout, err := LoadLayout("")
	require.NoError(t, err)

	f := render(t, New(layout).Bind("employees", []row{}))
	assert.Equal(t, "Name", cell(t, f, "Employees", "B2"))
	assert.Empty(t, cell(t, f, "Employees", "A3"))
}

func TestCustomLayoutWithMapsAndFormatter(t *testing.T) {
	raw := `
sheets:
  - name: Summary
    sections:
      - id: people
        show_header: true
        columns:
          - field_name: name
            header: Who
            formatter: upper
          - field_name: missing
`
	layout, err := ParseLayout([]byte(raw))
	require.NoError(t, err)

	data := []map[string]interface{}{{"name": "ann"}}
	e := New(layout).
		RegisterFormatter("upper", func(v interface{}) interface{} { return strings.ToUpper(v.(string)) }).
		Bind("people", data)
	f := render(t, e)

	assert.Equal(t, "Who", cell(t, f, "Summary", "A1"))
	assert.Equal(t, "missing", cell(t, f, "Summary", "B1"))
	assert.Equal(t, "ANN", cell(t, f, "Summary", "A2"))
	assert.Empty(t, cell(t, f, "Summary", "B2"))
}

func TestLoadLayoutFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sheets:\n  - name: Custom\n    sections: []\n"), 0o600))

	layout, err := LoadLayout(path)
	require.NoError(t, err)
	assert.Equal(t, "Custom", layout.Sheets[0].Name)

	_, err = LoadLayout(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParseLayoutErrors(t *testing.T) {
	_, err := ParseLayout(nil)
	assert.Error(t, err)

	_, err = ParseLayout([]byte("sheets: ["))
	assert.Error(t, err)

	_, err = ParseLayout([]byte("sheets: []"))
	assert.EqualError(t, err, "layout has no sheets")

	_, err = ParseLayout([]byte("sheets:\n  - sections: []\n"))
	assert.Error(t, err)
}

func TestSectionWithoutColumnsFails(t *testing.T) {
	layout, err := ParseLayout([]byte("sheets:\n  - name: S\n    sections:\n      - id: x\n"))
	require.NoError(t, err)

	_, err = New(layout).Build()
	assert.Error(t, err)
}
