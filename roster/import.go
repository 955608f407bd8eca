package roster

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/judgeforms/format"
	"github.com/tsawler/judgeforms/xlsx"
)

// Column headers of the assignment and competitor reports.
const (
	ColName     = "Name"
	ColCategory = "Category"
	ColType     = "Type"
	ColOA       = "OA"
	ColGroup    = "Group Name"
	ColDirector = "Director/Participant(s)"
)

// ErrMissingColumns is returned when a report lacks a required column.
var ErrMissingColumns = errors.New("roster: missing required columns")

// table is a header row plus data rows, whatever the source format.
type table struct {
	header map[string]int
	rows   [][]string
}

func newTable(header []string, rows [][]string) *table {
	t := &table{header: make(map[string]int, len(header)), rows: rows}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := t.header[h]; !dup {
			t.header[h] = i
		}
	}
	return t
}

func (t *table) require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := t.header[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

func (t *table) has(col string) bool {
	_, ok := t.header[col]
	return ok
}

func (t *table) cell(row []string, col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// judges maps an assignment report to a normalized roster. Rows outside
// the three known categories are dropped.
func (t *table) judges() ([]Judge, error) {
	if err := t.require(ColName, ColCategory, ColType); err != nil {
		return nil, err
	}
	var out []Judge
	for _, row := range t.rows {
		cat := ParseCategory(t.cell(row, ColCategory))
		if !cat.Known() {
			continue
		}
		out = append(out, Judge{
			Name:     t.cell(row, ColName),
			Category: cat,
			Type:     ParseJudgeType(t.cell(row, ColType)),
			Print:    true,
		})
	}
	return Normalize(out), nil
}

func (t *table) competitors(chorus bool) ([]Competitor, error) {
	if err := t.require(ColOA, ColGroup); err != nil {
		return nil, err
	}
	withDirector := chorus && t.has(ColDirector)
	var out []Competitor
	for _, row := range t.rows {
		c := Competitor{
			Number: t.cell(row, ColOA),
			Name:   t.cell(row, ColGroup),
			Print:  true,
		}
		if withDirector {
			c.Director = t.cell(row, ColDirector)
		}
		out = append(out, c)
	}
	return out, nil
}

func readCSV(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("roster: read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumns)
	}
	return newTable(records[0], records[1:]), nil
}

// ReadJudgesCSV imports an assignment report with Name, Category and Type
// columns, then balances and numbers it.
func ReadJudgesCSV(r io.Reader) ([]Judge, error) {
	t, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	return t.judges()
}

// ReadCompetitorsCSV imports a competitor report with OA and Group Name
// columns. The director column is read only for chorus sessions.
func ReadCompetitorsCSV(r io.Reader, chorus bool) ([]Competitor, error) {
	t, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	return t.competitors(chorus)
}

// ReadJudgesHTML imports the first table of an HTML report.
func ReadJudgesHTML(r io.Reader) ([]Judge, error) {
	t, err := readHTML(r)
	if err != nil {
		return nil, err
	}
	return t.judges()
}

// ReadCompetitorsHTML imports the first table of an HTML report.
func ReadCompetitorsHTML(r io.Reader, chorus bool) ([]Competitor, error) {
	t, err := readHTML(r)
	if err != nil {
		return nil, err
	}
	return t.competitors(chorus)
}

// ReadJudgesXLSX imports the first sheet of a spreadsheet report.
func ReadJudgesXLSX(r io.ReaderAt, size int64) ([]Judge, error) {
	t, err := readXLSX(r, size)
	if err != nil {
		return nil, err
	}
	return t.judges()
}

// ReadCompetitorsXLSX imports the first sheet of a spreadsheet report.
func ReadCompetitorsXLSX(r io.ReaderAt, size int64, chorus bool) ([]Competitor, error) {
	t, err := readXLSX(r, size)
	if err != nil {
		return nil, err
	}
	return t.competitors(chorus)
}

func readXLSX(r io.ReaderAt, size int64) (*table, error) {
	wb, err := xlsx.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	return sheetTable(wb)
}

// sheetTable takes the header from the first non-empty row of the first
// sheet and drops blank rows after it.
func sheetTable(wb *xlsx.Workbook) (*table, error) {
	rows, err := wb.Rows(0)
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	var data [][]string
	for _, row := range rows {
		if len(row) > 0 {
			data = append(data, row)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty sheet", ErrMissingColumns)
	}
	return newTable(data[0], data[1:]), nil
}

// readTableFile reads the report at path. The extension decides the
// format; a file without a recognizable one is sniffed.
func readTableFile(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	head, _ := br.Peek(512)
	switch kind := format.Sniff(path, head); kind {
	case format.CSV:
		return readCSV(br)
	case format.HTML:
		return readHTML(br)
	case format.XLSX, format.ZIP:
		info, err := f.Stat()
		if err != nil {
			return nil, err
		}
		return readXLSX(f, info.Size())
	default:
		return nil, fmt.Errorf("%s: unsupported roster format %s", filepath.Base(path), kind)
	}
}

// ReadJudgesFile imports a judge roster from a CSV, HTML or XLSX report.
func ReadJudgesFile(path string) ([]Judge, error) {
	t, err := readTableFile(path)
	if err != nil {
		return nil, err
	}
	return t.judges()
}

// ReadCompetitorsFile imports a competitor roster the same way as
// ReadJudgesFile.
func ReadCompetitorsFile(path string, chorus bool) ([]Competitor, error) {
	t, err := readTableFile(path)
	if err != nil {
		return nil, err
	}
	return t.competitors(chorus)
}
