package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

// ErrNoSheets is returned for a workbook without a readable worksheet.
var ErrNoSheets = errors.New("xlsx: workbook has no worksheets")

// Workbook is an open spreadsheet.
type Workbook struct {
	closer  io.Closer
	files   map[string]*zip.File
	sheets  []sheetRef
	strings []string
}

type sheetRef struct {
	name string
	part string
}

// Open opens the workbook at filename.
func Open(filename string) (*Workbook, error) {
	rc, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	wb, err := newWorkbook(&rc.Reader)
	if err != nil {
		rc.Close()
		return nil, err
	}
	wb.closer = rc
	return wb, nil
}

// NewReader reads a workbook of the given size from r.
func NewReader(r io.ReaderAt, size int64) (*Workbook, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	return newWorkbook(zr)
}

func newWorkbook(zr *zip.Reader) (*Workbook, error) {
	wb := &Workbook{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		wb.files[strings.TrimPrefix(f.Name, "/")] = f
	}

	var book workbookXML
	if err := wb.decode("xl/workbook.xml", &book); err != nil {
		return nil, fmt.Errorf("xlsx: workbook: %w", err)
	}

	targets := map[string]string{}
	var rels relationshipsXML
	if err := wb.decode("xl/_rels/workbook.xml.rels", &rels); err == nil {
		for _, rel := range rels.Relationship {
			targets[rel.ID] = rel.Target
		}
	}
	for i, s := range book.Sheets.Sheet {
		target := targets[s.RID]
		if target == "" {
			target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		}
		// targets are relative to xl/ unless absolute
		if strings.HasPrefix(target, "/") {
			target = strings.TrimPrefix(target, "/")
		} else {
			target = path.Join("xl", target)
		}
		if _, ok := wb.files[target]; ok {
			wb.sheets = append(wb.sheets, sheetRef{name: s.Name, part: target})
		}
	}
	if len(wb.sheets) == 0 {
		return nil, ErrNoSheets
	}

	// the shared string table is optional
	var sst sharedStringsXML
	if err := wb.decode("xl/sharedStrings.xml", &sst); err == nil {
		wb.strings = make([]string, len(sst.SI))
		for i, si := range sst.SI {
			wb.strings[i] = joinRuns(si.T, si.R)
		}
	}
	return wb, nil
}

// Close releases the file opened by Open.
func (wb *Workbook) Close() error {
	if wb.closer == nil {
		return nil
	}
	err := wb.closer.Close()
	wb.closer = nil
	return err
}

// SheetNames returns the names of the readable sheets in workbook order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, len(wb.sheets))
	for i, s := range wb.sheets {
		names[i] = s.name
	}
	return names
}

// Rows returns the cell text of sheet index. Rows are dense: missing cells
// read as "" and rows keep their sheet position, trailing empty cells are
// dropped.
func (wb *Workbook) Rows(index int) ([][]string, error) {
	if index < 0 || index >= len(wb.sheets) {
		return nil, fmt.Errorf("xlsx: sheet %d out of range [0,%d)", index, len(wb.sheets))
	}
	var ws worksheetXML
	if err := wb.decode(wb.sheets[index].part, &ws); err != nil {
		return nil, fmt.Errorf("xlsx: sheet %q: %w", wb.sheets[index].name, err)
	}

	var rows [][]string
	next := 0
	for _, row := range ws.SheetData.Rows {
		r := next
		if row.R > 0 {
			r = row.R - 1
		}
		for len(rows) <= r {
			rows = append(rows, nil)
		}
		next = r + 1

		col := 0
		for _, c := range row.Cells {
			if c.R != "" {
				if cc, _, err := ParseCellRef(c.R); err == nil {
					col = cc
				}
			}
			v := wb.value(c)
			if v != "" {
				for len(rows[r]) <= col {
					rows[r] = append(rows[r], "")
				}
				rows[r][col] = v
			}
			col++
		}
	}
	return rows, nil
}

func (wb *Workbook) value(c cellXML) string {
	switch c.T {
	case "s":
		i, err := strconv.Atoi(strings.TrimSpace(c.V))
		if err != nil || i < 0 || i >= len(wb.strings) {
			return ""
		}
		return wb.strings[i]
	case "inlineStr":
		if c.Is == nil {
			return ""
		}
		return joinRuns(c.Is.T, c.Is.R)
	case "b":
		if c.V == "1" {
			return "TRUE"
		}
		return "FALSE"
	default:
		return c.V
	}
}

func (wb *Workbook) decode(name string, v any) error {
	f, ok := wb.files[name]
	if !ok {
		return fmt.Errorf("missing part %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

// joinRuns returns plain text, or the concatenated runs of rich text.
func joinRuns(t string, runs []runXML) string {
	if len(runs) == 0 {
		return t
	}
	var b strings.Builder
	b.WriteString(t)
	for _, r := range runs {
		b.WriteString(r.T)
	}
	return b.String()
}
