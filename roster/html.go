package roster

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// readHTML collects the rows of the first <table> in an HTML export; its
// first row is the header. Unclosed cells and rows are tolerated.
func readHTML(r io.Reader) (*table, error) {
	z := html.NewTokenizer(r)

	var (
		depth    int // table nesting; only depth 1 is read
		done     bool
		inCell   bool
		cell     strings.Builder
		row      []string
		header   []string
		rows     [][]string
		sawTable bool
	)

	endCell := func() {
		if inCell {
			row = append(row, strings.Join(strings.Fields(cell.String()), " "))
			inCell = false
		}
	}
	endRow := func() {
		endCell()
		if len(row) == 0 {
			row = nil
			return
		}
		if header == nil {
			header = row
		} else {
			rows = append(rows, row)
		}
		row = nil
	}

	for !done {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("roster: read html: %w", err)
			}
			done = true

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "table":
				depth++
				sawTable = true
			case "tr":
				if depth == 1 {
					endRow()
					row = []string{}
				}
			case "th", "td":
				if depth == 1 {
					endCell()
					if row == nil {
						row = []string{}
					}
					inCell = true
					cell.Reset()
				}
			case "br":
				if inCell {
					cell.WriteByte(' ')
				}
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "th", "td":
				if depth == 1 {
					endCell()
				}
			case "tr":
				if depth == 1 {
					endRow()
				}
			case "table":
				depth--
				if depth == 0 {
					endRow()
					done = true
				}
			}

		case html.TextToken:
			if inCell && depth == 1 {
				cell.Write(z.Text())
			}
		}
	}

	if !sawTable || header == nil {
		return nil, fmt.Errorf("%w: no table found", ErrMissingColumns)
	}
	return newTable(header, rows), nil
}
