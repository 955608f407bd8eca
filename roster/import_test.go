package roster

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const judgesCSV = ` Name ,Category,Type,Panel
"Smith, Jane",mus,official,A
Bob Jones,PER,Official,A
Carl Ng,SNG,Practice,A
Dee Admin,ADM,Official,A
`

func TestReadJudgesCSV(t *testing.T) {
	judges, err := ReadJudgesCSV(strings.NewReader(judgesCSV))
	require.NoError(t, err)

	type row struct {
		Number int
		Name   string
		Print  bool
	}
	var got []row
	for _, j := range judges {
		got = append(got, row{j.Number, j.Name, j.Print})
	}
	want := []row{
		{1, "Smith, Jane", true},
		{2, "Bob Jones", true},
		{3, "Absent SNG Judge", false},
		{50, "Carl Ng", true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("judges mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJudgesCSVMissingColumns(t *testing.T) {
	_, err := ReadJudgesCSV(strings.NewReader("Name,Category\nA,MUS\n"))
	require.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "Type")

	_, err = ReadJudgesCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumns)
}

const competitorsCSV = "\ufeffOA,Group Name,Director/Participant(s)\n1,Harmony Four,\n2.0,The Chords,Pat Lee\n"

func TestReadCompetitorsCSV(t *testing.T) {
	chorus, err := ReadCompetitorsCSV(strings.NewReader(competitorsCSV), true)
	require.NoError(t, err)
	want := []Competitor{
		{Number: "1", Name: "Harmony Four", Print: true},
		{Number: "2.0", Name: "The Chords", Director: "Pat Lee", Print: true},
	}
	assert.Equal(t, want, chorus)

	quartet, err := ReadCompetitorsCSV(strings.NewReader(competitorsCSV), false)
	require.NoError(t, err)
	assert.Empty(t, quartet[1].Director, "director is only read for chorus sessions")
}

func TestReadCompetitorsCSVMissingColumns(t *testing.T) {
	_, err := ReadCompetitorsCSV(strings.NewReader("OA,Name\n1,x\n"), false)
	assert.ErrorIs(t, err, ErrMissingColumns)
}

const judgesHTML = `<html><body>
<h1>Assignments</h1>
<table class="report">
  <thead><tr><th>Name</th><th>Category</th><th>Type</th></tr></thead>
  <tbody>
    <tr><td>Jane&nbsp;Smith</td><td>MUS</td><td>Official</td></tr>
    <tr><td>Bob <b>Jones</b></td><td>mus</td><td>Official
    <tr><td>Cy Clark<td>PER<td>Practice</tr>
  </tbody>
</table>
<table><tr><th>Other</th></tr></table>
</body></html>`

func TestReadJudgesHTML(t *testing.T) {
	judges, err := ReadJudgesHTML(strings.NewReader(judgesHTML))
	require.NoError(t, err)

	var names []string
	for _, j := range ActiveJudges(judges) {
		names = append(names, j.Name)
	}
	assert.Equal(t, []string{"Bob Jones", "Jane Smith", "Cy Clark"}, names)
	assert.Len(t, judges, 7, "PER and SNG are padded to two officials")
}

func TestReadCompetitorsHTML(t *testing.T) {
	doc := `<table><tr><th>OA</th><th>Group Name</th><th>Director/Participant(s)</th></tr>
<tr><td>1</td><td>Men of Note</td><td>Ann<br>Bee</td></tr></table>`
	comps, err := ReadCompetitorsHTML(strings.NewReader(doc), true)
	require.NoError(t, err)
	assert.Equal(t, []Competitor{{Number: "1", Name: "Men of Note", Director: "Ann Bee", Print: true}}, comps)
}

func TestReadHTMLSkipsEmptyRows(t *testing.T) {
	doc := `<table><tr></tr><tr><th>OA</th><th>Group Name</th></tr>
<tr></tr><tr><td>2</td><td>Quad</td></tr></table>`
	comps, err := ReadCompetitorsHTML(strings.NewReader(doc), false)
	require.NoError(t, err)
	assert.Equal(t, []Competitor{{Number: "2", Name: "Quad", Print: true}}, comps)
}

func TestReadHTMLWithoutTable(t *testing.T) {
	_, err := ReadJudgesHTML(strings.NewReader("<p>nothing here</p>"))
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "judges.csv")
	htmlPath := filepath.Join(dir, "competitors.HTML")
	require.NoError(t, os.WriteFile(csvPath, []byte(judgesCSV), 0o600))
	require.NoError(t, os.WriteFile(htmlPath, []byte(`<table><tr><th>OA</th><th>Group Name</th></tr><tr><td>4</td><td>Quad</td></tr></table>`), 0o600))

	judges, err := ReadJudgesFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, judges, 4)

	comps, err := ReadCompetitorsFile(htmlPath, false)
	require.NoError(t, err)
	assert.Equal(t, "Quad", comps[0].Name)

	_, err = ReadJudgesFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestReadFilesSniffsContent(t *testing.T) {
	dir := t.TempDir()
	noExt := filepath.Join(dir, "export")
	require.NoError(t, os.WriteFile(noExt, []byte("<html><table><tr><th>OA</th><th>Group Name</th></tr><tr><td>2</td><td>Chord Four</td></tr></table></html>"), 0o600))

	comps, err := ReadCompetitorsFile(noExt, false)
	require.NoError(t, err)
	assert.Equal(t, "Chord Four", comps[0].Name)

	pdfPath := filepath.Join(dir, "judges.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.7\n"), 0o600))
	_, err = ReadJudgesFile(pdfPath)
	assert.ErrorContains(t, err, "unsupported roster format PDF")
}

// sheet builds a one-sheet workbook from rows of inline strings.
func sheet(t *testing.T, rows ...[]string) []byte {
	t.Helper()
	var body strings.Builder
	for r, row := range rows {
		fmt.Fprintf(&body, `<row r="%d">`, r+2)
		for _, v := range row {
			fmt.Fprintf(&body, `<c t="inlineStr"><is><t>%s</t></is></c>`, v)
		}
		body.WriteString(`</row>`)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := map[string]string{
		"xl/workbook.xml":            `<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets><sheet name="Report" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Target="worksheets/sheet1.xml"/></Relationships>`,
		"xl/worksheets/sheet1.xml":   `<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>` + body.String() + `</sheetData></worksheet>`,
	}
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	data := sheet(t,
		[]string{"Name", "Category", "Type"},
		[]string{"Jane Smith", "MUS", "Official"},
		[]string{},
		[]string{"Bob Jones", "PER", "Official"},
	)
	judges, err := ReadJudgesXLSX(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var names []string
	for _, j := range judges {
		names = append(names, j.Name)
	}
	assert.Equal(t, []string{"Jane Smith", "Bob Jones", "Absent SNG Judge"}, names)

	data = sheet(t,
		[]string{"OA", "Group Name", "Director/Participant(s)"},
		[]string{"3", "Harmony Heights", "Pat Lee"},
	)
	comps, err := ReadCompetitorsXLSX(bytes.NewReader(data), int64(len(data)), true)
	require.NoError(t, err)
	assert.Equal(t, []Competitor{{Number: "3", Name: "Harmony Heights", Director: "Pat Lee", Print: true}}, comps)

	data = sheet(t, []string{"OA"})
	_, err = ReadCompetitorsXLSX(bytes.NewReader(data), int64(len(data)), false)
	assert.ErrorIs(t, err, ErrMissingColumns)

	data = sheet(t)
	_, err = ReadJudgesXLSX(bytes.NewReader(data), int64(len(data)))
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestReadXLSXFile(t *testing.T) {
	dir := t.TempDir()
	data := sheet(t, []string{"OA", "Group Name"}, []string{"1", "Quad"})
	for _, name := range []string{"competitors.xlsx", "export"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o600))
		comps, err := ReadCompetitorsFile(path, false)
		require.NoError(t, err, name)
		assert.Equal(t, "Quad", comps[0].Name, name)
	}
}
