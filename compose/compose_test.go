package compose

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/judgeforms/contentstream"
	"github.com/tsawler/judgeforms/core"
	"github.com/tsawler/judgeforms/font"
	"github.com/tsawler/judgeforms/internal/graphicsstate"
	"github.com/tsawler/judgeforms/model"
	"github.com/tsawler/judgeforms/overlay"
	"github.com/tsawler/judgeforms/reader"
	"github.com/tsawler/judgeforms/roster"
	"github.com/tsawler/judgeforms/writer"
)

var ctx = roster.Context{District: "Example", Session: "Quartet Semi-Finals", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}

var judge = roster.Judge{Number: 1, Name: "Jane Smith", Category: roster.Musicality, Type: roster.Official, Print: true}

func competitors(n int) []roster.Competitor {
	out := make([]roster.Competitor, n)
	for i := range out {
		out[i] = roster.Competitor{Number: string(rune('1' + i)), Name: "Quartet " + string(rune('A'+i)), Print: true}
	}
	return out
}

// makeTemplate builds a form with its own F1 font so overlay fonts have to
// pick other names.
func makeTemplate(t *testing.T, pages int) *Template {
	t.Helper()
	doc := writer.New()
	for i := 0; i < pages; i++ {
		p := doc.NewPage(612, 792)
		p.ResourceCategory("Font")["F1"] = doc.Add(core.Dict{"Type": core.Name("Font"), "Subtype": core.Name("Type1"), "BaseFont": core.Name("Times-Roman")})
		require.NoError(t, p.AppendContent([]byte("BT /F1 24 Tf 72 600 Td (Score Sheet) Tj ET 2 w")))
	}
	data, err := doc.Bytes()
	require.NoError(t, err)
	tpl, err := ParseTemplate("MUS_Long.pdf", data)
	require.NoError(t, err)
	return tpl
}

// pageOps parses the concatenated content of page i of a finished document.
func pageOps(t *testing.T, doc *writer.Document, i int) ([]contentstream.Operation, core.Dict, []float64) {
	t.Helper()
	data, err := doc.Bytes()
	require.NoError(t, err)
	r, err := reader.NewReader(data)
	require.NoError(t, err)
	page, err := r.GetPage(i)
	require.NoError(t, err)

	streams, err := page.Contents()
	require.NoError(t, err)
	var content []byte
	for _, s := range streams {
		b, err := s.Decode()
		require.NoError(t, err)
		content = append(append(content, b...), '\n')
	}
	ops, err := contentstream.Parse(content)
	require.NoError(t, err)

	res, err := page.Resources()
	require.NoError(t, err)
	fonts, err := r.Resolve(res.Get("Font"))
	require.NoError(t, err)

	box, err := page.MediaBox()
	require.NoError(t, err)
	return ops, fonts.(core.Dict), box
}

func count(ops []contentstream.Operation, operator string) int {
	n := 0
	for _, op := range ops {
		if op.Operator == operator {
			n++
		}
	}
	return n
}

func matrices(ops []contentstream.Operation) []model.Matrix {
	var out []model.Matrix
	for _, op := range ops {
		if op.Operator != "cm" {
			continue
		}
		var m model.Matrix
		for i, v := range op.Operands {
			m[i], _ = core.Number(v)
		}
		out = append(out, m)
	}
	return out
}

func assertMatrix(t *testing.T, want, got model.Matrix) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "matrix element %d", i)
	}
}

func TestScaleToMargin(t *testing.T) {
	m := ScaleToMargin(612, 792, 0.25)
	s := 576.0 / 612.0
	assertMatrix(t, model.Matrix{s, 0, 0, s, 18, (792 - 792*s) / 2}, m)

	assert.True(t, ScaleToMargin(612, 792, 0).IsIdentity())
}

func TestOverlayStaysInsideMargin(t *testing.T) {
	for _, short := range []bool{false, true} {
		layer := overlay.Build(overlay.Pairing{Judge: judge, Competitor: competitors(1)[0], Context: ctx}, short)
		box := ScaleToMargin(612, 792, DefaultMarginInches).ApplyRect(layer.Bounds())
		safe := model.XYWH(0, 0, 612, 792).Inset(18)
		assert.True(t, safe.Contains(box), "short=%v: %+v outside %+v", short, box, safe)
	}
}

func TestRotated180(t *testing.T) {
	m := Rotated180(612, 792)
	assert.Equal(t, model.Point{X: 612, Y: 792}, m.Apply(model.Point{}))
	assert.Equal(t, model.Point{X: 562, Y: 27}, m.Apply(model.Point{X: 50, Y: 765}))
}

func TestPackLong(t *testing.T) {
	tpl := makeTemplate(t, 2)
	doc := writer.New()
	c := New(DefaultMarginInches)

	n, err := c.PackLong(doc, tpl, judge, competitors(1)[0], ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, doc.PageCount())

	ops, fonts, box := pageOps(t, doc, 0)
	assert.Equal(t, []float64{0, 0, 612, 792}, box)
	assert.Equal(t, 4, count(ops, "Tj"), "template line plus three overlay lines")
	assert.Equal(t, count(ops, "q"), count(ops, "Q"))
	require.Len(t, matrices(ops), 1)
	assertMatrix(t, c.Transform(0), matrices(ops)[0])

	assert.ElementsMatch(t, []string{"F1", "F2", "F3"}, fonts.Keys())

	ops, fonts, _ = pageOps(t, doc, 1)
	assert.Equal(t, 1, count(ops, "Tj"), "only the first page is labelled")
	assert.Equal(t, []string{"F1"}, fonts.Keys())
}

func TestPackShort(t *testing.T) {
	tpl := makeTemplate(t, 1)
	doc := writer.New()
	c := New(DefaultMarginInches)

	n, err := c.PackShort(doc, tpl, judge, competitors(3), ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, doc.PageCount())

	ops, fonts, _ := pageOps(t, doc, 0)
	require.Len(t, matrices(ops), 2)
	assertMatrix(t, c.Transform(0), matrices(ops)[0])
	assertMatrix(t, c.Transform(1), matrices(ops)[1])
	assert.Equal(t, 1+2*4, count(ops, "Tj"))
	assert.Len(t, fonts, 3, "both slots share the overlay fonts")
	assert.Equal(t, count(ops, "q"), count(ops, "Q"))

	ops, _, _ = pageOps(t, doc, 1)
	require.Len(t, matrices(ops), 1, "odd competitor leaves the second slot empty")
	assert.Equal(t, 1+4, count(ops, "Tj"))
}

func TestPackShortPageCount(t *testing.T) {
	tpl := makeTemplate(t, 1)
	for n := 0; n <= 5; n++ {
		doc := writer.New()
		got, err := New(DefaultMarginInches).PackShort(doc, tpl, judge, competitors(n), ctx)
		require.NoError(t, err)
		assert.Equal(t, int(math.Ceil(float64(n)/2)), got, "%d competitors", n)
	}
}

func TestSecondSlotIsHalfTurnOfFirst(t *testing.T) {
	c := New(DefaultMarginInches)
	p := model.Point{X: 100, Y: 700}
	a := c.Transform(0).Apply(p)
	b := c.Transform(1).Apply(p)
	assert.InDelta(t, 612-a.X, b.X, 1e-9)
	assert.InDelta(t, 792-a.Y, b.Y, 1e-9)
}

// pageFonts looks up the Standard 14 metrics of the page's font resources.
func pageFonts(fonts core.Dict, r *reader.Reader) graphicsstate.FontFunc {
	return func(name string) *font.Font {
		obj, _ := r.Resolve(fonts.Get(name))
		dict, _ := obj.(core.Dict)
		base, _ := dict.GetName("BaseFont")
		f, err := font.Standard(string(base))
		if err != nil {
			return nil
		}
		return f
	}
}

func TestTracedShortPage(t *testing.T) {
	tpl := makeTemplate(t, 1)
	doc := writer.New()
	_, err := New(DefaultMarginInches).PackShort(doc, tpl, judge, competitors(2), ctx)
	require.NoError(t, err)

	data, err := doc.Bytes()
	require.NoError(t, err)
	r, err := reader.NewReader(data)
	require.NoError(t, err)
	ops, fonts, _ := pageOps(t, doc, 0)

	runs, err := graphicsstate.Trace(ops, pageFonts(fonts, r))
	require.NoError(t, err)
	require.Len(t, runs, 1+2*4)
	assert.Equal(t, "Score Sheet", string(runs[0].Text))

	safe := model.XYWH(0, 0, 612, 792).Inset(18)
	first, second := runs[1:5], runs[5:9]
	for _, run := range append(first, second...) {
		assert.True(t, safe.Contains(run.Box), "%q at %+v outside the margin", run.Text, run.Box)
	}
	for i := range first {
		if string(first[i].Text) != string(second[i].Text) {
			continue // competitor lines differ between the slots
		}
		assert.InDelta(t, 612-first[i].Origin.X, second[i].Origin.X, 1e-6, "%q", first[i].Text)
		assert.InDelta(t, 792-first[i].Origin.Y, second[i].Origin.Y, 1e-6, "%q", first[i].Text)
		assert.InDelta(t, first[i].Box.Width(), second[i].Box.Width(), 1e-6)
	}
	assert.Greater(t, first[0].Origin.Y, 396.0, "first slot sits in the top half")
	assert.Less(t, second[0].Origin.Y, 396.0, "second slot sits in the bottom half")
}

func TestTemplateErrors(t *testing.T) {
	_, err := ParseTemplate("bad.pdf", []byte("not a pdf"))
	assert.Error(t, err)

	_, err = OpenTemplate("does/not/exist.pdf")
	assert.Error(t, err)

	tpl := makeTemplate(t, 1)
	_, err = tpl.ImportPage(writer.New(), 3)
	assert.Error(t, err)
}

func TestTemplateInfo(t *testing.T) {
	tpl := makeTemplate(t, 2)
	assert.Equal(t, 2, tpl.PageCount())
	assert.Equal(t, "1.7", tpl.Version())
	assert.False(t, tpl.Repaired())
}
