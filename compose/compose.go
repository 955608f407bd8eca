package compose

import (
	"bytes"
	"fmt"

	"github.com/tsawler/judgeforms/contentstream"
	"github.com/tsawler/judgeforms/font"
	"github.com/tsawler/judgeforms/model"
	"github.com/tsawler/judgeforms/overlay"
	"github.com/tsawler/judgeforms/roster"
	"github.com/tsawler/judgeforms/writer"
)

// DefaultMarginInches keeps overlay text clear of the printer's dead zone.
const DefaultMarginInches = 0.25

// ScaleToMargin returns the transform that shrinks a width x height page
// uniformly so it fits inside a margin of marginInches on every side, and
// centers it.
func ScaleToMargin(width, height, marginInches float64) model.Matrix {
	m := marginInches * model.PointsPerInch
	s := min((width-2*m)/width, (height-2*m)/height)
	return model.Scale(s, s).Then(model.Translate((width-width*s)/2, (height-height*s)/2))
}

// Rotated180 maps (x, y) to (width - x, height - y): a half turn that lands
// the bottom half of the page on the top half.
func Rotated180(width, height float64) model.Matrix {
	return model.QuarterTurns(2).Then(model.Translate(width, height))
}

// Merge draws layer over page through the transform m. The page's own
// content is isolated in q/Q so state it leaves behind cannot leak into
// the overlay, and the layer's fonts are registered under names the page
// does not already use.
func Merge(page *writer.Page, layer *overlay.Layer, m model.Matrix) error {
	doc := page.Document()
	names := make(map[*font.Font]string)
	for _, f := range layer.Fonts() {
		names[f] = page.AddResource("Font", "F", doc.AddFont(f))
	}

	var buf bytes.Buffer
	buf.WriteString("Q\n")
	buf.Write(contentstream.Encode([]contentstream.Operation{
		contentstream.Op("q"),
		contentstream.Op("cm", contentstream.Nums(m[:]...)...),
	}))
	buf.Write(contentstream.Encode(layer.Operations(names)))
	buf.WriteString("Q\n")

	if err := page.WrapContents([]byte("q\n"), buf.Bytes()); err != nil {
		return fmt.Errorf("merge overlay: %w", err)
	}
	return nil
}

// Composer places overlays on template pages.
type Composer struct {
	MarginInches float64
}

// New returns a Composer that keeps overlays marginInches from the edges.
func New(marginInches float64) *Composer {
	return &Composer{MarginInches: marginInches}
}

func (c *Composer) margin() model.Matrix {
	return ScaleToMargin(model.LetterWidth, model.LetterHeight, c.MarginInches)
}

// PackLong appends a copy of every template page for one pairing. Only the
// first page is labelled. It returns the number of pages added.
func (c *Composer) PackLong(doc *writer.Document, tpl *Template, judge roster.Judge, comp roster.Competitor, ctx roster.Context) (int, error) {
	layer := overlay.Build(overlay.Pairing{Judge: judge, Competitor: comp, Context: ctx}, false)
	for i := 0; i < tpl.PageCount(); i++ {
		page, err := tpl.ImportPage(doc, i)
		if err != nil {
			return i, err
		}
		if i == 0 {
			if err := Merge(page, layer, c.margin()); err != nil {
				return i, err
			}
		}
	}
	return tpl.PageCount(), nil
}

// PackShort prints the short form two competitors to a page. The second
// slot is turned a half turn so it reads upright from the bottom edge; an
// odd competitor out leaves the last page's second slot empty. It returns
// the number of pages added.
func (c *Composer) PackShort(doc *writer.Document, tpl *Template, judge roster.Judge, comps []roster.Competitor, ctx roster.Context) (int, error) {
	added := 0
	for i := 0; i < len(comps); i += 2 {
		page, err := tpl.ImportPage(doc, 0)
		if err != nil {
			return added, err
		}
		added++

		for slot, comp := range comps[i:min(i+2, len(comps))] {
			layer := overlay.Build(overlay.Pairing{Judge: judge, Competitor: comp, Context: ctx}, true)
			if err := Merge(page, layer, c.Transform(slot)); err != nil {
				return added, err
			}
		}
	}
	return added, nil
}

// Transform returns the overlay transform for a short-form slot: the
// margin fit for slot 0, followed by the half turn for slot 1.
func (c *Composer) Transform(slot int) model.Matrix {
	if slot == 1 {
		return c.margin().Then(Rotated180(model.LetterWidth, model.LetterHeight))
	}
	return c.margin()
}
