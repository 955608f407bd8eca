package overlay

import (
	"strconv"
	"strings"

	"github.com/tsawler/judgeforms/contentstream"
	"github.com/tsawler/judgeforms/core"
	"github.com/tsawler/judgeforms/font"
	"github.com/tsawler/judgeforms/model"
	"github.com/tsawler/judgeforms/roster"
)

// Slot coordinates on a letter page, in points from the lower left.
const (
	JudgeY      = 765.0
	CompetitorY = 745.0
	ContestY    = 730.0
	LeftX       = 50.0
	RightX      = 562.0
	CenterX     = 306.0

	// DirectorDrop is how far below the competitor line the director sits.
	DirectorDrop = 14.0
	// NumberGap separates the short-form judge number from the name.
	NumberGap = 15.0
)

// Type sizes in points.
const (
	JudgeSize       = 16.0
	JudgeNumberSize = 36.0
	CompetitorSize  = 12.0
	ContestSize     = 10.0
)

// Align is the horizontal anchoring of a text run.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Pairing is one judge scoring one competitor at a contest.
type Pairing struct {
	Judge      roster.Judge
	Competitor roster.Competitor
	Context    roster.Context
}

// Run is a single line of text placed on the layer.
type Run struct {
	Text  string
	Font  *font.Font
	Size  float64
	X, Y  float64 // anchor point on the baseline
	Align Align
}

// Left returns the x coordinate where the run starts.
func (r Run) Left() float64 {
	w := r.Font.StringWidth(r.Text, r.Size)
	switch r.Align {
	case AlignRight:
		return r.X - w
	case AlignCenter:
		return r.X - w/2
	}
	return r.X
}

// Bounds returns the box from the font's descender to its ascender.
func (r Run) Bounds() model.Rect {
	left := r.Left()
	return model.Rect{
		LLX: left,
		LLY: r.Y + r.Font.Descent*r.Size/1000,
		URX: left + r.Font.StringWidth(r.Text, r.Size),
		URY: r.Y + r.Font.Ascent*r.Size/1000,
	}
}

// Layer is a transparent page of text drawn over a template page. It is
// laid out on a 612x792 canvas.
type Layer struct {
	Runs []Run
}

// Build lays out the overlay for one pairing. short selects the two-up
// short form, which prints the judge number large beside the name.
func Build(p Pairing, short bool) *Layer {
	l := &Layer{}
	judgeNum := strconv.Itoa(p.Judge.Number)

	if short {
		nameWidth := font.HelveticaBold.StringWidth(p.Judge.Name, JudgeSize)
		l.add(p.Judge.Name, font.HelveticaBold, JudgeSize, RightX, JudgeY, AlignRight)
		l.add(judgeNum, font.HelveticaBold, JudgeNumberSize, RightX-nameWidth-NumberGap, JudgeY, AlignRight)
	} else {
		l.add(judgeNum+". "+p.Judge.Name, font.HelveticaBold, JudgeSize, RightX, JudgeY, AlignRight)
	}

	c := p.Competitor
	l.add(DisplayNumber(c.Number)+". "+c.Name, font.Helvetica, CompetitorSize, LeftX, CompetitorY, AlignLeft)
	if !short && p.Context.IsChorus() && strings.TrimSpace(c.Director) != "" {
		l.add(c.Director, font.Helvetica, CompetitorSize, LeftX, CompetitorY-DirectorDrop, AlignLeft)
	}

	l.add(p.Context.Line(), font.Helvetica, ContestSize, CenterX, ContestY, AlignCenter)
	return l
}

func (l *Layer) add(text string, f *font.Font, size, x, y float64, align Align) {
	l.Runs = append(l.Runs, Run{Text: text, Font: f, Size: size, X: x, Y: y, Align: align})
}

// Fonts returns the distinct fonts the layer uses, in order of first use.
func (l *Layer) Fonts() []*font.Font {
	var out []*font.Font
	seen := make(map[*font.Font]bool)
	for _, r := range l.Runs {
		if !seen[r.Font] {
			seen[r.Font] = true
			out = append(out, r.Font)
		}
	}
	return out
}

// Bounds returns the union of every run's box.
func (l *Layer) Bounds() model.Rect {
	var box model.Rect
	for _, r := range l.Runs {
		box = box.Union(r.Bounds())
	}
	return box
}

// Operations renders the layer. names maps each font to the resource name
// it was registered under on the target page.
func (l *Layer) Operations(names map[*font.Font]string) []contentstream.Operation {
	ops := []contentstream.Operation{contentstream.Op("g", core.Real(0))}
	for _, r := range l.Runs {
		ops = append(ops,
			contentstream.Op("BT"),
			contentstream.Op("Tf", core.Name(names[r.Font]), core.Real(r.Size)),
			contentstream.Op("Tm", contentstream.Nums(1, 0, 0, 1, r.Left(), r.Y)...),
			contentstream.Op("Tj", core.String(r.Font.Encode(r.Text))),
			contentstream.Op("ET"),
		)
	}
	return ops
}

// DisplayNumber renders an imported order-of-appearance value. Numeric text
// is truncated to an integer ("10.0" prints as "10"); anything else is
// returned unchanged.
func DisplayNumber(raw string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f != f || f > 1e15 || f < -1e15 {
		return raw
	}
	return strconv.FormatInt(int64(f), 10)
}
