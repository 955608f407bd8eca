package font

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/judgeforms/core"
)

// Font is one of the Standard 14 fonts, used unembedded with
// WinAnsiEncoding. Widths are in 1000ths of an em, indexed by WinAnsi code.
type Font struct {
	BaseFont  string
	Ascent    float64
	Descent   float64
	CapHeight float64
	widths    *[224]uint16 // codes 32..255
}

// Helvetica and HelveticaBold are the two faces the overlays are set in.
var (
	Helvetica = &Font{
		BaseFont:  "Helvetica",
		Ascent:    718,
		Descent:   -207,
		CapHeight: 718,
		widths:    &helveticaWidths,
	}
	HelveticaBold = &Font{
		BaseFont:  "Helvetica-Bold",
		Ascent:    718,
		Descent:   -207,
		CapHeight: 718,
		widths:    &helveticaBoldWidths,
	}
)

var standardFonts = map[string]*Font{
	Helvetica.BaseFont:     Helvetica,
	HelveticaBold.BaseFont: HelveticaBold,
}

// Standard looks up a supported standard font by its PostScript name.
func Standard(baseFont string) (*Font, error) {
	f, ok := standardFonts[baseFont]
	if !ok {
		return nil, fmt.Errorf("font: no metrics for %q", baseFont)
	}
	return f, nil
}

// Encode converts s to WinAnsiEncoding bytes. Decomposed accents are
// composed first; runes with no WinAnsi code become '?'.
func (f *Font) Encode(s string) []byte {
	s = norm.NFC.String(s)
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok || b < 32 {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

// CodeWidth returns the advance width of a WinAnsi code in 1000ths of an em.
func (f *Font) CodeWidth(code byte) float64 {
	if code < 32 {
		return 0
	}
	return float64(f.widths[code-32])
}

// StringWidth returns the advance width of s set at size points.
func (f *Font) StringWidth(s string, size float64) float64 {
	total := 0.0
	for _, c := range f.Encode(s) {
		total += f.CodeWidth(c)
	}
	return total * size / 1000
}

// Dict returns the font resource dictionary for the font.
func (f *Font) Dict() core.Dict {
	return core.Dict{
		"Type":     core.Name("Font"),
		"Subtype":  core.Name("Type1"),
		"BaseFont": core.Name(f.BaseFont),
		"Encoding": core.Name("WinAnsiEncoding"),
	}
}

// Widths from the Adobe Core 14 AFM files, mapped through WinAnsiEncoding.
// Zero marks codes WinAnsi leaves undefined.
var helveticaWidths = [224]uint16{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278, // 32
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556, // 48
	1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778, // 64
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556, // 80
	333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556, // 96
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584, 0, // 112
	556, 0, 222, 556, 333, 1000, 556, 556, 333, 1000, 667, 333, 1000, 0, 611, 0, // 128
	0, 222, 222, 333, 333, 350, 556, 1000, 333, 1000, 500, 333, 944, 0, 500, 667, // 144
	278, 333, 556, 556, 556, 556, 260, 556, 333, 737, 370, 556, 584, 333, 737, 333, // 160
	400, 584, 333, 333, 333, 556, 537, 278, 333, 333, 365, 556, 834, 834, 834, 611, // 176
	667, 667, 667, 667, 667, 667, 1000, 722, 667, 667, 667, 667, 278, 278, 278, 278, // 192
	722, 722, 778, 778, 778, 778, 778, 584, 778, 722, 722, 722, 722, 667, 667, 611, // 208
	556, 556, 556, 556, 556, 556, 889, 500, 556, 556, 556, 556, 278, 278, 278, 278, // 224
	556, 556, 556, 556, 556, 556, 556, 584, 611, 556, 556, 556, 556, 500, 556, 500, // 240
}

var helveticaBoldWidths = [224]uint16{
	278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278, // 32
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611, // 48
	975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778, // 64
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556, // 80
	333, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611, // 96
	611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584, 0, // 112
	556, 0, 278, 556, 500, 1000, 556, 556, 333, 1000, 667, 333, 1000, 0, 611, 0, // 128
	0, 278, 278, 500, 500, 350, 556, 1000, 333, 1000, 556, 333, 944, 0, 500, 667, // 144
	278, 333, 556, 556, 556, 556, 280, 556, 333, 737, 370, 556, 584, 333, 737, 333, // 160
	400, 584, 333, 333, 333, 611, 556, 278, 333, 333, 365, 556, 834, 834, 834, 611, // 176
	722, 722, 722, 722, 722, 722, 1000, 722, 667, 667, 667, 667, 278, 278, 278, 278, // 192
	722, 722, 778, 778, 778, 778, 778, 584, 778, 722, 722, 722, 722, 667, 667, 611, // 208
	556, 556, 556, 556, 556, 556, 889, 556, 556, 556, 556, 556, 278, 278, 278, 278, // 224
	611, 611, 611, 611, 611, 611, 611, 584, 611, 611, 611, 611, 611, 556, 611, 556, // 240
}
