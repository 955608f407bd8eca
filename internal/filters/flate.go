package filters

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
)

// FlateDecode inflates zlib data and undoes the predictor named in params.
// A stream that breaks off or fails its checksum keeps the bytes inflated
// before the damage; producers get the trailer wrong often enough that
// rejecting those streams loses real templates.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("flate: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil && !(len(out) > 0 && (errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, zlib.ErrChecksum))) {
		return nil, fmt.Errorf("flate: %w", err)
	}
	return unpredict(out, params)
}

// FlateEncode compresses data at the default level without a predictor.
func FlateEncode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("flate: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("flate: %w", err)
	}
	return buf.Bytes(), nil
}

// rowLayout describes the rows a predictor works on.
type rowLayout struct {
	stride int // bytes per row, excluding a PNG tag byte
	bpp    int // bytes per pixel, at least 1
}

func layout(params Params) (rowLayout, error) {
	columns := params.Int("Columns", 1)
	colors := params.Int("Colors", 1)
	bpc := params.Int("BitsPerComponent", 8)
	switch bpc {
	case 1, 2, 4, 8, 16:
	default:
		return rowLayout{}, fmt.Errorf("predictor: invalid BitsPerComponent %d", bpc)
	}
	if columns < 1 || colors < 1 {
		return rowLayout{}, fmt.Errorf("predictor: invalid Columns %d or Colors %d", columns, colors)
	}
	return rowLayout{
		stride: (columns*colors*bpc + 7) / 8,
		bpp:    max(1, colors*bpc/8),
	}, nil
}

// unpredict reverses predictor 2 (TIFF) or 10-15 (PNG). The PNG value only
// says predictors are in use; each row carries its own tag byte.
func unpredict(data []byte, params Params) ([]byte, error) {
	predictor := params.Int("Predictor", 1)
	if predictor == 1 {
		return data, nil
	}
	l, err := layout(params)
	if err != nil {
		return nil, err
	}
	switch {
	case predictor == 2:
		if params.Int("BitsPerComponent", 8) != 8 {
			return nil, errors.New("predictor: TIFF prediction needs 8 bits per component")
		}
		return tiffRows(data, l)
	case predictor >= 10 && predictor <= 15:
		return pngRows(data, l)
	}
	return nil, fmt.Errorf("predictor: unsupported predictor %d", predictor)
}

func tiffRows(data []byte, l rowLayout) ([]byte, error) {
	if len(data)%l.stride != 0 {
		return nil, fmt.Errorf("predictor: %d bytes is not a whole number of %d byte rows", len(data), l.stride)
	}
	out := bytes.Clone(data)
	for row := 0; row < len(out); row += l.stride {
		for i := row + l.bpp; i < row+l.stride; i++ {
			out[i] += out[i-l.bpp]
		}
	}
	return out, nil
}

func pngRows(data []byte, l rowLayout) ([]byte, error) {
	n := l.stride + 1
	if len(data)%n != 0 {
		return nil, fmt.Errorf("predictor: %d bytes is not a whole number of %d byte rows", len(data), n)
	}
	out := make([]byte, 0, len(data)/n*l.stride)
	prev := make([]byte, l.stride)
	for row := 0; row < len(data); row += n {
		tag, cur := data[row], bytes.Clone(data[row+1:row+n])
		if err := unfilter(tag, cur, prev, l.bpp); err != nil {
			return nil, fmt.Errorf("predictor: row %d: %w", row/n, err)
		}
		out = append(out, cur...)
		prev = cur
	}
	return out, nil
}

// unfilter undoes one PNG filter in place. prev is the decoded row above,
// all zeros for the first row.
func unfilter(tag byte, cur, prev []byte, bpp int) error {
	switch tag {
	case 0:
	case 1:
		for i := bpp; i < len(cur); i++ {
			cur[i] += cur[i-bpp]
		}
	case 2:
		for i := range cur {
			cur[i] += prev[i]
		}
	case 3:
		for i := range cur {
			var left int
			if i >= bpp {
				left = int(cur[i-bpp])
			}
			cur[i] += byte((left + int(prev[i])) / 2)
		}
	case 4:
		for i := range cur {
			var left, upLeft byte
			if i >= bpp {
				left, upLeft = cur[i-bpp], prev[i-bpp]
			}
			cur[i] += paethPredictor(left, prev[i], upLeft)
		}
	default:
		return fmt.Errorf("unknown PNG filter %d", tag)
	}
	return nil
}

// paethPredictor picks whichever of left, above and upper left is closest
// to left + above - upper left.
func paethPredictor(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	switch {
	case pa <= pb && pa <= pc:
		return a
	case pb <= pc:
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
