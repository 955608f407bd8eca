package core

import (
	"fmt"

	"github.com/tsawler/judgeforms/internal/filters"
)

// NewStream returns an unfiltered stream holding data, with /Length set.
func NewStream(dict Dict, data []byte) *Stream {
	if dict == nil {
		dict = Dict{}
	}
	dict["Length"] = Int(len(data))
	return &Stream{Dict: dict, Data: data}
}

// NewFlateStream compresses data with FlateDecode and returns the stream.
func NewFlateStream(dict Dict, data []byte) (*Stream, error) {
	compressed, err := filters.FlateEncode(data)
	if err != nil {
		return nil, fmt.Errorf("compress stream: %w", err)
	}
	s := NewStream(dict, compressed)
	s.Dict["Filter"] = Name("FlateDecode")
	s.Dict.Delete("DecodeParms")
	return s, nil
}

type decoder func(data []byte, params filters.Params) ([]byte, error)

func withoutParams(f func([]byte) ([]byte, error)) decoder {
	return func(data []byte, _ filters.Params) ([]byte, error) { return f(data) }
}

// image codecs are passed through; templates are copied, never rasterized
func passThrough(data []byte, _ filters.Params) ([]byte, error) { return data, nil }

var decoders = map[string]decoder{
	"FlateDecode":     filters.FlateDecode,
	"ASCIIHexDecode":  withoutParams(filters.ASCIIHexDecode),
	"ASCII85Decode":   withoutParams(filters.ASCII85Decode),
	"RunLengthDecode": withoutParams(filters.RunLengthDecode),
	"CCITTFaxDecode":  filters.CCITTFaxDecode,
	"DCTDecode":       passThrough,
	"JPXDecode":       passThrough,
}

// abbreviations used in inline images
var filterAbbrev = map[string]string{
	"Fl":  "FlateDecode",
	"AHx": "ASCIIHexDecode",
	"A85": "ASCII85Decode",
	"RL":  "RunLengthDecode",
	"CCF": "CCITTFaxDecode",
	"DCT": "DCTDecode",
}

// Decode applies the stream's /Filter chain in order and returns the
// decoded bytes. An unfiltered stream returns Data itself.
func (s *Stream) Decode() ([]byte, error) {
	names, params, err := s.filterChain()
	if err != nil {
		return nil, err
	}
	data := s.Data
	for i, name := range names {
		if full, ok := filterAbbrev[name]; ok {
			name = full
		}
		decode, ok := decoders[name]
		if !ok {
			return nil, fmt.Errorf("unsupported filter %s", name)
		}
		if data, err = decode(data, params[i]); err != nil {
			return nil, fmt.Errorf("filter %d (%s): %w", i, name, err)
		}
	}
	return data, nil
}

// filterChain pairs each /Filter name with its /DecodeParms entry. A single
// parameter dictionary applies to a single filter.
func (s *Stream) filterChain() ([]string, []filters.Params, error) {
	var names []string
	switch f := s.Dict.Get("Filter").(type) {
	case nil:
		return nil, nil, nil
	case Name:
		names = []string{string(f)}
	case Array:
		for i := range f {
			n, ok := f.GetName(i)
			if !ok {
				return nil, nil, fmt.Errorf("filter %d is %v, not a name", i, f[i])
			}
			names = append(names, string(n))
		}
	default:
		return nil, nil, fmt.Errorf("invalid /Filter %v", f)
	}

	params := make([]filters.Params, len(names))
	switch p := s.Dict.Get("DecodeParms").(type) {
	case Dict:
		params[0] = toParams(p)
	case Array:
		for i := 0; i < min(len(p), len(params)); i++ {
			if d, ok := p[i].(Dict); ok {
				params[i] = toParams(d)
			}
		}
	}
	return names, params, nil
}

// toParams converts decode parameters to plain Go values.
func toParams(dict Dict) filters.Params {
	params := make(filters.Params, len(dict))
	for k, v := range dict {
		switch obj := v.(type) {
		case Int:
			params[k] = int(obj)
		case Real:
			params[k] = float64(obj)
		case Bool:
			params[k] = bool(obj)
		case String:
			params[k] = string(obj)
		case Name:
			params[k] = string(obj)
		}
	}
	return params
}
