package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// XRefEntryType distinguishes the three kinds of cross-reference entries.
type XRefEntryType int

const (
	XRefEntryFree         XRefEntryType = iota // type 0
	XRefEntryUncompressed                      // type 1: object at a byte offset
	XRefEntryCompressed                        // type 2: object inside an object stream
)

func (t XRefEntryType) String() string {
	switch t {
	case XRefEntryFree:
		return "free"
	case XRefEntryUncompressed:
		return "uncompressed"
	case XRefEntryCompressed:
		return "compressed"
	default:
		return "unknown"
	}
}

// XRefEntry is a single cross-reference entry.
//
// For compressed entries Offset holds the object number of the containing
// object stream and Generation holds the index within that stream.
type XRefEntry struct {
	Type       XRefEntryType
	Offset     int64
	Generation int
	InUse      bool
}

// XRefTable maps object numbers to where their definitions live.
type XRefTable struct {
	Entries  map[int]*XRefEntry
	Trailer  Dict // the stream dictionary for xref streams
	IsStream bool
}

// NewXRefTable returns an empty table.
func NewXRefTable() *XRefTable {
	return &XRefTable{
		Entries: make(map[int]*XRefEntry),
		Trailer: make(Dict),
	}
}

// Get returns the entry for objNum.
func (x *XRefTable) Get(objNum int) (*XRefEntry, bool) {
	entry, ok := x.Entries[objNum]
	return entry, ok
}

// Set adds or replaces the entry for objNum.
func (x *XRefTable) Set(objNum int, entry *XRefEntry) {
	x.Entries[objNum] = entry
}

// Size returns the number of entries.
func (x *XRefTable) Size() int {
	return len(x.Entries)
}

// XRefParser reads the cross-reference sections of a PDF held in memory.
type XRefParser struct {
	data []byte
}

// NewXRefParser returns a parser for the complete file in data.
func NewXRefParser(data []byte) *XRefParser {
	return &XRefParser{data: data}
}

// startxrefWindow is how far from the end of the file startxref is looked for.
const startxrefWindow = 1024

// FindXRef returns the offset of the newest cross-reference section, read
// from the "startxref <offset> %%EOF" footer.
func (x *XRefParser) FindXRef() (int64, error) {
	tail := x.data[max(0, len(x.data)-startxrefWindow):]
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return 0, errors.New("startxref not found")
	}

	tok, err := NewScanner(tail[idx+len("startxref"):]).Next()
	if err != nil || tok.Kind != TokenNumber {
		return 0, errors.New("startxref is not followed by an offset")
	}
	offset, err := strconv.ParseInt(string(tok.Value), 10, 64)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid startxref offset %q", tok.Value)
	}
	return offset, nil
}

// ParseXRef parses the section at offset: either an "xref" table with its
// trailer, or an xref stream object.
func (x *XRefParser) ParseXRef(offset int64) (*XRefTable, error) {
	if offset < 0 || offset >= int64(len(x.data)) {
		return nil, fmt.Errorf("xref offset %d outside file", offset)
	}

	p := NewParser(x.data[offset:])
	obj, kw, err := p.Next()
	switch {
	case err != nil:
		return nil, fmt.Errorf("xref at %d: %w", offset, err)
	case kw == "xref":
		return x.table(p)
	}
	if _, ok := obj.(Int); ok {
		return x.stream(offset)
	}
	return nil, fmt.Errorf("no xref table or xref stream at offset %d", offset)
}

// table reads the subsections and trailer that follow the xref keyword.
// Entries are read as tokens, so entries that are not exactly 20 bytes
// still parse.
func (x *XRefParser) table(p *Parser) (*XRefTable, error) {
	table := NewXRefTable()
	for {
		obj, kw, err := p.Next()
		if err == io.EOF {
			return nil, errors.New("xref table has no trailer")
		}
		if err != nil {
			return nil, err
		}
		if kw == "trailer" {
			trailer, err := p.ParseObject()
			if err != nil {
				return nil, fmt.Errorf("trailer: %w", err)
			}
			d, ok := trailer.(Dict)
			if !ok {
				return nil, fmt.Errorf("trailer is %T, not a dictionary", trailer)
			}
			table.Trailer = d
			return table, nil
		}

		first, ok := obj.(Int)
		if !ok || first < 0 {
			return nil, fmt.Errorf("invalid subsection start %v %s", obj, kw)
		}
		obj, err = p.ParseObject()
		count, ok := obj.(Int)
		if err != nil || !ok || count < 0 {
			return nil, fmt.Errorf("invalid count for subsection %d", first)
		}
		for i := 0; i < int(count); i++ {
			entry, err := tableEntry(p)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", int(first)+i, err)
			}
			table.Set(int(first)+i, entry)
		}
	}
}

// tableEntry reads "offset generation n|f".
func tableEntry(p *Parser) (*XRefEntry, error) {
	var fields [2]Int
	for i := range fields {
		obj, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		n, ok := obj.(Int)
		if !ok || n < 0 {
			return nil, fmt.Errorf("expected an unsigned integer, got %v", obj)
		}
		fields[i] = n
	}
	_, kw, err := p.Next()
	if err != nil {
		return nil, err
	}

	entry := &XRefEntry{Offset: int64(fields[0]), Generation: int(fields[1])}
	switch kw {
	case "n":
		entry.Type = XRefEntryUncompressed
		entry.InUse = true
	case "f":
		entry.Type = XRefEntryFree
	default:
		return nil, fmt.Errorf("invalid in-use flag %q", kw)
	}
	return entry, nil
}

// stream reads the xref stream object at offset.
func (x *XRefParser) stream(offset int64) (*XRefTable, error) {
	ind, err := NewParser(x.data[offset:]).ParseIndirectObject()
	if err != nil {
		return nil, fmt.Errorf("xref stream: %w", err)
	}
	s, ok := ind.Object.(*Stream)
	if !ok {
		return nil, fmt.Errorf("xref object %d is %T, not a stream", ind.Ref.Number, ind.Object)
	}
	if t, _ := s.Dict.GetName("Type"); t != "XRef" {
		return nil, fmt.Errorf("object %d is not an xref stream (Type %v)", ind.Ref.Number, s.Dict.Get("Type"))
	}

	size, ok := s.Dict.GetInt("Size")
	if !ok {
		return nil, errors.New("xref stream missing /Size")
	}
	w, err := fieldWidths(s.Dict)
	if err != nil {
		return nil, err
	}
	index, err := subsections(s.Dict, int(size))
	if err != nil {
		return nil, err
	}

	data, err := s.Decode()
	if err != nil {
		return nil, fmt.Errorf("xref stream: %w", err)
	}

	table := NewXRefTable()
	table.IsStream = true
	table.Trailer = s.Dict

	row := w[0] + w[1] + w[2]
	for i := 0; i < len(index); i += 2 {
		first, count := index[i], index[i+1]
		for j := 0; j < count; j++ {
			if len(data) < row {
				return nil, fmt.Errorf("xref stream ends before entry %d", first+j)
			}
			table.Set(first+j, streamEntry(data[:row], w))
			data = data[row:]
		}
	}
	return table, nil
}

func fieldWidths(dict Dict) ([3]int, error) {
	var w [3]int
	arr, ok := dict.GetArray("W")
	if !ok || len(arr) != len(w) {
		return w, fmt.Errorf("xref stream /W must be an array of 3 widths, got %v", dict.Get("W"))
	}
	for i := range w {
		v, ok := arr.GetInt(i)
		if !ok || v < 0 || v > 8 {
			return w, fmt.Errorf("invalid /W width %v", arr[i])
		}
		w[i] = int(v)
	}
	return w, nil
}

// subsections returns /Index as first/count pairs, defaulting to [0 size].
func subsections(dict Dict, size int) ([]int, error) {
	arr, ok := dict.GetArray("Index")
	if !ok {
		return []int{0, size}, nil
	}
	if len(arr)%2 != 0 {
		return nil, fmt.Errorf("xref stream /Index has odd length %d", len(arr))
	}
	index := make([]int, len(arr))
	for i := range arr {
		v, ok := arr.GetInt(i)
		if !ok || v < 0 {
			return nil, fmt.Errorf("invalid /Index entry %v", arr[i])
		}
		index[i] = int(v)
	}
	return index, nil
}

// streamEntry decodes one row of an xref stream. A zero-width type field
// means type 1, and unknown types read as free entries.
func streamEntry(row []byte, w [3]int) *XRefEntry {
	kind := int64(1)
	if w[0] > 0 {
		kind = readBigEndianInt(row[:w[0]], w[0])
	}
	entry := &XRefEntry{
		Offset:     readBigEndianInt(row[w[0]:w[0]+w[1]], w[1]),
		Generation: int(readBigEndianInt(row[w[0]+w[1]:], w[2])),
		Type:       XRefEntryFree,
	}
	switch kind {
	case 1:
		entry.Type = XRefEntryUncompressed
		entry.InUse = true
	case 2:
		entry.Type = XRefEntryCompressed
		entry.InUse = true
	}
	return entry
}

func readBigEndianInt(data []byte, width int) int64 {
	var v int64
	for i := 0; i < width && i < len(data); i++ {
		v = v<<8 | int64(data[i])
	}
	return v
}

// MergeXRefTables merges sections oldest first, so later entries win. The
// last table's trailer is kept.
func MergeXRefTables(tables ...*XRefTable) *XRefTable {
	merged := NewXRefTable()
	for _, table := range tables {
		for num, entry := range table.Entries {
			merged.Set(num, entry)
		}
		merged.Trailer = table.Trailer
		merged.IsStream = table.IsStream
	}
	return merged
}

// ParseAllXRefs follows /Prev from the newest section back to the first and
// returns the sections oldest first. The /XRefStm section of a hybrid file
// comes right after the table that names it and takes that table's trailer.
// A /Prev chain that loops is cut where it repeats.
func (x *XRefParser) ParseAllXRefs() ([]*XRefTable, error) {
	offset, err := x.FindXRef()
	if err != nil {
		return nil, err
	}

	var chain []*XRefTable // newest first
	seen := map[int64]bool{}
	for !seen[offset] {
		seen[offset] = true
		table, err := x.ParseXRef(offset)
		if err != nil {
			return nil, err
		}

		if stm, ok := table.Trailer.GetInt("XRefStm"); ok && !seen[int64(stm)] {
			seen[int64(stm)] = true
			hidden, err := x.ParseXRef(int64(stm))
			if err != nil {
				return nil, fmt.Errorf("/XRefStm section: %w", err)
			}
			hidden.Trailer = table.Trailer
			chain = append(chain, hidden)
		}
		chain = append(chain, table)

		prev, ok := table.Trailer.GetInt("Prev")
		if !ok {
			break
		}
		offset = int64(prev)
	}

	slices.Reverse(chain)
	return chain, nil
}
