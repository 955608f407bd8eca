package writer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/tsawler/judgeforms/core"
	"github.com/tsawler/judgeforms/font"
	"github.com/tsawler/judgeforms/pages"
)

// Document is a PDF under construction. Objects are numbered in the order
// they are added; the page tree root and the catalog are reserved first.
type Document struct {
	objects  []core.Object // object n lives at objects[n-1]
	pagesRef core.IndirectRef
	rootRef  core.IndirectRef
	pages    []*Page
	info     core.Dict
	compress bool

	// imported maps a source document's object numbers to ours so shared
	// template resources are copied once.
	imported map[pages.ObjectResolver]map[int]core.IndirectRef
	fonts    map[string]core.IndirectRef
}

// Option configures a Document.
type Option func(*Document)

// WithoutCompression writes new content streams unfiltered. Useful when
// inspecting output by hand.
func WithoutCompression() Option {
	return func(d *Document) { d.compress = false }
}

// WithInfo sets an entry of the document information dictionary.
func WithInfo(key, value string) Option {
	return func(d *Document) { d.info[key] = core.String(value) }
}

// New returns an empty document.
func New(opts ...Option) *Document {
	d := &Document{
		compress: true,
		info:     core.Dict{"Producer": core.String("judgeforms")},
		imported: make(map[pages.ObjectResolver]map[int]core.IndirectRef),
		fonts:    make(map[string]core.IndirectRef),
	}
	d.pagesRef = d.Add(core.Null{})
	d.rootRef = d.Add(core.Dict{"Type": core.Name("Catalog"), "Pages": d.pagesRef})
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add stores obj as a new indirect object and returns its reference.
func (d *Document) Add(obj core.Object) core.IndirectRef {
	d.objects = append(d.objects, obj)
	return core.IndirectRef{Number: len(d.objects)}
}

// Get returns the object behind ref, or nil.
func (d *Document) Get(ref core.IndirectRef) core.Object {
	if ref.Number < 1 || ref.Number > len(d.objects) {
		return nil
	}
	return d.objects[ref.Number-1]
}

// Resolve follows obj if it references one of the document's objects.
func (d *Document) Resolve(obj core.Object) core.Object {
	if ref, ok := obj.(core.IndirectRef); ok {
		return d.Get(ref)
	}
	return obj
}

// AddFont returns the font dictionary for f, adding it on first use.
func (d *Document) AddFont(f *font.Font) core.IndirectRef {
	if ref, ok := d.fonts[f.BaseFont]; ok {
		return ref
	}
	ref := d.Add(f.Dict())
	d.fonts[f.BaseFont] = ref
	return ref
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// Pages returns the pages in order.
func (d *Document) Pages() []*Page {
	return d.pages
}

// NewPage appends a blank page of the given size.
func (d *Document) NewPage(width, height float64) *Page {
	dict := core.Dict{
		"Type":      core.Name("Page"),
		"MediaBox":  core.Array{core.Int(0), core.Int(0), core.Real(width), core.Real(height)},
		"Resources": core.Dict{},
	}
	return d.appendPage(dict)
}

func (d *Document) appendPage(dict core.Dict) *Page {
	dict["Parent"] = d.pagesRef
	p := &Page{doc: d, Dict: dict}
	p.ref = d.Add(dict)
	d.pages = append(d.pages, p)
	return p
}

// ImportPage appends a copy of src. Everything the page references is
// copied with new object numbers; objects already copied from the same
// source are reused, so importing one template many times stores its fonts,
// images and content streams once.
func (d *Document) ImportPage(src *pages.Page, resolver pages.ObjectResolver) (*Page, error) {
	flat := src.Flatten()

	// Reserve the page first so back references (annotation /P) land on it
	p := d.appendPage(core.Dict{})

	memo := d.imported[resolver]
	if memo == nil {
		memo = make(map[int]core.IndirectRef)
		d.imported[resolver] = memo
	}
	local := map[int]core.IndirectRef{}
	if ref, ok := src.Ref(); ok {
		local[ref.Number] = p.ref
	}

	c := &copier{doc: d, resolver: resolver, memo: memo, local: local}
	copied, err := c.copy(flat)
	if err != nil {
		return nil, fmt.Errorf("import page: %w", err)
	}

	dict := copied.(core.Dict)
	dict["Parent"] = d.pagesRef
	p.Dict = dict
	d.objects[p.ref.Number-1] = dict
	return p, nil
}

type copier struct {
	doc      *Document
	resolver pages.ObjectResolver
	memo     map[int]core.IndirectRef
	local    map[int]core.IndirectRef
}

func (c *copier) copy(obj core.Object) (core.Object, error) {
	switch v := obj.(type) {
	case core.IndirectRef:
		return c.copyRef(v)
	case core.Array:
		out := make(core.Array, len(v))
		for i, elem := range v {
			e, err := c.copy(elem)
			if err != nil {
				return nil, err
			}
			out[i] = e
		}
		return out, nil
	case core.Dict:
		out := make(core.Dict, len(v))
		for k, val := range v {
			// never pull in the source page tree
			if k == "Parent" {
				continue
			}
			e, err := c.copy(val)
			if err != nil {
				return nil, err
			}
			out[k] = e
		}
		return out, nil
	case *core.Stream:
		dict, err := c.copy(v.Dict)
		if err != nil {
			return nil, err
		}
		return &core.Stream{Dict: dict.(core.Dict), Data: v.Data}, nil
	default:
		return obj, nil
	}
}

func (c *copier) copyRef(ref core.IndirectRef) (core.Object, error) {
	if r, ok := c.local[ref.Number]; ok {
		return r, nil
	}
	if r, ok := c.memo[ref.Number]; ok {
		return r, nil
	}

	target, err := c.resolver.ResolveReference(ref)
	if err != nil {
		return nil, fmt.Errorf("object %d: %w", ref.Number, err)
	}
	if d, ok := target.(core.Dict); ok {
		// a reference to another page would drag its whole page tree along
		if t, _ := d.GetName("Type"); t == "Page" || t == "Pages" {
			return core.Null{}, nil
		}
	}

	// Register before copying so cycles terminate
	newRef := c.doc.Add(core.Null{})
	c.memo[ref.Number] = newRef

	copied, err := c.copy(target)
	if err != nil {
		return nil, err
	}
	c.doc.objects[newRef.Number-1] = copied
	return newRef, nil
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo serializes the document with a classic cross-reference table.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	kids := make(core.Array, len(d.pages))
	for i, p := range d.pages {
		kids[i] = p.ref
	}
	d.objects[d.pagesRef.Number-1] = core.Dict{
		"Type":  core.Name("Pages"),
		"Kids":  kids,
		"Count": core.Int(len(d.pages)),
	}
	infoRef := d.Add(d.info)
	defer func() { d.objects = d.objects[:len(d.objects)-1] }()

	cw := &countingWriter{w: bufio.NewWriter(w)}
	io.WriteString(cw, "%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int64, len(d.objects))
	for i, obj := range d.objects {
		offsets[i] = cw.n
		if err := core.WriteIndirectObject(cw, core.IndirectRef{Number: i + 1}, obj); err != nil {
			return cw.n, err
		}
	}

	xrefOffset := cw.n
	fmt.Fprintf(cw, "xref\n0 %d\n0000000000 65535 f \n", len(d.objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(cw, "%010d 00000 n \n", off)
	}

	trailer := core.Dict{
		"Size": core.Int(len(d.objects) + 1),
		"Root": d.rootRef,
		"Info": infoRef,
	}
	io.WriteString(cw, "trailer\n")
	core.WriteObject(cw, trailer)
	fmt.Fprintf(cw, "\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, cw.w.Flush()
}

// countingWriter tracks the byte offset for the xref table and keeps the
// first write error.
type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
