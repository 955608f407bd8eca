package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/tsawler/judgeforms/core"
	"github.com/tsawler/judgeforms/pages"
)

// ErrEncrypted is returned for documents with an /Encrypt dictionary.
var ErrEncrypted = errors.New("reader: encrypted documents are not supported")

// Version is the PDF version from the file header.
type Version struct {
	Major, Minor int
}

func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// Reader gives random access to the objects of an in-memory PDF. It is not
// safe for concurrent use; loaded objects are cached.
type Reader struct {
	data      []byte
	version   Version
	xrefTable *core.XRefTable
	trailer   core.Dict
	repaired  bool

	objCache map[int]core.Object
	objStms  map[int]*core.ObjectStream
	loading  map[int]bool // objects being parsed, to catch self references
	pages    []*pages.Page
}

var _ pages.ObjectResolver = (*Reader)(nil)

// Open reads the file at path.
func Open(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewReader(data)
}

// ReadFrom reads a complete PDF from src.
func ReadFrom(src io.Reader) (*Reader, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return NewReader(data)
}

// NewReader indexes the PDF in data. When the cross-reference data cannot be
// used it is rebuilt from the object headers in the file.
func NewReader(data []byte) (*Reader, error) {
	v, err := headerVersion(data)
	if err != nil {
		return nil, err
	}
	r := &Reader{
		data:     data,
		version:  v,
		objCache: make(map[int]core.Object),
		objStms:  make(map[int]*core.ObjectStream),
		loading:  make(map[int]bool),
	}

	table, err := r.readXRef()
	if err != nil {
		if table, err = r.rebuildXRef(); err != nil {
			return nil, fmt.Errorf("xref: %w", err)
		}
		r.repaired = true
	}
	r.xrefTable, r.trailer = table, table.Trailer

	if r.trailer.Has("Encrypt") {
		return nil, ErrEncrypted
	}
	return r, nil
}

var headerRe = regexp.MustCompile(`%PDF-(\d+)\.(\d+)`)

// headerVersion finds the %PDF-x.y marker, which some producers put after
// a few bytes of junk.
func headerVersion(data []byte) (Version, error) {
	m := headerRe.FindSubmatch(data[:min(len(data), 1024)])
	if m == nil {
		return Version{}, errors.New("missing %PDF- header")
	}
	major, _ := strconv.Atoi(string(m[1]))
	minor, _ := strconv.Atoi(string(m[2]))
	return Version{major, minor}, nil
}

func (r *Reader) readXRef() (*core.XRefTable, error) {
	tables, err := core.NewXRefParser(r.data).ParseAllXRefs()
	if err != nil {
		return nil, err
	}
	table := core.MergeXRefTables(tables...)
	if !table.Trailer.Has("Root") {
		return nil, errors.New("trailer has no /Root")
	}
	return table, nil
}

func (r *Reader) Version() Version   { return r.version }
func (r *Reader) Trailer() core.Dict { return r.trailer }
func (r *Reader) Size() int          { return len(r.data) }

// Repaired reports whether the cross-reference data had to be rebuilt.
func (r *Reader) Repaired() bool { return r.repaired }

// NumObjects returns the trailer's /Size.
func (r *Reader) NumObjects() int {
	size, _ := r.trailer.GetInt("Size")
	return int(size)
}

// Catalog returns the document catalog named by /Root.
func (r *Reader) Catalog() (core.Dict, error) {
	ref, ok := r.trailer.GetIndirectRef("Root")
	if !ok {
		return nil, fmt.Errorf("invalid /Root %v", r.trailer.Get("Root"))
	}
	obj, err := r.ResolveReference(ref)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	catalog, ok := obj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("catalog is %T, not a dictionary", obj)
	}
	return catalog, nil
}

// Info returns the document information dictionary, or nil if there is
// none or it is not a dictionary.
func (r *Reader) Info() (core.Dict, error) {
	obj, err := r.Resolve(r.trailer.Get("Info"))
	if err != nil {
		return nil, fmt.Errorf("info: %w", err)
	}
	info, _ := obj.(core.Dict)
	return info, nil
}

// Pages returns every page in document order. The page tree is walked on
// the first call.
func (r *Reader) Pages() ([]*pages.Page, error) {
	if r.pages != nil {
		return r.pages, nil
	}
	catalog, err := r.Catalog()
	if err != nil {
		return nil, err
	}
	if r.pages, err = pages.Collect(catalog, r); err != nil {
		return nil, err
	}
	return r.pages, nil
}

func (r *Reader) PageCount() (int, error) {
	ps, err := r.Pages()
	return len(ps), err
}

// GetPage returns page i, counting from 0.
func (r *Reader) GetPage(i int) (*pages.Page, error) {
	ps, err := r.Pages()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(ps) {
		return nil, fmt.Errorf("page %d out of range [0, %d)", i, len(ps))
	}
	return ps[i], nil
}
