package pages

import (
	"errors"
	"fmt"

	"github.com/tsawler/judgeforms/core"
)

// ObjectResolver looks up indirect objects.
type ObjectResolver interface {
	Resolve(obj core.Object) (core.Object, error)
	ResolveReference(ref core.IndirectRef) (core.Object, error)
}

// inheritable lists the page attributes a page may take from its ancestors.
var inheritable = []string{"Resources", "MediaBox", "CropBox", "Rotate"}

const maxTreeDepth = 64

// Collect walks the page tree under the catalog's /Pages root and returns
// the leaf pages in document order. /Count is not trusted; some producers
// get it wrong.
func Collect(catalog core.Dict, r ObjectResolver) ([]*Page, error) {
	if catalog.Get("Pages") == nil {
		return nil, errors.New("catalog has no /Pages")
	}
	obj, err := r.Resolve(catalog.Get("Pages"))
	if err != nil {
		return nil, fmt.Errorf("/Pages: %w", err)
	}
	root, ok := obj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("/Pages is %T, not a dictionary", obj)
	}

	w := &walker{r: r, seen: map[int]bool{}}
	if err := w.visit(root, core.IndirectRef{}, nil, 0); err != nil {
		return nil, fmt.Errorf("page tree: %w", err)
	}
	return w.pages, nil
}

type walker struct {
	r     ObjectResolver
	seen  map[int]bool
	pages []*Page
}

func (w *walker) visit(node core.Dict, ref core.IndirectRef, inherited core.Dict, depth int) error {
	if depth > maxTreeDepth {
		return fmt.Errorf("deeper than %d levels", maxTreeDepth)
	}

	attrs := make(core.Dict, len(inheritable))
	for _, key := range inheritable {
		if v := node.Get(key); v != nil {
			attrs[key] = v
		} else if v := inherited.Get(key); v != nil {
			attrs[key] = v
		}
	}

	// a node without /Type counts as a page unless it has kids
	if t, _ := node.GetName("Type"); t == "Page" || (t == "" && !node.Has("Kids")) {
		w.pages = append(w.pages, &Page{dict: node, ref: ref, inherited: attrs, r: w.r})
		return nil
	}

	obj, err := w.r.Resolve(node.Get("Kids"))
	if err != nil {
		return fmt.Errorf("/Kids: %w", err)
	}
	kids, ok := obj.(core.Array)
	if !ok {
		return fmt.Errorf("/Kids is %T, not an array", obj)
	}
	for i, kid := range kids {
		kref, _ := kid.(core.IndirectRef)
		if kref.Number != 0 {
			if w.seen[kref.Number] {
				return fmt.Errorf("cycle at object %d", kref.Number)
			}
			w.seen[kref.Number] = true
		}
		obj, err := w.r.Resolve(kid)
		if err != nil {
			return fmt.Errorf("kid %d: %w", i, err)
		}
		d, ok := obj.(core.Dict)
		if !ok {
			return fmt.Errorf("kid %d is %T, not a dictionary", i, obj)
		}
		if err := w.visit(d, kref, attrs, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Page is a leaf of the page tree.
type Page struct {
	dict      core.Dict
	ref       core.IndirectRef // zero for a direct object
	inherited core.Dict        // inheritable attributes as resolved through the ancestors
	r         ObjectResolver
}

// NewPage wraps a page dictionary. inherited may be nil.
func NewPage(dict, inherited core.Dict, r ObjectResolver) *Page {
	return &Page{dict: dict, inherited: inherited, r: r}
}

// Ref returns the page's object reference, if it has one.
func (p *Page) Ref() (core.IndirectRef, bool) {
	return p.ref, p.ref.Number != 0
}

func (p *Page) attr(name string) core.Object {
	if v := p.dict.Get(name); v != nil {
		return v
	}
	return p.inherited.Get(name)
}

// Flatten returns a copy of the page dictionary with the inherited
// attributes filled in and /Parent removed, ready to be placed in another
// document.
func (p *Page) Flatten() core.Dict {
	out := core.Clone(p.dict).(core.Dict)
	for _, key := range inheritable {
		if v := p.inherited.Get(key); v != nil && !out.Has(key) {
			out[key] = core.Clone(v)
		}
	}
	out.Delete("Parent")
	return out
}

// MediaBox returns [llx lly urx ury] with llx <= urx and lly <= ury.
func (p *Page) MediaBox() ([]float64, error) {
	return p.box("MediaBox")
}

// CropBox returns the visible region, or the MediaBox when there is none.
func (p *Page) CropBox() ([]float64, error) {
	if box, err := p.box("CropBox"); err == nil {
		return box, nil
	}
	return p.MediaBox()
}

func (p *Page) box(name string) ([]float64, error) {
	if p.attr(name) == nil {
		return nil, fmt.Errorf("page has no /%s", name)
	}
	obj, err := p.r.Resolve(p.attr(name))
	if err != nil {
		return nil, fmt.Errorf("/%s: %w", name, err)
	}
	arr, ok := obj.(core.Array)
	if !ok || len(arr) != 4 {
		return nil, fmt.Errorf("/%s is %v, not a rectangle", name, obj)
	}

	box := make([]float64, 4)
	for i, elem := range arr {
		if elem, err = p.r.Resolve(elem); err != nil {
			return nil, fmt.Errorf("/%s: %w", name, err)
		}
		v, ok := core.Number(elem)
		if !ok {
			return nil, fmt.Errorf("/%s element %d is %v", name, i, elem)
		}
		box[i] = v
	}
	box[0], box[2] = min(box[0], box[2]), max(box[0], box[2])
	box[1], box[3] = min(box[1], box[3]), max(box[1], box[3])
	return box, nil
}

// Width returns the MediaBox width.
func (p *Page) Width() (float64, error) {
	box, err := p.MediaBox()
	if err != nil {
		return 0, err
	}
	return box[2] - box[0], nil
}

// Height returns the MediaBox height.
func (p *Page) Height() (float64, error) {
	box, err := p.MediaBox()
	if err != nil {
		return 0, err
	}
	return box[3] - box[1], nil
}

// Rotate returns the page rotation in degrees: 0, 90, 180 or 270.
func (p *Page) Rotate() int {
	n, _ := p.attr("Rotate").(core.Int)
	r := (int(n)%360 + 360) % 360
	return r - r%90
}

// Resources returns the resource dictionary, empty when the page has none.
func (p *Page) Resources() (core.Dict, error) {
	if p.attr("Resources") == nil {
		return core.Dict{}, nil
	}
	obj, err := p.r.Resolve(p.attr("Resources"))
	if err != nil {
		return nil, fmt.Errorf("/Resources: %w", err)
	}
	d, ok := obj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("/Resources is %T, not a dictionary", obj)
	}
	return d, nil
}

// Contents returns the content streams in drawing order. A page with no
// contents returns none.
func (p *Page) Contents() ([]*core.Stream, error) {
	obj, err := p.r.Resolve(p.dict.Get("Contents"))
	if err != nil {
		return nil, fmt.Errorf("/Contents: %w", err)
	}

	var elems core.Array
	switch v := obj.(type) {
	case nil, core.Null:
		return nil, nil
	case *core.Stream:
		return []*core.Stream{v}, nil
	case core.Array:
		elems = v
	default:
		return nil, fmt.Errorf("/Contents is %T", obj)
	}

	streams := make([]*core.Stream, len(elems))
	for i, elem := range elems {
		obj, err := p.r.Resolve(elem)
		if err != nil {
			return nil, fmt.Errorf("/Contents %d: %w", i, err)
		}
		s, ok := obj.(*core.Stream)
		if !ok {
			return nil, fmt.Errorf("/Contents %d is %T, not a stream", i, obj)
		}
		streams[i] = s
	}
	return streams, nil
}
