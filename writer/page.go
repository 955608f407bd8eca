package writer

import (
	"fmt"

	"github.com/tsawler/judgeforms/core"
)

// Page is a page of a Document. Dict is the page dictionary that will be
// written; callers go through the methods below to change it.
type Page struct {
	doc  *Document
	ref  core.IndirectRef
	Dict core.Dict

	owned map[string]bool // resource dictionaries already copied for this page
}

// Ref returns the page object's reference.
func (p *Page) Ref() core.IndirectRef {
	return p.ref
}

// Document returns the document the page belongs to.
func (p *Page) Document() *Document {
	return p.doc
}

// MediaBox returns [llx lly urx ury].
func (p *Page) MediaBox() ([]float64, error) {
	arr, ok := p.doc.Resolve(p.Dict.Get("MediaBox")).(core.Array)
	if !ok || len(arr) != 4 {
		return nil, fmt.Errorf("page %d: invalid MediaBox", p.ref.Number)
	}
	box := make([]float64, 4)
	for i, v := range arr {
		f, ok := core.Number(p.doc.Resolve(v))
		if !ok {
			return nil, fmt.Errorf("page %d: invalid MediaBox entry %v", p.ref.Number, v)
		}
		box[i] = f
	}
	return box, nil
}

// Size returns the page width and height.
func (p *Page) Size() (float64, float64, error) {
	box, err := p.MediaBox()
	if err != nil {
		return 0, 0, err
	}
	return box[2] - box[0], box[3] - box[1], nil
}

// Resources returns the page's own resource dictionary. A shared or
// indirect dictionary is copied into the page first so edits stay local.
func (p *Page) Resources() core.Dict {
	return p.ownDict(p.Dict, "Resources")
}

// ResourceCategory returns the page-local sub-dictionary of Resources for
// category (Font, XObject, ExtGState, ...), creating it when absent.
func (p *Page) ResourceCategory(category string) core.Dict {
	return p.ownDict(p.Resources(), category)
}

// ownDict makes parent[key] a dictionary private to this page. The first
// call copies whatever was there, since imported pages share resource
// dictionaries with every other import of the same template.
func (p *Page) ownDict(parent core.Dict, key string) core.Dict {
	if p.owned[key] {
		if d, ok := parent[key].(core.Dict); ok {
			return d
		}
	}
	src, _ := p.doc.Resolve(parent.Get(key)).(core.Dict)
	own := make(core.Dict, len(src))
	for k, v := range src {
		own[k] = v
	}
	parent[key] = own
	if p.owned == nil {
		p.owned = make(map[string]bool)
	}
	p.owned[key] = true
	return own
}

// AddResource registers obj under category with a name derived from
// prefix that does not collide with any existing resource, and returns the
// chosen name. An identical reference already present is reused.
func (p *Page) AddResource(category, prefix string, obj core.Object) string {
	dict := p.ResourceCategory(category)
	if ref, ok := obj.(core.IndirectRef); ok {
		for _, k := range dict.SortedKeys() {
			if dict[k] == ref {
				return k
			}
		}
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s%d", prefix, i)
		if !dict.Has(name) {
			dict[name] = obj
			return name
		}
	}
}

// Contents returns the page's content stream references in order. A
// reference to an array of streams is replaced by the array's elements.
func (p *Page) Contents() core.Array {
	obj := p.Dict.Get("Contents")
	if ref, ok := obj.(core.IndirectRef); ok {
		if arr, ok := p.doc.Resolve(ref).(core.Array); ok {
			return append(core.Array(nil), arr...)
		}
		return core.Array{ref}
	}
	switch v := obj.(type) {
	case core.Array:
		return append(core.Array(nil), v...)
	default:
		return nil
	}
}

// WrapContents surrounds the existing content with before and after, each
// stored as its own stream so the original streams are left untouched.
func (p *Page) WrapContents(before, after []byte) error {
	contents := p.Contents()
	if before != nil {
		ref, err := p.doc.addContentStream(before)
		if err != nil {
			return err
		}
		contents = append(core.Array{ref}, contents...)
	}
	if after != nil {
		ref, err := p.doc.addContentStream(after)
		if err != nil {
			return err
		}
		contents = append(contents, ref)
	}
	p.Dict["Contents"] = contents
	return nil
}

// AppendContent adds a content stream after the existing ones.
func (p *Page) AppendContent(data []byte) error {
	return p.WrapContents(nil, data)
}

func (d *Document) addContentStream(data []byte) (core.IndirectRef, error) {
	if !d.compress {
		return d.Add(core.NewStream(nil, data)), nil
	}
	s, err := core.NewFlateStream(nil, data)
	if err != nil {
		return core.IndirectRef{}, err
	}
	return d.Add(s), nil
}
