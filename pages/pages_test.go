package pages

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/tsawler/judgeforms/core"
)

type mapResolver map[int]core.Object

func (m mapResolver) Resolve(obj core.Object) (core.Object, error) {
	if ref, ok := obj.(core.IndirectRef); ok {
		return m.ResolveReference(ref)
	}
	return obj, nil
}

func (m mapResolver) ResolveReference(ref core.IndirectRef) (core.Object, error) {
	obj, ok := m[ref.Number]
	if !ok {
		return nil, fmt.Errorf("object %d not found", ref.Number)
	}
	return obj, nil
}

func letter() core.Array {
	return core.Array{core.Int(0), core.Int(0), core.Int(612), core.Int(792)}
}

// twoLevelTree builds root(2) -> [inner(3) -> [page 4], page 5] with the
// MediaBox and Resources set on the root.
func twoLevelTree() (core.Dict, mapResolver) {
	res := mapResolver{}
	res[4] = core.Dict{"Type": core.Name("Page"), "Parent": core.IndirectRef{Number: 3}, "Contents": core.IndirectRef{Number: 6}}
	res[3] = core.Dict{"Type": core.Name("Pages"), "Kids": core.Array{core.IndirectRef{Number: 4}}, "Rotate": core.Int(-90)}
	res[5] = core.Dict{"Type": core.Name("Page"), "MediaBox": core.Array{core.Int(0), core.Int(0), core.Real(396), core.Int(612)}}
	res[6] = core.NewStream(nil, []byte("q Q"))
	root := core.Dict{
		"Type":      core.Name("Pages"),
		"Kids":      core.Array{core.IndirectRef{Number: 3}, core.IndirectRef{Number: 5}},
		"Count":     core.Int(99),
		"MediaBox":  letter(),
		"Resources": core.Dict{"Font": core.Dict{}},
	}
	res[2] = root
	return root, res
}

func catalog() core.Dict {
	return core.Dict{"Type": core.Name("Catalog"), "Pages": core.IndirectRef{Number: 2}}
}

func TestCollectErrors(t *testing.T) {
	_, res := twoLevelTree()
	if _, err := Collect(core.Dict{}, res); err == nil {
		t.Error("expected error for catalog without /Pages")
	}
	if _, err := Collect(core.Dict{"Pages": core.IndirectRef{Number: 9}}, res); err == nil {
		t.Error("expected error for an unresolvable /Pages")
	}
	if _, err := Collect(core.Dict{"Pages": core.Int(1)}, res); err == nil {
		t.Error("expected error for a /Pages that is not a dictionary")
	}
}

func TestCollectInheritance(t *testing.T) {
	_, res := twoLevelTree()
	pages, err := Collect(catalog(), res)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2 (walked, not /Count)", len(pages))
	}

	first := pages[0]
	box, err := first.MediaBox()
	if err != nil {
		t.Fatalf("MediaBox() error = %v", err)
	}
	if !reflect.DeepEqual(box, []float64{0, 0, 612, 792}) {
		t.Errorf("inherited MediaBox = %v", box)
	}
	if first.Rotate() != 270 {
		t.Errorf("Rotate() = %d, want 270", first.Rotate())
	}
	if ref, ok := first.Ref(); !ok || ref.Number != 4 {
		t.Errorf("Ref() = %v, %v", ref, ok)
	}
	contents, err := first.Contents()
	if err != nil || len(contents) != 1 {
		t.Fatalf("Contents() = %v, %v", contents, err)
	}

	second := pages[1]
	if w, _ := second.Width(); w != 396 {
		t.Errorf("own MediaBox width = %v, want 396", w)
	}
	if second.Rotate() != 0 {
		t.Errorf("sibling picked up Rotate %d", second.Rotate())
	}
	if c, err := second.Contents(); err != nil || c != nil {
		t.Errorf("Contents() of a blank page = %v, %v", c, err)
	}
}

func TestPageFlatten(t *testing.T) {
	root, res := twoLevelTree()
	pages, err := Collect(catalog(), res)
	if err != nil {
		t.Fatal(err)
	}

	flat := pages[0].Flatten()
	if flat.Has("Parent") {
		t.Error("Flatten kept /Parent")
	}
	for _, key := range []string{"MediaBox", "Resources", "Rotate"} {
		if !flat.Has(key) {
			t.Errorf("Flatten missing inherited /%s", key)
		}
	}
	flat["MediaBox"].(core.Array)[2] = core.Int(1)
	if root["MediaBox"].(core.Array)[2] != core.Int(612) {
		t.Error("Flatten shares arrays with the source tree")
	}
}

func TestCollectMalformed(t *testing.T) {
	res := mapResolver{}
	res[3] = core.Dict{"Type": core.Name("Pages"), "Kids": core.Array{core.IndirectRef{Number: 3}}}
	if _, err := Collect(core.Dict{"Pages": core.IndirectRef{Number: 3}}, res); err == nil {
		t.Error("expected error for a page tree cycle")
	}

	res[4] = core.Dict{"Type": core.Name("Pages"), "Kids": core.Int(1)}
	if _, err := Collect(core.Dict{"Pages": core.IndirectRef{Number: 4}}, res); err == nil {
		t.Error("expected error for non-array /Kids")
	}

	res[5] = core.Dict{"Type": core.Name("Pages"), "Kids": core.Array{core.Name("Page")}}
	if _, err := Collect(core.Dict{"Pages": core.IndirectRef{Number: 5}}, res); err == nil {
		t.Error("expected error for a kid that is not a dictionary")
	}
}

func TestPageBoxes(t *testing.T) {
	p := NewPage(core.Dict{
		"MediaBox": core.Array{core.Int(612), core.Int(792), core.Int(0), core.Int(0)},
	}, nil, mapResolver{})

	box, err := p.CropBox()
	if err != nil {
		t.Fatalf("CropBox() error = %v", err)
	}
	if !reflect.DeepEqual(box, []float64{0, 0, 612, 792}) {
		t.Errorf("CropBox() fallback = %v, want normalized MediaBox", box)
	}

	res, err := p.Resources()
	if err != nil || res == nil || len(res) != 0 {
		t.Errorf("Resources() = %v, %v; want empty dict", res, err)
	}

	if _, err := NewPage(core.Dict{}, nil, mapResolver{}).MediaBox(); err == nil {
		t.Error("expected error for missing MediaBox")
	}

	indirect := NewPage(core.Dict{"MediaBox": core.Array{core.Int(0), core.Int(0), core.IndirectRef{Number: 1}, core.Int(792)}},
		nil, mapResolver{1: core.Real(595.5)})
	if w, err := indirect.Width(); err != nil || w != 595.5 {
		t.Errorf("Width() with an indirect element = %v, %v", w, err)
	}

	if _, err := NewPage(core.Dict{"MediaBox": core.Array{core.Int(0)}}, nil, mapResolver{}).MediaBox(); err == nil {
		t.Error("expected error for a short MediaBox")
	}
}
