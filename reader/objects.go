package reader

import (
	"fmt"

	"github.com/tsawler/judgeforms/core"
)

// GetObject loads an object by its number. Objects inside object streams
// are resolved transparently. Results are cached.
func (r *Reader) GetObject(objNum int) (core.Object, error) {
	if obj, ok := r.objCache[objNum]; ok {
		return obj, nil
	}

	entry, ok := r.xrefTable.Get(objNum)
	if !ok || !entry.InUse {
		// A reference to a missing or free object is the null object
		return core.Null{}, nil
	}

	if r.loading[objNum] {
		return nil, fmt.Errorf("object %d refers to itself while loading", objNum)
	}
	r.loading[objNum] = true
	defer delete(r.loading, objNum)

	var obj core.Object
	var err error
	switch entry.Type {
	case core.XRefEntryCompressed:
		obj, err = r.getCompressed(objNum, int(entry.Offset))
	default:
		obj, err = r.parseAt(objNum, entry.Offset)
	}
	if err != nil {
		return nil, err
	}

	r.objCache[objNum] = obj
	return obj, nil
}

func (r *Reader) parseAt(objNum int, offset int64) (core.Object, error) {
	if offset < 0 || offset >= int64(len(r.data)) {
		return nil, fmt.Errorf("object %d offset %d outside file", objNum, offset)
	}

	parser := core.NewParser(r.data[offset:])
	parser.SetReferenceResolver(r)
	indObj, err := parser.ParseIndirectObject()
	if err != nil {
		return nil, fmt.Errorf("failed to parse object %d: %w", objNum, err)
	}

	if indObj.Ref.Number != objNum {
		return nil, fmt.Errorf("object number mismatch: expected %d, got %d", objNum, indObj.Ref.Number)
	}

	return indObj.Object, nil
}

// getCompressed finds objNum in object stream stmNum, following /Extends
// when the stream does not hold it.
func (r *Reader) getCompressed(objNum, stmNum int) (core.Object, error) {
	seen := map[int]bool{}
	for num := stmNum; !seen[num]; {
		seen[num] = true
		objStm, err := r.objectStream(num)
		if err != nil {
			return nil, err
		}
		if obj, ok := objStm.Get(objNum); ok {
			return obj, nil
		}
		next := objStm.Extends()
		if next == nil {
			break
		}
		num = next.Number
	}
	return nil, fmt.Errorf("object %d not found in object stream %d", objNum, stmNum)
}

func (r *Reader) objectStream(num int) (*core.ObjectStream, error) {
	if objStm, ok := r.objStms[num]; ok {
		return objStm, nil
	}
	obj, err := r.GetObject(num)
	if err != nil {
		return nil, fmt.Errorf("object stream %d: %w", num, err)
	}
	stream, ok := obj.(*core.Stream)
	if !ok {
		return nil, fmt.Errorf("object stream %d is %T", num, obj)
	}
	objStm, err := core.NewObjectStream(stream)
	if err != nil {
		return nil, fmt.Errorf("object stream %d: %w", num, err)
	}
	r.objStms[num] = objStm
	return objStm, nil
}

// ResolveReference resolves an indirect reference
func (r *Reader) ResolveReference(ref core.IndirectRef) (core.Object, error) {
	return r.GetObject(ref.Number)
}

// Resolve resolves obj if it is an indirect reference, otherwise returns it as-is
func (r *Reader) Resolve(obj core.Object) (core.Object, error) {
	if ref, ok := obj.(core.IndirectRef); ok {
		return r.ResolveReference(ref)
	}
	return obj, nil
}
