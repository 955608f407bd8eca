package core

import "fmt"

// ObjectStream holds the objects packed into a /Type /ObjStm stream. The
// stream is decoded and every object parsed when it is opened.
type ObjectStream struct {
	extends *IndirectRef
	order   []int
	objects map[int]Object
}

type objStmEntry struct {
	num, offset int
}

// NewObjectStream decodes stream and parses the objects it holds. An object
// that fails to parse is left out; looking it up reports it missing.
func NewObjectStream(stream *Stream) (*ObjectStream, error) {
	if stream == nil {
		return nil, fmt.Errorf("object stream is nil")
	}
	d := stream.Dict
	if t, _ := d.GetName("Type"); t != "ObjStm" {
		return nil, fmt.Errorf("not an object stream: /Type %v", d.Get("Type"))
	}
	n, ok := d.GetInt("N")
	if !ok || n < 0 {
		return nil, fmt.Errorf("object stream: invalid /N %v", d.Get("N"))
	}
	first, ok := d.GetInt("First")
	if !ok || first < 0 {
		return nil, fmt.Errorf("object stream: invalid /First %v", d.Get("First"))
	}

	os := &ObjectStream{objects: make(map[int]Object, n)}
	if ext := d.Get("Extends"); ext != nil {
		ref, ok := ext.(IndirectRef)
		if !ok {
			return nil, fmt.Errorf("object stream: invalid /Extends %v", ext)
		}
		os.extends = &ref
	}

	data, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("object stream: %w", err)
	}
	if int(first) > len(data) {
		return nil, fmt.Errorf("object stream: /First %d past the %d decoded bytes", first, len(data))
	}

	entries, err := objStmHeader(data[:first], int(n))
	if err != nil {
		return nil, err
	}
	body := data[first:]
	for i, e := range entries {
		// each object ends where the next begins
		end := len(body)
		if i+1 < len(entries) && entries[i+1].offset >= e.offset {
			end = min(entries[i+1].offset, end)
		}
		if e.offset > end {
			continue
		}
		obj, err := NewParser(body[e.offset:end]).ParseObject()
		if err != nil {
			continue
		}
		if _, dup := os.objects[e.num]; !dup {
			os.order = append(os.order, e.num)
			os.objects[e.num] = obj
		}
	}
	return os, nil
}

// objStmHeader reads the n pairs of object number and offset.
func objStmHeader(header []byte, n int) ([]objStmEntry, error) {
	p := NewParser(header)
	entries := make([]objStmEntry, 0, n)
	for i := 0; i < n; i++ {
		var pair [2]int
		for j := range pair {
			obj, err := p.ParseObject()
			if err != nil {
				return nil, fmt.Errorf("object stream header entry %d: %w", i, err)
			}
			v, ok := obj.(Int)
			if !ok || v < 0 {
				return nil, fmt.Errorf("object stream header entry %d: %v is not a count", i, obj)
			}
			pair[j] = int(v)
		}
		entries = append(entries, objStmEntry{num: pair[0], offset: pair[1]})
	}
	return entries, nil
}

// Get returns object num if the stream holds it.
func (os *ObjectStream) Get(num int) (Object, bool) {
	obj, ok := os.objects[num]
	return obj, ok
}

// Numbers returns the object numbers in header order.
func (os *ObjectStream) Numbers() []int {
	return append([]int(nil), os.order...)
}

// Extends returns the object stream this one extends, or nil.
func (os *ObjectStream) Extends() *IndirectRef {
	return os.extends
}
