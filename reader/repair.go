package reader

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"github.com/tsawler/judgeforms/core"
)

var objHeaderRe = regexp.MustCompile(`(?m)(?:^|[\r\n\s])(\d+)\s+(\d+)\s+obj\b`)

// rebuildXRef scans the whole file for "n g obj" headers. Later definitions
// win, as they would in an incremental update.
func (r *Reader) rebuildXRef() (*core.XRefTable, error) {
	table := core.NewXRefTable()
	for _, m := range objHeaderRe.FindAllSubmatchIndex(r.data, -1) {
		num, err1 := strconv.Atoi(string(r.data[m[2]:m[3]]))
		gen, err2 := strconv.Atoi(string(r.data[m[4]:m[5]]))
		if err1 != nil || err2 != nil {
			continue
		}
		table.Set(num, &core.XRefEntry{
			Type:       core.XRefEntryUncompressed,
			Offset:     int64(m[2]),
			Generation: gen,
			InUse:      true,
		})
	}
	if table.Size() == 0 {
		return nil, fmt.Errorf("no objects found")
	}

	// Use the last classic trailer if there is one
	if idx := bytes.LastIndex(r.data, []byte("trailer")); idx >= 0 {
		p := core.NewParser(r.data[idx+len("trailer"):])
		if obj, err := p.ParseObject(); err == nil {
			if d, ok := obj.(core.Dict); ok {
				table.Trailer = d
			}
		}
	}
	if table.Trailer.Has("Root") {
		return table, nil
	}

	// Otherwise look for the catalog, or an xref stream dictionary naming it
	r.xrefTable = table
	for num := range table.Entries {
		obj, err := r.parseAt(num, table.Entries[num].Offset)
		if err != nil {
			continue
		}
		var d core.Dict
		switch v := obj.(type) {
		case core.Dict:
			d = v
		case *core.Stream:
			d = v.Dict
		}
		if t, _ := d.GetName("Type"); t == "Catalog" {
			table.Trailer = core.Dict{"Root": core.IndirectRef{Number: num}, "Size": core.Int(table.Size() + 1)}
			return table, nil
		}
		if root, ok := d.GetIndirectRef("Root"); ok {
			table.Trailer = core.Dict{"Root": root, "Size": core.Int(table.Size() + 1)}
			return table, nil
		}
	}
	return nil, fmt.Errorf("document catalog not found")
}
