package compose

import (
	"fmt"

	"github.com/tsawler/judgeforms/pages"
	"github.com/tsawler/judgeforms/reader"
	"github.com/tsawler/judgeforms/writer"
)

// Template is a form PDF whose pages are copied into generated documents.
type Template struct {
	Name   string
	reader *reader.Reader
	pages  []*pages.Page
}

// OpenTemplate reads a template from disk.
func OpenTemplate(path string) (*Template, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return NewTemplate(path, r)
}

// ParseTemplate reads a template held in memory.
func ParseTemplate(name string, data []byte) (*Template, error) {
	r, err := reader.NewReader(data)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	return NewTemplate(name, r)
}

// NewTemplate wraps an open reader. A template must have at least one page.
func NewTemplate(name string, r *reader.Reader) (*Template, error) {
	ps, err := r.Pages()
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	if len(ps) == 0 {
		return nil, fmt.Errorf("template %s has no pages", name)
	}
	return &Template{Name: name, reader: r, pages: ps}, nil
}

// Repaired reports whether the template's cross-reference data was damaged
// and had to be rebuilt.
func (t *Template) Repaired() bool {
	return t.reader.Repaired()
}

// Version returns the PDF version from the template header.
func (t *Template) Version() string {
	return t.reader.Version().String()
}

// PageCount returns the number of pages in the template.
func (t *Template) PageCount() int {
	return len(t.pages)
}

// ImportPage copies template page i into doc.
func (t *Template) ImportPage(doc *writer.Document, i int) (*writer.Page, error) {
	if i < 0 || i >= len(t.pages) {
		return nil, fmt.Errorf("template %s: page %d out of range", t.Name, i)
	}
	p, err := doc.ImportPage(t.pages[i], t.reader)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", t.Name, err)
	}
	return p, nil
}

// ImportAll copies every template page into doc and returns how many were
// added.
func (t *Template) ImportAll(doc *writer.Document) (int, error) {
	for i := range t.pages {
		if _, err := t.ImportPage(doc, i); err != nil {
			return i, err
		}
	}
	return len(t.pages), nil
}
