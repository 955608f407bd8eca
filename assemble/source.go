package assemble

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/judgeforms/compose"
	"github.com/tsawler/judgeforms/roster"
)

// Variant is the form layout of a template.
type Variant string

const (
	// Long forms give each competitor one or more full pages.
	Long Variant = "Long"
	// Short forms hold two competitors on one page.
	Short Variant = "Short"
)

// Variants lists the variants in output order.
var Variants = []Variant{Long, Short}

// ParseVariant matches a variant name case-insensitively.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown form variant %q", s)
}

// TemplateKey identifies one template file.
type TemplateKey struct {
	Category roster.Category
	Variant  Variant
}

// String returns "{CAT}_{Variant}".
func (k TemplateKey) String() string {
	return string(k.Category) + "_" + string(k.Variant)
}

// FileName returns the template's file name inside a template directory.
func (k TemplateKey) FileName() string {
	return k.String() + ".pdf"
}

// ParseTemplateKey parses "MUS_Long" and friends.
func ParseTemplateKey(s string) (TemplateKey, error) {
	cat, variant, ok := strings.Cut(strings.TrimSuffix(strings.TrimSpace(s), ".pdf"), "_")
	if !ok {
		return TemplateKey{}, fmt.Errorf("template key %q: want CATEGORY_Variant", s)
	}
	c := roster.ParseCategory(cat)
	if !c.Known() {
		return TemplateKey{}, fmt.Errorf("template key %q: unknown category %q", s, cat)
	}
	v, err := ParseVariant(variant)
	if err != nil {
		return TemplateKey{}, fmt.Errorf("template key %q: %w", s, err)
	}
	return TemplateKey{Category: c, Variant: v}, nil
}

// ErrTemplateNotFound is returned by a TemplateSource that has no file for
// the requested key. Generation skips such templates.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateSource supplies parsed templates.
type TemplateSource interface {
	Template(key TemplateKey) (*compose.Template, error)
}

// DirSource loads templates from a directory.
type DirSource struct {
	Dir string
}

// NewDirSource returns a source reading {CAT}_{Variant}.pdf files in dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// Template opens the file for key.
func (s *DirSource) Template(key TemplateKey) (*compose.Template, error) {
	path := filepath.Join(s.Dir, key.FileName())
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key.FileName(), ErrTemplateNotFound)
	}
	return compose.OpenTemplate(path)
}

// MemorySource serves templates held in memory, keyed like a template
// directory.
type MemorySource map[TemplateKey][]byte

// Template parses the bytes stored for key.
func (s MemorySource) Template(key TemplateKey) (*compose.Template, error) {
	data, ok := s[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key.FileName(), ErrTemplateNotFound)
	}
	return compose.ParseTemplate(key.FileName(), data)
}
