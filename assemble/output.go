package assemble

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/tsawler/judgeforms/format"
)

// Output is one generated blob, ready to be saved or offered for download.
type Output struct {
	Name        string
	ContentType string
	Data        []byte
	Documents   int // files inside, 1 for a single PDF or RTF
	Pages       int // PDF pages across all documents
}

// Kind returns the format of the blob, derived from its name.
func (o *Output) Kind() format.Format {
	return format.Detect(o.Name)
}

// file is a generated document before packaging.
type file struct {
	name  string
	data  []byte
	pages int
}

func single(f file) *Output {
	return &Output{
		Name:        f.name,
		ContentType: format.Detect(f.name).ContentType(),
		Data:        f.data,
		Documents:   1,
		Pages:       f.pages,
	}
}

// archive zips files under name. Entries are stamped with modified so the
// same input always yields the same bytes.
func archive(name string, files []file, modified time.Time) (*Output, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	seen := make(map[string]int)
	pages := 0
	for _, f := range files {
		hdr := &zip.FileHeader{
			Name:     uniqueName(seen, f.name),
			Method:   zip.Deflate,
			Modified: modified,
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("archive %s: %w", name, err)
		}
		if _, err := w.Write(f.data); err != nil {
			return nil, fmt.Errorf("archive %s: %w", name, err)
		}
		pages += f.pages
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("archive %s: %w", name, err)
	}
	return &Output{
		Name:        name,
		ContentType: format.ZIP.ContentType(),
		Data:        buf.Bytes(),
		Documents:   len(files),
		Pages:       pages,
	}, nil
}

// uniqueName numbers repeated entry names, as two judges may share a name.
func uniqueName(seen map[string]int, name string) string {
	seen[name]++
	if n := seen[name]; n > 1 {
		ext := path.Ext(name)
		return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n, ext)
	}
	return name
}

// SanitizeFilename makes s safe to use as part of a file name. Slashes
// become dashes; anything other than letters, digits, spaces, dashes and
// underscores is dropped.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '/' || r == '\\':
			b.WriteRune('-')
		case unicode.IsLetter(r), unicode.IsDigit(r), r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// fileName joins sanitized parts with underscores and replaces the spaces
// left inside them.
func fileName(ext string, parts ...string) string {
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = SanitizeFilename(p); p != "" {
			clean = append(clean, strings.ReplaceAll(p, " ", "_"))
		}
	}
	return strings.Join(clean, "_") + ext
}

// fileDate is the date as it appears in file names.
func fileDate(t time.Time) string {
	return t.Format("01-02-2006")
}
