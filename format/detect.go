// Package format identifies the kinds of files judgeforms reads and writes.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format is a file kind. The zero value is Unknown.
type Format int

const (
	Unknown Format = iota
	PDF
	CSV
	HTML
	RTF
	ZIP
	XLSX
)

type kind struct {
	name string
	exts []string // the first is the one written
	mime string
}

var kinds = [...]kind{
	Unknown: {"Unknown", nil, "application/octet-stream"},
	PDF:     {"PDF", []string{".pdf"}, "application/pdf"},
	CSV:     {"CSV", []string{".csv", ".txt"}, "text/csv"},
	HTML:    {"HTML", []string{".html", ".htm"}, "text/html"},
	RTF:     {"RTF", []string{".rtf"}, "application/rtf"},
	ZIP:     {"ZIP", []string{".zip"}, "application/zip"},
	XLSX:    {"XLSX", []string{".xlsx"}, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
}

func (f Format) kind() kind {
	if f < 0 || int(f) >= len(kinds) {
		return kinds[Unknown]
	}
	return kinds[f]
}

func (f Format) String() string { return f.kind().name }

// Extension returns the extension used for new files, with its dot, or ""
// for Unknown.
func (f Format) Extension() string {
	if exts := f.kind().exts; len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// ContentType is the MIME type sent when the file is downloaded.
func (f Format) ContentType() string { return f.kind().mime }

// Detect goes by the file name's extension alone.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return Unknown
	}
	for f, k := range kinds {
		for _, e := range k.exts {
			if e == ext {
				return Format(f)
			}
		}
	}
	return Unknown
}

var signatures = []struct {
	prefix string
	format Format
}{
	{"%PDF", PDF},
	{"PK\x03\x04", ZIP},
	{"PK\x05\x06", ZIP}, // empty archive
	{`{\rtf`, RTF},
}

var htmlStarts = []string{"<!DOCTYPE HTML", "<HTML", "<TABLE", "<!--"}

const sniffLen = 512

// DetectFromMagic goes by the leading bytes. A spreadsheet is a ZIP archive
// and reports as ZIP. Text that is valid UTF-8 and not HTML reports as CSV.
func DetectFromMagic(data []byte) Format {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	for _, sig := range signatures {
		if bytes.HasPrefix(data, []byte(sig.prefix)) {
			return sig.format
		}
	}
	if len(data) == 0 {
		return Unknown
	}
	head := data[:min(len(data), sniffLen)]
	if looksLikeHTML(head) {
		return HTML
	}
	if validPrefix(head, len(data) > sniffLen) {
		return CSV
	}
	return Unknown
}

func looksLikeHTML(head []byte) bool {
	head = bytes.ToUpper(bytes.TrimLeft(head, " \t\r\n"))
	for _, s := range htmlStarts {
		if bytes.HasPrefix(head, []byte(s)) {
			return true
		}
	}
	return bytes.HasPrefix(head, []byte("<?XML")) && bytes.Contains(head, []byte("<HTML"))
}

// validPrefix reports whether head is UTF-8. When head was cut from longer
// input a rune split at the cut is allowed.
func validPrefix(head []byte, cut bool) bool {
	if utf8.Valid(head) {
		return true
	}
	if !cut {
		return false
	}
	for i := 1; i < utf8.UTFMax && i < len(head); i++ {
		if utf8.Valid(head[:len(head)-i]) {
			return true
		}
	}
	return false
}

// Sniff trusts a known extension and otherwise looks at head.
func Sniff(filename string, head []byte) Format {
	if f := Detect(filename); f != Unknown {
		return f
	}
	return DetectFromMagic(head)
}
