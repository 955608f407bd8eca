package format

import (
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"MUS_Long.pdf", PDF},
		{"judges.CSV", CSV},
		{"export.txt", CSV},
		{"report.htm", HTML},
		{"report.html", HTML},
		{"labels.rtf", RTF},
		{"packets.zip", ZIP},
		{"roster", Unknown},
		{"roster.xlsx", XLSX},
		{"roster.xls", Unknown},
	}
	for _, tt := range tests {
		if got := Detect(tt.name); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Format
	}{
		{"pdf", "%PDF-1.7\n", PDF},
		{"zip", "PK\x03\x04rest", ZIP},
		{"empty zip", "PK\x05\x06", ZIP},
		{"rtf", `{\rtf1\ansi`, RTF},
		{"doctype", "  <!doctype html><html>", HTML},
		{"bare table", "\n<table><tr>", HTML},
		{"xhtml", `<?xml version="1.0"?><html>`, HTML},
		{"csv", "Name,Category,Type\n", CSV},
		{"csv with bom", "\xef\xbb\xbfOA,Group Name\n", CSV},
		{"binary", "\xff\xfe\x00\x01", Unknown},
		{"empty", "", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic([]byte(tt.data)); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSniff(t *testing.T) {
	if got := Sniff("export", []byte("<html>")); got != HTML {
		t.Errorf("Sniff = %v, want HTML", got)
	}
	if got := Sniff("export.csv", []byte("<html>")); got != CSV {
		t.Errorf("extension should win, got %v", got)
	}
}

func TestFormatStrings(t *testing.T) {
	for _, f := range []Format{PDF, CSV, HTML, RTF, ZIP, XLSX, Unknown} {
		if f.String() == "" {
			t.Errorf("%d has no name", f)
		}
		if f != Unknown && Detect("x"+f.Extension()) != f {
			t.Errorf("Extension of %v does not detect back", f)
		}
	}
	if PDF.ContentType() != "application/pdf" || ZIP.ContentType() != "application/zip" || RTF.ContentType() != "application/rtf" {
		t.Error("unexpected content types")
	}
	if Unknown.ContentType() != "application/octet-stream" {
		t.Error("unknown content type")
	}
}

func TestDetectFromMagicSplitRune(t *testing.T) {
	// "é" straddles the sniff boundary
	data := strings.Repeat("a", sniffLen-1) + "é,x\n"
	if got := DetectFromMagic([]byte(data)); got != CSV {
		t.Errorf("got %v, want CSV", got)
	}
	if got := DetectFromMagic([]byte("abc\xc3")); got != Unknown {
		t.Errorf("short input ending mid rune = %v, want Unknown", got)
	}
	if got := Format(42).String(); got != "Unknown" {
		t.Errorf("out of range format = %q", got)
	}
}
