package labels

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var escaper = strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`)

// Escape protects the three characters RTF treats as syntax: backslash and
// both braces. Nothing else is changed.
func Escape(s string) string {
	return escaper.Replace(s)
}

// text escapes s and writes characters outside ASCII as \uN? so the file
// stays 7-bit clean. The '?' is the fallback \uc1 tells readers to skip.
func text(s string) string {
	s = Escape(s)
	if isASCII(s) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		case r > 0xFFFF:
			// outside the BMP: a UTF-16 surrogate pair
			r -= 0x10000
			fmt.Fprintf(&b, `\u%d?\u%d?`, int16(0xD800+(r>>10)), int16(0xDC00+(r&0x3FF)))
		default:
			fmt.Fprintf(&b, `\u%d?`, int16(r))
		}
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
