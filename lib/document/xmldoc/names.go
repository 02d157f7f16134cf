package xmldoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// escapeRE matches an encoded character, _xHHHH_ or _xHHHHHHHH_
	escapeRE = regexp.MustCompile(`_x([0-9A-Fa-f]{4}|[0-9A-Fa-f]{8})_`)
	// escapePrefixRE matches an encoded character at the start of a string
	escapePrefixRE = regexp.MustCompile(`^_x([0-9A-Fa-f]{4}|[0-9A-Fa-f]{8})_`)
)

// EncodeName turns an arbitrary string into a valid xml element name.
// Characters that are not allowed at their position are written as _xHHHH_
// (the hex code point). An underscore that would be read back as the start
// of such an escape is escaped itself, so DecodeName(EncodeName(s)) == s.
func EncodeName(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r == '_' && escapePrefixRE.MatchString(name[i:]):
			writeEscape(&sb, r)
		case i == 0 && isNameStartChar(r), i > 0 && isNameChar(r):
			sb.WriteRune(r)
		default:
			writeEscape(&sb, r)
		}
	}
	return sb.String()
}

// DecodeName reverses EncodeName
func DecodeName(name string) string {
	return escapeRE.ReplaceAllStringFunc(name, func(m string) string {
		code, err := strconv.ParseUint(m[2:len(m)-1], 16, 32)
		if err != nil {
			return m
		}
		return string(rune(code))
	})
}

func writeEscape(sb *strings.Builder, r rune) {
	if r > 0xFFFF {
		sb.WriteString(fmt.Sprintf("_x%08X_", r))
		return
	}
	sb.WriteString(fmt.Sprintf("_x%04X_", r))
}

func isNameStartChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStartChar(r) || unicode.IsDigit(r) || r == '-' || r == '.' ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}
