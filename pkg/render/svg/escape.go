package svg

import (
	"bytes"
	"encoding/xml"
	"strings"
	"unicode"
)

// escape XML-escapes text and attribute values.
func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// idPart makes s usable inside an id attribute: whitespace becomes "_" and
// the result is escaped.
func idPart(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, s)
	return escape(s)
}
