package templatepack

import (
	"regexp"
	"sort"
	"strings"
)

// Well-known symbol names placed by the renderer when a pack provides them.
const (
	SymbolTitleblock = "titleblock"
	SymbolNotesTable = "notes-table"
)

// Pack is a loaded template pack.
type Pack struct {
	Manifest Manifest
	// Dir is the directory name the pack was loaded from, e.g. "STD-A3-IPC620@1.1.0".
	Dir     string
	Symbols map[string]Symbol
}

// Symbol is a reusable SVG fragment with its outer <svg> wrapper removed.
type Symbol struct {
	Name    string
	ViewBox string
	Body    string
}

// SymbolNames returns the symbol names in sorted order.
func (p *Pack) SymbolNames() []string {
	names := make([]string, 0, len(p.Symbols))
	for name := range p.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasSymbol reports whether the pack defines name.
func (p *Pack) HasSymbol(name string) bool {
	_, ok := p.Symbols[name]
	return ok
}

var viewBoxRegex = regexp.MustCompile(`viewBox\s*=\s*"([^"]*)"`)

// ParseSymbol strips the XML declaration and outer <svg> element of a symbol
// file, keeping the root viewBox. Content without an <svg> root is kept as is.
func ParseSymbol(name, content string) Symbol {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "<?xml") {
		if end := strings.Index(s, "?>"); end >= 0 {
			s = strings.TrimSpace(s[end+2:])
		}
	}
	sym := Symbol{Name: name}
	if strings.HasPrefix(s, "<svg") {
		open := strings.Index(s, ">")
		closeTag := strings.LastIndex(s, "</svg>")
		if open >= 0 && closeTag > open {
			if m := viewBoxRegex.FindStringSubmatch(s[:open]); m != nil {
				sym.ViewBox = m[1]
			}
			s = strings.TrimSpace(s[open+1 : closeTag])
		}
	}
	sym.Body = s
	return sym
}
