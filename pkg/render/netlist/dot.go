package netlist

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cabledraw/pkg/dsl"
)

// Options configures netlist diagram generation.
type Options struct {
	// Detailed adds the conductor color and shield treatment to edge labels.
	Detailed bool

	// ShowUnused draws connector positions no net lands on.
	ShowUnused bool
}

// dotColors maps conductor color names Graphviz does not know.
var dotColors = map[string]string{
	"green-yellow": "green:yellow",
	"grey":         "gray",
}

// ToDOT converts the nets of d to Graphviz DOT source.
func ToDOT(d *dsl.RenderDSL, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph netlist {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, width=0.4, height=0.3];\n")
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("  ranksep=3;\n")
	buf.WriteString("  nodesep=0.1;\n")
	buf.WriteString("\n")

	usedA := make(map[string]bool)
	usedB := make(map[string]bool)
	for _, n := range d.Nets {
		usedA[n.EndAPin] = true
		usedB[n.EndBPin] = true
	}

	writeCluster(&buf, "A", "End A", d.EndA, pins(d.EndA, usedA, opts.ShowUnused), usedA)
	writeCluster(&buf, "B", "End B", d.EndB, pins(d.EndB, usedB, opts.ShowUnused), usedB)

	buf.WriteString("\n")
	for _, n := range d.Nets {
		attrs := []string{fmt.Sprintf("label=%q", edgeLabel(n, opts.Detailed))}
		if c := dotColor(n.Color); c != "" {
			attrs = append(attrs, fmt.Sprintf("color=%q", c))
		}
		if n.Shield != "" && n.Shield != dsl.NetShieldNone {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", pinID("A", n.EndAPin), pinID("B", n.EndBPin), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeCluster(buf *bytes.Buffer, side, title string, e dsl.Endpoint, pins []string, used map[string]bool) {
	fmt.Fprintf(buf, "  subgraph cluster_end%s {\n", side)
	fmt.Fprintf(buf, "    label=%q;\n", fmt.Sprintf("%s\n%s (%s)", title, e.ConnectorMPN, e.Type))
	buf.WriteString("    style=rounded;\n")
	for _, p := range pins {
		attrs := []string{fmt.Sprintf("label=%q", p)}
		if !used[p] {
			attrs = append(attrs, "style=\"rounded,dashed\"", "fontcolor=gray")
		}
		fmt.Fprintf(buf, "    %q [%s];\n", pinID(side, p), strings.Join(attrs, ", "))
	}
	buf.WriteString("  }\n")
}

// pins lists the pins of e in drawing order: the used pins in net order,
// followed by the unused numeric positions when requested.
func pins(e dsl.Endpoint, used map[string]bool, showUnused bool) []string {
	var out []string
	seen := make(map[string]bool)
	if showUnused {
		for i := 1; i <= e.Positions; i++ {
			p := strconv.Itoa(i)
			out = append(out, p)
			seen[p] = true
		}
	}
	var extra []string
	for p := range used {
		if !seen[p] {
			extra = append(extra, p)
		}
	}
	sortPins(extra)
	return append(out, extra...)
}

// sortPins orders pin names numerically where possible, then lexically.
func sortPins(ps []string) {
	sort.Slice(ps, func(i, j int) bool {
		ai, aerr := strconv.Atoi(ps[i])
		bi, berr := strconv.Atoi(ps[j])
		switch {
		case aerr == nil && berr == nil:
			return ai < bi
		case aerr == nil:
			return true
		case berr == nil:
			return false
		}
		return ps[i] < ps[j]
	})
}

func pinID(side, pin string) string {
	return side + ":" + pin
}

func edgeLabel(n dsl.Net, detailed bool) string {
	if !detailed {
		return n.Circuit
	}
	parts := []string{n.Circuit}
	if n.Color != "" {
		parts = append(parts, n.Color)
	}
	if n.Shield != "" && n.Shield != dsl.NetShieldNone {
		parts = append(parts, "shield: "+n.Shield)
	}
	return strings.Join(parts, "\n")
}

func dotColor(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if mapped, ok := dotColors[c]; ok {
		return mapped
	}
	return c
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root element with one
// that scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
