package svg

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/cabledraw/pkg/render/layout"
	"github.com/matzehuels/cabledraw/pkg/render/units"
	"github.com/matzehuels/cabledraw/pkg/templatepack"
)

// Option configures Encode.
type Option func(*encoder)

// WithoutComments omits the section comments.
func WithoutComments() Option { return func(e *encoder) { e.comments = false } }

type encoder struct {
	buf      bytes.Buffer
	ctx      *layout.Context
	id       string
	comments bool
}

var c = units.Coord

// Encode renders ctx as an SVG document.
func Encode(ctx *layout.Context, opts ...Option) []byte {
	e := &encoder{ctx: ctx, id: idPart(ctx.DSL.Meta.AssemblyID), comments: true}
	for _, opt := range opts {
		opt(e)
	}

	e.header()
	e.metadata()
	e.defs()
	e.style()
	e.connectors()
	e.pin1()
	e.wires()
	e.redStripe()
	e.dimension()
	e.labels()
	e.notes()
	e.qr()
	e.buf.WriteString("</svg>\n")
	return e.buf.Bytes()
}

func (e *encoder) section(name string) {
	if e.comments {
		fmt.Fprintf(&e.buf, "  <!-- %s -->\n", name)
	}
}

func (e *encoder) header() {
	vp := e.ctx.Viewport
	w, h := units.Number(vp.Width), units.Number(vp.Height)
	e.buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&e.buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%smm" height="%smm" viewBox="0 0 %s %s">`+"\n",
		w, h, w, h)
}

func (e *encoder) metadata() {
	d, m := e.ctx.DSL, e.ctx.Pack.Manifest
	e.buf.WriteString("  <metadata>\n")
	fmt.Fprintf(&e.buf, "    <assembly id=\"%s\" schema=\"%s\"/>\n", escape(d.Meta.AssemblyID), escape(d.Meta.SchemaHash))
	fmt.Fprintf(&e.buf, "    <template id=\"%s\" version=\"%s\" paper=\"%s\"/>\n", escape(m.ID), escape(m.Version), escape(m.Paper))
	fmt.Fprintf(&e.buf, "    <notes pack=\"%s\"/>\n", escape(d.NotesPack))
	e.buf.WriteString("  </metadata>\n")
}

func (e *encoder) hasRedStripe() bool {
	r := e.ctx.DSL.Cable.Ribbon
	return r != nil && r.HasRedStripe() && e.ctx.Routing.Ribbon != nil
}

func (e *encoder) defs() {
	e.buf.WriteString("  <defs>\n")
	if e.hasRedStripe() {
		e.buf.WriteString(`    <pattern id="red-stripe" width="2" height="2" patternUnits="userSpaceOnUse">` + "\n")
		e.buf.WriteString(`      <rect width="1" height="2" fill="red"/>` + "\n")
		e.buf.WriteString("    </pattern>\n")
	}
	p := e.ctx.Pack
	for _, name := range p.SymbolNames() {
		e.symbol(p.Symbols[name])
	}
	e.buf.WriteString("  </defs>\n")
}

func (e *encoder) symbol(s templatepack.Symbol) {
	if s.ViewBox != "" {
		fmt.Fprintf(&e.buf, "    <symbol id=\"sym-%s\" viewBox=\"%s\">\n", idPart(s.Name), escape(s.ViewBox))
	} else {
		fmt.Fprintf(&e.buf, "    <symbol id=\"sym-%s\">\n", idPart(s.Name))
	}
	for _, line := range strings.Split(s.Body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(&e.buf, "      %s\n", line)
		}
	}
	e.buf.WriteString("    </symbol>\n")
}

func (e *encoder) style() {
	s := e.ctx.Pack.Manifest.Styles
	col := templatepack.Colors{
		Primary:   escape(s.Colors.Primary),
		Secondary: escape(s.Colors.Secondary),
		Accent:    escape(s.Colors.Accent),
	}
	e.buf.WriteString("  <style>\n")
	fmt.Fprintf(&e.buf, "    .connector { fill: none; stroke: %s; stroke-width: %s; }\n", col.Primary, units.Number(s.LineWidth))
	e.buf.WriteString("    .wire { fill: none; stroke-width: 0.25; }\n")
	fmt.Fprintf(&e.buf, "    .dimension { fill: none; stroke: %s; stroke-width: 0.2; }\n", col.Primary)
	fmt.Fprintf(&e.buf, "    .text { font-family: %s; font-size: %spx; fill: %s; stroke: none; }\n", escape(s.Font), units.Number(s.FontSize), col.Primary)
	fmt.Fprintf(&e.buf, "    .label { font-size: %spx; }\n", units.Number(s.LabelFontSize()))
	fmt.Fprintf(&e.buf, "    .secondary { fill: %s; }\n", col.Secondary)
	fmt.Fprintf(&e.buf, "    .accent { fill: %s; }\n", col.Accent)
	e.buf.WriteString("  </style>\n")
}

func (e *encoder) connectors() {
	e.section("Connectors")
	t := e.ctx.Topology
	d := e.ctx.DSL
	for _, end := range []struct {
		name string
		box  layout.Rect
		mpn  string
	}{
		{"endA", t.EndA, d.EndA.ConnectorMPN},
		{"endB", t.EndB, d.EndB.ConnectorMPN},
	} {
		b := end.box
		fmt.Fprintf(&e.buf, "  <rect id=\"%s-%s\" class=\"connector\" x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\"/>\n",
			e.id, end.name, c(b.X), c(b.Y), c(b.Width), c(b.Height))
		fmt.Fprintf(&e.buf, "  <text id=\"%s-%s-mpn\" x=\"%s\" y=\"%s\" class=\"text label secondary\" text-anchor=\"middle\">%s</text>\n",
			e.id, end.name, c(b.CenterX()), c(b.Bottom()+e.ctx.Pack.Manifest.Styles.FontSize), escape(end.mpn))
	}
}

func (e *encoder) pin1() {
	e.section("Pin-1 Indicators")
	t := e.ctx.Topology
	fmt.Fprintf(&e.buf, "  <circle id=\"%s-pin1-L\" cx=\"%s\" cy=\"%s\" r=\"1\" fill=\"black\"/>\n",
		e.id, c(t.EndA.X-3), c(t.EndA.Y+2))
	fmt.Fprintf(&e.buf, "  <circle id=\"%s-pin1-R\" cx=\"%s\" cy=\"%s\" r=\"1\" fill=\"black\"/>\n",
		e.id, c(t.EndB.Right()+3), c(t.EndB.Y+2))
}

func (e *encoder) wires() {
	e.section("Wires")
	seen := make(map[string]int)
	for _, p := range e.ctx.Routing.Paths {
		id := idPart(p.Circuit)
		seen[id]++
		if n := seen[id]; n > 1 {
			id += "-" + strconv.Itoa(n)
		}
		color := p.Color
		if color == "" {
			color = "black"
		}
		fmt.Fprintf(&e.buf, "  <path id=\"%s-net-%s\" class=\"wire\" d=\"%s\" stroke=\"%s\"/>\n",
			e.id, id, pathData(p.Points), escape(color))
	}
}

func pathData(points []layout.Point) string {
	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString("L ")
		}
		b.WriteString(c(p.X))
		b.WriteByte(',')
		b.WriteString(c(p.Y))
	}
	return b.String()
}

func (e *encoder) redStripe() {
	if !e.hasRedStripe() {
		return
	}
	e.section("Red Stripe")
	r := e.ctx.Routing.Ribbon
	fmt.Fprintf(&e.buf, "  <rect id=\"%s-red-stripe\" x=\"%s\" y=\"%s\" width=\"%s\" height=\"1\" fill=\"url(#red-stripe)\"/>\n",
		e.id, c(r.StartX), c(r.StartY-0.5), c(r.EndX-r.StartX))
}

func (e *encoder) dimension() {
	e.section("Dimensions")
	o := e.ctx.Dimension.OAL
	fmt.Fprintf(&e.buf, "  <g id=\"%s-dim-oal\" class=\"dimension\">\n", e.id)
	for _, l := range o.Segments {
		e.line(l)
	}
	if len(o.Break) > 0 {
		fmt.Fprintf(&e.buf, "    <path id=\"%s-dim-oal-break\" d=\"%s\" fill=\"none\" stroke=\"black\" stroke-width=\"0.2\"/>\n",
			e.id, pathData(o.Break))
	}
	for _, l := range o.Ticks {
		e.line(l)
	}
	fmt.Fprintf(&e.buf, "    <text x=\"%s\" y=\"%s\" class=\"text\" text-anchor=\"middle\">%s</text>\n",
		c(o.Text.X), c(o.Text.Y), escape(layout.DimensionText(o)))
	e.buf.WriteString("  </g>\n")
}

func (e *encoder) line(l layout.Line) {
	fmt.Fprintf(&e.buf, "    <line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\"/>\n", c(l.X1), c(l.Y1), c(l.X2), c(l.Y2))
}

func (e *encoder) labels() {
	placed := e.ctx.Labels.Labels
	if len(placed) == 0 {
		return
	}
	e.section("Labels")
	for i, p := range placed {
		fmt.Fprintf(&e.buf, "  <text id=\"%s-label-%d\" x=\"%s\" y=\"%s\" class=\"text label\">%s</text>\n",
			e.id, i, c(p.X), c(p.Y), escape(p.Label.Text))
	}
}

func (e *encoder) notes() {
	d, n := e.ctx.DSL, e.ctx.Notes
	if d.NotesPack == "" && len(n.Symbols) == 0 {
		return
	}
	e.section("Notes")
	fmt.Fprintf(&e.buf, "  <g id=\"%s-notes\">\n", e.id)
	if d.NotesPack != "" {
		fmt.Fprintf(&e.buf, "    <text x=\"%s\" y=\"%s\" class=\"text label\">Notes: %s</text>\n",
			c(n.Text.X), c(n.Text.Y), escape(d.NotesPack))
	}
	for _, s := range n.Symbols {
		fmt.Fprintf(&e.buf, "    <use id=\"%s-%s\" href=\"#sym-%s\" xlink:href=\"#sym-%s\" x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\"/>\n",
			e.id, idPart(s.Name), idPart(s.Name), idPart(s.Name), c(s.X), c(s.Y), c(s.Width), c(s.Height))
	}
	e.buf.WriteString("  </g>\n")
}

func (e *encoder) qr() {
	d := e.ctx.DSL
	if d.QR == "" {
		return
	}
	e.section("QR Code")
	q := e.ctx.Notes.QR
	fmt.Fprintf(&e.buf, "  <rect id=\"%s-qr\" x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" fill=\"white\" stroke=\"black\" stroke-width=\"0.2\">\n",
		e.id, c(q.X), c(q.Y), c(q.Width), c(q.Height))
	fmt.Fprintf(&e.buf, "    <title>%s</title>\n", escape(d.QR))
	e.buf.WriteString("  </rect>\n")
	fmt.Fprintf(&e.buf, "  <text x=\"%s\" y=\"%s\" class=\"text label\" text-anchor=\"middle\" font-size=\"2\">QR</text>\n",
		c(q.CenterX()), c(q.Y+12))
}
