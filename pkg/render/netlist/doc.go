// Package netlist renders the conductor map of a drawing as a Graphviz
// diagram.
//
// # Overview
//
// The engineering drawing shows the physical cable; the netlist diagram shows
// which pin at end A connects to which pin at end B. Each connector becomes a
// cluster of pin nodes and each net an undirected edge drawn in the
// conductor's color.
//
// # Usage
//
//	dot := netlist.ToDOT(d, netlist.Options{Detailed: true})
//	svg, err := netlist.RenderSVG(ctx, dot)
//
// The DOT source can also be written out directly and rendered with any
// Graphviz installation:
//
//	dot -Tpng netlist.dot -o netlist.png
package netlist
