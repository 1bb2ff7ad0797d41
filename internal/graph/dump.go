package graph

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable listing of the graph: variables first, then
// nodes in dependency-first order.
func (g *Graph) Dump(w io.Writer) {
	fmt.Fprintf(w, "graph %q: %d variables, %d nodes\n", g.name, len(g.vars), len(g.nodes))
	for _, v := range g.vars {
		flags := v.Init().String()
		if v.Trainable() {
			flags += ", trainable"
		}
		fmt.Fprintf(w, "  var  %-24s %-18s (%s)\n", v.Name(), v.Type(), flags)
	}
	pov := NewPostOrderVisitor()
	for _, v := range g.vars {
		pov.Visit(v)
	}
	for _, n := range g.nodes {
		pov.Visit(n)
	}
	for _, n := range pov.PostOrder() {
		if n.Kind() == KindVariable {
			continue
		}
		ops := make([]string, 0, len(n.Operands()))
		for _, op := range n.Operands() {
			if op.Node.NumResults() > 1 {
				ops = append(ops, fmt.Sprintf("%s:%d", op.Node.Name(), op.ResNo))
			} else {
				ops = append(ops, op.Node.Name())
			}
		}
		fmt.Fprintf(w, "  node %-24s %-18s = %s(%s)\n", n.Name(), resultTypes(n), n.Kind(), strings.Join(ops, ", "))
	}
}

func resultTypes(n Node) string {
	switch n.NumResults() {
	case 0:
		return "-"
	case 1:
		return n.ResultType(0).String()
	default:
		parts := make([]string, n.NumResults())
		for i := range parts {
			parts[i] = n.ResultType(i).String()
		}
		return strings.Join(parts, ", ")
	}
}

// DumpDOT writes the graph in Graphviz DOT form: one box per node, one
// edge per operand use.
func (g *Graph) DumpDOT(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "digraph %q {\n  rankdir=TB;\n  node [shape=box];\n", g.name); err != nil {
		return err
	}
	pov := NewPostOrderVisitor()
	for _, v := range g.vars {
		pov.Visit(v)
	}
	for _, n := range g.nodes {
		pov.Visit(n)
	}
	ids := make(map[Node]string)
	for i, n := range pov.PostOrder() {
		id := fmt.Sprintf("n%d", i)
		ids[n] = id
		shape := "box"
		if n.Kind() == KindVariable {
			shape = "ellipse"
		}
		label := fmt.Sprintf("%s\\n%s", n.Name(), n.Kind())
		if _, err := fmt.Fprintf(w, "  %s [label=\"%s\" shape=%s];\n", id, label, shape); err != nil {
			return err
		}
	}
	for _, n := range pov.PostOrder() {
		for _, op := range n.Operands() {
			if _, err := fmt.Fprintf(w, "  %s -> %s;\n", ids[op.Node], ids[n]); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
