package graph

import "fmt"

// ConcatNode stacks values along one axis. All inputs must agree on every
// other axis and on element type.
type ConcatNode struct {
	named
	inputs []NodeValue
	dim    int
	ty     Type
}

// NewConcat creates a concatenation node along dim.
func NewConcat(name string, inputs []NodeValue, dim int) *ConcatNode {
	if len(inputs) == 0 {
		panic("graph: concat needs at least one input")
	}
	first := inputs[0].Type()
	if dim < 0 || dim >= len(first.Dims) {
		panic(fmt.Sprintf("graph: concat axis %d out of range for %s", dim, first))
	}
	out := first.Dims.Clone()
	for _, in := range inputs[1:] {
		ty := in.Type()
		if ty.Elem != first.Elem || len(ty.Dims) != len(first.Dims) {
			panic(fmt.Sprintf("graph: concat input type %s incompatible with %s", ty, first))
		}
		for ax := range ty.Dims {
			if ax == dim {
				continue
			}
			if ty.Dims[ax] != first.Dims[ax] {
				panic(fmt.Sprintf("graph: concat inputs differ on axis %d: %s vs %s", ax, ty.Dims, first.Dims))
			}
		}
		out[dim] += ty.Dims[dim]
	}
	ins := make([]NodeValue, len(inputs))
	copy(ins, inputs)
	return &ConcatNode{named: named{name: name}, inputs: ins, dim: dim, ty: first.WithDims(out)}
}

// Kind returns KindConcat.
func (n *ConcatNode) Kind() Kind { return KindConcat }

// NumResults returns 1.
func (n *ConcatNode) NumResults() int { return 1 }

// ResultType returns the stacked output type.
func (n *ConcatNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: concat has a single result")
	}
	return n.ty
}

// Operands returns the concatenated inputs in order.
func (n *ConcatNode) Operands() []NodeValue { return n.inputs }

// Dim returns the concatenation axis.
func (n *ConcatNode) Dim() int { return n.dim }

// Result returns the node's output value.
func (n *ConcatNode) Result() NodeValue { return NodeValue{Node: n} }
