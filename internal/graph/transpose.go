package graph

import "fmt"

// TransposeNode shuffles the axes of a value. Axis i of the output is
// axis shuffle[i] of the input.
type TransposeNode struct {
	named
	in      NodeValue
	shuffle []int
}

// NewTranspose creates a transpose node. shuffle must be a permutation of
// the input axes.
func NewTranspose(name string, in NodeValue, shuffle []int) *TransposeNode {
	idim := in.Type().Dims
	if !isValidPermutation(shuffle, len(idim)) {
		panic(fmt.Sprintf("graph: transpose shuffle %v is not a permutation of %d axes", shuffle, len(idim)))
	}
	s := make([]int, len(shuffle))
	copy(s, shuffle)
	return &TransposeNode{named: named{name: name}, in: in, shuffle: s}
}

// Kind returns KindTranspose.
func (n *TransposeNode) Kind() Kind { return KindTranspose }

// NumResults returns 1.
func (n *TransposeNode) NumResults() int { return 1 }

// ResultType returns the input type with permuted dims.
func (n *TransposeNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: transpose has a single result")
	}
	idim := n.in.Type().Dims
	out := make(Shape, len(idim))
	for j, ax := range n.shuffle {
		out[j] = idim[ax]
	}
	return n.in.Type().WithDims(out)
}

// Operands returns the single input.
func (n *TransposeNode) Operands() []NodeValue { return []NodeValue{n.in} }

// Input returns the transposed value.
func (n *TransposeNode) Input() NodeValue { return n.in }

// Shuffle returns the axis permutation.
func (n *TransposeNode) Shuffle() []int { return n.shuffle }

// Result returns the node's output value.
func (n *TransposeNode) Result() NodeValue { return NodeValue{Node: n} }
