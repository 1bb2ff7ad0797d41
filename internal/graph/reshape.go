package graph

import "fmt"

// ReshapeNode reinterprets a value under new dimensions with the same
// element count. No data moves.
type ReshapeNode struct {
	named
	in   NodeValue
	dims Shape
}

// NewReshape creates a reshape node. The new dims must describe exactly as
// many elements as the input.
func NewReshape(name string, in NodeValue, dims Shape) *ReshapeNode {
	if in.Type().Dims.NumElements() != dims.NumElements() {
		panic(fmt.Sprintf("graph: reshape from %s to %s changes element count", in.Type().Dims, dims))
	}
	return &ReshapeNode{named: named{name: name}, in: in, dims: dims.Clone()}
}

// Kind returns KindReshape.
func (n *ReshapeNode) Kind() Kind { return KindReshape }

// NumResults returns 1.
func (n *ReshapeNode) NumResults() int { return 1 }

// ResultType returns the input element type under the new dims.
func (n *ReshapeNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: reshape has a single result")
	}
	return n.in.Type().WithDims(n.dims)
}

// Operands returns the single input.
func (n *ReshapeNode) Operands() []NodeValue { return []NodeValue{n.in} }

// Input returns the reshaped value.
func (n *ReshapeNode) Input() NodeValue { return n.in }

// Dims returns the output dimensions.
func (n *ReshapeNode) Dims() Shape { return n.dims }

// Result returns the node's output value.
func (n *ReshapeNode) Result() NodeValue { return NodeValue{Node: n} }
