package graph

// SplatNode produces a value of a given type with every element set to a
// constant. The gradient pass uses it for the unit seed of the backward
// sweep and for the zero background of slice gradients.
type SplatNode struct {
	named
	ty    Type
	value float64
}

// NewSplat creates a splat node.
func NewSplat(name string, ty Type, value float64) *SplatNode {
	return &SplatNode{named: named{name: name}, ty: ty, value: value}
}

// Kind returns KindSplat.
func (n *SplatNode) Kind() Kind { return KindSplat }

// NumResults returns 1.
func (n *SplatNode) NumResults() int { return 1 }

// ResultType returns the splatted type.
func (n *SplatNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: splat has a single result")
	}
	return n.ty
}

// Operands returns nil: splats are constants.
func (n *SplatNode) Operands() []NodeValue { return nil }

// Value returns the broadcast constant.
func (n *SplatNode) Value() float64 { return n.value }

// Result returns the node's output value.
func (n *SplatNode) Result() NodeValue { return NodeValue{Node: n} }
