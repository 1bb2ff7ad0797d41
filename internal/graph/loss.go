package graph

import "fmt"

// SoftMaxNode computes a per-row softmax distribution. The selected
// operand carries the target class index per row; it steers the fused
// cross-entropy gradient and receives no gradient itself.
type SoftMaxNode struct {
	named
	in       NodeValue
	selected NodeValue
}

// NewSoftMax creates a softmax node. The input is [batch, classes] and
// selected is an integer [batch, 1] value.
func NewSoftMax(name string, in, selected NodeValue) *SoftMaxNode {
	idim := in.Type().Dims
	if len(idim) != 2 {
		panic(fmt.Sprintf("graph: softmax input must be 2D [batch classes], got %s", in.Type()))
	}
	if !selected.Type().Dims.Equal(Shape{idim[0], 1}) {
		panic(fmt.Sprintf("graph: softmax selected dims %s, want %s", selected.Type().Dims, Shape{idim[0], 1}))
	}
	return &SoftMaxNode{named: named{name: name}, in: in, selected: selected}
}

// Kind returns KindSoftMax.
func (n *SoftMaxNode) Kind() Kind { return KindSoftMax }

// NumResults returns 1.
func (n *SoftMaxNode) NumResults() int { return 1 }

// ResultType returns the input type.
func (n *SoftMaxNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: softmax has a single result")
	}
	return n.in.Type()
}

// Operands returns [input, selected]. Only the input receives a gradient.
func (n *SoftMaxNode) Operands() []NodeValue { return []NodeValue{n.in, n.selected} }

// Input returns the logits.
func (n *SoftMaxNode) Input() NodeValue { return n.in }

// Selected returns the target class indices.
func (n *SoftMaxNode) Selected() NodeValue { return n.selected }

// Result returns the node's output value.
func (n *SoftMaxNode) Result() NodeValue { return NodeValue{Node: n} }

// SoftMaxGradNode produces the gradient of a softmax node's input.
type SoftMaxGradNode struct{ gradBase }

// NewSoftMaxGrad creates the backward node for a softmax.
func NewSoftMaxGrad(name string, fwd *SoftMaxNode, outGrad NodeValue) *SoftMaxGradNode {
	return &SoftMaxGradNode{newGradBase(name, fwd, outGrad, 1)}
}

// Kind returns KindSoftMaxGrad.
func (n *SoftMaxGradNode) Kind() Kind { return KindSoftMaxGrad }

// RegressionNode computes a squared-error regression loss against an
// expected value of the same type. The expected operand receives no
// gradient.
type RegressionNode struct {
	named
	in       NodeValue
	expected NodeValue
}

// NewRegression creates a regression node.
func NewRegression(name string, in, expected NodeValue) *RegressionNode {
	if !in.Type().Equal(expected.Type()) {
		panic(fmt.Sprintf("graph: regression expected type %s, input type %s", expected.Type(), in.Type()))
	}
	return &RegressionNode{named: named{name: name}, in: in, expected: expected}
}

// Kind returns KindRegression.
func (n *RegressionNode) Kind() Kind { return KindRegression }

// NumResults returns 1.
func (n *RegressionNode) NumResults() int { return 1 }

// ResultType returns the input type.
func (n *RegressionNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: regression has a single result")
	}
	return n.in.Type()
}

// Operands returns [input, expected]. Only the input receives a gradient.
func (n *RegressionNode) Operands() []NodeValue { return []NodeValue{n.in, n.expected} }

// Input returns the predicted value.
func (n *RegressionNode) Input() NodeValue { return n.in }

// Expected returns the ground-truth value.
func (n *RegressionNode) Expected() NodeValue { return n.expected }

// Result returns the node's output value.
func (n *RegressionNode) Result() NodeValue { return NodeValue{Node: n} }

// RegressionGradNode produces the gradient of a regression node's input.
type RegressionGradNode struct{ gradBase }

// NewRegressionGrad creates the backward node for a regression.
func NewRegressionGrad(name string, fwd *RegressionNode, outGrad NodeValue) *RegressionGradNode {
	return &RegressionGradNode{newGradBase(name, fwd, outGrad, 1)}
}

// Kind returns KindRegressionGrad.
func (n *RegressionGradNode) Kind() Kind { return KindRegressionGrad }
