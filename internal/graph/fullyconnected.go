package graph

import "fmt"

// FullyConnectedNode computes out = in * weights + bias, where the input
// is treated as a batch of flattened rows.
type FullyConnectedNode struct {
	named
	in      NodeValue
	weights NodeValue
	bias    NodeValue
	ty      Type
}

// NewFullyConnected creates a fully-connected node. The input is
// [batch, flat], the weights [flat, depth] and the bias [depth].
func NewFullyConnected(name string, in, weights, bias NodeValue) *FullyConnectedNode {
	idim := in.Type().Dims
	if len(idim) != 2 {
		panic(fmt.Sprintf("graph: fullyconnected input must be 2D [batch flat], got %s", in.Type()))
	}
	wdim := weights.Type().Dims
	if len(wdim) != 2 || wdim[0] != idim[1] {
		panic(fmt.Sprintf("graph: fullyconnected weights dims %s incompatible with input %s", wdim, idim))
	}
	if !bias.Type().Dims.Equal(Shape{wdim[1]}) {
		panic(fmt.Sprintf("graph: fullyconnected bias dims %s, want %s", bias.Type().Dims, Shape{wdim[1]}))
	}
	ty := in.Type().WithDims(Shape{idim[0], wdim[1]})
	return &FullyConnectedNode{named: named{name: name}, in: in, weights: weights, bias: bias, ty: ty}
}

// Kind returns KindFullyConnected.
func (n *FullyConnectedNode) Kind() Kind { return KindFullyConnected }

// NumResults returns 1.
func (n *FullyConnectedNode) NumResults() int { return 1 }

// ResultType returns the [batch, depth] output type.
func (n *FullyConnectedNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: fullyconnected has a single result")
	}
	return n.ty
}

// Operands returns [input, weights, bias].
func (n *FullyConnectedNode) Operands() []NodeValue { return []NodeValue{n.in, n.weights, n.bias} }

// Input returns the input rows.
func (n *FullyConnectedNode) Input() NodeValue { return n.in }

// Weights returns the weight matrix.
func (n *FullyConnectedNode) Weights() NodeValue { return n.weights }

// Bias returns the bias.
func (n *FullyConnectedNode) Bias() NodeValue { return n.bias }

// Result returns the node's output value.
func (n *FullyConnectedNode) Result() NodeValue { return NodeValue{Node: n} }

// FullyConnectedGradNode produces the gradients of a fully-connected
// node's input, weights and bias (results 0, 1 and 2).
type FullyConnectedGradNode struct{ gradBase }

// NewFullyConnectedGrad creates the backward node for a fully-connected.
func NewFullyConnectedGrad(name string, fwd *FullyConnectedNode, outGrad NodeValue) *FullyConnectedGradNode {
	return &FullyConnectedGradNode{newGradBase(name, fwd, outGrad, 3)}
}

// Kind returns KindFullyConnectedGrad.
func (n *FullyConnectedGradNode) Kind() Kind { return KindFullyConnectedGrad }
