package graph

// unaryNode is the shared shape of the elementwise activation nodes:
// one input, one result of the same type.
type unaryNode struct {
	named
	in NodeValue
}

// NumResults returns 1.
func (n *unaryNode) NumResults() int { return 1 }

// ResultType returns the input type.
func (n *unaryNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: activation has a single result")
	}
	return n.in.Type()
}

// Operands returns the single input.
func (n *unaryNode) Operands() []NodeValue { return []NodeValue{n.in} }

// Input returns the activation input.
func (n *unaryNode) Input() NodeValue { return n.in }

// ReluNode computes the rectified-linear activation max(x, 0).
type ReluNode struct{ unaryNode }

// NewRelu creates a relu node.
func NewRelu(name string, in NodeValue) *ReluNode {
	return &ReluNode{unaryNode{named: named{name: name}, in: in}}
}

// Kind returns KindRelu.
func (n *ReluNode) Kind() Kind { return KindRelu }

// Result returns the node's output value.
func (n *ReluNode) Result() NodeValue { return NodeValue{Node: n} }

// SigmoidNode computes the logistic activation 1 / (1 + exp(-x)).
type SigmoidNode struct{ unaryNode }

// NewSigmoid creates a sigmoid node.
func NewSigmoid(name string, in NodeValue) *SigmoidNode {
	return &SigmoidNode{unaryNode{named: named{name: name}, in: in}}
}

// Kind returns KindSigmoid.
func (n *SigmoidNode) Kind() Kind { return KindSigmoid }

// Result returns the node's output value.
func (n *SigmoidNode) Result() NodeValue { return NodeValue{Node: n} }

// TanhNode computes the hyperbolic tangent activation.
type TanhNode struct{ unaryNode }

// NewTanh creates a tanh node.
func NewTanh(name string, in NodeValue) *TanhNode {
	return &TanhNode{unaryNode{named: named{name: name}, in: in}}
}

// Kind returns KindTanh.
func (n *TanhNode) Kind() Kind { return KindTanh }

// Result returns the node's output value.
func (n *TanhNode) Result() NodeValue { return NodeValue{Node: n} }

// ReluGradNode produces the gradient of a relu node's input.
type ReluGradNode struct{ gradBase }

// NewReluGrad creates the backward node for a relu.
func NewReluGrad(name string, fwd *ReluNode, outGrad NodeValue) *ReluGradNode {
	return &ReluGradNode{newGradBase(name, fwd, outGrad, 1)}
}

// Kind returns KindReluGrad.
func (n *ReluGradNode) Kind() Kind { return KindReluGrad }

// SigmoidGradNode produces the gradient of a sigmoid node's input.
type SigmoidGradNode struct{ gradBase }

// NewSigmoidGrad creates the backward node for a sigmoid.
func NewSigmoidGrad(name string, fwd *SigmoidNode, outGrad NodeValue) *SigmoidGradNode {
	return &SigmoidGradNode{newGradBase(name, fwd, outGrad, 1)}
}

// Kind returns KindSigmoidGrad.
func (n *SigmoidGradNode) Kind() Kind { return KindSigmoidGrad }

// TanhGradNode produces the gradient of a tanh node's input.
type TanhGradNode struct{ gradBase }

// NewTanhGrad creates the backward node for a tanh.
func NewTanhGrad(name string, fwd *TanhNode, outGrad NodeValue) *TanhGradNode {
	return &TanhGradNode{newGradBase(name, fwd, outGrad, 1)}
}

// Kind returns KindTanhGrad.
func (n *TanhGradNode) Kind() Kind { return KindTanhGrad }
