package graph

import "fmt"

// BatchNormalizationNode normalizes activations over the batch for one
// channel axis, then applies a learned scale and bias. Running mean and
// variance are carried in non-trainable variables updated by the kernel.
type BatchNormalizationNode struct {
	named
	in         NodeValue
	scale      NodeValue
	bias       NodeValue
	mean       NodeValue
	variance   NodeValue
	channelIdx int
	epsilon    float64
	momentum   float64
}

// NewBatchNormalization creates a batch-normalization node. scale, bias,
// mean and variance must all have the extent of the channel axis.
func NewBatchNormalization(name string, in, scale, bias, mean, variance NodeValue, channelIdx int, epsilon, momentum float64) *BatchNormalizationNode {
	idim := in.Type().Dims
	if channelIdx < 0 || channelIdx >= len(idim) {
		panic(fmt.Sprintf("graph: batchnormalization channel axis %d out of range for %s", channelIdx, in.Type()))
	}
	want := Shape{idim[channelIdx]}
	for _, v := range []NodeValue{scale, bias, mean, variance} {
		if !v.Type().Dims.Equal(want) {
			panic(fmt.Sprintf("graph: batchnormalization channel operand dims %s, want %s", v.Type().Dims, want))
		}
	}
	return &BatchNormalizationNode{
		named: named{name: name},
		in:    in, scale: scale, bias: bias, mean: mean, variance: variance,
		channelIdx: channelIdx, epsilon: epsilon, momentum: momentum,
	}
}

// Kind returns KindBatchNormalization.
func (n *BatchNormalizationNode) Kind() Kind { return KindBatchNormalization }

// NumResults returns 1.
func (n *BatchNormalizationNode) NumResults() int { return 1 }

// ResultType returns the input type: normalization preserves shape.
func (n *BatchNormalizationNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: batchnormalization has a single result")
	}
	return n.in.Type()
}

// Operands returns [input, scale, bias, mean, variance]. Only the first
// three receive gradients.
func (n *BatchNormalizationNode) Operands() []NodeValue {
	return []NodeValue{n.in, n.scale, n.bias, n.mean, n.variance}
}

// Input returns the normalized input.
func (n *BatchNormalizationNode) Input() NodeValue { return n.in }

// Scale returns the learned per-channel scale.
func (n *BatchNormalizationNode) Scale() NodeValue { return n.scale }

// Bias returns the learned per-channel bias.
func (n *BatchNormalizationNode) Bias() NodeValue { return n.bias }

// Mean returns the running mean.
func (n *BatchNormalizationNode) Mean() NodeValue { return n.mean }

// Variance returns the running variance.
func (n *BatchNormalizationNode) Variance() NodeValue { return n.variance }

// ChannelIdx returns the normalized channel axis.
func (n *BatchNormalizationNode) ChannelIdx() int { return n.channelIdx }

// Epsilon returns the variance stabilizer.
func (n *BatchNormalizationNode) Epsilon() float64 { return n.epsilon }

// Momentum returns the running-statistics momentum.
func (n *BatchNormalizationNode) Momentum() float64 { return n.momentum }

// Result returns the node's output value.
func (n *BatchNormalizationNode) Result() NodeValue { return NodeValue{Node: n} }

// BatchNormalizationGradNode produces the gradients of a
// batch-normalization node's input, scale and bias (results 0, 1 and 2).
type BatchNormalizationGradNode struct{ gradBase }

// NewBatchNormalizationGrad creates the backward node for a
// batch-normalization.
func NewBatchNormalizationGrad(name string, fwd *BatchNormalizationNode, outGrad NodeValue) *BatchNormalizationGradNode {
	return &BatchNormalizationGradNode{newGradBase(name, fwd, outGrad, 3)}
}

// Kind returns KindBatchNormalizationGrad.
func (n *BatchNormalizationGradNode) Kind() Kind { return KindBatchNormalizationGrad }

// LocalResponseNormalizationNode normalizes each activation by the energy
// of its neighbors across channels (AlexNet-style LRN).
type LocalResponseNormalizationNode struct {
	named
	in         NodeValue
	halfWindow int
	alpha      float64
	beta       float64
	k          float64
}

// NewLocalResponseNormalization creates an LRN node.
func NewLocalResponseNormalization(name string, in NodeValue, halfWindow int, alpha, beta, k float64) *LocalResponseNormalizationNode {
	return &LocalResponseNormalizationNode{
		named: named{name: name},
		in:    in, halfWindow: halfWindow, alpha: alpha, beta: beta, k: k,
	}
}

// Kind returns KindLocalResponseNormalization.
func (n *LocalResponseNormalizationNode) Kind() Kind { return KindLocalResponseNormalization }

// NumResults returns 1.
func (n *LocalResponseNormalizationNode) NumResults() int { return 1 }

// ResultType returns the input type.
func (n *LocalResponseNormalizationNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: localresponsenormalization has a single result")
	}
	return n.in.Type()
}

// Operands returns the single input.
func (n *LocalResponseNormalizationNode) Operands() []NodeValue { return []NodeValue{n.in} }

// Input returns the normalized input.
func (n *LocalResponseNormalizationNode) Input() NodeValue { return n.in }

// HalfWindow returns the half extent of the cross-channel window.
func (n *LocalResponseNormalizationNode) HalfWindow() int { return n.halfWindow }

// Alpha returns the scaling parameter.
func (n *LocalResponseNormalizationNode) Alpha() float64 { return n.alpha }

// Beta returns the exponent parameter.
func (n *LocalResponseNormalizationNode) Beta() float64 { return n.beta }

// K returns the additive constant.
func (n *LocalResponseNormalizationNode) K() float64 { return n.k }

// Result returns the node's output value.
func (n *LocalResponseNormalizationNode) Result() NodeValue { return NodeValue{Node: n} }

// LocalResponseNormalizationGradNode produces the gradient of an LRN
// node's input.
type LocalResponseNormalizationGradNode struct{ gradBase }

// NewLocalResponseNormalizationGrad creates the backward node for an LRN.
func NewLocalResponseNormalizationGrad(name string, fwd *LocalResponseNormalizationNode, outGrad NodeValue) *LocalResponseNormalizationGradNode {
	return &LocalResponseNormalizationGradNode{newGradBase(name, fwd, outGrad, 1)}
}

// Kind returns KindLocalResponseNormalizationGrad.
func (n *LocalResponseNormalizationGradNode) Kind() Kind { return KindLocalResponseNormalizationGrad }
