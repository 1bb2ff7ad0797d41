package graph

import "fmt"

// SGDNode applies one stochastic-gradient-descent step to a variable:
// given the accumulated gradient, the variable and its momentum
// accumulator, the kernel folds in L1/L2 decay, scales by the learning
// rate over the batch size and writes the variable in place. It is the
// only node that mutates stored state during training.
type SGDNode struct {
	named
	gradient     NodeValue
	weight       NodeValue
	gsum         NodeValue
	l1Decay      float64
	l2Decay      float64
	learningRate float64
	momentum     float64
	batchSize    int
}

// NewSGD creates an update node. gsum must either match the weight's type
// (momentum > 0) or be the void placeholder (momentum == 0).
func NewSGD(name string, gradient, weight, gsum NodeValue, l1Decay, l2Decay, learningRate, momentum float64, batchSize int) *SGDNode {
	if !gradient.Type().Equal(weight.Type()) {
		panic(fmt.Sprintf("graph: sgd gradient type %s, weight type %s", gradient.Type(), weight.Type()))
	}
	if !gsum.Type().IsVoid() && !gsum.Type().Equal(weight.Type()) {
		panic(fmt.Sprintf("graph: sgd accumulator type %s, weight type %s", gsum.Type(), weight.Type()))
	}
	return &SGDNode{
		named:    named{name: name},
		gradient: gradient, weight: weight, gsum: gsum,
		l1Decay: l1Decay, l2Decay: l2Decay,
		learningRate: learningRate, momentum: momentum, batchSize: batchSize,
	}
}

// Kind returns KindSGD.
func (n *SGDNode) Kind() Kind { return KindSGD }

// NumResults returns 0: the update writes the weight variable in place.
func (n *SGDNode) NumResults() int { return 0 }

// ResultType panics: updates have no results.
func (n *SGDNode) ResultType(i int) Type {
	panic("graph: sgd has no results")
}

// Operands returns [gradient, weight, gsum].
func (n *SGDNode) Operands() []NodeValue { return []NodeValue{n.gradient, n.weight, n.gsum} }

// Gradient returns the accumulated gradient consumed by the step.
func (n *SGDNode) Gradient() NodeValue { return n.gradient }

// Weight returns the updated variable's value.
func (n *SGDNode) Weight() NodeValue { return n.weight }

// Gsum returns the momentum accumulator.
func (n *SGDNode) Gsum() NodeValue { return n.gsum }

// L1Decay returns the L1 decay coefficient.
func (n *SGDNode) L1Decay() float64 { return n.l1Decay }

// L2Decay returns the L2 decay coefficient.
func (n *SGDNode) L2Decay() float64 { return n.l2Decay }

// LearningRate returns the learning rate.
func (n *SGDNode) LearningRate() float64 { return n.learningRate }

// Momentum returns the momentum coefficient.
func (n *SGDNode) Momentum() float64 { return n.momentum }

// BatchSize returns the batch size the gradient was accumulated over.
func (n *SGDNode) BatchSize() int { return n.batchSize }
