package grad

import (
	"fmt"

	"github.com/ember-ml/ember/internal/graph"
)

// Mapper tracks the accumulated gradient of every forward value touched by
// the backward sweep. Keys are value references (node plus result index),
// not nodes: a multi-result node has one entry per result.
//
// The mapper holds at most one entry per value. When a second contribution
// arrives for a mapped value (it has fan-out in the forward graph and
// several consumers each contributed a gradient), the mapper stages a
// new elementwise Add node summing the existing and incoming gradients and
// replaces the entry with the sum. A contribution is never dropped.
//
// A mapper is transient: it lives for one invocation of Generate and is
// discarded with it.
type Mapper struct {
	grads map[graph.NodeValue]graph.NodeValue
	stage func(graph.Node)
}

// NewMapper creates a mapper. stage receives every node the mapper
// constructs (the accumulation sums) so the pass can commit them later.
func NewMapper(stage func(graph.Node)) *Mapper {
	return &Mapper{
		grads: make(map[graph.NodeValue]graph.NodeValue),
		stage: stage,
	}
}

// AddGradient registers grad as a contribution to value's gradient,
// summing with the existing entry if there is one.
func (m *Mapper) AddGradient(value, grad graph.NodeValue) {
	if curr, ok := m.grads[value]; ok {
		sum := graph.NewArithmetic("updateGrad", graph.Add, curr, grad)
		m.stage(sum)
		m.grads[value] = sum.Result()
		return
	}
	m.grads[value] = grad
}

// HasGradient reports whether value has a registered gradient.
func (m *Mapper) HasGradient(value graph.NodeValue) bool {
	_, ok := m.grads[value]
	return ok
}

// GetGradient returns the accumulated gradient of value. A missing entry
// is ErrMissingGradient: by the time any rule asks for a value's gradient,
// every consumer of that value must already have contributed one.
func (m *Mapper) GetGradient(value graph.NodeValue) (graph.NodeValue, error) {
	g, ok := m.grads[value]
	if !ok {
		return graph.NodeValue{}, fmt.Errorf("grad: value %q result %d: %w",
			value.Node.Name(), value.ResNo, ErrMissingGradient)
	}
	return g, nil
}
