package graph

import "fmt"

// SaveNode marks a value as a graph output by binding it to a destination
// variable. The gradient pass treats Save as the objective marker: it
// seeds the backward sweep at the saved value.
type SaveNode struct {
	named
	in   NodeValue
	dest *Variable
}

// NewSave creates a save node writing in to dest. The destination type
// must match the saved value's type.
func NewSave(name string, in NodeValue, dest *Variable) *SaveNode {
	if !in.Type().Equal(dest.Type()) {
		panic(fmt.Sprintf("graph: save destination type %s, value type %s", dest.Type(), in.Type()))
	}
	return &SaveNode{named: named{name: name}, in: in, dest: dest}
}

// Kind returns KindSave.
func (n *SaveNode) Kind() Kind { return KindSave }

// NumResults returns 0: a save produces no value, it writes its
// destination variable.
func (n *SaveNode) NumResults() int { return 0 }

// ResultType panics: saves have no results.
func (n *SaveNode) ResultType(i int) Type {
	panic("graph: save has no results")
}

// Operands returns [input, destination].
func (n *SaveNode) Operands() []NodeValue { return []NodeValue{n.in, n.dest.Output()} }

// Input returns the saved value.
func (n *SaveNode) Input() NodeValue { return n.in }

// Dest returns the destination variable.
func (n *SaveNode) Dest() *Variable { return n.dest }
