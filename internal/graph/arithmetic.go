package graph

import "fmt"

// ArithmeticMode selects the elementwise operation of an ArithmeticNode.
type ArithmeticMode int

// Elementwise arithmetic modes.
const (
	Add ArithmeticMode = iota
	Sub
	Mul
	Div
)

// String returns a human-readable name for the mode.
func (m ArithmeticMode) String() string {
	switch m {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	default:
		return "unknown"
	}
}

// ArithmeticNode computes an elementwise binary operation over two values
// of identical type.
type ArithmeticNode struct {
	named
	mode ArithmeticMode
	lhs  NodeValue
	rhs  NodeValue
}

// NewArithmetic creates an elementwise arithmetic node. Both operands must
// have identical types.
func NewArithmetic(name string, mode ArithmeticMode, lhs, rhs NodeValue) *ArithmeticNode {
	if !lhs.Type().Equal(rhs.Type()) {
		panic(fmt.Sprintf("graph: arithmetic operand types differ: %s vs %s", lhs.Type(), rhs.Type()))
	}
	return &ArithmeticNode{named: named{name: name}, mode: mode, lhs: lhs, rhs: rhs}
}

// Kind returns KindArithmetic.
func (n *ArithmeticNode) Kind() Kind { return KindArithmetic }

// NumResults returns 1.
func (n *ArithmeticNode) NumResults() int { return 1 }

// ResultType returns the operand type.
func (n *ArithmeticNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: arithmetic has a single result")
	}
	return n.lhs.Type()
}

// Operands returns [lhs, rhs].
func (n *ArithmeticNode) Operands() []NodeValue { return []NodeValue{n.lhs, n.rhs} }

// Mode returns the elementwise operation.
func (n *ArithmeticNode) Mode() ArithmeticMode { return n.mode }

// LHS returns the left operand.
func (n *ArithmeticNode) LHS() NodeValue { return n.lhs }

// RHS returns the right operand.
func (n *ArithmeticNode) RHS() NodeValue { return n.rhs }

// Result returns the node's output value.
func (n *ArithmeticNode) Result() NodeValue { return NodeValue{Node: n} }
