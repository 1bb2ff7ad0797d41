package graph

// gradBase is the shared shape of the dedicated grad node kinds: a node
// that, given a forward node and the gradient of its result, produces one
// gradient result per differentiable forward operand. The update arithmetic
// inside each grad kind is a kernel concern; the graph only records the
// wiring.
//
// Results mirror the first nWrt forward operands: result i is the gradient
// of operand i and has that operand's type.
type gradBase struct {
	named
	forward Node
	outGrad NodeValue
	nWrt    int
}

func newGradBase(name string, forward Node, outGrad NodeValue, nWrt int) gradBase {
	if nWrt > len(forward.Operands()) {
		panic("graph: grad node covers more operands than the forward node has")
	}
	if !outGrad.Type().Equal(forward.ResultType(0)) {
		panic("graph: output gradient type must match the forward result type")
	}
	return gradBase{named: named{name: name}, forward: forward, outGrad: outGrad, nWrt: nWrt}
}

// Forward returns the forward node being differentiated.
func (g *gradBase) Forward() Node { return g.forward }

// OutputGrad returns the gradient of the forward node's result.
func (g *gradBase) OutputGrad() NodeValue { return g.outGrad }

// NumResults returns the number of operand gradients produced.
func (g *gradBase) NumResults() int { return g.nWrt }

// ResultType returns the type of operand i's gradient, which is the type
// of the operand itself.
func (g *gradBase) ResultType(i int) Type {
	if i < 0 || i >= g.nWrt {
		panic("graph: grad result index out of range")
	}
	return g.forward.Operands()[i].Type()
}

// Operands returns the forward operands followed by the output gradient.
func (g *gradBase) Operands() []NodeValue {
	fwd := g.forward.Operands()
	ops := make([]NodeValue, 0, len(fwd)+1)
	ops = append(ops, fwd...)
	ops = append(ops, g.outGrad)
	return ops
}
