package grad

import (
	"fmt"

	"github.com/ember-ml/ember/internal/graph"
)

// Rule builds the backward node(s) for one forward node: it looks up the
// gradient of the node's result in the mapper, stages the nodes computing
// the local derivative, and registers the resulting gradient(s) for the
// node's operands.
type Rule func(n graph.Node, b *builder) error

// rules maps every operator kind legal in a trainable forward graph to its
// differentiation rule. A kind absent from this table aborts the pass with
// ErrNoRule.
var rules = map[graph.Kind]Rule{
	graph.KindSave:       saveGrad,
	graph.KindReshape:    reshapeGrad,
	graph.KindTranspose:  transposeGrad,
	graph.KindSlice:      sliceGrad,
	graph.KindConcat:     concatGrad,
	graph.KindArithmetic: arithmeticGrad,

	graph.KindRelu: gradNodeRule(func(n graph.Node, outG graph.NodeValue) graph.Node {
		return graph.NewReluGrad(n.Name()+".grad", n.(*graph.ReluNode), outG)
	}),
	graph.KindSigmoid: gradNodeRule(func(n graph.Node, outG graph.NodeValue) graph.Node {
		return graph.NewSigmoidGrad(n.Name()+".grad", n.(*graph.SigmoidNode), outG)
	}),
	graph.KindTanh: gradNodeRule(func(n graph.Node, outG graph.NodeValue) graph.Node {
		return graph.NewTanhGrad(n.Name()+".grad", n.(*graph.TanhNode), outG)
	}),
	graph.KindConvolution: gradNodeRule(func(n graph.Node, outG graph.NodeValue) graph.Node {
		return graph.NewConvolutionGrad(n.Name()+".grad", n.(*graph.ConvolutionNode), outG)
	}),
	graph.KindPool: gradNodeRule(func(n graph.Node, outG graph.NodeValue) graph.Node {
		return graph.NewPoolGrad(n.Name()+".grad", n.(*graph.PoolNode), outG)
	}),
	graph.KindFullyConnected: gradNodeRule(func(n graph.Node, outG graph.NodeValue) graph.Node {
		return graph.NewFullyConnectedGrad(n.Name()+".grad", n.(*graph.FullyConnectedNode), outG)
	}),
	graph.KindBatchNormalization: gradNodeRule(func(n graph.Node, outG graph.NodeValue) graph.Node {
		return graph.NewBatchNormalizationGrad(n.Name()+".grad", n.(*graph.BatchNormalizationNode), outG)
	}),
	graph.KindLocalResponseNormalization: gradNodeRule(func(n graph.Node, outG graph.NodeValue) graph.Node {
		return graph.NewLocalResponseNormalizationGrad(n.Name()+".grad", n.(*graph.LocalResponseNormalizationNode), outG)
	}),
	graph.KindSoftMax: gradNodeRule(func(n graph.Node, outG graph.NodeValue) graph.Node {
		return graph.NewSoftMaxGrad(n.Name()+".grad", n.(*graph.SoftMaxNode), outG)
	}),
	graph.KindRegression: gradNodeRule(func(n graph.Node, outG graph.NodeValue) graph.Node {
		return graph.NewRegressionGrad(n.Name()+".grad", n.(*graph.RegressionNode), outG)
	}),
}

// HasRule reports whether kind has a differentiation rule.
func HasRule(kind graph.Kind) bool {
	_, ok := rules[kind]
	return ok
}

// gradNodeRule adapts the operators whose backward construction is a
// dedicated grad node: build one, then register grad-node result i as the
// gradient of forward operand i.
func gradNodeRule(build func(n graph.Node, outG graph.NodeValue) graph.Node) Rule {
	return func(n graph.Node, b *builder) error {
		outG, err := b.m.GetGradient(graph.Value(n, 0))
		if err != nil {
			return err
		}
		gn := build(n, outG)
		b.stage(gn)
		ops := n.Operands()
		for i := 0; i < gn.NumResults(); i++ {
			b.m.AddGradient(ops[i], graph.NodeValue{Node: gn, ResNo: i})
		}
		return nil
	}
}

// saveGrad seeds the backward sweep: a save marks the objective, so its
// input receives the unit gradient, as does the bound destination variable
// (a label buffer, when the marker carries one).
func saveGrad(n graph.Node, b *builder) error {
	sn := n.(*graph.SaveNode)
	seed := graph.NewSplat(sn.Name()+".grad", sn.Input().Type(), 1)
	b.stage(seed)
	b.m.AddGradient(sn.Input(), seed.Result())
	b.m.AddGradient(sn.Dest().Output(), seed.Result())
	return nil
}

// reshapeGrad reshapes the output gradient back into the original input's
// dims. Element counts must agree exactly.
func reshapeGrad(n graph.Node, b *builder) error {
	rn := n.(*graph.ReshapeNode)
	outG, err := b.m.GetGradient(rn.Result())
	if err != nil {
		return err
	}
	inTy := rn.Input().Type()
	if got, want := outG.Type().Dims.NumElements(), inTy.Dims.NumElements(); got != want {
		return fmt.Errorf("grad: reshape %q: gradient has %d elements, input has %d: %w",
			rn.Name(), got, want, ErrShapeMismatch)
	}
	bw := graph.NewReshape(rn.Name()+".grad", outG, inTy.Dims)
	b.stage(bw)
	b.m.AddGradient(rn.Input(), bw.Result())
	return nil
}

// transposeGrad applies the inverse permutation of the forward shuffle to
// the output gradient. The inverse satisfies reverse[shuffle[i]] == i.
func transposeGrad(n graph.Node, b *builder) error {
	tn := n.(*graph.TransposeNode)
	outG, err := b.m.GetGradient(tn.Result())
	if err != nil {
		return err
	}
	shuffle := tn.Shuffle()
	reverse := make([]int, len(shuffle))
	for i := range reverse {
		reverse[i] = -1
	}
	for i, ax := range shuffle {
		if ax < 0 || ax >= len(reverse) || reverse[ax] != -1 {
			return fmt.Errorf("grad: transpose %q: shuffle %v is not a permutation: %w",
				tn.Name(), shuffle, ErrShapeMismatch)
		}
		reverse[ax] = i
	}
	bw := graph.NewTranspose(tn.Name()+".grad", outG, reverse)
	b.stage(bw)
	b.m.AddGradient(tn.Input(), bw.Result())
	return nil
}

// sliceGrad expands the output gradient back to the input's full dims:
// a zero splat with the gradient inserted at the forward start offset.
// Positions outside the sliced region receive zero gradient.
func sliceGrad(n graph.Node, b *builder) error {
	sn := n.(*graph.SliceNode)
	outG, err := b.m.GetGradient(sn.Result())
	if err != nil {
		return err
	}
	if !outG.Type().Dims.Equal(sn.Dims()) {
		return fmt.Errorf("grad: slice %q: gradient dims %s, region dims %s: %w",
			sn.Name(), outG.Type().Dims, sn.Dims(), ErrShapeMismatch)
	}
	zero := graph.NewSplat("expand", sn.Input().Type(), 0)
	b.stage(zero)
	insert := graph.NewInsertTensor("insert.slice.grad", zero.Result(), outG, sn.Start())
	b.stage(insert)
	b.m.AddGradient(sn.Input(), insert.Result())
	return nil
}

// concatGrad splits the output gradient back into one slice per input,
// advancing a running offset along the concat axis by each input's extent.
// The offsets must partition the output axis with no gap and no overlap.
func concatGrad(n graph.Node, b *builder) error {
	cc := n.(*graph.ConcatNode)
	outG, err := b.m.GetGradient(cc.Result())
	if err != nil {
		return err
	}
	dim := cc.Dim()
	outDims := outG.Type().Dims
	total := 0
	for _, in := range cc.Operands() {
		total += in.Type().Dims[dim]
	}
	if dim >= len(outDims) || total != outDims[dim] {
		return fmt.Errorf("grad: concat %q: input extents sum to %d along axis %d, gradient has %d: %w",
			cc.Name(), total, dim, outDims[dim], ErrShapeMismatch)
	}
	offsets := make([]int, len(outDims))
	for _, in := range cc.Operands() {
		x := graph.NewSlice("extract", outG, offsets, in.Type().Dims)
		b.stage(x)
		offsets[dim] += in.Type().Dims[dim]
		b.m.AddGradient(in, x.Result())
	}
	return nil
}

// arithmeticGrad builds the elementwise closed forms out of ordinary
// graph nodes. Addition passes the gradient through unchanged to both
// operands; subtraction negates the RHS gradient; multiplication and
// division follow the product and quotient rules.
func arithmeticGrad(n graph.Node, b *builder) error {
	an := n.(*graph.ArithmeticNode)
	outG, err := b.m.GetGradient(an.Result())
	if err != nil {
		return err
	}
	name := an.Name()
	switch an.Mode() {
	case graph.Add:
		b.m.AddGradient(an.LHS(), outG)
		b.m.AddGradient(an.RHS(), outG)

	case graph.Sub:
		b.m.AddGradient(an.LHS(), outG)
		zero := graph.NewSplat(name+".zero", outG.Type(), 0)
		b.stage(zero)
		neg := graph.NewArithmetic(name+".grad.rhs", graph.Sub, zero.Result(), outG)
		b.stage(neg)
		b.m.AddGradient(an.RHS(), neg.Result())

	case graph.Mul:
		lhsG := graph.NewArithmetic(name+".grad.lhs", graph.Mul, outG, an.RHS())
		b.stage(lhsG)
		b.m.AddGradient(an.LHS(), lhsG.Result())
		rhsG := graph.NewArithmetic(name+".grad.rhs", graph.Mul, outG, an.LHS())
		b.stage(rhsG)
		b.m.AddGradient(an.RHS(), rhsG.Result())

	case graph.Div:
		lhsG := graph.NewArithmetic(name+".grad.lhs", graph.Div, outG, an.RHS())
		b.stage(lhsG)
		b.m.AddGradient(an.LHS(), lhsG.Result())
		// d/dRHS = -outG * LHS / RHS^2
		num := graph.NewArithmetic(name+".grad.rhs.num", graph.Mul, outG, an.LHS())
		b.stage(num)
		den := graph.NewArithmetic(name+".grad.rhs.den", graph.Mul, an.RHS(), an.RHS())
		b.stage(den)
		quot := graph.NewArithmetic(name+".grad.rhs.quot", graph.Div, num.Result(), den.Result())
		b.stage(quot)
		zero := graph.NewSplat(name+".zero", outG.Type(), 0)
		b.stage(zero)
		neg := graph.NewArithmetic(name+".grad.rhs", graph.Sub, zero.Result(), quot.Result())
		b.stage(neg)
		b.m.AddGradient(an.RHS(), neg.Result())

	default:
		return fmt.Errorf("grad: arithmetic %q: unknown mode %d: %w", name, an.Mode(), ErrNoRule)
	}
	return nil
}
