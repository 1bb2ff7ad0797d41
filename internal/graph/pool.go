package graph

import "fmt"

// PoolMode selects the pooling reduction.
type PoolMode int

// Pooling modes.
const (
	PoolMax PoolMode = iota
	PoolAvg
)

// String returns a human-readable name for the mode.
func (m PoolMode) String() string {
	switch m {
	case PoolMax:
		return "max"
	case PoolAvg:
		return "avg"
	default:
		return "unknown"
	}
}

// PoolNode reduces spatial windows of an NHWC input by max or average.
type PoolNode struct {
	named
	mode   PoolMode
	in     NodeValue
	kernel int
	stride int
	pad    int
	ty     Type
}

// NewPool creates a pooling node over a 4D NHWC input.
func NewPool(name string, mode PoolMode, in NodeValue, kernel, stride, pad int) *PoolNode {
	idim := in.Type().Dims
	if len(idim) != 4 {
		panic(fmt.Sprintf("graph: pool input must be 4D NHWC, got %s", in.Type()))
	}
	outH := convOutputSize(idim[1], kernel, stride, pad)
	outW := convOutputSize(idim[2], kernel, stride, pad)
	ty := in.Type().WithDims(Shape{idim[0], outH, outW, idim[3]})
	return &PoolNode{
		named: named{name: name},
		mode:  mode, in: in,
		kernel: kernel, stride: stride, pad: pad,
		ty: ty,
	}
}

// Kind returns KindPool.
func (n *PoolNode) Kind() Kind { return KindPool }

// NumResults returns 1.
func (n *PoolNode) NumResults() int { return 1 }

// ResultType returns the pooled NHWC output type.
func (n *PoolNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: pool has a single result")
	}
	return n.ty
}

// Operands returns the single input.
func (n *PoolNode) Operands() []NodeValue { return []NodeValue{n.in} }

// Mode returns the pooling reduction.
func (n *PoolNode) Mode() PoolMode { return n.mode }

// Input returns the pooled input.
func (n *PoolNode) Input() NodeValue { return n.in }

// Kernel returns the window extent.
func (n *PoolNode) Kernel() int { return n.kernel }

// Stride returns the window stride.
func (n *PoolNode) Stride() int { return n.stride }

// Pad returns the zero padding.
func (n *PoolNode) Pad() int { return n.pad }

// Result returns the node's output value.
func (n *PoolNode) Result() NodeValue { return NodeValue{Node: n} }

// PoolGradNode produces the gradient of a pool node's input.
type PoolGradNode struct{ gradBase }

// NewPoolGrad creates the backward node for a pool.
func NewPoolGrad(name string, fwd *PoolNode, outGrad NodeValue) *PoolGradNode {
	return &PoolGradNode{newGradBase(name, fwd, outGrad, 1)}
}

// Kind returns KindPoolGrad.
func (n *PoolGradNode) Kind() Kind { return KindPoolGrad }
