package graph

import "fmt"

// convOutputSize computes the spatial output extent of a convolution or
// pooling window sweep.
func convOutputSize(in, kernel, stride, pad int) int {
	if kernel > in+2*pad {
		panic(fmt.Sprintf("graph: kernel %d exceeds padded input extent %d", kernel, in+2*pad))
	}
	return (in+2*pad-kernel)/stride + 1
}

// ConvolutionNode computes a 2D convolution over an NHWC input with a
// learned filter bank and bias.
type ConvolutionNode struct {
	named
	in     NodeValue
	filter NodeValue
	bias   NodeValue
	kernel int
	stride int
	pad    int
	depth  int
	ty     Type
}

// NewConvolution creates a convolution node. The input must be NHWC, the
// filter [depth, kernel, kernel, C] and the bias [depth].
func NewConvolution(name string, in, filter, bias NodeValue, kernel, stride, pad, depth int) *ConvolutionNode {
	idim := in.Type().Dims
	if len(idim) != 4 {
		panic(fmt.Sprintf("graph: convolution input must be 4D NHWC, got %s", in.Type()))
	}
	wantFilter := Shape{depth, kernel, kernel, idim[3]}
	if !filter.Type().Dims.Equal(wantFilter) {
		panic(fmt.Sprintf("graph: convolution filter dims %s, want %s", filter.Type().Dims, wantFilter))
	}
	if !bias.Type().Dims.Equal(Shape{depth}) {
		panic(fmt.Sprintf("graph: convolution bias dims %s, want %s", bias.Type().Dims, Shape{depth}))
	}
	outH := convOutputSize(idim[1], kernel, stride, pad)
	outW := convOutputSize(idim[2], kernel, stride, pad)
	ty := in.Type().WithDims(Shape{idim[0], outH, outW, depth})
	return &ConvolutionNode{
		named: named{name: name},
		in:    in, filter: filter, bias: bias,
		kernel: kernel, stride: stride, pad: pad, depth: depth,
		ty: ty,
	}
}

// Kind returns KindConvolution.
func (n *ConvolutionNode) Kind() Kind { return KindConvolution }

// NumResults returns 1.
func (n *ConvolutionNode) NumResults() int { return 1 }

// ResultType returns the NHWC output type.
func (n *ConvolutionNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: convolution has a single result")
	}
	return n.ty
}

// Operands returns [input, filter, bias].
func (n *ConvolutionNode) Operands() []NodeValue { return []NodeValue{n.in, n.filter, n.bias} }

// Input returns the convolution input.
func (n *ConvolutionNode) Input() NodeValue { return n.in }

// Filter returns the filter bank.
func (n *ConvolutionNode) Filter() NodeValue { return n.filter }

// Bias returns the bias.
func (n *ConvolutionNode) Bias() NodeValue { return n.bias }

// Kernel returns the kernel extent.
func (n *ConvolutionNode) Kernel() int { return n.kernel }

// Stride returns the window stride.
func (n *ConvolutionNode) Stride() int { return n.stride }

// Pad returns the zero padding.
func (n *ConvolutionNode) Pad() int { return n.pad }

// Depth returns the number of output channels.
func (n *ConvolutionNode) Depth() int { return n.depth }

// Result returns the node's output value.
func (n *ConvolutionNode) Result() NodeValue { return NodeValue{Node: n} }

// ConvolutionGradNode produces the gradients of a convolution's input,
// filter and bias (results 0, 1 and 2).
type ConvolutionGradNode struct{ gradBase }

// NewConvolutionGrad creates the backward node for a convolution.
func NewConvolutionGrad(name string, fwd *ConvolutionNode, outGrad NodeValue) *ConvolutionGradNode {
	return &ConvolutionGradNode{newGradBase(name, fwd, outGrad, 3)}
}

// Kind returns KindConvolutionGrad.
func (n *ConvolutionGradNode) Kind() Kind { return KindConvolutionGrad }
