package graph

import "fmt"

// SliceNode extracts a sub-region of the input starting at a per-axis
// offset.
type SliceNode struct {
	named
	in    NodeValue
	start []int
	dims  Shape
}

// NewSlice creates a slice node extracting dims elements starting at
// start. The region must lie fully inside the input.
func NewSlice(name string, in NodeValue, start []int, dims Shape) *SliceNode {
	idim := in.Type().Dims
	if len(start) != len(idim) || len(dims) != len(idim) {
		panic(fmt.Sprintf("graph: slice rank mismatch: input %s, start %v, dims %s", idim, start, dims))
	}
	for i := range idim {
		if start[i] < 0 || start[i]+dims[i] > idim[i] {
			panic(fmt.Sprintf("graph: slice region [%d, %d) exceeds input axis %d extent %d",
				start[i], start[i]+dims[i], i, idim[i]))
		}
	}
	s := make([]int, len(start))
	copy(s, start)
	return &SliceNode{named: named{name: name}, in: in, start: s, dims: dims.Clone()}
}

// Kind returns KindSlice.
func (n *SliceNode) Kind() Kind { return KindSlice }

// NumResults returns 1.
func (n *SliceNode) NumResults() int { return 1 }

// ResultType returns the sliced region's type.
func (n *SliceNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: slice has a single result")
	}
	return n.in.Type().WithDims(n.dims)
}

// Operands returns the single input.
func (n *SliceNode) Operands() []NodeValue { return []NodeValue{n.in} }

// Input returns the sliced value.
func (n *SliceNode) Input() NodeValue { return n.in }

// Start returns the per-axis region offset.
func (n *SliceNode) Start() []int { return n.start }

// Dims returns the region extents.
func (n *SliceNode) Dims() Shape { return n.dims }

// Result returns the node's output value.
func (n *SliceNode) Result() NodeValue { return NodeValue{Node: n} }

// InsertTensorNode writes a small value into a larger one at a per-axis
// offset, leaving the rest of the destination untouched. It is the
// backward counterpart of Slice.
type InsertTensorNode struct {
	named
	big   NodeValue
	small NodeValue
	start []int
}

// NewInsertTensor creates an insert node placing small inside big at
// start. The region must lie fully inside big.
func NewInsertTensor(name string, big, small NodeValue, start []int) *InsertTensorNode {
	bdim := big.Type().Dims
	sdim := small.Type().Dims
	if len(start) != len(bdim) || len(sdim) != len(bdim) {
		panic(fmt.Sprintf("graph: insert rank mismatch: dest %s, src %s, start %v", bdim, sdim, start))
	}
	for i := range bdim {
		if start[i] < 0 || start[i]+sdim[i] > bdim[i] {
			panic(fmt.Sprintf("graph: insert region [%d, %d) exceeds dest axis %d extent %d",
				start[i], start[i]+sdim[i], i, bdim[i]))
		}
	}
	s := make([]int, len(start))
	copy(s, start)
	return &InsertTensorNode{named: named{name: name}, big: big, small: small, start: s}
}

// Kind returns KindInsertTensor.
func (n *InsertTensorNode) Kind() Kind { return KindInsertTensor }

// NumResults returns 1.
func (n *InsertTensorNode) NumResults() int { return 1 }

// ResultType returns the destination type.
func (n *InsertTensorNode) ResultType(i int) Type {
	if i != 0 {
		panic("graph: inserttensor has a single result")
	}
	return n.big.Type()
}

// Operands returns [big, small].
func (n *InsertTensorNode) Operands() []NodeValue { return []NodeValue{n.big, n.small} }

// Big returns the destination value.
func (n *InsertTensorNode) Big() NodeValue { return n.big }

// Small returns the inserted value.
func (n *InsertTensorNode) Small() NodeValue { return n.small }

// Start returns the per-axis insert offset.
func (n *InsertTensorNode) Start() []int { return n.start }

// Result returns the node's output value.
func (n *InsertTensorNode) Result() NodeValue { return NodeValue{Node: n} }
