package graph

import "fmt"

// DataType represents runtime element-type information for graph values.
type DataType int

// Supported element types for graph values.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	default:
		return "unknown"
	}
}

// Type describes one typed value flowing between graph nodes:
// an element type plus a shape.
type Type struct {
	Elem DataType
	Dims Shape
}

// NewType creates a Type from an element type and dimensions.
func NewType(elem DataType, dims ...int) Type {
	return Type{Elem: elem, Dims: Shape(dims)}
}

// VoidTy returns the zero-sized placeholder type. It is used for momentum
// accumulators when the momentum coefficient is zero: the accumulator slot
// must exist but no storage is ever allocated for it.
func VoidTy() Type {
	return Type{Elem: Float32, Dims: Shape{0}}
}

// IsVoid reports whether the type is the zero-sized placeholder.
func (t Type) IsVoid() bool {
	return t.Dims.NumElements() == 0
}

// Equal checks if two types are identical (element type and shape).
func (t Type) Equal(other Type) bool {
	return t.Elem == other.Elem && t.Dims.Equal(other.Dims)
}

// WithDims returns a copy of the type with different dimensions.
func (t Type) WithDims(dims Shape) Type {
	return Type{Elem: t.Elem, Dims: dims.Clone()}
}

// String returns the type in the form "float32[2 3]".
func (t Type) String() string {
	return fmt.Sprintf("%s%s", t.Elem, t.Dims)
}
