package graph

// InitKind describes how a variable's storage is initialized before
// training starts. Initialization itself is performed by the runtime that
// executes the graph; the graph only records the policy.
type InitKind int

// Initialization policies.
const (
	// InitExtern leaves the payload to be written externally (inputs,
	// labels, gradient snapshots).
	InitExtern InitKind = iota
	// InitBroadcast fills the payload with a single value.
	InitBroadcast
	// InitXavier initializes with Xavier/Glorot scaled random values.
	InitXavier
)

// String returns a human-readable name for the init kind.
func (k InitKind) String() string {
	switch k {
	case InitExtern:
		return "extern"
	case InitBroadcast:
		return "broadcast"
	case InitXavier:
		return "xavier"
	default:
		return "unknown"
	}
}

// Variable is a persistent leaf node holding learnable or externally
// supplied state. Trainable variables receive an SGD update node during
// gradient generation; non-trainable ones never do.
type Variable struct {
	named
	ty        Type
	init      InitKind
	initVal   float64
	trainable bool
}

// NewVariable creates a variable node. The variable is not attached to any
// graph; use Graph.AddVariable or Graph.CreateVariable.
func NewVariable(name string, ty Type, init InitKind, initVal float64, trainable bool) *Variable {
	return &Variable{named: named{name: name}, ty: ty, init: init, initVal: initVal, trainable: trainable}
}

// Kind returns KindVariable.
func (v *Variable) Kind() Kind { return KindVariable }

// NumResults returns 1: a variable produces its payload.
func (v *Variable) NumResults() int { return 1 }

// ResultType returns the variable's type.
func (v *Variable) ResultType(i int) Type {
	if i != 0 {
		panic("graph: variable has a single result")
	}
	return v.ty
}

// Operands returns nil: variables are leaves.
func (v *Variable) Operands() []NodeValue { return nil }

// Output returns the variable's payload value.
func (v *Variable) Output() NodeValue { return NodeValue{Node: v} }

// Type returns the variable's type.
func (v *Variable) Type() Type { return v.ty }

// Trainable reports whether the training procedure updates this variable.
func (v *Variable) Trainable() bool { return v.trainable }

// Init returns the initialization policy.
func (v *Variable) Init() InitKind { return v.init }

// InitValue returns the value used by the InitBroadcast policy.
func (v *Variable) InitValue() float64 { return v.initVal }
