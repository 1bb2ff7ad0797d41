// Package graph implements the tensor computation graph that the gradient
// generation pass rewrites: a closed set of operator node kinds, a typed
// value-reference model, and the Graph container owning variables and nodes.
//
// Nodes are immutable once constructed. The graph is append-only: passes
// stage new nodes separately and splice them in via AddNode/AddVariable,
// so an in-flight traversal always observes a stable view.
package graph

// Kind identifies the operator of a node. The set is closed: every kind a
// trainable graph may contain is enumerated here, and the gradient pass
// dispatches on it.
type Kind int

// Operator kinds.
const (
	KindVariable Kind = iota
	KindArithmetic
	KindRelu
	KindSigmoid
	KindTanh
	KindConvolution
	KindPool
	KindFullyConnected
	KindBatchNormalization
	KindLocalResponseNormalization
	KindSoftMax
	KindRegression
	KindReshape
	KindTranspose
	KindSlice
	KindConcat
	KindSave
	KindSplat
	KindInsertTensor
	KindSGD
	KindReluGrad
	KindSigmoidGrad
	KindTanhGrad
	KindConvolutionGrad
	KindPoolGrad
	KindFullyConnectedGrad
	KindBatchNormalizationGrad
	KindLocalResponseNormalizationGrad
	KindSoftMaxGrad
	KindRegressionGrad
)

var kindNames = map[Kind]string{
	KindVariable:                       "variable",
	KindArithmetic:                     "arithmetic",
	KindRelu:                           "relu",
	KindSigmoid:                        "sigmoid",
	KindTanh:                           "tanh",
	KindConvolution:                    "convolution",
	KindPool:                           "pool",
	KindFullyConnected:                 "fullyconnected",
	KindBatchNormalization:             "batchnormalization",
	KindLocalResponseNormalization:     "localresponsenormalization",
	KindSoftMax:                        "softmax",
	KindRegression:                     "regression",
	KindReshape:                        "reshape",
	KindTranspose:                      "transpose",
	KindSlice:                          "slice",
	KindConcat:                         "concat",
	KindSave:                           "save",
	KindSplat:                          "splat",
	KindInsertTensor:                   "inserttensor",
	KindSGD:                            "sgd",
	KindReluGrad:                       "relugrad",
	KindSigmoidGrad:                    "sigmoidgrad",
	KindTanhGrad:                       "tanhgrad",
	KindConvolutionGrad:                "convolutiongrad",
	KindPoolGrad:                       "poolgrad",
	KindFullyConnectedGrad:             "fullyconnectedgrad",
	KindBatchNormalizationGrad:         "batchnormalizationgrad",
	KindLocalResponseNormalizationGrad: "localresponsenormalizationgrad",
	KindSoftMaxGrad:                    "softmaxgrad",
	KindRegressionGrad:                 "regressiongrad",
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Node is one vertex of the computation graph. Implementations are the
// concrete operator types in this package; the set is closed.
type Node interface {
	// Kind returns the operator kind tag.
	Kind() Kind
	// Name returns the node's name. Names are made unique when the node
	// is added to a Graph.
	Name() string
	// NumResults returns how many typed values the node produces.
	NumResults() int
	// ResultType returns the type of result i.
	ResultType(i int) Type
	// Operands returns the values this node consumes, in operand order.
	Operands() []NodeValue
}

// NodeValue identifies one typed result of a node: the unit of identity
// used for gradient bookkeeping. It is distinct from the node itself
// because a node may produce multiple results.
type NodeValue struct {
	Node  Node
	ResNo int
}

// Type returns the type of the referenced result.
func (v NodeValue) Type() Type {
	return v.Node.ResultType(v.ResNo)
}

// Value returns the i-th result of a node as a NodeValue.
func Value(n Node, i int) NodeValue {
	if i < 0 || i >= n.NumResults() {
		panic("graph: result index out of range")
	}
	return NodeValue{Node: n, ResNo: i}
}

// named carries the node name shared by all node implementations.
type named struct {
	name string
}

// Name returns the node's name.
func (n *named) Name() string { return n.name }

func (n *named) setName(s string) { n.name = s }
