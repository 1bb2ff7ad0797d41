package graph

import "fmt"

// Graph owns a forward computation graph: its variables (leaves) and its
// operation nodes, in insertion order. Node names are made unique at
// insertion. Passes augment a graph exclusively through AddNode and
// AddVariable; existing entries are never modified or removed.
type Graph struct {
	name     string
	vars     []*Variable
	nodes    []Node
	names    map[string]int
	gradVars map[*Variable]*Variable
}

// NewGraph creates an empty graph.
func NewGraph(name string) *Graph {
	return &Graph{
		name:     name,
		names:    make(map[string]int),
		gradVars: make(map[*Variable]*Variable),
	}
}

// Name returns the graph's name.
func (g *Graph) Name() string { return g.name }

// Variables returns the graph's variables in insertion order.
func (g *Graph) Variables() []*Variable { return g.vars }

// Nodes returns the graph's operation nodes in insertion order.
func (g *Graph) Nodes() []Node { return g.nodes }

// uniqueName claims base, appending a numeric suffix if it is taken.
func (g *Graph) uniqueName(base string) string {
	if base == "" {
		base = "node"
	}
	n, taken := g.names[base]
	if !taken {
		g.names[base] = 1
		return base
	}
	for {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if _, ok := g.names[candidate]; !ok {
			g.names[base] = n + 1
			g.names[candidate] = 1
			return candidate
		}
		n++
	}
}

// AddNode appends a node to the graph, renaming it if its name is taken,
// and returns it.
func (g *Graph) AddNode(n Node) Node {
	if nn, ok := n.(interface{ setName(string) }); ok {
		nn.setName(g.uniqueName(n.Name()))
	}
	g.nodes = append(g.nodes, n)
	return n
}

// AddVariable appends a variable to the graph, renaming it if its name is
// taken, and returns it.
func (g *Graph) AddVariable(v *Variable) *Variable {
	v.setName(g.uniqueName(v.Name()))
	g.vars = append(g.vars, v)
	return v
}

// RecordGradientVariable associates a variable with the variable holding
// its debug gradient snapshot.
func (g *Graph) RecordGradientVariable(v, gradVar *Variable) {
	g.gradVars[v] = gradVar
}

// GradientVariable returns the variable holding v's debug gradient
// snapshot, if one was recorded during gradient generation.
func (g *Graph) GradientVariable(v *Variable) (*Variable, bool) {
	gv, ok := g.gradVars[v]
	return gv, ok
}

// CreateVariable creates a variable and adds it to the graph.
func (g *Graph) CreateVariable(name string, ty Type, init InitKind, initVal float64, trainable bool) *Variable {
	return g.AddVariable(NewVariable(name, ty, init, initVal, trainable))
}

// CreateArithmetic creates an elementwise arithmetic node and adds it to
// the graph.
func (g *Graph) CreateArithmetic(name string, mode ArithmeticMode, lhs, rhs NodeValue) *ArithmeticNode {
	n := NewArithmetic(name, mode, lhs, rhs)
	g.AddNode(n)
	return n
}

// CreateRelu creates a relu node and adds it to the graph.
func (g *Graph) CreateRelu(name string, in NodeValue) *ReluNode {
	n := NewRelu(name, in)
	g.AddNode(n)
	return n
}

// CreateSigmoid creates a sigmoid node and adds it to the graph.
func (g *Graph) CreateSigmoid(name string, in NodeValue) *SigmoidNode {
	n := NewSigmoid(name, in)
	g.AddNode(n)
	return n
}

// CreateTanh creates a tanh node and adds it to the graph.
func (g *Graph) CreateTanh(name string, in NodeValue) *TanhNode {
	n := NewTanh(name, in)
	g.AddNode(n)
	return n
}

// CreateConvolution creates a convolution over in with freshly allocated
// filter and bias variables, and adds everything to the graph. The filter
// is Xavier-initialized and trainable; the bias starts at a small
// positive constant.
func (g *Graph) CreateConvolution(name string, in NodeValue, depth, kernel, stride, pad int) *ConvolutionNode {
	idim := in.Type().Dims
	if len(idim) != 4 {
		panic(fmt.Sprintf("graph: convolution input must be 4D NHWC, got %s", in.Type()))
	}
	filterTy := in.Type().WithDims(Shape{depth, kernel, kernel, idim[3]})
	filter := g.CreateVariable(name+".filter", filterTy, InitXavier, float64(filterTy.Dims.NumElements()), true)
	bias := g.CreateVariable(name+".bias", in.Type().WithDims(Shape{depth}), InitBroadcast, 0.1, true)
	n := NewConvolution(name, in, filter.Output(), bias.Output(), kernel, stride, pad, depth)
	g.AddNode(n)
	return n
}

// CreatePool creates a pooling node and adds it to the graph.
func (g *Graph) CreatePool(name string, mode PoolMode, in NodeValue, kernel, stride, pad int) *PoolNode {
	n := NewPool(name, mode, in, kernel, stride, pad)
	g.AddNode(n)
	return n
}

// CreateFullyConnected creates a fully-connected layer of the given output
// depth over in, flattening it to [batch, flat] first when needed, with
// freshly allocated weight and bias variables.
func (g *Graph) CreateFullyConnected(name string, in NodeValue, depth int) *FullyConnectedNode {
	idim := in.Type().Dims
	if len(idim) < 2 {
		panic(fmt.Sprintf("graph: fullyconnected input must have a batch axis, got %s", in.Type()))
	}
	if len(idim) > 2 {
		flat := idim.NumElements() / idim[0]
		rs := NewReshape(name+".flatten", in, Shape{idim[0], flat})
		g.AddNode(rs)
		in = rs.Result()
		idim = in.Type().Dims
	}
	weightsTy := in.Type().WithDims(Shape{idim[1], depth})
	weights := g.CreateVariable(name+".weights", weightsTy, InitXavier, float64(idim[1]), true)
	bias := g.CreateVariable(name+".bias", in.Type().WithDims(Shape{depth}), InitBroadcast, 0.1, true)
	n := NewFullyConnected(name, in, weights.Output(), bias.Output())
	g.AddNode(n)
	return n
}

// CreateBatchNormalization creates a batch-normalization node over in with
// freshly allocated scale, bias and running-statistics variables.
func (g *Graph) CreateBatchNormalization(name string, in NodeValue, channelIdx int, epsilon, momentum float64) *BatchNormalizationNode {
	idim := in.Type().Dims
	if channelIdx < 0 || channelIdx >= len(idim) {
		panic(fmt.Sprintf("graph: batchnormalization channel axis %d out of range for %s", channelIdx, in.Type()))
	}
	chTy := in.Type().WithDims(Shape{idim[channelIdx]})
	scale := g.CreateVariable(name+".scale", chTy, InitBroadcast, 1, true)
	bias := g.CreateVariable(name+".bias", chTy, InitBroadcast, 0, true)
	mean := g.CreateVariable(name+".mean", chTy, InitBroadcast, 0, false)
	variance := g.CreateVariable(name+".var", chTy, InitBroadcast, 1, false)
	n := NewBatchNormalization(name, in, scale.Output(), bias.Output(), mean.Output(), variance.Output(), channelIdx, epsilon, momentum)
	g.AddNode(n)
	return n
}

// CreateLocalResponseNormalization creates an LRN node and adds it to the
// graph.
func (g *Graph) CreateLocalResponseNormalization(name string, in NodeValue, halfWindow int, alpha, beta, k float64) *LocalResponseNormalizationNode {
	n := NewLocalResponseNormalization(name, in, halfWindow, alpha, beta, k)
	g.AddNode(n)
	return n
}

// CreateSoftMax creates a softmax node and adds it to the graph.
func (g *Graph) CreateSoftMax(name string, in, selected NodeValue) *SoftMaxNode {
	n := NewSoftMax(name, in, selected)
	g.AddNode(n)
	return n
}

// CreateRegression creates a regression node and adds it to the graph.
func (g *Graph) CreateRegression(name string, in, expected NodeValue) *RegressionNode {
	n := NewRegression(name, in, expected)
	g.AddNode(n)
	return n
}

// CreateReshape creates a reshape node and adds it to the graph.
func (g *Graph) CreateReshape(name string, in NodeValue, dims Shape) *ReshapeNode {
	n := NewReshape(name, in, dims)
	g.AddNode(n)
	return n
}

// CreateTranspose creates a transpose node and adds it to the graph.
func (g *Graph) CreateTranspose(name string, in NodeValue, shuffle []int) *TransposeNode {
	n := NewTranspose(name, in, shuffle)
	g.AddNode(n)
	return n
}

// CreateSlice creates a slice node and adds it to the graph.
func (g *Graph) CreateSlice(name string, in NodeValue, start []int, dims Shape) *SliceNode {
	n := NewSlice(name, in, start, dims)
	g.AddNode(n)
	return n
}

// CreateConcat creates a concat node and adds it to the graph.
func (g *Graph) CreateConcat(name string, inputs []NodeValue, dim int) *ConcatNode {
	n := NewConcat(name, inputs, dim)
	g.AddNode(n)
	return n
}

// CreateSave marks in as a graph output, allocating the destination
// variable, and adds both to the graph.
func (g *Graph) CreateSave(name string, in NodeValue) *SaveNode {
	dest := g.CreateVariable(name, in.Type(), InitExtern, 0, false)
	n := NewSave(name, in, dest)
	g.AddNode(n)
	return n
}

// CreateSplat creates a splat node and adds it to the graph.
func (g *Graph) CreateSplat(name string, ty Type, value float64) *SplatNode {
	n := NewSplat(name, ty, value)
	g.AddNode(n)
	return n
}
