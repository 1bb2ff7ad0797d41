package grad

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/graph"
)

// TestGenerateAddScenario is the end-to-end check for the simplest
// trainable graph: Add(A, B) saved as the objective, both operands
// trainable, momentum zero. Addition's backward passes the seed gradient
// unchanged to both operands, so both updates must reference the same
// value, and zero momentum means placeholder accumulators only.
func TestGenerateAddScenario(t *testing.T) {
	g := graph.NewGraph("test")
	a := g.CreateVariable("A", graph.NewType(graph.Float32, 4), graph.InitXavier, 4, true)
	b := g.CreateVariable("B", graph.NewType(graph.Float32, 4), graph.InitXavier, 4, true)
	sum := g.CreateArithmetic("sum", graph.Add, a.Output(), b.Output())
	g.CreateSave("result", sum.Result())

	conf := DefaultTrainingConfig()
	conf.Momentum = 0
	require.NoError(t, Generate(g, conf, Train))

	var updates []*graph.SGDNode
	for _, n := range g.Nodes() {
		if sgd, ok := n.(*graph.SGDNode); ok {
			updates = append(updates, sgd)
		}
	}
	require.Len(t, updates, 2, "one update per trainable variable")

	assert.Equal(t, updates[0].Gradient(), updates[1].Gradient(),
		"addition passes the seed gradient unchanged to both operands")
	seed, ok := updates[0].Gradient().Node.(*graph.SplatNode)
	require.True(t, ok, "the shared gradient is the seed splat, got %T", updates[0].Gradient().Node)
	assert.Equal(t, 1.0, seed.Value())

	for _, sgd := range updates {
		assert.True(t, sgd.Gsum().Type().IsVoid(),
			"momentum 0 means a placeholder accumulator, not a full buffer")
	}
}

func TestGenerateUpdateCoverage(t *testing.T) {
	g := graph.NewGraph("test")
	a := g.CreateVariable("A", graph.NewType(graph.Float32, 4), graph.InitXavier, 4, true)
	b := g.CreateVariable("B", graph.NewType(graph.Float32, 4), graph.InitExtern, 0, false)
	sum := g.CreateArithmetic("sum", graph.Add, a.Output(), b.Output())
	g.CreateSave("result", sum.Result())

	require.NoError(t, Generate(g, DefaultTrainingConfig(), Train))

	var updates []*graph.SGDNode
	for _, n := range g.Nodes() {
		if sgd, ok := n.(*graph.SGDNode); ok {
			updates = append(updates, sgd)
		}
	}
	require.Len(t, updates, 1, "non-trainable variables receive no update node")
	assert.Equal(t, a.Output(), updates[0].Weight())
}

func TestGenerateMomentumAllocatesFullAccumulator(t *testing.T) {
	g := graph.NewGraph("test")
	a := g.CreateVariable("A", graph.NewType(graph.Float32, 3, 3), graph.InitXavier, 9, true)
	act := g.CreateRelu("relu", a.Output())
	g.CreateSave("result", act.Result())

	conf := DefaultTrainingConfig()
	conf.Momentum = 0.9
	require.NoError(t, Generate(g, conf, Train))

	var gsum *graph.Variable
	for _, v := range g.Variables() {
		if v.Name() == "gsum" {
			gsum = v
		}
	}
	require.NotNil(t, gsum, "momentum accumulator variable missing")
	assert.True(t, gsum.Type().Equal(a.Type()),
		"with momentum > 0 the accumulator is a full same-shaped buffer")
	assert.False(t, gsum.Trainable())
}

func TestGenerateDebugSnapshots(t *testing.T) {
	g := graph.NewGraph("test")
	// W is non-trainable on purpose: debug snapshots are taken for every
	// variable with a gradient, independent of trainability.
	w := g.CreateVariable("W", graph.NewType(graph.Float32, 4), graph.InitExtern, 0, false)
	act := g.CreateRelu("relu", w.Output())
	g.CreateSave("result", act.Result())

	require.NoError(t, Generate(g, DefaultTrainingConfig(), TrainDebug))

	gradVar, ok := g.GradientVariable(w)
	require.True(t, ok, "variable with a gradient must get a debug snapshot in TrainDebug mode")
	assert.Equal(t, "_grad_W", gradVar.Name())
	assert.True(t, gradVar.Type().Equal(w.Type()))

	var snapshot *graph.SaveNode
	for _, n := range g.Nodes() {
		if sv, ok := n.(*graph.SaveNode); ok && sv.Dest() == gradVar {
			snapshot = sv
		}
	}
	require.NotNil(t, snapshot, "no save node writes the snapshot variable")

	// Non-trainable variables still get no update node.
	for _, n := range g.Nodes() {
		if _, ok := n.(*graph.SGDNode); ok {
			t.Fatalf("unexpected update node %q for non-trainable variable", n.Name())
		}
	}
}

func TestGenerateTrainModeSkipsSnapshots(t *testing.T) {
	g := graph.NewGraph("test")
	w := g.CreateVariable("W", graph.NewType(graph.Float32, 4), graph.InitXavier, 4, true)
	act := g.CreateRelu("relu", w.Output())
	g.CreateSave("result", act.Result())

	require.NoError(t, Generate(g, DefaultTrainingConfig(), Train))

	if _, ok := g.GradientVariable(w); ok {
		t.Fatal("Train mode must not record debug gradient variables")
	}
}

func TestGenerateAccumulatesFanOut(t *testing.T) {
	g := graph.NewGraph("test")
	x := g.CreateVariable("x", graph.NewType(graph.Float32, 4), graph.InitXavier, 4, true)
	left := g.CreateRelu("left", x.Output())
	right := g.CreateTanh("right", x.Output())
	join := g.CreateArithmetic("join", graph.Add, left.Result(), right.Result())
	g.CreateSave("result", join.Result())

	require.NoError(t, Generate(g, DefaultTrainingConfig(), Train))

	var sgd *graph.SGDNode
	for _, n := range g.Nodes() {
		if u, ok := n.(*graph.SGDNode); ok {
			sgd = u
		}
	}
	require.NotNil(t, sgd)

	sum, ok := sgd.Gradient().Node.(*graph.ArithmeticNode)
	require.True(t, ok, "fan-out gradient must be an accumulation sum, got %T", sgd.Gradient().Node)
	assert.Equal(t, graph.Add, sum.Mode())
	assert.Equal(t, "updateGrad", sum.Name())
}

func TestGenerateNoRuleError(t *testing.T) {
	g := graph.NewGraph("test")
	// A splat is a backward-only construct; it has no differentiation rule
	// and is illegal in a trainable forward graph.
	sp := g.CreateSplat("seed", graph.NewType(graph.Float32, 4), 1)
	g.CreateSave("result", sp.Result())

	before := len(g.Nodes())
	err := Generate(g, DefaultTrainingConfig(), Train)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRule))
	assert.Len(t, g.Nodes(), before,
		"a failed pass must not have committed anything to the graph")
}

func TestGenerateMissingGradientError(t *testing.T) {
	g := graph.NewGraph("test")
	// Trainable but disconnected from the saved objective.
	g.CreateVariable("orphan", graph.NewType(graph.Float32, 4), graph.InitXavier, 4, true)
	w := g.CreateVariable("w", graph.NewType(graph.Float32, 4), graph.InitXavier, 4, true)
	act := g.CreateRelu("relu", w.Output())
	g.CreateSave("result", act.Result())

	err := Generate(g, DefaultTrainingConfig(), Train)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingGradient))
}

// TestGenerateConvnet runs the pass over a realistic forward graph and
// checks global bookkeeping: every trainable variable gets exactly one
// update, forward nodes are untouched, and new nodes only ever append.
func TestGenerateConvnet(t *testing.T) {
	g := graph.NewGraph("convnet")
	in := g.CreateVariable("input", graph.NewType(graph.Float32, 4, 14, 14, 1), graph.InitExtern, 0, false)
	labels := g.CreateVariable("labels", graph.NewType(graph.Int64, 4, 1), graph.InitExtern, 0, false)

	conv := g.CreateConvolution("conv1", in.Output(), 8, 3, 1, 1)
	act := g.CreateRelu("relu1", conv.Result())
	pool := g.CreatePool("pool1", graph.PoolMax, act.Result(), 2, 2, 0)
	fc := g.CreateFullyConnected("fc1", pool.Result(), 10)
	sm := g.CreateSoftMax("softmax", fc.Result(), labels.Output())
	g.CreateSave("result", sm.Result())

	forwardNodes := append([]graph.Node(nil), g.Nodes()...)
	trainableCount := 0
	for _, v := range g.Variables() {
		if v.Trainable() {
			trainableCount++
		}
	}

	require.NoError(t, Generate(g, DefaultTrainingConfig(), Train))

	for i, n := range forwardNodes {
		assert.Equal(t, n, g.Nodes()[i], "forward node order must be preserved")
	}

	updated := make(map[graph.Node]int)
	for _, n := range g.Nodes() {
		if sgd, ok := n.(*graph.SGDNode); ok {
			updated[sgd.Weight().Node]++
		}
	}
	assert.Len(t, updated, trainableCount, "every trainable variable gets an update")
	for n, count := range updated {
		assert.Equal(t, 1, count, "variable %q updated more than once", n.Name())
	}
}
