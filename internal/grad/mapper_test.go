package grad

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/graph"
)

func float32Value(name string, dims ...int) graph.NodeValue {
	v := graph.NewVariable(name, graph.NewType(graph.Float32, dims...), graph.InitExtern, 0, false)
	return v.Output()
}

func TestMapperRegistersFirstContributionDirectly(t *testing.T) {
	var staged []graph.Node
	m := NewMapper(func(n graph.Node) { staged = append(staged, n) })

	x := float32Value("x", 4)
	gx := float32Value("gx", 4)

	require.False(t, m.HasGradient(x))
	m.AddGradient(x, gx)
	require.True(t, m.HasGradient(x))

	got, err := m.GetGradient(x)
	require.NoError(t, err)
	assert.Equal(t, gx, got, "single contribution must be registered unchanged")
	assert.Empty(t, staged, "no sum node should be built for a single contribution")
}

func TestMapperSumsSecondContribution(t *testing.T) {
	for _, reversed := range []bool{false, true} {
		var staged []graph.Node
		m := NewMapper(func(n graph.Node) { staged = append(staged, n) })

		x := float32Value("x", 4)
		g1 := float32Value("g1", 4)
		g2 := float32Value("g2", 4)

		if reversed {
			m.AddGradient(x, g2)
			m.AddGradient(x, g1)
		} else {
			m.AddGradient(x, g1)
			m.AddGradient(x, g2)
		}

		require.Len(t, staged, 1, "collision must stage exactly one sum node")
		sum, ok := staged[0].(*graph.ArithmeticNode)
		require.True(t, ok, "staged node is %T, want *graph.ArithmeticNode", staged[0])
		assert.Equal(t, graph.Add, sum.Mode())
		assert.ElementsMatch(t,
			[]graph.NodeValue{g1, g2},
			[]graph.NodeValue{sum.LHS(), sum.RHS()},
			"sum must combine both contributions regardless of call order")

		got, err := m.GetGradient(x)
		require.NoError(t, err)
		assert.Equal(t, sum.Result(), got, "the sum must replace the registered gradient")
	}
}

func TestMapperThirdContributionChainsSums(t *testing.T) {
	var staged []graph.Node
	m := NewMapper(func(n graph.Node) { staged = append(staged, n) })

	x := float32Value("x", 4)
	m.AddGradient(x, float32Value("g1", 4))
	m.AddGradient(x, float32Value("g2", 4))
	m.AddGradient(x, float32Value("g3", 4))

	require.Len(t, staged, 2)
	second := staged[1].(*graph.ArithmeticNode)
	first := staged[0].(*graph.ArithmeticNode)
	assert.Equal(t, first.Result(), second.LHS(), "later sums must chain onto the accumulated gradient")
}

func TestMapperMissingGradient(t *testing.T) {
	m := NewMapper(func(graph.Node) {})

	_, err := m.GetGradient(float32Value("x", 4))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingGradient))
}

func TestMapperKeysOnResultIndex(t *testing.T) {
	m := NewMapper(func(graph.Node) {})

	// Two results of the same node must not collide in the map.
	conv := gradTestConv()
	r0 := graph.NodeValue{Node: conv, ResNo: 0}
	r1 := graph.NodeValue{Node: conv, ResNo: 1}

	m.AddGradient(r0, float32Value("g0", 8, 28, 28, 1))
	assert.True(t, m.HasGradient(r0))
	assert.False(t, m.HasGradient(r1), "entries must be keyed on (node, result index), not node alone")
}

// gradTestConv builds a detached multi-result grad node for key tests.
func gradTestConv() graph.Node {
	in := graph.NewVariable("cin", graph.NewType(graph.Float32, 8, 28, 28, 1), graph.InitExtern, 0, false)
	filter := graph.NewVariable("filter", graph.NewType(graph.Float32, 4, 5, 5, 1), graph.InitXavier, 25, true)
	bias := graph.NewVariable("bias", graph.NewType(graph.Float32, 4), graph.InitBroadcast, 0.1, true)
	conv := graph.NewConvolution("conv", in.Output(), filter.Output(), bias.Output(), 5, 1, 2, 4)
	outG := graph.NewSplat("seed", conv.Result().Type(), 1)
	return graph.NewConvolutionGrad("conv.grad", conv, outG.Result())
}
