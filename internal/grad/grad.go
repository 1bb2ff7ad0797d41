// Package grad rewrites a forward computation graph for training: for
// every forward operation it synthesizes the backward node(s) computing
// the gradient of the objective with respect to that operation's inputs,
// then threads an SGD update node onto every trainable variable.
//
// The pass is a pure graph transformation. It executes no arithmetic:
// the nodes it builds compute gradients only when the augmented graph is
// later lowered and run. It is single-threaded, owns its gradient mapper
// and staging arenas for the duration of one Generate call, and either
// completes with a fully augmented graph or returns an error, leaving the
// graph exactly as it found it.
package grad

import (
	"fmt"

	"github.com/ember-ml/ember/internal/graph"
)

// builder carries the per-invocation state shared by the rules: the
// gradient mapper and the staging arena for new nodes.
type builder struct {
	m     *Mapper
	nodes []graph.Node
}

// stage appends a newly built node to the staging arena. Staged nodes are
// committed to the graph only after the sweep completes, so the sweep
// always reads a stable view of the forward graph.
func (b *builder) stage(n graph.Node) {
	b.nodes = append(b.nodes, n)
}

// Generate augments g in place with gradient nodes for every forward
// operation and an SGD update node for every trainable variable, using
// the hyperparameters in conf. In TrainDebug mode it additionally saves
// each variable's gradient into a fresh "_grad_<name>" output variable
// and records the association, retrievable via g.GradientVariable.
//
// The sweep visits nodes in reverse dependency-first order, so each
// node's rule runs only after every consumer of its results has
// contributed to its gradient entry. All new nodes and variables are
// staged during the sweep and appended to the graph in one pass at the
// end: nodes first, then variables.
//
// On error nothing has been committed: partially built backward state
// lives only in the pass's staging arenas, never in g, so g is returned
// unmodified.
func Generate(g *graph.Graph, conf TrainingConfig, mode CompilationMode) error {
	b := &builder{}
	b.m = NewMapper(b.stage)

	// Variables to add to the graph.
	var newVars []*graph.Variable

	pov := graph.NewPostOrderVisitor()
	for _, v := range g.Variables() {
		pov.Visit(v)
	}
	for _, n := range g.Nodes() {
		pov.Visit(n)
	}
	order := pov.PostOrder()

	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if n.Kind() == graph.KindVariable {
			// Variables have no backward rule, only an update rule.
			continue
		}
		rule, ok := rules[n.Kind()]
		if !ok {
			return fmt.Errorf("grad: node %q kind %s: %w", n.Name(), n.Kind(), ErrNoRule)
		}
		if err := rule(n, b); err != nil {
			return err
		}
	}

	type gradVarPair struct {
		v, gradVar *graph.Variable
	}
	var pairs []gradVarPair

	for _, v := range g.Variables() {
		// In TrainDebug mode, persist a snapshot of the last gradient of
		// every variable that has one, trainable or not.
		if mode == TrainDebug && b.m.HasGradient(v.Output()) {
			grad, err := b.m.GetGradient(v.Output())
			if err != nil {
				return err
			}
			gradVar := graph.NewVariable("_grad_"+v.Name(), v.Type(), graph.InitExtern, 0, false)
			newVars = append(newVars, gradVar)
			b.stage(graph.NewSave("_grad_"+v.Name(), grad, gradVar))
			pairs = append(pairs, gradVarPair{v: v, gradVar: gradVar})
		}

		// Don't update variables that are not in training mode.
		if !v.Trainable() {
			continue
		}

		grad, err := b.m.GetGradient(v.Output())
		if err != nil {
			return err
		}

		// The momentum accumulator is a full same-shaped buffer only when
		// momentum is in play; otherwise a zero-sized placeholder.
		gsumTy := v.Type()
		if conf.Momentum <= 0 {
			gsumTy = graph.VoidTy()
		}
		gsum := graph.NewVariable("gsum", gsumTy, graph.InitBroadcast, 0, false)
		newVars = append(newVars, gsum)

		b.stage(graph.NewSGD(v.Name(), grad, v.Output(), gsum.Output(),
			conf.L1Decay, conf.L2Decay, conf.LearningRate, conf.Momentum, conf.BatchSize))
	}

	// Commit: append all of the new nodes, then all of the new variables.
	for _, n := range b.nodes {
		g.AddNode(n)
	}
	for _, v := range newVars {
		g.AddVariable(v)
	}
	for _, p := range pairs {
		g.RecordGradientVariable(p.v, p.gradVar)
	}
	return nil
}
