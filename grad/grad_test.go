// Copyright 2026 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package grad_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/grad"
	"github.com/ember-ml/ember/graph"
)

// TestGeneratePublicSurface exercises the re-exported API end to end: a
// small MLP forward graph is augmented in place with gradient and update
// nodes.
func TestGeneratePublicSurface(t *testing.T) {
	g := graph.NewGraph("mlp")
	in := g.CreateVariable("input", graph.NewType(graph.Float32, 8, 16), graph.InitExtern, 0, false)
	fc := g.CreateFullyConnected("fc", in.Output(), 10)
	act := g.CreateRelu("relu", fc.Result())
	g.CreateSave("result", act.Result())

	forwardNodes := len(g.Nodes())
	forwardVars := len(g.Variables())
	conf := grad.DefaultTrainingConfig()
	conf.Momentum = 0.9
	require.NoError(t, grad.Generate(g, conf, grad.Train))

	assert.Greater(t, len(g.Nodes()), forwardNodes, "the pass must append backward nodes")
	// One momentum accumulator per trainable variable (fc weights + bias).
	assert.Equal(t, forwardVars+2, len(g.Variables()))
}
