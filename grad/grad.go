// Copyright 2026 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package grad provides reverse-mode automatic differentiation by graph
// rewriting.
//
// Generate walks a forward graph in reverse dependency order, synthesizes
// backward nodes computing the gradient of the saved objective with
// respect to every operation's inputs, and threads an SGD update node
// onto every trainable variable. The pass builds graph structure only; no
// arithmetic runs until the augmented graph is executed.
//
// Example:
//
//	g := graph.NewGraph("model")
//	// ... build forward graph ending in g.CreateSave(...) ...
//	conf := grad.DefaultTrainingConfig()
//	if err := grad.Generate(g, conf, grad.Train); err != nil {
//	    return err
//	}
package grad

import (
	igrad "github.com/ember-ml/ember/internal/grad"

	"github.com/ember-ml/ember/internal/graph"
)

// TrainingConfig carries the hyperparameters bound into update nodes.
type TrainingConfig = igrad.TrainingConfig

// DefaultTrainingConfig returns conventional starting hyperparameters.
func DefaultTrainingConfig() TrainingConfig {
	return igrad.DefaultTrainingConfig()
}

// CompilationMode controls what the compilation pipeline emits.
type CompilationMode = igrad.CompilationMode

// Compilation modes.
const (
	Infer      = igrad.Infer
	Train      = igrad.Train
	TrainDebug = igrad.TrainDebug
)

// Mapper tracks accumulated gradients during the backward sweep.
type Mapper = igrad.Mapper

// Errors returned by Generate.
var (
	ErrNoRule          = igrad.ErrNoRule
	ErrMissingGradient = igrad.ErrMissingGradient
	ErrShapeMismatch   = igrad.ErrShapeMismatch
)

// Generate augments g in place with gradient and update nodes.
func Generate(g *graph.Graph, conf TrainingConfig, mode CompilationMode) error {
	return igrad.Generate(g, conf, mode)
}

// HasRule reports whether a node kind has a differentiation rule.
func HasRule(kind graph.Kind) bool {
	return igrad.HasRule(kind)
}
