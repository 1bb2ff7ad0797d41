// Copyright 2026 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the tensor computation graph model.
//
// A Graph owns variables (persistent leaves, some trainable) and
// operation nodes over a closed operator set. Values flowing between
// nodes are identified by NodeValue: a (node, result index) pair.
//
// Example:
//
//	g := graph.NewGraph("mlp")
//	in := g.CreateVariable("input", graph.NewType(graph.Float32, 8, 16), graph.InitExtern, 0, false)
//	fc := g.CreateFullyConnected("fc", in.Output(), 10)
//	act := g.CreateRelu("relu", fc.Result())
//	g.CreateSave("result", act.Result())
package graph

import (
	igraph "github.com/ember-ml/ember/internal/graph"
)

// Graph owns the variables and operation nodes of one computation graph.
type Graph = igraph.Graph

// NewGraph creates an empty graph.
func NewGraph(name string) *Graph {
	return igraph.NewGraph(name)
}

// Node is one vertex of the computation graph.
type Node = igraph.Node

// NodeValue identifies one typed result of a node.
type NodeValue = igraph.NodeValue

// Variable is a persistent leaf node holding learnable or externally
// supplied state.
type Variable = igraph.Variable

// NewVariable creates a detached variable node.
func NewVariable(name string, ty Type, init InitKind, initVal float64, trainable bool) *Variable {
	return igraph.NewVariable(name, ty, init, initVal, trainable)
}

// Kind identifies the operator of a node.
type Kind = igraph.Kind

// Type describes one typed value: element type plus shape.
type Type = igraph.Type

// NewType creates a Type from an element type and dimensions.
func NewType(elem DataType, dims ...int) Type {
	return igraph.NewType(elem, dims...)
}

// VoidTy returns the zero-sized placeholder type.
func VoidTy() Type {
	return igraph.VoidTy()
}

// Shape represents the dimensions of a tensor value.
type Shape = igraph.Shape

// DataType represents runtime element-type information.
type DataType = igraph.DataType

// Supported element types.
const (
	Float32 = igraph.Float32
	Float64 = igraph.Float64
	Int32   = igraph.Int32
	Int64   = igraph.Int64
	Uint8   = igraph.Uint8
)

// InitKind describes a variable's initialization policy.
type InitKind = igraph.InitKind

// Initialization policies.
const (
	InitExtern    = igraph.InitExtern
	InitBroadcast = igraph.InitBroadcast
	InitXavier    = igraph.InitXavier
)

// ArithmeticMode selects the elementwise operation of an arithmetic node.
type ArithmeticMode = igraph.ArithmeticMode

// Elementwise arithmetic modes.
const (
	Add = igraph.Add
	Sub = igraph.Sub
	Mul = igraph.Mul
	Div = igraph.Div
)

// PoolMode selects the pooling reduction.
type PoolMode = igraph.PoolMode

// Pooling modes.
const (
	PoolMax = igraph.PoolMax
	PoolAvg = igraph.PoolAvg
)

// PostOrderVisitor builds a dependency-first linear order over nodes.
type PostOrderVisitor = igraph.PostOrderVisitor

// NewPostOrderVisitor creates an empty visitor.
func NewPostOrderVisitor() *PostOrderVisitor {
	return igraph.NewPostOrderVisitor()
}
