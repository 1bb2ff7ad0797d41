// Package main provides the Ember ML Framework CLI.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ember-ml/ember/grad"
	"github.com/ember-ml/ember/graph"
	"github.com/ember-ml/ember/internal/config"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Ember ML Framework %s\n", version)
			return
		case "grad":
			runGrad(os.Args[2:])
			return
		}
	}

	fmt.Println("Ember ML Framework - Training Graph Compilation for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  grad       Run the gradient generation pass on a demo graph")
}

func runGrad(args []string) {
	fs := flag.NewFlagSet("grad", flag.ExitOnError)
	configPath := fs.String("config", "", "HCL training configuration file")
	modeFlag := fs.String("mode", "", "compilation mode: infer, train or train_debug")
	dotPath := fs.String("dot", "", "write the augmented graph as Graphviz DOT to this file")
	quiet := fs.Bool("quiet", false, "suppress the graph listing")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	conf := grad.DefaultTrainingConfig()
	mode := grad.Train
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			logger.Error("loading config failed", "path", *configPath, "error", err)
			os.Exit(1)
		}
		conf = cfg.Training
		mode = cfg.Mode
	}
	if *modeFlag != "" {
		m, err := config.ParseMode(*modeFlag)
		if err != nil {
			logger.Error("bad mode", "error", err)
			os.Exit(1)
		}
		mode = m
	}

	g := buildDemoGraph()
	logger.Info("forward graph built",
		"graph", g.Name(), "nodes", len(g.Nodes()), "variables", len(g.Variables()))

	if mode != grad.Infer {
		if err := grad.Generate(g, conf, mode); err != nil {
			logger.Error("gradient generation failed", "error", err)
			os.Exit(1)
		}
		logger.Info("gradient pass complete",
			"mode", mode, "nodes", len(g.Nodes()), "variables", len(g.Variables()),
			"learning_rate", conf.LearningRate, "momentum", conf.Momentum,
			"batch_size", conf.BatchSize)
	}

	if !*quiet {
		g.Dump(os.Stdout)
	}
	if *dotPath != "" {
		f, err := os.Create(*dotPath)
		if err != nil {
			logger.Error("creating DOT file failed", "path", *dotPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := g.DumpDOT(f); err != nil {
			logger.Error("writing DOT failed", "path", *dotPath, "error", err)
			os.Exit(1)
		}
		logger.Info("DOT written", "path", *dotPath)
	}
}

// buildDemoGraph assembles a small MNIST-style convnet, used only as a
// forward graph for the pass to differentiate.
func buildDemoGraph() *graph.Graph {
	g := graph.NewGraph("demo-convnet")
	batch := 8

	in := g.CreateVariable("input", graph.NewType(graph.Float32, batch, 28, 28, 1), graph.InitExtern, 0, false)
	labels := g.CreateVariable("labels", graph.NewType(graph.Int64, batch, 1), graph.InitExtern, 0, false)

	conv := g.CreateConvolution("conv1", in.Output(), 16, 5, 1, 2)
	act := g.CreateRelu("relu1", conv.Result())
	pool := g.CreatePool("pool1", graph.PoolMax, act.Result(), 2, 2, 0)
	fc := g.CreateFullyConnected("fc1", pool.Result(), 10)
	sm := g.CreateSoftMax("softmax", fc.Result(), labels.Output())
	g.CreateSave("result", sm.Result())
	return g
}
