// Package config loads training configuration from HCL files into the
// grad package's TrainingConfig. Expressions in the file can reference a
// `defaults` object exposing the conventional starting values, e.g.
//
//	training {
//	  mode          = "train"
//	  learning_rate = defaults.learning_rate * 0.5
//	  momentum      = 0.9
//	  batch_size    = 32
//	}
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/ember-ml/ember/internal/grad"
)

// Config is the decoded training configuration.
type Config struct {
	Training grad.TrainingConfig
	Mode     grad.CompilationMode
}

type fileContent struct {
	Training *trainingBlock `hcl:"training,block"`
}

type trainingBlock struct {
	Mode         *string  `hcl:"mode,optional"`
	LearningRate *float64 `hcl:"learning_rate,optional"`
	Momentum     *float64 `hcl:"momentum,optional"`
	L1Decay      *float64 `hcl:"l1_decay,optional"`
	L2Decay      *float64 `hcl:"l2_decay,optional"`
	BatchSize    *int     `hcl:"batch_size,optional"`
}

// evalContext exposes the `defaults` object to configuration expressions.
func evalContext() *hcl.EvalContext {
	def := grad.DefaultTrainingConfig()
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ObjectVal(map[string]cty.Value{
				"learning_rate": cty.NumberFloatVal(def.LearningRate),
				"momentum":      cty.NumberFloatVal(def.Momentum),
				"l1_decay":      cty.NumberFloatVal(def.L1Decay),
				"l2_decay":      cty.NumberFloatVal(def.L2Decay),
				"batch_size":    cty.NumberIntVal(int64(def.BatchSize)),
			}),
		},
	}
}

// Load reads and decodes an HCL training configuration file.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse decodes HCL training configuration from a byte slice. filename is
// used in diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parsing %s: %s", filename, diags.Error())
	}

	var content fileContent
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &content); diags.HasErrors() {
		return nil, fmt.Errorf("config: decoding %s: %s", filename, diags.Error())
	}

	cfg := &Config{Training: grad.DefaultTrainingConfig(), Mode: grad.Train}
	if content.Training != nil {
		b := content.Training
		if b.Mode != nil {
			mode, err := ParseMode(*b.Mode)
			if err != nil {
				return nil, err
			}
			cfg.Mode = mode
		}
		if b.LearningRate != nil {
			cfg.Training.LearningRate = *b.LearningRate
		}
		if b.Momentum != nil {
			cfg.Training.Momentum = *b.Momentum
		}
		if b.L1Decay != nil {
			cfg.Training.L1Decay = *b.L1Decay
		}
		if b.L2Decay != nil {
			cfg.Training.L2Decay = *b.L2Decay
		}
		if b.BatchSize != nil {
			cfg.Training.BatchSize = *b.BatchSize
		}
	}
	if err := validate(cfg.Training); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseMode converts a mode name to a CompilationMode.
func ParseMode(s string) (grad.CompilationMode, error) {
	switch s {
	case "infer":
		return grad.Infer, nil
	case "train":
		return grad.Train, nil
	case "train_debug":
		return grad.TrainDebug, nil
	default:
		return 0, fmt.Errorf("config: unknown compilation mode %q (want infer, train or train_debug)", s)
	}
}

func validate(tc grad.TrainingConfig) error {
	if tc.LearningRate <= 0 {
		return fmt.Errorf("config: learning_rate must be > 0, got %g", tc.LearningRate)
	}
	if tc.Momentum < 0 || tc.Momentum >= 1 {
		return fmt.Errorf("config: momentum must be in [0, 1), got %g", tc.Momentum)
	}
	if tc.L1Decay < 0 || tc.L2Decay < 0 {
		return fmt.Errorf("config: decay coefficients must be >= 0, got l1=%g l2=%g", tc.L1Decay, tc.L2Decay)
	}
	if tc.BatchSize < 1 {
		return fmt.Errorf("config: batch_size must be >= 1, got %d", tc.BatchSize)
	}
	return nil
}
