package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/grad"
)

func TestParseFullBlock(t *testing.T) {
	src := `
training {
  mode          = "train_debug"
  learning_rate = 0.05
  momentum      = 0.9
  l1_decay      = 0.0001
  l2_decay      = 0.0005
  batch_size    = 32
}
`
	cfg, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, grad.TrainDebug, cfg.Mode)
	assert.Equal(t, 0.05, cfg.Training.LearningRate)
	assert.Equal(t, 0.9, cfg.Training.Momentum)
	assert.Equal(t, 0.0001, cfg.Training.L1Decay)
	assert.Equal(t, 0.0005, cfg.Training.L2Decay)
	assert.Equal(t, 32, cfg.Training.BatchSize)
}

func TestParseDefaultsExpression(t *testing.T) {
	src := `
training {
  learning_rate = defaults.learning_rate * 0.5
  batch_size    = defaults.batch_size
}
`
	cfg, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)

	def := grad.DefaultTrainingConfig()
	assert.InDelta(t, def.LearningRate*0.5, cfg.Training.LearningRate, 1e-12)
	assert.Equal(t, def.BatchSize, cfg.Training.BatchSize)
}

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""), "empty.hcl")
	require.NoError(t, err)

	assert.Equal(t, grad.DefaultTrainingConfig(), cfg.Training)
	assert.Equal(t, grad.Train, cfg.Mode)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"zero learning rate", `training { learning_rate = 0 }`},
		{"negative learning rate", `training { learning_rate = -0.1 }`},
		{"momentum out of range", `training { momentum = 1.0 }`},
		{"negative decay", `training { l2_decay = -0.1 }`},
		{"zero batch size", `training { batch_size = 0 }`},
		{"unknown mode", `training { mode = "evaluate" }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "test.hcl")
			assert.Error(t, err)
		})
	}
}

func TestParseBadSyntax(t *testing.T) {
	_, err := Parse([]byte(`training {`), "broken.hcl")
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	for s, want := range map[string]grad.CompilationMode{
		"infer":       grad.Infer,
		"train":       grad.Train,
		"train_debug": grad.TrainDebug,
	} {
		got, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("bogus")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
training {
  learning_rate = 0.01
  batch_size    = 16
}
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Training.BatchSize)

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
