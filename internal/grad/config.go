package grad

// TrainingConfig carries the hyperparameters bound into every synthesized
// update node. It is passed by value and never mutated by the pass.
type TrainingConfig struct {
	LearningRate float64
	Momentum     float64
	L1Decay      float64
	L2Decay      float64
	BatchSize    int
}

// DefaultTrainingConfig returns a config with conventional starting
// values: learning rate 0.01, no momentum, no decay, batch size 1.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{LearningRate: 0.01, BatchSize: 1}
}

// CompilationMode controls what the compilation pipeline emits.
type CompilationMode int

const (
	// Infer compiles the forward graph only.
	Infer CompilationMode = iota
	// Train additionally generates gradient and update nodes.
	Train
	// TrainDebug is Train plus a per-variable gradient snapshot saved as
	// an extra graph output for external inspection.
	TrainDebug
)

// String returns a human-readable name for the mode.
func (m CompilationMode) String() string {
	switch m {
	case Infer:
		return "infer"
	case Train:
		return "train"
	case TrainDebug:
		return "train_debug"
	default:
		return "unknown"
	}
}
