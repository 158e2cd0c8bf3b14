package neural

import (
	"fmt"

	"github.com/yaricom/goNEAT/v4/neat"
	neatmath "github.com/yaricom/goNEAT/v4/neat/math"
)

// BrainInputs is the number of observations fed to a controller each tick.
const BrainInputs = 3

// BrainOutputs is the number of controller outputs.
const BrainOutputs = 1

// DefaultNEATOptions returns NEAT options tuned for the flap task.
func DefaultNEATOptions() *neat.Options {
	return &neat.Options{
		// Trait mutation
		TraitParamMutProb:  0.5,
		TraitMutationPower: 1.0,

		// Weight mutation
		WeightMutPower: 2.5,

		// Structural mutation rates
		MutateAddNodeProb:      0.03,
		MutateAddLinkProb:      0.08,
		MutateToggleEnableProb: 0.01,
		NewLinkTries:           20,

		// Weight mutation probability
		MutateLinkWeightsProb: 0.9,
		MutateOnlyProb:        0.25,
		MutateRandomTraitProb: 0.1,

		// Mating probabilities
		MateMultipointProb:    0.6,
		MateMultipointAvgProb: 0.4,
		MateSinglepointProb:   0.0,
		MateOnlyProb:          0.2,
		RecurOnlyProb:         0.0,
		InterspeciesMateRate:  0.001,

		// Speciation
		CompatThreshold: 3.0,
		DisjointCoeff:   1.0,
		ExcessCoeff:     1.0,
		MutdiffCoeff:    0.4,

		// Species management
		DropOffAge:      15,
		SurvivalThresh:  0.2,
		AgeSignificance: 1.0,

		PopSize:        50,
		NumGenerations: 50,
		LogLevel:       string(neat.LogLevelWarning),

		// Hidden nodes added by mutation
		NodeActivators:     []neatmath.NodeActivationType{neatmath.TanhActivation, neatmath.SigmoidSteepenedActivation},
		NodeActivatorsProb: []float64{0.5, 0.5},
	}
}

// LoadNEATOptions reads NEAT options from a goNEAT options file (YAML or plain).
// An empty path returns DefaultNEATOptions. Either way goNEAT's logger is
// initialized from the options' log level.
func LoadNEATOptions(path string) (*neat.Options, error) {
	if path == "" {
		opts := DefaultNEATOptions()
		if err := neat.InitLogger(opts.LogLevel); err != nil {
			return nil, fmt.Errorf("initializing NEAT logger: %w", err)
		}
		return opts, nil
	}
	opts, err := neat.ReadNeatOptionsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading NEAT options: %w", err)
	}
	if opts.PopSize < 1 {
		return nil, fmt.Errorf("NEAT options: pop_size must be positive, got %d", opts.PopSize)
	}
	return opts, nil
}
