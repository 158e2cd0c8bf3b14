// Package neural connects evolved goNEAT networks to the simulation: the
// controller capability birds are steered by and the evolution driver that
// supplies a fresh population every generation.
package neural

import (
	"fmt"
	"math/rand"

	"github.com/yaricom/goNEAT/v4/neat"
	"github.com/yaricom/goNEAT/v4/neat/genetics"
	neatmath "github.com/yaricom/goNEAT/v4/neat/math"
	"github.com/yaricom/goNEAT/v4/neat/network"
)

// Observation is the fixed input vector handed to a controller each tick.
type Observation struct {
	Y         float64 // Bird's vertical position
	GapTop    float64 // |y - upcoming gap top|
	GapBottom float64 // |y - upcoming gap bottom|
}

// Controller maps an observation to a scalar decision. The bird jumps when
// the output is strictly greater than the configured threshold.
type Controller interface {
	Decide(obs Observation) (float64, error)
}

// ControllerFunc adapts a plain function to the Controller interface.
type ControllerFunc func(obs Observation) float64

// Decide calls f.
func (f ControllerFunc) Decide(obs Observation) (float64, error) {
	return f(obs), nil
}

// BrainController wraps a goNEAT network for runtime evaluation.
type BrainController struct {
	Genome  *genetics.Genome
	network *network.Network
	sensors []float64
}

// NewBrainController creates a controller from a genome.
func NewBrainController(genome *genetics.Genome) (*BrainController, error) {
	phenotype, err := genome.Genesis(genome.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to build network from genome: %w", err)
	}

	return &BrainController{
		Genome:  genome,
		network: phenotype,
		sensors: make([]float64, BrainInputs+1),
	}, nil
}

// Decide loads the observation (bias first), activates the network to its
// full depth and returns the single output.
func (b *BrainController) Decide(obs Observation) (float64, error) {
	b.sensors[0] = 1.0
	b.sensors[1] = obs.Y
	b.sensors[2] = obs.GapTop
	b.sensors[3] = obs.GapBottom

	if err := b.network.LoadSensors(b.sensors); err != nil {
		return 0, fmt.Errorf("failed to load sensors: %w", err)
	}

	// Activate with depth-based steps for proper signal propagation
	depth, err := b.network.MaxActivationDepth()
	if err != nil || depth < 1 {
		depth = 5 // Fallback for simple networks
	}

	for i := 0; i < depth; i++ {
		if _, err := b.network.Activate(); err != nil {
			return 0, fmt.Errorf("activation failed: %w", err)
		}
	}

	outputs := b.network.ReadOutputs()
	if len(outputs) < BrainOutputs {
		return 0, fmt.Errorf("expected %d outputs, got %d", BrainOutputs, len(outputs))
	}
	out := outputs[0]

	// Flush network state for next tick
	if _, err := b.network.Flush(); err != nil {
		return 0, fmt.Errorf("flush failed: %w", err)
	}

	return out, nil
}

// NodeCount returns the number of nodes in the network.
func (b *BrainController) NodeCount() int {
	return b.network.NodeCount()
}

// LinkCount returns the number of links (connections) in the network.
func (b *BrainController) LinkCount() int {
	return b.network.LinkCount()
}

// CreateFlapGenome creates the starting genome: a bias and three input
// nodes fully connected to one tanh output, weights drawn from
// [-weightRange, weightRange].
func CreateFlapGenome(id int, weightRange float64, rng *rand.Rand) *genetics.Genome {
	trait := neat.NewTrait()
	trait.Id = 1

	nodes := make([]*network.NNode, 0, BrainInputs+1+BrainOutputs)

	bias := network.NewNNode(1, network.BiasNeuron)
	bias.ActivationType = neatmath.LinearActivation
	bias.Trait = trait
	nodes = append(nodes, bias)

	// Input nodes (IDs 2 to BrainInputs+1)
	for i := 0; i < BrainInputs; i++ {
		node := network.NewNNode(i+2, network.InputNeuron)
		node.ActivationType = neatmath.LinearActivation
		node.Trait = trait
		nodes = append(nodes, node)
	}

	outputID := BrainInputs + 2
	output := network.NewNNode(outputID, network.OutputNeuron)
	output.ActivationType = neatmath.TanhActivation
	output.Trait = trait
	nodes = append(nodes, output)

	genes := make([]*genetics.Gene, 0, BrainInputs+1)
	innovNum := int64(1)
	for i := 0; i < BrainInputs+1; i++ {
		weight := (rng.Float64()*2 - 1) * weightRange
		gene := genetics.NewGeneWithTrait(
			trait,
			weight,
			nodes[i],
			output,
			false,
			innovNum,
			0,
		)
		genes = append(genes, gene)
		innovNum++
	}

	return genetics.NewGenome(id, []*neat.Trait{trait}, nodes, genes)
}
