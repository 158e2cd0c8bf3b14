package neural

import (
	"fmt"
	"os"

	"github.com/yaricom/goNEAT/v4/neat/genetics"
)

// SaveGenome writes a genome to path in goNEAT's plain text encoding.
func SaveGenome(path string, genome *genetics.Genome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating genome file: %w", err)
	}
	defer f.Close()

	w, err := genetics.NewGenomeWriter(f, genetics.PlainGenomeEncoding)
	if err != nil {
		return fmt.Errorf("creating genome writer: %w", err)
	}
	if err := w.WriteGenome(genome); err != nil {
		return fmt.Errorf("writing genome: %w", err)
	}
	return f.Close()
}

// LoadGenome reads a genome written by SaveGenome.
func LoadGenome(path string) (*genetics.Genome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening genome file: %w", err)
	}
	defer f.Close()

	r, err := genetics.NewGenomeReader(f, genetics.PlainGenomeEncoding)
	if err != nil {
		return nil, fmt.Errorf("creating genome reader: %w", err)
	}
	genome, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading genome: %w", err)
	}
	return genome, nil
}
