package blockchain

import (
	"errors"
	"fmt"
)

var ErrEmptyChain = errors.New("chain is empty")

// ValidateChain walks chain once and returns the first broken link.
func ValidateChain(chain []Block) error {
	if len(chain) == 0 {
		return ErrEmptyChain
	}
	if chain[0].Index != GenesisIndex {
		return fmt.Errorf("first block has index %d, want %d", chain[0].Index, GenesisIndex)
	}

	prev := &chain[0]
	for i := 1; i < len(chain); i++ {
		block := &chain[i]

		if block.Index != prev.Index+1 {
			return fmt.Errorf("block %d: index does not follow %d", block.Index, prev.Index)
		}

		prevHash, err := Hash(prev)
		if err != nil {
			return fmt.Errorf("block %d: %w", block.Index, err)
		}
		if block.PreviousHash != prevHash {
			return fmt.Errorf("block %d: previous hash %q does not match %q", block.Index, block.PreviousHash, prevHash)
		}

		if !ValidProof(prev.Proof, block.Proof) {
			return fmt.Errorf("block %d: invalid proof %d after %d", block.Index, block.Proof, prev.Proof)
		}
		prev = block
	}
	return nil
}

func IsValidChain(chain []Block) bool {
	return ValidateChain(chain) == nil
}
