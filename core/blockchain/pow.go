package blockchain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Difficulty is the hex prefix a proof digest has to start with.
const Difficulty = "0000"

// how many candidates are tried between two context checks
const cancelCheckInterval = 1024

// ValidProof reports whether sha256(lastProof || proof), both rendered in
// base 10 with no separator, starts with Difficulty in hex.
func ValidProof(lastProof, proof int64) bool {
	guess := strconv.FormatInt(lastProof, 10) + strconv.FormatInt(proof, 10)
	sum := sha256.Sum256([]byte(guess))
	return strings.HasPrefix(hex.EncodeToString(sum[:]), Difficulty)
}

// ProofOfWork scans upward from zero and returns the smallest proof that
// satisfies ValidProof against lastProof. The only error is ctx.Err().
func ProofOfWork(ctx context.Context, lastProof int64) (int64, error) {
	for proof := int64(0); ; proof++ {
		if proof%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if ValidProof(lastProof, proof) {
			return proof, nil
		}
	}
}
