package blockchain

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex encoded SHA-256 of the canonical JSON form of b.
// Every node must produce the same digest for the same block, so the
// preimage has sorted keys, no whitespace and no HTML escaping.
func Hash(b *Block) (string, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("marshal block %d: %w", b.Index, err)
	}
	return HashJSON(raw)
}

// HashJSON hashes an arbitrary JSON document after canonicalising it.
func HashJSON(raw []byte) (string, error) {
	canonical, err := Canonicalize(raw)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Canonicalize re-encodes a JSON document with object keys in lexicographic
// order. Numbers are kept verbatim.
func Canonicalize(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var tree interface{}
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("encode canonical json: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
