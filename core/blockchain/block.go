package blockchain

import (
	"sync"
	"time"

	"github.com/shu8h0-null/minledger/core/logger"
)

var log = logger.NewLogger()

const (
	GenesisIndex        = 1
	GenesisProof        = 100
	GenesisPreviousHash = "1"
)

// Block fields are serialised in this exact set; Hash depends on it.
type Block struct {
	Index        int64         `json:"index"`
	Timestamp    float64       `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
	Proof        int64         `json:"proof"`
	PreviousHash string        `json:"previous_hash"`
}

type ChainReplacedEvent struct {
	Length int
}

type Blockchain struct {
	chain []Block
	// version changes on every append or replacement so a miner can tell
	// whether the tip it worked against is still the tip.
	version uint64
	events  *EventFeed[ChainReplacedEvent]
	mu      sync.RWMutex
}

// NewBlockchain returns a chain holding only the genesis block.
func NewBlockchain() *Blockchain {
	bc := &Blockchain{
		events: NewEventFeed[ChainReplacedEvent](),
	}
	bc.appendBlockLocked(GenesisProof, GenesisPreviousHash, nil)
	return bc
}

func timestamp(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}

// appendBlockLocked must be called with bc.mu held for writing (or before
// bc is shared).
func (bc *Blockchain) appendBlockLocked(proof int64, previousHash string, txs []Transaction) Block {
	if txs == nil {
		txs = []Transaction{}
	}
	b := Block{
		Index:        int64(len(bc.chain)) + 1,
		Timestamp:    timestamp(time.Now()),
		Transactions: txs,
		Proof:        proof,
		PreviousHash: previousHash,
	}
	bc.chain = append(bc.chain, b)
	bc.version++
	return b
}

func (bc *Blockchain) Events() *EventFeed[ChainReplacedEvent] {
	return bc.events
}

// Chain returns a copy of the blocks. Transactions inside blocks are never
// mutated after creation, so their backing arrays are shared.
func (bc *Blockchain) Chain() []Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	out := make([]Block, len(bc.chain))
	copy(out, bc.chain)
	return out
}

func (bc *Blockchain) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.chain)
}

func (bc *Blockchain) LastBlock() Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.chain[len(bc.chain)-1]
}

func (bc *Blockchain) tip() (Block, uint64) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.chain[len(bc.chain)-1], bc.version
}

// GetBlockByIndex looks a block up by its 1-based index.
func (bc *Blockchain) GetBlockByIndex(index int64) (Block, bool) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	if index < 1 || index > int64(len(bc.chain)) {
		return Block{}, false
	}
	return bc.chain[index-1], true
}

// Replace swaps the whole chain for candidate when candidate is strictly
// longer and valid. The length check and the swap happen under one lock.
func (bc *Blockchain) Replace(candidate []Block) bool {
	if err := ValidateChain(candidate); err != nil {
		log.Warnf("Refusing chain replacement: %v", err)
		return false
	}

	bc.mu.Lock()
	if len(candidate) <= len(bc.chain) {
		bc.mu.Unlock()
		return false
	}
	chain := make([]Block, len(candidate))
	copy(chain, candidate)
	bc.chain = chain
	bc.version++
	length := len(chain)
	bc.mu.Unlock()

	log.Infof("Chain replaced, new length %d", length)
	bc.events.Send(ChainReplacedEvent{Length: length})
	return true
}
