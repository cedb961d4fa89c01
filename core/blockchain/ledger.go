package blockchain

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

const minerSubscriber = "miner"

// Ledger owns the chain and the pending pool of one node. It is the only
// writer of either.
type Ledger struct {
	blockchain *Blockchain
	mempool    *Mempool
	miner      *Miner
	// serialises Mine so only one proof search runs at a time
	mineMu sync.Mutex
}

func NewLedger(bc *Blockchain, mem *Mempool, miner *Miner) (*Ledger, error) {
	if bc == nil {
		return nil, errors.New("blockchain cannot be nil")
	}
	if mem == nil {
		return nil, errors.New("mempool cannot be nil")
	}
	if miner == nil {
		return nil, errors.New("miner cannot be nil")
	}

	return &Ledger{
		blockchain: bc,
		mempool:    mem,
		miner:      miner,
	}, nil
}

// New builds a ledger with a fresh genesis chain whose miner is rewarded
// to nodeID and aborts on chain replacement.
func New(nodeID string) (*Ledger, error) {
	bc := NewBlockchain()

	replaced := make(chan ChainReplacedEvent, 1)
	if err := bc.Events().Subscribe(minerSubscriber, replaced); err != nil {
		return nil, err
	}

	miner, err := NewMiner(nodeID, replaced)
	if err != nil {
		return nil, fmt.Errorf("init miner: %w", err)
	}

	return NewLedger(bc, NewMempool(), miner)
}

func (l *Ledger) Blockchain() *Blockchain {
	return l.blockchain
}

func (l *Ledger) Mempool() *Mempool {
	return l.mempool
}

func (l *Ledger) NodeID() string {
	return l.miner.NodeID()
}

// NewTransaction queues a transaction and returns the index of the block
// that will include it.
func (l *Ledger) NewTransaction(sender, recipient string, amount float64) (int64, error) {
	tx := Transaction{Sender: sender, Recipient: recipient, Amount: amount}
	if err := tx.validate(); err != nil {
		return 0, err
	}

	l.blockchain.mu.RLock()
	defer l.blockchain.mu.RUnlock()
	l.mempool.Add(tx)
	return l.blockchain.chain[len(l.blockchain.chain)-1].Index + 1, nil
}

// NewBlock appends a block carrying every pending transaction. The pool is
// empty afterwards.
func (l *Ledger) NewBlock(proof int64, previousHash string) Block {
	l.blockchain.mu.Lock()
	defer l.blockchain.mu.Unlock()
	return l.blockchain.appendBlockLocked(proof, previousHash, l.mempool.Drain())
}

// Mine searches a proof for the current tip, prepends the reward and forges
// the next block linked to the hash of the full previous block. If the chain
// is replaced during the search, the search restarts on the new tip.
func (l *Ledger) Mine(ctx context.Context) (Block, error) {
	l.mineMu.Lock()
	defer l.mineMu.Unlock()

	for {
		last, version := l.blockchain.tip()

		proof, err := l.miner.FindProof(ctx, last.Proof)
		if errors.Is(err, ErrMiningAborted) {
			continue
		}
		if err != nil {
			return Block{}, err
		}

		previousHash, err := Hash(&last)
		if err != nil {
			return Block{}, err
		}

		l.blockchain.mu.Lock()
		if l.blockchain.version != version {
			l.blockchain.mu.Unlock()
			log.Info("Tip moved during proof search, mining again")
			continue
		}
		l.mempool.Prepend(l.miner.RewardTransaction())
		block := l.blockchain.appendBlockLocked(proof, previousHash, l.mempool.Drain())
		l.blockchain.mu.Unlock()

		log.Infof("Block %d forged with proof %d and %d transactions", block.Index, block.Proof, len(block.Transactions))
		return block, nil
	}
}

// ReplaceChain adopts candidate if it is strictly longer and valid.
func (l *Ledger) ReplaceChain(candidate []Block) bool {
	return l.blockchain.Replace(candidate)
}

func (l *Ledger) Chain() []Block {
	return l.blockchain.Chain()
}

func (l *Ledger) LastBlock() Block {
	return l.blockchain.LastBlock()
}

// Close detaches the miner from chain replacement events.
func (l *Ledger) Close() {
	l.blockchain.Events().UnSubscribe(minerSubscriber)
}
