package blockchain

import (
	"context"
	"errors"
)

var ErrMiningAborted = errors.New("mining aborted: chain was replaced")

// testHookSearchStarted, if set, runs after the abort watcher is started
// and before the proof search begins.
var testHookSearchStarted func()

type Miner struct {
	nodeID     string
	chainEvent <-chan ChainReplacedEvent
}

func NewMiner(nodeID string, chainEvent <-chan ChainReplacedEvent) (*Miner, error) {
	if nodeID == "" {
		return nil, errors.New("node id cannot be empty")
	}
	return &Miner{
		nodeID:     nodeID,
		chainEvent: chainEvent,
	}, nil
}

func (m *Miner) NodeID() string {
	return m.nodeID
}

func (m *Miner) RewardTransaction() Transaction {
	return NewRewardTransaction(m.nodeID)
}

// FindProof runs the proof of work search against lastProof. It returns
// ErrMiningAborted when a chain replacement arrives while searching.
func (m *Miner) FindProof(ctx context.Context, lastProof int64) (int64, error) {
	m.drainEvents()

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	aborted := make(chan struct{})
	go func() {
		select {
		case ev := <-m.chainEvent:
			log.Infof("Chain replaced (length %d) while mining, aborting search", ev.Length)
			close(aborted)
			cancel()
		case <-searchCtx.Done():
		}
	}()

	if testHookSearchStarted != nil {
		testHookSearchStarted()
	}

	proof, err := ProofOfWork(searchCtx, lastProof)
	if err != nil {
		select {
		case <-aborted:
			return 0, ErrMiningAborted
		default:
			return 0, err
		}
	}
	return proof, nil
}

// drainEvents drops replacements that happened before this search began.
func (m *Miner) drainEvents() {
	for {
		select {
		case <-m.chainEvent:
		default:
			return
		}
	}
}
