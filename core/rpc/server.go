package rpc

import (
	"context"

	"github.com/shu8h0-null/minledger/core/blockchain"
)

// server is the node surface reachable over JSON-RPC.
type server interface {
	Chain() []blockchain.Block
	GetBlockByIndex(index int64) (blockchain.Block, bool)
	LastBlock() blockchain.Block
	Mine(ctx context.Context) (blockchain.Block, error)
	NewTransaction(sender, recipient string, amount float64) (int64, error)
	RegisterNodes(addresses []string) ([]string, error)
	Resolve(ctx context.Context) (bool, []blockchain.Block)
	Pending() []blockchain.Transaction
}
