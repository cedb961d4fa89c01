package rpc

import (
	"context"

	"github.com/filecoin-project/go-jsonrpc"

	"github.com/shu8h0-null/minledger/core/blockchain"
)

// Client is the go-jsonrpc proxy for RPCHandler.
type Client struct {
	Chain           func(ctx context.Context) ([]blockchain.Block, error)
	GetBlockByIndex func(ctx context.Context, index int64) (*blockchain.Block, error)
	LastBlock       func(ctx context.Context) (*blockchain.Block, error)
	Mine            func(ctx context.Context) (*blockchain.Block, error)
	NewTransaction  func(ctx context.Context, sender, recipient string, amount float64) (*TransactionResult, error)
	RegisterNodes   func(ctx context.Context, nodes []string) ([]string, error)
	Resolve         func(ctx context.Context) (*ResolveResult, error)
	Pending         func(ctx context.Context) ([]blockchain.Transaction, error)
}

// Dial connects to the node RPC listening on addr (host:port).
func Dial(ctx context.Context, addr string) (*Client, jsonrpc.ClientCloser, error) {
	var client Client
	closer, err := jsonrpc.NewClient(ctx, "http://"+addr+Path, Namespace, &client, nil)
	if err != nil {
		return nil, nil, err
	}
	return &client, closer, nil
}
