package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/filecoin-project/go-jsonrpc"

	"github.com/shu8h0-null/minledger/core/blockchain"
)

const (
	Namespace = "NodeRPC"
	Path      = "/rpc/v0"
)

var ErrBlockNotFound = errors.New("block not found")

// ResolveResult mirrors the HTTP resolve response.
type ResolveResult struct {
	Replaced bool               `json:"replaced"`
	Chain    []blockchain.Block `json:"chain"`
}

// TransactionResult carries the index of the block that will include a
// queued transaction.
type TransactionResult struct {
	Index int64 `json:"index"`
}

type RPCHandler struct {
	rpcServer server
}

func NewRPCHandler(s server) *RPCHandler {
	return &RPCHandler{
		rpcServer: s,
	}
}

func (h *RPCHandler) Chain(ctx context.Context) ([]blockchain.Block, error) {
	return h.rpcServer.Chain(), nil
}

func (h *RPCHandler) GetBlockByIndex(ctx context.Context, index int64) (*blockchain.Block, error) {
	block, ok := h.rpcServer.GetBlockByIndex(index)
	if !ok {
		return nil, fmt.Errorf("%w: index %d", ErrBlockNotFound, index)
	}
	return &block, nil
}

func (h *RPCHandler) LastBlock(ctx context.Context) (*blockchain.Block, error) {
	block := h.rpcServer.LastBlock()
	return &block, nil
}

func (h *RPCHandler) Mine(ctx context.Context) (*blockchain.Block, error) {
	block, err := h.rpcServer.Mine(ctx)
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (h *RPCHandler) NewTransaction(ctx context.Context, sender, recipient string, amount float64) (*TransactionResult, error) {
	index, err := h.rpcServer.NewTransaction(sender, recipient, amount)
	if err != nil {
		return nil, err
	}
	return &TransactionResult{Index: index}, nil
}

func (h *RPCHandler) RegisterNodes(ctx context.Context, nodes []string) ([]string, error) {
	if len(nodes) == 0 {
		return nil, errors.New("please provide a valid list of nodes")
	}
	return h.rpcServer.RegisterNodes(nodes)
}

func (h *RPCHandler) Resolve(ctx context.Context) (*ResolveResult, error) {
	replaced, chain := h.rpcServer.Resolve(ctx)
	return &ResolveResult{Replaced: replaced, Chain: chain}, nil
}

func (h *RPCHandler) Pending(ctx context.Context) ([]blockchain.Transaction, error) {
	return h.rpcServer.Pending(), nil
}

// NewServer mounts handler under Path on a fresh http.Server bound to addr.
func NewServer(addr string, handler *RPCHandler) *http.Server {
	mux := http.NewServeMux()
	rpcServer := jsonrpc.NewServer()
	rpcServer.Register(Namespace, handler)
	mux.Handle(Path, rpcServer)
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
