// Package consensus implements longest-valid-chain resolution against the
// registered peers.
package consensus

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/shu8h0-null/minledger/core/blockchain"
	"github.com/shu8h0-null/minledger/core/logger"
	"github.com/shu8h0-null/minledger/core/netstack"
)

var log = logger.NewLogger()

type ChainFetcher interface {
	FetchChain(ctx context.Context, addr string) (*netstack.ChainResponse, error)
}

type PeerSource interface {
	Peers() []string
}

type Resolver struct {
	ledger  *blockchain.Ledger
	peers   PeerSource
	fetcher ChainFetcher
	fanout  int
}

func NewResolver(ledger *blockchain.Ledger, peers PeerSource, fetcher ChainFetcher, fanout int) (*Resolver, error) {
	if ledger == nil {
		return nil, errors.New("ledger cannot be nil")
	}
	if peers == nil {
		return nil, errors.New("peer source cannot be nil")
	}
	if fetcher == nil {
		return nil, errors.New("chain fetcher cannot be nil")
	}
	if fanout <= 0 {
		fanout = 1
	}

	return &Resolver{
		ledger:  ledger,
		peers:   peers,
		fetcher: fetcher,
		fanout:  fanout,
	}, nil
}

// Resolve adopts the longest valid peer chain that is strictly longer than
// the local one and reports whether the local chain was replaced. A peer
// that cannot be reached or sends an invalid chain is skipped. On equal
// lengths the peer that sorts first wins.
func (r *Resolver) Resolve(ctx context.Context) bool {
	peers := r.peers.Peers()
	if len(peers) == 0 {
		return false
	}
	localLen := r.ledger.Blockchain().Len()

	candidates := make([][]blockchain.Block, len(peers))

	var g errgroup.Group
	g.SetLimit(r.fanout)
	for i, addr := range peers {
		i, addr := i, addr
		g.Go(func() error {
			resp, err := r.fetcher.FetchChain(ctx, addr)
			if err != nil {
				log.Warnf("Skipping peer %s: %v", addr, err)
				return nil
			}
			if len(resp.Chain) <= localLen {
				return nil
			}
			if err := blockchain.ValidateChain(resp.Chain); err != nil {
				log.Warnf("Skipping peer %s: invalid chain: %v", addr, err)
				return nil
			}
			candidates[i] = resp.Chain
			return nil
		})
	}
	// goroutines never return an error
	_ = g.Wait()

	var best []blockchain.Block
	bestPeer := ""
	for i, chain := range candidates {
		if len(chain) > len(best) {
			best = chain
			bestPeer = peers[i]
		}
	}
	if best == nil {
		return false
	}

	if !r.ledger.ReplaceChain(best) {
		return false
	}
	log.Infof("Adopted chain of length %d from %s", len(best), bestPeer)
	return true
}
