package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shu8h0-null/minledger/core/api"
	blkchn "github.com/shu8h0-null/minledger/core/blockchain"
	"github.com/shu8h0-null/minledger/core/config"
	"github.com/shu8h0-null/minledger/core/consensus"
	"github.com/shu8h0-null/minledger/core/logger"
	"github.com/shu8h0-null/minledger/core/netstack"
	"github.com/shu8h0-null/minledger/core/rpc"
)

const shutdownTimeout = 5 * time.Second

var log = logger.NewLogger()

type Node struct {
	cfg      config.Config
	id       string
	ledger   *blkchn.Ledger
	registry *netstack.Registry
	resolver *consensus.Resolver
	http     *http.Server
	rpc      *http.Server
}

// NewNodeID returns a random identifier: a v4 uuid without dashes.
func NewNodeID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func NewNode(cfg config.Config) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	id := NewNodeID()
	ledger, err := blkchn.New(id)
	if err != nil {
		return nil, fmt.Errorf("init ledger: %w", err)
	}

	registry := netstack.NewRegistry()
	if len(cfg.SeedPeers) > 0 {
		if err := registry.RegisterAll(cfg.SeedPeers); err != nil {
			return nil, fmt.Errorf("register seed peers: %w", err)
		}
	}

	resolver, err := consensus.NewResolver(ledger, registry, netstack.NewChainClient(cfg.PeerTimeout), cfg.ResolveFanout)
	if err != nil {
		return nil, fmt.Errorf("init resolver: %w", err)
	}

	apiServer, err := api.NewServer(ledger, registry, resolver)
	if err != nil {
		return nil, fmt.Errorf("init api: %w", err)
	}

	n := &Node{
		cfg:      cfg,
		id:       id,
		ledger:   ledger,
		registry: registry,
		resolver: resolver,
		http: &http.Server{
			Addr:              cfg.HTTPAddr(),
			Handler:           apiServer.Router(cfg.Debug),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	if cfg.RPCAddr != "" {
		n.rpc = rpc.NewServer(cfg.RPCAddr, rpc.NewRPCHandler(n))
	}
	return n, nil
}

func (n *Node) ID() string {
	return n.id
}

func (n *Node) Ledger() *blkchn.Ledger {
	return n.ledger
}

// Handler is the HTTP surface of the node, the same one Run serves.
func (n *Node) Handler() http.Handler {
	return n.http.Handler
}

func (n *Node) Chain() []blkchn.Block {
	return n.ledger.Chain()
}

func (n *Node) GetBlockByIndex(index int64) (blkchn.Block, bool) {
	return n.ledger.Blockchain().GetBlockByIndex(index)
}

func (n *Node) LastBlock() blkchn.Block {
	return n.ledger.LastBlock()
}

func (n *Node) Mine(ctx context.Context) (blkchn.Block, error) {
	return n.ledger.Mine(ctx)
}

func (n *Node) NewTransaction(sender, recipient string, amount float64) (int64, error) {
	return n.ledger.NewTransaction(sender, recipient, amount)
}

func (n *Node) RegisterNodes(addresses []string) ([]string, error) {
	if err := n.registry.RegisterAll(addresses); err != nil {
		return nil, err
	}
	return n.registry.Peers(), nil
}

func (n *Node) Resolve(ctx context.Context) (bool, []blkchn.Block) {
	replaced := n.resolver.Resolve(ctx)
	return replaced, n.ledger.Chain()
}

func (n *Node) Pending() []blkchn.Transaction {
	return n.ledger.Mempool().Pending()
}

// Run serves the HTTP API and, when configured, the RPC endpoint until ctx
// is cancelled or the process receives SIGINT/SIGTERM.
func (n *Node) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	listenForQuitSignal(ctx, cancel)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Node::%s serving HTTP on %s", n.id, n.http.Addr)
		return serve(n.http)
	})
	if n.rpc != nil {
		g.Go(func() error {
			log.Infof("Node::%s serving RPC on %s%s", n.id, n.rpc.Addr, rpc.Path)
			return serve(n.rpc)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Cleaning Up...")
		return n.Close()
	})

	return g.Wait()
}

func (n *Node) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	defer n.ledger.Close()

	var errs []error
	if err := n.http.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http: %w", err))
	}
	if n.rpc != nil {
		if err := n.rpc.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown rpc: %w", err))
		}
	}
	return errors.Join(errs...)
}

func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func listenForQuitSignal(ctx context.Context, cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			log.Infof("Received signal: %s, shutting down...", sig)
			cancel()
		case <-ctx.Done():
		}
	}()
}
