package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/shu8h0-null/minledger/core"
	"github.com/shu8h0-null/minledger/core/config"
	"github.com/shu8h0-null/minledger/core/logger"
	"github.com/shu8h0-null/minledger/core/netstack"
)

var log = logger.NewLogger()

func main() {
	defaults := config.Default()
	port := flag.Int("p", defaults.HTTPPort, "Port on which the node serves its HTTP API")
	rpcAddr := flag.String("rpc", defaults.RPCAddr, "Address of the JSON-RPC endpoint (empty disables it)")
	peers := flag.String("peers", "", "Comma separated list of peer addresses to register at startup")
	timeout := flag.Duration("timeout", defaults.PeerTimeout, "Timeout for fetching a peer chain")
	fanout := flag.Int("fanout", defaults.ResolveFanout, "Maximum peers queried concurrently during resolve")
	debug := flag.Bool("debug", false, "Enable gin debug mode and request logging")
	flag.Parse()

	// the port may also be given positionally: node 5001
	if flag.NArg() > 0 {
		p, err := strconv.Atoi(flag.Arg(0))
		if err != nil {
			log.Errorf("Invalid port argument %q", flag.Arg(0))
			os.Exit(1)
		}
		*port = p
	}

	cfg := config.Config{
		HTTPPort:      *port,
		RPCAddr:       *rpcAddr,
		PeerTimeout:   *timeout,
		ResolveFanout: *fanout,
		SeedPeers:     splitPeers(*peers),
		Debug:         *debug,
	}
	if err := cfg.Validate(); err != nil {
		log.Errorf("Please provide a valid configuration: %v", err)
		os.Exit(1)
	}
	if !netstack.CheckPortAvailability("0.0.0.0", cfg.HTTPPort) {
		log.Errorf("Port: %d not available!", cfg.HTTPPort)
		os.Exit(1)
	}

	node, err := core.NewNode(cfg)
	if err != nil {
		log.Errorf("Error initialising node: %v", err)
		os.Exit(1)
	}

	log.Infof("Starting %s node %s", config.AppName, node.ID())
	if err := node.Run(context.Background()); err != nil {
		log.Errorf("Node stopped: %v", err)
		os.Exit(1)
	}
}

func splitPeers(s string) []string {
	var peers []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			peers = append(peers, p)
		}
	}
	return peers
}
