package config

import (
	"errors"
	"fmt"
	"time"
)

const AppName = "minledger"

const (
	DefaultHTTPPort      = 5000
	DefaultRPCAddr       = "localhost:8080"
	DefaultPeerTimeout   = 5 * time.Second
	DefaultResolveFanout = 8
)

// Config holds everything a node needs to start. Nothing here is persisted.
type Config struct {
	HTTPPort      int
	RPCAddr       string
	PeerTimeout   time.Duration
	ResolveFanout int
	SeedPeers     []string
	// Debug switches gin into debug mode with its request logger.
	Debug bool
}

func Default() Config {
	return Config{
		HTTPPort:      DefaultHTTPPort,
		RPCAddr:       DefaultRPCAddr,
		PeerTimeout:   DefaultPeerTimeout,
		ResolveFanout: DefaultResolveFanout,
	}
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.HTTPPort)
}

func (c Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port: %d", c.HTTPPort)
	}
	if c.PeerTimeout <= 0 {
		return errors.New("peer timeout must be positive")
	}
	if c.ResolveFanout <= 0 {
		return errors.New("resolve fanout must be positive")
	}
	return nil
}
