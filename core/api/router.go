package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shu8h0-null/minledger/core/blockchain"
	"github.com/shu8h0-null/minledger/core/consensus"
	"github.com/shu8h0-null/minledger/core/logger"
	"github.com/shu8h0-null/minledger/core/netstack"
)

var log = logger.NewLogger()

// Server exposes one node's ledger, peer registry and resolver over HTTP.
type Server struct {
	ledger   *blockchain.Ledger
	registry *netstack.Registry
	resolver *consensus.Resolver
}

func NewServer(ledger *blockchain.Ledger, registry *netstack.Registry, resolver *consensus.Resolver) (*Server, error) {
	if ledger == nil {
		return nil, errors.New("ledger cannot be nil")
	}
	if registry == nil {
		return nil, errors.New("registry cannot be nil")
	}
	if resolver == nil {
		return nil, errors.New("resolver cannot be nil")
	}
	return &Server{
		ledger:   ledger,
		registry: registry,
		resolver: resolver,
	}, nil
}

// Router builds the gin engine. debug enables gin's request logger.
func (s *Server) Router(debug bool) *gin.Engine {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if debug {
		r.Use(gin.Logger())
	}

	r.GET("/mine", s.handleMine)
	r.GET("/chain", s.handleGetChain)
	r.GET("/blocks/:index", s.handleGetBlock)

	txGroup := r.Group("/transactions")
	{
		txGroup.POST("/new", s.handleNewTransaction)
		txGroup.GET("/pending", s.handlePendingTransactions)
	}

	nodeGroup := r.Group("/nodes")
	{
		nodeGroup.GET("", s.handleListNodes)
		nodeGroup.POST("/register", s.handleRegisterNodes)
		nodeGroup.GET("/resolve", s.handleResolve)
	}

	return r
}
