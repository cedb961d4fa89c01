package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shu8h0-null/minledger/core/netstack"
)

// GET /mine
func (s *Server) handleMine(c *gin.Context) {
	block, err := s.ledger.Mine(c.Request.Context())
	if err != nil {
		log.Errorf("Mining failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Mining failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "New block forged",
		"index":         block.Index,
		"transactions":  block.Transactions,
		"proof":         block.Proof,
		"previous_hash": block.PreviousHash,
	})
}

// GET /chain, also what peers fetch during resolution
func (s *Server) handleGetChain(c *gin.Context) {
	c.JSON(http.StatusOK, netstack.NewChainResponse(s.ledger.Chain()))
}

// GET /blocks/:index
func (s *Server) handleGetBlock(c *gin.Context) {
	index, err := strconv.ParseInt(c.Param("index"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Block index must be an integer"})
		return
	}

	block, ok := s.ledger.Blockchain().GetBlockByIndex(index)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Block not found"})
		return
	}
	c.JSON(http.StatusOK, block)
}
