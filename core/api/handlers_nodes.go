package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type registerNodesRequest struct {
	Nodes []string `json:"nodes"`
}

// POST /nodes/register
func (s *Server) handleRegisterNodes(c *gin.Context) {
	var req registerNodesRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Nodes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide a valid list of nodes"})
		return
	}

	if err := s.registry.RegisterAll(req.Nodes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide a valid list of nodes", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "New nodes have been added",
		"nodes":   s.registry.Peers(),
	})
}

// GET /nodes
func (s *Server) handleListNodes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"nodes": s.registry.Peers()})
}

// GET /nodes/resolve
func (s *Server) handleResolve(c *gin.Context) {
	replaced := s.resolver.Resolve(c.Request.Context())
	chain := s.ledger.Chain()

	if replaced {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Our chain was replaced",
			"replaced":  true,
			"new_chain": chain,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Our chain is authoritative",
		"replaced": false,
		"chain":    chain,
	})
}
