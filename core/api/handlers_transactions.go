package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// pointers so an absent field is told apart from a zero value
type newTransactionRequest struct {
	Sender    *string  `json:"sender" binding:"required"`
	Recipient *string  `json:"recipient" binding:"required"`
	Amount    *float64 `json:"amount" binding:"required"`
}

// POST /transactions/new
func (s *Server) handleNewTransaction(c *gin.Context) {
	var req newTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing values", "error": err.Error()})
		return
	}

	index, err := s.ledger.NewTransaction(*req.Sender, *req.Recipient, *req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid transaction", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Transaction will be added to Block %d", index),
		"index":   index,
	})
}

// GET /transactions/pending
func (s *Server) handlePendingTransactions(c *gin.Context) {
	pending := s.ledger.Mempool().Pending()
	c.JSON(http.StatusOK, gin.H{
		"count":        len(pending),
		"transactions": pending,
	})
}
