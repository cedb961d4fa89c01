package blockchain

import (
	"errors"
	"math"
)

const (
	// RewardSender marks a transaction minted by the node itself. It is not
	// an account and carries no balance.
	RewardSender = "0"
	RewardAmount = 1
)

var ErrInvalidAmount = errors.New("amount must be a finite number")

type Transaction struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

func NewRewardTransaction(recipient string) Transaction {
	return Transaction{
		Sender:    RewardSender,
		Recipient: recipient,
		Amount:    RewardAmount,
	}
}

func (tx Transaction) IsReward() bool {
	return tx.Sender == RewardSender
}

// validate only rejects values that have no JSON encoding. Sign and sender
// solvency are deliberately not checked.
func (tx Transaction) validate() error {
	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return ErrInvalidAmount
	}
	return nil
}
