package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shu8h0-null/minledger/core/blockchain"
)

const (
	cyan     = lipgloss.Color("#79c3ee")
	green    = lipgloss.Color("#78dba9")
	hotPink  = lipgloss.Color("#FF06B7")
	darkGray = lipgloss.Color("#767676")
	red      = lipgloss.Color("#e05f65")
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(hotPink).
			Padding(0, 2).
			Align(lipgloss.Left)

	titleStyle   = lipgloss.NewStyle().Foreground(cyan).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(darkGray)
	successStyle = lipgloss.NewStyle().Foreground(green).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(red).Bold(true)
)

func field(label string, value interface{}) string {
	return fmt.Sprintf("%s %v", labelStyle.Render(label+":"), value)
}

func renderBlock(b *blockchain.Block) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Block #%d", b.Index)),
		field("timestamp", b.Timestamp),
		field("proof", b.Proof),
		field("previous_hash", b.PreviousHash),
		field("transactions", len(b.Transactions)),
	}
	for _, tx := range b.Transactions {
		lines = append(lines, "  "+renderTransaction(tx))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderTransaction(tx blockchain.Transaction) string {
	sender := tx.Sender
	if tx.IsReward() {
		sender = "reward"
	}
	return fmt.Sprintf("%s -> %s %s", sender, tx.Recipient, successStyle.Render(fmt.Sprint(tx.Amount)))
}

func renderJSON(v interface{}) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("Error marshalling response to json: %v", err))
	}
	return string(out)
}
