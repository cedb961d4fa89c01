package blockchain

import (
	"sync"
)

// Mempool keeps pending transactions in arrival order. It has its own lock
// so submissions do not contend with mining or chain reads.
type Mempool struct {
	transactions []Transaction
	mu           sync.Mutex
}

func NewMempool() *Mempool {
	return &Mempool{
		transactions: []Transaction{},
	}
}

func (m *Mempool) Add(tx Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, tx)
}

// Prepend puts tx ahead of everything already pending.
func (m *Mempool) Prepend(tx Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append([]Transaction{tx}, m.transactions...)
}

// Drain returns all pending transactions and empties the pool.
func (m *Mempool) Drain() []Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	txs := m.transactions
	m.transactions = []Transaction{}
	return txs
}

func (m *Mempool) Pending() []Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Transaction, len(m.transactions))
	copy(out, m.transactions)
	return out
}

func (m *Mempool) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transactions)
}
