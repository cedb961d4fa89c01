package rpc

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shu8h0-null/minledger/core/blockchain"
)

type fakeNode struct {
	chain    []blockchain.Block
	pending  []blockchain.Transaction
	peers    []string
	replaced bool
}

func (f *fakeNode) Chain() []blockchain.Block { return f.chain }

func (f *fakeNode) GetBlockByIndex(index int64) (blockchain.Block, bool) {
	for _, b := range f.chain {
		if b.Index == index {
			return b, true
		}
	}
	return blockchain.Block{}, false
}

func (f *fakeNode) LastBlock() blockchain.Block { return f.chain[len(f.chain)-1] }

func (f *fakeNode) Mine(ctx context.Context) (blockchain.Block, error) {
	last := f.LastBlock()
	block := blockchain.Block{
		Index:        last.Index + 1,
		Transactions: append([]blockchain.Transaction{blockchain.NewRewardTransaction("fake")}, f.pending...),
		Proof:        7,
		PreviousHash: "abc",
	}
	f.pending = nil
	f.chain = append(f.chain, block)
	return block, nil
}

func (f *fakeNode) NewTransaction(sender, recipient string, amount float64) (int64, error) {
	f.pending = append(f.pending, blockchain.Transaction{Sender: sender, Recipient: recipient, Amount: amount})
	return f.LastBlock().Index + 1, nil
}

func (f *fakeNode) RegisterNodes(addresses []string) ([]string, error) {
	for _, a := range addresses {
		if a == "bad" {
			return nil, errors.New("invalid node address")
		}
	}
	f.peers = append(f.peers, addresses...)
	return f.peers, nil
}

func (f *fakeNode) Resolve(ctx context.Context) (bool, []blockchain.Block) {
	return f.replaced, f.chain
}

func (f *fakeNode) Pending() []blockchain.Transaction { return f.pending }

func newTestClient(t *testing.T, node *fakeNode) *Client {
	t.Helper()
	srv := httptest.NewServer(NewServer("", NewRPCHandler(node)).Handler)
	t.Cleanup(srv.Close)

	client, closer, err := Dial(context.Background(), strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)
	t.Cleanup(closer)
	return client
}

func genesisNode() *fakeNode {
	return &fakeNode{
		chain: []blockchain.Block{{
			Index:        blockchain.GenesisIndex,
			Transactions: []blockchain.Transaction{},
			Proof:        blockchain.GenesisProof,
			PreviousHash: blockchain.GenesisPreviousHash,
		}},
	}
}

func TestRPCChainQueries(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, genesisNode())

	chain, err := client.Chain(ctx)
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.EqualValues(t, blockchain.GenesisProof, chain[0].Proof)

	block, err := client.GetBlockByIndex(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, blockchain.GenesisPreviousHash, block.PreviousHash)

	_, err = client.GetBlockByIndex(ctx, 9)
	assert.Error(t, err)

	last, err := client.LastBlock(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, last.Index)
}

func TestRPCTransactionAndMine(t *testing.T) {
	ctx := context.Background()
	node := genesisNode()
	client := newTestClient(t, node)

	res, err := client.NewTransaction(ctx, "a", "b", 2.5)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Index)

	// present but empty values are accepted, as over HTTP
	res, err = client.NewTransaction(ctx, "", "", 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Index)

	pending, err := client.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	block, err := client.Mine(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, block.Index)
	require.Len(t, block.Transactions, 3)
	assert.True(t, block.Transactions[0].IsReward())
	assert.Equal(t, 2.5, block.Transactions[1].Amount)
	assert.Equal(t, blockchain.Transaction{}, block.Transactions[2])
}

func TestRPCNodes(t *testing.T) {
	ctx := context.Background()
	node := genesisNode()
	node.replaced = true
	client := newTestClient(t, node)

	_, err := client.RegisterNodes(ctx, nil)
	assert.Error(t, err)

	_, err = client.RegisterNodes(ctx, []string{"bad"})
	assert.Error(t, err)

	peers, err := client.RegisterNodes(ctx, []string{"127.0.0.1:5001"})
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1:5001"}, peers)

	res, err := client.Resolve(ctx)
	require.NoError(t, err)
	assert.True(t, res.Replaced)
	assert.Len(t, res.Chain, 1)
}
