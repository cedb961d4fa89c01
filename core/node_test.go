package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blkchn "github.com/shu8h0-null/minledger/core/blockchain"
	"github.com/shu8h0-null/minledger/core/config"
	"github.com/shu8h0-null/minledger/core/netstack"
	"github.com/shu8h0-null/minledger/core/rpc"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.HTTPPort = freePort(t)
	cfg.RPCAddr = fmt.Sprintf("127.0.0.1:%d", freePort(t))
	cfg.PeerTimeout = 2 * time.Second
	return cfg
}

func TestNewNodeID(t *testing.T) {
	id := NewNodeID()
	assert.Len(t, id, 32)
	assert.NotContains(t, id, "-")
	assert.NotEqual(t, id, NewNodeID())
}

func TestNewNodeRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.HTTPPort = 0
	_, err := NewNode(cfg)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.SeedPeers = []string{"http://"}
	_, err = NewNode(cfg)
	assert.ErrorIs(t, err, netstack.ErrInvalidAddress)
}

func TestNodeOperations(t *testing.T) {
	cfg := testConfig(t)
	cfg.SeedPeers = []string{"http://127.0.0.1:1"}
	n, err := NewNode(cfg)
	require.NoError(t, err)

	index, err := n.NewTransaction("alice", "bob", 3)
	require.NoError(t, err)
	assert.EqualValues(t, 2, index)
	assert.Len(t, n.Pending(), 1)

	block, err := n.Mine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, blkchn.NewRewardTransaction(n.ID()), block.Transactions[0])
	assert.Equal(t, block, n.LastBlock())

	got, ok := n.GetBlockByIndex(2)
	require.True(t, ok)
	assert.Equal(t, block, got)

	peers, err := n.RegisterNodes([]string{"127.0.0.1:2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1:1", "127.0.0.1:2"}, peers)

	// neither seed peer is listening, so the local chain stands
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	replaced, chain := n.Resolve(ctx)
	assert.False(t, replaced)
	assert.Len(t, chain, 2)
}

func TestNodeResolvesFromPeer(t *testing.T) {
	peer, err := NewNode(testConfig(t))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := peer.Mine(context.Background())
		require.NoError(t, err)
	}
	peerSrv := httptest.NewServer(peer.Handler())
	defer peerSrv.Close()

	cfg := testConfig(t)
	cfg.SeedPeers = []string{peerSrv.URL}
	n, err := NewNode(cfg)
	require.NoError(t, err)

	replaced, chain := n.Resolve(context.Background())
	assert.True(t, replaced)
	assert.Equal(t, peer.Chain(), chain)
}

func TestNodeRunServesAndShutsDown(t *testing.T) {
	cfg := testConfig(t)
	n, err := NewNode(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/chain", cfg.HTTPPort)
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body netstack.ChainResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Length)

	client, closer, err := rpc.Dial(ctx, cfg.RPCAddr)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		_, err := client.LastBlock(ctx)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
	closer()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
		// the miner subscription is released on shutdown
		assert.NoError(t, n.Ledger().Blockchain().Events().Subscribe("miner", make(chan blkchn.ChainReplacedEvent, 1)))
	case <-time.After(10 * time.Second):
		t.Fatal("node did not shut down")
	}
}
