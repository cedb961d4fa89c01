package blockchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMempoolOrdering(t *testing.T) {
	m := NewMempool()
	m.Add(Transaction{Sender: "a", Recipient: "b", Amount: 1})
	m.Add(Transaction{Sender: "c", Recipient: "d", Amount: 2})
	m.Prepend(NewRewardTransaction("me"))

	pending := m.Pending()
	assert.Len(t, pending, 3)
	assert.True(t, pending[0].IsReward())

	drained := m.Drain()
	assert.Equal(t, pending, drained)
	assert.Zero(t, m.Len())
	assert.NotNil(t, m.Drain())
}

func TestEventFeed(t *testing.T) {
	feed := NewEventFeed[ChainReplacedEvent]()
	ch := make(chan ChainReplacedEvent, 1)
	assert.NoError(t, feed.Subscribe("s", ch))
	assert.Error(t, feed.Subscribe("s", ch))

	feed.Send(ChainReplacedEvent{Length: 2})
	// full channel: dropped, not blocked
	feed.Send(ChainReplacedEvent{Length: 3})
	assert.Equal(t, ChainReplacedEvent{Length: 2}, <-ch)

	feed.UnSubscribe("s")
	feed.Send(ChainReplacedEvent{Length: 4})
	assert.Empty(t, ch)
}
