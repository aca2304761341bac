package telegram

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatID(t *testing.T) {
	assert.Equal(t, int64(5), ChatID(&tg.PeerUser{UserID: 5}))
	assert.Equal(t, int64(-5), ChatID(&tg.PeerChat{ChatID: 5}))
	assert.Equal(t, int64(-1000000000005), ChatID(&tg.PeerChannel{ChannelID: 5}))
}

func TestPeersLearnAndResolve(t *testing.T) {
	p := NewPeers()
	e := tg.Entities{
		Users: map[int64]*tg.User{7: {ID: 7, AccessHash: 99}},
		Chats: map[int64]*tg.Chat{},
	}

	_, err := p.Resolve(7)
	assert.True(t, errors.Is(err, ErrUnknownPeer))

	id, err := p.Learn(&tg.PeerUser{UserID: 7}, e)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	input, err := p.Resolve(7)
	require.NoError(t, err)
	assert.Equal(t, &tg.InputPeerUser{UserID: 7, AccessHash: 99}, input)

	_, err = p.Learn(&tg.PeerChat{ChatID: 3}, e)
	assert.Error(t, err)
}
