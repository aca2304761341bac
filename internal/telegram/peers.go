package telegram

import (
	"sync"

	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"
)

var ErrUnknownPeer = errors.New("peer not seen yet")

// channelIDOffset shifts channel ids into the negative range used for chat
// ids, so users, basic groups and channels never collide.
const channelIDOffset = 1000000000000

// ChatID maps a peer onto the signed chat id used across the bot: users keep
// their id, basic groups are negated and channels are offset.
func ChatID(peer tg.PeerClass) int64 {
	switch p := peer.(type) {
	case *tg.PeerUser:
		return p.UserID
	case *tg.PeerChat:
		return -p.ChatID
	case *tg.PeerChannel:
		return -(channelIDOffset + p.ChannelID)
	default:
		return 0
	}
}

// Peers remembers the input peer, access hash included, for every chat the
// bot has received an update from.
type Peers struct {
	mu   sync.RWMutex
	data map[int64]tg.InputPeerClass
}

func NewPeers() *Peers {
	return &Peers{data: make(map[int64]tg.InputPeerClass)}
}

// Learn resolves peer against the update entities and caches the result.
func (p *Peers) Learn(peer tg.PeerClass, e tg.Entities) (int64, error) {
	input, err := resolvePeer(peer, e)
	if err != nil {
		return 0, err
	}
	id := ChatID(peer)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[id] = input
	return id, nil
}

func (p *Peers) Resolve(chatID int64) (tg.InputPeerClass, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	input, ok := p.data[chatID]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPeer, "chat %d", chatID)
	}
	return input, nil
}

func resolvePeer(peer tg.PeerClass, e tg.Entities) (tg.InputPeerClass, error) {
	switch p := peer.(type) {
	case *tg.PeerUser:
		user, ok := e.Users[p.UserID]
		if !ok {
			return nil, errors.New("user not found in entities")
		}
		return user.AsInputPeer(), nil
	case *tg.PeerChat:
		chat, ok := e.Chats[p.ChatID]
		if !ok {
			return nil, errors.New("chat not found in entities")
		}
		return chat.AsInputPeer(), nil
	case *tg.PeerChannel:
		channel, ok := e.Channels[p.ChannelID]
		if !ok {
			return nil, errors.New("channel not found in entities")
		}
		return channel.AsInputPeer(), nil
	default:
		return nil, errors.Errorf("unknown peer type %T", peer)
	}
}
