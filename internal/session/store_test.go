package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelc4/vidgrab-bot/internal/provider"
)

func TestPutOverwrites(t *testing.T) {
	s := NewMemoryStore()

	s.Put(1, Session{SourceURL: "https://youtu.be/a", Formats: []provider.Format{provider.AudioFormat()}})
	s.Put(1, Session{SourceURL: "https://youtu.be/b"})

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "https://youtu.be/b", got.SourceURL)
	assert.Empty(t, got.Formats)
	assert.Equal(t, 1, s.Len())
}

func TestGetMissingAndEvict(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Get(42)
	assert.False(t, ok)

	s.Put(42, Session{SourceURL: "x"})
	s.Evict(42)
	_, ok = s.Get(42)
	assert.False(t, ok)

	s.Evict(42) // no-op
}

func TestChatsAreIndependent(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(chat int64) {
			defer wg.Done()
			s.Put(chat, Session{MenuMsgID: int(chat)})
		}(i)
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		got, ok := s.Get(i)
		require.True(t, ok)
		assert.Equal(t, int(i), got.MenuMsgID)
	}
}
