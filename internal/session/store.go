package session

import (
	"sync"
	"time"

	"github.com/pavelc4/vidgrab-bot/internal/provider"
)

// Session is the state kept between showing a quality menu and the user
// pressing one of its buttons.
type Session struct {
	SourceURL   string
	Title       string
	Duration    float64
	Formats     []provider.Format
	MenuMsgID   int
	MenuIsPhoto bool
	CreatedAt   time.Time
}

// Store holds at most one session per chat.
type Store interface {
	Get(chatID int64) (Session, bool)
	Put(chatID int64, s Session)
	Evict(chatID int64)
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[int64]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[int64]Session)}
}

func (m *MemoryStore) Get(chatID int64) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.data[chatID]
	return s, ok
}

func (m *MemoryStore) Put(chatID int64, s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[chatID] = s
}

func (m *MemoryStore) Evict(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, chatID)
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
