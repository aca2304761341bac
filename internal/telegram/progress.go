package telegram

import (
	"context"
	"sync"
	"time"

	"github.com/gotd/td/telegram/uploader"

	"github.com/pavelc4/vidgrab-bot/internal/utils"
	"github.com/pavelc4/vidgrab-bot/pkg/logger"
)

// ProgressLogger reports upload progress at most once per period.
type ProgressLogger struct {
	chatID    int64
	minPeriod time.Duration

	mu       sync.Mutex
	lastTime time.Time
}

func NewProgressLogger(chatID int64) *ProgressLogger {
	return &ProgressLogger{chatID: chatID, minPeriod: 2 * time.Second}
}

func (p *ProgressLogger) Chunk(_ context.Context, state uploader.ProgressState) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	done := state.Total > 0 && state.Uploaded >= state.Total
	if !done && now.Sub(p.lastTime) < p.minPeriod {
		return nil
	}
	p.lastTime = now

	percent := float64(0)
	if state.Total > 0 {
		percent = float64(state.Uploaded) / float64(state.Total) * 100
	}
	logger.Debug("Upload progress",
		"chat_id", p.chatID,
		"file", state.Name,
		"percent", percent,
		"uploaded", utils.FormatBytes(uint64(state.Uploaded)),
		"total", utils.FormatBytes(uint64(state.Total)),
	)
	return nil
}
