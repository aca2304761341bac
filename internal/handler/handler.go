package handler

import (
	"context"

	"github.com/pavelc4/vidgrab-bot/internal/callback"
	"github.com/pavelc4/vidgrab-bot/internal/provider"
	"github.com/pavelc4/vidgrab-bot/pkg/logger"
)

// Message is an inbound text message.
type Message struct {
	ID     int
	ChatID int64
	UserID int64
	Text   string
}

// Callback is an inline button press.
type Callback struct {
	QueryID int64
	ChatID  int64
	UserID  int64
	MsgID   int
	Data    string
}

// Messenger is everything the handlers need from the chat transport.
// Text arguments use the <b>/<i>/<code>/<a> HTML subset.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, kb callback.Keyboard) (int, error)
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, kb callback.Keyboard) (int, error)
	EditText(ctx context.Context, chatID int64, msgID int, text string, kb callback.Keyboard) error
	EditCaption(ctx context.Context, chatID int64, msgID int, caption string, kb callback.Keyboard) error
	Delete(ctx context.Context, chatID int64, msgID int) error
	SendAudio(ctx context.Context, chatID int64, path, title string) error
	SendVideo(ctx context.Context, chatID int64, path, caption string, meta provider.VideoMeta) error
	AnswerCallback(ctx context.Context, queryID int64, text string) error
}

// edit rewrites a bot message, using the caption variant for photo menus.
func edit(ctx context.Context, m Messenger, chatID int64, msgID int, caption bool, text string, kb callback.Keyboard) {
	var err error
	if caption {
		err = m.EditCaption(ctx, chatID, msgID, text, kb)
	} else {
		err = m.EditText(ctx, chatID, msgID, text, kb)
	}
	if err != nil {
		logger.Error("Failed to edit message", "chat_id", chatID, "msg_id", msgID, "error", err)
	}
}

func answer(ctx context.Context, m Messenger, queryID int64, text string) {
	if err := m.AnswerCallback(ctx, queryID, text); err != nil {
		logger.Warn("Failed to answer callback", "query_id", queryID, "error", err)
	}
}
