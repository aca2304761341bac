package handler

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelc4/vidgrab-bot/internal/callback"
	"github.com/pavelc4/vidgrab-bot/internal/session"
)

func TestHandleStartAndHelp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := Message{ChatID: chatID, UserID: userID, Text: "/start"}

	require.NoError(t, f.basic.HandleStart(ctx, m))
	msg, _ := f.msg.last("send_text")
	assert.Contains(t, msg.Text, "Video Downloader Bot")

	require.NoError(t, f.basic.HandleHelp(ctx, m))
	msg, _ = f.msg.last("send_text")
	assert.Contains(t, msg.Text, "larger than 1 MB")
}

func TestHandleSettingsMarksCurrentLanguage(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.prefs.SetLanguage(userID, "ru"))

	require.NoError(t, f.basic.HandleSettings(context.Background(), Message{ChatID: chatID, UserID: userID}))

	msg, _ := f.msg.last("send_text")
	assert.Contains(t, msg.Text, "Настройки")
	require.Len(t, msg.Keyboard, 2)
	require.Len(t, msg.Keyboard[0], 2)
	assert.Equal(t, "🇬🇧 English", msg.Keyboard[0][0].Text)
	assert.Equal(t, "🇷🇺 Русский ✓", msg.Keyboard[1][0].Text)
	assert.Equal(t, callback.SelectLanguage{Code: "uk"}, msg.Keyboard[0][1].Payload)
}

func TestHandleLanguage(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.basic.HandleLanguage(context.Background(), press(60), callback.SelectLanguage{Code: "uk"}))

	assert.Equal(t, []string{"edit_text", "answer"}, f.msg.ops())
	msg, _ := f.msg.last("edit_text")
	assert.Equal(t, 60, msg.MsgID)
	assert.Contains(t, msg.Text, "Налаштування")
	assert.Contains(t, msg.Text, "Мову змінено")
	require.Len(t, msg.Keyboard, 2)
	assert.Equal(t, "🇺🇦 Українська ✓", msg.Keyboard[0][1].Text)

	lang, err := f.prefs.Language(userID)
	require.NoError(t, err)
	assert.Equal(t, "uk", lang)
}

func TestHandleLanguageStoreFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.prefs.Path(), []byte("{broken"), 0o644))

	require.NoError(t, f.basic.HandleLanguage(context.Background(), press(60), callback.SelectLanguage{Code: "uk"}))

	msg, _ := f.msg.last("edit_text")
	assert.Contains(t, msg.Text, "Could not save your settings")

	data, err := os.ReadFile(f.prefs.Path())
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(data))
}

func TestHandleStatsOwnerOnly(t *testing.T) {
	f := newFixture(t)
	h := NewAdminHandler(f.msg, 1, f.files.Root(), f.rec, session.NewMemoryStore(), f.pool)
	ctx := context.Background()

	require.NoError(t, h.HandleStats(ctx, Message{ChatID: chatID, UserID: userID, Text: "/stats"}))
	assert.Empty(t, f.msg.ops())

	require.NoError(t, h.HandleStats(ctx, Message{ChatID: 1, UserID: 1, Text: "/stats"}))
	msg, ok := f.msg.last("send_text")
	require.True(t, ok)
	assert.Contains(t, msg.Text, "<b>System Status</b>")
	assert.Contains(t, msg.Text, "Workers : <code>2</code>")
	assert.Regexp(t, `├ PID : <code>\d+</code>\n├ Uptime : <code>\d{2}:\d{2}(:\d{2})?</code>`, msg.Text)
}

func TestHandleStatsDisabledWithoutOwner(t *testing.T) {
	f := newFixture(t)
	h := NewAdminHandler(f.msg, 0, f.files.Root(), f.rec, session.NewMemoryStore(), f.pool)

	require.NoError(t, h.HandleStats(context.Background(), Message{ChatID: chatID, UserID: 0}))
	assert.Empty(t, f.msg.ops())
}
