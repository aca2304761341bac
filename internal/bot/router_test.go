package bot

import (
	"context"
	"sync"
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelc4/vidgrab-bot/internal/callback"
	"github.com/pavelc4/vidgrab-bot/internal/handler"
	"github.com/pavelc4/vidgrab-bot/internal/i18n"
	"github.com/pavelc4/vidgrab-bot/internal/telegram"
)

type recorder struct {
	mu     sync.Mutex
	calls  []string
	url    string
	fmt    callback.SelectFormat
	lang   callback.SelectLanguage
	msg    handler.Message
	answer string
	cb     handler.Callback
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) HandleLink(_ context.Context, m handler.Message, url string) error {
	r.msg, r.url = m, url
	r.add("link")
	return nil
}

func (r *recorder) HandleCancel(_ context.Context, cb handler.Callback) error {
	r.cb = cb
	r.add("cancel")
	return nil
}

func (r *recorder) HandleDownload(_ context.Context, cb handler.Callback, sel callback.SelectFormat) error {
	r.cb, r.fmt = cb, sel
	r.add("download")
	return nil
}

func (r *recorder) HandleStart(context.Context, handler.Message) error {
	r.add("start")
	return nil
}

func (r *recorder) HandleHelp(context.Context, handler.Message) error {
	r.add("help")
	return nil
}

func (r *recorder) HandleSettings(context.Context, handler.Message) error {
	r.add("settings")
	return nil
}

func (r *recorder) HandleLanguage(_ context.Context, _ handler.Callback, sel callback.SelectLanguage) error {
	r.lang = sel
	r.add("language")
	return nil
}

func (r *recorder) HandleStats(context.Context, handler.Message) error {
	r.add("stats")
	return nil
}

func (r *recorder) AnswerCallback(_ context.Context, _ int64, text string) error {
	r.mu.Lock()
	r.answer = text
	r.mu.Unlock()
	r.add("answer")
	return nil
}

func newRouter() (*Router, *recorder) {
	rec := &recorder{}
	return NewRouter(telegram.NewPeers(), i18n.NewTranslator(nil), rec, rec, rec, rec), rec
}

func TestRouteCommands(t *testing.T) {
	for text, want := range map[string]string{
		"/start":            "start",
		"/help":             "help",
		"/settings":         "settings",
		"/stats":            "stats",
		"/start@VidGrabBot": "start",
		"/HELP extra words": "help",
	} {
		r, rec := newRouter()
		require.NoError(t, r.Route(context.Background(), handler.Message{ChatID: 1, Text: text}))
		assert.Equal(t, []string{want}, rec.snapshot(), text)
	}
}

func TestRouteLink(t *testing.T) {
	r, rec := newRouter()
	m := handler.Message{ChatID: 1, UserID: 2, Text: "check https://youtu.be/abc123 now"}

	require.NoError(t, r.Route(context.Background(), m))

	assert.Equal(t, []string{"link"}, rec.snapshot())
	assert.Equal(t, "https://youtu.be/abc123", rec.url)
	assert.Equal(t, m, rec.msg)
}

func TestRouteIgnoresPlainText(t *testing.T) {
	for _, text := range []string{"hello", "https://example.com/video", "/unknown"} {
		r, rec := newRouter()
		require.NoError(t, r.Route(context.Background(), handler.Message{ChatID: 1, Text: text}))
		assert.Empty(t, rec.snapshot(), text)
	}
}

func TestRouteCallback(t *testing.T) {
	ctx := context.Background()

	r, rec := newRouter()
	require.NoError(t, r.RouteCallback(ctx, handler.Callback{ChatID: 1, MsgID: 5, Data: "dl_247+bestaudio_mp4"}))
	assert.Equal(t, []string{"download"}, rec.snapshot())
	assert.Equal(t, callback.SelectFormat{FormatID: "247+bestaudio", Ext: "mp4"}, rec.fmt)
	assert.Equal(t, 5, rec.cb.MsgID)

	r, rec = newRouter()
	require.NoError(t, r.RouteCallback(ctx, handler.Callback{Data: "lang_uk"}))
	assert.Equal(t, []string{"language"}, rec.snapshot())
	assert.Equal(t, "uk", rec.lang.Code)

	r, rec = newRouter()
	require.NoError(t, r.RouteCallback(ctx, handler.Callback{Data: "cancel"}))
	assert.Equal(t, []string{"cancel"}, rec.snapshot())

	r, rec = newRouter()
	require.NoError(t, r.RouteCallback(ctx, handler.Callback{Data: "bogus"}))
	assert.Equal(t, []string{"answer"}, rec.snapshot())
	assert.Equal(t, "❌ Error:", rec.answer)
}

func TestOnMessageDispatchesAsync(t *testing.T) {
	r, rec := newRouter()
	e := tg.Entities{Users: map[int64]*tg.User{7: {ID: 7, AccessHash: 1}}}

	err := r.OnMessage(context.Background(), e, &tg.UpdateNewMessage{Message: &tg.Message{
		ID:      10,
		PeerID:  &tg.PeerUser{UserID: 7},
		Message: "/start",
	}})
	require.NoError(t, err)
	r.Wait()

	assert.Equal(t, []string{"start"}, rec.snapshot())
}

func TestOnMessageSkipsOutgoing(t *testing.T) {
	r, rec := newRouter()
	e := tg.Entities{Users: map[int64]*tg.User{7: {ID: 7}}}

	require.NoError(t, r.OnMessage(context.Background(), e, &tg.UpdateNewMessage{Message: &tg.Message{
		Out:     true,
		PeerID:  &tg.PeerUser{UserID: 7},
		Message: "/start",
	}}))
	r.Wait()

	assert.Empty(t, rec.snapshot())
}

func TestOnCallbackQueryLearnsChat(t *testing.T) {
	peers := telegram.NewPeers()
	rec := &recorder{}
	r := NewRouter(peers, i18n.NewTranslator(nil), rec, rec, rec, rec)
	e := tg.Entities{Chats: map[int64]*tg.Chat{3: {ID: 3}}}

	require.NoError(t, r.OnCallbackQuery(context.Background(), e, &tg.UpdateBotCallbackQuery{
		QueryID: 1,
		UserID:  7,
		Peer:    &tg.PeerChat{ChatID: 3},
		MsgID:   44,
		Data:    []byte("cancel"),
	}))
	r.Wait()

	assert.Equal(t, []string{"cancel"}, rec.snapshot())
	assert.Equal(t, int64(-3), rec.cb.ChatID)
	assert.Equal(t, int64(7), rec.cb.UserID)

	_, err := peers.Resolve(-3)
	assert.NoError(t, err)
}

func TestSenderID(t *testing.T) {
	msg := &tg.Message{PeerID: &tg.PeerChat{ChatID: 3}}
	msg.SetFromID(&tg.PeerUser{UserID: 9})
	assert.Equal(t, int64(9), senderID(msg))

	assert.Equal(t, int64(4), senderID(&tg.Message{PeerID: &tg.PeerUser{UserID: 4}}))
	assert.Zero(t, senderID(&tg.Message{PeerID: &tg.PeerChannel{ChannelID: 1}}))
}

