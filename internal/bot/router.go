package bot

import (
	"context"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"

	"github.com/pavelc4/vidgrab-bot/internal/callback"
	"github.com/pavelc4/vidgrab-bot/internal/handler"
	"github.com/pavelc4/vidgrab-bot/internal/i18n"
	"github.com/pavelc4/vidgrab-bot/internal/middleware"
	"github.com/pavelc4/vidgrab-bot/internal/provider"
	"github.com/pavelc4/vidgrab-bot/internal/telegram"
	"github.com/pavelc4/vidgrab-bot/pkg/logger"
)

type DownloadHandler interface {
	HandleLink(ctx context.Context, m handler.Message, url string) error
	HandleCancel(ctx context.Context, cb handler.Callback) error
	HandleDownload(ctx context.Context, cb handler.Callback, sel callback.SelectFormat) error
}

type BasicHandler interface {
	HandleStart(ctx context.Context, m handler.Message) error
	HandleHelp(ctx context.Context, m handler.Message) error
	HandleSettings(ctx context.Context, m handler.Message) error
	HandleLanguage(ctx context.Context, cb handler.Callback, sel callback.SelectLanguage) error
}

type AdminHandler interface {
	HandleStats(ctx context.Context, m handler.Message) error
}

type CallbackAnswerer interface {
	AnswerCallback(ctx context.Context, queryID int64, text string) error
}

// Router turns gotd updates into handler calls. Each update runs on its own
// goroutine so a slow download never holds up other chats.
type Router struct {
	peers    *telegram.Peers
	tr       *i18n.Translator
	download DownloadHandler
	basic    BasicHandler
	admin    AdminHandler
	answerer CallbackAnswerer

	wg sync.WaitGroup
}

func NewRouter(peers *telegram.Peers, tr *i18n.Translator, dl DownloadHandler, basic BasicHandler, admin AdminHandler, answerer CallbackAnswerer) *Router {
	return &Router{
		peers:    peers,
		tr:       tr,
		download: dl,
		basic:    basic,
		admin:    admin,
		answerer: answerer,
	}
}

func (r *Router) Register(d tg.UpdateDispatcher) {
	d.OnNewMessage(r.OnMessage)
	d.OnNewChannelMessage(r.OnChannelMessage)
	d.OnBotCallbackQuery(r.OnCallbackQuery)
}

// Wait blocks until every spawned update goroutine has returned.
func (r *Router) Wait() {
	r.wg.Wait()
}

func (r *Router) OnMessage(ctx context.Context, e tg.Entities, update *tg.UpdateNewMessage) error {
	msg, ok := update.Message.(*tg.Message)
	if !ok {
		return nil
	}
	return r.onMessage(ctx, e, msg, "OnNewMessage")
}

func (r *Router) OnChannelMessage(ctx context.Context, e tg.Entities, update *tg.UpdateNewChannelMessage) error {
	msg, ok := update.Message.(*tg.Message)
	if !ok {
		return nil
	}
	return r.onMessage(ctx, e, msg, "OnNewChannelMessage")
}

func (r *Router) onMessage(ctx context.Context, e tg.Entities, msg *tg.Message, name string) error {
	if msg.Out || msg.Message == "" {
		return nil
	}

	chatID, err := r.peers.Learn(msg.PeerID, e)
	if err != nil {
		logger.Warn("Cannot resolve chat", "msg_id", msg.ID, "error", err)
		return nil
	}

	m := handler.Message{
		ID:     msg.ID,
		ChatID: chatID,
		UserID: senderID(msg),
		Text:   msg.Message,
	}
	r.spawn(ctx, name, func(ctx context.Context) error {
		return r.Route(ctx, m)
	})
	return nil
}

func (r *Router) OnCallbackQuery(ctx context.Context, e tg.Entities, update *tg.UpdateBotCallbackQuery) error {
	chatID, err := r.peers.Learn(update.Peer, e)
	if err != nil {
		logger.Warn("Cannot resolve callback chat", "query_id", update.QueryID, "error", err)
		return nil
	}

	cb := handler.Callback{
		QueryID: update.QueryID,
		ChatID:  chatID,
		UserID:  update.UserID,
		MsgID:   update.MsgID,
		Data:    string(update.Data),
	}
	r.spawn(ctx, "OnBotCallbackQuery", func(ctx context.Context) error {
		return r.RouteCallback(ctx, cb)
	})
	return nil
}

func (r *Router) spawn(ctx context.Context, name string, fn func(ctx context.Context) error) {
	h := middleware.Chain(func(ctx context.Context) {
		if err := fn(ctx); err != nil {
			logger.Error("Update handler failed", "name", name, "request_id", middleware.RequestID(ctx), "error", err)
		}
	}, middleware.Recover, middleware.Logger(name))

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		h(ctx)
	}()
}

// Route handles one text message synchronously. Text that is neither a
// known command nor contains a supported link is ignored.
func (r *Router) Route(ctx context.Context, m handler.Message) error {
	switch command(m.Text) {
	case "/start":
		return r.basic.HandleStart(ctx, m)
	case "/help":
		return r.basic.HandleHelp(ctx, m)
	case "/settings":
		return r.basic.HandleSettings(ctx, m)
	case "/stats":
		return r.admin.HandleStats(ctx, m)
	}

	url := provider.ExtractURL(m.Text)
	if url == "" {
		return nil
	}
	return r.download.HandleLink(ctx, m, url)
}

// RouteCallback decodes a button press and hands it to its handler.
func (r *Router) RouteCallback(ctx context.Context, cb handler.Callback) error {
	payload, err := callback.Decode(cb.Data)
	if err != nil {
		logger.Warn("Malformed callback data", "data", cb.Data, "error", err)
		// toasts are plain text
		text, _ := telegram.ParseHTML(r.tr.T(cb.UserID, i18n.KeyError))
		return errors.Wrap(r.answerer.AnswerCallback(ctx, cb.QueryID, text), "answer malformed callback")
	}

	switch p := payload.(type) {
	case callback.Cancel:
		return r.download.HandleCancel(ctx, cb)
	case callback.SelectLanguage:
		return r.basic.HandleLanguage(ctx, cb, p)
	case callback.SelectFormat:
		return r.download.HandleDownload(ctx, cb, p)
	default:
		return errors.Errorf("unhandled payload %T", payload)
	}
}

// command returns the leading /command of text with any @botname suffix
// removed, or "" when text is not a command.
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd := strings.Fields(text)[0]
	if i := strings.Index(cmd, "@"); i != -1 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd)
}

func senderID(msg *tg.Message) int64 {
	if from, ok := msg.GetFromID(); ok {
		if user, ok := from.(*tg.PeerUser); ok {
			return user.UserID
		}
	}
	if peer, ok := msg.PeerID.(*tg.PeerUser); ok {
		return peer.UserID
	}
	return 0
}
