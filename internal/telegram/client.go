package telegram

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/gotd/contrib/middleware/floodwait"
	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pavelc4/vidgrab-bot/pkg/logger"
)

type Options struct {
	AppID      int
	AppHash    string
	BotToken   string
	SessionDir string
	LogLevel   string
}

type Client struct {
	client *telegram.Client
	token  string
}

// NewClient builds the MTProto client. Flood waits are retried transparently
// and the session is persisted under SessionDir.
func NewClient(opts Options, handler telegram.UpdateHandler) (*Client, error) {
	if err := os.MkdirAll(opts.SessionDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create session dir")
	}

	log, err := newZap(opts.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "build mtproto logger")
	}

	client := telegram.NewClient(opts.AppID, opts.AppHash, telegram.Options{
		SessionStorage: &session.FileStorage{Path: filepath.Join(opts.SessionDir, "session.json")},
		UpdateHandler:  handler,
		Logger:         log,
		Middlewares: []telegram.Middleware{
			floodwait.NewSimpleWaiter().WithMaxRetries(5),
		},
	})

	return &Client{client: client, token: opts.BotToken}, nil
}

// Run connects, signs in as the bot if needed and blocks until ctx is done.
func (c *Client) Run(ctx context.Context) error {
	return c.client.Run(ctx, func(ctx context.Context) error {
		status, err := c.client.Auth().Status(ctx)
		if err != nil {
			return errors.Wrap(err, "auth status")
		}

		if !status.Authorized {
			if _, err := c.client.Auth().Bot(ctx, c.token); err != nil {
				return errors.Wrap(err, "bot login")
			}
		}

		me, err := c.client.Self(ctx)
		if err != nil {
			return errors.Wrap(err, "get self")
		}

		logger.Info("Telegram client connected", "username", me.Username, "id", me.ID)

		<-ctx.Done()
		return nil
	})
}

func (c *Client) API() *tg.Client {
	return c.client.API()
}

// newZap returns the logger handed to gotd. Its output is kept at warn
// level unless the bot itself runs at debug.
func newZap(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if strings.EqualFold(level, "debug") {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.Sampling = nil
	return cfg.Build()
}
