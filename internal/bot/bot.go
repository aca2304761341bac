package bot

import (
	"context"

	"github.com/pavelc4/vidgrab-bot/internal/telegram"
	"github.com/pavelc4/vidgrab-bot/pkg/logger"
)

type Bot struct {
	client *telegram.Client
	router *Router
}

func New(client *telegram.Client, router *Router) *Bot {
	return &Bot{
		client: client,
		router: router,
	}
}

// Run serves updates until ctx is done, then waits for in-flight handlers.
func (b *Bot) Run(ctx context.Context) error {
	err := b.client.Run(ctx)
	logger.Info("Waiting for in-flight updates")
	b.router.Wait()
	return err
}
