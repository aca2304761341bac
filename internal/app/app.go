package app

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/pavelc4/vidgrab-bot/config"
	"github.com/pavelc4/vidgrab-bot/internal/artifact"
	"github.com/pavelc4/vidgrab-bot/internal/bot"
	"github.com/pavelc4/vidgrab-bot/internal/handler"
	"github.com/pavelc4/vidgrab-bot/internal/i18n"
	"github.com/pavelc4/vidgrab-bot/internal/prefs"
	"github.com/pavelc4/vidgrab-bot/internal/provider"
	"github.com/pavelc4/vidgrab-bot/internal/server"
	"github.com/pavelc4/vidgrab-bot/internal/session"
	"github.com/pavelc4/vidgrab-bot/internal/stats"
	"github.com/pavelc4/vidgrab-bot/internal/telegram"
	"github.com/pavelc4/vidgrab-bot/pkg/logger"
	"github.com/pavelc4/vidgrab-bot/pkg/worker"
)

type App struct {
	cfg     *config.Config
	bot     *bot.Bot
	pool    *worker.Pool
	files   *artifact.Dir
	metrics *http.Server
}

func New(cfg *config.Config) (*App, error) {
	files, err := artifact.Prepare(cfg.DownloadDir)
	if err != nil {
		return nil, errors.Wrap(err, "prepare download dir")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := stats.NewRecorder(reg)

	pool := worker.NewPool(cfg.Workers)
	sessions := session.NewMemoryStore()
	store := prefs.NewStore(cfg.SettingsFile)
	tr := i18n.NewTranslator(store)
	extractor := provider.NewYtdlp(provider.YtdlpOptions{
		Executable: cfg.YtdlpPath,
		Cookies:    cfg.YtdlpCookies,
	})

	dispatcher := tg.NewUpdateDispatcher()
	client, err := telegram.NewClient(telegram.Options{
		AppID:      cfg.AppID,
		AppHash:    cfg.AppHash,
		BotToken:   cfg.BotToken,
		SessionDir: cfg.SessionDir,
		LogLevel:   cfg.LogLevel,
	}, dispatcher)
	if err != nil {
		return nil, err
	}

	peers := telegram.NewPeers()
	sender := telegram.NewSender(client.API(), peers)

	dlHandler := handler.NewDownloadHandler(handler.DownloadConfig{
		Messenger:  sender,
		Translator: tr,
		Sessions:   sessions,
		Extractor:  extractor,
		Pool:       pool,
		Files:      files,
		Stats:      recorder,
		MaxBytes:   cfg.MaxUploadBytes,
	})
	basicHandler := handler.NewBasicHandler(sender, tr, store, cfg.MaxUploadBytes)
	adminHandler := handler.NewAdminHandler(sender, cfg.OwnerID, files.Root(), recorder, sessions, pool)

	router := bot.NewRouter(peers, tr, dlHandler, basicHandler, adminHandler, sender)
	router.Register(dispatcher)

	a := &App{
		cfg:   cfg,
		bot:   bot.New(client, router),
		pool:  pool,
		files: files,
	}
	if cfg.MetricsAddr != "" {
		a.metrics = server.New(cfg.MetricsAddr, reg)
	}

	logger.Info("Application initialized successfully",
		"workers", cfg.Workers,
		"download_dir", files.Root(),
		"max_upload_mb", cfg.MaxUploadBytes/(1024*1024),
	)
	return a, nil
}

// Run serves until ctx is cancelled or one of the components fails.
func (a *App) Run(ctx context.Context) error {
	defer a.pool.Stop()

	if n := a.files.SweepOrphans(ctx, a.cfg.OrphanMaxAge); n > 0 {
		logger.Info("Removed orphaned downloads", "count", n)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.bot.Run(ctx)
	})
	if a.metrics != nil {
		g.Go(func() error {
			return server.Run(ctx, a.metrics)
		})
	}
	return g.Wait()
}
