package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"content_mirror/internal/cache"
	"content_mirror/internal/config"
	"content_mirror/internal/dispatch"
	"content_mirror/internal/domain"
	"content_mirror/internal/freshness"
	"content_mirror/internal/httpapi"
	"content_mirror/internal/publisher"
	"content_mirror/internal/scheduler"
	"content_mirror/internal/service"
	"content_mirror/internal/source"
	"content_mirror/internal/source/blogfeed"
	"content_mirror/internal/source/blogger"
	"content_mirror/internal/source/video"
	"content_mirror/internal/storage"
	"content_mirror/internal/storage/jsonfile"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	store, err := storage.Open(cfg.Store.DSN, nil)
	if err != nil {
		logger.Error("failed to open store", "dsn", cfg.Store.DSN, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("store opened", "dsn", cfg.Store.DSN)

	sources := buildSources(cfg, logger)
	if len(sources) == 0 {
		logger.Error("no provider configured, set blog.blog_id, blog.feed_url or video.channel_id")
		os.Exit(1)
	}

	// Campaigns are optional; without a broker the notifier is disabled.
	var campaigner service.Campaigner
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		campaigner = rabbitMQ
	} else {
		logger.Warn("rabbitmq not configured, campaign notifications disabled")
	}

	policy := freshness.New(cfg.Freshness.Window, cfg.Cache.MemoTTL, nil)
	memo := cache.NewMemo(policy, nil)

	notifier := service.NewNotifier(store, campaigner, memo, logger, nil)
	dispatcher := dispatch.New(notifier, cfg.Notify.QueueSize, cfg.Notify.Workers, logger)

	syncers := make([]*service.SyncService, 0, len(sources))
	kinds := make([]domain.Kind, 0, len(sources))
	for _, src := range sources {
		syncers = append(syncers, service.NewSyncService(src.Source, store, logger, cfg.Sync, src.PageSize, nil))
		kinds = append(kinds, src.Source.Kind())
	}

	// Nothing drains the queue when notifications are off.
	var queue service.NotifyQueue
	if notifier.Enabled() {
		queue = dispatcher
	}

	queries := service.NewQueryService(
		store,
		policy,
		memo,
		queue,
		logger,
		service.QueryConfig{SyncTimeout: cfg.Sync.Timeout},
		syncers...,
	)

	server := httpapi.New(queries, httpapi.Config{
		Addr:            cfg.HTTP.Addr,
		AdminToken:      cfg.HTTP.AdminToken,
		AdminTokenHash:  cfg.HTTP.AdminTokenHash,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if fileStore, ok := store.(*jsonfile.Store); ok && cfg.Store.Watch {
		if err := cache.Watch(ctx, fileStore.Dir(), memo, logger); err != nil {
			logger.Warn("store watcher disabled", "error", err)
		}
	}

	logger.Info("starting content mirror",
		"addr", cfg.HTTP.Addr,
		"kinds", kinds,
		"freshness_window", cfg.Freshness.Window,
		"notifications", notifier.Enabled(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(gctx)
	})
	if notifier.Enabled() {
		sched := scheduler.NewScheduler(dispatcher, kinds, cfg.Notify.SweepInterval, logger)
		g.Go(func() error {
			return dispatcher.Run(gctx)
		})
		g.Go(func() error {
			return sched.Start(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mirror stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("mirror stopped")
}

type configuredSource struct {
	Source   service.Source
	PageSize int
}

func buildSources(cfg *config.Config, logger *slog.Logger) []configuredSource {
	var sources []configuredSource

	if cfg.BlogEnabled() {
		client := source.ClientConfig{
			Timeout:        cfg.Blog.Timeout,
			MaxAttempts:    cfg.Blog.Retry.MaxAttempts,
			InitialBackoff: cfg.Blog.Retry.InitialBackoff,
			MaxBackoff:     cfg.Blog.Retry.MaxBackoff,
		}
		var blog service.Source
		if cfg.Blog.Mode == "feed" {
			blog = blogfeed.New(blogfeed.Config{
				FeedURL:    cfg.Blog.FeedURL,
				Categories: cfg.Blog.Categories,
				Client:     client,
			}, logger)
		} else {
			blog = blogger.New(blogger.Config{
				BaseURL:    cfg.Blog.BaseURL,
				BlogID:     cfg.Blog.BlogID,
				APIKey:     cfg.Blog.APIKey,
				Categories: cfg.Blog.Categories,
				Client:     client,
			}, logger)
		}
		sources = append(sources, configuredSource{Source: blog, PageSize: cfg.Blog.PageSize})
	}

	if cfg.VideoEnabled() {
		sources = append(sources, configuredSource{
			Source: video.New(video.Config{
				BaseURL:     cfg.Video.BaseURL,
				ChannelID:   cfg.Video.ChannelID,
				MinDuration: cfg.Video.MinDuration,
				Client: source.ClientConfig{
					Timeout:        cfg.Video.Timeout,
					MaxAttempts:    cfg.Video.Retry.MaxAttempts,
					InitialBackoff: cfg.Video.Retry.InitialBackoff,
					MaxBackoff:     cfg.Video.Retry.MaxBackoff,
					BearerToken:    cfg.Video.Token,
				},
			}, logger),
			PageSize: cfg.Video.PageSize,
		})
	}

	return sources
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
