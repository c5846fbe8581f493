package main

import (
	"CatalogBot/internal/assets"
	"CatalogBot/internal/bot"
	"CatalogBot/internal/config"
	"CatalogBot/internal/dialog"
	"CatalogBot/internal/handlers"
	"CatalogBot/internal/links"
	"CatalogBot/internal/middleware"
	"CatalogBot/internal/repo"
	"CatalogBot/internal/service"
	"CatalogBot/internal/telegram"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.NewConfig()
	if cfg.Version {
		fmt.Printf("Catalog bot\nVersion: %s\nBuild date: %s\n", version, buildDate)
		return
	}

	// создаём предустановленный регистратор zap
	newLogger := zap.NewDevelopment
	if cfg.LogJSON {
		newLogger = zap.NewProduction
	}
	logger, err := newLogger()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Debugw("Failed to sync logger", "error", err)
		}
	}()

	if err := run(cfg, sugar); err != nil {
		sugar.Errorw("Server stopped with error", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, sugar *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"Webhook", cfg.WebhookEnabled(),
		"AssetBackend", cfg.AssetBackend,
		"SessionBackend", cfg.SessionBackend,
		"Postgres", repo.IsPostgresDSN(cfg.DatabaseDSN),
	)

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	store, err := assets.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize asset store: %w", err)
	}
	assetManager := assets.NewManager(store, sugar)

	registry, closeRegistry, err := openRegistry(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRegistry()

	repos := service.NewRepos(gormDB)
	catalog := service.NewCatalogService(repos, assetManager, sugar)
	access := service.NewAccessService(repos.Users, sugar)
	if err := catalog.SeedSuperadmin(ctx, cfg.SuperadminID); err != nil {
		return fmt.Errorf("failed to seed superadmin: %w", err)
	}

	var signer *links.Signer
	if cfg.LinksEnabled() {
		signer, err = links.NewSigner(cfg.AssetSecret, cfg.WebhookURL, cfg.AssetLinkTTL)
		if err != nil {
			return err
		}
	}

	tg, err := telegram.NewBot(telegram.Options{
		Token:         cfg.BotToken,
		WebhookURL:    cfg.WebhookURL,
		WebhookSecret: cfg.WebhookSecret,
	}, sugar)
	if err != nil {
		return err
	}

	deps := bot.Deps{
		Catalog: catalog,
		Access:  access,
		Assets:  assetManager,
		Engine:  dialog.NewEngine(registry, sugar),
		Sender:  tg.Sender(),
		Logger:  sugar,
	}
	httpDeps := handlers.Deps{Assets: assetManager, DB: sqlDB, Logger: sugar}
	if signer != nil {
		deps.Links = signer
		httpDeps.Links = signer
	}
	if tg.WebhookEnabled() {
		httpDeps.Webhook = tg.WebhookHandler()
	}
	tg.SetHandler(bot.NewDispatcher(deps))

	h := handlers.NewHandler(httpDeps)
	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sugar.Infow("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return tg.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		sugar.Infow("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openRegistry выбирает хранилище состояний диалогов.
func openRegistry(ctx context.Context, cfg *config.Config) (dialog.Registry, func(), error) {
	if cfg.SessionBackend != config.SessionBackendRedis {
		return dialog.NewMemoryRegistry(cfg.SessionTTL), func() {}, nil
	}
	r := dialog.NewRedisRegistry(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.Ping(pingCtx); err != nil {
		_ = r.Close()
		return nil, nil, fmt.Errorf("redis is unavailable at %s: %w", cfg.RedisAddr, err)
	}
	return r, func() { _ = r.Close() }, nil
}
