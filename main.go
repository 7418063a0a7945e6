package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"railway-reservation/config"
	"railway-reservation/console"
	"railway-reservation/database"
	"railway-reservation/handlers"
	"railway-reservation/ledger"
	"railway-reservation/logger"
	"railway-reservation/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogOutput)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("cannot open snapshot store", zap.Error(err))
	}
	defer closeStore()

	l, err := ledger.Open(ctx, store, log)
	if err != nil {
		log.Fatal("cannot restore ledger", zap.Error(err))
	}

	mode := "console"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	switch mode {
	case "console":
		if err := console.New(l, os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
			log.Fatal("console stopped", zap.Error(err))
		}
	case "serve":
		if err := serve(ctx, cfg, l, log); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [console|serve]\n", os.Args[0])
		os.Exit(2)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (database.Store, func(), error) {
	if cfg.Store == config.StoreMongo {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		store, err := database.ConnectMongo(connectCtx, cfg.MongoConnString, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			store.Close(closeCtx)
		}, nil
	}
	return database.NewFileStore(cfg.DataDir, cfg.TrainsFile, cfg.BookingsFile), func() {}, nil
}

func serve(ctx context.Context, cfg *config.Config, l *ledger.Ledger, log *zap.Logger) error {
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	router.SetupRoutes(app, handlers.New(l, handlers.AuthConfig{
		Login:        cfg.OperatorLogin,
		PasswordHash: cfg.OperatorPasswordHash,
		Sign:         cfg.Sign,
		TokenTTL:     cfg.TokenTTL,
	}, log))

	go func() {
		<-ctx.Done()
		log.Info("shutting down server")
		app.Shutdown()
	}()

	log.Info("server starting", zap.String("addr", cfg.ListenAddr))
	return app.Listen(cfg.ListenAddr)
}
