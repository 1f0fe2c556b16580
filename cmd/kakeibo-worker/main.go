package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"kakeibo/internal/amqp"
	"kakeibo/internal/config"
	applog "kakeibo/internal/log"
	"kakeibo/internal/remote"
	remotefs "kakeibo/internal/remote/firestore"
	remotemem "kakeibo/internal/remote/memory"
	"kakeibo/internal/storage"
	"kakeibo/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	applog.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		slog.Error("Worker requires AMQP_URL to be set")
		os.Exit(1)
	}

	store, err := storage.Open(storage.BackendType(cfg.DataBackend), cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to open storage", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var remoteStore remote.SnapshotStore
	if cfg.FirestoreEnabled() {
		remoteStore, err = remotefs.New(ctx, remotefs.Config{
			ProjectID:       cfg.FirestoreProjectID,
			CredentialsFile: cfg.FirestoreCredentialsFile,
			UserID:          cfg.SyncUserID,
		})
		if err != nil {
			slog.Error("Failed to create Firestore client", "error", err)
			os.Exit(1)
		}
		slog.Info("Firestore replica enabled",
			"project", cfg.FirestoreProjectID, "user", cfg.SyncUserID)
	} else {
		remoteStore = remotemem.New()
		slog.Warn("No Firestore configured, using in-memory replica")
	}
	defer remoteStore.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		slog.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	syncWorker := worker.NewSyncWorker(store, remoteStore, cfg.SyncDebounce)
	if err := syncWorker.Seed(ctx); err != nil {
		slog.Warn("Failed to seed local store from remote", "error", err)
	}
	syncWorker.Start(ctx)
	defer syncWorker.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.ConsumeSyncRequested(ctx, func(msg *amqp.SyncRequestedMessage) error {
			slog.Info("Sync requested", "reason", msg.Reason)
			syncWorker.Trigger()
			return nil
		})
	})

	slog.Info("Worker started", "queue", cfg.AMQPQueue, "debounce", cfg.SyncDebounce)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Worker error", "error", err)
		os.Exit(1)
	}
	slog.Info("Worker stopped gracefully")
}
