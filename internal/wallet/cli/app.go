// Package cli is the terminal front end of the wallet. It is a thin consumer
// of the storage manager: all storage decisions (mode, queueing, conflict
// handling) live below it.
package cli

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/cardvault/internal/logging"
	"github.com/dmitrijs2005/cardvault/internal/netx"
	"github.com/dmitrijs2005/cardvault/internal/wallet/config"
	"github.com/dmitrijs2005/cardvault/internal/wallet/localstore"
	"github.com/dmitrijs2005/cardvault/internal/wallet/manager"
	"github.com/dmitrijs2005/cardvault/internal/wallet/queue"
	"github.com/dmitrijs2005/cardvault/internal/wallet/remotestore"
	"github.com/dmitrijs2005/cardvault/internal/wallet/syncx"
)

type App struct {
	config  *config.Config
	manager *manager.Manager
	checker *netx.Checker
	log     logging.Logger
	reader  *bufio.Reader
	online  atomic.Bool
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	reader := bufio.NewReader(os.Stdin)

	db, err := localstore.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}
	local := localstore.NewSQLiteStore(db, logger)

	provider, err := buildProvider(ctx, cfg, reader)
	if err != nil {
		return nil, err
	}

	var codec remotestore.Codec
	if cfg.Passphrase != "" {
		codec = remotestore.NewEncryptedCodec(cfg.Passphrase)
	}
	remote := remotestore.NewDocumentStore(provider, codec, logger)

	q := queue.New(local, logger)
	m := manager.New(local, remote, q,
		syncx.NewDetector(local, remote, logger),
		syncx.NewResolver(local, remote, logger),
		logger)

	return &App{
		config:  cfg,
		manager: m,
		checker: netx.NewChecker(cfg.OnlineCheckURL),
		log:     logger,
		reader:  reader,
	}, nil
}

func buildProvider(ctx context.Context, cfg *config.Config, reader *bufio.Reader) (remotestore.Provider, error) {
	if !cfg.CloudConfigured() {
		return remotestore.Unconfigured{}, nil
	}

	if cfg.S3SecretKey == "" {
		secret, err := GetPassword(os.Stdout, "Enter cloud secret key: ")
		if err != nil {
			return nil, err
		}
		cfg.S3SecretKey = string(secret)
	}

	return remotestore.NewS3Provider(ctx, remotestore.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
}

func (a *App) Run(ctx context.Context) {
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	a.Root(ctx)
}

func (a *App) isOnline() bool {
	return a.online.Load()
}

// StartOnlineStatusWatcher probes connectivity on a fixed interval. When the
// device comes back online it kicks off a replay of the queued operations.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			online := a.checker.Online(ctx)
			if online == a.online.Swap(online) {
				continue
			}
			if online {
				log.Println("Back online")
				if err := a.manager.ProcessQueuedOperations(ctx); err != nil {
					a.log.Warn(ctx, "queue replay failed", "error", err)
				}
			} else {
				log.Println("Offline, writes will be queued")
			}

		case <-ctx.Done():
			return
		}
	}
}
