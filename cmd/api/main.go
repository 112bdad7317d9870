package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/higher-steaks/hs-leaderboard/internal/adapter"
	"github.com/higher-steaks/hs-leaderboard/internal/api/middleware"
	"github.com/higher-steaks/hs-leaderboard/internal/api/rest"
	"github.com/higher-steaks/hs-leaderboard/internal/api/server"
	"github.com/higher-steaks/hs-leaderboard/internal/config"
	"github.com/higher-steaks/hs-leaderboard/internal/discovery"
	"github.com/higher-steaks/hs-leaderboard/internal/events"
	"github.com/higher-steaks/hs-leaderboard/internal/identity"
	"github.com/higher-steaks/hs-leaderboard/internal/leaderboard"
	"github.com/higher-steaks/hs-leaderboard/internal/logger"
	"github.com/higher-steaks/hs-leaderboard/internal/messaging"
	"github.com/higher-steaks/hs-leaderboard/internal/notify"
	"github.com/higher-steaks/hs-leaderboard/internal/pipeline"
	ethprovider "github.com/higher-steaks/hs-leaderboard/internal/providers/ethereum"
	"github.com/higher-steaks/hs-leaderboard/internal/providers/farcaster"
	"github.com/higher-steaks/hs-leaderboard/internal/providers/jetstream"
	"github.com/higher-steaks/hs-leaderboard/internal/providers/price"
	"github.com/higher-steaks/hs-leaderboard/internal/qualify"
	"github.com/higher-steaks/hs-leaderboard/internal/reconcile"
	"github.com/higher-steaks/hs-leaderboard/internal/store"
	"github.com/higher-steaks/hs-leaderboard/internal/webhook"
)

func main() {
	configFile := flag.String("c", "", "path to config file")
	envPath := flag.String("e", "config/", "path to env files")
	flag.Parse()

	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags:      map[string]string{"service": "api"},
	}); err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Flush(2 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.OpenPostgres(cfg.Database.DSN())
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	st := store.NewPGStore(db)

	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(30 * time.Second)

	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.Fatal("Failed to dial ethereum rpc", zap.Error(err))
	}
	defer ethClient.Close()

	lockupClient, err := ethprovider.NewLockupClient(
		ethClient,
		common.HexToAddress(cfg.Ethereum.LedgerContract),
		common.HexToAddress(cfg.Ethereum.MulticallContract),
	)
	if err != nil {
		logger.Fatal("Failed to create lockup client", zap.Error(err))
	}

	fcClient := farcaster.NewClient(farcaster.Config{
		BaseURL:           cfg.Farcaster.BaseURL,
		APIKey:            cfg.Farcaster.APIKey,
		RequestsPerSecond: cfg.Farcaster.RequestsPerSecond,
	}, httpClient)
	priceClient := price.NewClient(price.Config{
		BaseURL: cfg.Price.BaseURL,
		CoinID:  cfg.Price.CoinID,
	}, httpClient)

	refresher := pipeline.New(
		discovery.NewDiscoverer(lockupClient, discovery.Config{
			Token:     common.HexToAddress(cfg.Ethereum.StakingToken),
			BatchSize: cfg.Ethereum.BatchSize,
			Workers:   cfg.Ethereum.Workers,
		}),
		identity.NewResolver(fcClient, farcaster.MaxAddressBatch),
		reconcile.NewReconciler(
			fcClient,
			qualify.New(cfg.Leaderboard.Keyphrase, cfg.Leaderboard.ChannelID),
			clock,
			reconcile.Config{
				CastLimit: cfg.Leaderboard.CastLimit,
				Lookback:  cfg.Leaderboard.Lookback,
			},
		),
		leaderboard.NewMaterializer(st, priceClient, leaderboard.Config{TopN: cfg.Leaderboard.TopN}),
		clock,
	)

	broadcaster := events.NewBroadcaster(events.DefaultCapacity, clock)

	notifier := notify.NewNotifier(st, httpClient, priceClient, clock, notify.Config{
		AppURL:          cfg.Notifications.AppURL,
		MinSupporterUSD: cfg.Notifications.MinSupporterUSD,
	})
	go events.NewReconciler(broadcaster, st, notifier).Run(ctx)

	if cfg.NATS.Enabled {
		publisher, err := jetstream.NewPublisher(adapter.NewNatsJetStream(), jetstream.Config{
			URL:           cfg.NATS.URL,
			SubjectPrefix: cfg.NATS.SubjectPrefix,
		})
		if err != nil {
			logger.Fatal("Failed to connect to nats", zap.Error(err))
		}
		defer publisher.Close()
		go messaging.Relay(ctx, broadcaster, publisher)
	}

	if len(cfg.Webhook.Secrets) == 0 {
		logger.Warn("No webhook secrets configured, lockup webhooks will be rejected")
	} else {
		logger.Info("Webhook verification enabled",
			zap.Int("secrets", len(cfg.Webhook.Secrets)),
			zap.Duration("replay_window", webhook.ReplayWindow))
	}

	handler := rest.NewHandler(st, refresher, broadcaster, clock, cfg.Webhook.Secrets)
	srv := server.New(cfg.Server, cfg.Debug, handler, middleware.AuthConfig{
		JWTPublicKey: cfg.Auth.JWTPublicKey,
		APIKeys:      cfg.Auth.APIKeys,
	})

	go func() {
		logger.Info("API server listening", zap.String("addr", srv.Addr()))
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down API server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(err)
	}
}
