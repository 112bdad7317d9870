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
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/higher-steaks/hs-leaderboard/internal/adapter"
	"github.com/higher-steaks/hs-leaderboard/internal/config"
	"github.com/higher-steaks/hs-leaderboard/internal/discovery"
	"github.com/higher-steaks/hs-leaderboard/internal/identity"
	"github.com/higher-steaks/hs-leaderboard/internal/leaderboard"
	"github.com/higher-steaks/hs-leaderboard/internal/logger"
	"github.com/higher-steaks/hs-leaderboard/internal/pipeline"
	ethprovider "github.com/higher-steaks/hs-leaderboard/internal/providers/ethereum"
	"github.com/higher-steaks/hs-leaderboard/internal/providers/farcaster"
	"github.com/higher-steaks/hs-leaderboard/internal/providers/price"
	"github.com/higher-steaks/hs-leaderboard/internal/qualify"
	"github.com/higher-steaks/hs-leaderboard/internal/reconcile"
	"github.com/higher-steaks/hs-leaderboard/internal/store"
)

func main() {
	configFile := flag.String("c", "", "path to config file")
	envPath := flag.String("e", "config/", "path to env files")
	flag.Parse()

	cfg, err := config.LoadRefresherConfig(*configFile, *envPath)
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags:      map[string]string{"service": "refresher"},
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

	runCycle := func() {
		if _, err := refresher.Run(ctx); err != nil {
			logger.Error(err)
		}
	}

	if cfg.Refresh.Schedule == "" {
		runCycle()
		return
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Refresh.Schedule, runCycle); err != nil {
		logger.Fatal("Invalid refresh schedule",
			zap.String("schedule", cfg.Refresh.Schedule),
			zap.Error(err))
	}

	logger.Info("Refresher started", zap.String("schedule", cfg.Refresh.Schedule))
	scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down refresher")
	cancel()
	<-scheduler.Stop().Done()
}
