package main

import (
	"context"
	"fmt"
	"time"

	"lendboard/internal/app/port"
	"lendboard/internal/app/provider"
	"lendboard/internal/app/service"
	"lendboard/internal/config"
	"lendboard/internal/infrastructure/priceclient"
	"lendboard/internal/infrastructure/sessionstore"
	"lendboard/internal/infrastructure/starknet"
	"lendboard/internal/infrastructure/tokenloader"
	"lendboard/internal/pkg/logger"
	"lendboard/internal/pkg/metrics"
	"lendboard/internal/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "lendboard",
	Short:         "Lending dashboard table engine",
	Long:          `lendboard builds the deposits, positions and transaction history table of a lending protocol dashboard for a Starknet wallet.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", utils.GetEnv("CONFIG_PATH", "config/config.yaml"), "path to the YAML configuration file")
}

// app holds the wired components shared by every command.
type app struct {
	cfg       *config.Config
	zap       *zap.Logger
	dashboard port.DashboardService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	zapLogger, err := logger.NewZap(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return nil, err
	}
	logger.InitWithZap(zapLogger)
	appLogger := logger.NewSlogAdapter()

	metrics.MustRegisterMetrics()

	tokenProvider := provider.NewTokenProvider(cfg.Tokens, appLogger)
	if cfg.TokensFile != "" {
		tokenProvider = tokenloader.NewTokenLoader(cfg.TokensFile, appLogger)
	}
	registry, err := service.NewTokenRegistry(tokenProvider, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to build token registry: %w", err)
	}

	source, err := starknet.NewClient(ctx, cfg.Starknet, zapLogger)
	if err != nil {
		return nil, err
	}
	zapLogger.Info("Starknet client initialized",
		zap.String("rpcURL", cfg.Starknet.RPCURL),
		zap.String("protocol", cfg.Starknet.ProtocolAddress))

	oracle := newPriceOracle(cfg, zapLogger)
	zapLogger.Info("Price oracle initialized", zap.String("provider", cfg.PriceOracle.Provider))

	deps := service.SessionDeps{
		Source:   source,
		Prices:   service.NewPriceService(oracle, cfg.PriceOracle.Provider, appLogger),
		Resolver: service.NewRowResolver(registry, cfg.FallbackDecimals(), cfg.Starknet.ExplorerHost, appLogger),
		Pager:    service.NewPaginator(cfg.Dashboard.RowsPerPage, cfg.Dashboard.MaxVisibleButtons),
		Options: service.SessionOptions{
			HistoryPageSize: cfg.Starknet.HistoryPageSize,
			HistoryMaxPages: cfg.Starknet.HistoryMaxPages,
			FetchTimeout:    mountTimeout(cfg),
		},
		Logger: appLogger,
	}
	store := sessionstore.New(
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		time.Duration(cfg.Session.CleanupIntervalMinutes)*time.Minute,
	)

	return &app{
		cfg:       cfg,
		zap:       zapLogger,
		dashboard: service.NewDashboardService(deps, registry, store, appLogger),
	}, nil
}

func newPriceOracle(cfg *config.Config, zapLogger *zap.Logger) port.PriceOracle {
	timeout := time.Duration(cfg.PriceOracle.RequestTimeoutMillis) * time.Millisecond
	if cfg.PriceOracle.Provider == config.ProviderDEXScreener {
		return priceclient.NewDEXScreenerClient(cfg.DEXScreener, timeout, zapLogger)
	}
	return priceclient.NewCoinGeckoClient(cfg.CoinGecko, timeout, zapLogger)
}

func mountTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Dashboard.MountTimeoutMs) * time.Millisecond
}
