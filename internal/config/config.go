package config

import (
	"fmt"
	"os"
	"strings"

	"lendboard/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Starknet    StarknetConfig    `yaml:"starknet"`
	PriceOracle PriceOracleConfig `yaml:"priceOracle"`
	CoinGecko   CoinGeckoConfig   `yaml:"coinGecko"`
	DEXScreener DEXScreenerConfig `yaml:"dexScreener"`
	Dashboard   DashboardConfig   `yaml:"dashboard"`
	Session     SessionConfig     `yaml:"session"`
	Tokens      []TokenConfig     `yaml:"tokens"`
	TokensFile  string            `yaml:"tokensFile"` // JSON token list; takes precedence over tokens
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port            string   `yaml:"port"`
	ReadTimeout     int      `yaml:"readTimeout"`
	WriteTimeout    int      `yaml:"writeTimeout"`
	IdleTimeout     int      `yaml:"idleTimeout"`
	AllowedOrigins  []string `yaml:"allowedOrigins"`
	EnablePprof     bool     `yaml:"enablePprof"`
	ShutdownTimeout int      `yaml:"shutdownTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// StarknetConfig configures the on-chain data source.
type StarknetConfig struct {
	RPCURL          string  `yaml:"rpcURL"`
	ProtocolAddress string  `yaml:"protocolAddress"`
	BlockID         string  `yaml:"blockID"`
	RPCTimeoutMs    int64   `yaml:"rpcTimeoutMs"`
	RateLimit       float64 `yaml:"rateLimit"` // requests per second
	BurstLimit      int     `yaml:"burstLimit"`
	HistoryPageSize uint32  `yaml:"historyPageSize"`
	HistoryMaxPages int     `yaml:"historyMaxPages"`
	ExplorerHost    string  `yaml:"explorerHost"`
}

// PriceOracleConfig selects and tunes the USD price provider.
type PriceOracleConfig struct {
	Provider             string `yaml:"provider"` // coingecko or dexscreener
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// CoinGeckoConfig holds the configuration for the CoinGecko client.
type CoinGeckoConfig struct {
	BaseURL string            `yaml:"baseURL"`
	APIKey  string            `yaml:"apiKey"`
	IDs     map[string]string `yaml:"ids"` // tracked symbol -> CoinGecko coin id
}

// DEXScreenerConfig holds the configuration for the DEX Screener client.
type DEXScreenerConfig struct {
	BaseURL             string            `yaml:"baseURL"`
	ChainID             string            `yaml:"chainID"`
	TokenAddresses      map[string]string `yaml:"tokenAddresses"` // tracked symbol -> token address on ChainID
	MaxTokensPerRequest int               `yaml:"maxTokensPerRequest"`
}

// DashboardConfig holds table presentation settings.
type DashboardConfig struct {
	RowsPerPage       int   `yaml:"rowsPerPage"`
	MaxVisibleButtons int   `yaml:"maxVisibleButtons"`
	FallbackDecimals  *int  `yaml:"fallbackDecimals"`
	MountTimeoutMs    int64 `yaml:"mountTimeoutMs"`
}

// SessionConfig holds the in-memory session store settings.
type SessionConfig struct {
	TTLMinutes             int `yaml:"ttlMinutes"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// TokenConfig is one registry entry as written in YAML.
type TokenConfig struct {
	Symbol   string `yaml:"symbol"`
	Address  string `yaml:"address"`
	Icon     string `yaml:"icon"`
	Decimals uint8  `yaml:"decimals"`
}

const (
	ProviderCoinGecko   = "coingecko"
	ProviderDEXScreener = "dexscreener"

	defaultFallbackDecimals = 18
)

// LoadConfig loads configuration from a YAML file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes into a Config, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data: %v", err)
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if !strings.HasPrefix(cfg.Server.Port, ":") && !strings.Contains(cfg.Server.Port, ":") {
		cfg.Server.Port = ":" + cfg.Server.Port
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 5
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Starknet.RPCURL == "" {
		cfg.Starknet.RPCURL = "https://starknet-sepolia.public.blastapi.io/rpc/v0_7"
		logrus.Infof("Starknet.RPCURL not set, defaulting to %s", cfg.Starknet.RPCURL)
	}
	if cfg.Starknet.BlockID == "" {
		cfg.Starknet.BlockID = "latest"
	}
	if cfg.Starknet.RPCTimeoutMs == 0 {
		cfg.Starknet.RPCTimeoutMs = 10000
	}
	if cfg.Starknet.RateLimit == 0 {
		cfg.Starknet.RateLimit = 10
	}
	if cfg.Starknet.BurstLimit == 0 {
		cfg.Starknet.BurstLimit = 5
	}
	if cfg.Starknet.HistoryPageSize == 0 {
		cfg.Starknet.HistoryPageSize = 5
	}
	if cfg.Starknet.HistoryMaxPages == 0 {
		cfg.Starknet.HistoryMaxPages = 1
	}
	if cfg.Starknet.ExplorerHost == "" {
		cfg.Starknet.ExplorerHost = "sepolia.voyager.online"
	}

	if cfg.PriceOracle.Provider == "" {
		cfg.PriceOracle.Provider = ProviderCoinGecko
	}
	cfg.PriceOracle.Provider = strings.ToLower(cfg.PriceOracle.Provider)
	if cfg.PriceOracle.RequestTimeoutMillis == 0 {
		cfg.PriceOracle.RequestTimeoutMillis = 10000
	}

	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if len(cfg.CoinGecko.IDs) == 0 {
		cfg.CoinGecko.IDs = map[string]string{
			entity.SymbolETH:  "ethereum",
			entity.SymbolSTRK: "starknet",
		}
	}

	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = "https://api.dexscreener.com"
	}
	if cfg.DEXScreener.ChainID == "" {
		cfg.DEXScreener.ChainID = "starknet"
	}
	if len(cfg.DEXScreener.TokenAddresses) == 0 {
		cfg.DEXScreener.TokenAddresses = map[string]string{
			entity.SymbolETH:  "0x049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7",
			entity.SymbolSTRK: "0x04718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d",
		}
	}
	if cfg.DEXScreener.MaxTokensPerRequest == 0 {
		cfg.DEXScreener.MaxTokensPerRequest = 30
	}

	if cfg.Dashboard.RowsPerPage == 0 {
		cfg.Dashboard.RowsPerPage = 5
	}
	if cfg.Dashboard.MaxVisibleButtons == 0 {
		cfg.Dashboard.MaxVisibleButtons = 5
	}
	if cfg.Dashboard.FallbackDecimals == nil {
		d := defaultFallbackDecimals
		cfg.Dashboard.FallbackDecimals = &d
	}
	if cfg.Dashboard.MountTimeoutMs == 0 {
		cfg.Dashboard.MountTimeoutMs = 30000
	}

	if cfg.Session.TTLMinutes == 0 {
		cfg.Session.TTLMinutes = 30
	}
	if cfg.Session.CleanupIntervalMinutes == 0 {
		cfg.Session.CleanupIntervalMinutes = 5
	}
}

// Validate reports configuration errors that defaults cannot repair.
func (cfg *Config) Validate() error {
	switch cfg.PriceOracle.Provider {
	case ProviderCoinGecko, ProviderDEXScreener:
	default:
		return fmt.Errorf("unsupported priceOracle.provider %q", cfg.PriceOracle.Provider)
	}
	for _, sym := range entity.TrackedSymbols {
		if cfg.PriceOracle.Provider == ProviderCoinGecko && cfg.CoinGecko.IDs[sym] == "" {
			return fmt.Errorf("coinGecko.ids is missing tracked symbol %q", sym)
		}
		if cfg.PriceOracle.Provider == ProviderDEXScreener && cfg.DEXScreener.TokenAddresses[sym] == "" {
			return fmt.Errorf("dexScreener.tokenAddresses is missing tracked symbol %q", sym)
		}
	}
	if fd := *cfg.Dashboard.FallbackDecimals; fd < 0 || fd > 255 {
		return fmt.Errorf("dashboard.fallbackDecimals must be within 0..255, got %d", fd)
	}
	if cfg.Dashboard.RowsPerPage < 0 || cfg.Dashboard.MaxVisibleButtons < 0 {
		return fmt.Errorf("dashboard.rowsPerPage and dashboard.maxVisibleButtons must be positive")
	}
	if cfg.Starknet.ProtocolAddress == "" {
		logrus.Warn("starknet.protocolAddress is not set; on-chain reads will fail until it is configured")
	}
	for i, t := range cfg.Tokens {
		if t.Symbol == "" || t.Address == "" {
			return fmt.Errorf("tokens[%d]: symbol and address are required", i)
		}
	}
	return nil
}

// FallbackDecimals returns the precision used for tokens missing from the registry.
func (cfg *Config) FallbackDecimals() uint8 {
	if cfg.Dashboard.FallbackDecimals == nil {
		return defaultFallbackDecimals
	}
	return uint8(*cfg.Dashboard.FallbackDecimals)
}
