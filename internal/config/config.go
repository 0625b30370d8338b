package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `yaml:"app" mapstructure:"app"`
	API       APIConfig       `yaml:"api" mapstructure:"api"`
	Chain     ChainConfig     `yaml:"chain" mapstructure:"chain"`
	Providers ProvidersConfig `yaml:"providers" mapstructure:"providers"`
	Refresh   RefreshConfig   `yaml:"refresh" mapstructure:"refresh"`
}

type AppConfig struct {
	Environment string `yaml:"environment" mapstructure:"environment"`
	LogLevel    string `yaml:"log_level" mapstructure:"log_level"`
}

type APIConfig struct {
	Port           string   `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RateLimit      int      `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per minute
}

// ChainConfig - параметри Rootstock RPC та Tropykus контрактів
type ChainConfig struct {
	RPCURL        string `yaml:"rpc_url" mapstructure:"rpc_url"`
	ChainID       string `yaml:"chain_id" mapstructure:"chain_id"`
	Comptroller   string `yaml:"comptroller" mapstructure:"comptroller"`
	BlocksPerYear int64  `yaml:"blocks_per_year" mapstructure:"blocks_per_year"`
}

type ProvidersConfig struct {
	BlockscoutBase   string            `yaml:"blockscout_base" mapstructure:"blockscout_base"`
	ExplorerBase     string            `yaml:"explorer_base" mapstructure:"explorer_base"`
	MerklBase        string            `yaml:"merkl_base" mapstructure:"merkl_base"`
	FootprintBase    string            `yaml:"footprint_base" mapstructure:"footprint_base"`
	FootprintAPIKey  string            `yaml:"footprint_api_key" mapstructure:"footprint_api_key"`
	FootprintCardID  string            `yaml:"footprint_card_id" mapstructure:"footprint_card_id"`
	MidasBase        string            `yaml:"midas_base" mapstructure:"midas_base"`
	IcarusBase       string            `yaml:"icarus_base" mapstructure:"icarus_base"`
	WRBTCAddress     string            `yaml:"wrbtc_address" mapstructure:"wrbtc_address"`
	MidasTokens      map[string]string `yaml:"midas_tokens" mapstructure:"midas_tokens"`
	CacheTTLMinutes  int               `yaml:"cache_ttl_minutes" mapstructure:"cache_ttl_minutes"`
	ProbeTimeoutSecs int               `yaml:"probe_timeout_secs" mapstructure:"probe_timeout_secs"`
}

type RefreshConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	CronSpec string `yaml:"cron_spec" mapstructure:"cron_spec"`
}

func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	setDefaults(v)

	// ENV overrides: IBITRACKER_PROVIDERS_FOOTPRINT_API_KEY etc.
	v.SetEnvPrefix("IBITRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config файл опціональний - defaults + ENV достатньо
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("api.port", "8001")
	v.SetDefault("api.allowed_origins", []string{"*"})
	v.SetDefault("api.rate_limit", 120)

	v.SetDefault("chain.rpc_url", "https://public-node.rsk.co")
	v.SetDefault("chain.chain_id", "30")
	v.SetDefault("chain.comptroller", "0xb1bec5376929b4e0235f1353819dba92c4b0c6bb")
	// Rootstock таргетує ~30s блоки
	v.SetDefault("chain.blocks_per_year", 1051200)

	v.SetDefault("providers.blockscout_base", "https://rootstock.blockscout.com/api/v2")
	v.SetDefault("providers.explorer_base", "https://be.explorer.rootstock.io/api/v3")
	v.SetDefault("providers.merkl_base", "https://api.merkl.xyz/v4")
	v.SetDefault("providers.footprint_base", "https://www.footprint.network/api/v1/dataApi/card")
	v.SetDefault("providers.footprint_card_id", "52841")
	v.SetDefault("providers.midas_base", "https://api-prod.midas.app/api/data")
	v.SetDefault("providers.icarus_base", "https://omni.icarus.tools/rootstock/cush/analyticsPosition")
	v.SetDefault("providers.wrbtc_address", "0x542fda317318ebf1d3deaf76e0b632741a7e677d")
	v.SetDefault("providers.midas_tokens", map[string]string{
		"0xef85254aa4a8490bcc9c02ae38513cae8303fb53": "mbtc",
	})
	v.SetDefault("providers.cache_ttl_minutes", 10)
	v.SetDefault("providers.probe_timeout_secs", 5)

	v.SetDefault("refresh.enabled", true)
	v.SetDefault("refresh.cron_spec", "*/10 * * * *")
}

func validate(cfg *Config) error {
	if cfg.API.Port == "" {
		return errors.New("api.port is required")
	}
	if cfg.Chain.RPCURL == "" {
		return errors.New("chain.rpc_url is required")
	}
	if cfg.Chain.BlocksPerYear <= 0 {
		return errors.New("chain.blocks_per_year must be positive")
	}
	return nil
}
