package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string           `mapstructure:"environment"`
	LogLevel    string           `mapstructure:"log_level"`
	Server      ServerConfig     `mapstructure:"server"`
	MarketData  MarketDataConfig `mapstructure:"market_data"`
	Yemot       YemotConfig      `mapstructure:"yemot"`
	Speech      SpeechConfig     `mapstructure:"speech"`
	Reference   ReferenceConfig  `mapstructure:"reference"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MarketDataConfig controls the historical price source and its retry budget.
type MarketDataConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	Timeout    int    `mapstructure:"timeout"`
	MaxRetries int    `mapstructure:"max_retries"`
	RetryDelay string `mapstructure:"retry_delay"`
}

// YemotConfig holds credentials and endpoints for the Yemot file API, the
// IVR storage namespace where caller recordings live and spoken responses
// are uploaded to.
type YemotConfig struct {
	APIURL      string `mapstructure:"api_url"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password" json:"-" yaml:"-"`
	Timeout     int    `mapstructure:"timeout"`
	ResponseExt string `mapstructure:"response_ext"`
}

// SpeechConfig points at the speech sidecar service used for transcription
// and synthesis.
type SpeechConfig struct {
	ServiceURL string `mapstructure:"service_url"`
	Timeout    int    `mapstructure:"timeout"`
	Language   string `mapstructure:"language"`
	Voice      string `mapstructure:"voice"`
}

type ReferenceConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Bind specific environment variables
	if err := viper.BindEnv("yemot.username", "YEMOT_USERNAME"); err != nil {
		return nil, fmt.Errorf("failed to bind YEMOT_USERNAME environment variable: %w", err)
	}
	if err := viper.BindEnv("yemot.password", "YEMOT_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind YEMOT_PASSWORD environment variable: %w", err)
	}

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Normalize environment to lowercase for consistent comparison
	environment := strings.ToLower(config.Environment)

	// The Yemot token is username:password; both halves are required outside
	// development since every request downloads from and uploads to Yemot.
	if environment != "development" && (config.Yemot.Username == "" || config.Yemot.Password == "") {
		return nil, errors.New("YEMOT_USERNAME and YEMOT_PASSWORD are required in non-development environments")
	}

	if config.MarketData.MaxRetries < 1 {
		return nil, fmt.Errorf("market_data.max_retries must be at least 1, got %d", config.MarketData.MaxRetries)
	}
	if config.MarketData.RetryDelay != "" {
		if _, err := time.ParseDuration(config.MarketData.RetryDelay); err != nil {
			return nil, fmt.Errorf("invalid market data retry delay: %w", err)
		}
	}

	// Update config with normalized environment
	config.Environment = environment

	return &config, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Server
	viper.SetDefault("server.port", 5000)

	// Market data
	viper.SetDefault("market_data.base_url", "https://query1.finance.yahoo.com")
	viper.SetDefault("market_data.timeout", 30)
	viper.SetDefault("market_data.max_retries", 3)
	viper.SetDefault("market_data.retry_delay", "5s")

	// Yemot file API
	viper.SetDefault("yemot.api_url", "https://www.call2all.co.il/ym/api")
	viper.SetDefault("yemot.timeout", 60)
	viper.SetDefault("yemot.response_ext", "100/5")

	// Speech sidecar
	viper.SetDefault("speech.service_url", "http://localhost:3002")
	viper.SetDefault("speech.timeout", 60)
	viper.SetDefault("speech.language", "he-IL")
	viper.SetDefault("speech.voice", "he-IL-AvriNeural")

	// Reference table
	viper.SetDefault("reference.csv_path", "stock_data.csv")
}

// Token returns the Yemot API token, which is the username and password
// joined by a colon.
func (c YemotConfig) Token() string {
	return c.Username + ":" + c.Password
}

// TimeoutDuration returns the HTTP timeout for the Yemot API client.
func (c YemotConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// RetryDelayDuration returns the parsed inter-attempt delay, falling back to
// 5 seconds when unset or unparseable.
func (c MarketDataConfig) RetryDelayDuration() time.Duration {
	d, err := time.ParseDuration(c.RetryDelay)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}
