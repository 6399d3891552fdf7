package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Struct(t *testing.T) {
	config := Config{
		Environment: "test",
		LogLevel:    "debug",
		Server: ServerConfig{
			Port: 8080,
		},
		MarketData: MarketDataConfig{
			BaseURL:    "https://query1.finance.yahoo.com",
			Timeout:    30,
			MaxRetries: 3,
			RetryDelay: "5s",
		},
		Yemot: YemotConfig{
			APIURL:      "https://www.call2all.co.il/ym/api",
			Username:    "0771234567",
			Password:    "secret",
			Timeout:     60,
			ResponseExt: "100/5",
		},
		Speech: SpeechConfig{
			ServiceURL: "http://localhost:3002",
			Timeout:    60,
			Language:   "he-IL",
			Voice:      "he-IL-AvriNeural",
		},
		Reference: ReferenceConfig{
			CSVPath: "stock_data.csv",
		},
	}

	assert.Equal(t, "test", config.Environment)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "https://query1.finance.yahoo.com", config.MarketData.BaseURL)
	assert.Equal(t, 30, config.MarketData.Timeout)
	assert.Equal(t, 3, config.MarketData.MaxRetries)
	assert.Equal(t, "5s", config.MarketData.RetryDelay)
	assert.Equal(t, "https://www.call2all.co.il/ym/api", config.Yemot.APIURL)
	assert.Equal(t, "0771234567", config.Yemot.Username)
	assert.Equal(t, "secret", config.Yemot.Password)
	assert.Equal(t, 60, config.Yemot.Timeout)
	assert.Equal(t, "100/5", config.Yemot.ResponseExt)
	assert.Equal(t, "http://localhost:3002", config.Speech.ServiceURL)
	assert.Equal(t, 60, config.Speech.Timeout)
	assert.Equal(t, "he-IL", config.Speech.Language)
	assert.Equal(t, "he-IL-AvriNeural", config.Speech.Voice)
	assert.Equal(t, "stock_data.csv", config.Reference.CSVPath)
}

func TestLoad_WithDefaults(t *testing.T) {
	// Clear any existing environment variables that might interfere
	os.Clearenv()

	config, err := Load()
	require.NoError(t, err)
	require.NotNil(t, config)

	// Test default values
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, 5000, config.Server.Port)
	assert.Equal(t, "https://query1.finance.yahoo.com", config.MarketData.BaseURL)
	assert.Equal(t, 30, config.MarketData.Timeout)
	assert.Equal(t, 3, config.MarketData.MaxRetries)
	assert.Equal(t, "5s", config.MarketData.RetryDelay)
	assert.Equal(t, "https://www.call2all.co.il/ym/api", config.Yemot.APIURL)
	assert.Equal(t, "", config.Yemot.Username)
	assert.Equal(t, "", config.Yemot.Password)
	assert.Equal(t, 60, config.Yemot.Timeout)
	assert.Equal(t, "100/5", config.Yemot.ResponseExt)
	assert.Equal(t, "http://localhost:3002", config.Speech.ServiceURL)
	assert.Equal(t, 60, config.Speech.Timeout)
	assert.Equal(t, "he-IL", config.Speech.Language)
	assert.Equal(t, "he-IL-AvriNeural", config.Speech.Voice)
	assert.Equal(t, "stock_data.csv", config.Reference.CSVPath)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	os.Clearenv()
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("MARKET_DATA_MAX_RETRIES", "5")
	t.Setenv("MARKET_DATA_RETRY_DELAY", "2s")
	t.Setenv("YEMOT_USERNAME", "0779876543")
	t.Setenv("YEMOT_PASSWORD", "prod_pass")
	t.Setenv("SPEECH_SERVICE_URL", "http://speech.internal:3002")

	config, err := Load()
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, "error", config.LogLevel)
	assert.Equal(t, 9000, config.Server.Port)
	assert.Equal(t, 5, config.MarketData.MaxRetries)
	assert.Equal(t, "2s", config.MarketData.RetryDelay)
	assert.Equal(t, "0779876543", config.Yemot.Username)
	assert.Equal(t, "prod_pass", config.Yemot.Password)
	assert.Equal(t, "http://speech.internal:3002", config.Speech.ServiceURL)
}

func TestLoad_RequiresCredentialsOutsideDevelopment(t *testing.T) {
	os.Clearenv()
	t.Setenv("ENVIRONMENT", "production")

	config, err := Load()
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "YEMOT_USERNAME")
}

func TestLoad_RejectsZeroRetries(t *testing.T) {
	os.Clearenv()
	t.Setenv("MARKET_DATA_MAX_RETRIES", "0")

	config, err := Load()
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "max_retries")
}

func TestLoad_RejectsInvalidRetryDelay(t *testing.T) {
	os.Clearenv()
	t.Setenv("MARKET_DATA_RETRY_DELAY", "five seconds")

	config, err := Load()
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "retry delay")
}

func TestLoad_NormalizesEnvironmentCase(t *testing.T) {
	os.Clearenv()
	t.Setenv("ENVIRONMENT", "Development")

	config, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", config.Environment)
}

func TestYemotConfig_Token(t *testing.T) {
	config := YemotConfig{
		Username: "0771234567",
		Password: "secret",
	}

	assert.Equal(t, "0771234567:secret", config.Token())
}

func TestYemotConfig_TimeoutDuration(t *testing.T) {
	config := YemotConfig{
		Timeout: 45,
	}

	assert.Equal(t, 45*time.Second, config.TimeoutDuration())
}

func TestMarketDataConfig_RetryDelayDuration(t *testing.T) {
	config := MarketDataConfig{
		RetryDelay: "2s",
	}

	assert.Equal(t, 2*time.Second, config.RetryDelayDuration())
}

func TestMarketDataConfig_RetryDelayDuration_FallsBack(t *testing.T) {
	assert.Equal(t, 5*time.Second, MarketDataConfig{}.RetryDelayDuration())
	assert.Equal(t, 5*time.Second, MarketDataConfig{RetryDelay: "-1s"}.RetryDelayDuration())
}
