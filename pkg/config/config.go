package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	SQLite  SQLiteConfig
	LLM     LLMConfig
	Search  SearchConfig
	RSS     RSSConfig
	Scoring ScoringConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int
	WriteTimeout int
	BodyLimit    int
}

type SQLiteConfig struct {
	Path string
}

type LLMConfig struct {
	Model       string
	APIKey      string
	Temperature float32
	MaxTokens   int
	TimeoutSec  int
}

type SearchConfig struct {
	TavilyAPIKey   string
	MaxResults     int
	RecencyDays    int
	DelayMS        int
	TimeoutSec     int
	IncludeDomains []string
}

type RSSConfig struct {
	Enabled       bool
	Feeds         map[string]string
	MaxPerFeed    int
	TimeoutSec    int
}

type ScoringConfig struct {
	// MinScore is the acceptance threshold: articles scoring below it
	// are dropped before storage.
	MinScore int
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/vc-intel")

	viper.SetEnvPrefix("VC_INTEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Validate checks the credentials without which no work can be done.
// A missing key here is fatal at startup; there is no fallback path.
func (c *Config) Validate() error {
	if c.Search.TavilyAPIKey == "" {
		return fmt.Errorf("search.tavilyAPIKey is required")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.apiKey is required")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readTimeout", 30)
	viper.SetDefault("server.writeTimeout", 30)
	viper.SetDefault("server.bodyLimit", 10485760)

	viper.SetDefault("sqlite.path", "./data/vcintel.db")

	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.temperature", 0.2)
	viper.SetDefault("llm.maxTokens", 400)
	viper.SetDefault("llm.timeoutSec", 30)

	viper.SetDefault("search.maxResults", 5)
	viper.SetDefault("search.recencyDays", 7)
	viper.SetDefault("search.delayMS", 500)
	viper.SetDefault("search.timeoutSec", 30)
	viper.SetDefault("search.includeDomains", []string{
		"techcrunch.com", "inc42.com", "entrackr.com", "yourstory.com",
		"economictimes.indiatimes.com", "business-standard.com",
		"livemint.com", "moneycontrol.com", "blume.vc", "accel.com",
		"peakxv.com", "matrixpartners.in",
	})

	viper.SetDefault("rss.enabled", true)
	viper.SetDefault("rss.maxPerFeed", 5)
	viper.SetDefault("rss.timeoutSec", 15)
	viper.SetDefault("rss.feeds", map[string]string{
		"Blume Ventures":   "https://blume.vc/feed",
		"Accel":            "https://www.accel.com/noteworthy/feed",
		"Matrix Partners":  "https://medium.com/feed/@matrixpartnersindia",
		"Lightspeed India": "https://medium.com/feed/@lightspeedindiapartners",
	})

	viper.SetDefault("scoring.minScore", 55)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputPath", "stdout")
}
