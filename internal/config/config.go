package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"MarketLens/internal/analysis"
	"MarketLens/internal/collector"
)

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		YahooBaseURL   string        `yaml:"yahoo_base_url"`
		BinanceBaseURL string        `yaml:"binance_base_url"`
		UpbitBaseURL   string        `yaml:"upbit_base_url"`
		Exchange       string        `yaml:"exchange"`
		Timeout        time.Duration `yaml:"timeout"`
	} `yaml:"data_source"`
	Indicators struct {
		RSIPeriod  int     `yaml:"rsi_period"`
		MACDFast   int     `yaml:"macd_fast"`
		MACDSlow   int     `yaml:"macd_slow"`
		MACDSignal int     `yaml:"macd_signal"`
		BBPeriod   int     `yaml:"bb_period"`
		BBStdDev   float64 `yaml:"bb_std_dev"`
	} `yaml:"indicators"`
	Chart struct {
		OutputDir string `yaml:"output_dir"`
		Width     int    `yaml:"width"`
		Height    int    `yaml:"height"`
	} `yaml:"chart"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		WatchCron string   `yaml:"watch_cron"`
		Symbols   []string `yaml:"symbols"`
		Range     string   `yaml:"range"`
	} `yaml:"schedule"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Redis struct {
		Addr     string        `yaml:"addr"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		LogsTTL  time.Duration `yaml:"logs_ttl"`
	} `yaml:"redis"`
	Proxy string `yaml:"proxy"`
	Log   struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Path returns the config file location, honouring CONFIG_PATH.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads .env and the YAML file, then applies environment variable
// overrides and defaults. Missing files are not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "read config")
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "parse config")
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"YAHOO_BASE_URL":     &c.DataSource.YahooBaseURL,
		"BINANCE_BASE_URL":   &c.DataSource.BinanceBaseURL,
		"UPBIT_BASE_URL":     &c.DataSource.UpbitBaseURL,
		"HTTPS_PROXY":        &c.Proxy,
		"SQLITE_PATH":        &c.Database.SQLitePath,
		"TELEGRAM_BOT_TOKEN": &c.Telegram.BotToken,
		"TELEGRAM_CHAT_ID":   &c.Telegram.ChatID,
		"WATCH_CRON":         &c.Schedule.WatchCron,
		"LOG_LEVEL":          &c.Log.Level,
		"OUTPUT_DIR":         &c.Chart.OutputDir,
		"SERVER_ADDR":        &c.Server.Addr,
		"REDIS_ADDR":         &c.Redis.Addr,
		"REDIS_PASSWORD":     &c.Redis.Password,
	}
	for key, field := range overrides {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}
	if v := os.Getenv("WATCH_SYMBOLS"); v != "" {
		c.Schedule.Symbols = strings.Split(v, ",")
	}
}

func (c *Config) applyDefaults() {
	d := analysis.DefaultSettings()
	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = d.RSIPeriod
	}
	if c.Indicators.MACDFast == 0 {
		c.Indicators.MACDFast = d.MACDFast
	}
	if c.Indicators.MACDSlow == 0 {
		c.Indicators.MACDSlow = d.MACDSlow
	}
	if c.Indicators.MACDSignal == 0 {
		c.Indicators.MACDSignal = d.MACDSignal
	}
	if c.Indicators.BBPeriod == 0 {
		c.Indicators.BBPeriod = d.BBPeriod
	}
	if c.Indicators.BBStdDev == 0 {
		c.Indicators.BBStdDev = d.BBStdDev
	}
	if c.DataSource.Exchange == "" {
		c.DataSource.Exchange = string(collector.ExchangeBinance)
	}
	if c.DataSource.Timeout == 0 {
		c.DataSource.Timeout = 30 * time.Second
	}
	if c.Chart.OutputDir == "" {
		c.Chart.OutputDir = "output"
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = 1400
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = 700
	}
	if c.Schedule.WatchCron == "" {
		c.Schedule.WatchCron = "0 0 22 * * 1-5"
	}
	if len(c.Schedule.Symbols) == 0 {
		c.Schedule.Symbols = []string{"AAPL"}
	}
	if c.Schedule.Range == "" {
		c.Schedule.Range = "3mo"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Redis.LogsTTL == 0 {
		c.Redis.LogsTTL = 30 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks indicator parameters and the exchange name.
func (c *Config) Validate() error {
	ind := c.Indicators
	if ind.RSIPeriod <= 0 || ind.MACDFast <= 0 || ind.MACDSlow <= 0 || ind.MACDSignal <= 0 || ind.BBPeriod <= 0 {
		return errors.New("indicators: periods must be positive")
	}
	if ind.MACDFast >= ind.MACDSlow {
		return errors.Errorf("indicators: macd_fast (%d) must be below macd_slow (%d)", ind.MACDFast, ind.MACDSlow)
	}
	if ind.BBStdDev <= 0 {
		return errors.New("indicators: bb_std_dev must be positive")
	}
	if _, err := collector.ParseExchange(c.DataSource.Exchange); err != nil {
		return errors.Wrap(err, "data_source.exchange")
	}
	return nil
}

// ValidateTelegram checks the fields needed to send notifications.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return errors.New("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return errors.New("telegram.chat_id is required")
	}
	return nil
}

// TelegramEnabled reports whether both telegram fields are set.
func (c *Config) TelegramEnabled() bool {
	return c.ValidateTelegram() == nil
}

// Settings converts the indicators section for the analysis package.
func (c *Config) Settings() analysis.Settings {
	return analysis.Settings{
		RSIPeriod:  c.Indicators.RSIPeriod,
		MACDFast:   c.Indicators.MACDFast,
		MACDSlow:   c.Indicators.MACDSlow,
		MACDSignal: c.Indicators.MACDSignal,
		BBPeriod:   c.Indicators.BBPeriod,
		BBStdDev:   c.Indicators.BBStdDev,
	}
}

// YahooOptions returns fetcher options for the equity data source.
func (c *Config) YahooOptions() collector.Options {
	return collector.Options{BaseURL: c.DataSource.YahooBaseURL, Proxy: c.Proxy, Timeout: c.DataSource.Timeout}
}

// ExchangeOptions returns fetcher options for the named exchange.
func (c *Config) ExchangeOptions(ex collector.Exchange) collector.Options {
	opts := collector.Options{Proxy: c.Proxy, Timeout: c.DataSource.Timeout}
	switch ex {
	case collector.ExchangeBinance:
		opts.BaseURL = c.DataSource.BinanceBaseURL
	case collector.ExchangeUpbit:
		opts.BaseURL = c.DataSource.UpbitBaseURL
	}
	return opts
}
