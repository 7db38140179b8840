package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"gentrader/internal/helper"
)

const (
	configFilePathENV = "CONFIG_FILE"
	envPrefix         = "BOT"
)

// Trading — торговая часть: один символ, один таймфрейм.
type Trading struct {
	Symbol     string `yaml:"symbol"`
	Timeframe  string `yaml:"timeframe"`
	QuoteAsset string `yaml:"quote_asset"`

	MaxLeverage float64 `yaml:"max_leverage"`
	// Доля баланса на вход; она же риск-коэффициент в ATR-сайзинге плеча.
	UseMarginRatio float64 `yaml:"use_margin_ratio"`

	ATRPeriod       int     `yaml:"atr_period"`
	BBPeriod        int     `yaml:"bb_period"`
	BBStdMultiplier float64 `yaml:"bb_std_multiplier"`
	EMAPeriod       int     `yaml:"ema_period"`

	MaxDailyTrades int     `yaml:"max_daily_trades"`
	TPPct          float64 `yaml:"tp_pct"`
	SLPct          float64 `yaml:"sl_pct"`

	DryRun bool `yaml:"dry_run"`
}

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	Discord struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"discord"`
	DB      string `yaml:"db_dsn"`
	Service struct {
		Host      string `yaml:"host"`
		AdminPort int    `yaml:"admin_port"`
	} `yaml:"service"`
	Binance struct {
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
		BaseURL   string `yaml:"base_url"`
		WSURL     string `yaml:"ws_url"`
	} `yaml:"binance"`
	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	Trading Trading `yaml:"trading"`
}

func NewConfig() (*Config, error) {
	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	config := Config{
		Trading: Trading{
			Symbol:          "ETHUSDC",
			Timeframe:       "15m",
			QuoteAsset:      "USDC",
			MaxLeverage:     20,
			UseMarginRatio:  0.5,
			ATRPeriod:       14,
			BBPeriod:        20,
			BBStdMultiplier: 2.0,
			EMAPeriod:       200,
			MaxDailyTrades:  5,
			TPPct:           0.0785,
			SLPct:           0.0257,
		},
	}
	if err = yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	// секреты и переключатели поверх ямла — через окружение (BOT_*)
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if token := v.GetString("TELEGRAM_TOKEN"); token != "" {
		config.Telegram.Token = token
	}
	if chatID := v.GetInt64("TELEGRAM_CHAT_ID"); chatID != 0 {
		config.Telegram.ChatID = chatID
	}
	if hook := v.GetString("DISCORD_WEBHOOK_URL"); hook != "" {
		config.Discord.WebhookURL = hook
	}
	if dsn := v.GetString("DATABASE_DSN"); dsn != "" {
		config.DB = dsn
	}
	if key := v.GetString("BINANCE_API_KEY"); key != "" {
		config.Binance.APIKey = key
	}
	if secret := v.GetString("BINANCE_API_SECRET"); secret != "" {
		config.Binance.APISecret = secret
	}
	if v.IsSet("DRY_RUN") {
		config.Trading.DryRun = v.GetBool("DRY_RUN")
	}

	if config.Binance.BaseURL == "" {
		config.Binance.BaseURL = "https://fapi.binance.com"
	}
	if config.Binance.WSURL == "" {
		config.Binance.WSURL = "wss://fstream.binance.com/ws"
	}

	return &config, nil
}

// HistoryLimit — сколько истории грузить на старте: максимум периодов
// индикаторов плюс бар на сам расчёт.
func (c *Config) HistoryLimit() int {
	return maxInt(c.Trading.ATRPeriod+1, c.Trading.BBPeriod+1, c.Trading.EMAPeriod+1)
}

// WindowKeep — ёмкость окна свечей, старые вылетают по FIFO.
func (c *Config) WindowKeep() int {
	return maxInt(c.Trading.ATRPeriod, c.Trading.BBPeriod, c.Trading.EMAPeriod) + 5
}

// TickInterval — период опроса, производный от таймфрейма.
func (c *Config) TickInterval() time.Duration {
	return helper.TFDuration(c.Trading.Timeframe)
}

func maxInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
