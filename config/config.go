package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	OCR     OCRConfig     `yaml:"ocr" mapstructure:"ocr"`
	Vision  VisionConfig  `yaml:"vision" mapstructure:"vision"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	History HistoryConfig `yaml:"history" mapstructure:"history"`
}

type ServerConfig struct {
	Port        int   `yaml:"port" mapstructure:"port"`
	MaxUploadMB int64 `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`
}

// MaxUploadBytes is the upload limit in bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// OCRConfig configures the Tesseract engine and PDF page handling.
type OCRConfig struct {
	TessdataPrefix  string `yaml:"tessdata_prefix" mapstructure:"tessdata_prefix"`
	Language        string `yaml:"language" mapstructure:"language"`
	MinTextLength   int    `yaml:"min_text_length" mapstructure:"min_text_length"`
	PageConcurrency int    `yaml:"page_concurrency" mapstructure:"page_concurrency"`
	// PaddleURL enables a PaddleOCR hub as the second engine when set.
	PaddleURL       string `yaml:"paddle_url" mapstructure:"paddle_url"`
}

// VisionConfig configures the optional vision-model reader.
type VisionConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	APIKey            string  `yaml:"api_key" mapstructure:"api_key"`
	Model             string  `yaml:"model" mapstructure:"model"`
	MaxTokens         int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

type HistoryConfig struct {
	Limit int `yaml:"limit" mapstructure:"limit"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SOILSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Conventional names used by Tesseract and the Anthropic SDK.
	_ = v.BindEnv("ocr.tessdata_prefix", "SOILSCAN_OCR_TESSDATA_PREFIX", "TESSDATA_PREFIX")
	_ = v.BindEnv("vision.api_key", "SOILSCAN_VISION_API_KEY", "ANTHROPIC_API_KEY")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("ocr.tessdata_prefix", "/usr/share/tesseract-ocr/5/tessdata/")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.min_text_length", 20)
	v.SetDefault("ocr.page_concurrency", 2)
	v.SetDefault("ocr.paddle_url", "")
	v.SetDefault("vision.enabled", false)
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("vision.max_tokens", 2000)
	v.SetDefault("vision.requests_per_second", 1)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "soilscan.db")
	v.SetDefault("history.limit", 50)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if cfg.Vision.Enabled && cfg.Vision.APIKey == "" {
		return nil, eris.New("config: vision.enabled requires vision.api_key")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
