// Package config はアプリケーション設定を読み込みます。
// 優先順位は 環境変数 > 設定ファイル > 既定値 です。
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "STUDIO"

// Config はアプリケーション設定です。
type Config struct {
	GeminiAPIKey     string        `mapstructure:"gemini_api_key"`
	ChatModel        string        `mapstructure:"chat_model" validate:"required"`
	ImageModel       string        `mapstructure:"image_model" validate:"required"`
	ImageBackend     string        `mapstructure:"image_backend" validate:"oneof=imagen gemini"`
	AspectRatio      string        `mapstructure:"aspect_ratio" validate:"omitempty,oneof=1:1 3:4 4:3 9:16 16:9"`
	GalleryCapacity  int           `mapstructure:"gallery_capacity" validate:"min=1,max=1000"`
	InlineImageLimit int           `mapstructure:"inline_image_limit" validate:"min=1024"`
	ExportDir        string        `mapstructure:"export_dir" validate:"required"`
	LogLevel         string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat        string        `mapstructure:"log_format" validate:"oneof=text json"`
	FetchCacheSize   int           `mapstructure:"fetch_cache_size" validate:"min=0"`
	FetchCacheTTL    time.Duration `mapstructure:"fetch_cache_ttl"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout" validate:"min=0"`
	// GCSEnabled が true のとき gs:// からの添付を受け付けます。
	// GCS クライアントは最初の取得時に Application Default Credentials で作られます。
	GCSEnabled bool `mapstructure:"gcs_enabled"`
}

// HasAPIKey は API キーが設定されているかを返します。
// 未設定でも読み込みエラーにはせず、生成機能が無効なセッションになります。
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.GeminiAPIKey) != ""
}

// SetDefaults は既定値を v に登録します。
func SetDefaults(v *viper.Viper) {
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("chat_model", "gemini-2.5-flash")
	v.SetDefault("image_model", "imagen-3.0-generate-002")
	v.SetDefault("image_backend", "imagen")
	v.SetDefault("aspect_ratio", "")
	v.SetDefault("gallery_capacity", 40)
	v.SetDefault("inline_image_limit", 4<<20)
	v.SetDefault("export_dir", ".")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("fetch_cache_size", 32)
	v.SetDefault("fetch_cache_ttl", 10*time.Minute)
	v.SetDefault("fetch_timeout", 30*time.Second)
	v.SetDefault("gcs_enabled", true)
}

// Load は設定を読み込みます。configFile が空ならカレントディレクトリの .env を探します。
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".env")
		v.SetConfigType("env")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// Google の SDK と同じ環境変数名も受け付ける
	if err := v.BindEnv("gemini_api_key", envPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("環境変数のバインドに失敗しました: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("設定のデコードに失敗しました: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.ImageBackend = strings.ToLower(cfg.ImageBackend)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ErrInvalid は設定値の検証エラーです。
var ErrInvalid = errors.New("invalid configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate はタグに基づいて設定値を検証します。
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
