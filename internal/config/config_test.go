package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("既定値", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("GEMINI_API_KEY", "")

		cfg, err := Load(viper.New(), "")
		require.NoError(t, err)
		assert.False(t, cfg.HasAPIKey())
		assert.Equal(t, "gemini-2.5-flash", cfg.ChatModel)
		assert.Equal(t, "imagen-3.0-generate-002", cfg.ImageModel)
		assert.Equal(t, "imagen", cfg.ImageBackend)
		assert.Equal(t, 40, cfg.GalleryCapacity)
		assert.Equal(t, 4<<20, cfg.InlineImageLimit)
		assert.Equal(t, ".", cfg.ExportDir)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 10*time.Minute, cfg.FetchCacheTTL)
		assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
		assert.True(t, cfg.GCSEnabled)
	})

	t.Run("環境変数で上書き", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("GEMINI_API_KEY", "key-from-sdk-env")
		t.Setenv("STUDIO_GALLERY_CAPACITY", "5")
		t.Setenv("STUDIO_LOG_LEVEL", "DEBUG")
		t.Setenv("STUDIO_FETCH_CACHE_TTL", "30s")
		t.Setenv("STUDIO_FETCH_TIMEOUT", "5s")
		t.Setenv("STUDIO_GCS_ENABLED", "false")

		cfg, err := Load(viper.New(), "")
		require.NoError(t, err)
		assert.True(t, cfg.HasAPIKey())
		assert.Equal(t, "key-from-sdk-env", cfg.GeminiAPIKey)
		assert.Equal(t, 5, cfg.GalleryCapacity)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 30*time.Second, cfg.FetchCacheTTL)
		assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
		assert.False(t, cfg.GCSEnabled)
	})

	t.Run("接頭辞付きの API キーを優先", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("GEMINI_API_KEY", "plain")
		t.Setenv("STUDIO_GEMINI_API_KEY", "prefixed")

		cfg, err := Load(viper.New(), "")
		require.NoError(t, err)
		assert.Equal(t, "prefixed", cfg.GeminiAPIKey)
	})

	t.Run("カレントの .env を読む", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		t.Setenv("GEMINI_API_KEY", "")
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("image_backend=gemini\nimage_model=gemini-2.5-flash-image\n"), 0o600))

		cfg, err := Load(viper.New(), "")
		require.NoError(t, err)
		assert.Equal(t, "gemini", cfg.ImageBackend)
		assert.Equal(t, "gemini-2.5-flash-image", cfg.ImageModel)
	})

	t.Run("指定した設定ファイルがなければエラー", func(t *testing.T) {
		_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("不正な値は検証エラー", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("STUDIO_IMAGE_BACKEND", "dalle")

		_, err := Load(viper.New(), "")
		assert.ErrorIs(t, err, ErrInvalid)
		assert.ErrorContains(t, err, "ImageBackend")
	})
}

func TestValidate(t *testing.T) {
	valid := Config{
		ChatModel:        "gemini-2.5-flash",
		ImageModel:       "imagen-3.0-generate-002",
		ImageBackend:     "imagen",
		GalleryCapacity:  40,
		InlineImageLimit: 4 << 20,
		ExportDir:        ".",
		LogLevel:         "info",
		LogFormat:        "json",
	}
	require.NoError(t, Validate(&valid))

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"容量0", func(c *Config) { c.GalleryCapacity = 0 }, "GalleryCapacity"},
		{"ログ形式", func(c *Config) { c.LogFormat = "xml" }, "LogFormat"},
		{"アスペクト比", func(c *Config) { c.AspectRatio = "2:1" }, "AspectRatio"},
		{"モデル未指定", func(c *Config) { c.ChatModel = "" }, "ChatModel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := Validate(&cfg)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.ErrorContains(t, err, tt.field)
		})
	}
}
