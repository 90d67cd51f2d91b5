// Package cli は studio コマンドの実装です。
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/genai"

	"github.com/shouni/gemini-studio-kit/internal/config"
	"github.com/shouni/gemini-studio-kit/internal/logging"
	"github.com/shouni/gemini-studio-kit/pkg/adapters"
	"github.com/shouni/gemini-studio-kit/pkg/cache"
	"github.com/shouni/gemini-studio-kit/pkg/staging"
	"github.com/shouni/gemini-studio-kit/pkg/studio"
)

// NewRootCommand は studio コマンドを作成します。
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:           "studio",
		Short:         "🎨 Chat with Gemini, generate images and export gallery cards",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			logging.Setup(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat, os.Getenv("NO_COLOR") != "")
			if used := v.ConfigFileUsed(); used != "" {
				slog.Debug("設定ファイルを読み込みました", "file", used)
			}

			ctx := cmd.Context()
			deps, closeDeps, err := buildDeps(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeDeps(); err != nil {
					slog.Warn("リモートストレージのクローズに失敗しました", "error", err)
				}
			}()
			session, err := studio.New(studio.Config{GalleryCapacity: cfg.GalleryCapacity}, deps)
			if err != nil {
				return err
			}
			if !session.Configured() {
				slog.Warn("APIキーが設定されていないため、生成機能は無効です")
			}

			if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
				return fmt.Errorf("エクスポート先を作成できません: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Type a message, or /help for commands.")
			return NewShell(session, cmd.InOrStdin(), cmd.OutOrStdout(), cfg.ExportDir).Run(ctx)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file (default: ./.env)")
	f.String("api-key", "", "Gemini API key")
	f.String("chat-model", "", "model for chat and image questions")
	f.String("image-model", "", "model for image generation")
	f.String("image-backend", "", "image backend: imagen or gemini")
	f.String("aspect-ratio", "", "aspect ratio for generated images")
	f.Int("gallery-capacity", 0, "maximum number of gallery cards")
	f.String("export-dir", "", "directory for exported archives")
	f.String("log-level", "", "debug, info, warn or error")
	f.String("log-format", "", "text or json")
	f.Duration("fetch-timeout", 0, "timeout for fetching http(s) images")
	f.Bool("gcs", true, "allow staging images from gs:// URIs")

	for key, flag := range map[string]string{
		"gemini_api_key":   "api-key",
		"chat_model":       "chat-model",
		"image_model":      "image-model",
		"image_backend":    "image-backend",
		"aspect_ratio":     "aspect-ratio",
		"gallery_capacity": "gallery-capacity",
		"export_dir":       "export-dir",
		"log_level":        "log-level",
		"log_format":       "log-format",
		"fetch_timeout":    "fetch-timeout",
		"gcs_enabled":      "gcs",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
	return cmd
}

// buildDeps は設定から外部機能を組み立てます。API キーがなければ空の Deps を返します。
// 返す close 関数は Deps が使い終わった後に呼び出します。
func buildDeps(ctx context.Context, cfg *config.Config) (studio.Deps, func() error, error) {
	noop := func() error { return nil }
	if !cfg.HasAPIKey() {
		return studio.Deps{}, noop, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return studio.Deps{}, noop, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}

	chat, err := adapters.NewChatSession(ctx, client, cfg.ChatModel)
	if err != nil {
		return studio.Deps{}, noop, err
	}
	vision, err := adapters.NewVisionResponder(client.Models, cfg.ChatModel)
	if err != nil {
		return studio.Deps{}, noop, err
	}
	images, err := newImageGenerator(ctx, client, cfg)
	if err != nil {
		return studio.Deps{}, noop, err
	}
	loader, closeLoader := newLoader(cfg)

	slog.Info("Geminiに接続しました", "chat_model", cfg.ChatModel, "image_model", cfg.ImageModel, "backend", cfg.ImageBackend)
	return studio.Deps{Chat: chat, Images: images, Vision: vision, Loader: loader}, closeLoader, nil
}

func newImageGenerator(ctx context.Context, client *genai.Client, cfg *config.Config) (studio.ImageGenerator, error) {
	if cfg.ImageBackend == "gemini" {
		aiClient, err := gemini.NewClient(ctx, gemini.Config{APIKey: cfg.GeminiAPIKey})
		if err != nil {
			return nil, fmt.Errorf("Gemini画像クライアントの初期化に失敗しました: %w", err)
		}
		return adapters.NewGeminiImageGenerator(aiClient, cfg.ImageModel, cfg.AspectRatio)
	}
	return adapters.NewImagenGenerator(client.Models, cfg.ImageModel, adapters.WithAspectRatio(cfg.AspectRatio))
}

// newLoader は http(s) と gs:// に対応した添付ローダーを作ります。
// gs:// が無効なら reader は nil で、取得は ErrRemoteUnavailable になります。
func newLoader(cfg *config.Config) (*staging.Loader, func() error) {
	var (
		reader   remoteio.InputReader
		closeAll = func() error { return nil }
	)
	if cfg.GCSEnabled {
		gcs := newLazyGCSReader()
		reader = gcs
		closeAll = gcs.Close
	}
	httpClient := httpkit.New(cfg.FetchTimeout)
	return staging.NewLoader(httpClient, reader, cache.NewTTL(cfg.FetchCacheSize), cfg.FetchCacheTTL, cfg.InlineImageLimit), closeAll
}
