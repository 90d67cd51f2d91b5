package adapters

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
)

// partsGenerator は gemini.GenerativeModel のうち画像生成に使う部分です。
// AspectRatio から ImageConfig への変換とリトライは gemini.Client が行います。
type partsGenerator interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

var _ partsGenerator = (*gemini.Client)(nil)

// GeminiImageGenerator は Gemini のネイティブ画像生成モデルで画像を生成します。
// 1回の呼び出しで1枚が返るため、複数枚は順番にリクエストします。
type GeminiImageGenerator struct {
	aiClient    partsGenerator
	model       string
	aspectRatio string
}

// NewGeminiImageGenerator は依存関係を注入して初期化します。
func NewGeminiImageGenerator(aiClient partsGenerator, model, aspectRatio string) (*GeminiImageGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (gemini.GenerativeModel) is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	return &GeminiImageGenerator{aiClient: aiClient, model: model, aspectRatio: aspectRatio}, nil
}

func (g *GeminiImageGenerator) ModelName() string {
	return g.model
}

// Generate は prompt から最大 count 枚の画像を生成します。
func (g *GeminiImageGenerator) Generate(ctx context.Context, prompt string, count int) ([]domain.GeneratedImage, error) {
	if count <= 0 {
		count = 1
	}
	parts := []*genai.Part{{Text: prompt}}
	opts := gemini.GenerateOptions{AspectRatio: g.aspectRatio}

	var out []domain.GeneratedImage
	for i := 0; i < count; i++ {
		resp, err := g.aiClient.GenerateWithParts(ctx, g.model, parts, opts)
		if err != nil {
			return nil, fmt.Errorf("Gemini画像生成エラー: %w", err)
		}
		if resp == nil {
			continue
		}
		images, err := extractImages(resp.RawResponse)
		if err != nil {
			return nil, err
		}
		out = append(out, images...)
	}
	slog.DebugContext(ctx, "Gemini画像応答を受信しました", "model", g.model, "requested", count, "received", len(out))
	return out, nil
}
