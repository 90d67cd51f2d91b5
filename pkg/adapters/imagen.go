package adapters

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/utils"
)

// DefaultImagenModel は Imagen の既定モデルです。
const DefaultImagenModel = "imagen-3.0-generate-002"

const imagenOutputMimeType = "image/jpeg"

// imagesModel は genai の Models のうち画像生成に使う部分です。
type imagesModel interface {
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// ImagenGenerator は Imagen でテキストから画像を生成します。
type ImagenGenerator struct {
	models      imagesModel
	model       string
	aspectRatio string
	seed        *int64
}

// ImagenOption は ImagenGenerator の設定です。
type ImagenOption func(*ImagenGenerator)

// WithAspectRatio は "1:1" や "16:9" などのアスペクト比を指定します。
func WithAspectRatio(ratio string) ImagenOption {
	return func(g *ImagenGenerator) { g.aspectRatio = ratio }
}

// WithSeed はシードを固定します。
func WithSeed(seed int64) ImagenOption {
	return func(g *ImagenGenerator) { g.seed = &seed }
}

// NewImagenGenerator は ImagenGenerator を初期化します。models には client.Models を渡します。
func NewImagenGenerator(models imagesModel, model string, opts ...ImagenOption) (*ImagenGenerator, error) {
	if models == nil {
		return nil, fmt.Errorf("models is required")
	}
	if model == "" {
		model = DefaultImagenModel
	}
	g := &ImagenGenerator{models: models, model: model}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *ImagenGenerator) ModelName() string {
	return g.model
}

// Generate は prompt から count 枚の画像を生成します。
// API が画像を返さなかった場合はエラーではなく空のスライスを返します。
func (g *ImagenGenerator) Generate(ctx context.Context, prompt string, count int) ([]domain.GeneratedImage, error) {
	if count <= 0 {
		count = 1
	}
	cfg := &genai.GenerateImagesConfig{
		NumberOfImages: int32(count),
		OutputMIMEType: imagenOutputMimeType,
		AspectRatio:    g.aspectRatio,
		Seed:           utils.SeedToPtrInt32(g.seed),
	}

	resp, err := g.models.GenerateImages(ctx, g.model, prompt, cfg)
	if err != nil {
		return nil, fmt.Errorf("Imagen画像生成エラー: %w", err)
	}
	if resp == nil {
		return nil, nil
	}

	images := make([]domain.GeneratedImage, 0, len(resp.GeneratedImages))
	for _, gi := range resp.GeneratedImages {
		if gi == nil || gi.Image == nil || len(gi.Image.ImageBytes) == 0 {
			continue
		}
		mimeType := gi.Image.MIMEType
		if mimeType == "" {
			mimeType = imagenOutputMimeType
		}
		images = append(images, domain.GeneratedImage{Data: gi.Image.ImageBytes, MimeType: mimeType})
	}
	slog.DebugContext(ctx, "Imagen応答を受信しました", "model", g.model, "requested", count, "received", len(images), "seed", utils.DereferenceSeed(g.seed))
	return images, nil
}
