package adapters

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/shouni/gemini-studio-kit/pkg/imgcodec"
)

// contentGenerator は genai の Models のうちコンテンツ生成に使う部分です。
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// VisionResponder は画像とテキストを合わせて送り、テキストの応答を得ます。
// チャット履歴は持たず、毎回単発のリクエストです。
type VisionResponder struct {
	models contentGenerator
	model  string
}

// NewVisionResponder は VisionResponder を初期化します。models には client.Models を渡します。
func NewVisionResponder(models contentGenerator, model string) (*VisionResponder, error) {
	if models == nil {
		return nil, fmt.Errorf("models is required")
	}
	if model == "" {
		model = DefaultChatModel
	}
	return &VisionResponder{models: models, model: model}, nil
}

// Respond は画像パーツ、テキストパーツの順で送信します。
func (v *VisionResponder) Respond(ctx context.Context, image imgcodec.Payload, text string) (string, error) {
	data, err := image.Bytes()
	if err != nil {
		return "", err
	}
	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: image.MimeType, Data: data}},
		{Text: text},
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := v.models.GenerateContent(ctx, v.model, contents, nil)
	if err != nil {
		return "", err
	}
	return extractText(resp)
}
