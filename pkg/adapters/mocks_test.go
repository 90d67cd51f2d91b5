package adapters

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// mockImagesModel は imagesModel のテスト用モックです。
type mockImagesModel struct {
	generateFunc func(model, prompt string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
	lastConfig   *genai.GenerateImagesConfig
}

func (m *mockImagesModel) GenerateImages(ctx context.Context, model string, prompt string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	m.lastConfig = cfg
	if m.generateFunc != nil {
		return m.generateFunc(model, prompt, cfg)
	}
	return &genai.GenerateImagesResponse{}, nil
}

// mockAIClient は gemini.GenerativeModel のテスト用モックです。
// 未使用のメソッドは埋め込みで解決します。
type mockAIClient struct {
	gemini.GenerativeModel
	generateFunc func(model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
	calls        int
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.calls++
	if m.generateFunc != nil {
		return m.generateFunc(model, parts, opts)
	}
	return nil, nil
}

// mockChat は chatSender のテスト用モックです。
type mockChat struct {
	sendFunc func(parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

func (m *mockChat) SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	return m.sendFunc(parts...)
}

// mockContentModel は contentGenerator のテスト用モックです。
type mockContentModel struct {
	generateFunc func(model string, contents []*genai.Content) (*genai.GenerateContentResponse, error)
}

func (m *mockContentModel) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return m.generateFunc(model, contents)
}

func textResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, 0, len(texts))
	for _, t := range texts {
		parts = append(parts, &genai.Part{Text: t})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func imageResponse(mimeType string, data []byte) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
				}},
				FinishReason: genai.FinishReasonStop,
			}},
		},
	}
}
