package adapters

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
)

// ErrEmptyReply はテキスト応答が空だったことを表します。
var ErrEmptyReply = errors.New("adapters: model returned no text")

// extractText は最初の候補からテキストパーツを連結します。思考パーツは除きます。
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyReply
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought || p.Text == "" {
			continue
		}
		sb.WriteString(p.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyReply
	}
	return sb.String(), nil
}

// extractImages は最初の候補からインライン画像を取り出します。
// 画像がなくても正常終了 (STOP) なら空のスライスを返します。
// 安全フィルター等で止まった場合はエラーです。
func extractImages(resp *genai.GenerateContentResponse) ([]domain.GeneratedImage, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("Geminiからの有効な応答がありませんでした")
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := resp.Candidates[0]

	var images []domain.GeneratedImage
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				images = append(images, domain.GeneratedImage{
					Data:     part.InlineData.Data,
					MimeType: part.InlineData.MIMEType,
				})
			}
		}
	}
	if len(images) > 0 {
		return images, nil
	}

	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("画像生成が異常終了しました (FinishReason: %s)", candidate.FinishReason)
	}
	return nil, nil
}
