package studio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/gemini-studio-kit/pkg/conversation"
	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/events"
	"github.com/shouni/gemini-studio-kit/pkg/imgcodec"
)

// ImageTriggers は入力の先頭にあると画像生成として扱う語です。大文字小文字は区別しません。
var ImageTriggers = []string{"generate image:", "create image of:", "draw:"}

// matchTrigger は text がトリガーで始まっていれば、トリガーと残りの部分を返します。
func matchTrigger(text string) (trigger, rest string, ok bool) {
	for _, t := range ImageTriggers {
		if len(text) >= len(t) && strings.EqualFold(text[:len(t)], t) {
			return t, strings.TrimSpace(text[len(t):]), true
		}
	}
	return "", "", false
}

// ActivateStyle はスタイルを適用して basePrompt から画像を生成します。
func (s *Session) ActivateStyle(ctx context.Context, styleID, basePrompt string) error {
	if !s.Configured() {
		return s.notify(msgNotConfiguredImage, domain.ErrNotConfigured, nil)
	}
	style, ok := domain.FindStyle(styleID)
	if !ok {
		return s.notify(fmt.Sprintf(msgUnknownStyle, styleID), domain.ErrUnknownStyle, nil)
	}
	basePrompt = strings.TrimSpace(basePrompt)
	if basePrompt == "" {
		return s.notify(msgEmptyStylePrompt, domain.ErrEmptyPrompt, nil)
	}
	if s.stage.Has() {
		s.transcript.AppendBot(msgStagedIgnored)
	}

	requestID := newCorrelationID("img-req")
	s.transcript.AppendUser(fmt.Sprintf(msgImagePromptStyle, style.DisplayName, basePrompt), conversation.ImageRequest(requestID))
	return s.generateImage(ctx, requestID, basePrompt, style.Compose(basePrompt), style.DisplayName)
}

// ActivateContextMenuStyle は選択されたテキストにスタイルを適用して画像を生成します。
func (s *Session) ActivateContextMenuStyle(ctx context.Context, styleID, selectedText string) error {
	if !s.Configured() {
		return s.notify(msgNotConfiguredSelect, domain.ErrNotConfigured, nil)
	}
	style, ok := domain.FindStyle(styleID)
	if !ok {
		return s.notify(fmt.Sprintf(msgUnknownStyle, styleID), domain.ErrUnknownStyle, nil)
	}
	basePrompt := strings.TrimSpace(selectedText)
	if basePrompt == "" {
		return s.notify(msgEmptySelection, domain.ErrEmptyPrompt, nil)
	}
	if s.stage.Has() {
		s.transcript.AppendBot(msgStagedIgnoredSel)
	}

	requestID := newCorrelationID("img-req")
	s.transcript.AppendUser(fmt.Sprintf(msgImagePromptSelect, style.DisplayName, basePrompt), conversation.ImageRequest(requestID))
	return s.generateImage(ctx, requestID, basePrompt, style.Compose(basePrompt), style.DisplayName)
}

// submitImageRequest はトリガー付きの入力を直接プロンプトとして生成します。
func (s *Session) submitImageRequest(ctx context.Context, trigger, basePrompt string) error {
	if basePrompt == "" {
		return s.notify(fmt.Sprintf(msgEmptyTrigger, trigger), domain.ErrEmptyPrompt, nil)
	}
	requestID := newCorrelationID("img-req")
	s.transcript.AppendUser(fmt.Sprintf(msgImagePrompt, basePrompt), conversation.ImageRequest(requestID))
	return s.generateImage(ctx, requestID, basePrompt, basePrompt, domain.DirectPromptLabel)
}

// generateImage は1件の画像生成リクエストを処理します。
// 呼び出し側は requestID を持つユーザーのプレースホルダーを追加済みです。
// 成功時はプレースホルダーと完了メッセージを取り除き、画像はギャラリーにだけ残ります。
// 0件や失敗の場合はプレースホルダーを残し、恒久的なメッセージを追加します。
func (s *Session) generateImage(ctx context.Context, requestID, basePrompt, fullPrompt, label string) error {
	thinkingID := newCorrelationID("think")
	s.transcript.AppendBot(fmt.Sprintf(msgGenerating, basePrompt, label), conversation.Provisional(), conversation.WithCorrelation(thinkingID))

	slog.InfoContext(ctx, "画像生成を開始します", "request_id", requestID, "style", label, "model", s.images.ModelName())
	images, err := s.images.Generate(ctx, fullPrompt, 1)
	s.transcript.RemoveByCorrelationID(thinkingID)

	if err != nil {
		slog.ErrorContext(ctx, "画像生成に失敗しました", "request_id", requestID, "error", err)
		return s.notify(fmt.Sprintf(msgImageError, basePrompt), domain.ErrService, err)
	}
	if len(images) == 0 {
		slog.WarnContext(ctx, "画像が返されませんでした", "request_id", requestID)
		return s.notify(fmt.Sprintf(msgNoImages, basePrompt), domain.ErrEmptyResult, nil)
	}

	img := images[0]
	mimeType := img.MimeType
	if mimeType == "" {
		mimeType = imgcodec.DefaultMimeType
	}
	now := s.now()
	rec := domain.ImageRecord{
		ImageURL:    imgcodec.EncodeBytes(mimeType, img.Data),
		PromptFull:  fullPrompt,
		PromptBase:  basePrompt,
		ModelName:   s.images.ModelName(),
		GeneratedAt: now.Format("15:04"),
		StyleLabel:  label,
	}

	s.transcript.AppendBot(fmt.Sprintf(msgImageAdded, basePrompt, label), conversation.ImageConfirmation(requestID))
	rec, evicted := s.file(rec)
	s.bus.Publish(events.Event{Type: events.GalleryChanged, Inserted: &rec, Evicted: evicted})
	s.transcript.RemoveByCorrelationID(requestID)

	slog.InfoContext(ctx, "画像をギャラリーに追加しました", "request_id", requestID, "id", rec.ID, "evicted", evicted != nil)
	return nil
}
