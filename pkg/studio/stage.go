package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/imgcodec"
	"github.com/shouni/gemini-studio-kit/pkg/staging"
)

// StageImage は data URL の画像を次の送信に添付します。既存の添付は置き換えます。
// mimeType が空なら data URL から取り出します。
func (s *Session) StageImage(dataURL, mimeType string) error {
	if !s.Configured() {
		return s.notify(msgNotConfiguredDrop, domain.ErrNotConfigured, nil)
	}
	payload, err := imgcodec.Decode(dataURL)
	if err != nil {
		return s.notify(msgDropFailed, domain.ErrDecode, err)
	}
	if mimeType == "" {
		mimeType = payload.MimeType
	}
	s.stage.Set(dataURL, mimeType)
	return nil
}

// StageGalleryRecord はギャラリーの画像を添付します。
func (s *Session) StageGalleryRecord(id int64) error {
	if !s.Configured() {
		return s.notify(msgNotConfiguredDrop, domain.ErrNotConfigured, nil)
	}
	rec, ok := s.gallery.Find(id)
	if !ok {
		return s.notify(msgGalleryDropMissing, domain.ErrNotFound, nil)
	}
	payload, err := imgcodec.Decode(rec.ImageURL)
	if err != nil {
		return s.notify(msgGalleryDropFailed, domain.ErrDecode, err)
	}
	s.stage.Set(rec.ImageURL, payload.MimeType)
	return nil
}

// StageFromSource はファイルパス、http(s)、gs:// の URL、data URL から画像を読み込んで添付します。
func (s *Session) StageFromSource(ctx context.Context, src string) error {
	if !s.Configured() {
		return s.notify(msgNotConfiguredDrop, domain.ErrNotConfigured, nil)
	}
	if s.loader == nil {
		return s.notify(msgDropFailed, domain.ErrDecode, fmt.Errorf("source loader is not configured"))
	}
	img, err := s.loader.FromSource(ctx, src)
	if err != nil {
		slog.WarnContext(ctx, "添付画像の読み込みに失敗しました", "source", src, "error", err)
		if errors.Is(err, staging.ErrNotImage) {
			return s.notify(msgDropNotImage, domain.ErrDecode, err)
		}
		return s.notify(msgDropFailed, domain.ErrDecode, err)
	}
	s.stage.Set(img.DataURL, img.MimeType)
	return nil
}

// ClearStagedImage は添付画像を外します。何度呼んでも安全です。
func (s *Session) ClearStagedImage() {
	s.stage.Clear()
}
