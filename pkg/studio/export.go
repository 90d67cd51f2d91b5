package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-studio-kit/pkg/archive"
	"github.com/shouni/gemini-studio-kit/pkg/conversation"
	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/events"
)

// ExportSingle はギャラリーの1件をアーカイブにします。
// 結果は export-ready / export-failed として通知し、ファイルへの書き出しはシェルが行います。
func (s *Session) ExportSingle(ctx context.Context, id int64) (*archive.Package, error) {
	rec, ok := s.gallery.Find(id)
	if !ok {
		n := s.notify(fmt.Sprintf(msgCardNotFound, id), domain.ErrNotFound, nil)
		s.publishExportFailed(n)
		return nil, n
	}

	pkg, err := s.builder.BuildSingle(rec)
	if err != nil {
		slog.ErrorContext(ctx, "カードのアーカイブ作成に失敗しました", "id", id, "error", err)
		sentinel := domain.ErrPackaging
		var be *archive.BuildError
		if errors.As(err, &be) && be.Kind == archive.ImageDecodeFailed {
			sentinel = domain.ErrDecode
		}
		n := s.notify(msgCardArchiveError, sentinel, err)
		s.publishExportFailed(n)
		return nil, n
	}

	slog.InfoContext(ctx, "カードをアーカイブしました", "id", id, "filename", pkg.Filename, "bytes", len(pkg.Data))
	s.bus.Publish(events.Event{Type: events.ExportReady, Filename: pkg.Filename, Data: pkg.Data})
	return pkg, nil
}

// ExportAll はギャラリー全件をアーカイブにします。
// 実行中に再度呼ばれた場合は domain.ErrExportInProgress を返します。
// 受け付けなかった場合も export-failed を通知します。
func (s *Session) ExportAll(ctx context.Context) (*archive.Package, error) {
	if err := s.exportAllRefusal(); err != nil {
		s.publishExportFailed(err)
		return nil, err
	}
	defer s.exporting.Store(false)

	packagingID := newCorrelationID("export")
	s.transcript.AppendBot(msgPackaging, conversation.Provisional(), conversation.WithCorrelation(packagingID))
	defer s.transcript.RemoveByCorrelationID(packagingID)

	recs := s.gallery.All()
	pkg, err := s.builder.BuildBulk(recs)
	if err != nil {
		slog.ErrorContext(ctx, "ギャラリーのアーカイブ作成に失敗しました", "count", len(recs), "error", err)
		n := s.notify(msgMasterArchiveErr, domain.ErrPackaging, err)
		s.publishExportFailed(n)
		return nil, n
	}

	slog.InfoContext(ctx, "ギャラリーをアーカイブしました",
		"filename", pkg.Filename,
		"count", len(recs)-pkg.Skipped,
		"skipped", pkg.Skipped,
	)
	s.transcript.AppendBot(msgPackaged)
	s.bus.Publish(events.Event{Type: events.ExportReady, Filename: pkg.Filename, Data: pkg.Data, Skipped: pkg.Skipped})
	return pkg, nil
}

// exportAllRefusal は一括エクスポートを始められない理由を返します。
// nil のときは実行中フラグを立てており、呼び出し側が戻します。
func (s *Session) exportAllRefusal() *Notice {
	if !s.Configured() {
		return s.notify(msgNotConfiguredExport, domain.ErrNotConfigured, nil)
	}
	if s.gallery.IsEmpty() {
		return s.notify(msgGalleryEmpty, domain.ErrEmptyGallery, nil)
	}
	if !s.exporting.CompareAndSwap(false, true) {
		return s.notify(msgExportInProgress, domain.ErrExportInProgress, nil)
	}
	return nil
}

func (s *Session) publishExportFailed(n *Notice) {
	s.bus.Publish(events.Event{Type: events.ExportFailed, Reason: n.Message})
}
