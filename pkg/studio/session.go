// Package studio は会話、画像生成、ギャラリー、エクスポートをまとめるセッションです。
// UI シェルは Session の入口メソッドを呼び、events.Bus で変更を受け取ります。
package studio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/gemini-studio-kit/pkg/archive"
	"github.com/shouni/gemini-studio-kit/pkg/conversation"
	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/events"
	"github.com/shouni/gemini-studio-kit/pkg/gallery"
	"github.com/shouni/gemini-studio-kit/pkg/imgcodec"
	"github.com/shouni/gemini-studio-kit/pkg/staging"
)

// ChatResponder は会話履歴を保持するテキストチャットです。
type ChatResponder interface {
	Send(ctx context.Context, message string) (string, error)
}

// ImageGenerator はテキストから画像を生成します。0件の結果はエラーではありません。
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, count int) ([]domain.GeneratedImage, error)
	ModelName() string
}

// MultimodalResponder は画像とテキストから応答を生成します。
type MultimodalResponder interface {
	Respond(ctx context.Context, image imgcodec.Payload, text string) (string, error)
}

// SourceLoader はファイルや URL から添付画像を読み込みます。
type SourceLoader interface {
	FromSource(ctx context.Context, src string) (domain.StagedImage, error)
}

// Config はセッションの設定です。
type Config struct {
	GalleryCapacity int
}

// Deps は外部機能です。Chat、Images、Vision がすべて nil なら未設定のセッションになります。
type Deps struct {
	Chat   ChatResponder
	Images ImageGenerator
	Vision MultimodalResponder
	Loader SourceLoader
}

// Session は1ユーザー分の状態を持ちます。複数の goroutine から同時に呼び出せます。
type Session struct {
	chat   ChatResponder
	images ImageGenerator
	vision MultimodalResponder
	loader SourceLoader

	transcript *conversation.Transcript
	gallery    *gallery.Store
	stage      *staging.Stage
	builder    *archive.Builder
	bus        *events.Bus
	now        func() time.Time

	idMu      sync.Mutex // ID の払い出しとギャラリーへの追加
	lastID    int64
	exporting atomic.Bool
}

// Option は Session の設定です。
type Option func(*Session)

// WithClock は時刻の取得元を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithBus は通知先を差し替えます。
func WithBus(bus *events.Bus) Option {
	return func(s *Session) { s.bus = bus }
}

// WithArchiveBuilder はアーカイブの組み立てを差し替えます。
func WithArchiveBuilder(b *archive.Builder) Option {
	return func(s *Session) { s.builder = b }
}

// New はセッションを作成します。
func New(cfg Config, deps Deps, opts ...Option) (*Session, error) {
	configured := deps.Chat != nil || deps.Images != nil || deps.Vision != nil
	if configured {
		if deps.Chat == nil {
			return nil, fmt.Errorf("chat responder is required")
		}
		if deps.Images == nil {
			return nil, fmt.Errorf("image generator is required")
		}
		if deps.Vision == nil {
			return nil, fmt.Errorf("multimodal responder is required")
		}
	}

	s := &Session{
		chat:       deps.Chat,
		images:     deps.Images,
		vision:     deps.Vision,
		loader:     deps.Loader,
		transcript: conversation.New(),
		gallery:    gallery.New(cfg.GalleryCapacity),
		stage:      staging.NewStage(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil {
		s.bus = events.NewBus()
	}
	if s.builder == nil {
		s.builder = archive.NewBuilder(archive.WithClock(s.now))
	}

	s.transcript.OnChange(func(c conversation.Change) {
		e := c.Entry
		s.bus.Publish(events.Event{Type: events.TranscriptChanged, Entry: &e, Removed: c.Op == conversation.OpRemoved})
	})
	s.stage.OnChange(func(img *domain.StagedImage) {
		s.bus.Publish(events.Event{Type: events.StagedImageChanged, Staged: img})
	})
	return s, nil
}

// Configured は生成機能が使えるかどうかを返します。
func (s *Session) Configured() bool {
	return s.chat != nil
}

func (s *Session) Bus() *events.Bus                     { return s.bus }
func (s *Session) Transcript() *conversation.Transcript { return s.transcript }

// Gallery はギャラリーの読み取り専用ビューを返します。
// 追加は ID を採番するセッション経由でのみ行います。
func (s *Session) Gallery() GalleryView { return GalleryView{store: s.gallery} }

// GalleryView は gallery.Store の参照系だけを公開します。
type GalleryView struct {
	store *gallery.Store
}

func (v GalleryView) All() []domain.ImageRecord                { return v.store.All() }
func (v GalleryView) Find(id int64) (domain.ImageRecord, bool) { return v.store.Find(id) }
func (v GalleryView) Len() int                                 { return v.store.Len() }
func (v GalleryView) IsEmpty() bool                            { return v.store.IsEmpty() }
func (v GalleryView) Capacity() int                            { return v.store.Capacity() }

// StagedImage は添付中の画像を返します。
func (s *Session) StagedImage() (domain.StagedImage, bool) {
	return s.stage.Get()
}

// Exporting は一括エクスポートの実行中かどうかを返します。
func (s *Session) Exporting() bool {
	return s.exporting.Load()
}

// notify はボットの恒久エントリを追加し、同じ文言の Notice を返します。
func (s *Session) notify(message string, sentinel error, cause error) *Notice {
	s.transcript.AppendBot(message)
	return newNotice(message, sentinel, cause)
}

// file は ID を払い出してギャラリーの先頭に追加します。
// ID はミリ秒の時刻を元に厳密に増加させ、払い出しと追加を同じロックで行うため
// ギャラリーの並びと ID の大小が一致します。
func (s *Session) file(rec domain.ImageRecord) (domain.ImageRecord, *domain.ImageRecord) {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	rec.ID = id
	return rec, s.gallery.Insert(rec)
}

// newCorrelationID は時刻順に並ぶ一意なトークンを作ります。
func newCorrelationID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		slog.Warn("UUIDv7の生成に失敗したため v4 を使用します", "error", err)
		return prefix + "-" + uuid.NewString()
	}
	return prefix + "-" + id.String()
}
