// Package archive はギャラリーのレコードから、カード HTML と画像をまとめた
// zip アーカイブを生成します。
package archive

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/imgcodec"
)

// FailureKind はビルド失敗の種類です。
type FailureKind int

const (
	// ImageDecodeFailed はレコードの画像が解釈できなかったことを表します。
	ImageDecodeFailed FailureKind = iota + 1
	// PackagingFailed は圧縮処理そのものの失敗です。
	PackagingFailed
)

func (k FailureKind) String() string {
	switch k {
	case ImageDecodeFailed:
		return "image decode failed"
	case PackagingFailed:
		return "packaging failed"
	default:
		return "unknown"
	}
}

// BuildError はアーカイブ生成の失敗です。
type BuildError struct {
	Kind FailureKind
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("archive: %s: %v", e.Kind, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Package は生成済みアーカイブです。
type Package struct {
	Filename string
	Data     []byte
	Entries  []string // 格納したファイルのパス
	Skipped  int      // 一括エクスポートで画像を解釈できず除外した件数
}

// Builder はアーカイブを組み立てます。
type Builder struct {
	packager Packager
	now      func() time.Time
}

// Option は Builder の設定です。
type Option func(*Builder)

// WithPackager は圧縮処理を差し替えます。
func WithPackager(p Packager) Option {
	return func(b *Builder) { b.packager = p }
}

// WithClock は時刻の取得元を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// NewBuilder は Builder を作成します。
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	if b.packager == nil {
		b.packager = ZipPackager{}
	}
	return b
}

// BuildSingle は1件分のカード HTML と画像を格納したアーカイブを生成します。
func (b *Builder) BuildSingle(rec domain.ImageRecord) (*Package, error) {
	entries, err := cardEntries(rec, "")
	if err != nil {
		return nil, err
	}
	return b.pack(SingleFilename(rec), entries, 0)
}

// BuildBulk は全レコードをフォルダごとに格納したアーカイブを生成します。
// 画像を解釈できないレコードは除外して続行し、件数を Skipped に記録します。
// 1件も格納できなくても有効なアーカイブを返します。
func (b *Builder) BuildBulk(recs []domain.ImageRecord) (*Package, error) {
	var entries []Entry
	skipped := 0
	for _, rec := range recs {
		card, err := cardEntries(rec, FolderName(rec))
		if err != nil {
			var be *BuildError
			if errors.As(err, &be) && be.Kind == ImageDecodeFailed {
				slog.Warn("画像データを解釈できないためスキップします", "id", rec.ID, "error", err)
				skipped++
				continue
			}
			return nil, err
		}
		entries = append(entries, card...)
	}
	return b.pack(BulkFilename(b.now()), entries, skipped)
}

func (b *Builder) pack(filename string, entries []Entry, skipped int) (*Package, error) {
	data, err := b.packager.Pack(entries)
	if err != nil {
		return nil, &BuildError{Kind: PackagingFailed, Err: errors.Join(domain.ErrPackaging, err)}
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return &Package{Filename: filename, Data: data, Entries: names, Skipped: skipped}, nil
}

// cardEntries はカード HTML と画像のエントリを dir 以下に作ります。
func cardEntries(rec domain.ImageRecord, dir string) ([]Entry, error) {
	payload, err := imgcodec.Decode(rec.ImageURL)
	if err != nil {
		return nil, &BuildError{Kind: ImageDecodeFailed, Err: err}
	}
	data, err := payload.Bytes()
	if err != nil {
		return nil, &BuildError{Kind: ImageDecodeFailed, Err: err}
	}

	imageName := ImageName(payload.Extension())
	manifest, err := RenderManifest(rec, imageName)
	if err != nil {
		return nil, &BuildError{Kind: PackagingFailed, Err: errors.Join(domain.ErrPackaging, err)}
	}

	return []Entry{
		{Name: path.Join(dir, ManifestName), Data: manifest},
		{Name: path.Join(dir, imageName), Data: data},
	}, nil
}
