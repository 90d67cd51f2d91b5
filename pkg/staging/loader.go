package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/imgcodec"
	"github.com/shouni/gemini-studio-kit/pkg/imgutil"
)

var (
	// ErrNotImage は画像以外のデータを添付しようとしたことを表します。
	ErrNotImage = errors.New("staging: not an image")
	// ErrRemoteUnavailable は取得元に対応するクライアントが設定されていないことを表します。
	ErrRemoteUnavailable = errors.New("staging: remote source is not available")
	// ErrUnsafeURL はプライベートアドレスなど取得を許可しない URL を表します。
	ErrUnsafeURL = errors.New("staging: unsafe url")
)

const cacheKeyPrefix = "staging_src:"

// ImageCacher は、取得した画像をキャッシュするためのインターフェースです。
type ImageCacher interface {
	Get(key string) (any, bool)
	Set(key string, value any, d time.Duration)
}

// Loader はファイル、URL、ギャラリー画像などから添付用の data URL を作ります。
type Loader struct {
	httpClient  httpkit.ClientInterface
	reader      remoteio.InputReader
	cache       ImageCacher
	cacheTTL    time.Duration
	inlineLimit int
}

// NewLoader は依存関係を注入して Loader を作成します。
// httpClient と reader は nil でもよく、その場合は対応する URL の取得が ErrRemoteUnavailable になります。
// inlineLimit を超える画像は JPEG に再圧縮します (0 以下で無制限)。
func NewLoader(httpClient httpkit.ClientInterface, reader remoteio.InputReader, cache ImageCacher, cacheTTL time.Duration, inlineLimit int) *Loader {
	return &Loader{
		httpClient:  httpClient,
		reader:      reader,
		cache:       cache,
		cacheTTL:    cacheTTL,
		inlineLimit: inlineLimit,
	}
}

// FromSource は src の形式に応じて読み込み方法を選びます。
// data URL、gs://、http(s)://、それ以外はローカルファイルのパスとして扱います。
func (l *Loader) FromSource(ctx context.Context, src string) (domain.StagedImage, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return l.FromDataURL(src)
	case strings.HasPrefix(src, "gs://"), strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return l.FromURL(ctx, src)
	default:
		data, err := os.ReadFile(src)
		if err != nil {
			return domain.StagedImage{}, fmt.Errorf("画像ファイルの読み込みに失敗しました: %w", err)
		}
		return l.FromBytes(data)
	}
}

// FromDataURL はギャラリー画像など、既に data URL になっているものを検証します。
// 生の base64 は image/jpeg の data URL に正規化します。
func (l *Loader) FromDataURL(dataURL string) (domain.StagedImage, error) {
	p, err := imgcodec.Decode(dataURL)
	if err != nil {
		return domain.StagedImage{}, err
	}
	return domain.StagedImage{DataURL: p.DataURL(), MimeType: p.MimeType}, nil
}

// FromBytes は画像のバイナリから data URL を作ります。
func (l *Loader) FromBytes(data []byte) (domain.StagedImage, error) {
	mimeType, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.StagedImage{}, fmt.Errorf("%w: %s", ErrNotImage, mimeType)
	}

	out, reencoded, err := imgutil.ShrinkToLimit(data, l.inlineLimit)
	if err != nil {
		return domain.StagedImage{}, fmt.Errorf("画像の縮小に失敗しました: %w", err)
	}
	if reencoded {
		slog.Info("添付画像をJPEGに再圧縮しました", "before", len(data), "after", len(out))
		mimeType = "image/jpeg"
	}
	return domain.StagedImage{DataURL: imgcodec.EncodeBytes(mimeType, out), MimeType: mimeType}, nil
}

// FromURL は http(s) または gs:// から画像を取得します。
func (l *Loader) FromURL(ctx context.Context, rawURL string) (domain.StagedImage, error) {
	data, err := l.fetch(ctx, rawURL)
	if err != nil {
		return domain.StagedImage{}, err
	}
	return l.FromBytes(data)
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	key := cacheKeyPrefix + rawURL
	if l.cache != nil {
		if cached, ok := l.cache.Get(key); ok {
			if data, ok := cached.([]byte); ok {
				return data, nil
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", rawURL, "type", fmt.Sprintf("%T", cached))
		}
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(rawURL, "gs://") {
		data, err = l.fetchRemote(ctx, rawURL)
	} else {
		data, err = l.fetchHTTP(ctx, rawURL)
	}
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		l.cache.Set(key, data, l.cacheTTL)
	}
	return data, nil
}

func (l *Loader) fetchRemote(ctx context.Context, rawURL string) ([]byte, error) {
	if l.reader == nil {
		return nil, fmt.Errorf("%w: %s", ErrRemoteUnavailable, rawURL)
	}
	rc, err := l.reader.Open(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("リモート画像のオープンに失敗しました: %w", err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (l *Loader) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	if l.httpClient == nil {
		return nil, fmt.Errorf("%w: %s", ErrRemoteUnavailable, rawURL)
	}
	if safe, err := IsSafeURL(rawURL); err != nil || !safe {
		slog.WarnContext(ctx, "SSRFの可能性がある、または不正なURLをブロックしました", "url", rawURL, "error", err)
		return nil, errors.Join(fmt.Errorf("%w: %s", ErrUnsafeURL, rawURL), err)
	}
	data, err := l.httpClient.FetchBytes(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("画像のダウンロードに失敗しました: %w", err)
	}
	return data, nil
}
