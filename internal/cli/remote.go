package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// lazyRemoteReader は最初の取得時に IOFactory を作る InputReader です。
// gs:// を使わない限り GCS の認証情報は不要です。
type lazyRemoteReader struct {
	newFactory func(ctx context.Context) (remoteio.IOFactory, error)

	once    sync.Once
	factory remoteio.IOFactory
	reader  remoteio.InputReader
	err     error
}

func newLazyGCSReader() *lazyRemoteReader {
	return &lazyRemoteReader{newFactory: gcsfactory.New}
}

func (r *lazyRemoteReader) init(ctx context.Context) error {
	r.once.Do(func() {
		factory, err := r.newFactory(ctx)
		if err != nil {
			r.err = fmt.Errorf("リモートストレージに接続できません: %w", err)
			return
		}
		reader, err := factory.InputReader()
		if err != nil {
			_ = factory.Close()
			r.err = err
			return
		}
		r.factory = factory
		r.reader = reader
	})
	return r.err
}

func (r *lazyRemoteReader) Open(ctx context.Context, filePath string) (io.ReadCloser, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.reader.Open(ctx, filePath)
}

func (r *lazyRemoteReader) List(ctx context.Context, path string, callback func(filePath string) error) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.reader.List(ctx, path, callback)
}

// Close は作成済みのクライアントだけを閉じます。
func (r *lazyRemoteReader) Close() error {
	// 未使用なら once を消費して、以降の接続も止める
	r.once.Do(func() { r.err = fmt.Errorf("リモートストレージは既に閉じられています") })
	if r.factory == nil {
		return nil
	}
	return r.factory.Close()
}
