package archive

import (
	"bytes"
	"fmt"
	"time"

	"github.com/klauspost/compress/zip"
)

// Entry はアーカイブに格納する1ファイルです。Name は / 区切りのパスです。
type Entry struct {
	Name string
	Data []byte
}

// Packager はエントリ群を1つの圧縮バイナリにまとめます。
type Packager interface {
	Pack(entries []Entry) ([]byte, error)
}

// ZipPackager は Deflate 圧縮の zip を生成します。
// 全エントリの更新日時を Modified に固定するため、同じ入力からは同じバイト列になります。
type ZipPackager struct {
	Modified time.Time
}

// Pack は zip を生成します。
func (p ZipPackager) Pack(entries []Entry) ([]byte, error) {
	modified := p.Modified
	if modified.IsZero() {
		modified = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("zipエントリ作成失敗 (%s): %w", e.Name, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			return nil, fmt.Errorf("zipエントリ書き込み失敗 (%s): %w", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zipのクローズに失敗: %w", err)
	}
	return buf.Bytes(), nil
}
