// Package imgcodec は data URL に埋め込まれた base64 画像を解析・生成します。
// 副作用はありません。
package imgcodec

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
)

// DefaultMimeType は data: プレフィックスのない生 base64 に仮定する MIME タイプです。
const DefaultMimeType = "image/jpeg"

const defaultExtension = "jpeg"

var (
	dataURLPattern = regexp.MustCompile(`^data:([A-Za-z0-9.+-]+/[A-Za-z0-9.+-]+);base64,(.*)$`)
	rawPattern     = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)
	subtypePattern = regexp.MustCompile(`^[a-z0-9]+$`)
)

// ErrDecode は解析失敗を表します。domain.ErrDecode をラップしています。
var ErrDecode = fmt.Errorf("imgcodec: %w", domain.ErrDecode)

// Payload は data URL から取り出した MIME タイプと base64 文字列の組です。
type Payload struct {
	MimeType  string
	RawBase64 string
}

// Decode は data URL を解析します。
// data: で始まらず base64 の文字種だけで構成された文字列は、
// 互換性のため image/jpeg の生ペイロードとして受け付けます。
func Decode(dataURL string) (Payload, error) {
	if m := dataURLPattern.FindStringSubmatch(dataURL); m != nil {
		return Payload{MimeType: m[1], RawBase64: m[2]}, nil
	}
	if !strings.HasPrefix(dataURL, "data:") && rawPattern.MatchString(dataURL) {
		return Payload{MimeType: DefaultMimeType, RawBase64: dataURL}, nil
	}
	return Payload{}, fmt.Errorf("%w: %q", ErrDecode, preview(dataURL))
}

// Encode は MIME タイプと base64 文字列から data URL を組み立てます。
func Encode(mimeType, rawBase64 string) string {
	return "data:" + mimeType + ";base64," + rawBase64
}

// EncodeBytes はバイナリを base64 化して data URL を組み立てます。
func EncodeBytes(mimeType string, data []byte) string {
	return Encode(mimeType, base64.StdEncoding.EncodeToString(data))
}

// Bytes はペイロードを厳密に base64 デコードします。
func (p Payload) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(p.RawBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return data, nil
}

// Extension は MIME のサブタイプをファイル拡張子として返します。
// 空、または英数字だけで構成されていない場合は jpeg です。
func (p Payload) Extension() string {
	_, sub, _ := strings.Cut(p.MimeType, "/")
	sub = strings.ToLower(sub)
	if sub == "" || !subtypePattern.MatchString(sub) {
		return defaultExtension
	}
	return sub
}

// DataURL は data URL 形式に戻します。
func (p Payload) DataURL() string {
	return Encode(p.MimeType, p.RawBase64)
}

func preview(s string) string {
	const n = 50
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
