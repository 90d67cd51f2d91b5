// Package imgutil は添付画像をインライン送信の上限に収めるための再圧縮を行います。
package imgutil

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
)

// ErrTooLarge は最低品質まで下げても上限に収まらなかったことを表します。
var ErrTooLarge = errors.New("imgutil: image exceeds size limit")

// qualitySteps は ShrinkToLimit が順に試す JPEG 品質です。
var qualitySteps = []int{85, 75, 60, 45, 30}

// ShrinkToLimit は data が limit バイト以下ならそのまま返します。
// 超えている場合は品質を段階的に下げた JPEG に変換し、収まった時点の結果を返します。
// 戻り値の bool は再エンコードしたかどうかです。
func ShrinkToLimit(data []byte, limit int) ([]byte, bool, error) {
	if limit <= 0 || len(data) <= limit {
		return data, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, err
	}
	for _, q := range qualitySteps {
		out, err := encodeJPEG(img, q)
		if err != nil {
			return nil, false, err
		}
		if len(out) <= limit {
			return out, true, nil
		}
	}
	return nil, false, ErrTooLarge
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
