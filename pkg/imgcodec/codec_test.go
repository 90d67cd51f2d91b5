package imgcodec

import (
	"errors"
	"testing"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("EncodeしてDecodeすると元のMIMEとペイロードに戻る", func(t *testing.T) {
		cases := []struct{ mime, b64 string }{
			{"image/png", "iVBORw0KGgo="},
			{"image/jpeg", "/9j/4AAQ"},
			{"image/webp", "UklGRg=="},
			{"image/svg+xml", "PHN2Zz4="},
		}
		for _, c := range cases {
			got, err := Decode(Encode(c.mime, c.b64))
			require.NoError(t, err)
			assert.Equal(t, Payload{MimeType: c.mime, RawBase64: c.b64}, got)
		}
	})

	t.Run("プレフィックスのない生base64はimage/jpegとして扱う", func(t *testing.T) {
		got, err := Decode("QUJD")
		require.NoError(t, err)
		assert.Equal(t, DefaultMimeType, got.MimeType)
		assert.Equal(t, "QUJD", got.RawBase64)
	})

	t.Run("どちらにも当てはまらない場合はErrDecode", func(t *testing.T) {
		for _, in := range []string{"", "not a data url!!", "data:image/png,abc", "data:;base64,abc"} {
			_, err := Decode(in)
			assert.Error(t, err, in)
			assert.True(t, errors.Is(err, domain.ErrDecode), in)
		}
	})
}

func TestPayload(t *testing.T) {
	t.Run("Bytesはbase64をデコードする", func(t *testing.T) {
		data, err := Payload{MimeType: "image/png", RawBase64: "QUJD"}.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte("ABC"), data)
	})

	t.Run("壊れたbase64はErrDecode", func(t *testing.T) {
		_, err := Payload{RawBase64: "QUJ"}.Bytes()
		assert.ErrorIs(t, err, domain.ErrDecode)
	})

	t.Run("Extensionはサブタイプ、未知ならjpeg", func(t *testing.T) {
		assert.Equal(t, "png", Payload{MimeType: "image/png"}.Extension())
		assert.Equal(t, "jpeg", Payload{MimeType: "image/"}.Extension())
		assert.Equal(t, "jpeg", Payload{MimeType: "image/svg+xml"}.Extension())
		assert.Equal(t, "jpeg", Payload{MimeType: ""}.Extension())
	})

	t.Run("EncodeBytes", func(t *testing.T) {
		assert.Equal(t, "data:image/gif;base64,QUJD", EncodeBytes("image/gif", []byte("ABC")))
	})
}
