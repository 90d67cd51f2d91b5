package archive

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/stretchr/testify/require"
)

// failingPackager は圧縮失敗を注入するモックなのだ。
type failingPackager struct {
	calls int
}

func (f *failingPackager) Pack(entries []Entry) ([]byte, error) {
	f.calls++
	return nil, errors.New("deflate exploded")
}

func record(id int64, prompt, imageURL string) domain.ImageRecord {
	return domain.ImageRecord{
		ID:          id,
		ImageURL:    imageURL,
		PromptFull:  "realistic photo of " + prompt,
		PromptBase:  prompt,
		ModelName:   "imagen-3.0-generate-002",
		GeneratedAt: "10:30",
		StyleLabel:  "Realistic Photo",
	}
}

// unzip は zip の中身をパス -> データのマップにするヘルパーなのだ。
func unzip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = b
	}
	return out
}
