package studio

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/events"
	"github.com/shouni/gemini-studio-kit/pkg/staging"
)

func TestSession_StageImage(t *testing.T) {
	t.Run("MIME 省略時は data URL から取り出す", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.session.StageImage(stagedDataURL, ""))
		staged, ok := f.session.StagedImage()
		require.True(t, ok)
		assert.Equal(t, "image/png", staged.MimeType)
	})

	t.Run("解釈できない画像は添付しない", func(t *testing.T) {
		f := newFixture(t)
		err := f.session.StageImage("not a data url", "")
		assert.ErrorIs(t, err, domain.ErrDecode)
		assert.Equal(t, []string{msgDropFailed}, botTexts(f.session))
		_, ok := f.session.StagedImage()
		assert.False(t, ok)
	})

	t.Run("変更通知とクリアの冪等性", func(t *testing.T) {
		bus := events.NewBus()
		var got []*domain.StagedImage
		bus.Subscribe(func(ev events.Event) {
			if ev.Type == events.StagedImageChanged {
				got = append(got, ev.Staged)
			}
		})
		f := newFixture(t, WithBus(bus))

		require.NoError(t, f.session.StageImage(stagedDataURL, ""))
		f.session.ClearStagedImage()
		f.session.ClearStagedImage()

		require.Len(t, got, 2)
		require.NotNil(t, got[0])
		assert.Equal(t, stagedDataURL, got[0].DataURL)
		assert.Nil(t, got[1])
	})
}

func TestSession_StageGalleryRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.session.Submit(ctx, "draw: moon"))
	rec := f.session.Gallery().All()[0]

	require.NoError(t, f.session.StageGalleryRecord(rec.ID))
	staged, ok := f.session.StagedImage()
	require.True(t, ok)
	assert.Equal(t, rec.ImageURL, staged.DataURL)
	assert.Equal(t, "image/jpeg", staged.MimeType)

	err := f.session.StageGalleryRecord(rec.ID + 100)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSession_StageFromSource(t *testing.T) {
	ctx := context.Background()

	newWithLoader := func(t *testing.T, l SourceLoader) *Session {
		t.Helper()
		s, err := New(Config{}, Deps{Chat: &mockChat{}, Images: &mockImages{}, Vision: &mockVision{}, Loader: l},
			WithClock(func() time.Time { return fixedNow }))
		require.NoError(t, err)
		return s
	}

	t.Run("読み込んだ画像を添付する", func(t *testing.T) {
		s := newWithLoader(t, &mockLoader{img: domain.StagedImage{DataURL: stagedDataURL, MimeType: "image/png"}})
		require.NoError(t, s.StageFromSource(ctx, "cat.png"))
		staged, ok := s.StagedImage()
		require.True(t, ok)
		assert.Equal(t, "image/png", staged.MimeType)
	})

	t.Run("画像以外は専用の案内", func(t *testing.T) {
		s := newWithLoader(t, &mockLoader{err: fmt.Errorf("%w: text/plain", staging.ErrNotImage)})
		err := s.StageFromSource(ctx, "notes.txt")
		assert.ErrorIs(t, err, staging.ErrNotImage)
		assert.Equal(t, msgDropNotImage, err.Error())
	})

	t.Run("取得失敗", func(t *testing.T) {
		s := newWithLoader(t, &mockLoader{err: errors.New("404")})
		err := s.StageFromSource(ctx, "https://example.com/cat.png")
		assert.ErrorIs(t, err, domain.ErrDecode)
		assert.Equal(t, msgDropFailed, err.Error())
		_, ok := s.StagedImage()
		assert.False(t, ok)
	})

	t.Run("ローダー未設定", func(t *testing.T) {
		s := newWithLoader(t, nil)
		assert.Error(t, s.StageFromSource(ctx, "cat.png"))
	})
}
