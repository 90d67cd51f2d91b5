// Package staging は次のチャットに添付する画像を最大1件だけ保持します。
// 画像が添付されている間だけ、チャットはマルチモーダルになり定型アクションが使えます。
package staging

import (
	"sync"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
)

// Stage は添付画像の置き場です。
type Stage struct {
	mu       sync.Mutex
	current  *domain.StagedImage
	onChange func(*domain.StagedImage)
}

func NewStage() *Stage {
	return &Stage{}
}

// OnChange は添付状態が変わったときの通知先を設定します。クリア時は nil が渡ります。
func (s *Stage) OnChange(fn func(*domain.StagedImage)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Set は既存の添付を置き換えます。
func (s *Stage) Set(dataURL, mimeType string) {
	img := domain.StagedImage{DataURL: dataURL, MimeType: mimeType}

	s.mu.Lock()
	s.current = &img
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		copied := img
		notify(&copied)
	}
}

// Clear は添付を外します。何度呼んでも安全で、実際に外した場合だけ true を返します。
func (s *Stage) Clear() bool {
	s.mu.Lock()
	had := s.current != nil
	s.current = nil
	notify := s.onChange
	s.mu.Unlock()

	if had && notify != nil {
		notify(nil)
	}
	return had
}

// ClearIf は添付が dataURL と同じ画像のときだけ外します。
// 送信中に差し替えられた新しい添付は残ります。
func (s *Stage) ClearIf(dataURL string) bool {
	s.mu.Lock()
	if s.current == nil || s.current.DataURL != dataURL {
		s.mu.Unlock()
		return false
	}
	s.current = nil
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(nil)
	}
	return true
}

// Get は現在の添付を返します。
func (s *Stage) Get() (domain.StagedImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.StagedImage{}, false
	}
	return *s.current, true
}

// Has は定型アクションが使えるかどうかの判定に使います。
func (s *Stage) Has() bool {
	_, ok := s.Get()
	return ok
}
