package studio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shouni/gemini-studio-kit/pkg/archive"
	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/imgcodec"
)

// mockChat は ChatResponder のモックなのだ。
type mockChat struct {
	sendFunc func(message string) (string, error)
	mu       sync.Mutex
	messages []string
}

func (m *mockChat) Send(ctx context.Context, message string) (string, error) {
	m.mu.Lock()
	m.messages = append(m.messages, message)
	m.mu.Unlock()
	if m.sendFunc != nil {
		return m.sendFunc(message)
	}
	return "ok", nil
}

// mockImages は ImageGenerator のモックなのだ。
type mockImages struct {
	generateFunc func(ctx context.Context, prompt string) ([]domain.GeneratedImage, error)
	mu           sync.Mutex
	prompts      []string
}

func (m *mockImages) Generate(ctx context.Context, prompt string, count int) ([]domain.GeneratedImage, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt)
	}
	return oneImage(), nil
}

func (m *mockImages) ModelName() string { return "imagen-test" }

func (m *mockImages) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// mockVision は MultimodalResponder のモックなのだ。
type mockVision struct {
	respondFunc func(image imgcodec.Payload, text string) (string, error)
	calls       int
}

func (m *mockVision) Respond(ctx context.Context, image imgcodec.Payload, text string) (string, error) {
	m.calls++
	if m.respondFunc != nil {
		return m.respondFunc(image, text)
	}
	return "ok", nil
}

// mockLoader は SourceLoader のモックなのだ。
type mockLoader struct {
	img domain.StagedImage
	err error
}

func (m *mockLoader) FromSource(ctx context.Context, src string) (domain.StagedImage, error) {
	return m.img, m.err
}

// blockingPackager は Pack の途中で止めて再入を検証するためのモックなのだ。
type blockingPackager struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingPackager) Pack(entries []archive.Entry) ([]byte, error) {
	close(b.started)
	<-b.release
	return []byte("zip"), nil
}

var errPackFailed = errors.New("deflate exploded")

type failingPackager struct{}

func (failingPackager) Pack(entries []archive.Entry) ([]byte, error) {
	return nil, errPackFailed
}

const (
	stagedDataURL = "data:image/png;base64,aGk="
	otherDataURL  = "data:image/jpeg;base64,Ynll"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func oneImage() []domain.GeneratedImage {
	return []domain.GeneratedImage{{Data: []byte("jpeg-bytes"), MimeType: "image/jpeg"}}
}

type fixture struct {
	session *Session
	chat    *mockChat
	images  *mockImages
	vision  *mockVision
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{chat: &mockChat{}, images: &mockImages{}, vision: &mockVision{}}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	s, err := New(Config{}, Deps{Chat: f.chat, Images: f.images, Vision: f.vision}, opts...)
	require.NoError(t, err)
	f.session = s
	return f
}

// entriesOf は指定した種別のエントリを返すヘルパーなのだ。
func entriesOf(s *Session, kind domain.Kind) []domain.Entry {
	var out []domain.Entry
	for _, e := range s.Transcript().Entries() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func botTexts(s *Session) []string {
	var out []string
	for _, e := range s.Transcript().Entries() {
		if e.Role == domain.RoleBot {
			out = append(out, e.Text)
		}
	}
	return out
}
