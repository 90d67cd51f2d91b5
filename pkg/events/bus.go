// Package events はコアから UI シェルへの通知を配信します。
package events

import (
	"sync"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
)

// Type は通知の種類です。
type Type string

const (
	TranscriptChanged  Type = "transcript-changed"
	GalleryChanged     Type = "gallery-changed"
	StagedImageChanged Type = "staged-image-changed"
	ExportReady        Type = "export-ready"
	ExportFailed       Type = "export-failed"
)

// Event は1件の通知です。種類に応じたフィールドだけが埋まります。
type Event struct {
	Type Type

	// TranscriptChanged
	Entry   *domain.Entry
	Removed bool

	// GalleryChanged
	Inserted *domain.ImageRecord
	Evicted  *domain.ImageRecord

	// StagedImageChanged (nil はクリア)
	Staged *domain.StagedImage

	// ExportReady
	Filename string
	Data     []byte
	Skipped  int

	// ExportFailed
	Reason string
}

// Bus は購読者に通知を同期的に配信します。
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Event))}
}

// Subscribe は購読者を登録し、解除用の関数を返します。
func (b *Bus) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish は全購読者に通知します。
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	subs := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}
