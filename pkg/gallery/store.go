// Package gallery は生成画像を新しい順に最大 N 件まで保持します。
package gallery

import (
	"sync"

	"github.com/emirpasic/gods/queues/circularbuffer"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
)

// DefaultCapacity はギャラリーの既定の上限件数です。
const DefaultCapacity = 40

// Store は上限付きのギャラリーです。
// 挿入だけが変更操作で、上限を超えると最も古いレコードを1件だけ追い出します。
// アクセスによる並べ替えは行いません。
type Store struct {
	mu       sync.RWMutex
	ring     *circularbuffer.Queue // 古い順に並ぶ
	capacity int
}

// New は指定した上限のギャラリーを作成します。0以下なら DefaultCapacity です。
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		ring:     circularbuffer.New(capacity),
		capacity: capacity,
	}
}

// Insert はレコードを先頭に追加し、追い出したレコードがあれば返します。
func (s *Store) Insert(rec domain.ImageRecord) *domain.ImageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted *domain.ImageRecord
	if s.ring.Full() {
		if v, ok := s.ring.Dequeue(); ok {
			old := v.(domain.ImageRecord)
			evicted = &old
		}
	}
	s.ring.Enqueue(rec)
	return evicted
}

// All は新しい順のコピーを返します。
func (s *Store) All() []domain.ImageRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := s.ring.Values()
	out := make([]domain.ImageRecord, len(values))
	for i, v := range values {
		out[len(values)-1-i] = v.(domain.ImageRecord)
	}
	return out
}

// Find は ID でレコードを探します。
func (s *Store) Find(id int64) (domain.ImageRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.ring.Values() {
		if rec := v.(domain.ImageRecord); rec.ID == id {
			return rec, true
		}
	}
	return domain.ImageRecord{}, false
}

func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ring.Empty()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ring.Size()
}

func (s *Store) Capacity() int {
	return s.capacity
}
