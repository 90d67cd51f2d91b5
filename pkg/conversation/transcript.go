// Package conversation はユーザーとボットのやり取りを順序付きで保持します。
// 結果待ちの仮エントリや画像リクエストのプレースホルダーは、
// 位置ではなくハンドルまたは相関IDで削除します。
package conversation

import (
	"slices"
	"sync"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
)

// Op はトランスクリプトの変更種別です。
type Op int

const (
	OpAdded Op = iota + 1
	OpRemoved
)

// Change はトランスクリプトの変更通知です。
type Change struct {
	Op    Op
	Entry domain.Entry
}

// Option はエントリ追加時の設定です。
type Option func(*domain.Entry)

// Provisional は結果待ちの仮エントリにします。
func Provisional() Option {
	return func(e *domain.Entry) { e.Kind = domain.KindProvisional }
}

// ImageRequest はユーザーの画像リクエストのプレースホルダーにします。
func ImageRequest(correlationID string) Option {
	return func(e *domain.Entry) {
		e.Kind = domain.KindImageRequest
		e.CorrelationID = correlationID
	}
}

// ImageConfirmation はボットの画像生成完了メッセージにします。
func ImageConfirmation(correlationID string) Option {
	return func(e *domain.Entry) {
		e.Kind = domain.KindImageConfirmation
		e.CorrelationID = correlationID
	}
}

// WithCorrelation は種別を変えずに相関IDを付けます。
func WithCorrelation(correlationID string) Option {
	return func(e *domain.Entry) { e.CorrelationID = correlationID }
}

// WithAttachedImage はユーザー発言に添付画像を付けます。
func WithAttachedImage(dataURL string) Option {
	return func(e *domain.Entry) { e.AttachedImage = dataURL }
}

// Transcript は会話の記録です。複数の goroutine から安全に使えます。
type Transcript struct {
	mu       sync.Mutex
	entries  []domain.Entry
	nextID   uint64
	onChange func(Change)
}

// New は空のトランスクリプトを作成します。
func New() *Transcript {
	return &Transcript{}
}

// OnChange は変更通知の受け取り先を設定します。
// 通知はロックの外で呼ばれます。
func (t *Transcript) OnChange(fn func(Change)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

// AppendUser はユーザー発言を追加します。テキストはそのまま保持します。
func (t *Transcript) AppendUser(text string, opts ...Option) domain.Entry {
	return t.append(domain.RoleUser, text, opts)
}

// AppendBot はボット発言を追加します。リンク記法は追加時に一度だけ変換します。
func (t *Transcript) AppendBot(text string, opts ...Option) domain.Entry {
	return t.append(domain.RoleBot, RenderLinks(text), opts)
}

func (t *Transcript) append(role domain.Role, text string, opts []Option) domain.Entry {
	e := domain.Entry{Role: role, Text: text, Kind: domain.KindPlain}
	for _, opt := range opts {
		opt(&e)
	}

	t.mu.Lock()
	t.nextID++
	e.ID = t.nextID
	t.entries = append(t.entries, e)
	notify := t.onChange
	t.mu.Unlock()

	if notify != nil {
		notify(Change{Op: OpAdded, Entry: e})
	}
	return e
}

// RemoveByHandle はハンドルで1件削除します。存在しなければ false です。
func (t *Transcript) RemoveByHandle(id uint64) bool {
	removed := t.removeWhere(func(e domain.Entry) bool { return e.ID == id })
	return len(removed) > 0
}

// RemoveByCorrelationID は相関IDを持つエントリをすべて削除し、件数を返します。
func (t *Transcript) RemoveByCorrelationID(correlationID string) int {
	if correlationID == "" {
		return 0
	}
	removed := t.removeWhere(func(e domain.Entry) bool { return e.CorrelationID == correlationID })
	return len(removed)
}

func (t *Transcript) removeWhere(match func(domain.Entry) bool) []domain.Entry {
	t.mu.Lock()
	var removed []domain.Entry
	t.entries = slices.DeleteFunc(t.entries, func(e domain.Entry) bool {
		if match(e) {
			removed = append(removed, e)
			return true
		}
		return false
	})
	notify := t.onChange
	t.mu.Unlock()

	if notify != nil {
		for _, e := range removed {
			notify(Change{Op: OpRemoved, Entry: e})
		}
	}
	return removed
}

// Entries は現在のエントリのコピーを返します。
func (t *Transcript) Entries() []domain.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.entries)
}

// Provisional は結果待ちの仮エントリを返します。
func (t *Transcript) Provisional() []domain.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []domain.Entry
	for _, e := range t.entries {
		if e.IsProvisional() {
			out = append(out, e)
		}
	}
	return out
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// IsEmpty は空表示の切り替えに使います。
func (t *Transcript) IsEmpty() bool {
	return t.Len() == 0
}
