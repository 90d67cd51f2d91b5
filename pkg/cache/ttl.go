// Package cache は取得した画像データを一定時間保持する LRU キャッシュです。
package cache

import (
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
)

type item struct {
	value     any
	expiresAt time.Time // ゼロ値は無期限
}

// TTL は件数上限付きの LRU に有効期限を加えたキャッシュです。
// staging.ImageCacher を満たします。
type TTL struct {
	mu  sync.Mutex
	lru *lru.Cache
	now func() time.Time
}

// NewTTL は最大 maxEntries 件のキャッシュを作成します。0 は無制限です。
func NewTTL(maxEntries int) *TTL {
	return &TTL{lru: lru.New(maxEntries), now: time.Now}
}

// Get は有効期限内の値を返します。期限切れは削除します。
func (c *TTL) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	it := v.(item)
	if !it.expiresAt.IsZero() && !c.now().Before(it.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return it.value, true
}

// Set は値を保存します。d が 0 以下なら無期限です。
func (c *TTL) Set(key string, value any, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := item{value: value}
	if d > 0 {
		it.expiresAt = c.now().Add(d)
	}
	c.lru.Add(key, it)
}

func (c *TTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
