// Package session 提供调用方持有的会话状态（最近搜索历史）。
//
// 引擎本身无任何进程级可变状态；历史记录由调用方创建、显式传递，
// 需要跨进程保留时挂一个 core.Store 持久化。
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rushteam/shopkit/core"
)

// DefaultHistoryLimit 是最近搜索的默认保留条数。
const DefaultHistoryLimit = 6

// History 是有界的最近搜索历史：最新在前，重复命中移到最前。
// 并发安全；一个 History 对应一个用户会话，不做进程级共享。
type History struct {
	mu      sync.Mutex
	entries []string
	limit   int

	store core.Store // 可选持久化
	key   string
}

// HistoryOption 配置 History。
type HistoryOption func(*History)

// WithLimit 设置保留条数；<= 0 时取 DefaultHistoryLimit。
func WithLimit(n int) HistoryOption {
	return func(h *History) { h.limit = n }
}

// WithStore 挂接持久化存储。key 通常带用户标识，如 "recent:42"。
func WithStore(s core.Store, key string) HistoryOption {
	return func(h *History) {
		h.store = s
		h.key = key
	}
}

// NewHistory 创建搜索历史。配了 Store 时会尝试加载已有记录，
// 加载失败按空历史处理。
func NewHistory(ctx context.Context, opts ...HistoryOption) *History {
	h := &History{limit: DefaultHistoryLimit}
	for _, opt := range opts {
		opt(h)
	}
	if h.limit <= 0 {
		h.limit = DefaultHistoryLimit
	}

	if h.store != nil && h.key != "" {
		if data, err := h.store.Get(ctx, h.key); err == nil {
			var entries []string
			if json.Unmarshal(data, &entries) == nil {
				if len(entries) > h.limit {
					entries = entries[:h.limit]
				}
				h.entries = entries
			}
		}
	}
	return h
}

// Add 记录一次命中的搜索：重复的移到最前，超限的从尾部挤出。
func (h *History) Add(ctx context.Context, name string) {
	if name == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	next := make([]string, 0, len(h.entries)+1)
	next = append(next, name)
	for _, e := range h.entries {
		if e != name {
			next = append(next, e)
		}
	}
	if len(next) > h.limit {
		next = next[:h.limit]
	}
	h.entries = next
	h.persist(ctx)
}

// Entries 返回历史快照，最新在前。
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clear 清空历史。
func (h *History) Clear(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	if h.store != nil && h.key != "" {
		_ = h.store.Delete(ctx, h.key)
	}
}

// persist 尽力写回存储；失败不影响内存态。调用方需持有锁。
func (h *History) persist(ctx context.Context) {
	if h.store == nil || h.key == "" {
		return
	}
	data, err := json.Marshal(h.entries)
	if err != nil {
		return
	}
	_ = h.store.Set(ctx, h.key, data)
}
