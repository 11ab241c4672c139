package store

import (
	"context"
	"sync"
	"time"

	"github.com/glowteam/glowkit/core"
)

// MemoryEventStore 是内存实现的只追加事件流。
// maxSize > 0 时按容量滚动淘汰最旧事件。事件按 Append 顺序保存，
// 窗口聚合依赖的是 Timestamp 过滤，不要求严格时间有序。
type MemoryEventStore struct {
	mu      sync.RWMutex
	events  []core.InteractionEvent
	maxSize int
}

func NewMemoryEventStore(maxSize int) *MemoryEventStore {
	return &MemoryEventStore{maxSize: maxSize}
}

func (s *MemoryEventStore) Append(ctx context.Context, event core.InteractionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	if s.maxSize > 0 && len(s.events) > s.maxSize {
		overflow := len(s.events) - s.maxSize
		s.events = append(s.events[:0:0], s.events[overflow:]...)
	}
	return nil
}

func (s *MemoryEventStore) EventsSince(ctx context.Context, since time.Time) ([]core.InteractionEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.InteractionEvent, 0, len(s.events))
	for _, e := range s.events {
		if e.Timestamp.Before(since) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Len 返回当前事件数，测试用。
func (s *MemoryEventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

var _ core.EventStore = (*MemoryEventStore)(nil)
