package signal

import (
	"context"
	"fmt"
	"time"

	"github.com/glowteam/glowkit/core"
)

// Provider 向排序阶段提供窗口内的行为计数。
// 排序 Node 不直接接触事件流，只消费聚合结果。
type Provider interface {
	// WindowCounts 返回以 now 结尾、长度为 window 的滚动窗口内按物品聚合的计数
	WindowCounts(ctx context.Context, now time.Time, window time.Duration) (map[core.ItemID]Counts, error)
}

// EventSource 是基于 EventStore 的 Provider 实现：
// 每次查询拉取窗口事件并即时聚合。
type EventSource struct {
	Events     core.EventStore
	Aggregator *Aggregator
}

func (s *EventSource) aggregator() *Aggregator {
	if s.Aggregator != nil {
		return s.Aggregator
	}
	return &Aggregator{}
}

// WindowCounts 实现 Provider 接口。
func (s *EventSource) WindowCounts(ctx context.Context, now time.Time, window time.Duration) (map[core.ItemID]Counts, error) {
	if s.Events == nil {
		return map[core.ItemID]Counts{}, nil
	}
	if window <= 0 {
		window = DefaultTrendingWindow
	}

	start := now.Add(-window)
	events, err := s.Events.EventsSince(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("events since %s: %w", start.Format(time.RFC3339), err)
	}
	return s.aggregator().Aggregate(events, start, now), nil
}
