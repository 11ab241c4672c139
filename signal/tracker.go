package signal

import (
	"context"
	"fmt"
	"time"

	"github.com/glowteam/glowkit/core"
)

// ActivityTracker 负责落地用户交互事件并维护实时计数。
//
// 写入两份：
//   - EventStore：只追加的事件流，是聚合的事实来源
//   - KeyValueStore（可选）：实时计数与趋势榜单，供 TrendingRecall 低延迟读取
//
// 键空间：
//   - activity:{kind}:{itemID}  hash，field 为事件类型，值为计数
//   - trending:{kind}           zset，member 为 itemID，分数按趋势权重累加
type ActivityTracker struct {
	Events core.EventStore
	Store  core.KeyValueStore

	// Weights 决定趋势榜单的分数增量；零值时用 DefaultTrendingWeights
	Weights TrendingWeights
}

// Track 记录一条交互事件。时间戳为零值时取当前时间。
// 实时计数更新失败不影响事件落地（榜单可从事件流重建）。
func (t *ActivityTracker) Track(ctx context.Context, event core.InteractionEvent) error {
	if event.ItemID == "" {
		return core.NewDomainError(core.ModuleSignal, core.ErrorCodeInvalidInput,
			"signal: event requires an item id")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if t.Events != nil {
		if err := t.Events.Append(ctx, event); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
	}

	if t.Store != nil {
		kind := event.ContentKindOrDefault()
		countKey := fmt.Sprintf("activity:%s:%s", kind, event.ItemID)
		// 计数失败不回滚事件：榜单随时可从事件流重建
		_, _ = t.Store.HIncrBy(ctx, countKey, string(event.Type), 1)

		if inc := t.trendingIncrement(event.Type); inc > 0 {
			trendKey := fmt.Sprintf("trending:%s", kind)
			_ = t.Store.ZIncrBy(ctx, trendKey, inc, string(event.ItemID))
		}
	}
	return nil
}

func (t *ActivityTracker) trendingIncrement(eventType core.EventType) float64 {
	w := t.Weights
	if w.Views == 0 && w.Purchases == 0 && w.Wishlists == 0 {
		w = DefaultTrendingWeights
	}
	switch eventType {
	case core.EventView:
		return w.Views
	case core.EventPurchase:
		return w.Purchases
	case core.EventFavorite:
		return w.Wishlists
	default:
		return 0
	}
}
