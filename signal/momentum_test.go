package signal

import (
	"testing"
	"time"

	"github.com/glowteam/glowkit/core"
)

func TestMomentumScore(t *testing.T) {
	now := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)
	item := core.ItemID("serum-1")

	// 前 6 天浏览量逐日递增，最后一天爆发
	var rising []core.InteractionEvent
	for day := 0; day < 6; day++ {
		for i := 0; i <= day; i++ {
			rising = append(rising, core.InteractionEvent{
				ItemID:    item,
				Type:      core.EventView,
				Timestamp: now.Add(-time.Duration(7-day)*24*time.Hour + time.Hour),
			})
		}
	}
	for i := 0; i < 20; i++ {
		rising = append(rising, core.InteractionEvent{
			ItemID:    item,
			Type:      core.EventView,
			Timestamp: now.Add(-time.Hour),
		})
	}

	got := MomentumScore(rising, item, now, 7, EngagementWeights{})
	if got <= 0 || got > 1 {
		t.Fatalf("MomentumScore(rising) = %v, want in (0, 1]", got)
	}

	// 持续平稳的物品没有动量
	var flat []core.InteractionEvent
	for day := 0; day < 7; day++ {
		flat = append(flat, core.InteractionEvent{
			ItemID:    item,
			Type:      core.EventView,
			Timestamp: now.Add(-time.Duration(7-day)*24*time.Hour + time.Hour),
		})
	}
	if got := MomentumScore(flat, item, now, 7, EngagementWeights{}); got != 0 {
		t.Fatalf("MomentumScore(flat) = %v, want 0", got)
	}

	// 无事件
	if got := MomentumScore(nil, item, now, 7, EngagementWeights{}); got != 0 {
		t.Fatalf("MomentumScore(empty) = %v, want 0", got)
	}
}
