package signal

import (
	"time"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/pkg/mathx"
)

// DefaultMomentumDays 动量分的默认回看天数。
const DefaultMomentumDays = 7

// DefaultMomentumAlpha 日互动序列的 EMA 平滑系数。
const DefaultMomentumAlpha = 0.3

// MomentumScore 计算物品的动量分 ∈ [0,1]：最近一天的互动量
// 相对此前几天 EMA 平滑后序列的抬升幅度。区分"一直很热"
// 和"正在变热"：趋势分只看总量，动量分看斜率。
//
// days <= 0 时取 DefaultMomentumDays。天按 [now-k天, now-k+1天) 切片。
func MomentumScore(events []core.InteractionEvent, itemID core.ItemID, now time.Time, days int, weights EngagementWeights) float64 {
	if days <= 0 {
		days = DefaultMomentumDays
	}
	if weights == (EngagementWeights{}) {
		weights = DefaultEngagementWeights
	}

	daily := make([]float64, days)
	start := now.Add(-time.Duration(days) * 24 * time.Hour)
	for _, ev := range events {
		if ev.ItemID != itemID {
			continue
		}
		if ev.Timestamp.Before(start) || !ev.Timestamp.Before(now) {
			continue
		}
		day := int(ev.Timestamp.Sub(start) / (24 * time.Hour))
		if day < 0 || day >= days {
			continue
		}
		switch ev.Type {
		case core.EventView:
			daily[day] += weights.View
		case core.EventFavorite:
			daily[day] += weights.Favorite
		case core.EventShare:
			daily[day] += weights.Share
		case core.EventPurchase:
			daily[day] += weights.Purchase
		}
	}

	if days < 2 {
		return 0
	}
	smoothed := mathx.ExponentialMovingAverage(daily[:days-1], DefaultMomentumAlpha)
	return mathx.Momentum(daily[days-1], smoothed)
}
