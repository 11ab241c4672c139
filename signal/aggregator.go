// Package signal 把原始交互事件流聚合为可比较的热度/趋势分数。
//
// 归一化基准是同窗口内目录侧的最大观测值，因此分数只在同一窗口内可比，
// 不提供跨窗口可比性保证。
package signal

import (
	"time"

	"github.com/glowteam/glowkit/core"
)

// DefaultTrendingWindow 是趋势分数的默认滚动窗口。
const DefaultTrendingWindow = 7 * 24 * time.Hour

// Counts 是单个物品在一个时间窗口内的原始行为计数。
type Counts struct {
	Views     int
	Purchases int
	Wishlists int
	Shares    int
}

// Add 累加一条事件到计数。share 单独记录，热度/趋势权重均为 0，
// 只参与互动分（engagement）。
func (c *Counts) Add(eventType core.EventType) {
	switch eventType {
	case core.EventView:
		c.Views++
	case core.EventPurchase:
		c.Purchases++
	case core.EventFavorite:
		c.Wishlists++
	case core.EventShare:
		c.Shares++
	}
}

// PopularityWeights 是热度分数的固定权重（和为 1）。
type PopularityWeights struct {
	Views     float64
	Purchases float64
	Wishlists float64
}

// DefaultPopularityWeights 热度权重：购买 > 收藏 > 浏览。
var DefaultPopularityWeights = PopularityWeights{
	Views:     0.2,
	Purchases: 0.5,
	Wishlists: 0.3,
}

// TrendingWeights 是趋势分数的相对权重（未归一化，最终除以权重和）。
type TrendingWeights struct {
	Views     float64
	Purchases float64
	Wishlists float64
}

// DefaultTrendingWeights 趋势权重：购买 3 / 收藏 2 / 浏览 1。
var DefaultTrendingWeights = TrendingWeights{
	Views:     1,
	Purchases: 3,
	Wishlists: 2,
}

// Aggregator 把事件流聚合为热度/趋势分数。无状态，纯函数式。
type Aggregator struct {
	// 权重零值时使用默认权重
	Popularity PopularityWeights
	Trending   TrendingWeights
}

func (a *Aggregator) popularityWeights() PopularityWeights {
	w := a.Popularity
	if w.Views == 0 && w.Purchases == 0 && w.Wishlists == 0 {
		return DefaultPopularityWeights
	}
	return w
}

func (a *Aggregator) trendingWeights() TrendingWeights {
	w := a.Trending
	if w.Views == 0 && w.Purchases == 0 && w.Wishlists == 0 {
		return DefaultTrendingWeights
	}
	return w
}

// Aggregate 按物品聚合半开区间 [start, end) 内的事件。
func (a *Aggregator) Aggregate(events []core.InteractionEvent, start, end time.Time) map[core.ItemID]Counts {
	out := make(map[core.ItemID]Counts)
	for _, ev := range events {
		if !inWindow(ev.Timestamp, start, end) {
			continue
		}
		c := out[ev.ItemID]
		c.Add(ev.Type)
		out[ev.ItemID] = c
	}
	return out
}

// AggregateItem 聚合单个物品在 [start, end) 内的计数。
func (a *Aggregator) AggregateItem(events []core.InteractionEvent, start, end time.Time, itemID core.ItemID) Counts {
	var c Counts
	for _, ev := range events {
		if ev.ItemID != itemID || !inWindow(ev.Timestamp, start, end) {
			continue
		}
		c.Add(ev.Type)
	}
	return c
}

// PopularityScore 计算物品在窗口内的热度分数 ∈ [0,1]。
// 各指标先对目录侧同窗口最大值归一化，再按固定权重求和；
// 某指标目录最大值为 0 时，该指标贡献为 0（不是 NaN）。
func (a *Aggregator) PopularityScore(itemID core.ItemID, catalog map[core.ItemID]Counts) float64 {
	w := a.popularityWeights()
	c := catalog[itemID]
	maxViews, maxPurchases, maxWishlists := catalogMax(catalog)

	return w.Views*ratio(c.Views, maxViews) +
		w.Purchases*ratio(c.Purchases, maxPurchases) +
		w.Wishlists*ratio(c.Wishlists, maxWishlists)
}

// TrendingScore 计算物品在滚动窗口内的趋势分数 ∈ [0,1]。
// 归一化方式与热度一致，权重为相对权重，最后除以权重和。
func (a *Aggregator) TrendingScore(itemID core.ItemID, catalog map[core.ItemID]Counts) float64 {
	w := a.trendingWeights()
	weightSum := w.Views + w.Purchases + w.Wishlists
	if weightSum == 0 {
		return 0
	}

	c := catalog[itemID]
	maxViews, maxPurchases, maxWishlists := catalogMax(catalog)

	weighted := w.Views*ratio(c.Views, maxViews) +
		w.Purchases*ratio(c.Purchases, maxPurchases) +
		w.Wishlists*ratio(c.Wishlists, maxWishlists)
	return weighted / weightSum
}

// TrendingCounts 聚合以 now 结尾、长度为 window 的滚动窗口。
// window <= 0 时使用 DefaultTrendingWindow。
func (a *Aggregator) TrendingCounts(events []core.InteractionEvent, now time.Time, window time.Duration) map[core.ItemID]Counts {
	if window <= 0 {
		window = DefaultTrendingWindow
	}
	return a.Aggregate(events, now.Add(-window), now)
}

func inWindow(ts, start, end time.Time) bool {
	return !ts.Before(start) && ts.Before(end)
}

func ratio(value, max int) float64 {
	if max == 0 {
		return 0
	}
	return float64(value) / float64(max)
}

func catalogMax(catalog map[core.ItemID]Counts) (views, purchases, wishlists int) {
	for _, c := range catalog {
		if c.Views > views {
			views = c.Views
		}
		if c.Purchases > purchases {
			purchases = c.Purchases
		}
		if c.Wishlists > wishlists {
			wishlists = c.Wishlists
		}
	}
	return views, purchases, wishlists
}
