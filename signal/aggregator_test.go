package signal

import (
	"math"
	"testing"
	"time"

	"github.com/glowteam/glowkit/core"
)

var windowStart = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

func eventsFor(itemID core.ItemID, eventType core.EventType, n int, at time.Time) []core.InteractionEvent {
	events := make([]core.InteractionEvent, n)
	for i := range events {
		events[i] = core.InteractionEvent{ItemID: itemID, Type: eventType, Timestamp: at}
	}
	return events
}

func TestAggregateWindow(t *testing.T) {
	end := windowStart.Add(7 * 24 * time.Hour)
	events := []core.InteractionEvent{
		{ItemID: "X", Type: core.EventView, Timestamp: windowStart},                       // 含下界
		{ItemID: "X", Type: core.EventPurchase, Timestamp: end.Add(-time.Second)},         // 窗口内
		{ItemID: "X", Type: core.EventView, Timestamp: end},                               // 不含上界
		{ItemID: "X", Type: core.EventView, Timestamp: windowStart.Add(-time.Second)},     // 窗口前
		{ItemID: "Y", Type: core.EventFavorite, Timestamp: windowStart.Add(time.Hour)},    // 其他物品
		{ItemID: "X", Type: core.EventShare, Timestamp: windowStart.Add(2 * time.Hour)},   // share 单独计数
	}

	agg := &Aggregator{}
	counts := agg.AggregateItem(events, windowStart, end, "X")

	if counts.Views != 1 {
		t.Errorf("views = %d, want 1 (half-open window)", counts.Views)
	}
	if counts.Purchases != 1 {
		t.Errorf("purchases = %d, want 1", counts.Purchases)
	}
	if counts.Wishlists != 0 {
		t.Errorf("wishlists = %d, want 0", counts.Wishlists)
	}
	if counts.Shares != 1 {
		t.Errorf("shares = %d, want 1", counts.Shares)
	}

	byItem := agg.Aggregate(events, windowStart, end)
	if byItem["Y"].Wishlists != 1 {
		t.Errorf("item Y wishlists = %d, want 1", byItem["Y"].Wishlists)
	}
}

func TestTrendingScoreScenario(t *testing.T) {
	// X: view×100 + purchase×5，Y: view×100 + purchase×1 → trending(X) > trending(Y)
	at := windowStart.Add(time.Hour)
	var events []core.InteractionEvent
	events = append(events, eventsFor("X", core.EventView, 100, at)...)
	events = append(events, eventsFor("X", core.EventPurchase, 5, at)...)
	events = append(events, eventsFor("Y", core.EventView, 100, at)...)
	events = append(events, eventsFor("Y", core.EventPurchase, 1, at)...)

	agg := &Aggregator{}
	catalog := agg.TrendingCounts(events, windowStart.Add(24*time.Hour), 7*24*time.Hour)

	scoreX := agg.TrendingScore("X", catalog)
	scoreY := agg.TrendingScore("Y", catalog)

	if scoreX <= scoreY {
		t.Errorf("trending(X)=%v should exceed trending(Y)=%v", scoreX, scoreY)
	}
	for _, s := range []float64{scoreX, scoreY} {
		if s < 0 || s > 1 {
			t.Errorf("trending score %v out of [0,1]", s)
		}
	}

	// X 每项指标都是目录最大值 → (1*1 + 3*1 + 2*0) / 6
	want := (1.0 + 3.0) / 6.0
	if math.Abs(scoreX-want) > 1e-9 {
		t.Errorf("trending(X) = %v, want %v", scoreX, want)
	}
}

func TestPopularityScore(t *testing.T) {
	catalog := map[core.ItemID]Counts{
		"X": {Views: 50, Purchases: 10, Wishlists: 20},
		"Y": {Views: 100, Purchases: 5, Wishlists: 40},
	}

	agg := &Aggregator{}
	scoreX := agg.PopularityScore("X", catalog)

	// views 50/100 * 0.2 + purchases 10/10 * 0.5 + wishlists 20/40 * 0.3
	want := 0.5*0.2 + 1.0*0.5 + 0.5*0.3
	if math.Abs(scoreX-want) > 1e-9 {
		t.Errorf("popularity(X) = %v, want %v", scoreX, want)
	}

	if got := agg.PopularityScore("unknown", catalog); got != 0 {
		t.Errorf("popularity(unknown) = %v, want 0", got)
	}
}

func TestScoresWithZeroCatalogMax(t *testing.T) {
	// 全目录无购买：购买指标贡献 0，不产生 NaN
	catalog := map[core.ItemID]Counts{
		"X": {Views: 10},
		"Y": {Views: 5},
	}

	agg := &Aggregator{}
	pop := agg.PopularityScore("X", catalog)
	trend := agg.TrendingScore("X", catalog)

	for name, s := range map[string]float64{"popularity": pop, "trending": trend} {
		if math.IsNaN(s) {
			t.Errorf("%s score is NaN", name)
		}
		if s < 0 || s > 1 {
			t.Errorf("%s score %v out of [0,1]", name, s)
		}
	}
	if pop != 0.2 { // 仅 views 贡献，X 是最大值
		t.Errorf("popularity = %v, want 0.2", pop)
	}

	if got := agg.PopularityScore("X", map[core.ItemID]Counts{}); got != 0 {
		t.Errorf("popularity on empty catalog = %v, want 0", got)
	}
}

func TestEngagementScore(t *testing.T) {
	at := windowStart
	events := []core.InteractionEvent{
		{UserID: "u1", ItemID: "X", Type: core.EventView, Timestamp: at},
		{UserID: "u1", ItemID: "X", Type: core.EventPurchase, Timestamp: at},
		{UserID: "u1", ItemID: "Y", Type: core.EventShare, Timestamp: at},
		{UserID: "u2", ItemID: "X", Type: core.EventPurchase, Timestamp: at}, // 其他用户
		{UserID: "u1", ItemID: "Z", Type: core.EventFavorite, Timestamp: at.Add(-48 * time.Hour)}, // 窗口外
	}

	got := EngagementScore(events, "u1", at.Add(-time.Hour), EngagementWeights{})
	want := 1.0 + 5.0 + 4.0 // view + purchase + share
	if got != want {
		t.Errorf("EngagementScore = %v, want %v", got, want)
	}
}
