package filter

import (
	"context"
	"testing"

	"github.com/glowteam/glowkit/core"
)

func serumItem(id string, price float64) *core.Item {
	return core.NewItem(&core.CatalogItem{
		ID:       core.ItemID(id),
		Category: "serum",
		Brand:    "glowlab",
		Price:    price,
		Rating:   core.Rating{Average: 4.2, Count: 50},
	})
}

func TestHistoryFilter(t *testing.T) {
	purchased := &core.CatalogItem{ID: "serum-a"}
	favorited := &core.CatalogItem{ID: "serum-b"}
	viewed := &core.CatalogItem{ID: "serum-c"}
	rctx := &core.RecommendContext{
		Profile: &core.UserProfile{
			UserID:    "u1",
			Purchased: []*core.CatalogItem{purchased},
			Favorited: []*core.CatalogItem{favorited},
			Viewed:    []*core.CatalogItem{viewed},
		},
	}

	f := &HistoryFilter{}
	cases := []struct {
		id   string
		want bool
	}{
		{"serum-a", true},  // 已购买
		{"serum-b", true},  // 已收藏
		{"serum-c", false}, // 只浏览过，默认保留
		{"serum-d", false},
	}
	for _, c := range cases {
		got, err := f.ShouldFilter(context.Background(), rctx, serumItem(c.id, 20))
		if err != nil {
			t.Fatalf("ShouldFilter(%s): %v", c.id, err)
		}
		if got != c.want {
			t.Errorf("ShouldFilter(%s) = %v, want %v", c.id, got, c.want)
		}
	}

	viewFilter := &HistoryFilter{ExcludeViewed: true}
	got, _ := viewFilter.ShouldFilter(context.Background(), rctx, serumItem("serum-c", 20))
	if !got {
		t.Error("ExcludeViewed should filter viewed item")
	}
}

func TestHistoryFilterNoProfile(t *testing.T) {
	f := &HistoryFilter{}
	got, err := f.ShouldFilter(context.Background(), &core.RecommendContext{}, serumItem("serum-a", 20))
	if err != nil || got {
		t.Fatalf("ShouldFilter without profile = (%v, %v), want (false, nil)", got, err)
	}
}

func TestPriceBandFilter(t *testing.T) {
	rctx := &core.RecommendContext{
		Profile: &core.UserProfile{
			UserID:     "u1",
			PriceRange: core.PriceRange{Min: 10, Max: 50},
		},
	}

	f := &PriceBandFilter{Tolerance: 0.2}
	cases := []struct {
		price float64
		want  bool
	}{
		{30, false},
		{55, false}, // 50 * 1.2 = 60 以内
		{61, true},
		{7, true}, // 10 * 0.8 = 8 以下
	}
	for _, c := range cases {
		got, err := f.ShouldFilter(context.Background(), rctx, serumItem("x", c.price))
		if err != nil {
			t.Fatalf("ShouldFilter(price=%v): %v", c.price, err)
		}
		if got != c.want {
			t.Errorf("ShouldFilter(price=%v) = %v, want %v", c.price, got, c.want)
		}
	}
}

func TestRuleFilter(t *testing.T) {
	rctx := &core.RecommendContext{
		Profile: &core.UserProfile{
			UserID:     "u1",
			PriceRange: core.PriceRange{Min: 10, Max: 30},
		},
	}

	f := &RuleFilter{Expr: `item.price > profile.price_max * 2.0`}

	got, err := f.ShouldFilter(context.Background(), rctx, serumItem("pricey", 100))
	if err != nil {
		t.Fatalf("ShouldFilter: %v", err)
	}
	if !got {
		t.Error("item at 100 should be filtered by price_max*2 rule")
	}

	got, err = f.ShouldFilter(context.Background(), rctx, serumItem("fair", 25))
	if err != nil {
		t.Fatalf("ShouldFilter: %v", err)
	}
	if got {
		t.Error("item at 25 should pass price_max*2 rule")
	}
}

func TestFilterNodeLabelsFiltered(t *testing.T) {
	rctx := &core.RecommendContext{
		Profile: &core.UserProfile{
			UserID:    "u1",
			Purchased: []*core.CatalogItem{{ID: "serum-a"}},
		},
	}
	node := &FilterNode{Filters: []Filter{&HistoryFilter{}}}

	items := []*core.Item{serumItem("serum-a", 20), serumItem("serum-b", 20)}
	out, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 1 || out[0].ID != "serum-b" {
		t.Fatalf("Process = %v, want only serum-b", out)
	}
	if lbl, ok := items[0].Labels["filtered"]; !ok || lbl.Source != "filter.history" {
		t.Errorf("filtered label = %+v, want source filter.history", items[0].Labels["filtered"])
	}
}
