package rank

import (
	"context"
	"testing"
	"time"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/signal"
)

type staticSignals struct {
	counts map[core.ItemID]signal.Counts
}

func (s *staticSignals) WindowCounts(_ context.Context, _ time.Time, _ time.Duration) (map[core.ItemID]signal.Counts, error) {
	return s.counts, nil
}

type staticCatalog struct {
	items []*core.CatalogItem
}

func (s *staticCatalog) Name() string { return "static" }

func (s *staticCatalog) Snapshot(_ context.Context) (*core.CatalogSnapshot, error) {
	return core.NewCatalogSnapshot("v1", s.items), nil
}

func catalogItem(id, category string, skinTypes []string) *core.CatalogItem {
	return &core.CatalogItem{
		ID:                core.ItemID(id),
		Category:          category,
		Brand:             "glowlab",
		Price:             20,
		Rating:            core.Rating{Average: 4, Count: 80},
		SuitableSkinTypes: skinTypes,
	}
}

func TestSortByScoreTieBreak(t *testing.T) {
	items := []*core.Item{
		{ID: "c", Score: 0.5},
		{ID: "a", Score: 0.5},
		{ID: "b", Score: 0.9},
	}
	SortByScore(items)

	want := []core.ItemID{"b", "a", "c"}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, items[i].ID, id)
		}
	}
}

func TestFactorNodeRequiresProfile(t *testing.T) {
	node := &FactorNode{}
	items := []*core.Item{core.NewItem(catalogItem("a", "serum", nil))}

	_, err := node.Process(context.Background(), &core.RecommendContext{}, items)
	if !core.IsMissingUserContext(err) {
		t.Fatalf("Process without profile err = %v, want MISSING_USER_CONTEXT", err)
	}
}

func TestFactorNodeScoresAndSorts(t *testing.T) {
	node := &FactorNode{Parallelism: 4}
	rctx := &core.RecommendContext{
		Profile: &core.UserProfile{UserID: "u1", SkinType: "oily"},
		Now:     time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	items := []*core.Item{
		core.NewItem(catalogItem("miss", "serum", []string{"dry"})),
		core.NewItem(catalogItem("hit", "serum", []string{"oily"})),
	}

	out, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out[0].ID != "hit" {
		t.Fatalf("top item = %s, want hit (skin type match)", out[0].ID)
	}
	for _, it := range out {
		if it.Score < 0 || it.Score > 1 {
			t.Errorf("item %s score %v out of [0,1]", it.ID, it.Score)
		}
		if lbl, ok := it.Labels["rank_model"]; !ok || lbl.Value != "factor" {
			t.Errorf("item %s rank_model label = %+v", it.ID, it.Labels["rank_model"])
		}
	}
}

func TestTrendingNodeRanksBySignals(t *testing.T) {
	node := &TrendingNode{
		Signals: &staticSignals{counts: map[core.ItemID]signal.Counts{
			"hot":  {Views: 100, Purchases: 5},
			"warm": {Views: 100, Purchases: 1},
		}},
	}
	rctx := &core.RecommendContext{Now: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)}
	items := []*core.Item{
		core.NewItem(catalogItem("warm", "serum", nil)),
		core.NewItem(catalogItem("hot", "serum", nil)),
	}

	out, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out[0].ID != "hot" || out[1].ID != "warm" {
		t.Fatalf("order = [%s %s], want [hot warm]", out[0].ID, out[1].ID)
	}
	// 无画像也能跑通是趋势场景的契约
}

func TestSimilarNodeExcludesBaseAndSorts(t *testing.T) {
	base := catalogItem("base", "serum", []string{"oily"})
	twin := catalogItem("twin", "serum", []string{"oily"})
	other := catalogItem("other", "lipstick", []string{"dry"})
	other.Brand = "velvetco"

	node := &SimilarNode{
		Catalog: &staticCatalog{items: []*core.CatalogItem{base, twin, other}},
	}
	rctx := &core.RecommendContext{Params: map[string]any{"base_item": "base"}}
	items := []*core.Item{core.NewItem(base), core.NewItem(twin), core.NewItem(other)}

	out, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d items, want 2 (base excluded)", len(out))
	}
	if out[0].ID != "twin" {
		t.Fatalf("top item = %s, want twin", out[0].ID)
	}
}

func TestSimilarNodeMissingBaseParam(t *testing.T) {
	node := &SimilarNode{Catalog: &staticCatalog{}}
	_, err := node.Process(context.Background(), &core.RecommendContext{},
		[]*core.Item{core.NewItem(catalogItem("a", "serum", nil))})
	if !core.IsNotFound(err) {
		t.Fatalf("Process without base_item err = %v, want NOT_FOUND", err)
	}
}
