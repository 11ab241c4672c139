package rank

import (
	"context"
	"testing"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/similarity"
)

func TestAffinityNodeBoostsHistoryNeighbors(t *testing.T) {
	fav := catalogItem("fav-serum", "serum", []string{"oily"})
	fav.Ingredients = []string{"vitaminC", "hydrating"}
	neighbor := catalogItem("neighbor-serum", "serum", []string{"oily"})
	neighbor.Ingredients = []string{"vitaminC", "hydrating"}
	stranger := catalogItem("stranger-lipstick", "lipstick", nil)
	stranger.Brand = "velvetco"
	stranger.Ingredients = []string{"matte"}

	catalog := &staticCatalog{items: []*core.CatalogItem{fav, neighbor, stranger}}
	node := &AffinityNode{
		Matrix: similarity.NewMatrixCache(nil, catalog, 0),
		Weight: 0.5,
	}

	rctx := &core.RecommendContext{
		Profile: &core.UserProfile{
			UserID:    "u1",
			Favorited: []*core.CatalogItem{fav},
		},
	}

	// 两个候选因子分相同，亲和度融合后应由历史邻近度决定顺序
	items := []*core.Item{
		{ID: stranger.ID, Catalog: stranger, Score: 0.5},
		{ID: neighbor.ID, Catalog: neighbor, Score: 0.5},
	}

	out, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out[0].ID != "neighbor-serum" {
		t.Fatalf("top item = %s, want neighbor-serum", out[0].ID)
	}
	if out[0].Score <= out[1].Score {
		t.Fatalf("neighbor score %v not above stranger %v", out[0].Score, out[1].Score)
	}
	for _, it := range out {
		if it.Score < 0 || it.Score > 1 {
			t.Errorf("item %s score %v out of [0,1]", it.ID, it.Score)
		}
	}
}

func TestAffinityNodeNoHistoryNoop(t *testing.T) {
	catalog := &staticCatalog{items: []*core.CatalogItem{catalogItem("a", "serum", nil)}}
	node := &AffinityNode{Matrix: similarity.NewMatrixCache(nil, catalog, 0)}

	rctx := &core.RecommendContext{Profile: &core.UserProfile{UserID: "u1"}}
	items := []*core.Item{{ID: "a", Score: 0.7}}

	out, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out[0].Score != 0.7 {
		t.Fatalf("score changed to %v without history", out[0].Score)
	}
	if node.Matrix.Builds() != 0 {
		t.Fatalf("matrix built despite empty history")
	}
}
