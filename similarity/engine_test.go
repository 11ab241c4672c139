package similarity

import (
	"math"
	"testing"

	"github.com/glowteam/glowkit/core"
)

func testCatalog() []*core.CatalogItem {
	return []*core.CatalogItem{
		{
			ID:          "A",
			Category:    "serum",
			Brand:       "glowlab",
			Ingredients: []string{"vitaminC", "hydrating"},
			Attributes:  map[string]string{"skinType": "oily", "finish": "dewy"},
		},
		{
			ID:          "B",
			Category:    "serum",
			Brand:       "dermaline",
			Ingredients: []string{"vitaminC", "spf"},
			Attributes:  map[string]string{"skinType": "oily", "finish": "matte"},
		},
		{
			ID:          "C",
			Category:    "lipstick",
			Brand:       "rougebar",
			Ingredients: []string{"matte"},
			Attributes:  map[string]string{"finish": "matte", "coverage": "full"},
		},
	}
}

func TestSimilaritySymmetry(t *testing.T) {
	engine := &Engine{}
	items := testCatalog()

	for i := 0; i < len(items); i++ {
		for j := 0; j < len(items); j++ {
			if i == j {
				continue
			}
			ab := engine.Similarity(items[i], items[j])
			ba := engine.Similarity(items[j], items[i])
			if ab != ba {
				t.Errorf("similarity(%s,%s)=%v != similarity(%s,%s)=%v",
					items[i].ID, items[j].ID, ab, items[j].ID, items[i].ID, ba)
			}
			if ab < 0 || ab > 1 {
				t.Errorf("similarity(%s,%s)=%v out of [0,1]", items[i].ID, items[j].ID, ab)
			}
		}
	}
}

func TestSimilarityScenario(t *testing.T) {
	engine := &Engine{}
	items := testCatalog()
	a, b, c := items[0], items[1], items[2]

	simAB := engine.Similarity(a, b)
	simAC := engine.Similarity(a, c)

	if simAB <= simAC {
		t.Errorf("similarity(A,B)=%v should exceed similarity(A,C)=%v", simAB, simAC)
	}

	// A 与 C：类目不同、品牌不同、无标签交集、无属性完全匹配 → 接近 0
	if simAC > 0.05 {
		t.Errorf("similarity(A,C)=%v, want near 0", simAC)
	}

	// A 与 B：同类目 0.3 + 标签 Jaccard 1/3 * 0.3 + 属性 1/4 * 0.3
	want := 0.3 + 0.3*(1.0/3.0) + 0.3*0.25
	if math.Abs(simAB-want) > 1e-9 {
		t.Errorf("similarity(A,B)=%v, want %v", simAB, want)
	}
}

func TestSimilarityBrandlessItems(t *testing.T) {
	engine := &Engine{}
	a := &core.CatalogItem{ID: "a", Category: "serum", Ingredients: []string{"vitaminC", "hydrating"}}
	b := &core.CatalogItem{ID: "b", Category: "serum", Ingredients: []string{"vitaminC", "spf"}}
	c := &core.CatalogItem{ID: "c", Category: "lipstick", Ingredients: []string{"matte"}}

	// 两个空品牌不构成品牌匹配：A 与 C 类目不同、无标签交集 → 接近 0
	if got := engine.Similarity(a, c); got > 0.01 {
		t.Errorf("similarity(a,c)=%v, want near 0", got)
	}
	if simAB, simAC := engine.Similarity(a, b), engine.Similarity(a, c); simAB <= simAC {
		t.Errorf("similarity(a,b)=%v should exceed similarity(a,c)=%v", simAB, simAC)
	}

	// 两个无类目物品之间同理没有类目信号
	x := &core.CatalogItem{ID: "x", Ingredients: []string{"shea-butter"}}
	y := &core.CatalogItem{ID: "y", Ingredients: []string{"gold-extract"}}
	if got := engine.Similarity(x, y); got != 0 {
		t.Errorf("similarity(x,y)=%v, want 0", got)
	}
}

func TestSimilarityNilItems(t *testing.T) {
	engine := &Engine{}
	if got := engine.Similarity(nil, testCatalog()[0]); got != 0 {
		t.Errorf("similarity(nil, a)=%v, want 0", got)
	}
	if got := engine.Similarity(nil, nil); got != 0 {
		t.Errorf("similarity(nil, nil)=%v, want 0", got)
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 0},
		{"one empty", []string{"x"}, nil, 0},
		{"identical", []string{"x", "y"}, []string{"x", "y"}, 1},
		{"partial overlap", []string{"vitaminC", "hydrating"}, []string{"vitaminC", "spf"}, 1.0 / 3.0},
		{"disjoint", []string{"x"}, []string{"y"}, 0},
		{"duplicates ignored", []string{"x", "x", "y"}, []string{"x"}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Jaccard(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Jaccard(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAttributeMatch(t *testing.T) {
	a := map[string]string{"skinType": "oily", "concern": "acne", "finish": "matte", "coverage": "full"}
	b := map[string]string{"skinType": "oily", "concern": "acne", "finish": "matte", "coverage": "full"}
	if got := attributeMatch(a, b); got != 1 {
		t.Errorf("full match = %v, want 1", got)
	}

	c := map[string]string{"skinType": "dry"}
	if got := attributeMatch(a, c); got != 0 {
		t.Errorf("no match = %v, want 0", got)
	}

	// 双方都缺失的键不算匹配
	if got := attributeMatch(map[string]string{}, map[string]string{}); got != 0 {
		t.Errorf("empty attributes = %v, want 0", got)
	}
}
