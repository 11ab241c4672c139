package similarity

import "github.com/glowteam/glowkit/core"

// Weights 是内容相似度四个子分数的权重，固定和为 1。
// 这些是经验常量（policy，不是 physics）：可在构造时覆盖，但不做运行时配置。
type Weights struct {
	Category   float64 // 类目相同
	Brand      float64 // 品牌相同
	Tags       float64 // 成分/标签 Jaccard
	Attributes float64 // 固定属性键完全匹配占比
}

// DefaultWeights 是默认的相似度权重。
var DefaultWeights = Weights{
	Category:   0.3,
	Brand:      0.1,
	Tags:       0.3,
	Attributes: 0.3,
}

// AttributeKeys 是参与属性匹配的固定键集合。
var AttributeKeys = []string{"skinType", "concern", "finish", "coverage"}

// Engine 计算两个目录物品之间的对称内容相似度 ∈ [0,1]。
// 无状态；矩阵缓存见 MatrixCache。
type Engine struct {
	// Weights 为零值时使用 DefaultWeights
	Weights Weights
}

func (e *Engine) weights() Weights {
	if e == nil {
		return DefaultWeights
	}
	w := e.Weights
	if w.Category == 0 && w.Brand == 0 && w.Tags == 0 && w.Attributes == 0 {
		return DefaultWeights
	}
	return w
}

// Similarity 计算 a、b 的相似度。对称：Similarity(a,b) == Similarity(b,a)。
// 任一方为 nil 返回 0。
func (e *Engine) Similarity(a, b *core.CatalogItem) float64 {
	if a == nil || b == nil {
		return 0
	}
	w := e.weights()

	var score float64
	// 空值不算匹配：两个无类目/无品牌的物品之间没有相似信号
	if a.Category != "" && a.Category == b.Category {
		score += w.Category
	}
	if a.Brand != "" && a.Brand == b.Brand {
		score += w.Brand
	}
	score += w.Tags * Jaccard(a.Ingredients, b.Ingredients)
	score += w.Attributes * attributeMatch(a.Attributes, b.Attributes)

	return score
}

// Jaccard 计算两个字符串集合的 |交集|/|并集|。
// 两个集合都为空时返回 0（不是 NaN）。
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := make(map[string]bool, len(a))
	for _, s := range a {
		setA[s] = true
	}

	union := len(setA)
	intersection := 0
	seenB := make(map[string]bool, len(b))
	for _, s := range b {
		if seenB[s] {
			continue
		}
		seenB[s] = true
		if setA[s] {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// attributeMatch 计算固定属性键集合中精确匹配的占比。
func attributeMatch(a, b map[string]string) float64 {
	matched := 0
	for _, key := range AttributeKeys {
		if a[key] == b[key] && a[key] != "" {
			matched++
		}
	}
	return float64(matched) / float64(len(AttributeKeys))
}
