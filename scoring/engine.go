// Package scoring 把用户画像、物品与聚合信号融合为单一推荐分数。
//
// 八因子固定权重模型：权重是经验常量（policy，不是 physics），
// 保持可覆盖但不可运行时配置。所有因子先归一到 [0,1]，加权后仍在 [0,1]。
package scoring

import (
	"math"
	"time"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/pkg/mathx"
	"github.com/glowteam/glowkit/signal"
	"github.com/glowteam/glowkit/similarity"
)

// FactorWeights 是八因子的固定权重，和为 1。
type FactorWeights struct {
	SkinType      float64
	SkinTone      float64
	Concerns      float64
	Rating        float64
	Popularity    float64
	Seasonality   float64
	PricePoint    float64
	BrandAffinity float64
}

// DefaultFactorWeights 默认八因子权重。
var DefaultFactorWeights = FactorWeights{
	SkinType:      0.25,
	SkinTone:      0.25,
	Concerns:      0.20,
	Rating:        0.10,
	Popularity:    0.05,
	Seasonality:   0.05,
	PricePoint:    0.05,
	BrandAffinity: 0.05,
}

// SimilarityRankWeights 是 similar-to-item 查询的六分量权重，和为 1。
type SimilarityRankWeights struct {
	Category    float64
	Brand       float64
	Price       float64
	Benefits    float64
	Ingredients float64
	SkinTypes   float64
}

// DefaultSimilarityRankWeights 默认六分量权重。
var DefaultSimilarityRankWeights = SimilarityRankWeights{
	Category:    0.3,
	Brand:       0.1,
	Price:       0.1,
	Benefits:    0.2,
	Ingredients: 0.2,
	SkinTypes:   0.1,
}

// Factors 是一次打分的因子明细，可用于 explain。
type Factors struct {
	SkinTypeMatch   float64
	SkinToneMatch   float64
	ConcernsMatch   float64
	Rating          float64
	Popularity      float64
	Seasonality     float64
	PricePointMatch float64
	BrandAffinity   float64
}

// Engine 是打分引擎。无状态，可并发使用。
type Engine struct {
	// Weights 零值时使用 DefaultFactorWeights
	Weights FactorWeights

	// SimilarWeights 零值时使用 DefaultSimilarityRankWeights
	SimilarWeights SimilarityRankWeights

	// Aggregator 提供热度/趋势分数；nil 时使用默认权重的聚合器
	Aggregator *signal.Aggregator
}

func (e *Engine) weights() FactorWeights {
	if e.Weights == (FactorWeights{}) {
		return DefaultFactorWeights
	}
	return e.Weights
}

func (e *Engine) similarWeights() SimilarityRankWeights {
	if e.SimilarWeights == (SimilarityRankWeights{}) {
		return DefaultSimilarityRankWeights
	}
	return e.SimilarWeights
}

func (e *Engine) aggregator() *signal.Aggregator {
	if e.Aggregator != nil {
		return e.Aggregator
	}
	return &signal.Aggregator{}
}

// Score 计算物品对用户的个性化推荐分数 ∈ [0,1]。
// profile 为 nil 返回 MISSING_USER_CONTEXT。
func (e *Engine) Score(item *core.CatalogItem, profile *core.UserProfile,
	catalog map[core.ItemID]signal.Counts, now time.Time) (float64, error) {
	if profile == nil {
		return 0, core.ErrMissingUserContext
	}
	if item == nil {
		return 0, nil
	}

	f := e.ComputeFactors(item, profile, catalog, now)
	w := e.weights()

	score, err := mathx.WeightedAverage(
		[]float64{
			f.SkinTypeMatch, f.SkinToneMatch, f.ConcernsMatch, f.Rating,
			f.Popularity, f.Seasonality, f.PricePointMatch, f.BrandAffinity,
		},
		[]float64{
			w.SkinType, w.SkinTone, w.Concerns, w.Rating,
			w.Popularity, w.Seasonality, w.PricePoint, w.BrandAffinity,
		},
	)
	if err != nil {
		return 0, err
	}
	return mathx.Clamp(score, 0, 1), nil
}

// ComputeFactors 计算八因子明细。
func (e *Engine) ComputeFactors(item *core.CatalogItem, profile *core.UserProfile,
	catalog map[core.ItemID]signal.Counts, now time.Time) Factors {
	return Factors{
		SkinTypeMatch:   skinTypeMatch(item, profile),
		SkinToneMatch:   skinToneMatch(item, profile),
		ConcernsMatch:   concernsMatch(item, profile),
		Rating:          mathx.WilsonLowerBound(item.Rating.Average/5, item.Rating.Count, mathx.DefaultZ),
		Popularity:      e.aggregator().PopularityScore(item.ID, catalog),
		Seasonality:     seasonality(item, now),
		PricePointMatch: pricePointMatch(item.Price, profile.PriceRange),
		BrandAffinity:   brandAffinity(item, profile),
	}
}

// TrendingRank 计算 trending-now 查询的排序分数：只看趋势信号。
func (e *Engine) TrendingRank(itemID core.ItemID, catalog map[core.ItemID]signal.Counts) float64 {
	return e.aggregator().TrendingScore(itemID, catalog)
}

// SimilarityRank 计算 similar-to-item 查询的排序分数 ∈ [0,1]。
// 与矩阵相似度不同，额外纳入价格接近度与适配肤质重合度。
func (e *Engine) SimilarityRank(base, candidate *core.CatalogItem) float64 {
	if base == nil || candidate == nil {
		return 0
	}
	w := e.similarWeights()

	var score float64
	// 空值不算匹配（同 similarity.Engine）
	if base.Category != "" && base.Category == candidate.Category {
		score += w.Category
	}
	if base.Brand != "" && base.Brand == candidate.Brand {
		score += w.Brand
	}
	score += w.Price * priceCloseness(base.Price, candidate.Price)
	score += w.Benefits * similarity.Jaccard(base.Benefits, candidate.Benefits)
	score += w.Ingredients * similarity.Jaccard(base.Ingredients, candidate.Ingredients)
	score += w.SkinTypes * similarity.Jaccard(base.SuitableSkinTypes, candidate.SuitableSkinTypes)

	return score
}

// HistoryAffinity 计算候选物品与用户历史的平均相似度加权和 ∈ [0,1]。
// 收藏 0.5 / 购买 0.3 / 浏览 0.2；空历史类贡献 0。辅助排序信号，
// 不参与八因子求和。
func HistoryAffinity(candidate core.ItemID, profile *core.UserProfile, matrix *similarity.Matrix) float64 {
	if profile == nil || matrix == nil {
		return 0
	}
	return 0.5*meanSimilarity(candidate, profile.Favorited, matrix) +
		0.3*meanSimilarity(candidate, profile.Purchased, matrix) +
		0.2*meanSimilarity(candidate, profile.Viewed, matrix)
}

func meanSimilarity(candidate core.ItemID, history []*core.CatalogItem, matrix *similarity.Matrix) float64 {
	if len(history) == 0 {
		return 0
	}
	var sum float64
	n := 0
	for _, it := range history {
		if it == nil {
			continue
		}
		sum += matrix.Get(candidate, it.ID)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func skinTypeMatch(item *core.CatalogItem, profile *core.UserProfile) float64 {
	if profile.SkinType != "" && item.SupportsSkinType(profile.SkinType) {
		return 1
	}
	return 0
}

func skinToneMatch(item *core.CatalogItem, profile *core.UserProfile) float64 {
	toneMatch := profile.SkinTone != "" && item.SupportsSkinTone(profile.SkinTone)
	undertoneMatch := profile.Undertone != "" && item.SupportsUndertone(profile.Undertone)
	switch {
	case toneMatch && undertoneMatch:
		return 1
	case toneMatch:
		return 0.5
	default:
		return 0
	}
}

func concernsMatch(item *core.CatalogItem, profile *core.UserProfile) float64 {
	if len(profile.Concerns) == 0 {
		return 0
	}
	benefits := make(map[string]bool, len(item.Benefits))
	for _, b := range item.Benefits {
		benefits[b] = true
	}
	matched := 0
	for _, c := range profile.Concerns {
		if benefits[c] {
			matched++
		}
	}
	return float64(matched) / float64(len(profile.Concerns))
}

func seasonality(item *core.CatalogItem, now time.Time) float64 {
	month := int(now.Month()) - 1
	return mathx.Clamp(item.Seasonality[month]/100, 0, 1)
}

// pricePointMatch：区间内 1；区间外按到最近边界的距离衰减，下限 0。
func pricePointMatch(price float64, priceRange core.PriceRange) float64 {
	if priceRange.Max <= 0 && priceRange.Min <= 0 {
		// 未设置价格偏好时不惩罚
		return 1
	}
	if priceRange.Contains(price) {
		return 1
	}
	if priceRange.Max <= 0 {
		return 0
	}

	distance := math.Min(
		math.Abs(price-priceRange.Min),
		math.Abs(price-priceRange.Max),
	)
	return math.Max(0, 1-distance/priceRange.Max)
}

func brandAffinity(item *core.CatalogItem, profile *core.UserProfile) float64 {
	if item.Brand == "" {
		return 0
	}
	if profile.PurchasedBrands()[item.Brand] {
		return 1
	}
	if profile.ViewedBrands()[item.Brand] {
		return 0.5
	}
	return 0
}

func priceCloseness(a, b float64) float64 {
	max := math.Max(a, b)
	if max == 0 {
		// 两侧都是 0 价（赠品等），视为完全接近
		return 1
	}
	return 1 - math.Abs(a-b)/max
}
