package filter

import (
	"context"

	"github.com/glowteam/glowkit/core"
)

// PriceBandFilter 按用户价格区间做硬过滤。
// 与打分里的 pricePointMatch（软惩罚）互补：预算敏感场景直接剔除区间外物品。
// Tolerance 允许超出区间的相对比例，例如 0.2 表示放宽 20%。
type PriceBandFilter struct {
	Tolerance float64
}

func (f *PriceBandFilter) Name() string {
	return "filter.price_band"
}

func (f *PriceBandFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Catalog == nil || rctx == nil || rctx.Profile == nil {
		return false, nil
	}

	priceRange := rctx.Profile.PriceRange
	if priceRange.Min <= 0 && priceRange.Max <= 0 {
		// 未设置价格偏好
		return false, nil
	}

	min := priceRange.Min * (1 - f.Tolerance)
	max := priceRange.Max * (1 + f.Tolerance)
	price := item.Catalog.Price
	return price < min || price > max, nil
}
