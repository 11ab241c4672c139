package filter

import (
	"context"

	"github.com/glowteam/glowkit/core"
)

// HistoryFilter 过滤掉用户已购买或已收藏的物品。
// 不变式：已在购买/收藏历史中的物品永远不会再次作为推荐出现。
// 浏览历史默认不过滤（看过不等于不想要），可通过 ExcludeViewed 开启。
type HistoryFilter struct {
	// ExcludeViewed 为 true 时连同浏览历史一起过滤
	ExcludeViewed bool
}

func (f *HistoryFilter) Name() string {
	return "filter.history"
}

func (f *HistoryFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || rctx == nil || rctx.Profile == nil {
		return false, nil
	}

	profile := rctx.Profile
	if profile.HasPurchased(item.ID) || profile.HasFavorited(item.ID) {
		return true, nil
	}
	if f.ExcludeViewed {
		for _, it := range profile.Viewed {
			if it != nil && it.ID == item.ID {
				return true, nil
			}
		}
	}
	return false, nil
}
