package rank

import (
	"context"
	"time"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/pipeline"
	"github.com/glowteam/glowkit/pkg/utils"
	"github.com/glowteam/glowkit/scoring"
	"github.com/glowteam/glowkit/signal"
)

// TrendingNode 仅按趋势信号排序，不依赖用户画像，匿名可用。
// rctx.Params["trending_window"]（time.Duration / 秒数）可覆盖默认窗口。
type TrendingNode struct {
	Engine  *scoring.Engine
	Signals signal.Provider

	// Window 默认滚动窗口，Params 未给出时生效
	Window time.Duration
}

func (n *TrendingNode) Name() string        { return "rank.trending" }
func (n *TrendingNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *TrendingNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	engine := n.Engine
	if engine == nil {
		engine = &scoring.Engine{}
	}

	counts := map[core.ItemID]signal.Counts{}
	if n.Signals != nil {
		var err error
		counts, err = n.Signals.WindowCounts(ctx, rctx.Clock(), n.window(rctx))
		if err != nil {
			return nil, err
		}
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		it.Score = engine.TrendingRank(it.ID, counts)
		it.PutLabel("rank_model", utils.Label{Value: "trending", Source: "rank"})
	}

	SortByScore(items)
	return items, nil
}

func (n *TrendingNode) window(rctx *core.RecommendContext) time.Duration {
	if v, ok := rctx.Param("trending_window"); ok {
		switch w := v.(type) {
		case time.Duration:
			if w > 0 {
				return w
			}
		case int:
			if w > 0 {
				return time.Duration(w) * time.Second
			}
		case float64:
			if w > 0 {
				return time.Duration(w * float64(time.Second))
			}
		}
	}
	if n.Window > 0 {
		return n.Window
	}
	return signal.DefaultTrendingWindow
}
