package rank

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/pipeline"
	"github.com/glowteam/glowkit/pkg/utils"
	"github.com/glowteam/glowkit/scoring"
	"github.com/glowteam/glowkit/signal"
)

// FactorNode 用八因子模型为候选打个性化分数并排序。
// - 要求 rctx.Profile 非空，否则返回 MISSING_USER_CONTEXT
// - 写入 labels：rank_model=factor
// - 候选间相互独立，打分并发执行（只读共享画像与信号）
type FactorNode struct {
	Engine  *scoring.Engine
	Signals signal.Provider

	// Window 是热度因子的统计窗口，默认 7 天
	Window time.Duration

	// Parallelism 打分并发度，<= 0 时串行
	Parallelism int
}

func (n *FactorNode) Name() string        { return "rank.factor" }
func (n *FactorNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *FactorNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}
	if rctx == nil || rctx.Profile == nil {
		return nil, core.ErrMissingUserContext
	}

	engine := n.Engine
	if engine == nil {
		engine = &scoring.Engine{}
	}

	now := rctx.Clock()
	counts, err := n.windowCounts(ctx, now)
	if err != nil {
		return nil, err
	}

	if n.Parallelism > 1 {
		var eg errgroup.Group
		eg.SetLimit(n.Parallelism)
		for _, it := range items {
			it := it
			eg.Go(func() error {
				return scoreItem(engine, it, rctx.Profile, counts, now)
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for _, it := range items {
			if err := scoreItem(engine, it, rctx.Profile, counts, now); err != nil {
				return nil, err
			}
		}
	}

	SortByScore(items)
	return items, nil
}

func (n *FactorNode) windowCounts(ctx context.Context, now time.Time) (map[core.ItemID]signal.Counts, error) {
	if n.Signals == nil {
		return map[core.ItemID]signal.Counts{}, nil
	}
	window := n.Window
	if window <= 0 {
		window = signal.DefaultTrendingWindow
	}
	return n.Signals.WindowCounts(ctx, now, window)
}

func scoreItem(engine *scoring.Engine, it *core.Item, profile *core.UserProfile,
	counts map[core.ItemID]signal.Counts, now time.Time) error {
	if it == nil {
		return nil
	}
	score, err := engine.Score(it.Catalog, profile, counts, now)
	if err != nil {
		return err
	}
	it.Score = score
	it.PutLabel("rank_model", utils.Label{Value: "factor", Source: "rank"})
	return nil
}
