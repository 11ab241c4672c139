package rank

import (
	"context"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/pipeline"
	"github.com/glowteam/glowkit/pkg/utils"
	"github.com/glowteam/glowkit/scoring"
	"github.com/glowteam/glowkit/similarity"
)

// DefaultAffinityWeight 历史亲和度在融合分中的默认占比。
const DefaultAffinityWeight = 0.2

// AffinityNode 在因子分之上融合"与用户历史的内容亲和度"：
// 融合分 = (1-w)·因子分 + w·亲和度，两者都在 [0,1]，融合后仍在 [0,1]。
// 矩阵不可用时跳过融合并打标，不让可选增强拖垮整个请求。
type AffinityNode struct {
	Matrix *similarity.MatrixCache

	// Weight 亲和度占比，<= 0 时取 DefaultAffinityWeight
	Weight float64
}

func (n *AffinityNode) Name() string        { return "rank.affinity" }
func (n *AffinityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *AffinityNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 || n.Matrix == nil {
		return items, nil
	}
	if rctx == nil || rctx.Profile == nil {
		return items, nil
	}
	profile := rctx.Profile
	if len(profile.Purchased) == 0 && len(profile.Viewed) == 0 && len(profile.Favorited) == 0 {
		return items, nil
	}

	matrix, stale, err := n.Matrix.GetOrBuild(ctx)
	if err != nil {
		rctx.PutLabel("history_affinity", utils.Label{Value: "unavailable", Source: "rank"})
		return items, nil
	}
	if stale {
		rctx.PutLabel("matrix", utils.Label{Value: "stale", Source: "rank"})
	}

	w := n.Weight
	if w <= 0 {
		w = DefaultAffinityWeight
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		affinity := scoring.HistoryAffinity(it.ID, profile, matrix)
		it.Score = (1-w)*it.Score + w*affinity
	}

	SortByScore(items)
	return items, nil
}
