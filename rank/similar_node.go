package rank

import (
	"context"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/pipeline"
	"github.com/glowteam/glowkit/pkg/utils"
	"github.com/glowteam/glowkit/scoring"
)

// SimilarNode 按与基准物品的相似度排序，服务 similar-to-item 场景。
// 基准物品从 rctx.Params["base_item"] 读取，支持 *core.CatalogItem、
// core.ItemID 与 string（后两者经 Catalog 解析）。基准物品本身从候选中剔除。
type SimilarNode struct {
	Engine  *scoring.Engine
	Catalog core.CatalogStore
}

func (n *SimilarNode) Name() string        { return "rank.similar" }
func (n *SimilarNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SimilarNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	base, err := n.baseItem(ctx, rctx)
	if err != nil {
		return nil, err
	}

	engine := n.Engine
	if engine == nil {
		engine = &scoring.Engine{}
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || it.ID == base.ID {
			continue
		}
		it.Score = engine.SimilarityRank(base, it.Catalog)
		it.PutLabel("rank_model", utils.Label{Value: "similar", Source: "rank"})
		out = append(out, it)
	}

	SortByScore(out)
	return out, nil
}

func (n *SimilarNode) baseItem(ctx context.Context, rctx *core.RecommendContext) (*core.CatalogItem, error) {
	v, ok := rctx.Param("base_item")
	if !ok {
		return nil, &core.DomainError{
			Module:  core.ModuleService,
			Code:    core.ErrorCodeNotFound,
			Message: "similar rank: base_item param is required",
		}
	}

	var id core.ItemID
	switch b := v.(type) {
	case *core.CatalogItem:
		if b != nil {
			return b, nil
		}
		return nil, &core.DomainError{
			Module:  core.ModuleService,
			Code:    core.ErrorCodeNotFound,
			Message: "similar rank: base_item is nil",
		}
	case core.ItemID:
		id = b
	case string:
		id = core.ItemID(b)
	default:
		return nil, &core.DomainError{
			Module:  core.ModuleService,
			Code:    core.ErrorCodeNotFound,
			Message: "similar rank: unsupported base_item type",
		}
	}

	if n.Catalog == nil {
		return nil, &core.DomainError{
			Module:  core.ModuleService,
			Code:    core.ErrorCodeNotFound,
			Message: "similar rank: no catalog to resolve base_item " + string(id),
		}
	}
	snapshot, err := n.Catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	base := snapshot.ByID(id)
	if base == nil {
		return nil, &core.DomainError{
			Module:  core.ModuleService,
			Code:    core.ErrorCodeNotFound,
			Message: "similar rank: base_item " + string(id) + " not in catalog",
		}
	}
	return base, nil
}
