package recall

import (
	"context"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/pipeline"
	"github.com/glowteam/glowkit/pkg/utils"
)

// CatalogRecall 从目录快照取全量候选。
// 美妆目录规模在千级，个性化打分可以覆盖全目录，无需近似召回。
// CatalogRecall 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type CatalogRecall struct {
	Catalog core.CatalogStore
}

func (r *CatalogRecall) Name() string        { return "recall.catalog" }
func (r *CatalogRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *CatalogRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *CatalogRecall) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Catalog == nil {
		return nil, nil
	}

	snapshot, err := r.Catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, snapshot.Len())
	for _, ci := range snapshot.Items {
		if ci == nil {
			continue
		}
		it := core.NewItem(ci)
		it.PutLabel("recall_source", utils.Label{Value: "catalog", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
