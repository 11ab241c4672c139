package recall

import (
	"context"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/pipeline"
	"github.com/glowteam/glowkit/pkg/utils"
)

// ContentRecall 把混排内容流展开为商品候选：
//   - product 变体直接进入候选
//   - look 变体展开为妆容引用的商品（经目录快照解析，已下架的跳过）
//   - artist 变体按专长召回：物品类目命中化妆师专长即成为候选
//
// 同一商品可能被多个变体引用（自身 + 某个妆容），内部去重，保留首次来源。
// ContentRecall 同时实现了 Source 和 Node 接口。
type ContentRecall struct {
	Catalog core.CatalogStore

	// Contents 是待展开的内容流，由编辑精选/关注流等上游提供
	Contents []core.Content
}

func (r *ContentRecall) Name() string        { return "recall.content" }
func (r *ContentRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *ContentRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *ContentRecall) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if len(r.Contents) == 0 {
		return nil, nil
	}

	var snapshot *core.CatalogSnapshot
	if r.Catalog != nil {
		var err error
		snapshot, err = r.Catalog.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[core.ItemID]bool)
	var out []*core.Item

	for _, c := range r.Contents {
		switch c.Kind {
		case core.ContentProduct:
			if c.Product != nil {
				out = appendProduct(out, seen, c.Product, core.ContentProduct)
			}
		case core.ContentLook:
			if c.Look == nil {
				continue
			}
			for _, id := range c.Look.Products {
				if ci := snapshot.ByID(id); ci != nil {
					out = appendProduct(out, seen, ci, core.ContentLook)
				}
			}
		case core.ContentArtist:
			if c.Artist == nil || snapshot == nil {
				continue
			}
			for _, ci := range snapshot.Items {
				if ci != nil && matchesSpecialty(ci, c.Artist.Specialties) {
					out = appendProduct(out, seen, ci, core.ContentArtist)
				}
			}
		}
	}
	return out, nil
}

func appendProduct(out []*core.Item, seen map[core.ItemID]bool,
	ci *core.CatalogItem, via core.ContentKind) []*core.Item {
	if seen[ci.ID] {
		return out
	}
	seen[ci.ID] = true

	it := core.NewItem(ci)
	it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
	it.PutLabel("content_kind", utils.Label{Value: string(via), Source: "recall"})
	return append(out, it)
}

func matchesSpecialty(ci *core.CatalogItem, specialties []string) bool {
	for _, s := range specialties {
		if s != "" && s == ci.Category {
			return true
		}
	}
	return false
}

var (
	_ Source        = (*ContentRecall)(nil)
	_ pipeline.Node = (*ContentRecall)(nil)
)
