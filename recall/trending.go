package recall

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/pipeline"
	"github.com/glowteam/glowkit/pkg/utils"
)

// TrendingRecall 从 Store 读取趋势榜单作为候选。
// - 如果 Store 实现了 KeyValueStore，优先使用 ZRange（有序集合，按分数排序）
// - 否则从普通 key 读取 JSON 数组
// - 如果 Store 为空或读取失败，使用内存中的 IDs 作为 fallback
//
// 榜单由 signal.ActivityTracker 写入（trending:{kind} 有序集合）。
// TrendingRecall 同时实现了 Source 和 Node 接口。
type TrendingRecall struct {
	Store   core.Store
	Catalog core.CatalogStore

	// ContentKind 决定读取哪个榜单，默认 product
	ContentKind core.ContentKind

	// TopN 榜单截取长度，默认 100
	TopN int64

	// IDs fallback 内存列表
	IDs []core.ItemID
}

func (r *TrendingRecall) Name() string        { return "recall.trending" }
func (r *TrendingRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *TrendingRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *TrendingRecall) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	ids := r.loadIDs(ctx)
	if len(ids) == 0 {
		ids = r.IDs
	}
	if len(ids) == 0 {
		return nil, nil
	}

	// 解析目录快照，把 ID 还原为完整物品
	var snapshot *core.CatalogSnapshot
	if r.Catalog != nil {
		var err error
		snapshot, err = r.Catalog.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
	}

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		var it *core.Item
		if ci := snapshot.ByID(id); ci != nil {
			it = core.NewItem(ci)
		} else {
			// 榜单中的物品已下架/不在快照内时跳过
			continue
		}
		it.PutLabel("recall_source", utils.Label{Value: "trending", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

func (r *TrendingRecall) loadIDs(ctx context.Context) []core.ItemID {
	if r.Store == nil {
		return nil
	}

	kind := r.ContentKind
	if kind == "" {
		kind = core.ContentProduct
	}
	key := fmt.Sprintf("trending:%s", kind)

	topN := r.TopN
	if topN <= 0 {
		topN = 100
	}

	if kvStore, ok := r.Store.(core.KeyValueStore); ok {
		members, err := kvStore.ZRange(ctx, key, 0, topN-1)
		if err == nil && len(members) > 0 {
			ids := make([]core.ItemID, 0, len(members))
			for _, m := range members {
				ids = append(ids, core.ItemID(m))
			}
			return ids
		}
		return nil
	}

	// 普通 key：读取 JSON 数组
	data, err := r.Store.Get(ctx, key)
	if err != nil {
		return nil
	}
	var parsed []core.ItemID
	if json.Unmarshal(data, &parsed) != nil {
		return nil
	}
	return parsed
}
