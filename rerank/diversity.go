package rerank

import (
	"context"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/pipeline"
)

// Diversity 限制同一类目在结果中的出现次数，避免首屏被单一品类刷满。
// 类目优先取 Catalog.Category，缺省时回退 label["category"].Value。
// 被挤掉的高分物品直接丢弃，不做回填。
type Diversity struct {
	// MaxPerCategory 每个类目最多保留的物品数，<= 0 时默认 1
	MaxPerCategory int

	LabelKey string // 默认 "category"
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	max := n.MaxPerCategory
	if max <= 0 {
		max = 1
	}
	key := n.LabelKey
	if key == "" {
		key = "category"
	}

	seen := make(map[string]int, 32)
	out := make([]*core.Item, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}

		cate := ""
		if it.Catalog != nil {
			cate = it.Catalog.Category
		}
		if cate == "" && it.Labels != nil {
			if lbl, ok := it.Labels[key]; ok {
				cate = lbl.Value
			}
		}

		if cate == "" {
			out = append(out, it)
			continue
		}
		if seen[cate] >= max {
			continue
		}
		seen[cate]++
		out = append(out, it)
	}

	return out, nil
}

var _ pipeline.Node = (*Diversity)(nil)
