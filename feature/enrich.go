// Package feature 提供结果注解类的后处理 Node。
package feature

import (
	"context"
	"fmt"
	"time"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/pipeline"
	"github.com/glowteam/glowkit/pkg/utils"
	"github.com/glowteam/glowkit/scoring"
)

// EnrichNode 是后处理节点，给最终结果补充可解释信息：
//   - Explain 开启时写出八因子明细标签（factor_* 系列），用于调试与"为什么推荐给我"
//   - Features 配置时把特征服务返回的物品统计写为标签
//
// 只注解不改分，跑在 TopN 截断之后，开销与返回条数成正比。
type EnrichNode struct {
	// Explain 写出因子明细标签，需要 rctx.Profile
	Explain bool

	// Engine 计算因子明细用；nil 时用默认权重引擎
	Engine *scoring.Engine

	// Features 可选的特征服务
	Features core.FeatureService
}

func (n *EnrichNode) Name() string        { return "feature.enrich" }
func (n *EnrichNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *EnrichNode) Process(
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

	var now time.Time
	if rctx != nil {
		now = rctx.Clock()
	} else {
		now = time.Now()
	}

	for _, it := range items {
		if it == nil || it.Catalog == nil {
			continue
		}

		if n.Explain && rctx != nil && rctx.Profile != nil {
			f := engine.ComputeFactors(it.Catalog, rctx.Profile, nil, now)
			putFactor(it, "factor_skin_type", f.SkinTypeMatch)
			putFactor(it, "factor_skin_tone", f.SkinToneMatch)
			putFactor(it, "factor_concerns", f.ConcernsMatch)
			putFactor(it, "factor_rating", f.Rating)
			putFactor(it, "factor_price", f.PricePointMatch)
			putFactor(it, "factor_brand", f.BrandAffinity)
		}

		if n.Features != nil {
			stats, err := n.Features.GetItemFeatures(ctx, string(it.ID))
			if err != nil {
				// 特征服务失败只影响注解，不影响结果
				continue
			}
			for k, v := range stats {
				it.PutLabel("stat_"+k, utils.Label{
					Value:  fmt.Sprintf("%v", v),
					Source: "feature",
				})
			}
		}
	}

	return items, nil
}

func putFactor(it *core.Item, key string, value float64) {
	it.PutLabel(key, utils.Label{
		Value:  fmt.Sprintf("%.3f", value),
		Source: "feature",
	})
}

var _ pipeline.Node = (*EnrichNode)(nil)
