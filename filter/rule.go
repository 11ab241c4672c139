package filter

import (
	"context"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/pkg/dsl"
)

// RuleFilter 用 CEL 表达式做规则过滤，运营配置即生效，无需发版。
// 表达式返回 true 表示过滤该物品。
//
// 示例：
//   - `item.price > profile.price_max * 2.0` → 远超预算
//   - `label.recall_source == "trending" && item.rating_count < 10` → 低置信趋势品
type RuleFilter struct {
	// Expr 是 CEL 表达式；为空时不过滤任何物品
	Expr string
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}

	eval := dsl.NewEval(item, rctx)
	matched, err := eval.Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return matched, nil
}
