package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/glowteam/glowkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("profile", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是规则 DSL 解释器，使用 CEL (Common Expression Language) 实现。
// 运营侧的候选剔除/放行规则用它表达，无需发版。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：item.category == "lipstick" / item.brand != "glossia"
//   - 数值：item.price > 30.0 / item.score >= 0.5
//   - 逻辑：item.category == "serum" && item.price <= 80.0
//   - 标签：label.recall_source == "trending"
//   - 画像：profile.skin_type == "oily"
//
// 示例：
//   - `item.price > profile.price_max` → 超出用户价格带
//   - `label.recall_source == "trending" && item.score < 0.2` → 趋势低分候选
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的 DSL 解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行 DSL 表达式，返回布尔结果。
// 空表达式视为恒真。访问不存在的 key 会报错，
// 存在性检查请使用 label.key != null。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		env, err := getCELEnv()
		if err != nil {
			return false, fmt.Errorf("cel env: %w", err)
		}
		e.env = env
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %w", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %w", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]interface{} {
	item := map[string]interface{}{
		"id":    string(e.item.ID),
		"score": e.item.Score,
	}
	if c := e.item.Catalog; c != nil {
		item["category"] = c.Category
		item["brand"] = c.Brand
		item["price"] = c.Price
		item["rating_average"] = c.Rating.Average
		item["rating_count"] = c.Rating.Count
	}

	// label.recall_source 直接返回 value，便于短表达式
	labelAccessor := make(map[string]interface{}, len(e.item.Labels))
	for k, v := range e.item.Labels {
		labelAccessor[k] = v.Value
	}

	profile := map[string]interface{}{}
	if e.rctx != nil && e.rctx.Profile != nil {
		p := e.rctx.Profile
		profile = map[string]interface{}{
			"user_id":   p.UserID,
			"skin_type": p.SkinType,
			"skin_tone": p.SkinTone,
			"undertone": p.Undertone,
			"concerns":  p.Concerns,
			"price_min": p.PriceRange.Min,
			"price_max": p.PriceRange.Max,
		}
	}

	return map[string]interface{}{
		"item":    item,
		"label":   labelAccessor,
		"profile": profile,
	}
}
