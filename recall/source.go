package recall

import (
	"context"

	"github.com/glowteam/glowkit/core"
)

// Source 表示一个可复用的候选源（全目录/趋势榜单/...）。
// 可以把它理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
