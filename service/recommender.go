// Package service 把召回/过滤/排序/重排组装为三种推荐查询：
// 个性化（personalized）、趋势（trending）、相似（similar）。
//
// 请求之间无共享可变状态，唯一例外是注入的相似度矩阵缓存
// （similarity.MatrixCache），其生命周期由 Recommender 持有。
package service

import (
	"context"
	"time"

	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/filter"
	"github.com/glowteam/glowkit/pipeline"
	"github.com/glowteam/glowkit/rank"
	"github.com/glowteam/glowkit/recall"
	"github.com/glowteam/glowkit/rerank"
	"github.com/glowteam/glowkit/scoring"
	"github.com/glowteam/glowkit/signal"
	"github.com/glowteam/glowkit/similarity"
)

// DefaultLimit 是结果条数的默认上限。
const DefaultLimit = 10

// Recommender 是推荐服务入口。除 Catalog 外的依赖都是可选的：
// 缺 Signals 时热度/趋势因子记 0，缺 Matrix 时不做历史亲和度融合，
// 缺 Store 时趋势查询直接对全目录排序。
type Recommender struct {
	Catalog  core.CatalogStore
	Store    core.KeyValueStore   // 趋势榜单召回
	Profiles core.ProfileProvider // userID -> 画像
	Signals  signal.Provider
	Scoring  *scoring.Engine
	Matrix   *similarity.MatrixCache

	// AffinityWeight 历史亲和度融合占比，<= 0 时用 rank.DefaultAffinityWeight
	AffinityWeight float64

	// Limit 默认返回条数，<= 0 时用 DefaultLimit
	Limit int

	// Now 逻辑时钟，测试/回放用；nil 时取 time.Now
	Now func() time.Time
}

// NewRecommender 创建推荐服务，并持有一个目录相似度矩阵缓存。
func NewRecommender(catalog core.CatalogStore) *Recommender {
	return &Recommender{
		Catalog: catalog,
		Scoring: &scoring.Engine{},
		Matrix:  similarity.NewMatrixCache(nil, catalog, 0),
	}
}

// Personalized 返回按八因子模型排序的个性化推荐。
// - profile 为 nil 返回 MISSING_USER_CONTEXT
// - 已购买/已收藏的物品永远不会出现在结果里
// - 分数相同按物品 ID 升序，重复调用返回完全一致的顺序
func (r *Recommender) Personalized(ctx context.Context, profile *core.UserProfile, limit int) ([]*core.Item, error) {
	if profile == nil {
		return nil, core.ErrMissingUserContext
	}

	rctx := r.newContext(profile.UserID, "personalized")
	rctx.Profile = profile

	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		&recall.CatalogRecall{Catalog: r.Catalog},
		&filter.FilterNode{Filters: []filter.Filter{&filter.HistoryFilter{}}},
		&rank.FactorNode{Engine: r.Scoring, Signals: r.Signals},
		&rank.AffinityNode{Matrix: r.Matrix, Weight: r.AffinityWeight},
		&rerank.TopNNode{N: r.limit(limit)},
	}}
	return p.Run(ctx, rctx, nil)
}

// PersonalizedForUser 先通过画像源解析 userID 再走 Personalized。
// 画像源未配置或用户无画像时返回 MISSING_USER_CONTEXT。
func (r *Recommender) PersonalizedForUser(ctx context.Context, userID string, limit int) ([]*core.Item, error) {
	if userID == "" || r.Profiles == nil {
		return nil, core.ErrMissingUserContext
	}
	profile, err := r.Profiles.GetProfile(ctx, userID)
	if err != nil {
		if core.IsNotFound(err) {
			return nil, core.ErrMissingUserContext
		}
		return nil, err
	}
	return r.Personalized(ctx, profile, limit)
}

// Trending 返回按趋势信号排序的结果，匿名可用。
// window <= 0 时用默认 7 天窗口。
func (r *Recommender) Trending(ctx context.Context, limit int, window time.Duration) ([]*core.Item, error) {
	rctx := r.newContext("", "trending")

	var source pipeline.Node = &recall.CatalogRecall{Catalog: r.Catalog}
	if r.Store != nil {
		// 榜单召回优先，目录兜底（榜单为空/冷启动时仍有候选）
		source = &recall.Fanout{
			Sources: []recall.Source{
				&recall.TrendingRecall{Store: r.Store, Catalog: r.Catalog},
				&recall.CatalogRecall{Catalog: r.Catalog},
			},
			Dedup: true,
		}
	}

	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		source,
		&rank.TrendingNode{Engine: r.Scoring, Signals: r.Signals, Window: window},
		&rerank.TopNNode{N: r.limit(limit)},
	}}
	return p.Run(ctx, rctx, nil)
}

// Similar 返回与基准物品相似的物品，基准物品本身被排除。
// 基准物品不在目录里返回 NOT_FOUND。
func (r *Recommender) Similar(ctx context.Context, baseID core.ItemID, limit int) ([]*core.Item, error) {
	rctx := r.newContext("", "similar")
	rctx.Params = map[string]any{"base_item": baseID}

	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		&recall.CatalogRecall{Catalog: r.Catalog},
		&rank.SimilarNode{Engine: r.Scoring, Catalog: r.Catalog},
		&rerank.TopNNode{N: r.limit(limit)},
	}}
	return p.Run(ctx, rctx, nil)
}

// InvalidateMatrix 响应目录变更信号，显式失效相似度矩阵。
func (r *Recommender) InvalidateMatrix() {
	if r.Matrix != nil {
		r.Matrix.Invalidate()
	}
}

func (r *Recommender) newContext(userID, scene string) *core.RecommendContext {
	rctx := &core.RecommendContext{UserID: userID, Scene: scene}
	if r.Now != nil {
		rctx.Now = r.Now()
	}
	return rctx
}

func (r *Recommender) limit(limit int) int {
	if limit > 0 {
		return limit
	}
	if r.Limit > 0 {
		return r.Limit
	}
	return DefaultLimit
}
