// Package builders 注册 glowkit 内置 Node 的配置构建器。
// 在入口处 import _ "github.com/glowteam/glowkit/config/builders" 触发注册，
// 并通过 Use 注入运行期依赖（目录、存储、信号源等）。
package builders

import (
	"fmt"
	"time"

	"github.com/glowteam/glowkit/config"
	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/feature"
	"github.com/glowteam/glowkit/filter"
	"github.com/glowteam/glowkit/pipeline"
	"github.com/glowteam/glowkit/pkg/conv"
	"github.com/glowteam/glowkit/rank"
	"github.com/glowteam/glowkit/recall"
	"github.com/glowteam/glowkit/rerank"
	"github.com/glowteam/glowkit/scoring"
	"github.com/glowteam/glowkit/signal"
	"github.com/glowteam/glowkit/similarity"
)

// Runtime 是配置无法表达的运行期依赖，由入口在构建 Pipeline 前注入。
type Runtime struct {
	Catalog  core.CatalogStore
	Store    core.KeyValueStore
	Signals  signal.Provider
	Scoring  *scoring.Engine
	Matrix   *similarity.MatrixCache
	Features core.FeatureService
}

var runtime Runtime

// Use 注入运行期依赖。必须在 Config.BuildPipeline 之前调用。
func Use(r Runtime) { runtime = r }

func init() {
	config.Register("recall.catalog", BuildCatalogRecall)
	config.Register("recall.trending", BuildTrendingRecall)
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rank.factor", BuildFactorNode)
	config.Register("rank.trending", BuildTrendingNode)
	config.Register("rank.similar", BuildSimilarNode)
	config.Register("rank.affinity", BuildAffinityNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("feature.enrich", BuildEnrichNode)
}

func BuildCatalogRecall(cfg map[string]interface{}) (pipeline.Node, error) {
	if runtime.Catalog == nil {
		return nil, fmt.Errorf("recall.catalog: no catalog store injected (call builders.Use first)")
	}
	return &recall.CatalogRecall{Catalog: runtime.Catalog}, nil
}

func BuildTrendingRecall(cfg map[string]interface{}) (pipeline.Node, error) {
	node := &recall.TrendingRecall{
		Store:   runtime.Store,
		Catalog: runtime.Catalog,
		TopN:    conv.ConfigGetInt64(cfg, "top_n", 0),
	}
	if kind := conv.ConfigGet(cfg, "content_kind", ""); kind != "" {
		node.ContentKind = core.ContentKind(kind)
	}
	for _, id := range conv.SliceAnyToString(cfg["ids"]) {
		node.IDs = append(node.IDs, core.ItemID(id))
	}
	return node, nil
}

func BuildFanoutNode(cfg map[string]interface{}) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("recall.fanout: sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet(sourceMap, "type", "")
		switch sourceType {
		case "catalog":
			node, err := BuildCatalogRecall(sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, node.(*recall.CatalogRecall))
		case "trending":
			node, err := BuildTrendingRecall(sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, node.(*recall.TrendingRecall))
		default:
			return nil, fmt.Errorf("recall.fanout: unknown source type %q", sourceType)
		}
	}

	fanout := &recall.Fanout{
		Sources: sources,
		Dedup:   conv.ConfigGet(cfg, "dedup", true),
	}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filter: filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "history":
			filters = append(filters, &filter.HistoryFilter{
				ExcludeViewed: conv.ConfigGet(filterMap, "exclude_viewed", false),
			})
		case "price_band":
			filters = append(filters, &filter.PriceBandFilter{
				Tolerance: conv.ConfigGetFloat64(filterMap, "tolerance", 0),
			})
		case "rule":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("filter: rule filter requires expr")
			}
			filters = append(filters, &filter.RuleFilter{Expr: expr})
		default:
			return nil, fmt.Errorf("filter: unknown filter type %q", filterType)
		}
	}

	return &filter.FilterNode{Filters: filters}, nil
}

func BuildFactorNode(cfg map[string]interface{}) (pipeline.Node, error) {
	node := &rank.FactorNode{
		Engine:      runtime.Scoring,
		Signals:     runtime.Signals,
		Parallelism: int(conv.ConfigGetInt64(cfg, "parallelism", 0)),
	}
	if sec := conv.ConfigGetInt64(cfg, "window", 0); sec > 0 {
		node.Window = time.Duration(sec) * time.Second
	}
	return node, nil
}

func BuildTrendingNode(cfg map[string]interface{}) (pipeline.Node, error) {
	node := &rank.TrendingNode{
		Engine:  runtime.Scoring,
		Signals: runtime.Signals,
	}
	if sec := conv.ConfigGetInt64(cfg, "window", 0); sec > 0 {
		node.Window = time.Duration(sec) * time.Second
	}
	return node, nil
}

func BuildSimilarNode(cfg map[string]interface{}) (pipeline.Node, error) {
	if runtime.Catalog == nil {
		return nil, fmt.Errorf("rank.similar: no catalog store injected (call builders.Use first)")
	}
	return &rank.SimilarNode{
		Engine:  runtime.Scoring,
		Catalog: runtime.Catalog,
	}, nil
}

func BuildAffinityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	if runtime.Matrix == nil {
		return nil, fmt.Errorf("rank.affinity: no similarity matrix cache injected (call builders.Use first)")
	}
	return &rank.AffinityNode{
		Matrix: runtime.Matrix,
		Weight: conv.ConfigGetFloat64(cfg, "weight", 0),
	}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{
		N: int(conv.ConfigGetInt64(cfg, "n", 0)),
	}, nil
}

func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.Diversity{
		MaxPerCategory: int(conv.ConfigGetInt64(cfg, "max_per_category", 0)),
		LabelKey:       conv.ConfigGet(cfg, "label_key", ""),
	}, nil
}

func BuildEnrichNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &feature.EnrichNode{
		Explain:  conv.ConfigGet(cfg, "explain", false),
		Engine:   runtime.Scoring,
		Features: runtime.Features,
	}, nil
}
