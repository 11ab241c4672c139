package config_test

import (
	"context"
	"strings"
	"testing"

	"github.com/glowteam/glowkit/config"
	"github.com/glowteam/glowkit/config/builders"
	"github.com/glowteam/glowkit/core"
	"github.com/glowteam/glowkit/pipeline"
	"github.com/glowteam/glowkit/scoring"
)

type stubCatalog struct{}

func (stubCatalog) Name() string { return "stub" }

func (stubCatalog) Snapshot(_ context.Context) (*core.CatalogSnapshot, error) {
	return core.NewCatalogSnapshot("v1", nil), nil
}

func TestDefaultFactoryBuildsRegisteredNodes(t *testing.T) {
	builders.Use(builders.Runtime{
		Catalog: stubCatalog{},
		Scoring: &scoring.Engine{},
	})

	cfg := &pipeline.Config{}
	cfg.Pipeline.Name = "test"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "recall.catalog"},
		{Type: "filter", Config: map[string]interface{}{
			"filters": []interface{}{
				map[string]interface{}{"type": "history"},
			},
		}},
		{Type: "rank.factor", Config: map[string]interface{}{"parallelism": 4}},
		{Type: "rerank.topn", Config: map[string]interface{}{"n": 5}},
	}

	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig: %v", err)
	}

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(p.Nodes) != 4 {
		t.Fatalf("built %d nodes, want 4", len(p.Nodes))
	}
}

func TestValidateRejectsUnknownType(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "rank.xgboost"}}

	err := config.ValidatePipelineConfig(cfg)
	if err == nil {
		t.Fatal("expected error for unregistered node type")
	}
	if !strings.Contains(err.Error(), "rank.xgboost") {
		t.Fatalf("error should name the offending type: %v", err)
	}
}

func TestCatalogRecallRequiresRuntime(t *testing.T) {
	builders.Use(builders.Runtime{})
	defer builders.Use(builders.Runtime{Catalog: stubCatalog{}})

	if _, err := builders.BuildCatalogRecall(nil); err == nil {
		t.Fatal("expected error when no catalog store is injected")
	}
}

func TestSupportedTypesSorted(t *testing.T) {
	types := config.SupportedTypes()
	if len(types) == 0 {
		t.Fatal("no node types registered")
	}
	for i := 1; i < len(types); i++ {
		if types[i-1] > types[i] {
			t.Fatalf("types not sorted: %v", types)
		}
	}
}
