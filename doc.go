// Package glowkit 是一个美妆电商的内容推荐引擎。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank → PostProcess）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
// - 三种查询形态：个性化（八因子模型）、趋势（行为信号）、相似（内容相似度）
// - 相似度矩阵按目录快照版本缓存，single-flight 重建，过期降级续用
package glowkit

import "github.com/glowteam/glowkit/pipeline"

// 轻量 facade：便于用户直接 import "glowkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
