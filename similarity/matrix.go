package similarity

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/glowteam/glowkit/core"
)

// DefaultTTL 是相似度矩阵的默认有效期。
const DefaultTTL = 24 * time.Hour

// Matrix 是一个目录快照的对称相似度表，构建后只读。
// 条目 (i,j) ∈ [0,1]；对角线未定义，Get(a,a) 返回 0。
type Matrix struct {
	Version string    // 目录快照版本
	BuiltAt time.Time // 构建完成时间

	scores map[core.ItemID]map[core.ItemID]float64
}

// Get 返回 a、b 的相似度；未知物品或对角线返回 0。
func (m *Matrix) Get(a, b core.ItemID) float64 {
	if m == nil || a == b {
		return 0
	}
	row, ok := m.scores[a]
	if !ok {
		return 0
	}
	return row[b]
}

// Len 返回矩阵覆盖的物品数。
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.scores)
}

// Age 返回矩阵自构建以来的时长。
func (m *Matrix) Age(now time.Time) time.Duration {
	if m == nil {
		return 0
	}
	return now.Sub(m.BuiltAt)
}

// Build 对快照计算全部 C(n,2) 的相似度，O(n²) 时间与空间。
// 两个方向都写入，读取无需规约方向。
func (e *Engine) Build(snapshot *core.CatalogSnapshot) *Matrix {
	m := &Matrix{
		BuiltAt: time.Now(),
		scores:  make(map[core.ItemID]map[core.ItemID]float64, snapshot.Len()),
	}
	if snapshot == nil {
		return m
	}
	m.Version = snapshot.Version

	items := snapshot.Items
	for _, it := range items {
		if it != nil {
			m.scores[it.ID] = make(map[core.ItemID]float64, len(items)-1)
		}
	}
	for i := 0; i < len(items); i++ {
		a := items[i]
		if a == nil {
			continue
		}
		for j := i + 1; j < len(items); j++ {
			b := items[j]
			if b == nil {
				continue
			}
			sim := e.Similarity(a, b)
			m.scores[a.ID][b.ID] = sim
			m.scores[b.ID][a.ID] = sim
		}
	}
	return m
}

// MatrixCache 是进程级唯一的矩阵缓存，由推荐服务持有（注入，不做包级单例）。
//
// 并发契约：
//   - 重建 single-flight：同一时刻最多一个在途构建，其余调用等待同一结果
//   - 重建脱离请求生命周期：调用方断连不会中断构建，后续请求可直接命中
//   - 构建完成后读取无锁竞争（矩阵只读）
//
// 失效条件：TTL 到期或显式 Invalidate（目录变更信号）。
type MatrixCache struct {
	Engine  *Engine
	Catalog core.CatalogStore

	// TTL 为 0 时使用 DefaultTTL
	TTL time.Duration

	mu      sync.RWMutex
	current *Matrix

	group  singleflight.Group
	builds atomic.Int64
}

// NewMatrixCache 创建矩阵缓存。
func NewMatrixCache(engine *Engine, catalog core.CatalogStore, ttl time.Duration) *MatrixCache {
	if engine == nil {
		engine = &Engine{}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MatrixCache{
		Engine:  engine,
		Catalog: catalog,
		TTL:     ttl,
	}
}

// Builds 返回累计构建次数（用于观测与测试）。
func (c *MatrixCache) Builds() int64 {
	return c.builds.Load()
}

// Invalidate 显式失效当前矩阵（目录变更信号）。
func (c *MatrixCache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}

// GetOrBuild 返回可用矩阵。
// 返回的 bool 表示矩阵是否为过期数据（重建失败时降级续用旧矩阵）。
// 无旧矩阵且重建失败时返回 STALE_MATRIX_REBUILD，调用方应退避重试。
func (c *MatrixCache) GetOrBuild(ctx context.Context) (*Matrix, bool, error) {
	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c.mu.RLock()
	cur := c.current
	c.mu.RUnlock()
	if cur != nil && time.Since(cur.BuiltAt) < ttl {
		return cur, false, nil
	}

	// single-flight：并发的冷启动/过期请求合并为一次 O(n²) 构建
	v, err, _ := c.group.Do("rebuild", func() (any, error) {
		// 二次检查：等待期间可能已有完成的构建
		c.mu.RLock()
		cur := c.current
		c.mu.RUnlock()
		if cur != nil && time.Since(cur.BuiltAt) < ttl {
			return cur, nil
		}
		return c.rebuild()
	})
	if err != nil {
		// 重建失败：有旧矩阵则带过期标记降级返回
		c.mu.RLock()
		stale := c.current
		c.mu.RUnlock()
		if stale != nil {
			return stale, true, nil
		}
		return nil, false, err
	}
	return v.(*Matrix), false, nil
}

// rebuild 拉取快照并重建矩阵。
// 注意：使用 context.Background 拉取，构建不绑定触发请求的生命周期,
// 调用方断连后构建照常完成并填充缓存。
func (c *MatrixCache) rebuild() (*Matrix, error) {
	if c.Catalog == nil {
		return nil, core.NewDomainError(core.ModuleSimilarity, core.ErrorCodeStaleMatrixRebuild,
			"similarity: no catalog store configured")
	}

	snapshot, err := c.Catalog.Snapshot(context.Background())
	if err != nil {
		return nil, core.NewDomainError(core.ModuleSimilarity, core.ErrorCodeStaleMatrixRebuild,
			fmt.Sprintf("similarity: catalog snapshot fetch failed: %v", err))
	}

	// 版本未变时只刷新时间戳，跳过 O(n²) 重算
	c.mu.RLock()
	cur := c.current
	c.mu.RUnlock()
	if cur != nil && snapshot != nil && cur.Version == snapshot.Version {
		refreshed := *cur
		refreshed.BuiltAt = time.Now()
		c.mu.Lock()
		c.current = &refreshed
		c.mu.Unlock()
		return &refreshed, nil
	}

	m := c.Engine.Build(snapshot)
	c.builds.Add(1)

	c.mu.Lock()
	c.current = m
	c.mu.Unlock()
	return m, nil
}
