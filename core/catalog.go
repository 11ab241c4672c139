package core

import "context"

// CatalogSnapshot 是目录在某一时刻的只读快照。
// Version 用于相似度矩阵的缓存键：版本不变则矩阵可复用。
type CatalogSnapshot struct {
	Version string
	Items   []*CatalogItem

	index map[ItemID]*CatalogItem
}

// NewCatalogSnapshot 创建快照并建立 ID 索引。
func NewCatalogSnapshot(version string, items []*CatalogItem) *CatalogSnapshot {
	s := &CatalogSnapshot{
		Version: version,
		Items:   items,
		index:   make(map[ItemID]*CatalogItem, len(items)),
	}
	for _, it := range items {
		if it != nil {
			s.index[it.ID] = it
		}
	}
	return s
}

// ByID 按 ID 查找物品，不存在时返回 nil。
func (s *CatalogSnapshot) ByID(id ItemID) *CatalogItem {
	if s == nil || s.index == nil {
		return nil
	}
	return s.index[id]
}

// Len 返回快照内物品数。
func (s *CatalogSnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Items)
}

// CatalogStore 是目录快照的领域接口，由外部目录服务实现。
// 矩阵重建时通过它拉取最新快照，拉取可能涉及 I/O。
type CatalogStore interface {
	// Name 返回目录源名称（用于日志/监控）
	Name() string

	// Snapshot 返回当前目录快照
	Snapshot(ctx context.Context) (*CatalogSnapshot, error)
}
