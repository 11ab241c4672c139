package core

import "github.com/glowteam/glowkit/pkg/utils"

// ItemID 是目录物品的强类型标识。
// 相似度矩阵、历史记录等一律使用 ItemID 索引，避免 string/number 混用。
type ItemID string

// Rating 是物品评分的聚合统计（均分 0-5 + 样本数）。
type Rating struct {
	Average float64 // 平均分，范围 [0, 5]
	Count   int     // 评价数，>= 0
}

// PriceRange 是价格区间 [Min, Max]。
type PriceRange struct {
	Min float64
	Max float64
}

// Contains 判断价格是否落在区间内（闭区间）。
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// CatalogItem 是目录快照中的物品，快照内不可变。
// 相似度与打分引擎只读取它，不修改它。
type CatalogItem struct {
	ID       ItemID
	Name     string
	Category string // 类目，如 "serum" / "lipstick"
	Brand    string
	Price    float64 // 非负

	Rating Rating

	// 内容特征：成分标签 + 功效
	Ingredients []string // 成分/标签集合，用于 Jaccard 相似度
	Benefits    []string // 功效，与用户 concerns 求交集

	// Attributes 是固定维度的属性表：skinType / concern / finish / coverage
	Attributes map[string]string

	// 适配范围（肤质/肤色/冷暖调）
	SuitableSkinTypes  []string
	SuitableSkinTones  []string
	SuitableUndertones []string

	// Seasonality 是 12 个月的季节相关度，每项取值 0-100
	Seasonality [12]float64
}

// SupportsSkinType 判断物品是否适配指定肤质。
func (c *CatalogItem) SupportsSkinType(skinType string) bool {
	for _, st := range c.SuitableSkinTypes {
		if st == skinType {
			return true
		}
	}
	return false
}

// SupportsSkinTone 判断物品是否适配指定肤色。
func (c *CatalogItem) SupportsSkinTone(tone string) bool {
	for _, t := range c.SuitableSkinTones {
		if t == tone {
			return true
		}
	}
	return false
}

// SupportsUndertone 判断物品是否适配指定冷暖调。
func (c *CatalogItem) SupportsUndertone(undertone string) bool {
	for _, u := range c.SuitableUndertones {
		if u == undertone {
			return true
		}
	}
	return false
}

// Item 是推荐链路中的统一承载结构：目录物品 + 分数 + 标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
type Item struct {
	ID      ItemID
	Catalog *CatalogItem
	Score   float64
	Labels  map[string]utils.Label
}

// NewItem 从目录物品构造一个链路承载对象。
func NewItem(catalog *CatalogItem) *Item {
	it := &Item{
		Score:  0,
		Labels: make(map[string]utils.Label),
	}
	if catalog != nil {
		it.ID = catalog.ID
		it.Catalog = catalog
	}
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
