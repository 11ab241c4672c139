package core

import "time"

// UserProfile 是用户画像：美妆偏好 + 交互历史。
//
// 偏好维度驱动八因子打分（肤质/肤色/诉求/价格带），
// 历史序列驱动排除规则与品牌亲和度：
//
//	维度          作用
//	肤质/肤色     skinTypeMatch / skinToneMatch
//	肤况诉求      concernsMatch
//	价格区间      pricePointMatch / 硬过滤
//	购买历史      排除已购 + 品牌亲和
//	收藏历史      排除已收藏
//	浏览历史      品牌亲和（弱信号）
//
// 历史序列按最近优先排列，由调用方控制长度上限。
type UserProfile struct {
	UserID string

	// 偏好（来自引导问卷或特征服务）
	SkinType   string   // oily / dry / combination / sensitive
	SkinTone   string   // fair / light / medium / deep
	Undertone  string   // warm / cool / neutral
	Concerns   []string // acne / aging / hydration ...
	PriceRange PriceRange

	// 交互历史（最近优先）
	Purchased []*CatalogItem
	Viewed    []*CatalogItem
	Favorited []*CatalogItem

	UpdateTime time.Time
}

// NewUserProfile 创建一个新的用户画像。
func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:     userID,
		Concerns:   make([]string, 0),
		Purchased:  make([]*CatalogItem, 0),
		Viewed:     make([]*CatalogItem, 0),
		Favorited:  make([]*CatalogItem, 0),
		UpdateTime: time.Now(),
	}
}

// HasPurchased 判断物品是否在购买历史中。
func (p *UserProfile) HasPurchased(id ItemID) bool {
	return containsItem(p.Purchased, id)
}

// HasFavorited 判断物品是否在收藏历史中。
func (p *UserProfile) HasFavorited(id ItemID) bool {
	return containsItem(p.Favorited, id)
}

// PurchasedBrands 返回购买历史中出现过的品牌集合。
func (p *UserProfile) PurchasedBrands() map[string]bool {
	return brandSet(p.Purchased)
}

// ViewedBrands 返回浏览历史中出现过的品牌集合。
func (p *UserProfile) ViewedBrands() map[string]bool {
	return brandSet(p.Viewed)
}

// AddPurchased 头插一条购买记录（最近优先），maxSize > 0 时截断尾部。
func (p *UserProfile) AddPurchased(item *CatalogItem, maxSize int) {
	p.Purchased = prependItem(p.Purchased, item, maxSize)
	p.UpdateTime = time.Now()
}

// AddViewed 头插一条浏览记录（最近优先），maxSize > 0 时截断尾部。
func (p *UserProfile) AddViewed(item *CatalogItem, maxSize int) {
	p.Viewed = prependItem(p.Viewed, item, maxSize)
	p.UpdateTime = time.Now()
}

// AddFavorited 头插一条收藏记录（最近优先），maxSize > 0 时截断尾部。
func (p *UserProfile) AddFavorited(item *CatalogItem, maxSize int) {
	p.Favorited = prependItem(p.Favorited, item, maxSize)
	p.UpdateTime = time.Now()
}

func containsItem(items []*CatalogItem, id ItemID) bool {
	for _, it := range items {
		if it != nil && it.ID == id {
			return true
		}
	}
	return false
}

func brandSet(items []*CatalogItem) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		if it != nil && it.Brand != "" {
			set[it.Brand] = true
		}
	}
	return set
}

func prependItem(items []*CatalogItem, item *CatalogItem, maxSize int) []*CatalogItem {
	if item == nil {
		return items
	}
	// 去重：已存在时先移除旧位置
	for i, it := range items {
		if it != nil && it.ID == item.ID {
			items = append(items[:i], items[i+1:]...)
			break
		}
	}
	items = append([]*CatalogItem{item}, items...)
	if maxSize > 0 && len(items) > maxSize {
		items = items[:maxSize]
	}
	return items
}
