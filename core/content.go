package core

// ContentKind 标记内容变体类型。
// 商品、妆容、化妆师在发现流中混排，但各自携带不同的载荷。
type ContentKind string

const (
	ContentProduct ContentKind = "product" // 商品
	ContentLook    ContentKind = "look"    // 妆容/造型
	ContentArtist  ContentKind = "artist"  // 化妆师
)

// Content 是内容联合类型：共享最小能力（ID/Kind/Category/Tags），
// 按 Kind 携带且仅携带一种变体载荷。
// 不要依赖"字段是否存在"做类型判断，一律看 Kind。
type Content struct {
	ID       ItemID
	Kind     ContentKind
	Category string
	Tags     []string

	// 变体载荷：与 Kind 一一对应，其余为 nil
	Product *CatalogItem
	Look    *LookInfo
	Artist  *ArtistInfo
}

// LookInfo 是妆容变体的载荷。
type LookInfo struct {
	Occasion string   // 场合：daily / party / wedding ...
	Products []ItemID // 妆容用到的商品
}

// ArtistInfo 是化妆师变体的载荷。
type ArtistInfo struct {
	Handle      string
	Specialties []string
}

// ProductContent 把目录物品包装为 product 变体。
func ProductContent(item *CatalogItem) Content {
	c := Content{Kind: ContentProduct, Product: item}
	if item != nil {
		c.ID = item.ID
		c.Category = item.Category
		c.Tags = item.Ingredients
	}
	return c
}

// LookContent 构造 look 变体。
func LookContent(id ItemID, category string, tags []string, info *LookInfo) Content {
	return Content{ID: id, Kind: ContentLook, Category: category, Tags: tags, Look: info}
}

// ArtistContent 构造 artist 变体。
func ArtistContent(id ItemID, category string, tags []string, info *ArtistInfo) Content {
	return Content{ID: id, Kind: ContentArtist, Category: category, Tags: tags, Artist: info}
}
