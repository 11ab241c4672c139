package core

import (
	"context"
	"time"
)

// EventType 是交互事件类型。
type EventType string

const (
	EventView     EventType = "view"     // 浏览
	EventPurchase EventType = "purchase" // 购买
	EventFavorite EventType = "favorite" // 收藏/加入心愿单
	EventShare    EventType = "share"    // 分享
)

// InteractionEvent 是一条只追加的用户交互事件。
// 事件流由外部的行为采集服务持有，本库只做聚合读取。
type InteractionEvent struct {
	UserID    string      // 可为空（匿名流量）
	ItemID    ItemID
	Kind      ContentKind // 为空时视为 product
	Type      EventType
	Timestamp time.Time
}

// ContentKindOrDefault 返回事件的内容类型，为空时回退为 product。
func (e InteractionEvent) ContentKindOrDefault() ContentKind {
	if e.Kind == "" {
		return ContentProduct
	}
	return e.Kind
}

// EventStore 是事件流的领域接口，由外部采集服务实现。
// 本库只消费 EventsSince 的聚合结果，从不修改事件。
type EventStore interface {
	// Append 追加一条事件
	Append(ctx context.Context, event InteractionEvent) error

	// EventsSince 返回 since 之后（含）的全部事件
	EventsSince(ctx context.Context, since time.Time) ([]InteractionEvent, error)
}
