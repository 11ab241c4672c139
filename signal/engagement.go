package signal

import (
	"time"

	"github.com/glowteam/glowkit/core"
)

// EngagementWeights 是用户互动分的事件权重。
// 购买权重最高，分享高于收藏：传播行为比沉淀行为更能代表活跃度。
type EngagementWeights struct {
	View     float64
	Favorite float64
	Share    float64
	Purchase float64
}

// DefaultEngagementWeights 互动分默认权重。
var DefaultEngagementWeights = EngagementWeights{
	View:     1,
	Favorite: 2,
	Share:    4,
	Purchase: 5,
}

// DefaultEngagementWindow 是互动分的默认统计窗口。
const DefaultEngagementWindow = 30 * 24 * time.Hour

// EngagementScore 计算用户在 [since, now) 内的加权互动分。
// 这是一个排序键（ranking key），不归一化到 [0,1]。
func EngagementScore(events []core.InteractionEvent, userID string, since time.Time, weights EngagementWeights) float64 {
	if weights == (EngagementWeights{}) {
		weights = DefaultEngagementWeights
	}

	var score float64
	for _, ev := range events {
		if ev.UserID != userID || ev.Timestamp.Before(since) {
			continue
		}
		switch ev.Type {
		case core.EventView:
			score += weights.View
		case core.EventFavorite:
			score += weights.Favorite
		case core.EventShare:
			score += weights.Share
		case core.EventPurchase:
			score += weights.Purchase
		}
	}
	return score
}
