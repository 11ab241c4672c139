package rank

import (
	"sort"

	"github.com/glowteam/glowkit/core"
)

// SortByScore 按分数降序排序，同分按物品 ID 升序，保证输出完全确定：
// 相同输入的重复调用产生逐字节一致的顺序。
func SortByScore(items []*core.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
}
