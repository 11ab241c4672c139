package core

import "context"

// FeatureService 是特征服务的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（feast 等）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//
// 使用场景：
//   - 获取用户特征：肤质/肤色/价格带等画像特征
//   - 获取物品特征：统计类特征（曝光、转化等）
type FeatureService interface {
	// Name 返回特征服务名称（用于日志/监控）
	Name() string

	// GetUserFeatures 获取用户特征（单个用户）
	GetUserFeatures(ctx context.Context, userID string) (map[string]any, error)

	// GetItemFeatures 获取物品特征（单个物品）
	GetItemFeatures(ctx context.Context, itemID string) (map[string]any, error)

	// Close 释放资源
	Close() error
}

// ProfileProvider 按用户 ID 提供画像，通常由特征服务适配而来。
// 个性化请求在缺少画像时可通过它补齐。
type ProfileProvider interface {
	// Name 返回画像源名称
	Name() string

	// GetProfile 获取用户画像；用户不存在时返回 NOT_FOUND
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
}
