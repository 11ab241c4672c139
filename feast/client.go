// Package feast 对接 Feast Feature Store，为推荐链路提供用户/物品特征。
//
// 分层：
//   - 领域层接口在 core（core.FeatureService / core.ProfileProvider）
//   - 本包是基础设施层实现，内部使用官方 SDK（github.com/feast-dev/feast/sdk/go）
package feast

import (
	"context"
	"time"
)

// Client 是 Feast 在线特征的最小客户端接口。
// 抽出接口是为了测试时可注入假实现。
type Client interface {
	// GetOnlineFeatures 获取在线特征
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求。
type GetOnlineFeaturesRequest struct {
	// Features 特征引用列表，例如 ["beauty_profile:skin_type", "beauty_profile:skin_tone"]
	Features []string

	// EntityRows 实体行，例如 [{"user_id": "u1001"}]
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，缺省用客户端默认值）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应。
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 每个元素对应一个实体行
	FeatureVectors []FeatureVector
}

// FeatureVector 是单个实体的特征向量。
type FeatureVector struct {
	// Values key 为特征名称（不含 feature view 前缀）
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}

// ClientOption 客户端配置选项。
type ClientOption func(*ClientConfig)

// ClientConfig 客户端配置。
type ClientConfig struct {
	Endpoint string
	Project  string
	Timeout  time.Duration

	// StaticToken 非空时启用静态 Token 认证
	StaticToken string
}

// WithTimeout 设置超时时间。
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithStaticToken 设置静态 Token 认证。
func WithStaticToken(token string) ClientOption {
	return func(c *ClientConfig) {
		c.StaticToken = token
	}
}
