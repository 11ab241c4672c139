package feast

import (
	"context"
	"strings"

	"github.com/glowteam/glowkit/core"
)

// 默认的特征引用。beauty_profile 是用户画像 feature view，
// beauty_item_stats 是物品统计 feature view。
var (
	DefaultUserFeatures = []string{
		"beauty_profile:skin_type",
		"beauty_profile:skin_tone",
		"beauty_profile:undertone",
		"beauty_profile:concerns",
		"beauty_profile:price_min",
		"beauty_profile:price_max",
	}
	DefaultItemFeatures = []string{
		"beauty_item_stats:view_count",
		"beauty_item_stats:purchase_count",
		"beauty_item_stats:wishlist_count",
	}
)

// FeatureStore 用 Feast 客户端实现 core.FeatureService。
type FeatureStore struct {
	Client Client

	// UserFeatures / ItemFeatures 为空时使用默认特征引用
	UserFeatures []string
	ItemFeatures []string

	// UserEntityKey / ItemEntityKey 实体键名，默认 user_id / item_id
	UserEntityKey string
	ItemEntityKey string
}

func (s *FeatureStore) Name() string { return "feast" }

func (s *FeatureStore) GetUserFeatures(ctx context.Context, userID string) (map[string]any, error) {
	features := s.UserFeatures
	if len(features) == 0 {
		features = DefaultUserFeatures
	}
	key := s.UserEntityKey
	if key == "" {
		key = "user_id"
	}
	return s.fetch(ctx, features, key, userID)
}

func (s *FeatureStore) GetItemFeatures(ctx context.Context, itemID string) (map[string]any, error) {
	features := s.ItemFeatures
	if len(features) == 0 {
		features = DefaultItemFeatures
	}
	key := s.ItemEntityKey
	if key == "" {
		key = "item_id"
	}
	return s.fetch(ctx, features, key, itemID)
}

func (s *FeatureStore) fetch(ctx context.Context, features []string, entityKey, entityID string) (map[string]any, error) {
	resp, err := s.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   features,
		EntityRows: []map[string]interface{}{{entityKey: entityID}},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.FeatureVectors) == 0 {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeNotFound,
			"feast: no feature vector for "+entityKey+"="+entityID)
	}
	return resp.FeatureVectors[0].Values, nil
}

func (s *FeatureStore) Close() error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Close()
}

var _ core.FeatureService = (*FeatureStore)(nil)

// ProfileProvider 把特征服务适配为 core.ProfileProvider：
// 从特征向量拼出强类型画像。历史行为（purchased/viewed/favorited）
// 不在特征服务里，由调用方另行补齐。
type ProfileProvider struct {
	Features core.FeatureService
}

func (p *ProfileProvider) Name() string { return "feast-profile" }

func (p *ProfileProvider) GetProfile(ctx context.Context, userID string) (*core.UserProfile, error) {
	values, err := p.Features.GetUserFeatures(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeNotFound,
			"feast: user "+userID+" has no profile features")
	}

	profile := &core.UserProfile{UserID: userID}
	profile.SkinType = stringValue(values, "skin_type")
	profile.SkinTone = stringValue(values, "skin_tone")
	profile.Undertone = stringValue(values, "undertone")
	if concerns := stringValue(values, "concerns"); concerns != "" {
		for _, c := range strings.Split(concerns, ",") {
			if c = strings.TrimSpace(c); c != "" {
				profile.Concerns = append(profile.Concerns, c)
			}
		}
	}
	profile.PriceRange = core.PriceRange{
		Min: floatValue(values, "price_min"),
		Max: floatValue(values, "price_max"),
	}
	return profile, nil
}

var _ core.ProfileProvider = (*ProfileProvider)(nil)

func stringValue(values map[string]any, key string) string {
	if v, ok := values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func floatValue(values map[string]any, key string) float64 {
	if v, ok := values[key]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 0
}
