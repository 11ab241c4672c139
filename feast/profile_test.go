package feast

import (
	"context"
	"testing"

	"github.com/glowteam/glowkit/core"
)

type fakeClient struct {
	values map[string]interface{}
	err    error
}

func (f *fakeClient) GetOnlineFeatures(_ context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &GetOnlineFeaturesResponse{
		FeatureVectors: []FeatureVector{
			{Values: f.values, EntityRow: req.EntityRows[0]},
		},
	}, nil
}

func (f *fakeClient) Close() error { return nil }

func TestProfileProviderGetProfile(t *testing.T) {
	provider := &ProfileProvider{
		Features: &FeatureStore{
			Client: &fakeClient{values: map[string]interface{}{
				"skin_type": "oily",
				"skin_tone": "medium",
				"undertone": "warm",
				"concerns":  "acne, dullness",
				"price_min": 10.0,
				"price_max": 60.0,
			}},
		},
	}

	profile, err := provider.GetProfile(context.Background(), "u1001")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.UserID != "u1001" {
		t.Fatalf("UserID = %q, want u1001", profile.UserID)
	}
	if profile.SkinType != "oily" || profile.SkinTone != "medium" || profile.Undertone != "warm" {
		t.Fatalf("profile traits = %q/%q/%q", profile.SkinType, profile.SkinTone, profile.Undertone)
	}
	if len(profile.Concerns) != 2 || profile.Concerns[0] != "acne" || profile.Concerns[1] != "dullness" {
		t.Fatalf("Concerns = %v, want [acne dullness]", profile.Concerns)
	}
	if profile.PriceRange.Min != 10 || profile.PriceRange.Max != 60 {
		t.Fatalf("PriceRange = %+v", profile.PriceRange)
	}
}

func TestProfileProviderEmptyFeatures(t *testing.T) {
	provider := &ProfileProvider{
		Features: &FeatureStore{
			Client: &fakeClient{values: map[string]interface{}{}},
		},
	}

	_, err := provider.GetProfile(context.Background(), "ghost")
	if !core.IsNotFound(err) {
		t.Fatalf("GetProfile(ghost) err = %v, want NOT_FOUND", err)
	}
}

func TestFeatureNameStripsViewPrefix(t *testing.T) {
	cases := []struct {
		ref  string
		want string
	}{
		{"beauty_profile:skin_type", "skin_type"},
		{"skin_type", "skin_type"},
	}
	for _, c := range cases {
		if got := featureName(c.ref); got != c.want {
			t.Errorf("featureName(%q) = %q, want %q", c.ref, got, c.want)
		}
	}
}
