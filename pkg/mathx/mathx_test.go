package mathx

import (
	"math"
	"testing"

	"github.com/glowteam/glowkit/core"
)

func TestWeightedAverage(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		weights []float64
		want    float64
		wantErr bool
	}{
		{
			name:    "simple blend",
			values:  []float64{1, 0},
			weights: []float64{0.75, 0.25},
			want:    0.75,
		},
		{
			name:    "zero weight sum",
			values:  []float64{1, 2, 3},
			weights: []float64{0, 0, 0},
			want:    0,
		},
		{
			name:    "empty inputs",
			values:  nil,
			weights: nil,
			want:    0,
		},
		{
			name:    "length mismatch",
			values:  []float64{1, 2},
			weights: []float64{1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeightedAverage(tt.values, tt.weights)
			if tt.wantErr {
				if err == nil {
					t.Fatal("WeightedAverage() expected error, got nil")
				}
				if !core.IsDimensionMismatch(err) {
					t.Errorf("WeightedAverage() error = %v, want DIMENSION_MISMATCH", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("WeightedAverage() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("WeightedAverage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(5, 5, 10); got != 0 {
		t.Errorf("Normalize(min) = %v, want 0", got)
	}
	if got := Normalize(10, 5, 10); got != 1 {
		t.Errorf("Normalize(max) = %v, want 1", got)
	}
	if got := Normalize(100, 5, 10); got != 1 {
		t.Errorf("Normalize above max = %v, want 1 (clamped)", got)
	}
	if got := Normalize(-100, 5, 10); got != 0 {
		t.Errorf("Normalize below min = %v, want 0 (clamped)", got)
	}
	if got := Normalize(7, 7, 7); got != 0 {
		t.Errorf("Normalize with max==min = %v, want 0", got)
	}

	// 单调性：v 增大，结果不减
	prev := -1.0
	for v := 0.0; v <= 10; v += 0.5 {
		cur := Normalize(v, 0, 10)
		if cur < prev {
			t.Fatalf("Normalize not non-decreasing at v=%v: %v < %v", v, cur, prev)
		}
		prev = cur
	}
}

func TestWilsonLowerBound(t *testing.T) {
	// 低样本高分必须低于高样本略低分
	fewReviews := WilsonLowerBound(5.0/5, 2, DefaultZ)
	manyReviews := WilsonLowerBound(4.6/5, 500, DefaultZ)
	if fewReviews >= manyReviews {
		t.Errorf("wilson(5.0, n=2) = %v should be < wilson(4.6, n=500) = %v",
			fewReviews, manyReviews)
	}

	if got := WilsonLowerBound(1.0, 0, DefaultZ); got != 0 {
		t.Errorf("WilsonLowerBound with n=0 = %v, want 0", got)
	}

	// 结果落在 [0,1]
	for _, n := range []int{1, 10, 100, 10000} {
		for _, p := range []float64{0, 0.2, 0.5, 0.9, 1} {
			got := WilsonLowerBound(p, n, DefaultZ)
			if got < 0 || got > 1 {
				t.Errorf("WilsonLowerBound(%v, %d) = %v out of [0,1]", p, n, got)
			}
		}
	}

	// z<=0 回退默认值
	if got, want := WilsonLowerBound(0.9, 50, 0), WilsonLowerBound(0.9, 50, DefaultZ); got != want {
		t.Errorf("WilsonLowerBound with z=0 = %v, want default-z result %v", got, want)
	}
}

func TestExponentialMovingAverage(t *testing.T) {
	series := []float64{10, 20, 30}
	ema := ExponentialMovingAverage(series, 0.5)

	if len(ema) != len(series) {
		t.Fatalf("ema length = %d, want %d", len(ema), len(series))
	}
	if ema[0] != 10 {
		t.Errorf("ema seed = %v, want series[0] = 10", ema[0])
	}
	if math.Abs(ema[1]-15) > 1e-9 { // 0.5*20 + 0.5*10
		t.Errorf("ema[1] = %v, want 15", ema[1])
	}
	if math.Abs(ema[2]-22.5) > 1e-9 { // 0.5*30 + 0.5*15
		t.Errorf("ema[2] = %v, want 22.5", ema[2])
	}

	if got := ExponentialMovingAverage(nil, 0.2); len(got) != 0 {
		t.Errorf("ema of empty series = %v, want empty", got)
	}
}

func TestMomentum(t *testing.T) {
	if got := Momentum(10, nil); got != 0 {
		t.Errorf("Momentum with empty history = %v, want 0", got)
	}
	if got := Momentum(10, []float64{5, 5, 5}); got != 0 {
		t.Errorf("Momentum with flat history = %v, want 0", got)
	}

	rising := Momentum(10, []float64{1, 2, 3})
	falling := Momentum(0, []float64{1, 2, 3})
	if rising <= falling {
		t.Errorf("rising momentum %v should exceed falling momentum %v", rising, falling)
	}
	for _, got := range []float64{rising, falling} {
		if got < 0 || got > 1 {
			t.Errorf("Momentum = %v out of [0,1]", got)
		}
	}
}
