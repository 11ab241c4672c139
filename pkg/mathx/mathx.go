// Package mathx 提供推荐打分用到的数值工具：加权平均、min-max 归一化、
// Wilson 置信下界、指数移动平均等。
//
// 数值边界统一就地化解为中性值 0（除零、空集合不抛错），
// 只有结构性误用（长度不一致）才返回错误，保证总排序始终可计算。
package mathx

import (
	"math"

	"github.com/glowteam/glowkit/core"
)

// DefaultZ 是 Wilson 置信下界的默认 z 值（95% 置信水平）。
const DefaultZ = 1.96

// WeightedAverage 计算 Σ(value·weight)/Σ(weight)。
// - 长度不一致返回 DIMENSION_MISMATCH（调用方 bug，不可重试）
// - Σ(weight)=0 返回 0
func WeightedAverage(values, weights []float64) (float64, error) {
	if len(values) != len(weights) {
		return 0, core.ErrDimensionMismatch
	}

	var sum, weightSum float64
	for i, v := range values {
		sum += v * weights[i]
		weightSum += weights[i]
	}
	if weightSum == 0 {
		return 0, nil
	}
	return sum / weightSum, nil
}

// Normalize 做 min-max 归一化并收敛到 [0,1]。
// max == min 时返回 0。
func Normalize(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	return Clamp((value-min)/(max-min), 0, 1)
}

// Clamp 将 v 收敛到 [lo, hi]。
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// WilsonLowerBound 计算 Wilson 置信区间下界，用于低样本量评分去偏：
// 2 条评价的 5.0 分必须低于 500 条评价的 4.6 分。
// positiveRate 是好评率 ∈ [0,1]，sampleCount 是样本数；
// sampleCount == 0 返回 0。z <= 0 时取 DefaultZ。
func WilsonLowerBound(positiveRate float64, sampleCount int, z float64) float64 {
	if sampleCount == 0 {
		return 0
	}
	if z <= 0 {
		z = DefaultZ
	}

	n := float64(sampleCount)
	p := Clamp(positiveRate, 0, 1)

	left := p + z*z/(2*n)
	right := z * math.Sqrt((p*(1-p)+z*z/(4*n))/n)
	under := 1 + z*z/n

	return math.Max(0, (left-right)/under)
}

// ExponentialMovingAverage 计算指数移动平均，返回与输入等长的序列。
// 种子为 series[0]；空序列返回空切片。
func ExponentialMovingAverage(series []float64, alpha float64) []float64 {
	if len(series) == 0 {
		return []float64{}
	}

	ema := make([]float64, len(series))
	ema[0] = series[0]
	for i := 1; i < len(series); i++ {
		ema[i] = alpha*series[i] + (1-alpha)*ema[i-1]
	}
	return ema
}

// Momentum 计算当前值相对历史序列的动量分数 ∈ [0,1]。
// 历史为空或无波动（max==min）时返回 0。
func Momentum(current float64, historical []float64) float64 {
	if len(historical) == 0 {
		return 0
	}

	var sum float64
	min, max := historical[0], historical[0]
	for _, v := range historical {
		sum += v
		min = math.Min(min, v)
		max = math.Max(max, v)
	}

	maxChange := max - min
	if maxChange == 0 {
		return 0
	}

	change := current - sum/float64(len(historical))
	return Clamp((change+maxChange)/(2*maxChange), 0, 1)
}
