package metrics

import (
	"math"

	"github.com/shopspring/decimal"
)

const decimalPlaces = 6

// Round6 rounds half away from zero to six decimal places. NaN and infinities map to 0.
func Round6(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(decimalPlaces).InexactFloat64()
}

// Ratio returns part / whole, or 0 when whole is not positive.
func Ratio(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole
}

// Percent returns part / whole * 100, or 0 when whole is not positive.
func Percent(part, whole float64) float64 {
	return Ratio(part, whole) * 100
}

// RecoveredUnits is max(0, weightScaleTotal - goodUnits) when both are positive.
func RecoveredUnits(weightScaleTotal, goodUnits int) int {
	if weightScaleTotal <= 0 || goodUnits <= 0 {
		return 0
	}
	return max(0, weightScaleTotal-goodUnits)
}

// WeightRecirculation is weightScaleTotal - producedUnits when both are positive.
// The result may be negative.
func WeightRecirculation(weightScaleTotal, producedUnits int) int {
	if weightScaleTotal <= 0 || producedUnits <= 0 {
		return 0
	}
	return weightScaleTotal - producedUnits
}

// RepercapRecirculation is (finalCut - initialCut) - totalUnits. It is nil unless
// both cut numbers are known.
func RepercapRecirculation(initialCut, finalCut *int, totalUnits int) *int {
	if initialCut == nil || finalCut == nil {
		return nil
	}
	v := (*finalCut - *initialCut) - totalUnits
	return &v
}
