package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScale(t *testing.T) {
	t.Parallel()

	t.Run("is linear on the range endpoints and midpoint", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, float64(0), Scale(20, 20, 80))
		assert.Equal(t, float64(100), Scale(80, 20, 80))
		assert.Equal(t, float64(50), Scale(50, 20, 80))
	})
	t.Run("is monotonically increasing in value", func(t *testing.T) {
		t.Parallel()

		previous := Scale(-10, 0, 37)
		for value := float64(-9); value < 50; value++ {
			current := Scale(value, 0, 37)
			assert.Greater(t, current, previous)
			previous = current
		}
	})
	t.Run("does not clamp values outside the range", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, float64(-50), Scale(-5, 0, 10))
		assert.Equal(t, float64(150), Scale(15, 0, 10))
	})
	t.Run("degenerate range returns 0 instead of NaN or Inf", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, float64(0), Scale(42, 10, 10))
		assert.Equal(t, float64(0), Scale(42, 20, 10))
	})
}

func TestBuildGauges(t *testing.T) {
	t.Parallel()

	t.Run("builds all five gauges when every field is present", func(t *testing.T) {
		t.Parallel()

		metrics := map[string]float64{
			"chd_risk": 5, "chd_risk_min": 0, "chd_risk_max": 10,
			"adjusted_stroke_risk": 3, "total_stroke_points_risk_min": 0, "total_stroke_points_risk_max": 30,
			"total_diabetes_points": 12, "diabetes_risk_min": 0, "diabetes_risk_max": 24,
			"ckd_risk_score": 2, "ckd_risk_min": 0, "ckd_risk_max": 8,
			"overall_risk_percentage": 40, "overall_risk_min": 0, "overall_risk_max": 100,
		}

		gauges := BuildGauges(metrics)
		assert.Len(t, gauges, 5)
		assert.Equal(t, "chd_risk", gauges[0].Name)
		assert.Equal(t, float64(50), gauges[0].Percent)
		assert.Equal(t, "overall_risk", gauges[4].Name)
		assert.Equal(t, float64(40), gauges[4].Percent)
	})
	t.Run("omits gauges with missing value or bounds", func(t *testing.T) {
		t.Parallel()

		metrics := map[string]float64{
			"chd_risk": 5, "chd_risk_min": 0, // chd_risk_max missing
			"ckd_risk_score": 2, "ckd_risk_min": 0, "ckd_risk_max": 8,
		}

		gauges := BuildGauges(metrics)
		assert.Len(t, gauges, 1)
		assert.Equal(t, "ckd_risk", gauges[0].Name)
		assert.Equal(t, float64(25), gauges[0].Percent)
	})
	t.Run("empty analysis yields no gauges", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, BuildGauges(map[string]float64{}))
	})
}
