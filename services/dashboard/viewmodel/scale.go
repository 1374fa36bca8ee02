package viewmodel

// Scale maps value linearly from [min, max] onto [0, 100]. The result is not
// clamped: a value outside the range produces a result outside [0, 100] and
// visual clamping is left to the gauge widget. A degenerate range (max <= min)
// returns 0 so no NaN or Inf can reach a rendered view.
func Scale(value float64, min float64, max float64) float64 {
	if max <= min {
		return 0
	}

	return (value - min) / (max - min) * 100
}
