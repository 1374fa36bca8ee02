package viewmodel

// Gauge is a chart-ready rendering of one server-computed risk score, scaled
// onto the 0-100 range the gauge widgets draw
type Gauge struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Percent float64 `json:"percent"`
}

type gaugeSpec struct {
	name     string
	valueKey string
	minKey   string
	maxKey   string
}

// the five risk gauges the analysis view renders; the min/max keys come from
// the analysis payload itself since the backend owns the score ranges
var gaugeSpecs = []gaugeSpec{
	{name: "chd_risk", valueKey: "chd_risk", minKey: "chd_risk_min", maxKey: "chd_risk_max"},
	{name: "stroke_risk", valueKey: "adjusted_stroke_risk", minKey: "total_stroke_points_risk_min", maxKey: "total_stroke_points_risk_max"},
	{name: "diabetes_risk", valueKey: "total_diabetes_points", minKey: "diabetes_risk_min", maxKey: "diabetes_risk_max"},
	{name: "ckd_risk", valueKey: "ckd_risk_score", minKey: "ckd_risk_min", maxKey: "ckd_risk_max"},
	{name: "overall_risk", valueKey: "overall_risk_percentage", minKey: "overall_risk_min", maxKey: "overall_risk_max"},
}

// BuildGauges derives the gauge view models from the numeric analysis fields.
// A gauge whose value or bounds are absent is omitted rather than rendered
// with made-up numbers.
func BuildGauges(metrics map[string]float64) []Gauge {
	gauges := make([]Gauge, 0, len(gaugeSpecs))
	for _, spec := range gaugeSpecs {
		value, okValue := metrics[spec.valueKey]
		minValue, okMin := metrics[spec.minKey]
		maxValue, okMax := metrics[spec.maxKey]
		if !okValue || !okMin || !okMax {
			continue
		}

		gauges = append(gauges, Gauge{
			Name:    spec.name,
			Value:   value,
			Min:     minValue,
			Max:     maxValue,
			Percent: Scale(value, minValue, maxValue),
		})
	}

	return gauges
}
