package viewmodel

// Breach records one metric found outside its threshold rule, with the rule
// attached for threshold/unit display
type Breach struct {
	Metric string        `json:"metric"`
	Value  float64       `json:"value"`
	Rule   ThresholdRule `json:"rule"`
}

// Classify evaluates every rule independently against the snapshot and returns
// the breached subset, in rule-table order. A metric missing from the snapshot
// never breaches: absence is not evidence of breach.
func Classify(snapshot map[string]float64, rules []ThresholdRule) []Breach {
	breaches := make([]Breach, 0)
	for _, rule := range rules {
		value, ok := snapshot[rule.Metric]
		if !ok {
			continue
		}

		if rule.Breached(value) {
			breaches = append(breaches, Breach{
				Metric: rule.Metric,
				Value:  value,
				Rule:   rule,
			})
		}
	}

	return breaches
}
