package viewmodel

// Operator values for threshold rules
const (
	OperatorGreater = ">"
	OperatorLess    = "<"
)

// ThresholdRule defines the static out-of-range condition for one metric,
// together with its display metadata
type ThresholdRule struct {
	Metric      string  `json:"metric"`
	Operator    string  `json:"operator"`
	Limit       float64 `json:"limit"`
	Unit        string  `json:"unit"`
	DisplayName string  `json:"displayName"`
}

// Breached returns true if the given value is outside the rule's range
func (r ThresholdRule) Breached(value float64) bool {
	switch r.Operator {
	case OperatorGreater:
		return value > r.Limit
	case OperatorLess:
		return value < r.Limit
	default:
		return false
	}
}

// Every alertable metric has exactly one rule. Limits follow the medical
// reference ranges the analysis backend works with.
var thresholdRules = []ThresholdRule{
	{Metric: "heart_rate", Operator: OperatorGreater, Limit: 100, Unit: "bpm", DisplayName: "Heart Rate"},
	{Metric: "sbp", Operator: OperatorGreater, Limit: 140, Unit: "mmHg", DisplayName: "Systolic Blood Pressure"},
	{Metric: "dbp", Operator: OperatorGreater, Limit: 100, Unit: "mmHg", DisplayName: "Diastolic Blood Pressure"},
	{Metric: "spo2", Operator: OperatorLess, Limit: 90, Unit: "%", DisplayName: "Oxygen Saturation"},
	{Metric: "temp_f", Operator: OperatorGreater, Limit: 100, Unit: "°F", DisplayName: "Body Temperature"},
	{Metric: "hb", Operator: OperatorLess, Limit: 10, Unit: "g/dL", DisplayName: "Hemoglobin"},
	{Metric: "wbc", Operator: OperatorGreater, Limit: 11, Unit: "10^3/μL", DisplayName: "White Blood Cells"},
	{Metric: "plt", Operator: OperatorLess, Limit: 1, Unit: "10^5/μL", DisplayName: "Platelets"},
	{Metric: "fbs", Operator: OperatorGreater, Limit: 100, Unit: "mg/dL", DisplayName: "Fasting Blood Sugar"},
	{Metric: "ppbs", Operator: OperatorGreater, Limit: 140, Unit: "mg/dL", DisplayName: "Postprandial Blood Sugar"},
	{Metric: "hba1c", Operator: OperatorGreater, Limit: 6.2, Unit: "%", DisplayName: "HbA1c"},
	{Metric: "t_choles", Operator: OperatorGreater, Limit: 200, Unit: "mg/dL", DisplayName: "Total Cholesterol"},
	{Metric: "hdl", Operator: OperatorLess, Limit: 40, Unit: "mg/dL", DisplayName: "HDL Cholesterol"},
	{Metric: "ldl", Operator: OperatorGreater, Limit: 100, Unit: "mg/dL", DisplayName: "LDL Cholesterol"},
	{Metric: "t_bilirubin", Operator: OperatorGreater, Limit: 1.2, Unit: "mg/dL", DisplayName: "Total Bilirubin"},
	{Metric: "sr_creatinine", Operator: OperatorGreater, Limit: 1.4, Unit: "mg/dL", DisplayName: "Serum Creatinine"},
	{Metric: "t_protein", Operator: OperatorLess, Limit: 6.0, Unit: "g/dL", DisplayName: "Total Protein"},
	{Metric: "sr_albumin", Operator: OperatorLess, Limit: 3.5, Unit: "g/dL", DisplayName: "Serum Albumin"},
	{Metric: "sr_globulin", Operator: OperatorLess, Limit: 2.0, Unit: "g/dL", DisplayName: "Serum Globulin"},
}

// Thresholds returns a copy of the static threshold rule table
func Thresholds() []ThresholdRule {
	rules := make([]ThresholdRule, len(thresholdRules))
	copy(rules, thresholdRules)

	return rules
}

// ThresholdFor returns the rule configured for the given metric, if any
func ThresholdFor(metric string) (ThresholdRule, bool) {
	for _, rule := range thresholdRules {
		if rule.Metric == metric {
			return rule, true
		}
	}

	return ThresholdRule{}, false
}
