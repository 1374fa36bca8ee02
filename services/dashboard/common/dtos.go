package common

// Row is a loosely-typed record as decoded from a backend JSON object. List
// endpoints keep the backend's field names so sorting can be driven by the
// column id the frontend sends.
type Row = map[string]any

// MetricSample is a single recorded measurement for one metric of one client.
// Values are kept as strings since the backend mixes numeric and categorical
// payloads for the same endpoint.
type MetricSample struct {
	Value      string `json:"value"`
	RecordedAt string `json:"recorded_at"`
}

// DataEntry defines one submitted measurement for a data type
type DataEntry struct {
	DataTypeID string `json:"data_type_id"`
	Value      string `json:"value"`
	Notes      string `json:"notes"`
}

// DataType describes one trackable measurement kind
type DataType struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Unit    string   `json:"unit,omitempty"`
	Type    string   `json:"type,omitempty"`
	Options []string `json:"options,omitempty"`
}

// AnalysisDate is one date for which the backend holds a computed analysis
type AnalysisDate struct {
	AnalyzedAt string `json:"analyzed_at"`
}

// Analysis holds the server-computed risk analysis for one client at one date,
// split into the numeric fields (gauge inputs, alert snapshot) and the
// categorical ones (risk categories, recommendation texts)
type Analysis struct {
	Metrics map[string]float64 `json:"metrics"`
	Labels  map[string]string  `json:"labels"`
}

// DashboardStats mirrors the backend's dashboard counters
type DashboardStats struct {
	TotalClients     int `json:"totalClients"`
	ActiveClients    int `json:"activeClients"`
	TotalAssessments int `json:"totalAssessments"`
}

// Session binds a dashboard session token to the health backend bearer token
// it proxies for
type Session struct {
	Token        string
	Username     string
	BackendToken string
	CreatedAt    int64
}
