package viewmodel

import (
	"testing"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("merges different metrics recorded on the same date", func(t *testing.T) {
		t.Parallel()

		samples := map[string][]common.MetricSample{
			"sbp": {{Value: "100", RecordedAt: "2024-01-01"}},
			"hb":  {{Value: "12", RecordedAt: "2024-01-01"}},
		}

		records := Normalize(samples)
		require.Len(t, records, 1)
		assert.Equal(t, "Jan 01", records[0].Date)
		assert.Equal(t, float64(100), records[0].Values["sbp"])
		assert.Equal(t, float64(12), records[0].Values["hb"])
	})
	t.Run("orders by true date, not by insertion or label order", func(t *testing.T) {
		t.Parallel()

		samples := map[string][]common.MetricSample{
			"sbp": {
				{Value: "120", RecordedAt: "2024-02-01"},
				{Value: "110", RecordedAt: "2024-01-15"},
			},
		}

		records := Normalize(samples)
		require.Len(t, records, 2)
		assert.Equal(t, "Jan 15", records[0].Date)
		assert.Equal(t, "Feb 01", records[1].Date)
	})
	t.Run("same day of year in different years stays distinct and chronological", func(t *testing.T) {
		t.Parallel()

		samples := map[string][]common.MetricSample{
			"sbp": {
				{Value: "130", RecordedAt: "2024-03-05"},
				{Value: "120", RecordedAt: "2023-03-05"},
			},
		}

		records := Normalize(samples)
		require.Len(t, records, 2)
		assert.Equal(t, float64(120), records[0].Values["sbp"])
		assert.Equal(t, float64(130), records[1].Values["sbp"])
		assert.Equal(t, records[0].Date, records[1].Date) // same year-less label
	})
	t.Run("encodes categorical metrics as ordinals", func(t *testing.T) {
		t.Parallel()

		samples := map[string][]common.MetricSample{
			"smoking": {
				{Value: "regularly", RecordedAt: "2024-01-01"},
				{Value: "occasionally", RecordedAt: "2024-01-02"},
				{Value: "never heard of it", RecordedAt: "2024-01-03"},
			},
			"alcohol_intake": {
				{Value: "Daily", RecordedAt: "2024-01-01"},
				{Value: "Weekly", RecordedAt: "2024-01-02"},
			},
			"phy_activity": {
				{Value: "very active", RecordedAt: "2024-01-01"},
				{Value: "moderately active", RecordedAt: "2024-01-02"},
				{Value: "sedentary", RecordedAt: "2024-01-03"},
			},
		}

		records := Normalize(samples)
		require.Len(t, records, 3)
		assert.Equal(t, float64(2), records[0].Values["smoking"])
		assert.Equal(t, float64(1), records[1].Values["smoking"])
		assert.Equal(t, float64(0), records[2].Values["smoking"])
		assert.Equal(t, float64(2), records[0].Values["alcohol_intake"])
		assert.Equal(t, float64(1), records[1].Values["alcohol_intake"])
		assert.Equal(t, float64(2), records[0].Values["phy_activity"])
		assert.Equal(t, float64(1), records[1].Values["phy_activity"])
		assert.Equal(t, float64(0), records[2].Values["phy_activity"])
	})
	t.Run("same-day duplicates: latest recorded_at wins", func(t *testing.T) {
		t.Parallel()

		samples := map[string][]common.MetricSample{
			"heart_rate": {
				{Value: "99", RecordedAt: "2024-01-01T18:00:00Z"},
				{Value: "80", RecordedAt: "2024-01-01T08:00:00Z"},
			},
		}

		records := Normalize(samples)
		require.Len(t, records, 1)
		assert.Equal(t, float64(99), records[0].Values["heart_rate"])
	})
	t.Run("equal timestamps keep the later sample in stream order", func(t *testing.T) {
		t.Parallel()

		samples := map[string][]common.MetricSample{
			"heart_rate": {
				{Value: "80", RecordedAt: "2024-01-01T08:00:00Z"},
				{Value: "85", RecordedAt: "2024-01-01T08:00:00Z"},
			},
		}

		records := Normalize(samples)
		require.Len(t, records, 1)
		assert.Equal(t, float64(85), records[0].Values["heart_rate"])
	})
	t.Run("malformed recorded_at drops the sample, not the run", func(t *testing.T) {
		t.Parallel()

		samples := map[string][]common.MetricSample{
			"sbp": {
				{Value: "120", RecordedAt: "not-a-date"},
				{Value: "110", RecordedAt: "2024-01-15"},
			},
		}

		records := Normalize(samples)
		require.Len(t, records, 1)
		assert.Equal(t, "Jan 15", records[0].Date)
		assert.Equal(t, float64(110), records[0].Values["sbp"])
	})
	t.Run("non-numeric value for a numeric metric drops the sample", func(t *testing.T) {
		t.Parallel()

		samples := map[string][]common.MetricSample{
			"sbp": {
				{Value: "high-ish", RecordedAt: "2024-01-15"},
			},
		}

		assert.Empty(t, Normalize(samples))
	})
	t.Run("empty input yields empty output", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, Normalize(nil))
		assert.Empty(t, Normalize(map[string][]common.MetricSample{}))
	})
}

func TestParseRecordedAt(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"2024-01-15", "2024-01-15 10:30:00", "2024-01-15T10:30:00Z"} {
		ts, err := ParseRecordedAt(raw)
		assert.Nil(t, err)
		assert.Equal(t, 15, ts.Day())
	}

	_, err := ParseRecordedAt("15/01/2024")
	assert.Error(t, err)
}
