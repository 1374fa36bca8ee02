package viewmodel

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("viewmodel")

const dateLabelLayout = "Jan 02"

// the formats the backend has been observed to emit for recorded_at
var recordedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ordinal encodings for the categorical lifestyle metrics; unknown vocabulary
// maps to 0
var categoricalOrdinals = map[string]map[string]float64{
	"smoking":        {"occasionally": 1, "regularly": 2},
	"alcohol_intake": {"Weekly": 1, "Daily": 2},
	"phy_activity":   {"moderately active": 1, "very active": 2},
}

// Record holds one calendar date's worth of per-metric values, assembled from
// the disparate per-metric sample streams. Date carries the year-less chart
// label; ordering is always done on the underlying calendar date, so two
// same-day-of-year dates from different years stay distinct records.
type Record struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`

	day time.Time
}

// Normalize folds the per-metric sample streams into one chronologically
// ascending sequence of per-date records. Categorical metrics are encoded as
// ordinals, every other metric is parsed as a number. When one metric has
// several samples on the same day, the one with the latest recorded_at wins.
// Samples with a malformed recorded_at or a non-numeric value for a numeric
// metric are dropped with a warn log; the output stays deterministic.
func Normalize(samples map[string][]common.MetricSample) []Record {
	type bucket struct {
		record   *Record
		lastSeen map[string]time.Time
	}

	buckets := make(map[string]*bucket)

	for metric, stream := range samples {
		for _, sample := range stream {
			recordedAt, err := ParseRecordedAt(sample.RecordedAt)
			if err != nil {
				log.Warn("dropping sample with malformed recorded_at",
					"metric", metric, "recorded_at", sample.RecordedAt, "error", err)
				continue
			}

			value, ok := encodeValue(metric, sample.Value)
			if !ok {
				continue
			}

			dayKey := recordedAt.Format("2006-01-02")
			b, found := buckets[dayKey]
			if !found {
				b = &bucket{
					record: &Record{
						Date:   recordedAt.Format(dateLabelLayout),
						Values: make(map[string]float64),
						day:    startOfDay(recordedAt),
					},
					lastSeen: make(map[string]time.Time),
				}
				buckets[dayKey] = b
			}

			// same-day duplicate for this metric: latest recorded_at wins,
			// equal timestamps keep the later sample in stream order
			previous, seen := b.lastSeen[metric]
			if seen && recordedAt.Before(previous) {
				continue
			}

			b.record.Values[metric] = value
			b.lastSeen[metric] = recordedAt
		}
	}

	records := make([]Record, 0, len(buckets))
	for _, b := range buckets {
		records = append(records, *b.record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].day.Before(records[j].day)
	})

	return records
}

func encodeValue(metric string, raw string) (float64, bool) {
	ordinals, isCategorical := categoricalOrdinals[metric]
	if isCategorical {
		return ordinals[raw], true
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Warn("dropping non-numeric sample for numeric metric", "metric", metric, "value", raw)
		return 0, false
	}

	return value, true
}

// ParseRecordedAt parses a backend timestamp trying all known layouts
func ParseRecordedAt(raw string) (time.Time, error) {
	for _, layout := range recordedAtLayouts {
		ts, err := time.Parse(layout, raw)
		if err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable timestamp '%s'", raw)
}

func startOfDay(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}
