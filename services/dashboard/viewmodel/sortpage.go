package viewmodel

import (
	"encoding/json"
	"sort"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort directions accepted by SortBy
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// fields that hold date values and must be ordered by parsed timestamp, not
// by their display string
var dateFields = map[string]struct{}{
	"dob":             {},
	"last_assessment": {},
	"created_at":      {},
	"analyzed_at":     {},
	"recorded_at":     {},
}

type sortKey struct {
	numeric float64
	text    string
	isText  bool
	valid   bool
}

// SortBy returns a stable-sorted copy of rows ordered by the given field. The
// comparator defines a total order: date fields compare by parsed timestamp,
// strings by English collation, every other value numerically; rows missing
// the field (or holding an uncomparable value) sort after all rows that have
// it, regardless of direction, and numeric values sort before text when a
// column holds both. Stability keeps equal keys in their incoming order so
// repeated sorts on ties do not jitter.
func SortBy(rows []common.Row, field string, direction string) []common.Row {
	sorted := make([]common.Row, len(rows))
	copy(sorted, rows)

	if len(field) == 0 {
		return sorted
	}

	desc := direction == SortDesc
	collator := collate.New(language.English)

	sort.SliceStable(sorted, func(i, j int) bool {
		keyI := keyFor(field, sorted[i])
		keyJ := keyFor(field, sorted[j])

		if keyI.valid != keyJ.valid {
			return keyI.valid
		}
		if !keyI.valid {
			return false
		}
		if keyI.isText != keyJ.isText {
			return !keyI.isText
		}

		if keyI.isText {
			cmp := collator.CompareString(keyI.text, keyJ.text)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		}

		if desc {
			return keyI.numeric > keyJ.numeric
		}
		return keyI.numeric < keyJ.numeric
	})

	return sorted
}

func keyFor(field string, row common.Row) sortKey {
	raw, ok := row[field]
	if !ok || raw == nil {
		return sortKey{}
	}

	_, isDateField := dateFields[field]
	if isDateField {
		str, okStr := raw.(string)
		if !okStr {
			return sortKey{}
		}

		ts, err := ParseRecordedAt(str)
		if err != nil {
			return sortKey{}
		}

		return sortKey{numeric: float64(ts.UnixNano()), valid: true}
	}

	switch value := raw.(type) {
	case string:
		return sortKey{text: value, isText: true, valid: true}
	case float64:
		return sortKey{numeric: value, valid: true}
	case int:
		return sortKey{numeric: float64(value), valid: true}
	case int64:
		return sortKey{numeric: float64(value), valid: true}
	case bool:
		if value {
			return sortKey{numeric: 1, valid: true}
		}
		return sortKey{numeric: 0, valid: true}
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return sortKey{}
		}
		return sortKey{numeric: parsed, valid: true}
	default:
		return sortKey{}
	}
}

// Paginate returns the zero-indexed page slice of rows. A page starting beyond
// the end of the collection yields an empty slice, never an error.
func Paginate(rows []common.Row, page int, pageSize int) []common.Row {
	if page < 0 || pageSize <= 0 {
		return []common.Row{}
	}

	start := page * pageSize
	if start >= len(rows) {
		return []common.Row{}
	}

	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}

	return rows[start:end]
}
