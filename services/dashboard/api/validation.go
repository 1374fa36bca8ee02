package api

import (
	"time"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/viewmodel"
)

const minPasswordLength = 8

func validatePassword(password string) string {
	if len(password) == 0 {
		return "Password is required"
	}
	if len(password) < minPasswordLength {
		return "Password must be at least 8 characters"
	}

	return ""
}

func validateCredentials(username string, password string) map[string]string {
	fieldErrors := make(map[string]string)
	if len(username) == 0 {
		fieldErrors["username"] = "Username is required"
	}

	message := validatePassword(password)
	if len(message) > 0 {
		fieldErrors["password"] = message
	}

	return fieldErrors
}

func stringField(payload common.Row, name string) string {
	value, _ := payload[name].(string)
	return value
}

func validateNewClient(payload common.Row) map[string]string {
	fieldErrors := make(map[string]string)

	if len(stringField(payload, "army_id")) == 0 {
		fieldErrors["army_id"] = "Army ID is required"
	}
	if len(stringField(payload, "name")) == 0 {
		fieldErrors["name"] = "Name is required"
	}
	if len(stringField(payload, "gender")) == 0 {
		fieldErrors["gender"] = "Gender is required"
	}

	dob := stringField(payload, "dob")
	switch {
	case len(dob) == 0:
		fieldErrors["dob"] = "Date of birth is required"
	default:
		parsed, err := viewmodel.ParseRecordedAt(dob)
		if err != nil {
			fieldErrors["dob"] = "Date of birth is not a valid date"
		} else if parsed.After(time.Now()) {
			fieldErrors["dob"] = "Date of birth can not be in the future"
		}
	}

	message := validatePassword(stringField(payload, "password"))
	if len(message) > 0 {
		fieldErrors["password"] = message
	}

	return fieldErrors
}

// validateDataEntries drops entries with blank values and requires at least
// one remaining entry with a data type id.
func validateDataEntries(entries []common.DataEntry) ([]common.DataEntry, string) {
	filtered := make([]common.DataEntry, 0, len(entries))
	for _, entry := range entries {
		if len(entry.Value) == 0 {
			continue
		}
		if len(entry.DataTypeID) == 0 {
			return nil, "each measurement needs a data type"
		}

		filtered = append(filtered, entry)
	}

	if len(filtered) == 0 {
		return nil, "at least one measurement value is required"
	}

	return filtered, ""
}
