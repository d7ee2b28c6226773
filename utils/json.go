package utils

import (
	"encoding/json"
)

// Marshal generic struct to JSON
func MarshalToJSON[T any](input T) (string, error) {
	jsonData, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

// MarshalOrEmpty is MarshalToJSON for log and audit detail fields.
func MarshalOrEmpty[T any](input T) string {
	s, err := MarshalToJSON(input)
	if err != nil {
		return ""
	}
	return s
}
