package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the accepted request date formats
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// parseDate accepts YYYY-MM-DD or RFC 3339; ok is false for empty or malformed input
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// getIntParam retrieves an integer query parameter with default value and range validation
func getIntParam(r *http.Request, key string, defaultVal, minVal, maxVal int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil || val < minVal || val > maxVal {
		return defaultVal
	}
	return val
}
