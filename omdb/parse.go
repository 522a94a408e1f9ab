package omdb

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// notAvailable is what OMDB reports for any field it has no data for
const notAvailable = "N/A"

// releasedLayout is the format of the Released field, e.g. "09 Jul 1982"
const releasedLayout = "02 Jan 2006"

// parseRuntime turns "96 min" into 96. Unparsable values give 0.
func parseRuntime(runtime string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(runtime), "min")))
	return n
}

// splitOnComma splits a comma separated field and trims every element
func splitOnComma(s string) []string {
	if s == "" || s == notAvailable {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// parseDate parses a Released value. N/A and anything unparsable give nil.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == notAvailable {
		return nil
	}
	t, err := time.Parse(releasedLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// parseLeadingInt reads the leading digits of s. Series years look like "2008–2013".
func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}

// stringField reads a key from a decoded payload. Non-string JSON values are
// formatted so numeric fields still come through.
func stringField(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
