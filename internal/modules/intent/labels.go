package intent

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	labelCity    = "CITY"
	labelPlace   = "PLACE_NAME"
	labelIntent  = "INTENT"
	labelNumDays = "NUM_DAYS"
)

// labelLine matches "LABEL: value" with optional bullets, bold markers and whitespace.
var labelLine = regexp.MustCompile(`(?i)^[\s\-*>#]*\**\s*(CITY|PLACE_NAME|PLACE NAME|INTENT|NUM_DAYS|NUM DAYS)\s*\**\s*[:：]\s*\**\s*(.*?)\s*\**\s*$`)

var (
	firstInt    = regexp.MustCompile(`\d+`)
	intentToken = regexp.MustCompile(`[a-z_]+`)
)

// placeholder values the model uses for "nothing here".
var emptyValues = map[string]bool{
	"":               true,
	"none":           true,
	"null":           true,
	"nil":            true,
	"n/a":            true,
	"na":             true,
	"-":              true,
	"không":          true,
	"không có":       true,
	"không xác định": true,
	"khong_xac_dinh": true,
	"unknown":        true,
	"trống":          true,
	"(trống)":        true,
	"để trống":       true,
	"empty":          true,
}

// ParseLabeled decodes the four-line LABEL:value block returned by the intent prompt.
// Lines may be missing, out of order, bulleted or padded; the first occurrence of a label wins.
// Defaults: empty city and place, Unknown intent, one day.
func ParseLabeled(text string) Analysis {
	out := Default()
	seen := make(map[string]bool, 4)

	for _, line := range strings.Split(text, "\n") {
		m := labelLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		label := strings.ReplaceAll(strings.ToUpper(m[1]), " ", "_")
		if seen[label] {
			continue
		}
		seen[label] = true
		value := cleanValue(m[2])

		switch label {
		case labelCity:
			out.City = value
		case labelPlace:
			out.PlaceName = value
		case labelIntent:
			out.Intent = parseIntentValue(value)
		case labelNumDays:
			if n := firstInt.FindString(value); n != "" {
				if d, err := strconv.Atoi(n); err == nil && d >= 1 {
					out.NumDays = d
				}
			}
		}
	}
	return out
}

func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, "`\"'“”[]<>")
	v = strings.TrimSpace(v)
	if emptyValues[strings.ToLower(v)] {
		return ""
	}
	return v
}

// parseIntentValue accepts decorated values such as "current_weather (thời tiết)".
func parseIntentValue(v string) Kind {
	for _, tok := range intentToken.FindAllString(strings.ToLower(v), -1) {
		if k := ParseKind(tok); k != Unknown {
			return k
		}
	}
	return Unknown
}
