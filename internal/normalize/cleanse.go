package normalize

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerCaser = cases.Lower(language.Und)

// dateLayouts are tried in order when parsing a date value. The first match
// wins, so unambiguous layouts come first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"20060102",
	time.RFC3339,
}

// structuredAddressKeys is the stable key order used when flattening a
// key-value address. Keys not listed here follow in sorted order.
var structuredAddressKeys = []string{"street", "city", "state", "zip"}

// Text trims surrounding whitespace and case-folds to lowercase. Empty input
// stays empty (null).
func Text(value string) string {
	return lowerCaser.String(strings.TrimSpace(value))
}

// Phone strips every non-digit character. Input without digits becomes null.
func Phone(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Date parses a date permissively and renders it as YYYY-MM-DD. The second
// return reports whether parsing succeeded; callers treat failure as null.
func Date(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", true
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("2006-01-02"), true
		}
	}
	return "", false
}

// Address flattens a structured key-value address into a comma-joined string
// of its non-empty values in stable key order. A scalar address passes
// through with only text cleansing.
func Address(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "{") {
		if flattened, ok := flattenStructured(trimmed); ok {
			return flattened
		}
	}
	return Text(trimmed)
}

func flattenStructured(value string) (string, bool) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(value), &fields); err != nil {
		return "", false
	}

	ordered := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, key := range structuredAddressKeys {
		if _, ok := fields[key]; ok {
			ordered = append(ordered, key)
			seen[key] = struct{}{}
		}
	}
	rest := make([]string, 0, len(fields))
	for key := range fields {
		if _, ok := seen[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	parts := make([]string, 0, len(ordered))
	for _, key := range ordered {
		part := Text(stringify(fields[key]))
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", "), true
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	case float64:
		// JSON numbers arrive as float64; zip codes and house numbers
		// are integral and marshal without a fraction.
		return jsonNumber(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

func jsonNumber(v float64) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// SplitFullName splits a full name on the first whitespace run. The token
// before the run becomes the first name, the remainder the last name.
func SplitFullName(value string) (first, last string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ""
	}
	idx := strings.IndexFunc(trimmed, isSpace)
	if idx < 0 {
		return trimmed, ""
	}
	return trimmed[:idx], strings.TrimLeftFunc(trimmed[idx:], isSpace)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
