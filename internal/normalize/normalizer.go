package normalize

import (
	"log/slog"
	"sort"
	"strings"

	"medmatch/internal/logging"
	"medmatch/internal/record"
)

// addressColumnOrder fixes the join order when several source columns map to
// the canonical address field. Unlisted columns follow in sorted order.
var addressColumnOrder = []string{
	"street_address", "address_line", "street", "address",
	"city", "state", "zip_code", "zip",
}

// Normalizer maps raw records into canonical records using table-driven
// per-source field mappings.
type Normalizer struct {
	mappings map[string]map[string]string
	logger   *slog.Logger
}

// New constructs a Normalizer. The mappings argument maps source tag →
// source column → canonical field name.
func New(mappings map[string]map[string]string, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Normalizer{mappings: mappings, logger: logger}
}

// Normalize produces the canonical form of a raw record. It never fails:
// malformed field values normalize to null with a warning.
func (n *Normalizer) Normalize(raw record.Raw) record.Canonical {
	canonical := record.Canonical{ID: raw.ID()}
	mapping := n.mappings[raw.Source]

	// Columns are visited in sorted order so the outcome does not depend
	// on map iteration.
	columns := make([]string, 0, len(raw.Fields))
	for column := range raw.Fields {
		if _, mapped := mapping[column]; mapped {
			columns = append(columns, column)
		}
	}
	sort.Strings(columns)

	addressParts := make(map[string]string)
	for _, column := range columns {
		value := raw.Fields[column]
		if strings.TrimSpace(value) == "" {
			continue
		}
		switch field := mapping[column]; field {
		case record.FieldFirstName:
			canonical.FirstName = Text(value)
		case record.FieldLastName:
			canonical.LastName = Text(value)
		case record.FieldEmail:
			canonical.Email = Text(value)
		case record.FieldPhoneNumber:
			canonical.PhoneNumber = Phone(value)
		case record.FieldDateOfBirth:
			normalized, ok := Date(value)
			if !ok {
				n.logger.Warn("unable to parse date",
					slog.String(logging.FieldSource, raw.Source),
					slog.String(logging.FieldRecordID, canonical.ID),
					slog.String("column", column),
					slog.String("value", value))
			}
			canonical.DateOfBirth = normalized
		case record.FieldAddress:
			addressParts[column] = Address(value)
		case "full_name":
			first, last := SplitFullName(value)
			canonical.FirstName = Text(first)
			canonical.LastName = Text(last)
		}
	}

	canonical.Address = joinAddressParts(addressParts)
	return canonical
}

func joinAddressParts(parts map[string]string) string {
	if len(parts) == 0 {
		return ""
	}

	ordered := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, column := range addressColumnOrder {
		if _, ok := parts[column]; ok {
			ordered = append(ordered, column)
			seen[column] = struct{}{}
		}
	}
	rest := make([]string, 0, len(parts))
	for column := range parts {
		if _, ok := seen[column]; !ok {
			rest = append(rest, column)
		}
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	values := make([]string, 0, len(ordered))
	for _, column := range ordered {
		if value := parts[column]; value != "" {
			values = append(values, value)
		}
	}
	return strings.Join(values, ", ")
}
