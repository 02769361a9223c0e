package blocking

import (
	"fmt"
	"strings"

	"medmatch/internal/record"
	"medmatch/internal/services"
)

// Predicate derives a blocking key from a canonical record. An empty key
// means the record joins no group under this predicate.
type Predicate struct {
	Name string
	Key  func(record.Canonical) string
}

var registry = map[string]Predicate{
	"last_name_birth_year": {
		Name: "last_name_birth_year",
		Key: func(c record.Canonical) string {
			if c.LastName == "" || len(c.DateOfBirth) < 4 {
				return ""
			}
			return c.LastName + "|" + c.DateOfBirth[:4]
		},
	},
	"phone": {
		Name: "phone",
		Key: func(c record.Canonical) string {
			return c.PhoneNumber
		},
	},
	"email": {
		Name: "email",
		Key: func(c record.Canonical) string {
			return c.Email
		},
	},
	"first_initial_last_name": {
		Name: "first_initial_last_name",
		Key: func(c record.Canonical) string {
			if c.FirstName == "" || c.LastName == "" {
				return ""
			}
			return c.FirstName[:1] + "|" + c.LastName
		},
	},
}

// Names lists the registered predicate names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// ByNames resolves predicate names into predicates. Empty or unknown sets are
// configuration errors surfaced before any comparison work.
func ByNames(names []string) ([]Predicate, error) {
	if len(names) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "blocking", "resolve predicates",
			"empty blocking predicate set", nil)
	}
	predicates := make([]Predicate, 0, len(names))
	for _, name := range names {
		predicate, ok := registry[strings.TrimSpace(name)]
		if !ok {
			return nil, services.Wrap(services.ErrConfiguration, "blocking", "resolve predicates",
				fmt.Sprintf("unknown predicate %q", name), nil)
		}
		predicates = append(predicates, predicate)
	}
	return predicates, nil
}
