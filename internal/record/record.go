// Package record defines the raw and canonical record shapes shared by every
// pipeline stage. Canonical records are immutable once produced by the
// normalizer; an empty string field means the value is null.
package record

import (
	"fmt"
	"strings"

	"medmatch/internal/services"
)

// Known source tags. The storage collaborator maintains one table per source.
const (
	SourceClinic          = "clinic"
	SourceUrgentCare      = "urgent_care"
	SourceHospital        = "hospital"
	SourcePhysicalTherapy = "physical_therapy"
)

// Sources lists the known source tags in extraction order.
func Sources() []string {
	return []string{SourceClinic, SourceUrgentCare, SourceHospital, SourcePhysicalTherapy}
}

// Canonical field names in the fixed order used by feature vectors and the
// classifier.
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldEmail       = "email"
	FieldPhoneNumber = "phone_number"
	FieldAddress     = "address"
	FieldDateOfBirth = "date_of_birth"
)

// Fields returns the canonical comparison fields in their fixed order.
func Fields() []string {
	return []string{
		FieldFirstName,
		FieldLastName,
		FieldEmail,
		FieldPhoneNumber,
		FieldAddress,
		FieldDateOfBirth,
	}
}

// IsCanonicalField reports whether name is a canonical comparison field.
func IsCanonicalField(name string) bool {
	switch name {
	case FieldFirstName, FieldLastName, FieldEmail, FieldPhoneNumber, FieldAddress, FieldDateOfBirth:
		return true
	}
	return false
}

// RequiredFields lists the canonical fields every source mapping must cover.
// Coverage is structural: a source must map some column to each of these, but
// an individual record may still carry a null value there and flow through
// the pipeline.
func RequiredFields() []string {
	return []string{FieldFirstName, FieldLastName, FieldDateOfBirth}
}

// Raw is a record as extracted from a source table, before normalization.
// Fields holds the source's declared columns; absent keys mean null.
type Raw struct {
	Source  string
	LocalID int64
	Fields  map[string]string
}

// ID returns the globally unique record identifier "<source>_<local_id>".
func (r Raw) ID() string {
	return fmt.Sprintf("%s_%d", r.Source, r.LocalID)
}

// Canonical is the normalized, source-independent representation of a
// record. Empty string fields represent null values.
type Canonical struct {
	ID          string
	FirstName   string
	LastName    string
	DateOfBirth string
	PhoneNumber string
	Email       string
	Address     string
}

// Field returns the named canonical field value. Unknown names return the
// empty string.
func (c Canonical) Field(name string) string {
	switch name {
	case FieldFirstName:
		return c.FirstName
	case FieldLastName:
		return c.LastName
	case FieldEmail:
		return c.Email
	case FieldPhoneNumber:
		return c.PhoneNumber
	case FieldAddress:
		return c.Address
	case FieldDateOfBirth:
		return c.DateOfBirth
	}
	return ""
}

// Validate checks the canonical record carries an identifier. Required-field
// coverage is enforced structurally against each source's column mapping at
// configuration time; a record whose mapped value turned out null (an
// unparsable date, an empty cell) still flows through the pipeline.
func (c Canonical) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return services.Wrap(services.ErrInvalidData, "record", "validate",
			"record is missing its record_id", nil)
	}
	return nil
}
