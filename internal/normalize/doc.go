// Package normalize maps per-source raw records into the canonical record
// shape and owns all field-level cleansing rules.
//
// Normalization never fails on malformed field content: values that cannot be
// cleaned (an unparsable date, a phone with no digits) become null with a
// warning, and the record still flows through the pipeline. Structural
// problems are not this package's concern; required-field validation happens
// on the canonical output.
package normalize
