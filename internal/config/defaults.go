package config

import "medmatch/internal/record"

const (
	defaultDatabasePath       = "~/.local/share/medmatch/medmatch.db"
	defaultModelPath          = "~/.local/share/medmatch/models/dedupe_model.json"
	defaultOutputDir          = "~/.local/share/medmatch/results"
	defaultLogDir             = "~/.local/share/medmatch/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultThreshold          = 0.5
	defaultLabelBudget        = 40
	defaultLabelBatchSize     = 5
	defaultUncertaintyEpsilon = 0.05
)

func defaultBlockingPredicates() []string {
	return []string{"last_name_birth_year", "phone", "email"}
}

// defaultFieldMappings covers the four known sources. Columns already using
// canonical names map to themselves; full_name is split by the normalizer.
func defaultFieldMappings() map[string]map[string]string {
	return map[string]map[string]string{
		record.SourceClinic: {
			"first_name":    record.FieldFirstName,
			"last_name":     record.FieldLastName,
			"date_of_birth": record.FieldDateOfBirth,
			"phone_number":  record.FieldPhoneNumber,
			"email":         record.FieldEmail,
			"address":       record.FieldAddress,
		},
		record.SourceUrgentCare: {
			"first_name":   record.FieldFirstName,
			"last_name":    record.FieldLastName,
			"dob":          record.FieldDateOfBirth,
			"phone":        record.FieldPhoneNumber,
			"email":        record.FieldEmail,
			"address_line": record.FieldAddress,
		},
		record.SourceHospital: {
			"first_name":    record.FieldFirstName,
			"last_name":     record.FieldLastName,
			"date_of_birth": record.FieldDateOfBirth,
			"phone_number":  record.FieldPhoneNumber,
			"email_address": record.FieldEmail,
			"address":       record.FieldAddress,
		},
		record.SourcePhysicalTherapy: {
			"full_name":      "full_name",
			"dob":            record.FieldDateOfBirth,
			"contact_phone":  record.FieldPhoneNumber,
			"email":          record.FieldEmail,
			"street_address": record.FieldAddress,
			"city":           record.FieldAddress,
			"state":          record.FieldAddress,
			"zip_code":       record.FieldAddress,
		},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Database:  defaultDatabasePath,
			Model:     defaultModelPath,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Dedupe: Dedupe{
			Threshold:          defaultThreshold,
			BlockingPredicates: defaultBlockingPredicates(),
			LabelBudget:        defaultLabelBudget,
			LabelBatchSize:     defaultLabelBatchSize,
			UncertaintyEpsilon: defaultUncertaintyEpsilon,
		},
		FieldMappings: defaultFieldMappings(),
		LogLevel:      defaultLogLevel,
		LogFormat:     defaultLogFormat,
	}
}
