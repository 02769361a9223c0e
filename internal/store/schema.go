package store

import "medmatch/internal/record"

const schema = `
CREATE TABLE IF NOT EXISTS clinic_patients (
    patient_id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT,
    last_name TEXT,
    date_of_birth TEXT,
    phone_number TEXT,
    email TEXT,
    address TEXT,
    insurance_id TEXT
);

CREATE TABLE IF NOT EXISTS urgent_care_patients (
    patient_id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT,
    last_name TEXT,
    dob TEXT,
    phone TEXT,
    email TEXT,
    address_line TEXT
);

CREATE TABLE IF NOT EXISTS hospital_patients (
    patient_id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT,
    last_name TEXT,
    date_of_birth TEXT,
    phone_number TEXT,
    email_address TEXT,
    address TEXT
);

CREATE TABLE IF NOT EXISTS physical_therapy_patients (
    patient_id INTEGER PRIMARY KEY AUTOINCREMENT,
    full_name TEXT,
    dob TEXT,
    contact_phone TEXT,
    email TEXT,
    street_address TEXT,
    city TEXT,
    state TEXT,
    zip_code TEXT
);
`

// sourceTables maps source tags to their table and declared column set.
var sourceTables = map[string]struct {
	table   string
	columns []string
}{
	record.SourceClinic: {
		table:   "clinic_patients",
		columns: []string{"first_name", "last_name", "date_of_birth", "phone_number", "email", "address", "insurance_id"},
	},
	record.SourceUrgentCare: {
		table:   "urgent_care_patients",
		columns: []string{"first_name", "last_name", "dob", "phone", "email", "address_line"},
	},
	record.SourceHospital: {
		table:   "hospital_patients",
		columns: []string{"first_name", "last_name", "date_of_birth", "phone_number", "email_address", "address"},
	},
	record.SourcePhysicalTherapy: {
		table:   "physical_therapy_patients",
		columns: []string{"full_name", "dob", "contact_phone", "email", "street_address", "city", "state", "zip_code"},
	},
}
