package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// SeedSpec controls synthetic data generation. The same spec always produces
// the same database contents.
type SeedSpec struct {
	// PoolSize is the number of shared patients duplicated across tables.
	PoolSize int
	// Duplicates is how many pool patients each table receives.
	Duplicates int
	// Unique is how many unrelated patients each table receives.
	Unique int
	// Seed initializes the generator.
	Seed int64
}

var (
	seedFirstNames = []string{
		"james", "mary", "robert", "patricia", "john", "jennifer", "michael",
		"linda", "david", "elizabeth", "william", "barbara", "richard", "susan",
		"joseph", "jessica", "thomas", "sarah", "carlos", "maria",
	}
	seedLastNames = []string{
		"smith", "johnson", "williams", "brown", "jones", "garcia", "miller",
		"davis", "rodriguez", "martinez", "hernandez", "lopez", "wilson",
		"anderson", "taylor", "moore", "jackson", "lee", "perez", "nguyen",
	}
	seedStreets = []string{
		"main st", "oak ave", "maple dr", "cedar ln", "elm st", "park rd",
		"washington blvd", "lake view ct", "sunset ter", "river rd",
	}
	seedCities = []struct {
		city  string
		state string
		zip   string
	}{
		{"springfield", "IL", "62704"},
		{"riverton", "NJ", "08077"},
		{"fairview", "OR", "97024"},
		{"georgetown", "TX", "78626"},
		{"clinton", "MI", "49236"},
	}
	seedDomains = []string{"example.com", "mail.test", "inbox.example.org"}
)

// patient is a generated identity before per-source formatting.
type patient struct {
	first  string
	last   string
	dob    time.Time
	phone  string // ten digits
	email  string
	street string
	city   string
	state  string
	zip    string
	insID  string
}

// Seed populates every source table: a shared pool of patients is written
// into each table with that source's formatting quirks (so true duplicates
// appear under different shapes), followed by per-table unique patients.
func (s *Store) Seed(ctx context.Context, spec SeedSpec) error {
	if spec.PoolSize < 1 || spec.Duplicates < 0 || spec.Unique < 0 {
		return fmt.Errorf("invalid seed spec: %+v", spec)
	}
	rng := rand.New(rand.NewSource(spec.Seed))

	pool := make([]patient, spec.PoolSize)
	for i := range pool {
		pool[i] = generatePatient(rng)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for i := 0; i < spec.Duplicates; i++ {
		p := pool[i%len(pool)]
		if err := insertClinic(ctx, tx, p); err != nil {
			return err
		}
		if err := insertUrgentCare(ctx, tx, p); err != nil {
			return err
		}
		if err := insertHospital(ctx, tx, p); err != nil {
			return err
		}
		if err := insertPhysicalTherapy(ctx, tx, p); err != nil {
			return err
		}
	}

	for i := 0; i < spec.Unique; i++ {
		if err := insertClinic(ctx, tx, generatePatient(rng)); err != nil {
			return err
		}
		if err := insertUrgentCare(ctx, tx, generatePatient(rng)); err != nil {
			return err
		}
		if err := insertHospital(ctx, tx, generatePatient(rng)); err != nil {
			return err
		}
		if err := insertPhysicalTherapy(ctx, tx, generatePatient(rng)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}

func generatePatient(rng *rand.Rand) patient {
	first := seedFirstNames[rng.Intn(len(seedFirstNames))]
	last := seedLastNames[rng.Intn(len(seedLastNames))]
	place := seedCities[rng.Intn(len(seedCities))]

	dob := time.Date(1930+rng.Intn(70), time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC)
	phone := fmt.Sprintf("%03d%03d%04d", 200+rng.Intn(700), 200+rng.Intn(700), rng.Intn(10000))
	email := fmt.Sprintf("%s.%s%d@%s", first, last, rng.Intn(100), seedDomains[rng.Intn(len(seedDomains))])
	street := fmt.Sprintf("%d %s", 1+rng.Intn(999), seedStreets[rng.Intn(len(seedStreets))])
	insID := fmt.Sprintf("INS%05d", rng.Intn(100000))

	return patient{
		first: first, last: last, dob: dob, phone: phone, email: email,
		street: street, city: place.city, state: place.state, zip: place.zip,
		insID: insID,
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func insertClinic(ctx context.Context, tx *sql.Tx, p patient) error {
	address := fmt.Sprintf("%s, %s, %s %s", p.street, p.city, p.state, p.zip)
	phone := fmt.Sprintf("(%s) %s-%s", p.phone[:3], p.phone[3:6], p.phone[6:])
	_, err := tx.ExecContext(ctx,
		`INSERT INTO clinic_patients (first_name, last_name, date_of_birth, phone_number, email, address, insurance_id)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		title(p.first), title(p.last), p.dob.Format("2006-01-02"), phone, p.email, address, p.insID)
	if err != nil {
		return fmt.Errorf("seed clinic: %w", err)
	}
	return nil
}

func insertUrgentCare(ctx context.Context, tx *sql.Tx, p patient) error {
	address := fmt.Sprintf("%s %s %s", p.street, p.city, p.state)
	phone := fmt.Sprintf("%s-%s-%s", p.phone[:3], p.phone[3:6], p.phone[6:])
	_, err := tx.ExecContext(ctx,
		`INSERT INTO urgent_care_patients (first_name, last_name, dob, phone, email, address_line)
         VALUES (?, ?, ?, ?, ?, ?)`,
		strings.ToUpper(p.first), strings.ToUpper(p.last), p.dob.Format("01/02/2006"), phone, strings.ToUpper(p.email), address)
	if err != nil {
		return fmt.Errorf("seed urgent care: %w", err)
	}
	return nil
}

func insertHospital(ctx context.Context, tx *sql.Tx, p patient) error {
	address, err := json.Marshal(map[string]string{
		"street": p.street, "city": p.city, "state": p.state, "zip": p.zip,
	})
	if err != nil {
		return fmt.Errorf("marshal hospital address: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO hospital_patients (first_name, last_name, date_of_birth, phone_number, email_address, address)
         VALUES (?, ?, ?, ?, ?, ?)`,
		title(p.first), title(p.last), p.dob.Format("2006-01-02"), p.phone, p.email, string(address))
	if err != nil {
		return fmt.Errorf("seed hospital: %w", err)
	}
	return nil
}

func insertPhysicalTherapy(ctx context.Context, tx *sql.Tx, p patient) error {
	phone := fmt.Sprintf("%s.%s.%s", p.phone[:3], p.phone[3:6], p.phone[6:])
	_, err := tx.ExecContext(ctx,
		`INSERT INTO physical_therapy_patients (full_name, dob, contact_phone, email, street_address, city, state, zip_code)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		title(p.first)+" "+title(p.last), p.dob.Format("Jan 2, 2006"), phone, p.email, p.street, p.city, p.state, p.zip)
	if err != nil {
		return fmt.Errorf("seed physical therapy: %w", err)
	}
	return nil
}
