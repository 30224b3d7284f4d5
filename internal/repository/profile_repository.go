package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/vessel-management/internal/model"
)

// ProfileRepo reads and upserts `user_profiles`, one row per account.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

// Get returns the profile of userID with the account email attached.
func (r *ProfileRepo) Get(ctx context.Context, userID uint64) (model.Profile, error) {
	const q = `SELECT p.user_id, u.email, p.first_name, p.surname, p.date_of_birth,
	                  p.building_house, p.street_address, p.city_town, p.county_state,
	                  p.postal_zip, p.country, p.telephone, p.nationality, p.updated_at
	           FROM user_profiles p JOIN users u ON u.id = p.user_id
	           WHERE p.user_id = ?`
	var p model.Profile
	err := r.DB.QueryRowContext(ctx, q, userID).Scan(
		&p.UserID, &p.Email, &p.FirstName, &p.Surname, &p.DateOfBirth,
		&p.BuildingHouse, &p.StreetAddress, &p.CityTown, &p.CountyState,
		&p.PostalZip, &p.Country, &p.Telephone, &p.Nationality, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrNotFound
	}
	return p, err
}

// Upsert creates the row on first save and replaces every column after.
func (r *ProfileRepo) Upsert(ctx context.Context, p model.Profile) error {
	const q = `INSERT INTO user_profiles
	             (user_id, first_name, surname, date_of_birth, building_house, street_address,
	              city_town, county_state, postal_zip, country, telephone, nationality)
	           VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
	           ON DUPLICATE KEY UPDATE
	             first_name=VALUES(first_name), surname=VALUES(surname),
	             date_of_birth=VALUES(date_of_birth), building_house=VALUES(building_house),
	             street_address=VALUES(street_address), city_town=VALUES(city_town),
	             county_state=VALUES(county_state), postal_zip=VALUES(postal_zip),
	             country=VALUES(country), telephone=VALUES(telephone),
	             nationality=VALUES(nationality), updated_at=CURRENT_TIMESTAMP`
	_, err := r.DB.ExecContext(ctx, q,
		p.UserID, p.FirstName, p.Surname, p.DateOfBirth, p.BuildingHouse, p.StreetAddress,
		p.CityTown, p.CountyState, p.PostalZip, p.Country, p.Telephone, p.Nationality)
	return err
}

// NextOfKinRepo reads and upserts `next_of_kin`, one row per account.
type NextOfKinRepo struct{ DB *sql.DB }

func NewNextOfKinRepo(db *sql.DB) *NextOfKinRepo { return &NextOfKinRepo{DB: db} }

func (r *NextOfKinRepo) Get(ctx context.Context, userID uint64) (model.NextOfKin, error) {
	const q = `SELECT id, user_id, full_name, relationship, building_house, street_address,
	                  city_town, county_state, postal_zip, country, telephone, updated_at
	           FROM next_of_kin WHERE user_id = ?`
	var n model.NextOfKin
	err := r.DB.QueryRowContext(ctx, q, userID).Scan(
		&n.ID, &n.UserID, &n.FullName, &n.Relationship, &n.BuildingHouse, &n.StreetAddress,
		&n.CityTown, &n.CountyState, &n.PostalZip, &n.Country, &n.Telephone, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NextOfKin{}, ErrNotFound
	}
	return n, err
}

func (r *NextOfKinRepo) Upsert(ctx context.Context, n model.NextOfKin) error {
	const q = `INSERT INTO next_of_kin
	             (user_id, full_name, relationship, building_house, street_address,
	              city_town, county_state, postal_zip, country, telephone)
	           VALUES (?,?,?,?,?,?,?,?,?,?)
	           ON DUPLICATE KEY UPDATE
	             full_name=VALUES(full_name), relationship=VALUES(relationship),
	             building_house=VALUES(building_house), street_address=VALUES(street_address),
	             city_town=VALUES(city_town), county_state=VALUES(county_state),
	             postal_zip=VALUES(postal_zip), country=VALUES(country),
	             telephone=VALUES(telephone), updated_at=CURRENT_TIMESTAMP`
	_, err := r.DB.ExecContext(ctx, q,
		n.UserID, n.FullName, n.Relationship, n.BuildingHouse, n.StreetAddress,
		n.CityTown, n.CountyState, n.PostalZip, n.Country, n.Telephone)
	return err
}

// MedicalRepo reads and upserts `medical_info`.  Detail columns are
// written exactly as given, independent of their flags.
type MedicalRepo struct{ DB *sql.DB }

func NewMedicalRepo(db *sql.DB) *MedicalRepo { return &MedicalRepo{DB: db} }

func (r *MedicalRepo) Get(ctx context.Context, userID uint64) (model.MedicalInfo, error) {
	const q = `SELECT id, user_id, doctor_name, doctor_contact, medical_certificate_expiry,
	                  chronic_illness, chronic_illness_details,
	                  current_medications, current_medications_details,
	                  recent_surgery, recent_surgery_details,
	                  allergies, allergies_details,
	                  medical_fitness_declaration, updated_at
	           FROM medical_info WHERE user_id = ?`
	var m model.MedicalInfo
	err := r.DB.QueryRowContext(ctx, q, userID).Scan(
		&m.ID, &m.UserID, &m.DoctorName, &m.DoctorContact, &m.MedicalCertificateExpiry,
		&m.ChronicIllness, &m.ChronicIllnessDetails,
		&m.CurrentMedications, &m.CurrentMedicationsDetails,
		&m.RecentSurgery, &m.RecentSurgeryDetails,
		&m.Allergies, &m.AllergiesDetails,
		&m.MedicalFitnessDeclaration, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.MedicalInfo{}, ErrNotFound
	}
	return m, err
}

func (r *MedicalRepo) Upsert(ctx context.Context, m model.MedicalInfo) error {
	const q = `INSERT INTO medical_info
	             (user_id, doctor_name, doctor_contact, medical_certificate_expiry,
	              chronic_illness, chronic_illness_details,
	              current_medications, current_medications_details,
	              recent_surgery, recent_surgery_details,
	              allergies, allergies_details, medical_fitness_declaration)
	           VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
	           ON DUPLICATE KEY UPDATE
	             doctor_name=VALUES(doctor_name), doctor_contact=VALUES(doctor_contact),
	             medical_certificate_expiry=VALUES(medical_certificate_expiry),
	             chronic_illness=VALUES(chronic_illness), chronic_illness_details=VALUES(chronic_illness_details),
	             current_medications=VALUES(current_medications), current_medications_details=VALUES(current_medications_details),
	             recent_surgery=VALUES(recent_surgery), recent_surgery_details=VALUES(recent_surgery_details),
	             allergies=VALUES(allergies), allergies_details=VALUES(allergies_details),
	             medical_fitness_declaration=VALUES(medical_fitness_declaration),
	             updated_at=CURRENT_TIMESTAMP`
	_, err := r.DB.ExecContext(ctx, q,
		m.UserID, m.DoctorName, m.DoctorContact, m.MedicalCertificateExpiry,
		m.ChronicIllness, m.ChronicIllnessDetails,
		m.CurrentMedications, m.CurrentMedicationsDetails,
		m.RecentSurgery, m.RecentSurgeryDetails,
		m.Allergies, m.AllergiesDetails, m.MedicalFitnessDeclaration)
	return err
}

// SignatureRepo keeps the single current signature of an account.
type SignatureRepo struct{ DB *sql.DB }

func NewSignatureRepo(db *sql.DB) *SignatureRepo { return &SignatureRepo{DB: db} }

func (r *SignatureRepo) Get(ctx context.Context, userID uint64) (model.ElectronicSignature, error) {
	const q = `SELECT id, user_id, signature_data, signature_type, created_at, updated_at
	           FROM electronic_signatures WHERE user_id = ?`
	var s model.ElectronicSignature
	err := r.DB.QueryRowContext(ctx, q, userID).Scan(
		&s.ID, &s.UserID, &s.SignatureData, &s.SignatureType, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ElectronicSignature{}, ErrNotFound
	}
	return s, err
}

// Upsert overwrites the slot.  An empty type is stored as drawn.
func (r *SignatureRepo) Upsert(ctx context.Context, s model.ElectronicSignature) error {
	if s.SignatureType == "" {
		s.SignatureType = model.SignatureTypeDrawn
	}
	const q = `INSERT INTO electronic_signatures (user_id, signature_data, signature_type)
	           VALUES (?,?,?)
	           ON DUPLICATE KEY UPDATE
	             signature_data=VALUES(signature_data), signature_type=VALUES(signature_type),
	             updated_at=CURRENT_TIMESTAMP`
	_, err := r.DB.ExecContext(ctx, q, s.UserID, s.SignatureData, s.SignatureType)
	return err
}
