package model

import "time"

// Profile holds the personal details of a crew member (`user_profiles`
// table, one row per account).  Every field is optional.  Email is
// copied from the account on read and ignored on write.
type Profile struct {
	UserID        uint64     `json:"-"`
	Email         string     `json:"email,omitempty"`
	FirstName     string     `json:"first_name,omitempty"`
	Surname       string     `json:"surname,omitempty"`
	DateOfBirth   *Date      `json:"date_of_birth,omitempty"`
	BuildingHouse string     `json:"building_house,omitempty"`
	StreetAddress string     `json:"street_address,omitempty"`
	CityTown      string     `json:"city_town,omitempty"`
	CountyState   string     `json:"county_state,omitempty"`
	PostalZip     string     `json:"postal_zip,omitempty"`
	Country       string     `json:"country,omitempty"`
	Telephone     string     `json:"telephone,omitempty"`
	Nationality   string     `json:"nationality,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// Relationship values accepted for a next of kin.
const (
	RelationshipSpouse  = "spouse"
	RelationshipParent  = "parent"
	RelationshipChild   = "child"
	RelationshipSibling = "sibling"
	RelationshipOther   = "other"
)

// Relationships lists the relationship values in display order.
var Relationships = []string{
	RelationshipSpouse,
	RelationshipParent,
	RelationshipChild,
	RelationshipSibling,
	RelationshipOther,
}

// ValidRelationship reports whether r is a known relationship value.
func ValidRelationship(r string) bool {
	for _, v := range Relationships {
		if v == r {
			return true
		}
	}
	return false
}

// NextOfKin is the emergency contact of a crew member (`next_of_kin`).
type NextOfKin struct {
	ID            uint64     `json:"id,omitempty"`
	UserID        uint64     `json:"user_id,omitempty"`
	FullName      string     `json:"full_name,omitempty"`
	Relationship  string     `json:"relationship,omitempty"`
	BuildingHouse string     `json:"building_house,omitempty"`
	StreetAddress string     `json:"street_address,omitempty"`
	CityTown      string     `json:"city_town,omitempty"`
	CountyState   string     `json:"county_state,omitempty"`
	PostalZip     string     `json:"postal_zip,omitempty"`
	Country       string     `json:"country,omitempty"`
	Telephone     string     `json:"telephone,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// Validate checks the fields a next of kin record needs to be complete.
func (n NextOfKin) Validate() error {
	switch {
	case isBlank(n.FullName):
		return required("full_name")
	case isBlank(n.Relationship):
		return required("relationship")
	case !ValidRelationship(n.Relationship):
		return &FieldError{Field: "relationship", Reason: "is invalid"}
	case isBlank(n.Telephone):
		return required("telephone")
	}
	return nil
}

// MedicalInfo is the medical declaration of a crew member
// (`medical_info`).  Each of the four condition flags has a free-text
// detail field.  Details are stored as sent, whatever the flag says.
// MedicalFitnessDeclaration is the one compliance attestation.
type MedicalInfo struct {
	ID                        uint64     `json:"id,omitempty"`
	UserID                    uint64     `json:"user_id,omitempty"`
	DoctorName                string     `json:"doctor_name,omitempty"`
	DoctorContact             string     `json:"doctor_contact,omitempty"`
	MedicalCertificateExpiry  *Date      `json:"medical_certificate_expiry,omitempty"`
	ChronicIllness            bool       `json:"chronic_illness"`
	ChronicIllnessDetails     string     `json:"chronic_illness_details,omitempty"`
	CurrentMedications        bool       `json:"current_medications"`
	CurrentMedicationsDetails string     `json:"current_medications_details,omitempty"`
	RecentSurgery             bool       `json:"recent_surgery"`
	RecentSurgeryDetails      string     `json:"recent_surgery_details,omitempty"`
	Allergies                 bool       `json:"allergies"`
	AllergiesDetails          string     `json:"allergies_details,omitempty"`
	MedicalFitnessDeclaration bool       `json:"medical_fitness_declaration"`
	UpdatedAt                 *time.Time `json:"updated_at,omitempty"`
}

// SignatureTypeDrawn marks a signature captured on the drawing pad.
const SignatureTypeDrawn = "drawn"

// ElectronicSignature is the single current signature of an account
// (`electronic_signatures`).  SignatureData is an opaque encoded image,
// usually a PNG data URL.
type ElectronicSignature struct {
	ID            uint64     `json:"id,omitempty"`
	UserID        uint64     `json:"user_id,omitempty"`
	SignatureData string     `json:"signature_data,omitempty"`
	SignatureType string     `json:"signature_type,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
