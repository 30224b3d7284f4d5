package model

import "time"

// CertificateType names a recognized maritime credential.
type CertificateType string

const (
	CertificateCoC     CertificateType = "Certificates of Competency (CoC)"
	CertificateSTCW    CertificateType = "STCW Basic Training"
	CertificateGMDSS   CertificateType = "GMDSS"
	CertificateMedical CertificateType = "Seafarers Medical"
	CertificateOther   CertificateType = "Other"
)

// CertificateTypes lists the accepted types in display order.
var CertificateTypes = []CertificateType{
	CertificateCoC,
	CertificateSTCW,
	CertificateGMDSS,
	CertificateMedical,
	CertificateOther,
}

// Valid reports whether t is a recognized certificate type.
func (t CertificateType) Valid() bool {
	for _, v := range CertificateTypes {
		if v == t {
			return true
		}
	}
	return false
}

// CertificateStatus is derived from the expiry date at read time and is
// never stored.
type CertificateStatus string

const (
	StatusValid        CertificateStatus = "valid"
	StatusExpiringSoon CertificateStatus = "expiring_soon"
	StatusExpired      CertificateStatus = "expired"
)

// ExpiryWarningDays is the window in which a certificate counts as
// expiring soon.  The boundary day itself is inclusive.
const ExpiryWarningDays = 30

// StatusAt classifies an expiry date against the calendar day of now
// (UTC): expired before today, expiring_soon from today up to and
// including today+30 days, valid afterwards.
func StatusAt(expiry Date, now time.Time) CertificateStatus {
	today := DateOf(now)
	switch {
	case expiry.Before(today):
		return StatusExpired
	case !expiry.After(today.AddDays(ExpiryWarningDays)):
		return StatusExpiringSoon
	default:
		return StatusValid
	}
}

// Certificate is an append-only credential record (`certificates`).
// Status is filled by WithStatus just before the record is returned.
type Certificate struct {
	ID              uint64            `json:"id,omitempty"`
	UserID          uint64            `json:"user_id,omitempty"`
	CertificateType CertificateType   `json:"certificate_type,omitempty"`
	ValidFrom       Date              `json:"valid_from"`
	ExpiryDate      Date              `json:"expiry_date"`
	IssuedBy        string            `json:"issued_by,omitempty"`
	FilePath        *string           `json:"file_path,omitempty"`
	CreatedAt       *time.Time        `json:"created_at,omitempty"`
	Status          CertificateStatus `json:"status,omitempty"`
}

// Validate checks the fields required to create a certificate.
func (c Certificate) Validate() error {
	switch {
	case c.CertificateType == "":
		return required("certificate_type")
	case !c.CertificateType.Valid():
		return &FieldError{Field: "certificate_type", Reason: "is invalid"}
	case c.ValidFrom.IsZero():
		return required("valid_from")
	case c.ExpiryDate.IsZero():
		return required("expiry_date")
	case c.ExpiryDate.Before(c.ValidFrom):
		return &FieldError{Field: "expiry_date", Reason: "must not be before valid_from"}
	case isBlank(c.IssuedBy):
		return required("issued_by")
	}
	return nil
}

// WithStatus returns a copy of c with Status derived for now.
func (c Certificate) WithStatus(now time.Time) Certificate {
	c.Status = StatusAt(c.ExpiryDate, now)
	return c
}
