package profileview

import "time"

// Section names one independently loaded and saved part of the view.
type Section string

const (
	SectionProfile      Section = "profile"
	SectionNextOfKin    Section = "nextofkin"
	SectionMedical      Section = "medical"
	SectionCertificates Section = "certificates"
	SectionSignature    Section = "signature"
)

// Sections lists every section in display order.
var Sections = []Section{
	SectionProfile,
	SectionNextOfKin,
	SectionMedical,
	SectionCertificates,
	SectionSignature,
}

// MessageTTL is how long a save message stays visible.
const MessageTTL = 3 * time.Second

// Phase is the save state of a section.
type Phase int

const (
	Idle Phase = iota
	Saving
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Saving:
		return "saving"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "idle"
}

// Status is the save state of a section.  Message and ExpiresAt are set
// only in Succeeded and Failed.
type Status struct {
	Phase     Phase
	Message   string
	ExpiresAt time.Time
}

// Expired reports whether a message status should return to idle at now.
func (s Status) Expired(now time.Time) bool {
	return (s.Phase == Succeeded || s.Phase == Failed) && !now.Before(s.ExpiresAt)
}

// LoadState is the result of a section's initial fetch.
type LoadState int

const (
	Pending LoadState = iota
	Loaded
	LoadFailed
)

// SectionLoad records how a section's fetch ended.
type SectionLoad struct {
	State LoadState
	Err   error
}

type messages struct{ ok, fail string }

var saveMessages = map[Section]messages{
	SectionProfile:      {"Personal information updated successfully!", "Failed to update personal information"},
	SectionNextOfKin:    {"Next of kin information updated successfully!", "Failed to update next of kin information"},
	SectionMedical:      {"Medical information updated successfully!", "Failed to update medical information"},
	SectionCertificates: {"Certificate added successfully!", "Failed to add certificate"},
	SectionSignature:    {"Electronic signature saved successfully!", "Failed to save electronic signature"},
}
