package profileview

import "github.com/iliyamo/vessel-management/internal/model"

// Medical condition flags whose detail text is only editable while set.
const (
	ChronicIllness     = "chronic_illness"
	CurrentMedications = "current_medications"
	RecentSurgery      = "recent_surgery"
	Allergies          = "allergies"
)

var conditions = []string{ChronicIllness, CurrentMedications, RecentSurgery, Allergies}

// MedicalForm is the local editing state of the medical section.
// Clearing a flag hides its detail but keeps the text, so setting the
// flag again brings it back.
type MedicalForm struct {
	model.MedicalInfo
}

// SetFlag sets one of the four condition flags.  Unknown names are
// ignored.
func (f *MedicalForm) SetFlag(name string, on bool) {
	if flag, _ := f.field(name); flag != nil {
		*flag = on
	}
}

// SetDetails sets the detail text of a condition.
func (f *MedicalForm) SetDetails(name, text string) {
	if _, details := f.field(name); details != nil {
		*details = text
	}
}

// Details returns the stored detail text, whether or not it is visible.
func (f *MedicalForm) Details(name string) string {
	if _, details := f.field(name); details != nil {
		return *details
	}
	return ""
}

// VisibleDetails lists the conditions whose detail field is editable.
func (f *MedicalForm) VisibleDetails() []string {
	var out []string
	for _, name := range conditions {
		if flag, _ := f.field(name); *flag {
			out = append(out, name)
		}
	}
	return out
}

// Payload is what gets submitted: a detail goes out only while its flag
// is set.
func (f *MedicalForm) Payload() model.MedicalInfo {
	p := f.MedicalInfo
	if !p.ChronicIllness {
		p.ChronicIllnessDetails = ""
	}
	if !p.CurrentMedications {
		p.CurrentMedicationsDetails = ""
	}
	if !p.RecentSurgery {
		p.RecentSurgeryDetails = ""
	}
	if !p.Allergies {
		p.AllergiesDetails = ""
	}
	return p
}

func (f *MedicalForm) field(name string) (flag *bool, details *string) {
	m := &f.MedicalInfo
	switch name {
	case ChronicIllness:
		return &m.ChronicIllness, &m.ChronicIllnessDetails
	case CurrentMedications:
		return &m.CurrentMedications, &m.CurrentMedicationsDetails
	case RecentSurgery:
		return &m.RecentSurgery, &m.RecentSurgeryDetails
	case Allergies:
		return &m.Allergies, &m.AllergiesDetails
	}
	return nil, nil
}
