package model

import "time"

// Vessel is a ship tracked by the system (`vessels`).
type Vessel struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	IMONumber    *string   `json:"imo_number,omitempty"`
	VesselType   string    `json:"vessel_type"`
	FlagState    string    `json:"flag_state"`
	GrossTonnage *float64  `json:"gross_tonnage,omitempty"`
	Length       *float64  `json:"length,omitempty"`
	Beam         *float64  `json:"beam,omitempty"`
	YearBuilt    *int      `json:"year_built,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (v Vessel) Validate() error {
	switch {
	case isBlank(v.Name):
		return required("name")
	case isBlank(v.VesselType):
		return required("vessel_type")
	case isBlank(v.FlagState):
		return required("flag_state")
	}
	return nil
}

// Maintenance task states.  New tasks default to pending.
const (
	MaintenancePending    = "pending"
	MaintenanceInProgress = "in_progress"
	MaintenanceCompleted  = "completed"
)

// MaintenanceTask is a planned or completed job on a vessel
// (`maintenance_records`).
type MaintenanceTask struct {
	ID              uint64    `json:"id"`
	VesselID        uint64    `json:"vessel_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	MaintenanceType string    `json:"maintenance_type"`
	ScheduledDate   *Date     `json:"scheduled_date,omitempty"`
	CompletedDate   *Date     `json:"completed_date,omitempty"`
	Status          string    `json:"status"`
	AssignedTo      *uint64   `json:"assigned_to,omitempty"`
	Cost            *float64  `json:"cost,omitempty"`
	CreatedBy       uint64    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

func (m MaintenanceTask) Validate() error {
	switch {
	case m.VesselID == 0:
		return required("vessel_id")
	case isBlank(m.Title):
		return required("title")
	}
	return nil
}

// Safety record states.  New records default to open.
const (
	SafetyOpen          = "open"
	SafetyInvestigating = "investigating"
	SafetyClosed        = "closed"
)

// SafetyRecord is a reported incident on a vessel (`safety_records`).
type SafetyRecord struct {
	ID                uint64    `json:"id"`
	VesselID          uint64    `json:"vessel_id"`
	IncidentType      string    `json:"incident_type"`
	Description       string    `json:"description"`
	IncidentDate      *Date     `json:"incident_date,omitempty"`
	Severity          string    `json:"severity"`
	Status            string    `json:"status"`
	CorrectiveActions *string   `json:"corrective_actions,omitempty"`
	ReportedBy        uint64    `json:"reported_by"`
	CreatedAt         time.Time `json:"created_at"`
}

func (s SafetyRecord) Validate() error {
	switch {
	case s.VesselID == 0:
		return required("vessel_id")
	case isBlank(s.IncidentType):
		return required("incident_type")
	}
	return nil
}

// CrewAssignment places a crew member on a vessel (`crew_assignments`).
// At most one assignment per user is expected to be active.
type CrewAssignment struct {
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"user_id"`
	VesselID  uint64 `json:"vessel_id"`
	Position  string `json:"position"`
	StartDate *Date  `json:"start_date,omitempty"`
	EndDate   *Date  `json:"end_date,omitempty"`
	IsActive  bool   `json:"is_active"`
}

func (a CrewAssignment) Validate() error {
	switch {
	case a.VesselID == 0:
		return required("vessel_id")
	case isBlank(a.Position):
		return required("position")
	}
	return nil
}

// MyAssignment pairs the caller's active assignment with its vessel.
type MyAssignment struct {
	Assignment CrewAssignment `json:"assignment"`
	Vessel     *Vessel        `json:"vessel"`
}

// Dashboard summarizes fleet state for the landing page.
type Dashboard struct {
	TotalVessels       int               `json:"total_vessels"`
	ActiveVessels      int               `json:"active_vessels"`
	PendingMaintenance int               `json:"pending_maintenance"`
	OpenSafetyIssues   int               `json:"open_safety_issues"`
	RecentVessels      []Vessel          `json:"recent_vessels"`
	RecentMaintenance  []MaintenanceTask `json:"recent_maintenance"`
	RecentSafety       []SafetyRecord    `json:"recent_safety"`
	UserAssignment     *CrewAssignment   `json:"user_assignment"`
}
