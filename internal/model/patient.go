package model

// Patient status constants
const (
	PatientStatusAdmitted   = "Admitted"
	PatientStatusDischarged = "Discharged"
)

// Patient represents a hospitalized patient. Status is one-way: once
// discharged a patient never returns to the admitted set.
type Patient struct {
	Base
	Name   string `json:"name" db:"name"`
	Room   string `json:"room" db:"room"`
	Bed    string `json:"bed" db:"bed"`
	Status string `json:"status" db:"status"`
}

// AdmitPatientRequest represents patient admission parameters
type AdmitPatientRequest struct {
	Name string `json:"name" binding:"required"`
	Room string `json:"room" binding:"required"`
	Bed  string `json:"bed" binding:"required"`
}

// PatientFilters represents patient list parameters
type PatientFilters struct {
	Status string `json:"status" form:"status"`
}

// DashboardStats aggregates the dashboard counters.
type DashboardStats struct {
	AdmittedPatients int `json:"admitted_patients"`
	VisitsToday      int `json:"visits_today"`
}
