package model

import (
	"time"

	"github.com/google/uuid"
)

// Visit is an immutable record of a visitor checking in to see a patient.
type Visit struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PatientID   uuid.UUID `json:"patient_id" db:"patient_id"`
	VisitorName string    `json:"visitor_name" db:"visitor_name"`
	VisitorDoc  string    `json:"visitor_doc" db:"visitor_doc"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// VisitWithPatient is a Visit joined with the visited patient's name,
// as shown in the recent-visit history.
type VisitWithPatient struct {
	Visit
	PatientName string `json:"patient_name" db:"patient_name"`
}

// RegisterVisitRequest represents visitor check-in parameters
type RegisterVisitRequest struct {
	PatientID   string `json:"patient_id" binding:"required"`
	VisitorName string `json:"visitor_name" binding:"required"`
	VisitorDoc  string `json:"visitor_doc" binding:"required"`
}
