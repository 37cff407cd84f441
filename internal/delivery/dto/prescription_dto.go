package dto

import (
	"time"

	"github.com/google/uuid"
)

// UploadPrescriptionRequest carries the plain fields of the multipart upload
type UploadPrescriptionRequest struct {
	PharmacyID       *uuid.UUID `json:"pharmacy_id"`
	DoctorID         *uuid.UUID `json:"doctor_id"`
	PrescriptionType string     `json:"prescription_type" validate:"omitempty,oneof=regular chronic emergency controlled"`
	Notes            string     `json:"notes" validate:"omitempty,max=2000"`
	ExpiryDate       string     `json:"expiry_date"`
}

type PrescriptionItemRequest struct {
	MedicationID   *uuid.UUID `json:"medication_id"`
	MedicationName string     `json:"medication_name" validate:"required_without=MedicationID,max=200"`
	Dosage         string     `json:"dosage" validate:"omitempty,max=100"`
	Frequency      string     `json:"frequency" validate:"omitempty,max=100"`
	Duration       string     `json:"duration" validate:"omitempty,max=100"`
	Quantity       int        `json:"quantity" validate:"omitempty,gte=1,lte=1000"`
	Instructions   string     `json:"instructions" validate:"omitempty,max=1000"`
}

type IssuePrescriptionRequest struct {
	PatientID        uuid.UUID                 `json:"patient_id" validate:"required"`
	PharmacyID       *uuid.UUID                `json:"pharmacy_id"`
	PrescriptionType string                    `json:"prescription_type" validate:"omitempty,oneof=regular chronic emergency controlled"`
	Diagnosis        string                    `json:"diagnosis" validate:"omitempty,max=2000"`
	DiagnosisAr      string                    `json:"diagnosis_ar" validate:"omitempty,max=2000"`
	Notes            string                    `json:"notes" validate:"omitempty,max=2000"`
	ExpiryDate       string                    `json:"expiry_date"`
	Items            []PrescriptionItemRequest `json:"items" validate:"required,min=1,max=50,dive"`
}

type PrescriptionVerificationRequest struct {
	Notes   string `json:"notes" validate:"omitempty,max=2000"`
	NotesAr string `json:"notes_ar" validate:"omitempty,max=2000"`
}

type PrescriptionItemResponse struct {
	ID             uuid.UUID  `json:"id"`
	MedicationID   *uuid.UUID `json:"medication_id,omitempty"`
	MedicationName string     `json:"medication_name"`
	Dosage         string     `json:"dosage,omitempty"`
	Frequency      string     `json:"frequency,omitempty"`
	Duration       string     `json:"duration,omitempty"`
	Quantity       int        `json:"quantity"`
	Instructions   string     `json:"instructions,omitempty"`
}

type PrescriptionResponse struct {
	ID                       uuid.UUID                  `json:"id"`
	PrescriptionNumber       string                     `json:"prescription_number"`
	Status                   string                     `json:"status"`
	DisplayStatus            string                     `json:"display_status"`
	PrescriptionType         string                     `json:"prescription_type"`
	Patient                  *UserSummary               `json:"patient,omitempty"`
	Doctor                   *UserSummary               `json:"doctor,omitempty"`
	PharmacyID               *uuid.UUID                 `json:"pharmacy_id,omitempty"`
	PharmacyName             string                     `json:"pharmacy_name,omitempty"`
	Diagnosis                string                     `json:"diagnosis,omitempty"`
	DiagnosisAr              string                     `json:"diagnosis_ar,omitempty"`
	DisplayDiagnosis         string                     `json:"display_diagnosis,omitempty"`
	Notes                    string                     `json:"notes,omitempty"`
	ImageURL                 string                     `json:"image_url,omitempty"`
	IssueDate                string                     `json:"issue_date"`
	ExpiryDate               string                     `json:"expiry_date"`
	IsExpired                bool                       `json:"is_expired"`
	VerifiedBy               *uuid.UUID                 `json:"verified_by,omitempty"`
	VerifiedAt               *time.Time                 `json:"verified_at,omitempty"`
	VerificationNotes        string                     `json:"verification_notes,omitempty"`
	VerificationNotesAr      string                     `json:"verification_notes_ar,omitempty"`
	DisplayVerificationNotes string                     `json:"display_verification_notes,omitempty"`
	Items                    []PrescriptionItemResponse `json:"items"`
	CreatedAt                time.Time                  `json:"created_at"`
}
