package entity

import (
	"time"

	"github.com/google/uuid"
)

// PrescriptionStatus represents the status of a prescription
type PrescriptionStatus string

const (
	PrescriptionStatusPending   PrescriptionStatus = "pending"
	PrescriptionStatusVerified  PrescriptionStatus = "verified"
	PrescriptionStatusRejected  PrescriptionStatus = "rejected"
	PrescriptionStatusFilled    PrescriptionStatus = "filled"
	PrescriptionStatusExpired   PrescriptionStatus = "expired"
	PrescriptionStatusCancelled PrescriptionStatus = "cancelled"
)

type PrescriptionType string

const (
	PrescriptionTypeRegular    PrescriptionType = "regular"
	PrescriptionTypeChronic    PrescriptionType = "chronic"
	PrescriptionTypeEmergency  PrescriptionType = "emergency"
	PrescriptionTypeControlled PrescriptionType = "controlled"
)

var prescriptionTransitions = map[PrescriptionStatus][]PrescriptionStatus{
	PrescriptionStatusPending: {
		PrescriptionStatusVerified,
		PrescriptionStatusRejected,
		PrescriptionStatusCancelled,
		PrescriptionStatusExpired,
	},
	PrescriptionStatusVerified: {
		PrescriptionStatusFilled,
		PrescriptionStatusCancelled,
		PrescriptionStatusExpired,
	},
}

// Prescription is an uploaded or doctor-issued prescription awaiting pharmacy verification
type Prescription struct {
	ID                  uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PrescriptionNumber  string             `gorm:"type:varchar(30);uniqueIndex;not null" json:"prescription_number"`
	PatientID           uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID            *uuid.UUID         `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	PharmacyID          *uuid.UUID         `gorm:"type:uuid;index" json:"pharmacy_id,omitempty"`
	Status              PrescriptionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PrescriptionType    PrescriptionType   `gorm:"type:varchar(20);not null;default:'regular'" json:"prescription_type"`
	Diagnosis           string             `gorm:"type:text" json:"diagnosis,omitempty"`
	DiagnosisAr         string             `gorm:"type:text" json:"diagnosis_ar,omitempty"`
	Notes               string             `gorm:"type:text" json:"notes,omitempty"`
	ImageURL            string             `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	IssueDate           time.Time          `gorm:"type:date;not null" json:"issue_date"`
	ExpiryDate          time.Time          `gorm:"type:date;not null;index" json:"expiry_date"`
	VerifiedBy          *uuid.UUID         `gorm:"type:uuid" json:"verified_by,omitempty"`
	VerifiedAt          *time.Time         `json:"verified_at,omitempty"`
	VerificationNotes   string             `gorm:"type:text" json:"verification_notes,omitempty"`
	VerificationNotesAr string             `gorm:"type:text" json:"verification_notes_ar,omitempty"`
	CreatedAt           time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient  *User              `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor   *User              `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Pharmacy *Pharmacy          `gorm:"foreignKey:PharmacyID" json:"pharmacy,omitempty"`
	Items    []PrescriptionItem `gorm:"foreignKey:PrescriptionID" json:"items,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// CanTransitionTo checks the status against the prescription lifecycle
func (p *Prescription) CanTransitionTo(next PrescriptionStatus) bool {
	for _, allowed := range prescriptionTransitions[p.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (p *Prescription) IsExpiredAt(now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return p.ExpiryDate.Before(today)
}

// IsUsableFor reports whether an order by the patient at the pharmacy may attach it
func (p *Prescription) IsUsableFor(patientID, pharmacyID uuid.UUID, now time.Time) bool {
	if p.PatientID != patientID || p.Status != PrescriptionStatusVerified || p.IsExpiredAt(now) {
		return false
	}
	return p.PharmacyID == nil || *p.PharmacyID == pharmacyID
}

// IsVisibleTo reports whether the user may read the prescription
func (p *Prescription) IsVisibleTo(userID uuid.UUID, roleID int) bool {
	switch {
	case roleID == RoleIDAdmin:
		return true
	case p.PatientID == userID:
		return true
	case p.DoctorID != nil && *p.DoctorID == userID:
		return true
	case roleID == RoleIDPharmacy:
		if p.PharmacyID == nil {
			return p.Status == PrescriptionStatusPending
		}
		return *p.PharmacyID == userID
	}
	return false
}

// PrescriptionItem is one medication line of a prescription; MedicationName covers
// medications not in the catalog
type PrescriptionItem struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PrescriptionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"prescription_id"`
	MedicationID   *uuid.UUID `gorm:"type:uuid" json:"medication_id,omitempty"`
	MedicationName string     `gorm:"type:varchar(200)" json:"medication_name,omitempty"`
	Dosage         string     `gorm:"type:varchar(100)" json:"dosage,omitempty"`
	Frequency      string     `gorm:"type:varchar(100)" json:"frequency,omitempty"`
	Duration       string     `gorm:"type:varchar(100)" json:"duration,omitempty"`
	Quantity       int        `gorm:"not null;default:1" json:"quantity"`
	Instructions   string     `gorm:"type:text" json:"instructions,omitempty"`

	Medication *Medication `gorm:"foreignKey:MedicationID" json:"medication,omitempty"`
}

func (PrescriptionItem) TableName() string {
	return "prescription_items"
}
