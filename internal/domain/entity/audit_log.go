package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionUserLogin          = "user.login"
	AuditActionUserLogout         = "user.logout"
	AuditActionUserRegister       = "user.register"
	AuditActionUserStatus         = "user.status"
	AuditActionPasswordChange     = "user.password_change"
	AuditActionProfileUpdate      = "profile.update"
	AuditActionPharmacyVerify     = "pharmacy.verification"
	AuditActionDoctorVerify       = "doctor.verification"
	AuditActionMedicationCreate   = "medication.create"
	AuditActionMedicationUpdate   = "medication.update"
	AuditActionMedicationDelete   = "medication.delete"
	AuditActionOrderStatus        = "order.status"
	AuditActionOrderCancel        = "order.cancel"
	AuditActionPrescriptionVerify = "prescription.verification"
)
