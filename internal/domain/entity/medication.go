package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicationCategory groups catalog entries, optionally nested one level under a parent
type MedicationCategory struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string     `gorm:"type:varchar(100);not null" json:"name"`
	NameAr        string     `gorm:"type:varchar(100);not null" json:"name_ar"`
	Description   string     `gorm:"type:text" json:"description,omitempty"`
	DescriptionAr string     `gorm:"type:text" json:"description_ar,omitempty"`
	ParentID      *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	IsActive      bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MedicationCategory) TableName() string {
	return "medication_categories"
}

// Medication is a global catalog entry; pharmacies stock it through InventoryItem
type Medication struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name                 string     `gorm:"type:varchar(200);not null;index" json:"name"`
	NameAr               string     `gorm:"type:varchar(200);not null" json:"name_ar"`
	GenericName          string     `gorm:"type:varchar(200)" json:"generic_name,omitempty"`
	GenericNameAr        string     `gorm:"type:varchar(200)" json:"generic_name_ar,omitempty"`
	Brand                string     `gorm:"type:varchar(100)" json:"brand,omitempty"`
	CategoryID           *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	DosageForm           string     `gorm:"type:varchar(50)" json:"dosage_form,omitempty"`
	Strength             string     `gorm:"type:varchar(50)" json:"strength,omitempty"`
	Manufacturer         string     `gorm:"type:varchar(200)" json:"manufacturer,omitempty"`
	Barcode              *string    `gorm:"type:varchar(50);uniqueIndex" json:"barcode,omitempty"`
	Description          string     `gorm:"type:text" json:"description,omitempty"`
	DescriptionAr        string     `gorm:"type:text" json:"description_ar,omitempty"`
	RequiresPrescription bool       `gorm:"not null;default:false;index" json:"requires_prescription"`
	IsActive             bool       `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Category *MedicationCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Medication) TableName() string {
	return "medications"
}
