package entity

import (
	"time"

	"github.com/google/uuid"
)

type FavoriteType string

const (
	FavoriteTypeMedication FavoriteType = "medication"
	FavoriteTypePharmacy   FavoriteType = "pharmacy"
)

func (t FavoriteType) IsValid() bool {
	return t == FavoriteTypeMedication || t == FavoriteTypePharmacy
}

// Favorite bookmarks exactly one of a medication or a pharmacy
type Favorite struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	ItemType     FavoriteType `gorm:"type:varchar(20);not null" json:"item_type"`
	MedicationID *uuid.UUID   `gorm:"type:uuid" json:"medication_id,omitempty"`
	PharmacyID   *uuid.UUID   `gorm:"type:uuid" json:"pharmacy_id,omitempty"`
	Notes        string       `gorm:"type:text" json:"notes,omitempty"`
	NotesAr      string       `gorm:"type:text" json:"notes_ar,omitempty"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Medication *Medication `gorm:"foreignKey:MedicationID" json:"medication,omitempty"`
	Pharmacy   *Pharmacy   `gorm:"foreignKey:PharmacyID" json:"pharmacy,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// FavoriteTarget points at one favourited item
type FavoriteTarget struct {
	Type FavoriteType
	ID   uuid.UUID
}

// NewFavorite fills the column that matches the target type
func NewFavorite(userID uuid.UUID, target FavoriteTarget) *Favorite {
	favorite := &Favorite{UserID: userID, ItemType: target.Type}
	id := target.ID
	if target.Type == FavoriteTypePharmacy {
		favorite.PharmacyID = &id
	} else {
		favorite.MedicationID = &id
	}
	return favorite
}
