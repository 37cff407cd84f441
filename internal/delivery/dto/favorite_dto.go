package dto

import (
	"time"

	"github.com/google/uuid"
)

type FavoriteRequest struct {
	ItemType string    `json:"item_type" validate:"required,oneof=medication pharmacy"`
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Notes    string    `json:"notes" validate:"omitempty,max=500"`
	NotesAr  string    `json:"notes_ar" validate:"omitempty,max=500"`
}

type FavoriteResponse struct {
	ID           uuid.UUID           `json:"id"`
	ItemType     string              `json:"item_type"`
	MedicationID *uuid.UUID          `json:"medication_id,omitempty"`
	PharmacyID   *uuid.UUID          `json:"pharmacy_id,omitempty"`
	Medication   *MedicationResponse `json:"medication,omitempty"`
	Pharmacy     *PharmacyResponse   `json:"pharmacy,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	NotesAr      string              `json:"notes_ar,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

type FavoriteStatusResponse struct {
	IsFavorite bool       `json:"is_favorite"`
	FavoriteID *uuid.UUID `json:"favorite_id,omitempty"`
}

type FavoriteStatsResponse struct {
	Total  int64            `json:"total"`
	ByType map[string]int64 `json:"by_type"`
}
