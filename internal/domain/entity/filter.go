package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain-level filters used by the repository layer to avoid coupling with delivery DTOs.
// Offset and Limit come from the pagination params of the request.

type Page struct {
	Offset int
	Limit  int
}

type PharmacyFilter struct {
	Query       string // name or name_ar (ILIKE)
	City        string
	Is24Hours   *bool
	HasDelivery *bool
	Status      VerificationStatus // empty means verified only, used by public listing
	AnyStatus   bool               // admin listing without status filter
	Page
}

type DoctorFilter struct {
	Query     string // name or clinic (ILIKE)
	Specialty string
	Page
}

type MedicationFilter struct {
	Query                string
	CategoryID           *uuid.UUID
	RequiresPrescription *bool
	IncludeInactive      bool
	Page
}

type InventoryFilter struct {
	PharmacyID uuid.UUID
	Query      string
	CategoryID *uuid.UUID
	LowStock   *bool
	Expired    *bool
	Available  *bool
	Sellable   bool // available, unexpired and in stock; used by public listing
	Page
}

type PrescriptionFilter struct {
	UserID uuid.UUID
	RoleID int
	Status PrescriptionStatus
	Page
}

type OrderFilter struct {
	UserID uuid.UUID
	RoleID int
	Status OrderStatus
	Page
}

type AppointmentFilter struct {
	UserID   uuid.UUID
	RoleID   int
	Status   AppointmentStatus
	DateFrom *time.Time // slot date, inclusive
	DateTo   *time.Time // slot date, inclusive
	Page
}

type TimeSlotFilter struct {
	DoctorID         uuid.UUID
	DateFrom         *time.Time
	DateTo           *time.Time
	ConsultationMode ConsultationMode
	OpenOnly         bool // available, not full and not started
	Now              time.Time
}

type FavoriteFilter struct {
	UserID uuid.UUID
	Type   FavoriteType
	Page
}

type NotificationFilter struct {
	UserID     uuid.UUID
	UnreadOnly bool
	Type       NotificationType
	Page
}

type ReviewSort string

const (
	ReviewSortNewest     ReviewSort = "newest"
	ReviewSortOldest     ReviewSort = "oldest"
	ReviewSortRatingHigh ReviewSort = "rating_high"
	ReviewSortRatingLow  ReviewSort = "rating_low"
	ReviewSortHelpful    ReviewSort = "helpful"
)

type ReviewFilter struct {
	PharmacyID   *uuid.UUID
	MedicationID *uuid.UUID
	UserID       *uuid.UUID
	Sort         ReviewSort
	Page
}

type AuditLogFilter struct {
	Action string     // exact match; a trailing "." matches the whole family ("order.")
	UserID *uuid.UUID // actor
	Entity string     // metadata entity name, e.g. "pharmacy"
	From   *time.Time // inclusive
	To     *time.Time // exclusive
	Page
}

// PharmacyOffer is a pharmacy stocking a medication at its discounted price
type PharmacyOffer struct {
	Item     InventoryItem
	Pharmacy Pharmacy
}

// PharmacyStats summarises a pharmacy dashboard
type PharmacyStats struct {
	InventoryCount int64
	LowStockCount  int64
	OrdersByStatus map[OrderStatus]int64
	Revenue        decimal.Decimal
	Rating         float64
	TotalReviews   int
}
