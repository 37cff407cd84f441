package repository

import (
	"time"

	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(db *gorm.DB, order *entity.Order) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Order, error)
	FindAll(db *gorm.DB, filter entity.OrderFilter) ([]entity.Order, int64, error)
	UpdateIfStatus(db *gorm.DB, order *entity.Order, expected entity.OrderStatus) (int64, error)
	FindPendingBefore(db *gorm.DB, before time.Time, limit int) ([]entity.Order, error)
	HasDeliveredFromPharmacy(db *gorm.DB, patientID, pharmacyID uuid.UUID) (bool, error)
	HasDeliveredMedication(db *gorm.DB, patientID, medicationID uuid.UUID) (bool, error)
	CountByStatus(db *gorm.DB, pharmacyID uuid.UUID) (map[entity.OrderStatus]int64, error)
	DeliveredRevenue(db *gorm.DB, pharmacyID uuid.UUID) (decimal.Decimal, error)
}
