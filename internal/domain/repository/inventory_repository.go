package repository

import (
	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockLevel is the database quantity of one inventory item, used to seed the stock gate
type StockLevel struct {
	ID       uuid.UUID
	Quantity int
}

type InventoryRepository interface {
	Create(db *gorm.DB, item *entity.InventoryItem) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.InventoryItem, error)
	FindOwned(db *gorm.DB, pharmacyID, id uuid.UUID) (*entity.InventoryItem, error)
	FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.InventoryItem, error)
	FindAll(db *gorm.DB, filter entity.InventoryFilter) ([]entity.InventoryItem, int64, error)
	ExistsForMedication(db *gorm.DB, pharmacyID, medicationID uuid.UUID) (bool, error)
	FindOffers(db *gorm.DB, medicationID uuid.UUID, page entity.Page) ([]entity.InventoryItem, int64, error)
	Update(db *gorm.DB, item *entity.InventoryItem) error
	Delete(db *gorm.DB, pharmacyID, id uuid.UUID) (int64, error)
	// DecrementStock subtracts only when enough stock remains; zero rows means insufficient
	DecrementStock(db *gorm.DB, id uuid.UUID, quantity int) (int64, error)
	IncrementStock(db *gorm.DB, id uuid.UUID, quantity int) error
	SetStock(db *gorm.DB, id uuid.UUID, quantity int) error
	FindStockLevel(db *gorm.DB, id uuid.UUID) (*StockLevel, error)
	FindStockLevels(db *gorm.DB, offset, limit int) ([]StockLevel, error)
	CountByPharmacy(db *gorm.DB, pharmacyID uuid.UUID) (total int64, lowStock int64, err error)
}
