package repository

import (
	"errors"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	notExpiredSQL = "(pharmacy_inventory.expiry_date IS NULL OR pharmacy_inventory.expiry_date >= CURRENT_DATE)"
	expiredSQL    = "pharmacy_inventory.expiry_date < CURRENT_DATE"
)

type inventoryRepository struct{}

func NewInventoryRepository() domainRepo.InventoryRepository {
	return &inventoryRepository{}
}

func (r *inventoryRepository) Create(db *gorm.DB, item *entity.InventoryItem) error {
	return db.Omit("Medication", "Pharmacy").Create(item).Error
}

func (r *inventoryRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := db.Preload("Medication").Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// FindOwned returns the item only if it belongs to the pharmacy
func (r *inventoryRepository) FindOwned(db *gorm.DB, pharmacyID, id uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := db.Preload("Medication").Where("id = ? AND pharmacy_id = ?", id, pharmacyID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	if len(ids) == 0 {
		return items, nil
	}
	err := db.Preload("Medication").Where("id IN ?", ids).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) FindAll(db *gorm.DB, filter entity.InventoryFilter) ([]entity.InventoryItem, int64, error) {
	query := db.Model(&entity.InventoryItem{}).
		Joins("JOIN medications ON medications.id = pharmacy_inventory.medication_id").
		Where("pharmacy_inventory.pharmacy_id = ?", filter.PharmacyID)

	if filter.Query != "" {
		q := contains(filter.Query)
		query = query.Where(
			"medications.name ILIKE ? OR medications.name_ar ILIKE ? OR medications.generic_name ILIKE ? OR medications.brand ILIKE ?",
			q, q, q, q,
		)
	}
	if filter.CategoryID != nil {
		query = query.Where("medications.category_id = ?", *filter.CategoryID)
	}
	if filter.LowStock != nil {
		if *filter.LowStock {
			query = query.Where("pharmacy_inventory.quantity <= pharmacy_inventory.low_stock_threshold")
		} else {
			query = query.Where("pharmacy_inventory.quantity > pharmacy_inventory.low_stock_threshold")
		}
	}
	if filter.Expired != nil {
		if *filter.Expired {
			query = query.Where(expiredSQL)
		} else {
			query = query.Where(notExpiredSQL)
		}
	}
	if filter.Available != nil {
		query = query.Where("pharmacy_inventory.is_available = ?", *filter.Available)
	}
	if filter.Sellable {
		query = query.Where("pharmacy_inventory.is_available = ? AND pharmacy_inventory.quantity > 0 AND medications.is_active = ?", true, true).
			Where(notExpiredSQL)
	}

	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}

	var items []entity.InventoryItem
	err = query.Preload("Medication").
		Order("medications.name ASC").
		Scopes(paginate(filter.Page)).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *inventoryRepository) ExistsForMedication(db *gorm.DB, pharmacyID, medicationID uuid.UUID) (bool, error) {
	var total int64
	err := db.Model(&entity.InventoryItem{}).
		Where("pharmacy_id = ? AND medication_id = ?", pharmacyID, medicationID).
		Count(&total).Error
	return total > 0, err
}

// FindOffers lists verified pharmacies selling the medication, cheapest first
func (r *inventoryRepository) FindOffers(db *gorm.DB, medicationID uuid.UUID, page entity.Page) ([]entity.InventoryItem, int64, error) {
	query := db.Model(&entity.InventoryItem{}).
		Joins("JOIN pharmacies ON pharmacies.user_id = pharmacy_inventory.pharmacy_id").
		Joins("JOIN users ON users.id = pharmacies.user_id").
		Where("pharmacy_inventory.medication_id = ?", medicationID).
		Where("pharmacy_inventory.is_available = ? AND pharmacy_inventory.quantity > 0", true).
		Where(notExpiredSQL).
		Where("pharmacies.verification_status = ? AND users.is_active = ?", entity.VerificationVerified, true)

	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}

	var items []entity.InventoryItem
	err = query.Preload("Pharmacy").Preload("Medication").
		Order("pharmacy_inventory.price * (1 - pharmacy_inventory.discount_percentage / 100) ASC").
		Scopes(paginate(page)).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *inventoryRepository) Update(db *gorm.DB, item *entity.InventoryItem) error {
	return db.Omit("Medication", "Pharmacy").Save(item).Error
}

func (r *inventoryRepository) Delete(db *gorm.DB, pharmacyID, id uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND pharmacy_id = ?", id, pharmacyID).Delete(&entity.InventoryItem{})
	return result.RowsAffected, result.Error
}

func (r *inventoryRepository) DecrementStock(db *gorm.DB, id uuid.UUID, quantity int) (int64, error) {
	result := db.Model(&entity.InventoryItem{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	return result.RowsAffected, result.Error
}

func (r *inventoryRepository) IncrementStock(db *gorm.DB, id uuid.UUID, quantity int) error {
	return db.Model(&entity.InventoryItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
}

func (r *inventoryRepository) SetStock(db *gorm.DB, id uuid.UUID, quantity int) error {
	return db.Model(&entity.InventoryItem{}).Where("id = ?", id).Update("quantity", quantity).Error
}

func (r *inventoryRepository) FindStockLevel(db *gorm.DB, id uuid.UUID) (*domainRepo.StockLevel, error) {
	var levels []domainRepo.StockLevel
	err := db.Model(&entity.InventoryItem{}).Select("id, quantity").Where("id = ?", id).Limit(1).Scan(&levels).Error
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, nil
	}
	return &levels[0], nil
}

func (r *inventoryRepository) FindStockLevels(db *gorm.DB, offset, limit int) ([]domainRepo.StockLevel, error) {
	var levels []domainRepo.StockLevel
	err := db.Model(&entity.InventoryItem{}).
		Select("id, quantity").
		Order("id ASC").
		Offset(offset).Limit(limit).
		Scan(&levels).Error
	if err != nil {
		return nil, err
	}
	return levels, nil
}

func (r *inventoryRepository) CountByPharmacy(db *gorm.DB, pharmacyID uuid.UUID) (int64, int64, error) {
	var total, lowStock int64
	if err := db.Model(&entity.InventoryItem{}).Where("pharmacy_id = ?", pharmacyID).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := db.Model(&entity.InventoryItem{}).
		Where("pharmacy_id = ? AND quantity <= low_stock_threshold", pharmacyID).
		Count(&lowStock).Error
	if err != nil {
		return 0, 0, err
	}
	return total, lowStock, nil
}
