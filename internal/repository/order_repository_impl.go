package repository

import (
	"errors"
	"time"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct{}

func NewOrderRepository() domainRepo.OrderRepository {
	return &orderRepository{}
}

// Create inserts the order together with its items
func (r *orderRepository) Create(db *gorm.DB, order *entity.Order) error {
	return db.Omit("Patient", "Pharmacy").Create(order).Error
}

func (r *orderRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := db.Preload("Items").Preload("Pharmacy").Preload("Patient").
		Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindAll(db *gorm.DB, filter entity.OrderFilter) ([]entity.Order, int64, error) {
	query := db.Model(&entity.Order{})

	switch filter.RoleID {
	case entity.RoleIDAdmin:
	case entity.RoleIDPharmacy:
		query = query.Where("pharmacy_id = ?", filter.UserID)
	default:
		query = query.Where("patient_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	err = query.Preload("Items").Preload("Pharmacy").
		Order("created_at DESC").
		Scopes(paginate(filter.Page)).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateIfStatus writes the order only while its stored status is still expected.
// Zero rows affected means another transaction moved it first.
func (r *orderRepository) UpdateIfStatus(db *gorm.DB, order *entity.Order, expected entity.OrderStatus) (int64, error) {
	result := db.Model(order).Omit(clause.Associations).
		Where("status = ?", expected).
		Select("*").
		Updates(order)
	return result.RowsAffected, result.Error
}

func (r *orderRepository) FindPendingBefore(db *gorm.DB, before time.Time, limit int) ([]entity.Order, error) {
	var orders []entity.Order
	err := db.Preload("Items").
		Where("status = ? AND created_at < ?", entity.OrderStatusPending, before).
		Order("created_at ASC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) HasDeliveredFromPharmacy(db *gorm.DB, patientID, pharmacyID uuid.UUID) (bool, error) {
	var total int64
	err := db.Model(&entity.Order{}).
		Where("patient_id = ? AND pharmacy_id = ? AND status = ?", patientID, pharmacyID, entity.OrderStatusDelivered).
		Count(&total).Error
	return total > 0, err
}

func (r *orderRepository) HasDeliveredMedication(db *gorm.DB, patientID, medicationID uuid.UUID) (bool, error) {
	var total int64
	err := db.Model(&entity.Order{}).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.patient_id = ? AND orders.status = ? AND order_items.medication_id = ?", patientID, entity.OrderStatusDelivered, medicationID).
		Count(&total).Error
	return total > 0, err
}

func (r *orderRepository) CountByStatus(db *gorm.DB, pharmacyID uuid.UUID) (map[entity.OrderStatus]int64, error) {
	var rows []struct {
		Status entity.OrderStatus
		Count  int64
	}
	err := db.Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Where("pharmacy_id = ?", pharmacyID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *orderRepository) DeliveredRevenue(db *gorm.DB, pharmacyID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Revenue decimal.Decimal
	}
	err := db.Model(&entity.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue").
		Where("pharmacy_id = ? AND status = ?", pharmacyID, entity.OrderStatusDelivered).
		Scan(&result).Error
	return result.Revenue, err
}
