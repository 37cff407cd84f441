package repository

import (
	"errors"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepository struct{}

func NewCartRepository() domainRepo.CartRepository {
	return &cartRepository{}
}

func (r *cartRepository) FindByUser(db *gorm.DB, userID uuid.UUID) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := db.Preload("Item.Medication").Preload("Item.Pharmacy").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) FindOwned(db *gorm.DB, userID, id uuid.UUID) (*entity.CartItem, error) {
	var item entity.CartItem
	err := db.Preload("Item").Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) AddQuantity(db *gorm.DB, item *entity.CartItem) error {
	return db.Omit(clause.Associations).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "inventory_id"}},
			DoUpdates: clause.Set{
				{Column: clause.Column{Name: "quantity"}, Value: gorm.Expr("cart_items.quantity + EXCLUDED.quantity")},
				{Column: clause.Column{Name: "updated_at"}, Value: gorm.Expr("NOW()")},
			},
		},
		clause.Returning{Columns: []clause.Column{{Name: "id"}, {Name: "quantity"}, {Name: "created_at"}}},
	).Create(item).Error
}

func (r *cartRepository) Update(db *gorm.DB, item *entity.CartItem) error {
	return db.Omit(clause.Associations).Save(item).Error
}

func (r *cartRepository) Delete(db *gorm.DB, userID, id uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.CartItem{})
	return result.RowsAffected, result.Error
}

func (r *cartRepository) Clear(db *gorm.DB, userID uuid.UUID) (int64, error) {
	result := db.Where("user_id = ?", userID).Delete(&entity.CartItem{})
	return result.RowsAffected, result.Error
}
