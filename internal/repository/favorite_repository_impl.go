package repository

import (
	"errors"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type favoriteRepository struct{}

func NewFavoriteRepository() domainRepo.FavoriteRepository {
	return &favoriteRepository{}
}

func (r *favoriteRepository) Create(db *gorm.DB, favorite *entity.Favorite) error {
	return db.Omit(clause.Associations).Create(favorite).Error
}

func (r *favoriteRepository) FindAll(db *gorm.DB, filter entity.FavoriteFilter) ([]entity.Favorite, int64, error) {
	query := db.Model(&entity.Favorite{}).Where("user_id = ?", filter.UserID)
	if filter.Type != "" {
		query = query.Where("item_type = ?", filter.Type)
	}

	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}

	var favorites []entity.Favorite
	err = query.Preload("Medication").Preload("Pharmacy").
		Order("created_at DESC").
		Scopes(paginate(filter.Page)).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}

func (r *favoriteRepository) FindByTarget(db *gorm.DB, userID uuid.UUID, target entity.FavoriteTarget) (*entity.Favorite, error) {
	column := "medication_id"
	if target.Type == entity.FavoriteTypePharmacy {
		column = "pharmacy_id"
	}

	var favorite entity.Favorite
	err := db.Where("user_id = ? AND "+column+" = ?", userID, target.ID).First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) Delete(db *gorm.DB, userID, id uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Favorite{})
	return result.RowsAffected, result.Error
}

func (r *favoriteRepository) DeleteAll(db *gorm.DB, userID uuid.UUID, itemType entity.FavoriteType) (int64, error) {
	query := db.Where("user_id = ?", userID)
	if itemType != "" {
		query = query.Where("item_type = ?", itemType)
	}
	result := query.Delete(&entity.Favorite{})
	return result.RowsAffected, result.Error
}

func (r *favoriteRepository) CountByType(db *gorm.DB, userID uuid.UUID) (map[entity.FavoriteType]int64, error) {
	var rows []struct {
		ItemType entity.FavoriteType
		Count    int64
	}
	err := db.Model(&entity.Favorite{}).
		Select("item_type, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("item_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[entity.FavoriteType]int64{entity.FavoriteTypeMedication: 0, entity.FavoriteTypePharmacy: 0}
	for _, row := range rows {
		counts[row.ItemType] = row.Count
	}
	return counts, nil
}
