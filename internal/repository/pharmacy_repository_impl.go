package repository

import (
	"errors"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type pharmacyRepository struct{}

func NewPharmacyRepository() domainRepo.PharmacyRepository {
	return &pharmacyRepository{}
}

func (r *pharmacyRepository) Create(db *gorm.DB, pharmacy *entity.Pharmacy) error {
	return db.Omit("User").Create(pharmacy).Error
}

func (r *pharmacyRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Pharmacy, error) {
	var pharmacy entity.Pharmacy
	err := db.Preload("User").Where("user_id = ?", userID).First(&pharmacy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pharmacy, nil
}

// FindVerifiedByID returns the pharmacy only if it is verified and its owner is active
func (r *pharmacyRepository) FindVerifiedByID(db *gorm.DB, id uuid.UUID) (*entity.Pharmacy, error) {
	var pharmacy entity.Pharmacy
	err := db.Joins("JOIN users ON users.id = pharmacies.user_id").
		Where("pharmacies.user_id = ? AND pharmacies.verification_status = ? AND users.is_active = ?", id, entity.VerificationVerified, true).
		Preload("User").
		First(&pharmacy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pharmacy, nil
}

// FindAll lists pharmacies ordered by rating. Without a status filter only verified
// pharmacies with active owners are returned unless AnyStatus is set.
func (r *pharmacyRepository) FindAll(db *gorm.DB, filter entity.PharmacyFilter) ([]entity.Pharmacy, int64, error) {
	query := db.Model(&entity.Pharmacy{}).
		Joins("JOIN users ON users.id = pharmacies.user_id")

	switch {
	case filter.Status != "":
		query = query.Where("pharmacies.verification_status = ?", filter.Status)
	case !filter.AnyStatus:
		query = query.Where("pharmacies.verification_status = ? AND users.is_active = ?", entity.VerificationVerified, true)
	}
	if filter.Query != "" {
		q := contains(filter.Query)
		query = query.Where("pharmacies.name ILIKE ? OR pharmacies.name_ar ILIKE ?", q, q)
	}
	if filter.City != "" {
		query = query.Where("pharmacies.city ILIKE ?", contains(filter.City))
	}
	if filter.Is24Hours != nil {
		query = query.Where("pharmacies.is_24_hours = ?", *filter.Is24Hours)
	}
	if filter.HasDelivery != nil {
		query = query.Where("pharmacies.has_delivery = ?", *filter.HasDelivery)
	}

	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}

	var pharmacies []entity.Pharmacy
	err = query.Preload("User").
		Order("pharmacies.rating DESC, pharmacies.total_reviews DESC").
		Scopes(paginate(filter.Page)).
		Find(&pharmacies).Error
	if err != nil {
		return nil, 0, err
	}
	return pharmacies, total, nil
}

func (r *pharmacyRepository) Update(db *gorm.DB, pharmacy *entity.Pharmacy) error {
	return db.Omit("User").Save(pharmacy).Error
}

func (r *pharmacyRepository) UpdateRating(db *gorm.DB, id uuid.UUID, rating float64, total int64) error {
	return db.Model(&entity.Pharmacy{}).Where("user_id = ?", id).Updates(map[string]interface{}{
		"rating":        rating,
		"total_reviews": total,
	}).Error
}

func (r *pharmacyRepository) IncrementOrders(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.Pharmacy{}).Where("user_id = ?", id).
		Update("total_orders", gorm.Expr("total_orders + ?", 1)).Error
}
