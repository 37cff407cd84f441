package repository

import (
	"errors"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type categoryRepository struct{}

func NewCategoryRepository() domainRepo.CategoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) Create(db *gorm.DB, category *entity.MedicationCategory) error {
	return db.Create(category).Error
}

func (r *categoryRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicationCategory, error) {
	var category entity.MedicationCategory
	err := db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindActive(db *gorm.DB) ([]entity.MedicationCategory, error) {
	var categories []entity.MedicationCategory
	err := db.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(db *gorm.DB, category *entity.MedicationCategory) error {
	return db.Save(category).Error
}

type medicationRepository struct{}

func NewMedicationRepository() domainRepo.MedicationRepository {
	return &medicationRepository{}
}

func (r *medicationRepository) Create(db *gorm.DB, medication *entity.Medication) error {
	return db.Omit("Category").Create(medication).Error
}

func (r *medicationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medication, error) {
	var medication entity.Medication
	err := db.Preload("Category").Where("id = ?", id).First(&medication).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medication, nil
}

// FindAll searches the catalog by names, brand and barcode
func (r *medicationRepository) FindAll(db *gorm.DB, filter entity.MedicationFilter) ([]entity.Medication, int64, error) {
	query := db.Model(&entity.Medication{})

	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Query != "" {
		q := contains(filter.Query)
		query = query.Where(
			"name ILIKE ? OR name_ar ILIKE ? OR generic_name ILIKE ? OR generic_name_ar ILIKE ? OR brand ILIKE ? OR barcode = ?",
			q, q, q, q, q, filter.Query,
		)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.RequiresPrescription != nil {
		query = query.Where("requires_prescription = ?", *filter.RequiresPrescription)
	}

	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}

	var medications []entity.Medication
	err = query.Preload("Category").Order("name ASC").Scopes(paginate(filter.Page)).Find(&medications).Error
	if err != nil {
		return nil, 0, err
	}
	return medications, total, nil
}

func (r *medicationRepository) Update(db *gorm.DB, medication *entity.Medication) error {
	return db.Omit("Category").Save(medication).Error
}
