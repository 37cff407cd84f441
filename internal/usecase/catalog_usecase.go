package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"dawaksahl-api/internal/converter"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/internal/infrastructure/cache"
	"dawaksahl-api/internal/service"
	"dawaksahl-api/pkg/i18n"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrMedicationNotFound = errors.New("medication not found")
	ErrBarcodeExists      = errors.New("barcode already exists")
)

const (
	categoriesCacheKey = "catalog:categories"
	categoriesCacheTTL = 10 * time.Minute
)

type CatalogUsecase interface {
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *dto.CategoryRequest) (*dto.CategoryResponse, error)
	ListMedications(ctx context.Context, filter entity.MedicationFilter) ([]dto.MedicationResponse, int64, error)
	GetMedication(ctx context.Context, id uuid.UUID) (*dto.MedicationResponse, error)
	CreateMedication(ctx context.Context, req *dto.MedicationRequest) (*dto.MedicationResponse, error)
	UpdateMedication(ctx context.Context, id uuid.UUID, req *dto.MedicationRequest) (*dto.MedicationResponse, error)
	DeleteMedication(ctx context.Context, id uuid.UUID) error
	ListOffers(ctx context.Context, medicationID uuid.UUID, page entity.Page) ([]dto.PharmacyOfferResponse, int64, error)
}

type catalogUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	redisClient    *redis.Client
	categoryRepo   repository.CategoryRepository
	medicationRepo repository.MedicationRepository
	inventoryRepo  repository.InventoryRepository
	auditService   service.AuditService
}

func NewCatalogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	redisClient *redis.Client,
	categoryRepo repository.CategoryRepository,
	medicationRepo repository.MedicationRepository,
	inventoryRepo repository.InventoryRepository,
	auditService service.AuditService,
) CatalogUsecase {
	return &catalogUsecase{
		db:             db,
		log:            log,
		redisClient:    redisClient,
		categoryRepo:   categoryRepo,
		medicationRepo: medicationRepo,
		inventoryRepo:  inventoryRepo,
		auditService:   auditService,
	}
}

// ListCategories serves the active category tree from Redis when cached. Cache errors fall through to the database.
func (u *catalogUsecase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	var categories []entity.MedicationCategory

	hit, err := cache.GetJSON(ctx, u.redisClient, categoriesCacheKey, &categories)
	if err != nil {
		u.log.Warnf("Failed to read category cache: %+v", err)
	}

	if !hit {
		categories, err = u.categoryRepo.FindActive(u.db.WithContext(ctx))
		if err != nil {
			u.log.Warnf("Failed to list categories: %+v", err)
			return nil, err
		}
		if err := cache.SetJSON(ctx, u.redisClient, categoriesCacheKey, categories, categoriesCacheTTL); err != nil {
			u.log.Warnf("Failed to write category cache: %+v", err)
		}
	}

	return converter.CategoriesToResponses(categories, i18n.FromContext(ctx)), nil
}

func (u *catalogUsecase) CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	db := u.db.WithContext(ctx)

	if err := u.checkParent(db, nil, req.ParentID); err != nil {
		return nil, err
	}

	category := &entity.MedicationCategory{IsActive: true}
	applyCategory(category, req)

	if err := u.categoryRepo.Create(db, category); err != nil {
		u.log.Warnf("Failed to create category: %+v", err)
		return nil, err
	}

	u.invalidateCategories(ctx)
	return converter.CategoryToResponse(category, i18n.FromContext(ctx)), nil
}

func (u *catalogUsecase) UpdateCategory(ctx context.Context, id uuid.UUID, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	db := u.db.WithContext(ctx)

	category, err := u.categoryRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find category: %+v", err)
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if err := u.checkParent(db, &id, req.ParentID); err != nil {
		return nil, err
	}

	applyCategory(category, req)
	if err := u.categoryRepo.Update(db, category); err != nil {
		u.log.Warnf("Failed to update category: %+v", err)
		return nil, err
	}

	u.invalidateCategories(ctx)
	return converter.CategoryToResponse(category, i18n.FromContext(ctx)), nil
}

// checkParent requires an existing parent that is not the category itself
func (u *catalogUsecase) checkParent(db *gorm.DB, self, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	if self != nil && *self == *parentID {
		return ErrCategoryNotFound
	}
	parent, err := u.categoryRepo.FindByID(db, *parentID)
	if err != nil {
		u.log.Warnf("Failed to find parent category: %+v", err)
		return err
	}
	if parent == nil {
		return ErrCategoryNotFound
	}
	return nil
}

func (u *catalogUsecase) invalidateCategories(ctx context.Context) {
	if err := cache.Delete(ctx, u.redisClient, categoriesCacheKey); err != nil {
		u.log.Warnf("Failed to invalidate category cache: %+v", err)
	}
}

func applyCategory(category *entity.MedicationCategory, req *dto.CategoryRequest) {
	category.Name = strings.TrimSpace(req.Name)
	category.NameAr = strings.TrimSpace(req.NameAr)
	category.Description = req.Description
	category.DescriptionAr = req.DescriptionAr
	category.ParentID = req.ParentID
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
}

func (u *catalogUsecase) ListMedications(ctx context.Context, filter entity.MedicationFilter) ([]dto.MedicationResponse, int64, error) {
	// Inactive entries stay hidden from everyone but admins
	if filter.IncludeInactive {
		if _, roleID, err := actor(ctx); err != nil || roleID != entity.RoleIDAdmin {
			filter.IncludeInactive = false
		}
	}

	medications, total, err := u.medicationRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list medications: %+v", err)
		return nil, 0, err
	}
	return converter.MedicationsToResponses(medications, i18n.FromContext(ctx)), total, nil
}

func (u *catalogUsecase) GetMedication(ctx context.Context, id uuid.UUID) (*dto.MedicationResponse, error) {
	medication, err := u.medicationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medication: %+v", err)
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}
	if !medication.IsActive {
		if _, roleID, err := actor(ctx); err != nil || roleID != entity.RoleIDAdmin {
			return nil, ErrMedicationNotFound
		}
	}
	return converter.MedicationToResponse(medication, i18n.FromContext(ctx)), nil
}

func (u *catalogUsecase) CreateMedication(ctx context.Context, req *dto.MedicationRequest) (*dto.MedicationResponse, error) {
	adminID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.checkCategory(tx, req.CategoryID); err != nil {
		return nil, err
	}

	medication := &entity.Medication{IsActive: true}
	applyMedication(medication, req)

	if err := u.medicationRepo.Create(tx, medication); err != nil {
		if isDuplicateKeyError(err, "barcode") {
			return nil, ErrBarcodeExists
		}
		u.log.Warnf("Failed to create medication: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &adminID, entity.AuditActionMedicationCreate, "medication", medication.ID.String(), req); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.GetMedication(ctx, medication.ID)
}

func (u *catalogUsecase) UpdateMedication(ctx context.Context, id uuid.UUID, req *dto.MedicationRequest) (*dto.MedicationResponse, error) {
	adminID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	medication, err := u.medicationRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find medication: %+v", err)
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}

	if err := u.checkCategory(tx, req.CategoryID); err != nil {
		return nil, err
	}

	old := *medication
	old.Category = nil
	applyMedication(medication, req)
	medication.Category = nil

	if err := u.medicationRepo.Update(tx, medication); err != nil {
		if isDuplicateKeyError(err, "barcode") {
			return nil, ErrBarcodeExists
		}
		u.log.Warnf("Failed to update medication: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionMedicationUpdate, "medication", id.String(), old, req); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.GetMedication(ctx, id)
}

// DeleteMedication deactivates the entry; orders and prescriptions keep referencing it
func (u *catalogUsecase) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	adminID, _, err := actor(ctx)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	medication, err := u.medicationRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find medication: %+v", err)
		return err
	}
	if medication == nil || !medication.IsActive {
		return ErrMedicationNotFound
	}

	medication.IsActive = false
	medication.Category = nil
	if err := u.medicationRepo.Update(tx, medication); err != nil {
		u.log.Warnf("Failed to deactivate medication: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &adminID, entity.AuditActionMedicationDelete, "medication", id.String(), map[string]interface{}{"name": medication.Name}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *catalogUsecase) checkCategory(db *gorm.DB, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	category, err := u.categoryRepo.FindByID(db, *categoryID)
	if err != nil {
		u.log.Warnf("Failed to find category: %+v", err)
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}

func applyMedication(medication *entity.Medication, req *dto.MedicationRequest) {
	medication.Name = strings.TrimSpace(req.Name)
	medication.NameAr = strings.TrimSpace(req.NameAr)
	medication.GenericName = req.GenericName
	medication.GenericNameAr = req.GenericNameAr
	medication.Brand = req.Brand
	medication.CategoryID = req.CategoryID
	medication.DosageForm = req.DosageForm
	medication.Strength = req.Strength
	medication.Manufacturer = req.Manufacturer
	medication.Description = req.Description
	medication.DescriptionAr = req.DescriptionAr
	medication.RequiresPrescription = req.RequiresPrescription
	if req.IsActive != nil {
		medication.IsActive = *req.IsActive
	}

	// Empty barcodes are stored as NULL so the unique index ignores them
	medication.Barcode = nil
	if barcode := strings.TrimSpace(req.Barcode); barcode != "" {
		medication.Barcode = &barcode
	}
}

func (u *catalogUsecase) ListOffers(ctx context.Context, medicationID uuid.UUID, page entity.Page) ([]dto.PharmacyOfferResponse, int64, error) {
	db := u.db.WithContext(ctx)

	medication, err := u.medicationRepo.FindByID(db, medicationID)
	if err != nil {
		u.log.Warnf("Failed to find medication: %+v", err)
		return nil, 0, err
	}
	if medication == nil || !medication.IsActive {
		return nil, 0, ErrMedicationNotFound
	}

	items, total, err := u.inventoryRepo.FindOffers(db, medicationID, page)
	if err != nil {
		u.log.Warnf("Failed to list offers: %+v", err)
		return nil, 0, err
	}

	offers := make([]entity.PharmacyOffer, 0, len(items))
	for _, item := range items {
		if item.Pharmacy == nil {
			continue
		}
		offers = append(offers, entity.PharmacyOffer{Item: item, Pharmacy: *item.Pharmacy})
	}
	return converter.OffersToResponses(offers, i18n.FromContext(ctx)), total, nil
}
