package usecase

import (
	"context"
	"errors"

	"dawaksahl-api/internal/converter"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/internal/service"
	"dawaksahl-api/pkg/i18n"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInventoryNotFound = errors.New("inventory item not found")
	ErrInventoryExists   = errors.New("medication already in inventory")
	ErrInvalidStock      = errors.New("stock cannot go below zero")
)

type InventoryUsecase interface {
	List(ctx context.Context, filter entity.InventoryFilter) ([]dto.InventoryResponse, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.InventoryResponse, error)
	Create(ctx context.Context, req *dto.CreateInventoryRequest) (*dto.InventoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateInventoryRequest) (*dto.InventoryResponse, error)
	UpdateStock(ctx context.Context, id uuid.UUID, req *dto.StockUpdateRequest) (*dto.InventoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type inventoryUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	pharmacyRepo   repository.PharmacyRepository
	medicationRepo repository.MedicationRepository
	inventoryRepo  repository.InventoryRepository
	stock          service.StockGate
}

func NewInventoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	pharmacyRepo repository.PharmacyRepository,
	medicationRepo repository.MedicationRepository,
	inventoryRepo repository.InventoryRepository,
	stock service.StockGate,
) InventoryUsecase {
	return &inventoryUsecase{
		db:             db,
		log:            log,
		pharmacyRepo:   pharmacyRepo,
		medicationRepo: medicationRepo,
		inventoryRepo:  inventoryRepo,
		stock:          stock,
	}
}

// List returns the caller's own inventory with the management filters
func (u *inventoryUsecase) List(ctx context.Context, filter entity.InventoryFilter) ([]dto.InventoryResponse, int64, error) {
	pharmacyID, _, err := actor(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter.PharmacyID = pharmacyID
	filter.Sellable = false

	items, total, err := u.inventoryRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list inventory: %+v", err)
		return nil, 0, err
	}
	return converter.InventoriesToResponses(items, i18n.FromContext(ctx)), total, nil
}

func (u *inventoryUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.InventoryResponse, error) {
	pharmacyID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	item, err := u.inventoryRepo.FindOwned(u.db.WithContext(ctx), pharmacyID, id)
	if err != nil {
		u.log.Warnf("Failed to find inventory item: %+v", err)
		return nil, err
	}
	if item == nil {
		return nil, ErrInventoryNotFound
	}
	return converter.InventoryToResponse(item, i18n.FromContext(ctx)), nil
}

func (u *inventoryUsecase) Create(ctx context.Context, req *dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	pharmacyID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	expiry, err := parseDate(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.requireVerified(tx, pharmacyID); err != nil {
		return nil, err
	}

	medication, err := u.medicationRepo.FindByID(tx, req.MedicationID)
	if err != nil {
		u.log.Warnf("Failed to find medication: %+v", err)
		return nil, err
	}
	if medication == nil || !medication.IsActive {
		return nil, ErrMedicationNotFound
	}

	exists, err := u.inventoryRepo.ExistsForMedication(tx, pharmacyID, req.MedicationID)
	if err != nil {
		u.log.Warnf("Failed to check inventory: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrInventoryExists
	}

	threshold := entity.DefaultLowStockThreshold
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	item := &entity.InventoryItem{
		PharmacyID:         pharmacyID,
		MedicationID:       req.MedicationID,
		BatchNumber:        req.BatchNumber,
		ExpiryDate:         expiry,
		Quantity:           req.Quantity,
		LowStockThreshold:  threshold,
		Price:              decimal.NewFromFloat(req.Price).Round(2),
		DiscountPercentage: decimal.NewFromFloat(req.DiscountPercentage).Round(2),
		IsAvailable:        available,
	}

	if err := u.inventoryRepo.Create(tx, item); err != nil {
		if isDuplicateKeyError(err, "inventory") {
			return nil, ErrInventoryExists
		}
		u.log.Warnf("Failed to create inventory item: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if err := u.stock.SetLevel(ctx, item.ID, item.Quantity); err != nil {
		u.log.Warnf("Failed to seed stock gate for %s: %+v", item.ID, err)
	}

	item.Medication = *medication
	return converter.InventoryToResponse(item, i18n.FromContext(ctx)), nil
}

func (u *inventoryUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	pharmacyID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	item, err := u.inventoryRepo.FindOwned(tx, pharmacyID, id)
	if err != nil {
		u.log.Warnf("Failed to find inventory item: %+v", err)
		return nil, err
	}
	if item == nil {
		return nil, ErrInventoryNotFound
	}

	if req.BatchNumber != nil {
		item.BatchNumber = *req.BatchNumber
	}
	if req.ExpiryDate != nil {
		expiry, err := parseDate(*req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		item.ExpiryDate = expiry
	}
	if req.LowStockThreshold != nil {
		item.LowStockThreshold = *req.LowStockThreshold
	}
	if req.Price != nil {
		item.Price = decimal.NewFromFloat(*req.Price).Round(2)
	}
	if req.DiscountPercentage != nil {
		item.DiscountPercentage = decimal.NewFromFloat(*req.DiscountPercentage).Round(2)
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := u.inventoryRepo.Update(tx, item); err != nil {
		u.log.Warnf("Failed to update inventory item: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InventoryToResponse(item, i18n.FromContext(ctx)), nil
}

// UpdateStock applies a manual adjustment, then re-reads the committed quantity into the stock gate
func (u *inventoryUsecase) UpdateStock(ctx context.Context, id uuid.UUID, req *dto.StockUpdateRequest) (*dto.InventoryResponse, error) {
	pharmacyID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	item, err := u.inventoryRepo.FindOwned(tx.Clauses(forUpdate()), pharmacyID, id)
	if err != nil {
		u.log.Warnf("Failed to find inventory item: %+v", err)
		return nil, err
	}
	if item == nil {
		return nil, ErrInventoryNotFound
	}

	next, ok := entity.ApplyStock(item.Quantity, entity.StockOperation(req.Operation), req.Quantity)
	if !ok {
		return nil, ErrInvalidStock
	}

	if err := u.inventoryRepo.SetStock(tx, id, next); err != nil {
		u.log.Warnf("Failed to set stock: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if err := u.stock.SyncItem(ctx, id); err != nil {
		u.log.Warnf("Failed to sync stock gate for %s: %+v", id, err)
	}

	item.Quantity = next
	return converter.InventoryToResponse(item, i18n.FromContext(ctx)), nil
}

func (u *inventoryUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	pharmacyID, _, err := actor(ctx)
	if err != nil {
		return err
	}

	deleted, err := u.inventoryRepo.Delete(u.db.WithContext(ctx), pharmacyID, id)
	if err != nil {
		u.log.Warnf("Failed to delete inventory item: %+v", err)
		return err
	}
	if deleted == 0 {
		return ErrInventoryNotFound
	}

	if err := u.stock.Remove(ctx, id); err != nil {
		u.log.Warnf("Failed to remove stock gate key for %s: %+v", id, err)
	}
	return nil
}

func (u *inventoryUsecase) requireVerified(db *gorm.DB, pharmacyID uuid.UUID) error {
	pharmacy, err := u.pharmacyRepo.FindByUserID(db, pharmacyID)
	if err != nil {
		u.log.Warnf("Failed to find pharmacy: %+v", err)
		return err
	}
	if pharmacy == nil {
		return ErrPharmacyNotFound
	}
	if !pharmacy.IsVerified() {
		return ErrPharmacyNotVerified
	}
	return nil
}
