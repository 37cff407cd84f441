package usecase

import (
	"context"
	"errors"
	"strings"

	"dawaksahl-api/config"
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
	ErrPharmacyNotFound    = errors.New("pharmacy not found")
	ErrPharmacyNotVerified = errors.New("pharmacy is not verified")
)

type PharmacyUsecase interface {
	List(ctx context.Context, filter entity.PharmacyFilter) ([]dto.PharmacyResponse, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PharmacyResponse, error)
	ListInventory(ctx context.Context, id uuid.UUID, filter entity.InventoryFilter) ([]dto.InventoryResponse, int64, error)
	GetOwnProfile(ctx context.Context) (*dto.PharmacyResponse, error)
	UpdateOwnProfile(ctx context.Context, req *dto.UpdatePharmacyRequest) (*dto.PharmacyResponse, error)
	Stats(ctx context.Context) (*dto.PharmacyStatsResponse, error)
	AdminList(ctx context.Context, filter entity.PharmacyFilter) ([]dto.PharmacyResponse, int64, error)
	Verify(ctx context.Context, id uuid.UUID, req *dto.VerifyPharmacyRequest) (*dto.PharmacyResponse, error)
}

type pharmacyUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	business            config.BusinessConfig
	pharmacyRepo        repository.PharmacyRepository
	inventoryRepo       repository.InventoryRepository
	orderRepo           repository.OrderRepository
	auditService        service.AuditService
	notificationService service.NotificationService
}

func NewPharmacyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	business config.BusinessConfig,
	pharmacyRepo repository.PharmacyRepository,
	inventoryRepo repository.InventoryRepository,
	orderRepo repository.OrderRepository,
	auditService service.AuditService,
	notificationService service.NotificationService,
) PharmacyUsecase {
	return &pharmacyUsecase{
		db:                  db,
		log:                 log,
		business:            business,
		pharmacyRepo:        pharmacyRepo,
		inventoryRepo:       inventoryRepo,
		orderRepo:           orderRepo,
		auditService:        auditService,
		notificationService: notificationService,
	}
}

// List shows verified pharmacies only
func (u *pharmacyUsecase) List(ctx context.Context, filter entity.PharmacyFilter) ([]dto.PharmacyResponse, int64, error) {
	filter.Status = ""
	filter.AnyStatus = false

	pharmacies, total, err := u.pharmacyRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list pharmacies: %+v", err)
		return nil, 0, err
	}
	return converter.PharmaciesToResponses(pharmacies, i18n.FromContext(ctx), false), total, nil
}

func (u *pharmacyUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.PharmacyResponse, error) {
	pharmacy, err := u.pharmacyRepo.FindVerifiedByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find pharmacy: %+v", err)
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}
	return converter.PharmacyToResponse(pharmacy, i18n.FromContext(ctx), false), nil
}

// ListInventory is the public storefront: sellable items of a verified pharmacy
func (u *pharmacyUsecase) ListInventory(ctx context.Context, id uuid.UUID, filter entity.InventoryFilter) ([]dto.InventoryResponse, int64, error) {
	db := u.db.WithContext(ctx)

	pharmacy, err := u.pharmacyRepo.FindVerifiedByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find pharmacy: %+v", err)
		return nil, 0, err
	}
	if pharmacy == nil {
		return nil, 0, ErrPharmacyNotFound
	}

	filter.PharmacyID = id
	filter.Sellable = true
	filter.LowStock = nil
	filter.Expired = nil
	filter.Available = nil

	items, total, err := u.inventoryRepo.FindAll(db, filter)
	if err != nil {
		u.log.Warnf("Failed to list pharmacy inventory: %+v", err)
		return nil, 0, err
	}
	return converter.InventoriesToResponses(items, i18n.FromContext(ctx)), total, nil
}

func (u *pharmacyUsecase) GetOwnProfile(ctx context.Context) (*dto.PharmacyResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	pharmacy, err := u.pharmacyRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find pharmacy: %+v", err)
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}
	return converter.PharmacyToResponse(pharmacy, i18n.FromContext(ctx), true), nil
}

func (u *pharmacyUsecase) UpdateOwnProfile(ctx context.Context, req *dto.UpdatePharmacyRequest) (*dto.PharmacyResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	pharmacy, err := u.pharmacyRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find pharmacy: %+v", err)
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}

	if req.Name != "" {
		pharmacy.Name = strings.TrimSpace(req.Name)
	}
	if req.NameAr != "" {
		pharmacy.NameAr = strings.TrimSpace(req.NameAr)
	}
	if req.PharmacistName != "" {
		pharmacy.PharmacistName = req.PharmacistName
	}
	if req.Phone != "" {
		pharmacy.Phone = req.Phone
	}
	if req.Address != "" {
		pharmacy.Address = req.Address
	}
	if req.AddressAr != "" {
		pharmacy.AddressAr = req.AddressAr
	}
	if req.City != "" {
		pharmacy.City = req.City
	}
	if req.Latitude != nil {
		pharmacy.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		pharmacy.Longitude = req.Longitude
	}
	if req.Description != nil {
		pharmacy.Description = *req.Description
	}
	if req.DescriptionAr != nil {
		pharmacy.DescriptionAr = *req.DescriptionAr
	}
	if req.Is24Hours != nil {
		pharmacy.Is24Hours = *req.Is24Hours
	}
	if req.HasDelivery != nil {
		pharmacy.HasDelivery = *req.HasDelivery
	}
	if req.DeliveryFee != nil {
		pharmacy.DeliveryFee = decimal.NewFromFloat(*req.DeliveryFee).Round(2)
	}
	if req.FreeDeliveryThreshold != nil {
		pharmacy.FreeDeliveryThreshold = decimal.NewFromFloat(*req.FreeDeliveryThreshold).Round(2)
	}
	if req.DeliveryRadiusKm != nil {
		pharmacy.DeliveryRadiusKm = *req.DeliveryRadiusKm
	}

	if err := u.pharmacyRepo.Update(tx, pharmacy); err != nil {
		u.log.Warnf("Failed to update pharmacy: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "pharmacy", userID.String(), nil, req); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PharmacyToResponse(pharmacy, i18n.FromContext(ctx), true), nil
}

func (u *pharmacyUsecase) Stats(ctx context.Context) (*dto.PharmacyStatsResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	pharmacy, err := u.pharmacyRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find pharmacy: %+v", err)
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}

	inventoryCount, lowStock, err := u.inventoryRepo.CountByPharmacy(db, userID)
	if err != nil {
		u.log.Warnf("Failed to count inventory: %+v", err)
		return nil, err
	}
	byStatus, err := u.orderRepo.CountByStatus(db, userID)
	if err != nil {
		u.log.Warnf("Failed to count orders: %+v", err)
		return nil, err
	}
	revenue, err := u.orderRepo.DeliveredRevenue(db, userID)
	if err != nil {
		u.log.Warnf("Failed to sum revenue: %+v", err)
		return nil, err
	}

	return converter.PharmacyStatsToResponse(&entity.PharmacyStats{
		InventoryCount: inventoryCount,
		LowStockCount:  lowStock,
		OrdersByStatus: byStatus,
		Revenue:        revenue,
		Rating:         pharmacy.Rating,
		TotalReviews:   pharmacy.TotalReviews,
	}, u.business.Currency), nil
}

// AdminList includes unverified pharmacies and their private fields
func (u *pharmacyUsecase) AdminList(ctx context.Context, filter entity.PharmacyFilter) ([]dto.PharmacyResponse, int64, error) {
	if filter.Status == "" {
		filter.AnyStatus = true
	}

	pharmacies, total, err := u.pharmacyRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list pharmacies: %+v", err)
		return nil, 0, err
	}
	return converter.PharmaciesToResponses(pharmacies, i18n.FromContext(ctx), true), total, nil
}

func (u *pharmacyUsecase) Verify(ctx context.Context, id uuid.UUID, req *dto.VerifyPharmacyRequest) (*dto.PharmacyResponse, error) {
	adminID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	pharmacy, err := u.pharmacyRepo.FindByUserID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find pharmacy: %+v", err)
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}

	oldStatus := pharmacy.VerificationStatus
	pharmacy.VerificationStatus = entity.VerificationStatus(req.Status)
	pharmacy.VerificationNotes = req.Notes

	if err := u.pharmacyRepo.Update(tx, pharmacy); err != nil {
		u.log.Warnf("Failed to update pharmacy verification: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionPharmacyVerify, "pharmacy", id.String(),
		map[string]interface{}{"verification_status": oldStatus},
		map[string]interface{}{"verification_status": pharmacy.VerificationStatus, "notes": req.Notes},
	); err != nil {
		return nil, err
	}

	notification, err := u.notificationService.Create(ctx, tx, service.NotificationInput{
		UserID:   id,
		Type:     entity.NotificationTypeSystem,
		Title:    i18n.NotifyVerificationTitle,
		Body:     i18n.NotifyVerificationBody.Format(i18n.StatusLabel(req.Status)),
		Priority: entity.PriorityHigh,
		Data:     entity.JSON{"verification_status": req.Status},
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notificationService.Push(ctx, notification)
	return converter.PharmacyToResponse(pharmacy, i18n.FromContext(ctx), true), nil
}
