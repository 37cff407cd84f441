package usecase

import (
	"context"
	"errors"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/converter"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/pkg/i18n"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartUsecase keeps a patient's basket between visits. Stock is only checked here;
// it is reserved when the order is placed.
type CartUsecase interface {
	Get(ctx context.Context) (*dto.CartResponse, error)
	Add(ctx context.Context, req *dto.AddCartItemRequest) (*dto.CartResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCartItemRequest) (*dto.CartResponse, error)
	Remove(ctx context.Context, id uuid.UUID) (*dto.CartResponse, error)
	Clear(ctx context.Context) error
}

type cartUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	business      config.BusinessConfig
	cartRepo      repository.CartRepository
	inventoryRepo repository.InventoryRepository
}

func NewCartUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	business config.BusinessConfig,
	cartRepo repository.CartRepository,
	inventoryRepo repository.InventoryRepository,
) CartUsecase {
	return &cartUsecase{
		db:            db,
		log:           log,
		business:      business,
		cartRepo:      cartRepo,
		inventoryRepo: inventoryRepo,
	}
}

func (u *cartUsecase) Get(ctx context.Context) (*dto.CartResponse, error) {
	userID, err := patientActor(ctx)
	if err != nil {
		return nil, err
	}
	return u.cart(ctx, userID)
}

func (u *cartUsecase) cart(ctx context.Context, userID uuid.UUID) (*dto.CartResponse, error) {
	items, err := u.cartRepo.FindByUser(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to load cart: %+v", err)
		return nil, err
	}
	return converter.CartToResponse(items, u.business.Currency, i18n.FromContext(ctx)), nil
}

// sellable loads the inventory item and checks it can cover quantity
func (u *cartUsecase) sellable(db *gorm.DB, inventoryID uuid.UUID, quantity int) error {
	item, err := u.inventoryRepo.FindByID(db, inventoryID)
	if err != nil {
		u.log.Warnf("Failed to find inventory item: %+v", err)
		return err
	}
	if item == nil {
		return ErrInventoryNotFound
	}
	if !item.IsSellable() {
		return ErrItemUnavailable
	}
	if item.Quantity < quantity {
		return ErrInsufficientStock
	}
	return nil
}

// Add merges into an existing line for the same item. The merged quantity must still be in stock.
func (u *cartUsecase) Add(ctx context.Context, req *dto.AddCartItemRequest) (*dto.CartResponse, error) {
	userID, err := patientActor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	line := &entity.CartItem{UserID: userID, InventoryID: req.InventoryID, Quantity: req.Quantity}
	if err := u.cartRepo.AddQuantity(tx, line); err != nil {
		if isForeignKeyError(err, "cart_items_inventory_id_fkey") {
			return nil, ErrInventoryNotFound
		}
		u.log.Warnf("Failed to add cart item: %+v", err)
		return nil, err
	}
	if err := u.sellable(tx, req.InventoryID, line.Quantity); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return u.cart(ctx, userID)
}

// Update sets the line quantity. Zero removes the line.
func (u *cartUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	if req.Quantity == nil || *req.Quantity == 0 {
		return u.Remove(ctx, id)
	}

	userID, err := patientActor(ctx)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	line, err := u.cartRepo.FindOwned(db, userID, id)
	if err != nil {
		u.log.Warnf("Failed to find cart item: %+v", err)
		return nil, err
	}
	if line == nil {
		return nil, ErrCartItemNotFound
	}
	if err := u.sellable(db, line.InventoryID, *req.Quantity); err != nil {
		return nil, err
	}

	line.Quantity = *req.Quantity
	if err := u.cartRepo.Update(db, line); err != nil {
		u.log.Warnf("Failed to update cart item: %+v", err)
		return nil, err
	}
	return u.cart(ctx, userID)
}

func (u *cartUsecase) Remove(ctx context.Context, id uuid.UUID) (*dto.CartResponse, error) {
	userID, err := patientActor(ctx)
	if err != nil {
		return nil, err
	}

	affected, err := u.cartRepo.Delete(u.db.WithContext(ctx), userID, id)
	if err != nil {
		u.log.Warnf("Failed to remove cart item: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrCartItemNotFound
	}
	return u.cart(ctx, userID)
}

func (u *cartUsecase) Clear(ctx context.Context) error {
	userID, err := patientActor(ctx)
	if err != nil {
		return err
	}

	if _, err := u.cartRepo.Clear(u.db.WithContext(ctx), userID); err != nil {
		u.log.Warnf("Failed to clear cart: %+v", err)
		return err
	}
	return nil
}
