package usecase

import (
	"context"
	"errors"

	"dawaksahl-api/internal/converter"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/pkg/i18n"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteExists   = errors.New("item already in favorites")
	ErrFavoriteType     = errors.New("item type must be medication or pharmacy")
)

type FavoriteUsecase interface {
	List(ctx context.Context, itemType string, page entity.Page) ([]dto.FavoriteResponse, int64, error)
	Add(ctx context.Context, req *dto.FavoriteRequest) (*dto.FavoriteResponse, error)
	Remove(ctx context.Context, id uuid.UUID) error
	Check(ctx context.Context, itemType string, itemID uuid.UUID) (*dto.FavoriteStatusResponse, error)
	// Toggle adds the item when absent and removes it otherwise
	Toggle(ctx context.Context, req *dto.FavoriteRequest) (*dto.FavoriteStatusResponse, error)
	Clear(ctx context.Context, itemType string) (int64, error)
	Stats(ctx context.Context) (*dto.FavoriteStatsResponse, error)
}

type favoriteUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	favoriteRepo   repository.FavoriteRepository
	medicationRepo repository.MedicationRepository
	pharmacyRepo   repository.PharmacyRepository
}

func NewFavoriteUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	favoriteRepo repository.FavoriteRepository,
	medicationRepo repository.MedicationRepository,
	pharmacyRepo repository.PharmacyRepository,
) FavoriteUsecase {
	return &favoriteUsecase{
		db:             db,
		log:            log,
		favoriteRepo:   favoriteRepo,
		medicationRepo: medicationRepo,
		pharmacyRepo:   pharmacyRepo,
	}
}

func patientActor(ctx context.Context) (uuid.UUID, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if roleID != entity.RoleIDPatient {
		return uuid.Nil, ErrPatientsOnly
	}
	return userID, nil
}

// optionalType accepts an empty filter or a known favorite type
func optionalType(raw string) (entity.FavoriteType, error) {
	itemType := entity.FavoriteType(raw)
	if raw != "" && !itemType.IsValid() {
		return "", ErrFavoriteType
	}
	return itemType, nil
}

func (u *favoriteUsecase) List(ctx context.Context, itemType string, page entity.Page) ([]dto.FavoriteResponse, int64, error) {
	userID, err := patientActor(ctx)
	if err != nil {
		return nil, 0, err
	}
	filterType, err := optionalType(itemType)
	if err != nil {
		return nil, 0, err
	}

	favorites, total, err := u.favoriteRepo.FindAll(u.db.WithContext(ctx), entity.FavoriteFilter{UserID: userID, Type: filterType, Page: page})
	if err != nil {
		u.log.Warnf("Failed to list favorites: %+v", err)
		return nil, 0, err
	}
	return converter.FavoritesToResponses(favorites, i18n.FromContext(ctx)), total, nil
}

// requireActive checks that the target exists and can still be shown to patients
func (u *favoriteUsecase) requireActive(db *gorm.DB, target entity.FavoriteTarget) error {
	if target.Type == entity.FavoriteTypePharmacy {
		pharmacy, err := u.pharmacyRepo.FindVerifiedByID(db, target.ID)
		if err != nil {
			u.log.Warnf("Failed to find pharmacy: %+v", err)
			return err
		}
		if pharmacy == nil {
			return ErrPharmacyNotFound
		}
		return nil
	}

	medication, err := u.medicationRepo.FindByID(db, target.ID)
	if err != nil {
		u.log.Warnf("Failed to find medication: %+v", err)
		return err
	}
	if medication == nil || !medication.IsActive {
		return ErrMedicationNotFound
	}
	return nil
}

func (u *favoriteUsecase) add(db *gorm.DB, userID uuid.UUID, req *dto.FavoriteRequest) (*entity.Favorite, error) {
	target := entity.FavoriteTarget{Type: entity.FavoriteType(req.ItemType), ID: req.ItemID}
	if !target.Type.IsValid() {
		return nil, ErrFavoriteType
	}
	if err := u.requireActive(db, target); err != nil {
		return nil, err
	}

	favorite := entity.NewFavorite(userID, target)
	favorite.Notes = req.Notes
	favorite.NotesAr = req.NotesAr
	if err := u.favoriteRepo.Create(db, favorite); err != nil {
		if isDuplicateKeyError(err, "favorites_user_") {
			return nil, ErrFavoriteExists
		}
		u.log.Warnf("Failed to add favorite: %+v", err)
		return nil, err
	}
	return favorite, nil
}

func (u *favoriteUsecase) Add(ctx context.Context, req *dto.FavoriteRequest) (*dto.FavoriteResponse, error) {
	userID, err := patientActor(ctx)
	if err != nil {
		return nil, err
	}

	favorite, err := u.add(u.db.WithContext(ctx), userID, req)
	if err != nil {
		return nil, err
	}
	return converter.FavoriteToResponse(favorite, i18n.FromContext(ctx)), nil
}

func (u *favoriteUsecase) Remove(ctx context.Context, id uuid.UUID) error {
	userID, err := patientActor(ctx)
	if err != nil {
		return err
	}

	affected, err := u.favoriteRepo.Delete(u.db.WithContext(ctx), userID, id)
	if err != nil {
		u.log.Warnf("Failed to remove favorite: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (u *favoriteUsecase) Check(ctx context.Context, itemType string, itemID uuid.UUID) (*dto.FavoriteStatusResponse, error) {
	userID, err := patientActor(ctx)
	if err != nil {
		return nil, err
	}
	target := entity.FavoriteTarget{Type: entity.FavoriteType(itemType), ID: itemID}
	if !target.Type.IsValid() {
		return nil, ErrFavoriteType
	}

	favorite, err := u.favoriteRepo.FindByTarget(u.db.WithContext(ctx), userID, target)
	if err != nil {
		u.log.Warnf("Failed to check favorite: %+v", err)
		return nil, err
	}
	if favorite == nil {
		return &dto.FavoriteStatusResponse{}, nil
	}
	return &dto.FavoriteStatusResponse{IsFavorite: true, FavoriteID: &favorite.ID}, nil
}

func (u *favoriteUsecase) Toggle(ctx context.Context, req *dto.FavoriteRequest) (*dto.FavoriteStatusResponse, error) {
	userID, err := patientActor(ctx)
	if err != nil {
		return nil, err
	}
	target := entity.FavoriteTarget{Type: entity.FavoriteType(req.ItemType), ID: req.ItemID}
	if !target.Type.IsValid() {
		return nil, ErrFavoriteType
	}

	db := u.db.WithContext(ctx)
	existing, err := u.favoriteRepo.FindByTarget(db, userID, target)
	if err != nil {
		u.log.Warnf("Failed to check favorite: %+v", err)
		return nil, err
	}
	if existing != nil {
		if _, err := u.favoriteRepo.Delete(db, userID, existing.ID); err != nil {
			u.log.Warnf("Failed to remove favorite: %+v", err)
			return nil, err
		}
		return &dto.FavoriteStatusResponse{}, nil
	}

	favorite, err := u.add(db, userID, req)
	if errors.Is(err, ErrFavoriteExists) {
		// A concurrent toggle added it first; report the stored row
		return u.Check(ctx, req.ItemType, req.ItemID)
	}
	if err != nil {
		return nil, err
	}
	return &dto.FavoriteStatusResponse{IsFavorite: true, FavoriteID: &favorite.ID}, nil
}

func (u *favoriteUsecase) Clear(ctx context.Context, itemType string) (int64, error) {
	userID, err := patientActor(ctx)
	if err != nil {
		return 0, err
	}
	filterType, err := optionalType(itemType)
	if err != nil {
		return 0, err
	}

	removed, err := u.favoriteRepo.DeleteAll(u.db.WithContext(ctx), userID, filterType)
	if err != nil {
		u.log.Warnf("Failed to clear favorites: %+v", err)
		return 0, err
	}
	return removed, nil
}

func (u *favoriteUsecase) Stats(ctx context.Context) (*dto.FavoriteStatsResponse, error) {
	userID, err := patientActor(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := u.favoriteRepo.CountByType(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to count favorites: %+v", err)
		return nil, err
	}
	return converter.FavoriteStatsToResponse(counts), nil
}
