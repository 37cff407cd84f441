package usecase

import (
	"context"
	"errors"
	"strings"

	"dawaksahl-api/internal/converter"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/internal/infrastructure/storage"
	"dawaksahl-api/internal/service"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/upload"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrPatientsOnly    = errors.New("only patients can perform this action")
)

const avatarFolder = "avatars"

type UserUsecase interface {
	GetProfile(ctx context.Context) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UploadAvatar(ctx context.Context, file *upload.File) (*dto.UserResponse, error)
	ListAddresses(ctx context.Context) ([]dto.AddressResponse, error)
	AddAddress(ctx context.Context, req *dto.AddressRequest) (*dto.AddressResponse, error)
	UpdateAddress(ctx context.Context, id uuid.UUID, req *dto.AddressRequest) (*dto.AddressResponse, error)
	DeleteAddress(ctx context.Context, id uuid.UUID) error
	GetMedicalInfo(ctx context.Context) (*dto.MedicalInfoResponse, error)
	UpdateMedicalInfo(ctx context.Context, req *dto.MedicalInfoRequest) (*dto.MedicalInfoResponse, error)
	UpdateUserStatus(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserStatusRequest) (*dto.UserResponse, error)
}

type userUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	addressRepo        repository.UserAddressRepository
	patientProfileRepo repository.PatientProfileRepository
	files              storage.FileStorage
	tokens             *service.TokenStore
	auditService       service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	addressRepo repository.UserAddressRepository,
	patientProfileRepo repository.PatientProfileRepository,
	files storage.FileStorage,
	tokens *service.TokenStore,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		addressRepo:        addressRepo,
		patientProfileRepo: patientProfileRepo,
		files:              files,
		tokens:             tokens,
		auditService:       auditService,
	}
}

func (u *userUsecase) GetProfile(ctx context.Context) (*dto.UserResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	return u.loadProfile(ctx, userID)
}

func (u *userUsecase) loadProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindWithProfile(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user, i18n.FromContext(ctx)), nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	old := map[string]interface{}{
		"first_name":         user.FirstName,
		"last_name":          user.LastName,
		"phone":              user.Phone,
		"preferred_language": user.PreferredLanguage,
	}

	// Partial update: only provided fields change
	if req.FirstName != "" {
		user.FirstName = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		user.LastName = strings.TrimSpace(req.LastName)
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.PreferredLanguage != "" {
		user.PreferredLanguage = req.PreferredLanguage
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "user", userID.String(), old, req); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.loadProfile(ctx, userID)
}

// UploadAvatar stores the new image first and removes the previous one only after the row points at the new file
func (u *userUsecase) UploadAvatar(ctx context.Context, file *upload.File) (*dto.UserResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	url, err := u.files.Save(ctx, avatarFolder, file.Extension, file.Content)
	if err != nil {
		u.log.Warnf("Failed to store avatar: %+v", err)
		return nil, err
	}

	if err := u.userRepo.UpdateFields(db, userID, map[string]interface{}{"avatar_url": url}); err != nil {
		u.log.Warnf("Failed to update avatar: %+v", err)
		if delErr := u.files.Delete(ctx, url); delErr != nil {
			u.log.Warnf("Failed to remove orphan avatar %s: %+v", url, delErr)
		}
		return nil, err
	}

	if user.AvatarURL != "" {
		if err := u.files.Delete(ctx, user.AvatarURL); err != nil {
			u.log.Warnf("Failed to remove previous avatar %s: %+v", user.AvatarURL, err)
		}
	}

	return u.loadProfile(ctx, userID)
}

func (u *userUsecase) ListAddresses(ctx context.Context) ([]dto.AddressResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	addresses, err := u.addressRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list addresses: %+v", err)
		return nil, err
	}
	return converter.AddressesToResponses(addresses), nil
}

func (u *userUsecase) AddAddress(ctx context.Context, req *dto.AddressRequest) (*dto.AddressResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	count, err := u.addressRepo.CountByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to count addresses: %+v", err)
		return nil, err
	}

	address := &entity.UserAddress{UserID: userID}
	applyAddress(address, req)
	// The first address is always the default
	address.IsDefault = req.IsDefault || count == 0

	if err := u.addressRepo.Create(tx, address); err != nil {
		u.log.Warnf("Failed to create address: %+v", err)
		return nil, err
	}
	if address.IsDefault {
		if err := u.addressRepo.ClearDefault(tx, userID, address.ID); err != nil {
			u.log.Warnf("Failed to clear default address: %+v", err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AddressToResponse(address), nil
}

func (u *userUsecase) UpdateAddress(ctx context.Context, id uuid.UUID, req *dto.AddressRequest) (*dto.AddressResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	address, err := u.addressRepo.FindByID(tx, userID, id)
	if err != nil {
		u.log.Warnf("Failed to find address: %+v", err)
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	wasDefault := address.IsDefault
	applyAddress(address, req)
	// Unsetting the only default is ignored; another address must be chosen instead
	address.IsDefault = req.IsDefault || wasDefault

	if err := u.addressRepo.Update(tx, address); err != nil {
		u.log.Warnf("Failed to update address: %+v", err)
		return nil, err
	}
	if address.IsDefault && !wasDefault {
		if err := u.addressRepo.ClearDefault(tx, userID, address.ID); err != nil {
			u.log.Warnf("Failed to clear default address: %+v", err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AddressToResponse(address), nil
}

func (u *userUsecase) DeleteAddress(ctx context.Context, id uuid.UUID) error {
	userID, _, err := actor(ctx)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	deleted, err := u.addressRepo.Delete(tx, userID, id)
	if err != nil {
		u.log.Warnf("Failed to delete address: %+v", err)
		return err
	}
	if deleted == 0 {
		return ErrAddressNotFound
	}
	if err := u.addressRepo.PromoteDefault(tx, userID); err != nil {
		u.log.Warnf("Failed to promote default address: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func applyAddress(address *entity.UserAddress, req *dto.AddressRequest) {
	label := req.Label
	if label == "" {
		label = entity.AddressLabelHome
	}
	address.Label = label
	address.City = strings.TrimSpace(req.City)
	address.District = req.District
	address.Street = strings.TrimSpace(req.Street)
	address.BuildingNumber = req.BuildingNumber
	address.PostalCode = req.PostalCode
	address.Latitude = req.Latitude
	address.Longitude = req.Longitude
}

func (u *userUsecase) GetMedicalInfo(ctx context.Context) (*dto.MedicalInfoResponse, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if roleID != entity.RoleIDPatient {
		return nil, ErrPatientsOnly
	}

	profile, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		profile = &entity.PatientProfile{UserID: userID}
	}
	return converter.MedicalInfoToResponse(profile), nil
}

func (u *userUsecase) UpdateMedicalInfo(ctx context.Context, req *dto.MedicalInfoRequest) (*dto.MedicalInfoResponse, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if roleID != entity.RoleIDPatient {
		return nil, ErrPatientsOnly
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		profile = &entity.PatientProfile{UserID: userID}
	}

	if dob != nil {
		profile.DateOfBirth = dob
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.BloodType != "" {
		profile.BloodType = req.BloodType
	}
	if req.Allergies != nil {
		profile.Allergies = entity.StringList(req.Allergies)
	}
	if req.ChronicConditions != nil {
		profile.ChronicConditions = entity.StringList(req.ChronicConditions)
	}
	if req.CurrentMedications != nil {
		profile.CurrentMedications = entity.StringList(req.CurrentMedications)
	}
	if req.EmergencyContact != "" {
		profile.EmergencyContact = req.EmergencyContact
	}
	if req.InsuranceProvider != "" {
		profile.InsuranceProvider = req.InsuranceProvider
	}
	if req.InsuranceNumber != "" {
		profile.InsuranceNumber = req.InsuranceNumber
	}
	if req.HeightCm != nil {
		profile.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		profile.WeightKg = req.WeightKg
	}

	if err := u.patientProfileRepo.Save(tx, profile); err != nil {
		u.log.Warnf("Failed to save patient profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.Log(ctx, tx, service.AuditEntry{
		ActorID:    &userID,
		Action:     entity.AuditActionProfileUpdate,
		EntityName: "patient_profile",
		EntityID:   userID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicalInfoToResponse(profile), nil
}

// UpdateUserStatus activates or deactivates an account. Deactivation ends every session.
func (u *userUsecase) UpdateUserStatus(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserStatusRequest) (*dto.UserResponse, error) {
	adminID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	active := *req.IsActive
	if err := u.userRepo.UpdateFields(tx, userID, map[string]interface{}{"is_active": active}); err != nil {
		u.log.Warnf("Failed to update user status: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionUserStatus, "user", userID.String(),
		map[string]interface{}{"is_active": user.IsActive},
		map[string]interface{}{"is_active": active, "reason": req.Reason},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if !active {
		if _, err := u.tokens.RevokeAll(ctx, userID); err != nil {
			u.log.Warnf("Failed to revoke tokens of deactivated user %s: %+v", userID, err)
		}
	}

	return u.loadProfile(ctx, userID)
}
