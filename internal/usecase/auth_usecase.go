package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"dawaksahl-api/internal/converter"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/delivery/http/middleware"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/internal/service"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrLicenseAlreadyExists = errors.New("license number already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountDisabled      = errors.New("account is disabled")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrTokenRevoked         = errors.New("token has been revoked")
	ErrUserNotFound         = errors.New("user not found")
	ErrRoleNotFound         = errors.New("role not found")
	ErrWrongPassword        = errors.New("current password is incorrect")
)

const tokenTypeBearer = "Bearer"

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	RegisterPharmacy(ctx context.Context, req *dto.RegisterPharmacyRequest) (*dto.UserResponse, error)
	RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, req *dto.LogoutRequest) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error
}

type authUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	patientProfileRepo repository.PatientProfileRepository
	pharmacyRepo       repository.PharmacyRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	jwtService         *jwt.JWTService
	tokens             *service.TokenStore
	auditService       service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientProfileRepo repository.PatientProfileRepository,
	pharmacyRepo repository.PharmacyRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	jwtService *jwt.JWTService,
	tokens *service.TokenStore,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		patientProfileRepo: patientProfileRepo,
		pharmacyRepo:       pharmacyRepo,
		doctorProfileRepo:  doctorProfileRepo,
		jwtService:         jwtService,
		tokens:             tokens,
		auditService:       auditService,
	}
}

// accountInput is the part shared by every registration request
type accountInput struct {
	email, password, firstName, lastName, phone, language string
	roleID                                                int
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	return u.register(ctx, accountInput{
		email:     req.Email,
		password:  req.Password,
		firstName: req.FirstName,
		lastName:  req.LastName,
		phone:     req.Phone,
		language:  req.PreferredLanguage,
		roleID:    entity.RoleIDPatient,
	}, func(tx *gorm.DB, user *entity.User) error {
		profile := &entity.PatientProfile{
			UserID:             user.ID,
			DateOfBirth:        dob,
			Gender:             req.Gender,
			Allergies:          entity.StringList{},
			ChronicConditions:  entity.StringList{},
			CurrentMedications: entity.StringList{},
		}
		if err := u.patientProfileRepo.Create(tx, profile); err != nil {
			u.log.Warnf("Failed to create patient profile: %+v", err)
			return err
		}
		user.PatientProfile = profile
		return nil
	})
}

func (u *authUsecase) RegisterPharmacy(ctx context.Context, req *dto.RegisterPharmacyRequest) (*dto.UserResponse, error) {
	return u.register(ctx, accountInput{
		email:     req.Email,
		password:  req.Password,
		firstName: req.FirstName,
		lastName:  req.LastName,
		phone:     req.Phone,
		language:  req.PreferredLanguage,
		roleID:    entity.RoleIDPharmacy,
	}, func(tx *gorm.DB, user *entity.User) error {
		pharmacy := &entity.Pharmacy{
			UserID:             user.ID,
			Name:               strings.TrimSpace(req.Name),
			NameAr:             strings.TrimSpace(req.NameAr),
			LicenseNumber:      strings.TrimSpace(req.LicenseNumber),
			PharmacistName:     req.PharmacistName,
			Phone:              req.Phone,
			Address:            req.Address,
			AddressAr:          req.AddressAr,
			City:               req.City,
			Latitude:           req.Latitude,
			Longitude:          req.Longitude,
			DeliveryRadiusKm:   10,
			VerificationStatus: entity.VerificationPending,
		}
		if err := u.pharmacyRepo.Create(tx, pharmacy); err != nil {
			if isDuplicateKeyError(err, "license") {
				return ErrLicenseAlreadyExists
			}
			u.log.Warnf("Failed to create pharmacy: %+v", err)
			return err
		}
		user.Pharmacy = pharmacy
		return nil
	})
}

func (u *authUsecase) RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error) {
	return u.register(ctx, accountInput{
		email:     req.Email,
		password:  req.Password,
		firstName: req.FirstName,
		lastName:  req.LastName,
		phone:     req.Phone,
		language:  req.PreferredLanguage,
		roleID:    entity.RoleIDDoctor,
	}, func(tx *gorm.DB, user *entity.User) error {
		profile := &entity.DoctorProfile{
			UserID:          user.ID,
			LicenseNumber:   strings.TrimSpace(req.LicenseNumber),
			Specialty:       req.Specialty,
			SpecialtyAr:     req.SpecialtyAr,
			ClinicName:      req.ClinicName,
			ClinicNameAr:    req.ClinicNameAr,
			YearsExperience: req.YearsExperience,
			ConsultationFee: decimal.NewFromFloat(req.ConsultationFee).Round(2),
		}
		if err := u.doctorProfileRepo.Create(tx, profile); err != nil {
			if isDuplicateKeyError(err, "license") {
				return ErrLicenseAlreadyExists
			}
			u.log.Warnf("Failed to create doctor profile: %+v", err)
			return err
		}
		user.DoctorProfile = profile
		return nil
	})
}

// register creates the user, lets createProfile add the role profile and audits both in one transaction
func (u *authUsecase) register(ctx context.Context, in accountInput, createProfile func(tx *gorm.DB, user *entity.User) error) (*dto.UserResponse, error) {
	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	lang := in.language
	if lang == "" {
		lang = string(i18n.FromContext(ctx))
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		Email:             strings.ToLower(strings.TrimSpace(in.email)),
		Password:          string(hashedPassword),
		FirstName:         strings.TrimSpace(in.firstName),
		LastName:          strings.TrimSpace(in.lastName),
		Phone:             in.phone,
		RoleID:            in.roleID,
		PreferredLanguage: lang,
		IsActive:          true,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isForeignKeyError(err, "role") {
			return nil, ErrRoleNotFound
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := createProfile(tx, user); err != nil {
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), map[string]interface{}{
		"email": user.Email,
		"role":  entity.RoleName(user.RoleID),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user, i18n.FromContext(ctx)), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// Find user by email (read-only, no transaction needed)
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), strings.TrimSpace(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	tokens, err := u.issueTokens(ctx, user.ID, user.Email, user.RoleID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := u.userRepo.UpdateFields(u.db.WithContext(ctx), user.ID, map[string]interface{}{"last_login_at": now}); err != nil {
		u.log.Warnf("Failed to update last login: %+v", err)
	}
	user.LastLoginAt = &now

	if err := u.auditService.Log(ctx, u.db, service.AuditEntry{
		ActorID:    &user.ID,
		Action:     entity.AuditActionUserLogin,
		EntityName: "user",
		EntityID:   user.ID.String(),
	}); err != nil {
		u.log.Warnf("Failed to audit login: %+v", err)
	}

	full, err := u.userRepo.FindWithProfile(u.db.WithContext(ctx), user.ID)
	if err != nil {
		u.log.Warnf("Failed to load user profile: %+v", err)
		return nil, err
	}
	if full != nil {
		user = full
	}
	tokens.User = converter.UserToResponse(user, i18n.FromContext(ctx))

	return tokens, nil
}

func (u *authUsecase) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	userID, _, err := actor(ctx)
	if err != nil {
		return err
	}
	tokenID, _ := middleware.GetTokenIDFromContext(ctx)

	if err := u.tokens.RevokeAccess(ctx, userID, tokenID); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	// The refresh token is optional; one belonging to someone else is ignored
	if req != nil && req.RefreshToken != "" {
		claims, err := u.jwtService.ValidateToken(req.RefreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == userID {
			if _, err := u.tokens.RevokeRefresh(ctx, userID, claims.TokenID); err != nil {
				u.log.Warnf("Failed to delete refresh token: %+v", err)
				return err
			}
		}
	}

	if err := u.auditService.Log(ctx, u.db, service.AuditEntry{
		ActorID:    &userID,
		Action:     entity.AuditActionUserLogout,
		EntityName: "user",
		EntityID:   userID.String(),
	}); err != nil {
		u.log.Warnf("Failed to audit logout: %+v", err)
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	// Validate refresh token
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	// Rotation: deleting the old token must succeed for exactly one caller
	revoked, err := u.tokens.RevokeRefresh(ctx, claims.UserID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}
	if !revoked {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return u.issueTokens(ctx, user.ID, user.Email, user.RoleID)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

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

// ChangePassword stores the new hash and revokes every session, including the current one
func (u *authUsecase) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	userID, _, err := actor(ctx)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	if err := u.userRepo.UpdateFields(tx, userID, map[string]interface{}{"password": string(hashedPassword)}); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return err
	}

	if err := u.auditService.Log(ctx, tx, service.AuditEntry{
		ActorID:    &userID,
		Action:     entity.AuditActionPasswordChange,
		EntityName: "user",
		EntityID:   userID.String(),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if _, err := u.tokens.RevokeAll(ctx, userID); err != nil {
		u.log.Warnf("Failed to revoke tokens after password change: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) issueTokens(ctx context.Context, userID uuid.UUID, email string, roleID int) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, email, roleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, email, roleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokens.StorePair(ctx, userID, accessTokenID, u.jwtService.GetAccessExpiry(), refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store tokens in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}
