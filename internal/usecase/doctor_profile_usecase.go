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

var ErrDoctorNotFound = errors.New("doctor not found")

type DoctorProfileUsecase interface {
	List(ctx context.Context, filter entity.DoctorFilter) ([]dto.DoctorResponse, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	GetOwnProfile(ctx context.Context) (*dto.DoctorResponse, error)
	UpdateOwnProfile(ctx context.Context, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Verify(ctx context.Context, id uuid.UUID, req *dto.VerifyDoctorRequest) (*dto.DoctorResponse, error)
}

type doctorProfileUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:                db,
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

func (u *doctorProfileUsecase) List(ctx context.Context, filter entity.DoctorFilter) ([]dto.DoctorResponse, int64, error) {
	doctors, total, err := u.doctorProfileRepo.FindVerified(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, 0, err
	}
	return converter.DoctorsToResponses(doctors, i18n.FromContext(ctx)), total, nil
}

// Get returns a verified doctor; unverified profiles are visible to their owner only
func (u *doctorProfileUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil || !profile.IsVerified {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(profile, i18n.FromContext(ctx)), nil
}

func (u *doctorProfileUsecase) GetOwnProfile(ctx context.Context) (*dto.DoctorResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(profile, i18n.FromContext(ctx)), nil
}

func (u *doctorProfileUsecase) UpdateOwnProfile(ctx context.Context, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	// Partial update: only provided fields change
	if req.Specialty != "" {
		profile.Specialty = req.Specialty
	}
	if req.SpecialtyAr != nil {
		profile.SpecialtyAr = *req.SpecialtyAr
	}
	if req.ClinicName != nil {
		profile.ClinicName = *req.ClinicName
	}
	if req.ClinicNameAr != nil {
		profile.ClinicNameAr = *req.ClinicNameAr
	}
	if req.YearsExperience != nil {
		profile.YearsExperience = *req.YearsExperience
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.BioAr != nil {
		profile.BioAr = *req.BioAr
	}
	if req.ConsultationFee != nil {
		profile.ConsultationFee = decimal.NewFromFloat(*req.ConsultationFee).Round(2)
	}

	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "doctor_profile", userID.String(), nil, req); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(profile, i18n.FromContext(ctx)), nil
}

func (u *doctorProfileUsecase) Verify(ctx context.Context, id uuid.UUID, req *dto.VerifyDoctorRequest) (*dto.DoctorResponse, error) {
	adminID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	old := profile.IsVerified
	profile.IsVerified = *req.IsVerified

	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor verification: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionDoctorVerify, "doctor_profile", id.String(),
		map[string]interface{}{"is_verified": old},
		map[string]interface{}{"is_verified": profile.IsVerified, "notes": req.Notes},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(profile, i18n.FromContext(ctx)), nil
}
