package usecase

import (
	"context"
	"errors"
	"time"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/converter"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/internal/infrastructure/metrics"
	"dawaksahl-api/internal/infrastructure/storage"
	"dawaksahl-api/internal/service"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/upload"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPrescriptionNotFound      = errors.New("prescription not found")
	ErrPrescriptionExpiryInvalid = errors.New("prescription expiry must be in the future")
	ErrPatientNotFound           = errors.New("patient not found")
	ErrPrescriptionNoImage       = errors.New("prescription has no image")
)

type PrescriptionUsecase interface {
	Upload(ctx context.Context, req *dto.UploadPrescriptionRequest, file *upload.File) (*dto.PrescriptionResponse, error)
	Issue(ctx context.Context, req *dto.IssuePrescriptionRequest) (*dto.PrescriptionResponse, error)
	List(ctx context.Context, status entity.PrescriptionStatus, page entity.Page) ([]dto.PrescriptionResponse, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error)
	Verify(ctx context.Context, id uuid.UUID, req *dto.PrescriptionVerificationRequest) (*dto.PrescriptionResponse, error)
	Reject(ctx context.Context, id uuid.UUID, req *dto.PrescriptionVerificationRequest) (*dto.PrescriptionResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error)
	Image(ctx context.Context, id uuid.UUID) (*storage.StoredFile, error)
	ExpireDue(ctx context.Context) (int64, error)
}

type prescriptionUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	business            config.BusinessConfig
	prescriptionRepo    repository.PrescriptionRepository
	userRepo            repository.UserRepository
	pharmacyRepo        repository.PharmacyRepository
	doctorProfileRepo   repository.DoctorProfileRepository
	medicationRepo      repository.MedicationRepository
	files               storage.FileStorage
	auditService        service.AuditService
	notificationService service.NotificationService
	outbox              service.OutboxRecorder
	metrics             *metrics.Metrics
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	business config.BusinessConfig,
	prescriptionRepo repository.PrescriptionRepository,
	userRepo repository.UserRepository,
	pharmacyRepo repository.PharmacyRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	medicationRepo repository.MedicationRepository,
	files storage.FileStorage,
	auditService service.AuditService,
	notificationService service.NotificationService,
	outbox service.OutboxRecorder,
	m *metrics.Metrics,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:                  db,
		log:                 log,
		business:            business,
		prescriptionRepo:    prescriptionRepo,
		userRepo:            userRepo,
		pharmacyRepo:        pharmacyRepo,
		doctorProfileRepo:   doctorProfileRepo,
		medicationRepo:      medicationRepo,
		files:               files,
		auditService:        auditService,
		notificationService: notificationService,
		outbox:              outbox,
		metrics:             m,
	}
}

// expiryFrom validates a requested expiry date or falls back to the configured validity
func (u *prescriptionUsecase) expiryFrom(raw string, now time.Time) (time.Time, error) {
	expiry, err := parseDate(raw)
	if err != nil {
		return time.Time{}, err
	}
	day := today(now)
	if expiry == nil {
		return day.AddDate(0, 0, u.business.PrescriptionExpiryDays), nil
	}
	if !expiry.After(day) {
		return time.Time{}, ErrPrescriptionExpiryInvalid
	}
	return *expiry, nil
}

func (u *prescriptionUsecase) checkPharmacy(db *gorm.DB, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	pharmacy, err := u.pharmacyRepo.FindVerifiedByID(db, *id)
	if err != nil {
		u.log.Warnf("Failed to find pharmacy: %+v", err)
		return err
	}
	if pharmacy == nil {
		return ErrPharmacyNotFound
	}
	return nil
}

func (u *prescriptionUsecase) Upload(ctx context.Context, req *dto.UploadPrescriptionRequest, file *upload.File) (*dto.PrescriptionResponse, error) {
	patientID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expiry, err := u.expiryFrom(req.ExpiryDate, now)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	if err := u.checkPharmacy(db, req.PharmacyID); err != nil {
		return nil, err
	}
	if req.DoctorID != nil {
		doctor, err := u.doctorProfileRepo.FindByUserID(db, *req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile: %+v", err)
			return nil, err
		}
		if doctor == nil || !doctor.IsVerified {
			return nil, ErrDoctorNotFound
		}
	}

	url, err := u.files.Save(ctx, storage.PrescriptionFolder, file.Extension, file.Content)
	if err != nil {
		u.log.Warnf("Failed to store prescription image: %+v", err)
		return nil, err
	}

	prescriptionType := entity.PrescriptionType(req.PrescriptionType)
	if prescriptionType == "" {
		prescriptionType = entity.PrescriptionTypeRegular
	}

	prescription := &entity.Prescription{
		PatientID:        patientID,
		DoctorID:         req.DoctorID,
		PharmacyID:       req.PharmacyID,
		Status:           entity.PrescriptionStatusPending,
		PrescriptionType: prescriptionType,
		Notes:            req.Notes,
		ImageURL:         url,
		IssueDate:        today(now),
		ExpiryDate:       expiry,
	}

	notifications, err := u.createPrescription(ctx, prescription, patientID)
	if err != nil {
		if delErr := u.files.Delete(ctx, url); delErr != nil {
			u.log.Warnf("Failed to remove orphan prescription image %s: %+v", url, delErr)
		}
		return nil, err
	}

	u.notificationService.Push(ctx, notifications...)
	u.metrics.PrescriptionUploaded()
	return u.reload(ctx, prescription.ID)
}

// Issue lets a verified doctor write a prescription for a patient
func (u *prescriptionUsecase) Issue(ctx context.Context, req *dto.IssuePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	doctorID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expiry, err := u.expiryFrom(req.ExpiryDate, now)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsVerified {
		return nil, ErrForbidden
	}

	patient, err := u.userRepo.FindByID(db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil || !patient.IsPatient() || !patient.IsActive {
		return nil, ErrPatientNotFound
	}

	if err := u.checkPharmacy(db, req.PharmacyID); err != nil {
		return nil, err
	}

	items := make([]entity.PrescriptionItem, 0, len(req.Items))
	for _, line := range req.Items {
		item := entity.PrescriptionItem{
			MedicationID:   line.MedicationID,
			MedicationName: line.MedicationName,
			Dosage:         line.Dosage,
			Frequency:      line.Frequency,
			Duration:       line.Duration,
			Quantity:       line.Quantity,
			Instructions:   line.Instructions,
		}
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		if line.MedicationID != nil {
			medication, err := u.medicationRepo.FindByID(db, *line.MedicationID)
			if err != nil {
				u.log.Warnf("Failed to find medication: %+v", err)
				return nil, err
			}
			if medication == nil || !medication.IsActive {
				return nil, ErrMedicationNotFound
			}
			if item.MedicationName == "" {
				item.MedicationName = medication.Name
			}
		}
		items = append(items, item)
	}

	prescriptionType := entity.PrescriptionType(req.PrescriptionType)
	if prescriptionType == "" {
		prescriptionType = entity.PrescriptionTypeRegular
	}

	prescription := &entity.Prescription{
		PatientID:        req.PatientID,
		DoctorID:         &doctorID,
		PharmacyID:       req.PharmacyID,
		Status:           entity.PrescriptionStatusPending,
		PrescriptionType: prescriptionType,
		Diagnosis:        req.Diagnosis,
		DiagnosisAr:      req.DiagnosisAr,
		Notes:            req.Notes,
		IssueDate:        today(now),
		ExpiryDate:       expiry,
		Items:            items,
	}

	notifications, err := u.createPrescription(ctx, prescription, doctorID)
	if err != nil {
		return nil, err
	}

	u.notificationService.Push(ctx, notifications...)
	u.metrics.PrescriptionUploaded()
	return u.reload(ctx, prescription.ID)
}

// createPrescription inserts the prescription with its notifications and outbox event in one transaction
func (u *prescriptionUsecase) createPrescription(ctx context.Context, prescription *entity.Prescription, createdBy uuid.UUID) ([]*entity.Notification, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	err := createNumbered(tx, entity.PrescriptionNumberPrefix, "prescription_number", func(number string) error {
		prescription.PrescriptionNumber = number
		return u.prescriptionRepo.Create(tx, prescription)
	})
	if err != nil {
		if isForeignKeyError(err, "medication") {
			return nil, ErrMedicationNotFound
		}
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	var notifications []*entity.Notification
	data := entity.JSON{"prescription_id": prescription.ID.String(), "prescription_number": prescription.PrescriptionNumber}
	actionURL := "/prescriptions/" + prescription.ID.String()

	if prescription.PharmacyID != nil {
		n, err := u.notificationService.Create(ctx, tx, service.NotificationInput{
			UserID:    *prescription.PharmacyID,
			Type:      entity.NotificationTypePrescription,
			Title:     i18n.NotifyPrescriptionNewTitle,
			Body:      i18n.NotifyPrescriptionNewBody.Format(prescription.PrescriptionNumber),
			Priority:  entity.PriorityHigh,
			ActionURL: actionURL,
			Data:      data,
		})
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if createdBy != prescription.PatientID {
		n, err := u.notificationService.Create(ctx, tx, service.NotificationInput{
			UserID:    prescription.PatientID,
			Type:      entity.NotificationTypePrescription,
			Title:     i18n.NotifyPrescriptionNewTitle,
			Body:      i18n.NotifyPrescriptionIssuedBody.Format(prescription.PrescriptionNumber),
			ActionURL: actionURL,
			Data:      data,
		})
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err := u.outbox.Record(ctx, tx, "prescription", prescription.ID, entity.EventPrescriptionUploaded, entity.JSON{
		"prescription_number": prescription.PrescriptionNumber,
		"patient_id":          prescription.PatientID.String(),
		"created_by":          createdBy.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return notifications, nil
}

func (u *prescriptionUsecase) List(ctx context.Context, status entity.PrescriptionStatus, page entity.Page) ([]dto.PrescriptionResponse, int64, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, 0, err
	}

	prescriptions, total, err := u.prescriptionRepo.FindAll(u.db.WithContext(ctx), entity.PrescriptionFilter{
		UserID: userID,
		RoleID: roleID,
		Status: status,
		Page:   page,
	})
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, 0, err
	}
	return converter.PrescriptionsToResponses(prescriptions, i18n.FromContext(ctx)), total, nil
}

// Get hides prescriptions the caller may not see behind a not-found
func (u *prescriptionUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil || !prescription.IsVisibleTo(userID, roleID) {
		return nil, ErrPrescriptionNotFound
	}
	return converter.PrescriptionToResponse(prescription, i18n.FromContext(ctx)), nil
}

func (u *prescriptionUsecase) Verify(ctx context.Context, id uuid.UUID, req *dto.PrescriptionVerificationRequest) (*dto.PrescriptionResponse, error) {
	return u.review(ctx, id, entity.PrescriptionStatusVerified, req)
}

func (u *prescriptionUsecase) Reject(ctx context.Context, id uuid.UUID, req *dto.PrescriptionVerificationRequest) (*dto.PrescriptionResponse, error) {
	return u.review(ctx, id, entity.PrescriptionStatusRejected, req)
}

// review is the pharmacy decision on a pending prescription. An unassigned
// prescription is claimed by the reviewing pharmacy.
func (u *prescriptionUsecase) review(ctx context.Context, id uuid.UUID, next entity.PrescriptionStatus, req *dto.PrescriptionVerificationRequest) (*dto.PrescriptionResponse, error) {
	pharmacyID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// The row lock serialises two pharmacies claiming the same unassigned prescription
	prescription, err := u.prescriptionRepo.FindByID(tx.Clauses(forUpdate()), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil || !prescription.IsVisibleTo(pharmacyID, roleID) {
		return nil, ErrPrescriptionNotFound
	}
	if prescription.PharmacyID != nil && *prescription.PharmacyID != pharmacyID {
		return nil, ErrPrescriptionNotFound
	}
	if !prescription.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	if err := u.requireVerifiedPharmacy(tx, pharmacyID); err != nil {
		return nil, err
	}

	now := time.Now()
	oldStatus := prescription.Status
	prescription.Status = next
	prescription.PharmacyID = &pharmacyID
	prescription.VerifiedBy = &pharmacyID
	prescription.VerifiedAt = &now
	if req != nil {
		prescription.VerificationNotes = req.Notes
		prescription.VerificationNotesAr = req.NotesAr
	}

	affected, err := u.prescriptionRepo.UpdateIfStatus(tx, prescription, oldStatus)
	if err != nil {
		u.log.Warnf("Failed to update prescription: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidTransition
	}

	action := entity.AuditActionPrescriptionVerify
	event := entity.EventPrescriptionVerified
	if next == entity.PrescriptionStatusRejected {
		event = entity.EventPrescriptionRejected
	}

	if err := u.auditService.LogUpdate(ctx, tx, &pharmacyID, action, "prescription", id.String(),
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": next, "notes": prescription.VerificationNotes},
	); err != nil {
		return nil, err
	}

	notification, err := u.notifyStatus(ctx, tx, prescription, entity.PriorityHigh)
	if err != nil {
		return nil, err
	}

	if err := u.outbox.Record(ctx, tx, "prescription", prescription.ID, event, entity.JSON{
		"prescription_number": prescription.PrescriptionNumber,
		"pharmacy_id":         pharmacyID.String(),
		"status":              string(next),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notificationService.Push(ctx, notification)
	return u.reload(ctx, id)
}

// Cancel withdraws a pending or verified prescription; only its patient may do it
func (u *prescriptionUsecase) Cancel(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	patientID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	prescription, err := u.prescriptionRepo.FindByID(tx.Clauses(forUpdate()), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil || prescription.PatientID != patientID {
		return nil, ErrPrescriptionNotFound
	}
	if !prescription.CanTransitionTo(entity.PrescriptionStatusCancelled) {
		return nil, ErrInvalidTransition
	}

	oldStatus := prescription.Status
	prescription.Status = entity.PrescriptionStatusCancelled
	affected, err := u.prescriptionRepo.UpdateIfStatus(tx, prescription, oldStatus)
	if err != nil {
		u.log.Warnf("Failed to cancel prescription: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidTransition
	}

	var notification *entity.Notification
	if prescription.PharmacyID != nil {
		notification, err = u.notificationService.Create(ctx, tx, service.NotificationInput{
			UserID:    *prescription.PharmacyID,
			Type:      entity.NotificationTypePrescription,
			Title:     i18n.NotifyPrescriptionStatusTitle,
			Body:      i18n.NotifyPrescriptionStatusBody.Format(prescription.PrescriptionNumber, i18n.StatusLabel(string(prescription.Status))),
			ActionURL: "/prescriptions/" + prescription.ID.String(),
			Data:      entity.JSON{"prescription_id": prescription.ID.String(), "status": string(prescription.Status)},
		})
		if err != nil {
			return nil, err
		}
	}

	if err := u.outbox.Record(ctx, tx, "prescription", prescription.ID, entity.EventPrescriptionCancelled, entity.JSON{
		"prescription_number": prescription.PrescriptionNumber,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notificationService.Push(ctx, notification)
	return u.reload(ctx, id)
}

// Image opens the uploaded scan for someone allowed to read the prescription
func (u *prescriptionUsecase) Image(ctx context.Context, id uuid.UUID) (*storage.StoredFile, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil || !prescription.IsVisibleTo(userID, roleID) {
		return nil, ErrPrescriptionNotFound
	}
	if prescription.ImageURL == "" {
		return nil, ErrPrescriptionNoImage
	}

	file, err := u.files.Open(ctx, prescription.ImageURL)
	if errors.Is(err, storage.ErrFileNotFound) {
		u.log.Warnf("Prescription %s image missing from storage", id)
		return nil, ErrPrescriptionNoImage
	}
	if err != nil {
		u.log.Warnf("Failed to open prescription image: %+v", err)
		return nil, err
	}
	return file, nil
}

// ExpireDue is the scheduled sweep moving prescriptions past their expiry date to expired
func (u *prescriptionUsecase) ExpireDue(ctx context.Context) (int64, error) {
	expired, err := u.prescriptionRepo.ExpireDue(u.db.WithContext(ctx), time.Now())
	if err != nil {
		u.log.Warnf("Failed to expire prescriptions: %+v", err)
		return 0, err
	}
	if expired > 0 {
		u.log.WithField("expired", expired).Info("Expired due prescriptions")
	}
	return expired, nil
}

func (u *prescriptionUsecase) notifyStatus(ctx context.Context, tx *gorm.DB, prescription *entity.Prescription, priority entity.NotificationPriority) (*entity.Notification, error) {
	return u.notificationService.Create(ctx, tx, service.NotificationInput{
		UserID:    prescription.PatientID,
		Type:      entity.NotificationTypePrescription,
		Title:     i18n.NotifyPrescriptionStatusTitle,
		Body:      i18n.NotifyPrescriptionStatusBody.Format(prescription.PrescriptionNumber, i18n.StatusLabel(string(prescription.Status))),
		Priority:  priority,
		ActionURL: "/prescriptions/" + prescription.ID.String(),
		Data:      entity.JSON{"prescription_id": prescription.ID.String(), "status": string(prescription.Status)},
	})
}

func (u *prescriptionUsecase) requireVerifiedPharmacy(db *gorm.DB, pharmacyID uuid.UUID) error {
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

func (u *prescriptionUsecase) reload(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to reload prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	return converter.PrescriptionToResponse(prescription, i18n.FromContext(ctx)), nil
}
