package usecase

import (
	"io"
	"testing"
	"time"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePrescriptionRepo struct {
	repository.PrescriptionRepository
	prescriptions map[uuid.UUID]*entity.Prescription
	locked        []uuid.UUID
	// moved makes the guarded write find the row already changed by someone else
	moved     bool
	expired   int64
	expiredAt time.Time
}

func (f *fakePrescriptionRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error) {
	if isLocking(db) {
		f.locked = append(f.locked, id)
	}
	stored, ok := f.prescriptions[id]
	if !ok {
		return nil, nil
	}
	snapshot := *stored
	return &snapshot, nil
}

func (f *fakePrescriptionRepo) Update(_ *gorm.DB, p *entity.Prescription) error {
	saved := *p
	f.prescriptions[p.ID] = &saved
	return nil
}

func (f *fakePrescriptionRepo) UpdateIfStatus(_ *gorm.DB, p *entity.Prescription, expected entity.PrescriptionStatus) (int64, error) {
	stored, ok := f.prescriptions[p.ID]
	if f.moved || !ok || stored.Status != expected {
		return 0, nil
	}
	saved := *p
	f.prescriptions[p.ID] = &saved
	return 1, nil
}

func (f *fakePrescriptionRepo) ExpireDue(_ *gorm.DB, now time.Time) (int64, error) {
	f.expiredAt = now
	return f.expired, nil
}

type prescriptionFixture struct {
	usecase       *prescriptionUsecase
	prescriptions *fakePrescriptionRepo
	notifier      *recordingNotifier
	audit         *recordingAudit
	outbox        *recordingOutbox
	patient       uuid.UUID
	pharmacyID    uuid.UUID
}

func newPrescriptionFixture(db *gorm.DB) *prescriptionFixture {
	f := &prescriptionFixture{
		patient:       uuid.New(),
		pharmacyID:    uuid.New(),
		prescriptions: &fakePrescriptionRepo{prescriptions: map[uuid.UUID]*entity.Prescription{}},
		notifier:      &recordingNotifier{},
		audit:         &recordingAudit{},
		outbox:        &recordingOutbox{},
	}
	f.usecase = &prescriptionUsecase{
		db:                  db,
		log:                 newTestLogger(),
		business:            config.BusinessConfig{PrescriptionExpiryDays: 30},
		prescriptionRepo:    f.prescriptions,
		pharmacyRepo:        &fakePharmacyRepo{pharmacy: &entity.Pharmacy{UserID: f.pharmacyID, VerificationStatus: entity.VerificationVerified}},
		auditService:        f.audit,
		notificationService: f.notifier,
		outbox:              f.outbox,
	}
	return f
}

func (f *prescriptionFixture) unassigned() *entity.Prescription {
	prescription := &entity.Prescription{
		ID:                 uuid.New(),
		PrescriptionNumber: "RX-20261019-XYZ789",
		PatientID:          f.patient,
		Status:             entity.PrescriptionStatusPending,
		ExpiryDate:         time.Now().AddDate(0, 1, 0),
	}
	f.prescriptions.prescriptions[prescription.ID] = prescription
	return prescription
}

func TestVerifyPrescription_ClaimsUnassigned(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	f := newPrescriptionFixture(db)
	prescription := f.unassigned()

	resp, err := f.usecase.Verify(asUser(f.pharmacyID, entity.RoleIDPharmacy), prescription.ID, &dto.PrescriptionVerificationRequest{Notes: "Dosage confirmed"})
	require.NoError(t, err)

	assert.Equal(t, string(entity.PrescriptionStatusVerified), resp.Status)
	assert.Equal(t, &f.pharmacyID, resp.PharmacyID)
	assert.Equal(t, []uuid.UUID{prescription.ID}, f.prescriptions.locked)
	assert.Equal(t, []string{entity.AuditActionPrescriptionVerify}, f.audit.actions())
	assert.Equal(t, []string{entity.EventPrescriptionVerified}, f.outbox.events)
	require.Len(t, f.notifier.created, 1)
	assert.Equal(t, f.patient, f.notifier.created[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPrescription_SecondPharmacyCannotClaim(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	f := newPrescriptionFixture(db)
	prescription := f.unassigned()
	prescription.Status = entity.PrescriptionStatusVerified
	prescription.PharmacyID = &f.pharmacyID

	_, err := f.usecase.Reject(asUser(uuid.New(), entity.RoleIDPharmacy), prescription.ID, nil)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)
	assert.Equal(t, &f.pharmacyID, f.prescriptions.prescriptions[prescription.ID].PharmacyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPrescription_RowMovedUnderneath(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	f := newPrescriptionFixture(db)
	prescription := f.unassigned()
	f.prescriptions.moved = true

	_, err := f.usecase.Verify(asUser(f.pharmacyID, entity.RoleIDPharmacy), prescription.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, f.prescriptions.prescriptions[prescription.ID].PharmacyID)
	assert.Empty(t, f.audit.entries)
	assert.Empty(t, f.notifier.created)
	assert.Empty(t, f.outbox.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelPrescription_PatientOnly(t *testing.T) {
	db, mock := newMockDB(t)
	f := newPrescriptionFixture(db)
	prescription := f.unassigned()

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := f.usecase.Cancel(asUser(uuid.New(), entity.RoleIDPatient), prescription.ID)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := f.usecase.Cancel(asUser(f.patient, entity.RoleIDPatient), prescription.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PrescriptionStatusCancelled), resp.Status)
	assert.Equal(t, []string{entity.EventPrescriptionCancelled}, f.outbox.events)
	assert.Empty(t, f.notifier.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireDuePrescriptions(t *testing.T) {
	db, _ := newMockDB(t)
	f := newPrescriptionFixture(db)
	f.prescriptions.expired = 4

	before := time.Now()
	expired, err := f.usecase.ExpireDue(t.Context())
	require.NoError(t, err)

	assert.Equal(t, int64(4), expired)
	assert.False(t, f.prescriptions.expiredAt.Before(before))
}

func TestPrescriptionImage_VisibleToOwnerOnly(t *testing.T) {
	db, _ := newMockDB(t)
	f := newPrescriptionFixture(db)
	files, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	f.usecase.files = files

	url, err := files.Save(t.Context(), storage.PrescriptionFolder, ".png", []byte("scan"))
	require.NoError(t, err)
	prescription := f.unassigned()
	prescription.Status = entity.PrescriptionStatusVerified
	prescription.PharmacyID = &f.pharmacyID
	prescription.ImageURL = url

	file, err := f.usecase.Image(asUser(f.patient, entity.RoleIDPatient), prescription.ID)
	require.NoError(t, err)
	content, err := io.ReadAll(file)
	require.NoError(t, file.Close())
	require.NoError(t, err)
	assert.Equal(t, "scan", string(content))

	_, err = f.usecase.Image(asUser(uuid.New(), entity.RoleIDPatient), prescription.ID)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)
	_, err = f.usecase.Image(asUser(uuid.New(), entity.RoleIDPharmacy), prescription.ID)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)

	prescription.ImageURL = "/uploads/prescriptions/gone.png"
	_, err = f.usecase.Image(asUser(f.patient, entity.RoleIDPatient), prescription.ID)
	assert.ErrorIs(t, err, ErrPrescriptionNoImage)

	prescription.ImageURL = ""
	_, err = f.usecase.Image(asUser(f.patient, entity.RoleIDPatient), prescription.ID)
	assert.ErrorIs(t, err, ErrPrescriptionNoImage)
}
