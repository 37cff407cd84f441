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
	"dawaksahl-api/internal/service"
	"dawaksahl-api/pkg/i18n"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrTimeSlotNotFound     = errors.New("time slot not found")
	ErrTimeSlotUnavailable  = errors.New("time slot is not available")
	ErrTimeSlotInUse        = errors.New("time slot has bookings")
	ErrTimeSlotExists       = errors.New("time slot already exists")
	ErrTimeSlotInvalid      = errors.New("time slot must end after it starts and lie in the future")
	ErrInvalidTimeFormat    = errors.New("invalid time format, use HH:MM")
	ErrAlreadyBooked        = errors.New("time slot already booked by this patient")
	ErrCancellationDeadline = errors.New("appointment is too close to change")
	ErrRescheduleLimit      = errors.New("maximum reschedule limit reached")
)

// availableSlotDays bounds the public slot listing when no end date is given
const availableSlotDays = 30

type AppointmentUsecase interface {
	CreateSlot(ctx context.Context, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error)
	MySlots(ctx context.Context, query dto.SlotQuery) ([]dto.TimeSlotResponse, error)
	DeleteSlot(ctx context.Context, id uuid.UUID) error
	AvailableSlots(ctx context.Context, doctorID uuid.UUID, query dto.SlotQuery) (*dto.AvailableSlotsResponse, error)
	Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	List(ctx context.Context, query dto.AppointmentQuery, page entity.Page) ([]dto.AppointmentResponse, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	Confirm(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Start(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, id uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error)
	Stats(ctx context.Context) (*dto.AppointmentStatsResponse, error)
}

type appointmentUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	timeSlotRepo        repository.TimeSlotRepository
	appointmentRepo     repository.AppointmentRepository
	doctorProfileRepo   repository.DoctorProfileRepository
	notificationService service.NotificationService
	now                 func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	timeSlotRepo repository.TimeSlotRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	notificationService service.NotificationService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                  db,
		log:                 log,
		timeSlotRepo:        timeSlotRepo,
		appointmentRepo:     appointmentRepo,
		doctorProfileRepo:   doctorProfileRepo,
		notificationService: notificationService,
		now:                 time.Now,
	}
}

// parseClock accepts HH:MM or HH:MM:SS and returns HH:MM:SS
func parseClock(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", ErrInvalidTimeFormat
}

func (u *appointmentUsecase) verifiedDoctor(db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorProfile, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil || !profile.IsVerified {
		return nil, ErrDoctorNotFound
	}
	return profile, nil
}

func (u *appointmentUsecase) CreateSlot(ctx context.Context, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error) {
	doctorID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.SlotDate)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return nil, ErrInvalidDateFormat
	}
	start, err := parseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(req.EndTime)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	doctor, err := u.verifiedDoctor(db, doctorID)
	if err != nil {
		return nil, err
	}

	slot := &entity.TimeSlot{
		DoctorID:                  doctorID,
		SlotDate:                  *date,
		StartTime:                 start,
		EndTime:                   end,
		ConsultationMode:          entity.ConsultationInPerson,
		MaxAppointments:           1,
		CancellationDeadlineHours: entity.DefaultCancellationDeadlineHours,
		IsAvailable:               true,
		Doctor:                    doctor,
	}
	if req.ConsultationMode != "" {
		slot.ConsultationMode = entity.ConsultationMode(req.ConsultationMode)
	}
	if req.MaxAppointments > 0 {
		slot.MaxAppointments = req.MaxAppointments
	}
	if req.CancellationDeadlineHours > 0 {
		slot.CancellationDeadlineHours = req.CancellationDeadlineHours
	}
	if req.ConsultationFee != nil {
		fee := decimal.NewFromFloat(*req.ConsultationFee).Round(2)
		slot.ConsultationFee = &fee
	}
	if end <= start || !slot.StartsAt().After(u.now()) {
		return nil, ErrTimeSlotInvalid
	}

	if err := u.timeSlotRepo.Create(db, slot); err != nil {
		if isDuplicateKeyError(err, "time_slots_doctor_start_key") {
			return nil, ErrTimeSlotExists
		}
		u.log.Warnf("Failed to create time slot: %+v", err)
		return nil, err
	}
	return converter.TimeSlotToResponse(slot), nil
}

func (u *appointmentUsecase) slotFilter(doctorID uuid.UUID, query dto.SlotQuery) (entity.TimeSlotFilter, error) {
	filter := entity.TimeSlotFilter{
		DoctorID:         doctorID,
		ConsultationMode: entity.ConsultationMode(query.ConsultationMode),
		Now:              u.now(),
	}
	var err error
	if filter.DateFrom, err = parseDate(query.DateFrom); err != nil {
		return filter, err
	}
	if filter.DateTo, err = parseDate(query.DateTo); err != nil {
		return filter, err
	}
	return filter, nil
}

func (u *appointmentUsecase) MySlots(ctx context.Context, query dto.SlotQuery) ([]dto.TimeSlotResponse, error) {
	doctorID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := u.slotFilter(doctorID, query)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	doctor, err := u.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	slots, err := u.timeSlotRepo.FindAll(db, filter)
	if err != nil {
		u.log.Warnf("Failed to list time slots: %+v", err)
		return nil, err
	}
	for i := range slots {
		slots[i].Doctor = doctor
	}
	return converter.TimeSlotsToResponses(slots), nil
}

// DeleteSlot removes one of the doctor's own slots while nobody is booked into it
func (u *appointmentUsecase) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	doctorID, _, err := actor(ctx)
	if err != nil {
		return err
	}

	db := u.db.WithContext(ctx)
	affected, err := u.timeSlotRepo.Delete(db, doctorID, id)
	if err != nil {
		u.log.Warnf("Failed to delete time slot: %+v", err)
		return err
	}
	if affected > 0 {
		return nil
	}

	slot, err := u.timeSlotRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find time slot: %+v", err)
		return err
	}
	if slot == nil || slot.DoctorID != doctorID {
		return ErrTimeSlotNotFound
	}
	return ErrTimeSlotInUse
}

// AvailableSlots lists a verified doctor's open slots, grouped by date.
// Without a date range it covers the next availableSlotDays days.
func (u *appointmentUsecase) AvailableSlots(ctx context.Context, doctorID uuid.UUID, query dto.SlotQuery) (*dto.AvailableSlotsResponse, error) {
	filter, err := u.slotFilter(doctorID, query)
	if err != nil {
		return nil, err
	}
	filter.OpenOnly = true
	if filter.DateFrom == nil {
		from := today(filter.Now)
		filter.DateFrom = &from
	}
	if filter.DateTo == nil {
		to := filter.DateFrom.AddDate(0, 0, availableSlotDays)
		filter.DateTo = &to
	}

	db := u.db.WithContext(ctx)
	doctor, err := u.verifiedDoctor(db, doctorID)
	if err != nil {
		return nil, err
	}
	slots, err := u.timeSlotRepo.FindAll(db, filter)
	if err != nil {
		u.log.Warnf("Failed to list available slots: %+v", err)
		return nil, err
	}
	return converter.AvailableSlotsToResponse(doctor, slots), nil
}

// reserve takes a seat in the slot for the patient. It fails when the slot is closed,
// full, already started or belongs to another doctor than doctorID (when set).
func (u *appointmentUsecase) reserve(tx *gorm.DB, patientID, slotID uuid.UUID, doctorID *uuid.UUID) (*entity.TimeSlot, error) {
	slot, err := u.timeSlotRepo.FindByID(tx, slotID)
	if err != nil {
		u.log.Warnf("Failed to find time slot: %+v", err)
		return nil, err
	}
	if slot == nil || (doctorID != nil && slot.DoctorID != *doctorID) {
		return nil, ErrTimeSlotNotFound
	}
	if slot.Doctor == nil || !slot.Doctor.IsVerified || !slot.IsBookableAt(u.now()) {
		return nil, ErrTimeSlotUnavailable
	}

	booked, err := u.appointmentRepo.ExistsActiveForSlot(tx, patientID, slot.ID)
	if err != nil {
		u.log.Warnf("Failed to check existing booking: %+v", err)
		return nil, err
	}
	if booked {
		return nil, ErrAlreadyBooked
	}

	// The guarded increment is what actually enforces capacity under concurrency
	affected, err := u.timeSlotRepo.Reserve(tx, slot.ID)
	if err != nil {
		u.log.Warnf("Failed to reserve time slot: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrTimeSlotUnavailable
	}
	slot.BookedCount++
	return slot, nil
}

func (u *appointmentUsecase) Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if roleID != entity.RoleIDPatient {
		return nil, ErrPatientsOnly
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slot, err := u.reserve(tx, patientID, req.TimeSlotID, nil)
	if err != nil {
		return nil, err
	}

	previous, err := u.appointmentRepo.CountWithDoctor(tx, patientID, slot.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to count previous visits: %+v", err)
		return nil, err
	}

	appointment := &entity.Appointment{
		PatientID:        patientID,
		DoctorID:         slot.DoctorID,
		TimeSlotID:       slot.ID,
		AppointmentType:  entity.AppointmentTypeConsultation,
		ConsultationMode: slot.ConsultationMode,
		Status:           entity.AppointmentStatusPending,
		ChiefComplaint:   req.ChiefComplaint,
		ChiefComplaintAr: req.ChiefComplaintAr,
		Symptoms:         req.Symptoms,
		ConsultationFee:  slot.Fee(),
		IsFirstVisit:     previous == 0,
	}
	if req.AppointmentType != "" {
		appointment.AppointmentType = entity.AppointmentType(req.AppointmentType)
	}

	err = createNumbered(tx, entity.AppointmentNumberPrefix, "appointments_appointment_number_key", func(number string) error {
		appointment.AppointmentNumber = number
		return u.appointmentRepo.Create(tx, appointment)
	})
	if err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	notification, err := u.notify(ctx, tx, appointment, appointment.DoctorID, i18n.NotifyAppointmentNewTitle,
		i18n.NotifyAppointmentNewBody.Format(appointment.AppointmentNumber, slot.StartsAt().Format("2006-01-02 15:04")))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	u.notificationService.Push(ctx, notification)

	return u.reload(ctx, appointment.ID)
}

func (u *appointmentUsecase) notify(ctx context.Context, tx *gorm.DB, a *entity.Appointment, recipient uuid.UUID, title, body i18n.Message) (*entity.Notification, error) {
	return u.notificationService.Create(ctx, tx, service.NotificationInput{
		UserID:    recipient,
		Type:      entity.NotificationTypeAppointment,
		Title:     title,
		Body:      body,
		ActionURL: "/appointments/" + a.ID.String(),
		Data:      entity.JSON{"appointment_id": a.ID.String(), "status": string(a.Status)},
	})
}

func (u *appointmentUsecase) List(ctx context.Context, query dto.AppointmentQuery, page entity.Page) ([]dto.AppointmentResponse, int64, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter := entity.AppointmentFilter{
		UserID: userID,
		RoleID: roleID,
		Status: entity.AppointmentStatus(query.Status),
		Page:   page,
	}
	if filter.DateFrom, err = parseDate(query.DateFrom); err != nil {
		return nil, 0, err
	}
	if filter.DateTo, err = parseDate(query.DateTo); err != nil {
		return nil, 0, err
	}

	appointments, total, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, 0, err
	}
	return converter.AppointmentsToResponses(appointments, i18n.FromContext(ctx)), total, nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil || !appointment.IsVisibleTo(userID, roleID) {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment, i18n.FromContext(ctx)), nil
}

// locked reads the appointment under a row lock. Anyone it is not visible to gets not found.
func (u *appointmentUsecase) locked(tx *gorm.DB, id, userID uuid.UUID, roleID int) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(tx.Clauses(forUpdate()), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil || !appointment.IsVisibleTo(userID, roleID) {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// save writes the appointment only if nobody moved it off oldStatus meanwhile
func (u *appointmentUsecase) save(tx *gorm.DB, appointment *entity.Appointment, oldStatus entity.AppointmentStatus) error {
	affected, err := u.appointmentRepo.UpdateIfStatus(tx, appointment, oldStatus)
	if err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// Cancel frees the seat in the slot. Patients must cancel before the slot's deadline;
// the doctor and admins may cancel at any time.
func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.locked(tx, id, userID, roleID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	isPatient := appointment.PatientID == userID
	if isPatient && appointment.CanTransitionTo(entity.AppointmentStatusCancelled) && appointment.WithinCancellationDeadline(now) {
		return nil, ErrCancellationDeadline
	}

	oldStatus := appointment.Status
	if !appointment.Transition(entity.AppointmentStatusCancelled, now) {
		return nil, ErrInvalidTransition
	}
	switch {
	case isPatient:
		appointment.CancelledBy = "patient"
	case appointment.DoctorID == userID:
		appointment.CancelledBy = "doctor"
	default:
		appointment.CancelledBy = "admin"
	}
	if req != nil {
		appointment.CancellationReason = strings.TrimSpace(req.Reason)
	}

	if err := u.save(tx, appointment, oldStatus); err != nil {
		return nil, err
	}
	if err := u.timeSlotRepo.Release(tx, appointment.TimeSlotID); err != nil {
		u.log.Warnf("Failed to release time slot: %+v", err)
		return nil, err
	}

	// Tell the other party
	recipient := appointment.PatientID
	if isPatient {
		recipient = appointment.DoctorID
	}
	notification, err := u.notify(ctx, tx, appointment, recipient, i18n.NotifyAppointmentStatusTitle,
		i18n.NotifyAppointmentStatusBody.Format(appointment.AppointmentNumber, i18n.StatusLabel(string(appointment.Status))))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	u.notificationService.Push(ctx, notification)

	return u.reload(ctx, id)
}

// Reschedule moves a patient's appointment into another slot of the same doctor.
// The appointment goes back to pending so the doctor confirms the new time.
func (u *appointmentUsecase) Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if roleID != entity.RoleIDPatient {
		return nil, ErrPatientsOnly
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.locked(tx, id, patientID, roleID)
	if err != nil {
		return nil, err
	}
	if appointment.PatientID != patientID {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.CanBeRescheduled() {
		if appointment.RescheduledCount >= entity.MaxReschedules {
			return nil, ErrRescheduleLimit
		}
		return nil, ErrInvalidTransition
	}
	if appointment.WithinCancellationDeadline(u.now()) {
		return nil, ErrCancellationDeadline
	}
	if req.TimeSlotID == appointment.TimeSlotID {
		return nil, ErrAlreadyBooked
	}

	slot, err := u.reserve(tx, patientID, req.TimeSlotID, &appointment.DoctorID)
	if err != nil {
		return nil, err
	}
	if err := u.timeSlotRepo.Release(tx, appointment.TimeSlotID); err != nil {
		u.log.Warnf("Failed to release time slot: %+v", err)
		return nil, err
	}

	oldStatus := appointment.Status
	appointment.TimeSlotID = slot.ID
	appointment.TimeSlot = slot
	appointment.ConsultationMode = slot.ConsultationMode
	appointment.ConsultationFee = slot.Fee()
	appointment.Status = entity.AppointmentStatusPending
	appointment.RescheduledCount++

	if err := u.save(tx, appointment, oldStatus); err != nil {
		return nil, err
	}

	notification, err := u.notify(ctx, tx, appointment, appointment.DoctorID, i18n.NotifyAppointmentStatusTitle,
		i18n.NotifyAppointmentMovedBody.Format(appointment.AppointmentNumber, slot.StartsAt().Format("2006-01-02 15:04")))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	u.notificationService.Push(ctx, notification)

	return u.reload(ctx, id)
}

func (u *appointmentUsecase) Confirm(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.advance(ctx, id, entity.AppointmentStatusConfirmed, nil)
}

func (u *appointmentUsecase) Start(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.advance(ctx, id, entity.AppointmentStatusInProgress, nil)
}

func (u *appointmentUsecase) Complete(ctx context.Context, id uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error) {
	var followUp *time.Time
	if req != nil {
		var err error
		if followUp, err = parseDate(req.FollowUpDate); err != nil {
			return nil, err
		}
	}

	return u.advance(ctx, id, entity.AppointmentStatusCompleted, func(a *entity.Appointment) {
		if req == nil {
			return
		}
		a.DoctorNotes = req.DoctorNotes
		a.Diagnosis = req.Diagnosis
		a.DiagnosisAr = req.DiagnosisAr
		a.TreatmentPlan = req.TreatmentPlan
		a.FollowUpDate = followUp
	})
}

// advance moves the doctor's own appointment to next and tells the patient
func (u *appointmentUsecase) advance(ctx context.Context, id uuid.UUID, next entity.AppointmentStatus, apply func(*entity.Appointment)) (*dto.AppointmentResponse, error) {
	doctorID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if roleID != entity.RoleIDDoctor {
		return nil, ErrForbidden
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.locked(tx, id, doctorID, roleID)
	if err != nil {
		return nil, err
	}
	if appointment.DoctorID != doctorID {
		return nil, ErrAppointmentNotFound
	}

	oldStatus := appointment.Status
	if !appointment.Transition(next, u.now()) {
		return nil, ErrInvalidTransition
	}
	if apply != nil {
		apply(appointment)
	}
	if err := u.save(tx, appointment, oldStatus); err != nil {
		return nil, err
	}

	notification, err := u.notify(ctx, tx, appointment, appointment.PatientID, i18n.NotifyAppointmentStatusTitle,
		i18n.NotifyAppointmentStatusBody.Format(appointment.AppointmentNumber, i18n.StatusLabel(string(next))))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	u.notificationService.Push(ctx, notification)

	return u.reload(ctx, id)
}

// Stats summarises the caller's appointments from the patient's or the doctor's side
func (u *appointmentUsecase) Stats(ctx context.Context) (*dto.AppointmentStatsResponse, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if roleID != entity.RoleIDPatient && roleID != entity.RoleIDDoctor {
		return nil, ErrForbidden
	}

	stats, err := u.appointmentRepo.Stats(u.db.WithContext(ctx), userID, roleID, u.now())
	if err != nil {
		u.log.Warnf("Failed to compute appointment stats: %+v", err)
		return nil, err
	}
	return converter.AppointmentStatsToResponse(stats), nil
}

func (u *appointmentUsecase) reload(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to reload appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment, i18n.FromContext(ctx)), nil
}
