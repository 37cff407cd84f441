package converter

import (
	"math"

	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/i18n"
)

// clock trims the seconds Postgres appends to TIME values
func clock(value string) string {
	if len(value) > 5 {
		return value[:5]
	}
	return value
}

func TimeSlotToResponse(s *entity.TimeSlot) *dto.TimeSlotResponse {
	if s == nil {
		return nil
	}
	return &dto.TimeSlotResponse{
		ID:                        s.ID,
		DoctorID:                  s.DoctorID,
		SlotDate:                  s.SlotDate.Format(dateLayout),
		StartTime:                 clock(s.StartTime),
		EndTime:                   clock(s.EndTime),
		ConsultationMode:          string(s.ConsultationMode),
		MaxAppointments:           s.MaxAppointments,
		BookedCount:               s.BookedCount,
		RemainingCapacity:         s.RemainingCapacity(),
		ConsultationFee:           s.Fee(),
		CancellationDeadlineHours: s.CancellationDeadlineHours,
		IsAvailable:               s.IsAvailable,
	}
}

func TimeSlotsToResponses(slots []entity.TimeSlot) []dto.TimeSlotResponse {
	responses := make([]dto.TimeSlotResponse, len(slots))
	for i := range slots {
		responses[i] = *TimeSlotToResponse(&slots[i])
	}
	return responses
}

// AvailableSlotsToResponse keeps the dates in the order the slots arrive
func AvailableSlotsToResponse(doctor *entity.DoctorProfile, slots []entity.TimeSlot) *dto.AvailableSlotsResponse {
	response := &dto.AvailableSlotsResponse{
		DoctorID:   doctor.UserID,
		Dates:      []string{},
		SlotsByDay: make(map[string][]dto.TimeSlotResponse),
		Total:      len(slots),
	}
	for i := range slots {
		if slots[i].Doctor == nil {
			slots[i].Doctor = doctor
		}
		slot := TimeSlotToResponse(&slots[i])
		if _, seen := response.SlotsByDay[slot.SlotDate]; !seen {
			response.Dates = append(response.Dates, slot.SlotDate)
		}
		response.SlotsByDay[slot.SlotDate] = append(response.SlotsByDay[slot.SlotDate], *slot)
	}
	return response
}

func AppointmentToResponse(a *entity.Appointment, lang i18n.Lang) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                    a.ID,
		AppointmentNumber:     a.AppointmentNumber,
		Patient:               UserToSummary(a.Patient),
		Doctor:                UserToSummary(a.Doctor),
		TimeSlot:              TimeSlotToResponse(a.TimeSlot),
		AppointmentType:       string(a.AppointmentType),
		ConsultationMode:      string(a.ConsultationMode),
		Status:                string(a.Status),
		StatusLabel:           i18n.StatusLabel(string(a.Status)).In(lang),
		ChiefComplaint:        a.ChiefComplaint,
		ChiefComplaintAr:      a.ChiefComplaintAr,
		DisplayChiefComplaint: i18n.Pick(lang, a.ChiefComplaint, a.ChiefComplaintAr),
		Symptoms:              a.Symptoms,
		ConsultationFee:       a.ConsultationFee,
		IsFirstVisit:          a.IsFirstVisit,
		RescheduledCount:      a.RescheduledCount,
		CancelledBy:           a.CancelledBy,
		CancellationReason:    a.CancellationReason,
		CancelledAt:           a.CancelledAt,
		StartedAt:             a.StartedAt,
		CompletedAt:           a.CompletedAt,
		DoctorNotes:           a.DoctorNotes,
		Diagnosis:             a.Diagnosis,
		DiagnosisAr:           a.DiagnosisAr,
		TreatmentPlan:         a.TreatmentPlan,
		FollowUpDate:          formatDate(a.FollowUpDate),
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
	if response.TimeSlot != nil && a.TimeSlot.ConsultationFee == nil {
		response.TimeSlot.ConsultationFee = a.ConsultationFee
	}
	return response
}

func AppointmentsToResponses(appointments []entity.Appointment, lang i18n.Lang) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i], lang)
	}
	return responses
}

// AppointmentStatsToResponse lists every status, zero when absent
func AppointmentStatsToResponse(stats *entity.AppointmentStats) *dto.AppointmentStatsResponse {
	statuses := []entity.AppointmentStatus{
		entity.AppointmentStatusPending,
		entity.AppointmentStatusConfirmed,
		entity.AppointmentStatusInProgress,
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusCancelled,
	}
	response := &dto.AppointmentStatsResponse{ByStatus: make(map[string]int64, len(statuses))}
	for _, status := range statuses {
		response.ByStatus[string(status)] = 0
	}
	if stats == nil {
		return response
	}

	for status, count := range stats.ByStatus {
		response.ByStatus[string(status)] = count
	}
	response.Total = stats.Total
	response.Today = stats.Today
	response.Upcoming = stats.Upcoming
	if stats.Total > 0 {
		rate := float64(stats.ByStatus[entity.AppointmentStatusCompleted]) / float64(stats.Total) * 100
		response.CompletionRate = math.Round(rate*100) / 100
	}
	return response
}
