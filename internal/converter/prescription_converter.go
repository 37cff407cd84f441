package converter

import (
	"time"

	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/i18n"
)

func PrescriptionToResponse(p *entity.Prescription, lang i18n.Lang) *dto.PrescriptionResponse {
	if p == nil {
		return nil
	}

	response := &dto.PrescriptionResponse{
		ID:                       p.ID,
		PrescriptionNumber:       p.PrescriptionNumber,
		Status:                   string(p.Status),
		DisplayStatus:            i18n.StatusLabel(string(p.Status)).In(lang),
		PrescriptionType:         string(p.PrescriptionType),
		Patient:                  UserToSummary(p.Patient),
		Doctor:                   UserToSummary(p.Doctor),
		PharmacyID:               p.PharmacyID,
		Diagnosis:                p.Diagnosis,
		DiagnosisAr:              p.DiagnosisAr,
		DisplayDiagnosis:         i18n.Pick(lang, p.Diagnosis, p.DiagnosisAr),
		Notes:                    p.Notes,
		ImageURL:                 prescriptionImagePath(p),
		IssueDate:                p.IssueDate.Format(dateLayout),
		ExpiryDate:               p.ExpiryDate.Format(dateLayout),
		IsExpired:                p.IsExpiredAt(time.Now()),
		VerifiedBy:               p.VerifiedBy,
		VerifiedAt:               p.VerifiedAt,
		VerificationNotes:        p.VerificationNotes,
		VerificationNotesAr:      p.VerificationNotesAr,
		DisplayVerificationNotes: i18n.Pick(lang, p.VerificationNotes, p.VerificationNotesAr),
		Items:                    make([]dto.PrescriptionItemResponse, len(p.Items)),
		CreatedAt:                p.CreatedAt,
	}
	if p.Pharmacy != nil {
		response.PharmacyName = i18n.Pick(lang, p.Pharmacy.Name, p.Pharmacy.NameAr)
	}

	for i, item := range p.Items {
		name := item.MedicationName
		if item.Medication != nil {
			name = i18n.Pick(lang, item.Medication.Name, item.Medication.NameAr)
		}
		response.Items[i] = dto.PrescriptionItemResponse{
			ID:             item.ID,
			MedicationID:   item.MedicationID,
			MedicationName: name,
			Dosage:         item.Dosage,
			Frequency:      item.Frequency,
			Duration:       item.Duration,
			Quantity:       item.Quantity,
			Instructions:   item.Instructions,
		}
	}

	return response
}

func PrescriptionsToResponses(prescriptions []entity.Prescription, lang i18n.Lang) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = *PrescriptionToResponse(&prescriptions[i], lang)
	}
	return responses
}

// prescriptionImagePath points clients at the authenticated download rather than the stored file
func prescriptionImagePath(p *entity.Prescription) string {
	if p.ImageURL == "" {
		return ""
	}
	return "/api/v1/prescriptions/" + p.ID.String() + "/image"
}
