package converter

import (
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/i18n"
)

// DoctorToResponse includes the name and join date when the user is preloaded
func DoctorToResponse(d *entity.DoctorProfile, lang i18n.Lang) *dto.DoctorResponse {
	if d == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:                d.UserID,
		LicenseNumber:     d.LicenseNumber,
		Specialty:         d.Specialty,
		SpecialtyAr:       d.SpecialtyAr,
		DisplaySpecialty:  i18n.Pick(lang, d.Specialty, d.SpecialtyAr),
		ClinicName:        d.ClinicName,
		ClinicNameAr:      d.ClinicNameAr,
		DisplayClinicName: i18n.Pick(lang, d.ClinicName, d.ClinicNameAr),
		YearsExperience:   d.YearsExperience,
		Bio:               d.Bio,
		BioAr:             d.BioAr,
		DisplayBio:        i18n.Pick(lang, d.Bio, d.BioAr),
		ConsultationFee:   d.ConsultationFee,
		IsVerified:        d.IsVerified,
	}

	if d.User.ID == d.UserID {
		response.FullName = d.User.FullName()
		response.AvatarURL = d.User.AvatarURL
		createdAt := d.User.CreatedAt
		response.CreatedAt = &createdAt
	}

	return response
}

func DoctorsToResponses(doctors []entity.DoctorProfile, lang i18n.Lang) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i], lang)
	}
	return responses
}
