package converter

import (
	"math"
	"time"

	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/i18n"
)

const dateLayout = "2006-01-02"

// UserToResponse converts a User entity to UserResponse DTO.
// Role profiles are included when they are preloaded.
func UserToResponse(user *entity.User, lang i18n.Lang) *dto.UserResponse {
	if user == nil {
		return nil
	}

	role := user.Role.RoleName
	if role == "" {
		role = entity.RoleName(user.RoleID)
	}

	response := &dto.UserResponse{
		ID:                user.ID,
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		FullName:          user.FullName(),
		Phone:             user.Phone,
		AvatarURL:         user.AvatarURL,
		Role:              role,
		PreferredLanguage: user.PreferredLanguage,
		IsActive:          user.IsActive,
		IsVerified:        user.IsVerified,
		LastLoginAt:       user.LastLoginAt,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}

	if user.PatientProfile != nil {
		response.PatientProfile = MedicalInfoToResponse(user.PatientProfile)
	}
	if user.Pharmacy != nil {
		response.Pharmacy = PharmacyToResponse(user.Pharmacy, lang, true)
	}
	if user.DoctorProfile != nil {
		response.DoctorProfile = DoctorToResponse(user.DoctorProfile, lang)
	}

	return response
}

// UserToSummary returns nil for a user that was not loaded
func UserToSummary(user *entity.User) *dto.UserSummary {
	if user == nil {
		return nil
	}
	role := user.Role.RoleName
	if role == "" {
		role = entity.RoleName(user.RoleID)
	}
	return &dto.UserSummary{
		ID:        user.ID,
		FullName:  user.FullName(),
		AvatarURL: user.AvatarURL,
		Role:      role,
	}
}

func AddressToResponse(address *entity.UserAddress) *dto.AddressResponse {
	if address == nil {
		return nil
	}
	return &dto.AddressResponse{
		ID:             address.ID,
		Label:          address.Label,
		City:           address.City,
		District:       address.District,
		Street:         address.Street,
		BuildingNumber: address.BuildingNumber,
		PostalCode:     address.PostalCode,
		Latitude:       address.Latitude,
		Longitude:      address.Longitude,
		IsDefault:      address.IsDefault,
		FullAddress:    address.OneLine(),
		CreatedAt:      address.CreatedAt,
	}
}

func AddressesToResponses(addresses []entity.UserAddress) []dto.AddressResponse {
	responses := make([]dto.AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = *AddressToResponse(&addresses[i])
	}
	return responses
}

// MedicalInfoToResponse adds the derived age and BMI when the inputs are known
func MedicalInfoToResponse(profile *entity.PatientProfile) *dto.MedicalInfoResponse {
	if profile == nil {
		return nil
	}

	response := &dto.MedicalInfoResponse{
		Gender:             profile.Gender,
		BloodType:          profile.BloodType,
		Allergies:          nonNil(profile.Allergies),
		ChronicConditions:  nonNil(profile.ChronicConditions),
		CurrentMedications: nonNil(profile.CurrentMedications),
		EmergencyContact:   profile.EmergencyContact,
		InsuranceProvider:  profile.InsuranceProvider,
		InsuranceNumber:    profile.InsuranceNumber,
		HeightCm:           profile.HeightCm,
		WeightKg:           profile.WeightKg,
		UpdatedAt:          profile.UpdatedAt,
	}

	if profile.DateOfBirth != nil {
		response.DateOfBirth = profile.DateOfBirth.Format(dateLayout)
		age := ageOn(*profile.DateOfBirth, time.Now())
		response.Age = &age
	}
	if profile.HeightCm != nil && profile.WeightKg != nil && *profile.HeightCm > 0 {
		meters := *profile.HeightCm / 100
		bmi := math.Round(*profile.WeightKg/(meters*meters)*10) / 10
		response.BMI = &bmi
	}

	return response
}

func ageOn(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

func nonNil(list entity.StringList) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
