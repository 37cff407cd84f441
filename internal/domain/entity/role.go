package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants, seeded by the initial migration
const (
	RoleIDAdmin    = 1
	RoleIDPatient  = 2
	RoleIDPharmacy = 3
	RoleIDDoctor   = 4
)

// RoleNames constants
const (
	RoleAdmin    = "admin"
	RolePatient  = "patient"
	RolePharmacy = "pharmacy"
	RoleDoctor   = "doctor"
)

// RoleName maps a role id to its name without a database round trip.
func RoleName(roleID int) string {
	switch roleID {
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDPatient:
		return RolePatient
	case RoleIDPharmacy:
		return RolePharmacy
	case RoleIDDoctor:
		return RoleDoctor
	}
	return ""
}
