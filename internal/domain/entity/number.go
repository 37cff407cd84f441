package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	OrderNumberPrefix        = "DWK"
	PrescriptionNumberPrefix = "RX"
	AppointmentNumberPrefix  = "APT"
)

// GenerateNumber builds human-facing references like DWK-20250101-3FA2C9.
// Uniqueness is enforced by the database index; callers retry on collision.
func GenerateNumber(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return prefix + "-" + now.UTC().Format("20060102") + "-" + suffix
}
