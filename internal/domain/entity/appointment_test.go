package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentTransitions(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{"confirm pending", AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{"start pending", AppointmentStatusPending, AppointmentStatusInProgress, true},
		{"cancel pending", AppointmentStatusPending, AppointmentStatusCancelled, true},
		{"complete pending", AppointmentStatusPending, AppointmentStatusCompleted, false},
		{"start confirmed", AppointmentStatusConfirmed, AppointmentStatusInProgress, true},
		{"cancel confirmed", AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{"complete started", AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{"cancel started", AppointmentStatusInProgress, AppointmentStatusCancelled, false},
		{"reopen completed", AppointmentStatusCompleted, AppointmentStatusPending, false},
		{"reopen cancelled", AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.want, a.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointmentTransition_StampsTimestamps(t *testing.T) {
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	a := &Appointment{Status: AppointmentStatusConfirmed}

	require.True(t, a.Transition(AppointmentStatusInProgress, now))
	require.NotNil(t, a.StartedAt)
	require.True(t, a.Transition(AppointmentStatusCompleted, now.Add(30*time.Minute)))
	require.NotNil(t, a.CompletedAt)
	assert.Equal(t, now.Add(30*time.Minute), *a.CompletedAt)

	assert.False(t, a.Transition(AppointmentStatusCancelled, now))
	assert.Equal(t, AppointmentStatusCompleted, a.Status)
	assert.Nil(t, a.CancelledAt)
}

func TestTimeSlotStartsAt(t *testing.T) {
	date := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 5, 4, 14, 30, 0, 0, time.UTC), (&TimeSlot{SlotDate: date, StartTime: "14:30:00"}).StartsAt())
	assert.Equal(t, time.Date(2026, 5, 4, 9, 15, 0, 0, time.UTC), (&TimeSlot{SlotDate: date, StartTime: "09:15"}).StartsAt())
}

func TestTimeSlotIsBookableAt(t *testing.T) {
	now := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	slot := func() *TimeSlot {
		return &TimeSlot{SlotDate: now.Truncate(24 * time.Hour), StartTime: "10:00:00", MaxAppointments: 2, BookedCount: 1, IsAvailable: true}
	}

	assert.True(t, slot().IsBookableAt(now))

	full := slot()
	full.BookedCount = 2
	assert.False(t, full.IsBookableAt(now))
	assert.Zero(t, full.RemainingCapacity())

	closed := slot()
	closed.IsAvailable = false
	assert.False(t, closed.IsBookableAt(now))

	assert.False(t, slot().IsBookableAt(now.Add(2*time.Hour)))
}

func TestTimeSlotFee(t *testing.T) {
	override := decimal.NewFromInt(3000)
	doctor := &DoctorProfile{ConsultationFee: decimal.NewFromInt(5000)}

	assert.True(t, (&TimeSlot{Doctor: doctor}).Fee().Equal(decimal.NewFromInt(5000)))
	assert.True(t, (&TimeSlot{Doctor: doctor, ConsultationFee: &override}).Fee().Equal(override))
	assert.True(t, (&TimeSlot{}).Fee().IsZero())
}

func TestAppointmentWithinCancellationDeadline(t *testing.T) {
	now := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	slot := &TimeSlot{SlotDate: time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC), StartTime: "10:00:00"}
	a := &Appointment{Status: AppointmentStatusPending, TimeSlot: slot}

	// 26 hours ahead against the default 24
	assert.False(t, a.WithinCancellationDeadline(now))
	assert.True(t, a.WithinCancellationDeadline(now.Add(3*time.Hour)))

	slot.CancellationDeadlineHours = 48
	assert.True(t, a.WithinCancellationDeadline(now))

	assert.True(t, (&Appointment{}).WithinCancellationDeadline(now))
}

func TestAppointmentCanBeRescheduled(t *testing.T) {
	assert.True(t, (&Appointment{Status: AppointmentStatusConfirmed, RescheduledCount: 2}).CanBeRescheduled())
	assert.False(t, (&Appointment{Status: AppointmentStatusPending, RescheduledCount: MaxReschedules}).CanBeRescheduled())
	assert.False(t, (&Appointment{Status: AppointmentStatusInProgress}).CanBeRescheduled())
}

func TestAppointmentIsVisibleTo(t *testing.T) {
	patient, doctor := uuid.New(), uuid.New()
	a := &Appointment{PatientID: patient, DoctorID: doctor}

	assert.True(t, a.IsVisibleTo(patient, RoleIDPatient))
	assert.True(t, a.IsVisibleTo(doctor, RoleIDDoctor))
	assert.True(t, a.IsVisibleTo(uuid.New(), RoleIDAdmin))
	assert.False(t, a.IsVisibleTo(uuid.New(), RoleIDDoctor))
}

func TestNewFavorite(t *testing.T) {
	user, item := uuid.New(), uuid.New()

	pharmacy := NewFavorite(user, FavoriteTarget{Type: FavoriteTypePharmacy, ID: item})
	assert.Equal(t, &item, pharmacy.PharmacyID)
	assert.Nil(t, pharmacy.MedicationID)

	medication := NewFavorite(user, FavoriteTarget{Type: FavoriteTypeMedication, ID: item})
	assert.Equal(t, &item, medication.MedicationID)
	assert.Nil(t, medication.PharmacyID)

	assert.False(t, FavoriteType("doctor").IsValid())
}

func TestCartItemLineTotal(t *testing.T) {
	item := &InventoryItem{Price: decimal.RequireFromString("1250.00"), DiscountPercentage: decimal.NewFromInt(10)}
	line := &CartItem{Quantity: 3, Item: item}

	assert.True(t, line.LineTotal().Equal(decimal.NewFromInt(3375)))
	assert.True(t, (&CartItem{Quantity: 3}).LineTotal().IsZero())
}
