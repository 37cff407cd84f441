package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   OrderStatus
		method DeliveryMethod
		to     OrderStatus
		want   bool
	}{
		{"confirm pending", OrderStatusPending, DeliveryMethodPickup, OrderStatusConfirmed, true},
		{"cancel pending", OrderStatusPending, DeliveryMethodPickup, OrderStatusCancelled, true},
		{"skip to preparing", OrderStatusPending, DeliveryMethodPickup, OrderStatusPreparing, false},
		{"prepare confirmed", OrderStatusConfirmed, DeliveryMethodDelivery, OrderStatusPreparing, true},
		{"cancel confirmed", OrderStatusConfirmed, DeliveryMethodDelivery, OrderStatusCancelled, true},
		{"cancel preparing", OrderStatusPreparing, DeliveryMethodDelivery, OrderStatusCancelled, false},
		{"ready", OrderStatusPreparing, DeliveryMethodDelivery, OrderStatusReady, true},
		{"ship delivery", OrderStatusReady, DeliveryMethodDelivery, OrderStatusOutForDelivery, true},
		{"ship express", OrderStatusReady, DeliveryMethodExpress, OrderStatusOutForDelivery, true},
		{"deliver unshipped", OrderStatusReady, DeliveryMethodDelivery, OrderStatusDelivered, false},
		{"pickup collected", OrderStatusReady, DeliveryMethodPickup, OrderStatusDelivered, true},
		{"ship pickup", OrderStatusReady, DeliveryMethodPickup, OrderStatusOutForDelivery, false},
		{"deliver shipped", OrderStatusOutForDelivery, DeliveryMethodDelivery, OrderStatusDelivered, true},
		{"reopen delivered", OrderStatusDelivered, DeliveryMethodPickup, OrderStatusPending, false},
		{"reopen cancelled", OrderStatusCancelled, DeliveryMethodPickup, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Status: tt.from, DeliveryMethod: tt.method}
			assert.Equal(t, tt.want, o.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderTransition_StampsTimestamps(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	o := &Order{Status: OrderStatusPending, DeliveryMethod: DeliveryMethodPickup, PaymentMethod: PaymentMethodCash, PaymentStatus: PaymentStatusPending}

	require.True(t, o.Transition(OrderStatusConfirmed, now))
	require.NotNil(t, o.ConfirmedAt)
	require.True(t, o.Transition(OrderStatusPreparing, now))
	require.True(t, o.Transition(OrderStatusReady, now))
	require.NotNil(t, o.PreparedAt)
	require.True(t, o.Transition(OrderStatusDelivered, now))
	require.NotNil(t, o.DeliveredAt)
	assert.Equal(t, PaymentStatusPaid, o.PaymentStatus)

	assert.False(t, o.Transition(OrderStatusCancelled, now))
	assert.Equal(t, OrderStatusDelivered, o.Status)
	assert.Nil(t, o.CancelledAt)
}

func TestOrderApplyTotals_NeverNegative(t *testing.T) {
	o := &Order{
		Subtotal:       decimal.RequireFromString("100.00"),
		DeliveryFee:    decimal.RequireFromString("10.00"),
		DiscountAmount: decimal.RequireFromString("500.00"),
	}
	o.ApplyTotals(decimal.RequireFromString("0.05"))

	assert.True(t, o.TaxAmount.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, o.TotalAmount.IsZero())

	o.DiscountAmount = decimal.Zero
	o.ApplyTotals(decimal.RequireFromString("0.05"))
	assert.Equal(t, "115", o.TotalAmount.String())
}

func TestPharmacyDeliveryFee(t *testing.T) {
	p := &Pharmacy{
		DeliveryFee:           decimal.RequireFromString("500"),
		FreeDeliveryThreshold: decimal.RequireFromString("10000"),
	}

	assert.True(t, p.DeliveryFeeFor(DeliveryMethodPickup, decimal.NewFromInt(50)).IsZero())
	assert.Equal(t, "500", p.DeliveryFeeFor(DeliveryMethodDelivery, decimal.NewFromInt(9999)).String())
	assert.True(t, p.DeliveryFeeFor(DeliveryMethodDelivery, decimal.NewFromInt(10000)).IsZero())
	assert.Equal(t, "750", p.DeliveryFeeFor(DeliveryMethodExpress, decimal.NewFromInt(20000)).String())

	p.FreeDeliveryThreshold = decimal.Zero
	assert.Equal(t, "500", p.DeliveryFeeFor(DeliveryMethodDelivery, decimal.NewFromInt(1000000)).String())
}

func TestInventoryDerivedValues(t *testing.T) {
	item := &InventoryItem{
		Price:              decimal.RequireFromString("1000.00"),
		DiscountPercentage: decimal.RequireFromString("12.5"),
		Quantity:           10,
		LowStockThreshold:  10,
		IsAvailable:        true,
	}
	assert.Equal(t, "875", item.DiscountedPrice().String())
	assert.True(t, item.IsLowStock())

	item.Quantity = 11
	assert.False(t, item.IsLowStock())

	now := time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	today := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	item.ExpiryDate = &today
	assert.False(t, item.IsExpiredAt(now))
	item.ExpiryDate = &yesterday
	assert.True(t, item.IsExpiredAt(now))
}

func TestApplyStock(t *testing.T) {
	next, ok := ApplyStock(5, StockAdd, 3)
	assert.True(t, ok)
	assert.Equal(t, 8, next)

	next, ok = ApplyStock(5, StockSubtract, 5)
	assert.True(t, ok)
	assert.Equal(t, 0, next)

	_, ok = ApplyStock(5, StockSubtract, 6)
	assert.False(t, ok)

	next, ok = ApplyStock(5, StockSet, 42)
	assert.True(t, ok)
	assert.Equal(t, 42, next)

	_, ok = ApplyStock(5, StockOperation("multiply"), 2)
	assert.False(t, ok)
}

func TestPrescriptionTransitions(t *testing.T) {
	allowed := map[PrescriptionStatus][]PrescriptionStatus{
		PrescriptionStatusPending:  {PrescriptionStatusVerified, PrescriptionStatusRejected, PrescriptionStatusCancelled, PrescriptionStatusExpired},
		PrescriptionStatusVerified: {PrescriptionStatusFilled, PrescriptionStatusCancelled, PrescriptionStatusExpired},
	}
	all := []PrescriptionStatus{
		PrescriptionStatusPending, PrescriptionStatusVerified, PrescriptionStatusRejected,
		PrescriptionStatusFilled, PrescriptionStatusExpired, PrescriptionStatusCancelled,
	}

	for _, from := range all {
		for _, to := range all {
			p := &Prescription{Status: from}
			assert.Equal(t, contains(allowed[from], to), p.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func contains(list []PrescriptionStatus, s PrescriptionStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestPrescriptionUsableFor(t *testing.T) {
	patient := uuid.New()
	pharmacy := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p := &Prescription{PatientID: patient, Status: PrescriptionStatusVerified, ExpiryDate: now.AddDate(0, 0, 5)}
	assert.True(t, p.IsUsableFor(patient, pharmacy, now))
	assert.False(t, p.IsUsableFor(uuid.New(), pharmacy, now))

	other := uuid.New()
	p.PharmacyID = &other
	assert.False(t, p.IsUsableFor(patient, pharmacy, now))
	p.PharmacyID = &pharmacy
	assert.True(t, p.IsUsableFor(patient, pharmacy, now))

	p.ExpiryDate = now.AddDate(0, 0, -1)
	assert.False(t, p.IsUsableFor(patient, pharmacy, now))

	p.ExpiryDate = now.AddDate(0, 0, 5)
	p.Status = PrescriptionStatusPending
	assert.False(t, p.IsUsableFor(patient, pharmacy, now))
}

func TestPrescriptionVisibility(t *testing.T) {
	patient, doctor, pharmacy := uuid.New(), uuid.New(), uuid.New()
	p := &Prescription{PatientID: patient, DoctorID: &doctor, Status: PrescriptionStatusPending}

	assert.True(t, p.IsVisibleTo(patient, RoleIDPatient))
	assert.True(t, p.IsVisibleTo(doctor, RoleIDDoctor))
	assert.True(t, p.IsVisibleTo(uuid.New(), RoleIDAdmin))
	assert.True(t, p.IsVisibleTo(pharmacy, RoleIDPharmacy), "unassigned pending is visible to pharmacies")
	assert.False(t, p.IsVisibleTo(uuid.New(), RoleIDPatient))

	other := uuid.New()
	p.PharmacyID = &other
	assert.False(t, p.IsVisibleTo(pharmacy, RoleIDPharmacy))
	assert.True(t, p.IsVisibleTo(other, RoleIDPharmacy))
}

func TestGenerateNumber(t *testing.T) {
	n := GenerateNumber(OrderNumberPrefix, time.Date(2025, 1, 2, 23, 0, 0, 0, time.UTC))
	assert.Regexp(t, `^DWK-20250102-[0-9A-F]{6}$`, n)
	assert.NotEqual(t, n, GenerateNumber(OrderNumberPrefix, time.Now()))
}

func TestReviewSingleTarget(t *testing.T) {
	id := uuid.New()
	assert.False(t, (&Review{}).HasSingleTarget())
	assert.True(t, (&Review{PharmacyID: &id}).HasSingleTarget())
	assert.False(t, (&Review{PharmacyID: &id, MedicationID: &id}).HasSingleTarget())
}

func TestStringListScan(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan([]byte(`["penicillin","nuts"]`)))
	assert.Equal(t, StringList{"penicillin", "nuts"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Empty(t, l)

	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)
}
