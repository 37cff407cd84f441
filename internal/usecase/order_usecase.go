package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/converter"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/internal/infrastructure/metrics"
	"dawaksahl-api/internal/service"
	"dawaksahl-api/pkg/i18n"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderNotCancellable   = errors.New("order can no longer be cancelled")
	ErrDeliveryUnavailable   = errors.New("pharmacy does not deliver")
	ErrDeliveryAddressNeeded = errors.New("delivery address is required")
	ErrItemUnavailable       = errors.New("item is not available from this pharmacy")
	ErrPrescriptionRequired  = errors.New("a verified prescription is required")
	ErrPrescriptionNotUsable = errors.New("prescription cannot be used for this order")
	ErrReasonRequired        = errors.New("cancellation reason is required")
	ErrInsufficientStock     = service.ErrInsufficientStock

	errOrderSettled = errors.New("order is no longer pending")
)

const (
	expiredOrderReason = "expired"
	expireBatchSize    = 100
)

type OrderUsecase interface {
	Create(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	List(ctx context.Context, status entity.OrderStatus, page entity.Page) ([]dto.OrderResponse, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, req *dto.CancelOrderRequest) (*dto.OrderResponse, error)
	ExpireStale(ctx context.Context) (int64, error)
}

type orderUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	business            config.BusinessConfig
	orderRepo           repository.OrderRepository
	pharmacyRepo        repository.PharmacyRepository
	inventoryRepo       repository.InventoryRepository
	prescriptionRepo    repository.PrescriptionRepository
	addressRepo         repository.UserAddressRepository
	stock               service.StockGate
	auditService        service.AuditService
	notificationService service.NotificationService
	outbox              service.OutboxRecorder
	metrics             *metrics.Metrics
}

func NewOrderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	business config.BusinessConfig,
	orderRepo repository.OrderRepository,
	pharmacyRepo repository.PharmacyRepository,
	inventoryRepo repository.InventoryRepository,
	prescriptionRepo repository.PrescriptionRepository,
	addressRepo repository.UserAddressRepository,
	stock service.StockGate,
	auditService service.AuditService,
	notificationService service.NotificationService,
	outbox service.OutboxRecorder,
	m *metrics.Metrics,
) OrderUsecase {
	return &orderUsecase{
		db:                  db,
		log:                 log,
		business:            business,
		orderRepo:           orderRepo,
		pharmacyRepo:        pharmacyRepo,
		inventoryRepo:       inventoryRepo,
		prescriptionRepo:    prescriptionRepo,
		addressRepo:         addressRepo,
		stock:               stock,
		auditService:        auditService,
		notificationService: notificationService,
		outbox:              outbox,
		metrics:             m,
	}
}

// mergeOrderLines folds repeated inventory ids into one line, keeping first-seen order
func mergeOrderLines(items []dto.OrderItemRequest) []service.StockLine {
	index := make(map[uuid.UUID]int, len(items))
	lines := make([]service.StockLine, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.InventoryID]; ok {
			lines[i].Quantity += item.Quantity
			continue
		}
		index[item.InventoryID] = len(lines)
		lines = append(lines, service.StockLine{InventoryID: item.InventoryID, Quantity: item.Quantity})
	}
	return lines
}

// Create places an order. Stock is reserved in Redis first, then decremented
// conditionally in the same transaction that inserts the order.
func (u *orderUsecase) Create(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	patientID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	db := u.db.WithContext(ctx)
	lines := mergeOrderLines(req.Items)

	pharmacy, err := u.pharmacyRepo.FindVerifiedByID(db, req.PharmacyID)
	if err != nil {
		u.log.Warnf("Failed to find pharmacy: %+v", err)
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}

	order := &entity.Order{
		PatientID:      patientID,
		PharmacyID:     pharmacy.UserID,
		Status:         entity.OrderStatusPending,
		OrderType:      entity.OrderType(req.OrderType),
		DeliveryMethod: entity.DeliveryMethod(req.DeliveryMethod),
		PaymentMethod:  entity.PaymentMethod(req.PaymentMethod),
		PaymentStatus:  entity.PaymentStatusPending,
		Currency:       u.business.Currency,
		Notes:          req.Notes,
	}
	if order.DeliveryMethod == "" {
		order.DeliveryMethod = entity.DeliveryMethodPickup
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = entity.PaymentMethodCash
	}
	// The order type follows the attachment, never the other way round
	if req.PrescriptionID != nil {
		order.OrderType = entity.OrderTypePrescription
	} else if order.OrderType == entity.OrderTypePrescription {
		return nil, ErrPrescriptionRequired
	}

	if err := u.applyDelivery(db, order, pharmacy, req); err != nil {
		return nil, err
	}

	items, needsPrescription, err := u.priceLines(db, pharmacy.UserID, lines, now)
	if err != nil {
		return nil, err
	}
	order.Items = items

	if needsPrescription && req.PrescriptionID == nil {
		return nil, ErrPrescriptionRequired
	}
	if req.PrescriptionID != nil {
		prescription, err := u.prescriptionRepo.FindByID(db, *req.PrescriptionID)
		if err != nil {
			u.log.Warnf("Failed to find prescription: %+v", err)
			return nil, err
		}
		if prescription == nil || !prescription.IsUsableFor(patientID, pharmacy.UserID, now) {
			return nil, ErrPrescriptionNotUsable
		}
		order.PrescriptionID = req.PrescriptionID
	}
	if order.OrderType == "" {
		order.OrderType = entity.OrderTypeRegular
	}

	subtotal := decimal.Zero
	for _, item := range order.Items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	order.Subtotal = subtotal.Round(2)
	order.DeliveryFee = pharmacy.DeliveryFeeFor(order.DeliveryMethod, order.Subtotal)
	order.ApplyTotals(u.business.TaxRate)

	// A Redis outage degrades to the database check alone
	reserved := true
	if err := u.stock.Reserve(ctx, lines); err != nil {
		if errors.Is(err, service.ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		u.log.Warnf("Stock gate unavailable, relying on database decrement: %+v", err)
		reserved = false
	}

	notification, err := u.insertOrder(ctx, order, lines)
	if err != nil {
		if reserved {
			if relErr := u.stock.Release(ctx, lines); relErr != nil {
				u.log.Warnf("Failed to release reservation after failed order: %+v", relErr)
			}
		}
		return nil, err
	}

	u.notificationService.Push(ctx, notification)
	u.metrics.OrderCreated()
	u.log.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"pharmacy_id": order.PharmacyID,
		"total":       order.TotalAmount.String(),
	}).Info("Order created")

	return u.reload(ctx, order.ID)
}

func (u *orderUsecase) applyDelivery(db *gorm.DB, order *entity.Order, pharmacy *entity.Pharmacy, req *dto.CreateOrderRequest) error {
	if !order.DeliveryMethod.NeedsAddress() {
		return nil
	}
	if !pharmacy.HasDelivery {
		return ErrDeliveryUnavailable
	}

	order.DeliveryPhone = req.DeliveryPhone
	if req.AddressID != nil {
		address, err := u.addressRepo.FindByID(db, order.PatientID, *req.AddressID)
		if err != nil {
			u.log.Warnf("Failed to find address: %+v", err)
			return err
		}
		if address == nil {
			return ErrAddressNotFound
		}
		order.DeliveryAddress = address.OneLine()
		order.DeliveryCity = address.City
		order.DeliveryLatitude = address.Latitude
		order.DeliveryLongitude = address.Longitude
		return nil
	}

	order.DeliveryAddress = strings.TrimSpace(req.DeliveryAddress)
	order.DeliveryCity = req.DeliveryCity
	order.DeliveryLatitude = req.DeliveryLatitude
	order.DeliveryLongitude = req.DeliveryLongitude
	if order.DeliveryAddress == "" {
		return ErrDeliveryAddressNeeded
	}
	return nil
}

// priceLines snapshots names and discounted prices; it reports whether any line needs a prescription
func (u *orderUsecase) priceLines(db *gorm.DB, pharmacyID uuid.UUID, lines []service.StockLine, now time.Time) ([]entity.OrderItem, bool, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.InventoryID)
	}

	found, err := u.inventoryRepo.FindByIDs(db, ids)
	if err != nil {
		u.log.Warnf("Failed to load inventory items: %+v", err)
		return nil, false, err
	}
	byID := make(map[uuid.UUID]entity.InventoryItem, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}

	needsPrescription := false
	items := make([]entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		inv, ok := byID[line.InventoryID]
		if !ok || inv.PharmacyID != pharmacyID || !inv.IsAvailable || inv.IsExpiredAt(now) || !inv.Medication.IsActive {
			return nil, false, ErrItemUnavailable
		}
		if inv.Quantity < line.Quantity {
			return nil, false, ErrInsufficientStock
		}
		if inv.Medication.RequiresPrescription {
			needsPrescription = true
		}

		unit := inv.DiscountedPrice()
		items = append(items, entity.OrderItem{
			InventoryID:      inv.ID,
			MedicationID:     inv.MedicationID,
			MedicationName:   inv.Medication.Name,
			MedicationNameAr: inv.Medication.NameAr,
			Quantity:         line.Quantity,
			UnitPrice:        unit,
			TotalPrice:       unit.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2),
		})
	}
	return items, needsPrescription, nil
}

func (u *orderUsecase) insertOrder(ctx context.Context, order *entity.Order, lines []service.StockLine) (*entity.Notification, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	err := createNumbered(tx, entity.OrderNumberPrefix, "order_number", func(number string) error {
		order.OrderNumber = number
		return u.orderRepo.Create(tx, order)
	})
	if err != nil {
		u.log.Warnf("Failed to create order: %+v", err)
		return nil, err
	}

	for _, line := range lines {
		affected, err := u.inventoryRepo.DecrementStock(tx, line.InventoryID, line.Quantity)
		if err != nil {
			u.log.Warnf("Failed to decrement stock: %+v", err)
			return nil, err
		}
		if affected == 0 {
			return nil, ErrInsufficientStock
		}
	}

	notification, err := u.notificationService.Create(ctx, tx, service.NotificationInput{
		UserID:    order.PharmacyID,
		Type:      entity.NotificationTypeOrder,
		Title:     i18n.NotifyOrderCreatedTitle,
		Body:      i18n.NotifyOrderCreatedBody.Format(order.OrderNumber),
		Priority:  entity.PriorityHigh,
		ActionURL: "/orders/" + order.ID.String(),
		Data:      entity.JSON{"order_id": order.ID.String(), "order_number": order.OrderNumber},
	})
	if err != nil {
		return nil, err
	}

	if err := u.outbox.Record(ctx, tx, "order", order.ID, entity.EventOrderCreated, entity.JSON{
		"order_number": order.OrderNumber,
		"patient_id":   order.PatientID.String(),
		"pharmacy_id":  order.PharmacyID.String(),
		"total_amount": order.TotalAmount.String(),
		"currency":     order.Currency,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return notification, nil
}

func (u *orderUsecase) List(ctx context.Context, status entity.OrderStatus, page entity.Page) ([]dto.OrderResponse, int64, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, 0, err
	}

	orders, total, err := u.orderRepo.FindAll(u.db.WithContext(ctx), entity.OrderFilter{
		UserID: userID,
		RoleID: roleID,
		Status: status,
		Page:   page,
	})
	if err != nil {
		u.log.Warnf("Failed to list orders: %+v", err)
		return nil, 0, err
	}
	return converter.OrdersToResponses(orders, i18n.FromContext(ctx)), total, nil
}

func (u *orderUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	order, err := u.orderRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find order: %+v", err)
		return nil, err
	}
	if order == nil || !order.IsVisibleTo(userID, roleID) {
		return nil, ErrOrderNotFound
	}
	return converter.OrderToResponse(order, i18n.FromContext(ctx)), nil
}

// UpdateStatus advances the order through the pharmacy workflow
func (u *orderUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	pharmacyID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	next := entity.OrderStatus(req.Status)
	if next == entity.OrderStatusCancelled {
		return u.Cancel(ctx, id, &dto.CancelOrderRequest{Reason: req.PharmacistNotes})
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	order, err := u.orderRepo.FindByID(tx.Clauses(forUpdate()), id)
	if err != nil {
		u.log.Warnf("Failed to find order: %+v", err)
		return nil, err
	}
	if order == nil || order.PharmacyID != pharmacyID {
		return nil, ErrOrderNotFound
	}

	oldStatus := order.Status
	now := time.Now()
	if !order.Transition(next, now) {
		return nil, ErrInvalidTransition
	}
	if req.PharmacistNotes != "" {
		order.PharmacistNotes = req.PharmacistNotes
	}
	if req.PharmacistNotesAr != "" {
		order.PharmacistNotesAr = req.PharmacistNotesAr
	}

	affected, err := u.orderRepo.UpdateIfStatus(tx, order, oldStatus)
	if err != nil {
		u.log.Warnf("Failed to update order status: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidTransition
	}

	if next == entity.OrderStatusDelivered {
		if err := u.completeDelivery(tx, order); err != nil {
			return nil, err
		}
	}

	if err := u.auditService.LogUpdate(ctx, tx, &pharmacyID, entity.AuditActionOrderStatus, "order", id.String(),
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": next},
	); err != nil {
		return nil, err
	}

	notification, err := u.notificationService.Create(ctx, tx, service.NotificationInput{
		UserID:    order.PatientID,
		Type:      entity.NotificationTypeOrder,
		Title:     i18n.NotifyOrderStatusTitle,
		Body:      i18n.NotifyOrderStatusBody.Format(order.OrderNumber, i18n.StatusLabel(string(next))),
		ActionURL: "/orders/" + order.ID.String(),
		Data:      entity.JSON{"order_id": order.ID.String(), "status": string(next)},
	})
	if err != nil {
		return nil, err
	}

	if err := u.outbox.Record(ctx, tx, "order", order.ID, entity.EventOrderStatusChanged, entity.JSON{
		"order_number": order.OrderNumber,
		"from":         string(oldStatus),
		"to":           string(next),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notificationService.Push(ctx, notification)
	u.metrics.OrderTransitioned(string(next))
	return u.reload(ctx, id)
}

// completeDelivery counts the order for the pharmacy and fills the attached prescription
func (u *orderUsecase) completeDelivery(tx *gorm.DB, order *entity.Order) error {
	if err := u.pharmacyRepo.IncrementOrders(tx, order.PharmacyID); err != nil {
		u.log.Warnf("Failed to increment pharmacy orders: %+v", err)
		return err
	}
	if order.PrescriptionID == nil {
		return nil
	}

	prescription, err := u.prescriptionRepo.FindByID(tx.Clauses(forUpdate()), *order.PrescriptionID)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return err
	}
	if prescription == nil || !prescription.CanTransitionTo(entity.PrescriptionStatusFilled) {
		return nil
	}
	prescription.Status = entity.PrescriptionStatusFilled
	if err := u.prescriptionRepo.Update(tx, prescription); err != nil {
		u.log.Warnf("Failed to fill prescription: %+v", err)
		return err
	}
	return nil
}

// Cancel is open to the ordering patient, the owning pharmacy (with a reason) and admins
func (u *orderUsecase) Cancel(ctx context.Context, id uuid.UUID, req *dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	reason := ""
	if req != nil {
		reason = strings.TrimSpace(req.Reason)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	order, err := u.orderRepo.FindByID(tx.Clauses(forUpdate()), id)
	if err != nil {
		u.log.Warnf("Failed to find order: %+v", err)
		return nil, err
	}
	if order == nil || !order.IsVisibleTo(userID, roleID) {
		return nil, ErrOrderNotFound
	}
	if roleID == entity.RoleIDPharmacy && reason == "" {
		return nil, ErrReasonRequired
	}
	if !order.CanBeCancelled() {
		return nil, ErrOrderNotCancellable
	}

	notification, err := u.cancelInTx(ctx, tx, order, &userID, reason)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.afterCancel(ctx, order, notification)
	return u.reload(ctx, id)
}

// cancelInTx restores stock and records the cancellation. by is nil for system cancellations.
func (u *orderUsecase) cancelInTx(ctx context.Context, tx *gorm.DB, order *entity.Order, by *uuid.UUID, reason string) (*entity.Notification, error) {
	oldStatus := order.Status
	if !order.Transition(entity.OrderStatusCancelled, time.Now()) {
		return nil, ErrOrderNotCancellable
	}
	order.CancellationReason = reason

	// Stock goes back only for the transaction that actually moved the row
	affected, err := u.orderRepo.UpdateIfStatus(tx, order, oldStatus)
	if err != nil {
		u.log.Warnf("Failed to cancel order: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderNotCancellable
	}

	for _, item := range order.Items {
		if err := u.inventoryRepo.IncrementStock(tx, item.InventoryID, item.Quantity); err != nil {
			u.log.Warnf("Failed to restore stock: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.LogUpdate(ctx, tx, by, entity.AuditActionOrderCancel, "order", order.ID.String(),
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": order.Status, "reason": reason},
	); err != nil {
		return nil, err
	}

	// Tell the other party
	recipient := order.PatientID
	if by != nil && *by == order.PatientID {
		recipient = order.PharmacyID
	}
	notification, err := u.notificationService.Create(ctx, tx, service.NotificationInput{
		UserID:    recipient,
		Type:      entity.NotificationTypeOrder,
		Title:     i18n.NotifyOrderCancelledTitle,
		Body:      i18n.NotifyOrderCancelledBody.Format(order.OrderNumber),
		ActionURL: "/orders/" + order.ID.String(),
		Data:      entity.JSON{"order_id": order.ID.String(), "reason": reason},
	})
	if err != nil {
		return nil, err
	}

	if err := u.outbox.Record(ctx, tx, "order", order.ID, entity.EventOrderStatusChanged, entity.JSON{
		"order_number": order.OrderNumber,
		"from":         string(oldStatus),
		"to":           string(entity.OrderStatusCancelled),
		"reason":       reason,
	}); err != nil {
		return nil, err
	}
	return notification, nil
}

func (u *orderUsecase) afterCancel(ctx context.Context, order *entity.Order, notification *entity.Notification) {
	lines := make([]service.StockLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, service.StockLine{InventoryID: item.InventoryID, Quantity: item.Quantity})
	}
	if err := u.stock.Release(ctx, lines); err != nil {
		u.log.Warnf("Failed to release stock for cancelled order %s: %+v", order.ID, err)
	}
	u.notificationService.Push(ctx, notification)
	u.metrics.OrderTransitioned(string(entity.OrderStatusCancelled))
}

// ExpireStale cancels orders left pending longer than the configured window, one transaction each.
// Candidates are read without a lock; each one is re-read under lock before it is cancelled.
func (u *orderUsecase) ExpireStale(ctx context.Context) (int64, error) {
	before := time.Now().Add(-time.Duration(u.business.OrderExpiryHours) * time.Hour)

	orders, err := u.orderRepo.FindPendingBefore(u.db.WithContext(ctx), before, expireBatchSize)
	if err != nil {
		u.log.Warnf("Failed to find stale orders: %+v", err)
		return 0, err
	}

	var expired int64
	for _, candidate := range orders {
		err := u.expireOne(ctx, candidate.ID, before)
		if errors.Is(err, errOrderSettled) {
			continue
		}
		if err != nil {
			u.log.Warnf("Failed to expire order %s: %+v", candidate.ID, err)
			continue
		}
		expired++
	}
	if expired > 0 {
		u.log.WithField("expired", expired).Info("Expired stale orders")
	}
	return expired, nil
}

func (u *orderUsecase) expireOne(ctx context.Context, id uuid.UUID, before time.Time) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	order, err := u.orderRepo.FindByID(tx.Clauses(forUpdate()), id)
	if err != nil {
		return err
	}
	if order == nil || order.Status != entity.OrderStatusPending || !order.CreatedAt.Before(before) {
		return errOrderSettled
	}

	notification, err := u.cancelInTx(ctx, tx, order, nil, expiredOrderReason)
	if errors.Is(err, ErrOrderNotCancellable) {
		return errOrderSettled
	}
	if err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	u.afterCancel(ctx, order, notification)
	return nil
}

func (u *orderUsecase) reload(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := u.orderRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to reload order: %+v", err)
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return converter.OrderToResponse(order, i18n.FromContext(ctx)), nil
}
