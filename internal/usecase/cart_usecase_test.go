package usecase

import (
	"testing"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCartRepo struct {
	repository.CartRepository
	lines     map[uuid.UUID]*entity.CartItem
	inventory *fakeInventoryRepo
}

func (f *fakeCartRepo) FindByUser(_ *gorm.DB, userID uuid.UUID) ([]entity.CartItem, error) {
	var items []entity.CartItem
	for _, line := range f.lines {
		if line.UserID != userID {
			continue
		}
		loaded := *line
		if item, ok := f.inventory.items[line.InventoryID]; ok {
			loaded.Item = &item
		}
		items = append(items, loaded)
	}
	return items, nil
}

func (f *fakeCartRepo) FindOwned(_ *gorm.DB, userID, id uuid.UUID) (*entity.CartItem, error) {
	line, ok := f.lines[id]
	if !ok || line.UserID != userID {
		return nil, nil
	}
	snapshot := *line
	return &snapshot, nil
}

func (f *fakeCartRepo) AddQuantity(_ *gorm.DB, item *entity.CartItem) error {
	for _, line := range f.lines {
		if line.UserID == item.UserID && line.InventoryID == item.InventoryID {
			item.ID = line.ID
			item.Quantity += line.Quantity
			line.Quantity = item.Quantity
			return nil
		}
	}
	item.ID = uuid.New()
	stored := *item
	f.lines[item.ID] = &stored
	return nil
}

func (f *fakeCartRepo) Update(_ *gorm.DB, item *entity.CartItem) error {
	saved := *item
	f.lines[item.ID] = &saved
	return nil
}

func (f *fakeCartRepo) Delete(_ *gorm.DB, userID, id uuid.UUID) (int64, error) {
	line, ok := f.lines[id]
	if !ok || line.UserID != userID {
		return 0, nil
	}
	delete(f.lines, id)
	return 1, nil
}

type cartFixture struct {
	usecase *cartUsecase
	cart    *fakeCartRepo
	patient uuid.UUID
	item    entity.InventoryItem
}

func newCartFixture(db *gorm.DB) *cartFixture {
	f := &cartFixture{patient: uuid.New()}
	f.item = entity.InventoryItem{
		ID:           uuid.New(),
		PharmacyID:   uuid.New(),
		MedicationID: uuid.New(),
		Quantity:     5,
		Price:        decimal.NewFromInt(1250),
		IsAvailable:  true,
		Medication:   entity.Medication{Name: "Ibuprofen", IsActive: true},
	}
	inventory := &fakeInventoryRepo{items: map[uuid.UUID]entity.InventoryItem{f.item.ID: f.item}}
	f.cart = &fakeCartRepo{lines: map[uuid.UUID]*entity.CartItem{}, inventory: inventory}
	f.usecase = &cartUsecase{
		db:            db,
		log:           newTestLogger(),
		business:      config.BusinessConfig{Currency: "YER"},
		cartRepo:      f.cart,
		inventoryRepo: inventory,
	}
	return f
}

// inCart stores a line directly, the way an earlier visit would have left it
func (f *cartFixture) inCart(quantity int) *entity.CartItem {
	line := &entity.CartItem{ID: uuid.New(), UserID: f.patient, InventoryID: f.item.ID, Quantity: quantity}
	f.cart.lines[line.ID] = line
	return line
}

func TestAddToCart_MergedQuantityMustBeInStock(t *testing.T) {
	db, mock := newMockDB(t)
	f := newCartFixture(db)
	f.inCart(4)
	ctx := asUser(f.patient, entity.RoleIDPatient)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := f.usecase.Add(ctx, &dto.AddCartItemRequest{InventoryID: f.item.ID, Quantity: 2})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = f.usecase.Add(ctx, &dto.AddCartItemRequest{InventoryID: uuid.New(), Quantity: 1})
	assert.ErrorIs(t, err, ErrInventoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCart_Commits(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	f := newCartFixture(db)
	line := f.inCart(2)

	resp, err := f.usecase.Add(asUser(f.patient, entity.RoleIDPatient), &dto.AddCartItemRequest{InventoryID: f.item.ID, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, line.ID, resp.Items[0].ID)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.True(t, resp.Items[0].Available)
	assert.Equal(t, "YER", resp.Currency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCart_PatientsOnly(t *testing.T) {
	db, _ := newMockDB(t)
	f := newCartFixture(db)

	_, err := f.usecase.Add(asUser(uuid.New(), entity.RoleIDDoctor), &dto.AddCartItemRequest{InventoryID: f.item.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrPatientsOnly)
}

func TestUpdateCartItem(t *testing.T) {
	db, _ := newMockDB(t)
	f := newCartFixture(db)
	line := f.inCart(1)
	ctx := asUser(f.patient, entity.RoleIDPatient)

	three := 3
	resp, err := f.usecase.Update(ctx, line.ID, &dto.UpdateCartItemRequest{Quantity: &three})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalUnits)
	assert.True(t, decimal.NewFromInt(3750).Equal(resp.Subtotal))

	tooMany := 6
	_, err = f.usecase.Update(ctx, line.ID, &dto.UpdateCartItemRequest{Quantity: &tooMany})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 3, f.cart.lines[line.ID].Quantity)

	_, err = f.usecase.Update(asUser(uuid.New(), entity.RoleIDPatient), line.ID, &dto.UpdateCartItemRequest{Quantity: &three})
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	zero := 0
	resp, err = f.usecase.Update(ctx, line.ID, &dto.UpdateCartItemRequest{Quantity: &zero})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Empty(t, f.cart.lines)

	_, err = f.usecase.Remove(ctx, line.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCart_UnavailableLinesLeaveSubtotal(t *testing.T) {
	db, _ := newMockDB(t)
	f := newCartFixture(db)
	f.inCart(2)
	f.item.IsAvailable = false
	f.cart.inventory.items[f.item.ID] = f.item

	resp, err := f.usecase.Get(asUser(f.patient, entity.RoleIDPatient))
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.False(t, resp.Items[0].Available)
	assert.Equal(t, 2, resp.TotalUnits)
	assert.True(t, resp.Subtotal.IsZero())
}
