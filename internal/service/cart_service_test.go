package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/umituz/turkticaret-case-sub003/internal/domain"
	"github.com/umituz/turkticaret-case-sub003/internal/repository"
	"github.com/umituz/turkticaret-case-sub003/pkg/errors"
)

type cartKey struct {
	cartID    uuid.UUID
	productID uuid.UUID
}

// fakeCartItemRepo reproduces the upsert's contract: each AddOrMerge is
// one indivisible check-and-write on the (cart, product) key, the same
// guarantee the ON CONFLICT statement gives against Postgres.
type fakeCartItemRepo struct {
	mu    sync.Mutex
	items map[cartKey]*domain.CartItem
}

func newFakeCartItemRepo() *fakeCartItemRepo {
	return &fakeCartItemRepo{items: make(map[cartKey]*domain.CartItem)}
}

func (f *fakeCartItemRepo) AddOrMerge(ctx context.Context, cartID, productID uuid.UUID, quantityDelta int, unitPrice int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := cartKey{cartID, productID}
	now := time.Now()
	if item, ok := f.items[key]; ok {
		item.Quantity += quantityDelta
		item.IsRemoved = false
		item.UpdatedAt = now
		return nil
	}
	f.items[key] = &domain.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantityDelta,
		UnitPrice: unitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (f *fakeCartItemRepo) SetQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	item, ok := f.items[cartKey{cartID, productID}]
	if !ok || item.IsRemoved {
		return &errors.ErrNotFound{Resource: "cart item", ID: productID.String()}
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	return nil
}

func (f *fakeCartItemRepo) Remove(ctx context.Context, cartID, productID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	item, ok := f.items[cartKey{cartID, productID}]
	if !ok || item.IsRemoved {
		return &errors.ErrNotFound{Resource: "cart item", ID: productID.String()}
	}
	item.IsRemoved = true
	return nil
}

func (f *fakeCartItemRepo) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for key, item := range f.items {
		if key.cartID == cartID {
			item.IsRemoved = true
		}
	}
	return nil
}

func (f *fakeCartItemRepo) ListByCart(ctx context.Context, cartID uuid.UUID) ([]*domain.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]*domain.CartItem, 0)
	for key, item := range f.items {
		if key.cartID == cartID && !item.IsRemoved {
			cp := *item
			items = append(items, &cp)
		}
	}
	return items, nil
}

func newTestCartService(repo *fakeCartItemRepo) CartService {
	return NewCartService(&repository.Repositories{CartItem: repo}, zap.NewNop())
}

func TestAddToCart_CreatesLine(t *testing.T) {
	repo := newFakeCartItemRepo()
	svc := newTestCartService(repo)

	cartID := uuid.New()
	productID := uuid.New()

	err := svc.AddToCart(context.Background(), cartID, AddCartItemRequest{
		ProductID: productID,
		Quantity:  2,
		UnitPrice: 1500,
	})
	require.NoError(t, err)

	items, total, err := svc.GetCart(context.Background(), cartID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(1500), items[0].UnitPrice)
	assert.Equal(t, int64(3000), total)
}

func TestAddToCart_MergesIntoExistingLine(t *testing.T) {
	repo := newFakeCartItemRepo()
	svc := newTestCartService(repo)

	cartID := uuid.New()
	productID := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, cartID, AddCartItemRequest{ProductID: productID, Quantity: 2, UnitPrice: 1000}))
	require.NoError(t, svc.AddToCart(ctx, cartID, AddCartItemRequest{ProductID: productID, Quantity: 3, UnitPrice: 1000}))

	items, _, err := svc.GetCart(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddToCart_RejectsNonPositiveQuantity(t *testing.T) {
	repo := newFakeCartItemRepo()
	svc := newTestCartService(repo)

	err := svc.AddToCart(context.Background(), uuid.New(), AddCartItemRequest{
		ProductID: uuid.New(),
		Quantity:  0,
		UnitPrice: 1000,
	})
	assert.Error(t, err)
}

func TestAddToCart_ConcurrentAddsAllLand(t *testing.T) {
	repo := newFakeCartItemRepo()
	svc := newTestCartService(repo)

	cartID := uuid.New()
	productID := uuid.New()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, svc.AddToCart(ctx, cartID, AddCartItemRequest{ProductID: productID, Quantity: 3, UnitPrice: 1000}))
	}()
	go func() {
		defer wg.Done()
		assert.NoError(t, svc.AddToCart(ctx, cartID, AddCartItemRequest{ProductID: productID, Quantity: 5, UnitPrice: 1000}))
	}()
	wg.Wait()

	items, _, err := svc.GetCart(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, items, 1, "concurrent adds must never create duplicate rows")
	assert.Equal(t, 8, items[0].Quantity, "both deltas must be reflected")
}

func TestAddToCart_ManyConcurrentDeltas(t *testing.T) {
	repo := newFakeCartItemRepo()
	svc := newTestCartService(repo)

	cartID := uuid.New()
	productID := uuid.New()
	ctx := context.Background()

	const callers = 50
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.AddToCart(ctx, cartID, AddCartItemRequest{ProductID: productID, Quantity: 1, UnitPrice: 500}))
		}()
	}
	wg.Wait()

	items, _, err := svc.GetCart(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, callers, items[0].Quantity)
}

func TestRemoveThenAdd_ResurrectsSameLine(t *testing.T) {
	repo := newFakeCartItemRepo()
	svc := newTestCartService(repo)

	cartID := uuid.New()
	productID := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, cartID, AddCartItemRequest{ProductID: productID, Quantity: 2, UnitPrice: 1000}))

	items, _, err := svc.GetCart(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	originalID := items[0].ID

	require.NoError(t, svc.RemoveItem(ctx, cartID, productID))

	items, _, err = svc.GetCart(ctx, cartID)
	require.NoError(t, err)
	assert.Len(t, items, 0)

	require.NoError(t, svc.AddToCart(ctx, cartID, AddCartItemRequest{ProductID: productID, Quantity: 1, UnitPrice: 1000}))

	items, _, err = svc.GetCart(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, originalID, items[0].ID, "re-add must reuse the soft-deleted row, not create a new one")
	assert.False(t, items[0].IsRemoved)
}

func TestSetQuantity_OverwritesActiveLine(t *testing.T) {
	repo := newFakeCartItemRepo()
	svc := newTestCartService(repo)

	cartID := uuid.New()
	productID := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, cartID, AddCartItemRequest{ProductID: productID, Quantity: 2, UnitPrice: 1000}))
	require.NoError(t, svc.SetQuantity(ctx, cartID, productID, 7))

	items, _, err := svc.GetCart(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)

	err = svc.SetQuantity(ctx, cartID, productID, 0)
	assert.Error(t, err)
}

func TestSetQuantity_MissingLine(t *testing.T) {
	repo := newFakeCartItemRepo()
	svc := newTestCartService(repo)

	err := svc.SetQuantity(context.Background(), uuid.New(), uuid.New(), 3)
	var notFound *errors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestClearCart_OnlyTouchesOneCart(t *testing.T) {
	repo := newFakeCartItemRepo()
	svc := newTestCartService(repo)

	cartA := uuid.New()
	cartB := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, cartA, AddCartItemRequest{ProductID: uuid.New(), Quantity: 1, UnitPrice: 100}))
	require.NoError(t, svc.AddToCart(ctx, cartA, AddCartItemRequest{ProductID: uuid.New(), Quantity: 2, UnitPrice: 200}))
	require.NoError(t, svc.AddToCart(ctx, cartB, AddCartItemRequest{ProductID: uuid.New(), Quantity: 3, UnitPrice: 300}))

	require.NoError(t, svc.ClearCart(ctx, cartA))

	itemsA, totalA, err := svc.GetCart(ctx, cartA)
	require.NoError(t, err)
	assert.Len(t, itemsA, 0)
	assert.Equal(t, int64(0), totalA)

	itemsB, totalB, err := svc.GetCart(ctx, cartB)
	require.NoError(t, err)
	assert.Len(t, itemsB, 1)
	assert.Equal(t, int64(900), totalB)
}
