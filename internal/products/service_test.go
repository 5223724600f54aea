package products

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/platform/httpx"
)

type memoryRepo struct {
	products map[int64]Product
	codes    map[string]int64
	nextID   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{products: make(map[int64]Product), codes: make(map[string]int64)}
}

func (r *memoryRepo) List(ctx context.Context) ([]Product, error) {
	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Product, error) {
	p, ok := r.products[id]
	if !ok {
		return Product{}, fmt.Errorf("product %d: %w", id, httpx.ErrNotFound)
	}
	return p, nil
}

func (r *memoryRepo) Create(ctx context.Context, product Product) (Product, error) {
	if _, taken := r.codes[product.Code]; taken {
		return Product{}, fmt.Errorf("code %q: %w", product.Code, httpx.ErrDuplicate)
	}
	r.nextID++
	product.ID = r.nextID
	product.CreatedAt = time.Now()
	r.products[product.ID] = product
	r.codes[product.Code] = product.ID
	return product, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, product Product) (Product, error) {
	existing, ok := r.products[id]
	if !ok {
		return Product{}, httpx.ErrNotFound
	}
	if owner, taken := r.codes[product.Code]; taken && owner != id {
		return Product{}, fmt.Errorf("code %q: %w", product.Code, httpx.ErrDuplicate)
	}
	delete(r.codes, existing.Code)
	product.ID = id
	r.products[id] = product
	r.codes[product.Code] = id
	return product, nil
}

func (r *memoryRepo) SetQuantity(ctx context.Context, id int64, quantity int) (Product, error) {
	p, ok := r.products[id]
	if !ok {
		return Product{}, httpx.ErrNotFound
	}
	p.Quantity = quantity
	r.products[id] = p
	return p, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	p, ok := r.products[id]
	if !ok {
		return httpx.ErrNotFound
	}
	delete(r.codes, p.Code)
	delete(r.products, id)
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testProduct(code string) Product {
	return Product{Name: "Vela Branca (caixa)", Code: code, Price: dec("19.90"), Quantity: 10, Category: "Velas"}
}

func TestCreateRequiresCodeAndName(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.Create(context.Background(), Product{Name: "Sem código", Price: dec("1")})
	require.Error(t, err)
	_, err = svc.Create(context.Background(), Product{Code: "X-1", Price: dec("1")})
	require.Error(t, err)
}

func TestCreateRejectsNegativeValues(t *testing.T) {
	svc := NewService(newMemoryRepo())
	p := testProduct("X-1")
	p.Price = dec("-1")
	_, err := svc.Create(context.Background(), p)
	require.ErrorIs(t, err, ErrNegativePrice)

	p = testProduct("X-2")
	p.Quantity = -1
	_, err = svc.Create(context.Background(), p)
	require.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestCreateDuplicateCode(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()
	_, err := svc.Create(ctx, testProduct("X-1"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, testProduct("X-1"))
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestSetQuantity(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()
	created, err := svc.Create(ctx, testProduct("X-1"))
	require.NoError(t, err)

	p, err := svc.SetQuantity(ctx, created.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 3, p.Quantity)

	_, err = svc.SetQuantity(ctx, created.ID, -1)
	require.ErrorIs(t, err, ErrNegativeQuantity)
}
