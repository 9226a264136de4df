package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/rl1809/storefront-cart/internal/core/domain"
	"github.com/rl1809/storefront-cart/internal/port"
)

const (
	DefaultStorageKey = "@RocketShoes:cart"
	tracerName        = "github.com/rl1809/storefront-cart/internal/core/service"
)

const (
	OpAddProduct    = "add_product"
	OpRemoveProduct = "remove_product"
	OpUpdateAmount  = "update_amount"
)

type UpdateProductAmount struct {
	ProductID int
	Amount    int
}

// CartManager owns the cart of one storefront session. Catalog lookups run
// without holding the lock; the read-modify-persist step is serialized.
type CartManager struct {
	catalog    port.CatalogService
	store      port.Store
	notifier   port.Notifier
	storageKey string
	tracer     trace.Tracer

	mu   sync.Mutex
	cart domain.Cart
}

type Option func(*CartManager)

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, port.Notification) {}

func WithStorageKey(key string) Option {
	return func(m *CartManager) {
		if key != "" {
			m.storageKey = key
		}
	}
}

func NewCartManager(ctx context.Context, catalog port.CatalogService, store port.Store, notifier port.Notifier, opts ...Option) (*CartManager, error) {
	m := &CartManager{
		catalog:    catalog,
		store:      store,
		notifier:   notifier,
		storageKey: DefaultStorageKey,
		tracer:     otel.Tracer(tracerName),
	}
	if m.notifier == nil {
		m.notifier = nopNotifier{}
	}
	for _, opt := range opts {
		opt(m)
	}

	cart, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	m.cart = cart

	return m, nil
}

func (m *CartManager) load(ctx context.Context) (domain.Cart, error) {
	raw, found, err := m.store.Get(ctx, m.storageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCart, err)
	}
	if !found || raw == "" {
		return domain.Cart{}, nil
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot: %w", ErrLoadCart, err)
	}
	if cart == nil {
		cart = domain.Cart{}
	}

	return cart, nil
}

// Cart returns a copy of the current cart.
func (m *CartManager) Cart() domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Clone()
}

func (m *CartManager) StorageKey() string {
	return m.storageKey
}

func (m *CartManager) AddProduct(ctx context.Context, productID int) error {
	ctx, span := m.startSpan(ctx, "CartManager.AddProduct", productID)
	defer span.End()

	product, stock, err := m.lookupProduct(ctx, productID)
	if err != nil {
		return m.fail(ctx, span, OpAddProduct, productID, fmt.Errorf("%w: %w", ErrAddProductFailed, err))
	}

	err = m.mutate(ctx, ErrAddProductFailed, func(cart domain.Cart) (domain.Cart, error) {
		if existing, ok := cart.Find(productID); ok {
			amount := existing.Amount + 1
			if amount > stock.Amount {
				return nil, ErrOutOfStock
			}
			return cart.WithAmount(productID, amount), nil
		}

		item := product
		item.ID = productID
		item.Amount = 1
		if item.Amount > stock.Amount {
			return nil, ErrOutOfStock
		}
		return cart.Append(item), nil
	})
	if err != nil {
		return m.fail(ctx, span, OpAddProduct, productID, err)
	}

	return nil
}

func (m *CartManager) RemoveProduct(ctx context.Context, productID int) error {
	ctx, span := m.startSpan(ctx, "CartManager.RemoveProduct", productID)
	defer span.End()

	err := m.mutate(ctx, ErrRemoveProductFailed, func(cart domain.Cart) (domain.Cart, error) {
		if cart.IndexOf(productID) < 0 {
			return nil, fmt.Errorf("%w: %w", ErrRemoveProductFailed, ErrItemNotFound)
		}
		return cart.Without(productID), nil
	})
	if err != nil {
		return m.fail(ctx, span, OpRemoveProduct, productID, err)
	}

	return nil
}

// UpdateProductAmount sets the amount of productID. An ID that is not in the
// cart is not an error: the unchanged cart is persisted.
func (m *CartManager) UpdateProductAmount(ctx context.Context, in UpdateProductAmount) error {
	ctx, span := m.startSpan(ctx, "CartManager.UpdateProductAmount", in.ProductID)
	defer span.End()
	span.SetAttributes(attribute.Int("cart.amount", in.Amount))

	stock, err := m.catalog.GetStock(ctx, in.ProductID)
	if err != nil {
		return m.fail(ctx, span, OpUpdateAmount, in.ProductID, fmt.Errorf("%w: %w", ErrUpdateAmountFailed, err))
	}

	if in.Amount <= 0 {
		return m.fail(ctx, span, OpUpdateAmount, in.ProductID, ErrInvalidAmount)
	}
	if in.Amount > stock.Amount {
		return m.fail(ctx, span, OpUpdateAmount, in.ProductID, ErrOutOfStock)
	}

	err = m.mutate(ctx, ErrUpdateAmountFailed, func(cart domain.Cart) (domain.Cart, error) {
		return cart.WithAmount(in.ProductID, in.Amount), nil
	})
	if err != nil {
		return m.fail(ctx, span, OpUpdateAmount, in.ProductID, err)
	}

	return nil
}

// lookupProduct fetches the product and its stock concurrently.
func (m *CartManager) lookupProduct(ctx context.Context, productID int) (domain.Product, domain.Stock, error) {
	var (
		product domain.Product
		stock   domain.Stock
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := m.catalog.GetProduct(gctx, productID)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		product = p
		return nil
	})
	g.Go(func() error {
		s, err := m.catalog.GetStock(gctx, productID)
		if err != nil {
			return fmt.Errorf("get stock: %w", err)
		}
		stock = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Product{}, domain.Stock{}, err
	}

	return product, stock, nil
}

// mutate runs fn against the current cart and persists the result. The
// in-memory cart is replaced only after the snapshot is written.
func (m *CartManager) mutate(ctx context.Context, failed error, fn func(domain.Cart) (domain.Cart, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := fn(m.cart)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%w: encode snapshot: %w", failed, err)
	}
	if err := m.store.Set(ctx, m.storageKey, string(raw)); err != nil {
		return fmt.Errorf("%w: persist snapshot: %w", failed, err)
	}

	m.cart = next
	return nil
}

func (m *CartManager) startSpan(ctx context.Context, name string, productID int) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, name, trace.WithAttributes(attribute.Int("cart.product_id", productID)))
}

func (m *CartManager) fail(ctx context.Context, span trace.Span, op string, productID int, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op)

	m.notifier.Notify(ctx, port.Notification{
		Operation: op,
		ProductID: productID,
		Message:   Message(err),
		Err:       err,
	})

	return err
}
