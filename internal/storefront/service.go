package storefront

import (
	"context"
	"fmt"

	"github.com/huydhb/greenfarm-backend/internal/blog"
	"github.com/huydhb/greenfarm-backend/internal/cart"
	"github.com/huydhb/greenfarm-backend/internal/catalog"
	"github.com/huydhb/greenfarm-backend/pkg/enums"
	pkgerrors "github.com/huydhb/greenfarm-backend/pkg/errors"
	"github.com/huydhb/greenfarm-backend/pkg/logger"
	"github.com/huydhb/greenfarm-backend/pkg/money"
	"github.com/shopspring/decimal"
)

type productLookup interface {
	Get(id string) (catalog.Product, bool)
}

type postLookup interface {
	Get(id string) (blog.Post, bool)
}

// CartObserver records cart activity.
type CartObserver interface {
	IncCartAdd()
	ObserveCheckout(subtotal decimal.Decimal)
}

// Service exposes session-scoped storefront operations.
type Service interface {
	Session(ctx context.Context, sessionID string) (Snapshot, error)
	SelectSection(ctx context.Context, sessionID string, section enums.Section) (Snapshot, error)
	SelectCategory(ctx context.Context, sessionID string, category enums.ProductCategory) (Snapshot, error)
	ApplyFilter(ctx context.Context, sessionID string, filter catalog.Filter) (Snapshot, error)
	ResetFilters(ctx context.Context, sessionID string) (Snapshot, error)
	VisibleProducts(ctx context.Context, sessionID string) ([]catalog.Product, error)
	SetCartDialog(ctx context.Context, sessionID string, open bool) (Snapshot, error)
	DismissNotification(ctx context.Context, sessionID string) (Snapshot, error)
	SelectPost(ctx context.Context, sessionID, postID string) (Snapshot, error)

	Cart(ctx context.Context, sessionID string) (cart.View, error)
	AddToCart(ctx context.Context, sessionID, productID string, qty float64) (CartMutation, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, qty float64) (cart.View, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (cart.View, error)
	ClearCart(ctx context.Context, sessionID string) (cart.View, error)
	Checkout(ctx context.Context, sessionID string) (CheckoutResult, error)
}

// CartMutation is the result of adding to the cart.
type CartMutation struct {
	Line         cart.LineView `json:"line"`
	Notification string        `json:"notification"`
	Cart         cart.View     `json:"cart"`
}

// CheckoutResult reports whether a checkout happened and what it totalled.
type CheckoutResult struct {
	Completed    bool        `json:"completed"`
	Notification string      `json:"notification,omitempty"`
	Subtotal     money.Price `json:"subtotal"`
	Cart         cart.View   `json:"cart"`
}

// ServiceParams configure the storefront service.
type ServiceParams struct {
	Logger   *logger.Logger
	Registry *Registry
	Products productLookup
	Posts    postLookup
	Metrics  CartObserver
}

type service struct {
	logg     *logger.Logger
	registry *Registry
	products productLookup
	posts    postLookup
	metrics  CartObserver
}

func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Registry == nil {
		return nil, fmt.Errorf("session registry required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	if params.Posts == nil {
		return nil, fmt.Errorf("post lookup required")
	}
	return &service{
		logg:     params.Logger,
		registry: params.Registry,
		products: params.Products,
		posts:    params.Posts,
		metrics:  params.Metrics,
	}, nil
}

func (s *service) snapshot(sessionID string, fn func(*Controller) error) (Snapshot, error) {
	var snap Snapshot
	err := s.registry.Do(sessionID, func(c *Controller) error {
		if fn != nil {
			if err := fn(c); err != nil {
				return err
			}
		}
		snap = c.Snapshot()
		return nil
	})
	return snap, err
}

func (s *service) cartView(sessionID string, fn func(*Controller)) (cart.View, error) {
	var view cart.View
	err := s.registry.Do(sessionID, func(c *Controller) error {
		if fn != nil {
			fn(c)
		}
		view = cart.NewView(c.Ledger())
		return nil
	})
	return view, err
}

func (s *service) Session(ctx context.Context, sessionID string) (Snapshot, error) {
	return s.snapshot(sessionID, nil)
}

func (s *service) SelectSection(ctx context.Context, sessionID string, section enums.Section) (Snapshot, error) {
	if !section.IsValid() {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid section").
			WithDetails(map[string]any{"section": section})
	}
	return s.snapshot(sessionID, func(c *Controller) error {
		c.SelectSection(section)
		return nil
	})
}

func (s *service) SelectCategory(ctx context.Context, sessionID string, category enums.ProductCategory) (Snapshot, error) {
	if category != "" && !category.IsValid() {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid category").
			WithDetails(map[string]any{"category": category})
	}
	return s.snapshot(sessionID, func(c *Controller) error {
		c.SelectCategory(category)
		return nil
	})
}

func (s *service) ApplyFilter(ctx context.Context, sessionID string, filter catalog.Filter) (Snapshot, error) {
	return s.snapshot(sessionID, func(c *Controller) error {
		c.ApplyFilter(filter)
		return nil
	})
}

func (s *service) ResetFilters(ctx context.Context, sessionID string) (Snapshot, error) {
	return s.snapshot(sessionID, func(c *Controller) error {
		c.ResetFilters()
		return nil
	})
}

func (s *service) VisibleProducts(ctx context.Context, sessionID string) ([]catalog.Product, error) {
	var products []catalog.Product
	err := s.registry.Do(sessionID, func(c *Controller) error {
		products = c.VisibleProducts()
		return nil
	})
	return products, err
}

func (s *service) SetCartDialog(ctx context.Context, sessionID string, open bool) (Snapshot, error) {
	return s.snapshot(sessionID, func(c *Controller) error {
		if open {
			c.OpenCart()
		} else {
			c.CloseCart()
		}
		return nil
	})
}

func (s *service) DismissNotification(ctx context.Context, sessionID string) (Snapshot, error) {
	return s.snapshot(sessionID, func(c *Controller) error {
		c.DismissNotification()
		return nil
	})
}

// SelectPost opens a post; an empty id returns to the post list.
func (s *service) SelectPost(ctx context.Context, sessionID, postID string) (Snapshot, error) {
	if postID != "" {
		if _, ok := s.posts.Get(postID); !ok {
			return Snapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
		}
	}
	return s.snapshot(sessionID, func(c *Controller) error {
		if postID == "" {
			c.ClearPost()
			return nil
		}
		c.SelectPost(postID)
		return nil
	})
}

func (s *service) Cart(ctx context.Context, sessionID string) (cart.View, error) {
	return s.cartView(sessionID, nil)
}

func (s *service) AddToCart(ctx context.Context, sessionID, productID string, qty float64) (CartMutation, error) {
	product, ok := s.products.Get(productID)
	if !ok {
		return CartMutation{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	var out CartMutation
	err := s.registry.Do(sessionID, func(c *Controller) error {
		line := c.AddToCart(product, qty)
		snap := c.Snapshot()
		out = CartMutation{
			Line:         cart.NewLineView(line),
			Notification: snap.Notification,
			Cart:         snap.Cart,
		}
		return nil
	})
	if err != nil {
		return CartMutation{}, err
	}
	if s.metrics != nil {
		s.metrics.IncCartAdd()
	}
	return out, nil
}

// UpdateQuantity on a product that is not in the cart leaves the cart unchanged.
func (s *service) UpdateQuantity(ctx context.Context, sessionID, productID string, qty float64) (cart.View, error) {
	return s.cartView(sessionID, func(c *Controller) {
		c.UpdateQuantity(productID, qty)
	})
}

func (s *service) RemoveItem(ctx context.Context, sessionID, productID string) (cart.View, error) {
	return s.cartView(sessionID, func(c *Controller) {
		c.RemoveItem(productID)
	})
}

func (s *service) ClearCart(ctx context.Context, sessionID string) (cart.View, error) {
	return s.cartView(sessionID, func(c *Controller) {
		c.ClearCart()
	})
}

func (s *service) Checkout(ctx context.Context, sessionID string) (CheckoutResult, error) {
	var out CheckoutResult
	err := s.registry.Do(sessionID, func(c *Controller) error {
		subtotal := c.Ledger().Subtotal()
		out.Completed = c.Checkout()
		out.Subtotal = money.NewPrice(decimal.Zero)
		if out.Completed {
			out.Subtotal = money.NewPrice(subtotal)
			out.Notification = CheckoutSuccessMessage
		}
		out.Cart = cart.NewView(c.Ledger())
		return nil
	})
	if err != nil {
		return CheckoutResult{}, err
	}
	if out.Completed {
		if s.metrics != nil {
			s.metrics.ObserveCheckout(out.Subtotal.Value)
		}
		ctx = s.logg.WithFields(ctx, map[string]any{
			"event":    "cart.checkout",
			"subtotal": out.Subtotal.Value.String(),
		})
		s.logg.Info(ctx, "checkout completed")
	}
	return out, nil
}
