package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"fsanano/storefront/internal/model"
)

// User-visible messages.
const (
	MsgInvalidCredentials = "Invalid username/password"
	MsgItemAdded          = "Item added to cart!"
	MsgAddFailed          = "Failed to add item"
	MsgCartEmpty          = "Cart is empty"
	MsgCartFetchFailed    = "Error fetching cart"
	MsgOrdersFetchFailed  = "Error fetching orders"
	MsgNoCart             = "No cart found"
	MsgOrderSuccessful    = "Order successful"
	MsgCheckoutFailed     = "Checkout failed"
)

// StoreAPI is the remote backend.
type StoreAPI interface {
	GetItems(ctx context.Context) ([]model.Item, error)
	Login(ctx context.Context, username, password string) (*model.LoginResponse, error)
	AddToCart(ctx context.Context, token string, itemID int) error
	GetCarts(ctx context.Context) ([]model.Cart, error)
	GetOrders(ctx context.Context) ([]model.Order, error)
	CreateOrder(ctx context.Context, token string, cartID int) error
}

// SessionStore is the durable copy of the session.
type SessionStore interface {
	Save(ctx context.Context, s model.Session) error
	UserID(ctx context.Context) (id int, ok bool, err error)
}

// Storefront owns the client state and mediates every call to the backend.
// Actions are serialized: each runs to completion before the next starts.
type Storefront struct {
	api      StoreAPI
	sessions SessionStore
	logger   *slog.Logger

	mu       sync.Mutex
	token    string
	userID   int
	username string
	password string
	items    []model.Item
	view     model.View
}

func NewStorefront(api StoreAPI, sessions SessionStore, logger *slog.Logger) *Storefront {
	if logger == nil {
		logger = slog.Default()
	}
	return &Storefront{
		api:      api,
		sessions: sessions,
		logger:   logger,
		view:     model.ViewLogin,
	}
}

func (s *Storefront) View() model.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Items returns a copy of the catalog in arrival order.
func (s *Storefront) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Item(nil), s.items...)
}

// Session returns the in-memory session.
func (s *Storefront) Session() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Session{Token: s.token, UserID: s.userID}
}

func (s *Storefront) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// Login authenticates against the backend and, on success, moves to the shop.
func (s *Storefront) Login(ctx context.Context, username, password string) *model.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.username = username
	s.password = password

	resp, err := s.api.Login(ctx, s.username, s.password)
	if err != nil {
		s.logger.Info("login rejected", "username", username, "error", err)
		return model.Error(MsgInvalidCredentials)
	}

	s.token = resp.Token
	s.userID = resp.UserID
	if err := s.sessions.Save(ctx, model.Session{Token: resp.Token, UserID: resp.UserID}); err != nil {
		s.logger.Error("failed to persist session", "user_id", resp.UserID, "error", err)
	}

	s.setView(ctx, model.ViewShop)
	return nil
}

// setView is the view transition function. Entering the shop from another
// view loads the catalog exactly once.
func (s *Storefront) setView(ctx context.Context, v model.View) {
	prev := s.view
	s.view = v
	if v == model.ViewShop && prev != model.ViewShop {
		s.enterShop(ctx)
	}
}

// EnterShop reloads the catalog.
func (s *Storefront) EnterShop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enterShop(ctx)
}

func (s *Storefront) enterShop(ctx context.Context) {
	items, err := s.api.GetItems(ctx)
	if err != nil {
		s.logger.Error("error fetching items", "error", err)
		return
	}
	s.items = items
}

func (s *Storefront) AddToCart(ctx context.Context, itemID int) *model.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.api.AddToCart(ctx, s.token, itemID); err != nil {
		s.logger.Error("failed to add item", "item_id", itemID, "error", err)
		return model.Error(MsgAddFailed)
	}
	return model.Info(MsgItemAdded)
}

func (s *Storefront) ShowCart(ctx context.Context) *model.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.currentCart(ctx)
	if err != nil {
		s.logger.Error("error fetching cart", "error", err)
		return model.Error(MsgCartFetchFailed)
	}
	if cart == nil || len(cart.Items) == 0 {
		return model.Info(MsgCartEmpty)
	}
	return model.Info(FormatCart(*cart))
}

func (s *Storefront) ShowOrders(ctx context.Context) *model.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.api.GetOrders(ctx)
	if err != nil {
		s.logger.Error("error fetching orders", "error", err)
		return model.Error(MsgOrdersFetchFailed)
	}
	userID, ok, err := s.sessions.UserID(ctx)
	if err != nil {
		s.logger.Error("error reading user id", "error", err)
		return model.Error(MsgOrdersFetchFailed)
	}
	var mine []model.Order
	if ok {
		mine = FilterOrders(orders, userID)
	}
	return model.Info(FormatOrders(mine))
}

// Checkout orders the current user's cart.
func (s *Storefront) Checkout(ctx context.Context) *model.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.currentCart(ctx)
	if err != nil {
		s.logger.Error("checkout failed", "error", err)
		return model.Error(MsgCheckoutFailed)
	}
	if cart == nil {
		return model.Error(MsgNoCart)
	}

	if err := s.api.CreateOrder(ctx, s.token, cart.ID); err != nil {
		s.logger.Error("checkout failed", "cart_id", cart.ID, "error", err)
		return model.Error(MsgCheckoutFailed)
	}

	s.setView(ctx, model.ViewShop)
	return model.Info(MsgOrderSuccessful)
}

// currentCart returns nil when the persisted user has no cart.
func (s *Storefront) currentCart(ctx context.Context) (*model.Cart, error) {
	carts, err := s.api.GetCarts(ctx)
	if err != nil {
		return nil, err
	}
	userID, ok, err := s.sessions.UserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read user id: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return FindCart(carts, userID), nil
}

// FindCart returns the first cart owned by userID, or nil.
func FindCart(carts []model.Cart, userID int) *model.Cart {
	for i := range carts {
		if carts[i].UserID == userID {
			return &carts[i]
		}
	}
	return nil
}

// FilterOrders keeps the orders owned by userID in arrival order.
func FilterOrders(orders []model.Order, userID int) []model.Order {
	var out []model.Order
	for _, o := range orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

func FormatCart(cart model.Cart) string {
	var b strings.Builder
	b.WriteString("Cart Items:\n")
	for _, item := range cart.Items {
		fmt.Fprintf(&b, "- %s (ID: %d)\n", item.Name, item.ID)
	}
	return b.String()
}

func FormatOrders(orders []model.Order) string {
	var b strings.Builder
	b.WriteString("Order IDs:\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "#%d\n", o.ID)
	}
	return b.String()
}
