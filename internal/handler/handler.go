package handler

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"fsanano/storefront/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Storefront is the session controller the UI renders.
type Storefront interface {
	View() model.View
	Items() []model.Item
	Username() string
	Login(ctx context.Context, username, password string) *model.Notice
	AddToCart(ctx context.Context, itemID int) *model.Notice
	ShowCart(ctx context.Context) *model.Notice
	ShowOrders(ctx context.Context) *model.Notice
	Checkout(ctx context.Context) *model.Notice
}

type Handler struct {
	router *chi.Mux
	shop   Storefront
	logger *slog.Logger
	tmpl   *template.Template

	// pending is shown once, on the next page render.
	noticeMu sync.Mutex
	pending  *model.Notice
}

func NewHandler(shop Storefront, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	h := &Handler{
		router: router,
		shop:   shop,
		logger: logger,
		tmpl:   template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
	})

	h.router.Get("/", h.Index)
	h.router.Post("/login", h.Login)

	h.router.Group(func(r chi.Router) {
		r.Use(h.requireShop)
		r.Post("/cart/items/{itemID}", h.AddToCart)
		r.Get("/cart", h.ShowCart)
		r.Get("/orders", h.ShowOrders)
		r.Post("/checkout", h.Checkout)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// requireShop sends requests for shop actions back to the index while the
// user is still on the login view.
func (h *Handler) requireShop(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.shop.View() != model.ViewShop {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) setNotice(n *model.Notice) {
	h.noticeMu.Lock()
	defer h.noticeMu.Unlock()
	h.pending = n
}

func (h *Handler) takeNotice() *model.Notice {
	h.noticeMu.Lock()
	defer h.noticeMu.Unlock()
	n := h.pending
	h.pending = nil
	return n
}
