package handler

import (
	"bytes"
	"embed"
	"net/http"
	"strconv"

	"fsanano/storefront/internal/model"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageData struct {
	Username string
	Items    []model.Item
	Notice   *model.Notice
}

// Index renders the current view together with any pending notice.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	name := "login.html"
	data := pageData{Notice: h.takeNotice()}
	if h.shop.View() == model.ViewShop {
		name = "shop.html"
		data.Username = h.shop.Username()
		data.Items = h.shop.Items()
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("failed to render view", "view", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	h.finish(w, r, h.shop.Login(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password")))
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	h.finish(w, r, h.shop.AddToCart(r.Context(), itemID))
}

func (h *Handler) ShowCart(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.shop.ShowCart(r.Context()))
}

func (h *Handler) ShowOrders(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.shop.ShowOrders(r.Context()))
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.shop.Checkout(r.Context()))
}

// finish queues the action's notice and redirects back to the index.
func (h *Handler) finish(w http.ResponseWriter, r *http.Request, n *model.Notice) {
	if n != nil {
		h.setNotice(n)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
