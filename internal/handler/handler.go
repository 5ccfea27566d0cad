// Package handler serves the storefront pages and form actions.
//
// Every action answers with a 303 redirect to a page (post/redirect/get); the page render
// picks up the new cart, locale and notifications from storage.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/foliage-shop/internal/catalog"
	"github.com/nikolayk812/foliage-shop/internal/domain"
	"github.com/nikolayk812/foliage-shop/internal/handler/middleware"
	"github.com/nikolayk812/foliage-shop/internal/presentation"
	"github.com/nikolayk812/foliage-shop/internal/shop"
	"github.com/nikolayk812/foliage-shop/internal/web"
	"go.uber.org/zap"
)

type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	shop   *shop.Service
	sync   *presentation.Sync
	ready  ReadinessChecker
	logger *zap.Logger
}

func New(service *shop.Service, sync *presentation.Sync, ready ReadinessChecker, logger *zap.Logger) *Handler {
	return &Handler{
		shop:   service,
		sync:   sync,
		ready:  ready,
		logger: logger.Named("handler"),
	}
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, web.IndexPage, func(doc *presentation.Document, state presentation.State) {
		h.sync.RenderProducts(doc, h.shop.Products(), state.Locale)
	})
}

func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	product, err := h.shop.Product(chi.URLParam(r, "slug"))
	if errors.Is(err, catalog.ErrProductNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.renderPage(w, r, web.ProductPage, func(doc *presentation.Document, state presentation.State) {
		h.sync.RenderProduct(doc, product, state.Locale)
	})
}

func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, web.CartPage, nil)
}

// AddItem adds the posted product. Product pages post redirect=/cart, other pages return to where they were.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	_, err := h.shop.AddProduct(r.Context(), visitor(r), r.PostFormValue("product"))
	if errors.Is(err, shop.ErrProductNotFound) {
		http.Error(w, "unknown product", http.StatusNotFound)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.redirect(w, r, backTo(r, "/"))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := domain.ItemID(chi.URLParam(r, "id"))

	if _, err := h.shop.RemoveItem(r.Context(), visitor(r), id); err != nil {
		h.fail(w, r, err)
		return
	}

	h.redirect(w, r, "/cart")
}

func (h *Handler) RemoveAt(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil {
		http.Error(w, "position is not a number", http.StatusBadRequest)
		return
	}

	if _, err := h.shop.RemoveAt(r.Context(), visitor(r), position); err != nil {
		h.fail(w, r, err)
		return
	}

	h.redirect(w, r, "/cart")
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if _, err := h.shop.Checkout(r.Context(), visitor(r)); err != nil {
		h.fail(w, r, err)
		return
	}

	h.redirect(w, r, "/cart")
}

// Language sets the posted locale, or toggles it when none is posted.
func (h *Handler) Language(w http.ResponseWriter, r *http.Request) {
	var err error
	if lang := r.PostFormValue("lang"); lang != "" {
		err = h.shop.SetLocale(r.Context(), visitor(r), domain.ParseLocale(lang))
	} else {
		_, err = h.shop.ToggleLocale(r.Context(), visitor(r))
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.redirect(w, r, backTo(r, "/"))
}

func (h *Handler) Question(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.AskQuestion(r.Context(), visitor(r)); err != nil {
		h.fail(w, r, err)
		return
	}

	h.redirect(w, r, backTo(r, "/"))
}

func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.ready.Ping(ctx); err != nil {
		h.logger.Warn("storage is not ready", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "fail", "message": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, page string, decorate func(*presentation.Document, presentation.State)) {
	state, err := h.shop.State(r.Context(), visitor(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	markup, err := web.Page(page)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	doc, err := presentation.ParseBytes(markup)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if decorate != nil {
		decorate(doc, state)
	}
	h.sync.Page(doc, state)

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("visitor_id", visitor(r)),
		zap.Error(err))

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func visitor(r *http.Request) string {
	return middleware.VisitorID(r.Context())
}

// backTo picks the page to return to: the posted redirect, then the referer, then def.
// Only paths on this site are accepted.
func backTo(r *http.Request, def string) string {
	for _, candidate := range []string{r.PostFormValue("redirect"), r.Referer()} {
		if target, ok := localTarget(candidate, r.Host); ok {
			return target
		}
	}
	return def
}

func localTarget(raw, host string) (string, bool) {
	if raw == "" {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if u.IsAbs() && u.Host != host {
		return "", false
	}
	if u.Host != "" && u.Host != host {
		return "", false
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "", false
	}

	target := u.EscapedPath()
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return target, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
