package controller

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/cassiomorais/checkout/internal/navigation"
	"github.com/cassiomorais/checkout/internal/session"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageData struct {
	Title       string
	HomePath    string
	PaymentPath string
	AuthCode    string
	Snapshot    session.Snapshot
}

// ViewController renders the pages listed in the navigation table.
type ViewController struct {
	store    *session.Store
	authCode string
	tmpl     *template.Template
}

// NewViewController parses the page templates. authCode pre-fills the
// payment form and may be empty.
func NewViewController(store *session.Store, authCode string) (*ViewController, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &ViewController{store: store, authCode: authCode, tmpl: tmpl}, nil
}

// Handlers maps every navigation view to its page handler.
func (h *ViewController) Handlers() map[navigation.View]http.HandlerFunc {
	return map[navigation.View]http.HandlerFunc{
		navigation.ViewHome:    h.Home,
		navigation.ViewPayment: h.Payment,
	}
}

// Home handles GET /
func (h *ViewController) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, "home.html", h.page("Checkout"))
}

// Payment handles GET /payment
func (h *ViewController) Payment(w http.ResponseWriter, r *http.Request) {
	h.render(w, "payment.html", h.page("Payment"))
}

func (h *ViewController) page(title string) pageData {
	return pageData{
		Title:       title,
		HomePath:    navigation.MustPath(navigation.ViewHome),
		PaymentPath: navigation.MustPath(navigation.ViewPayment),
		AuthCode:    h.authCode,
		Snapshot:    h.store.Snapshot(),
	}
}

func (h *ViewController) render(w http.ResponseWriter, name string, data pageData) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
