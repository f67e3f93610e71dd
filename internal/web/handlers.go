// Package web is the HTTP layer: page rendering, form handling, and the
// router wiring everything together.
package web

import (
	"context"
	"errors"
	"net/http"

	"etiket-museum/internal/backend"
	"etiket-museum/internal/booking"
	"etiket-museum/internal/cache"
	"etiket-museum/internal/config"
	"etiket-museum/internal/events"
	"etiket-museum/internal/logger"
	"etiket-museum/internal/models"
	"etiket-museum/internal/pass"
	"etiket-museum/internal/reviews"
	"etiket-museum/internal/session"
)

type Handlers struct {
	Config   *config.Config
	Logger   *logger.Logger
	Renderer *Renderer
	Backend  *backend.Client
	Cache    *cache.Cache
	Booking  *booking.Service
	Reviews  *reviews.Service
	Pass     *pass.Generator
	Events   *events.Producer
	Store    *session.Store
	Actions  *ActionGuard
}

func NewHandlers(cfg *config.Config, log *logger.Logger, rend *Renderer, client *backend.Client,
	c *cache.Cache, bk *booking.Service, rv *reviews.Service, pg *pass.Generator,
	ev *events.Producer, store *session.Store) *Handlers {
	return &Handlers{
		Config:   cfg,
		Logger:   log,
		Renderer: rend,
		Backend:  client,
		Cache:    c,
		Booking:  bk,
		Reviews:  rv,
		Pass:     pg,
		Events:   ev,
		Store:    store,
		Actions:  NewActionGuard(),
	}
}

func (h *Handlers) base(r *http.Request, title string) Base {
	claims := session.FromContext(r.Context())
	return Base{Title: title, Claims: claims}
}

// sessionExpired clears the cookie and sends the browser back to login.
// Every handler funnels backend errors through here first.
func (h *Handlers) sessionExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, backend.ErrSessionExpired) {
		return false
	}
	h.Store.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
	return true
}

// cachedVenues serves the venue list from redis when possible, falling back
// to the backend and repopulating the cache.
func (h *Handlers) cachedVenues(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	if h.Cache.Get(ctx, cache.KeyVenues, &venues) {
		return venues, nil
	}
	venues, err := h.Backend.ListVenues(ctx, "")
	if err != nil {
		return nil, err
	}
	h.Cache.Set(ctx, cache.KeyVenues, venues)
	return venues, nil
}

func (h *Handlers) cachedTickets(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if h.Cache.Get(ctx, cache.KeyTickets, &tickets) {
		return tickets, nil
	}
	tickets, err := h.Backend.ListTickets(ctx, "")
	if err != nil {
		return nil, err
	}
	h.Cache.Set(ctx, cache.KeyTickets, tickets)
	return tickets, nil
}

func (h *Handlers) cachedReviews(ctx context.Context) ([]models.Review, error) {
	var list []models.Review
	if h.Cache.Get(ctx, cache.KeyReviews, &list) {
		return list, nil
	}
	list, err := h.Backend.ListReviews(ctx)
	if err != nil {
		return nil, err
	}
	h.Cache.Set(ctx, cache.KeyReviews, list)
	return list, nil
}
