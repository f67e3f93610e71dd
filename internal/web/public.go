package web

import (
	"fmt"
	"net/http"
	"strconv"

	"etiket-museum/internal/cache"
	"etiket-museum/internal/models"
	"etiket-museum/internal/reviews"
	"etiket-museum/internal/session"
)

type homeView struct {
	Base
	Venues    []models.Venue
	Reviews   []models.Review
	OwnReview *models.Review
	Average   float64
	PhotoBase string
}

// Home renders the landing page: featured venues plus the review widget.
// Backend failures degrade to an inline error instead of breaking the shell.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	view := homeView{Base: h.base(r, "Beranda"), PhotoBase: h.Backend.UploadsBase()}

	venues, err := h.cachedVenues(r.Context())
	if err != nil {
		h.Logger.Warn("WEB", fmt.Sprintf("home: venues unavailable: %v", err))
		view.Error = "Sebagian data tidak dapat dimuat. Coba lagi nanti."
	} else {
		if len(venues) > 6 {
			venues = venues[:6]
		}
		view.Venues = venues
	}

	list, err := h.cachedReviews(r.Context())
	if err != nil {
		h.Logger.Warn("WEB", fmt.Sprintf("home: reviews unavailable: %v", err))
		view.Error = "Sebagian data tidak dapat dimuat. Coba lagi nanti."
	} else {
		view.Reviews = list
		view.Average = reviews.Average(list)
		if view.Claims != nil {
			view.OwnReview = reviews.FindOwn(list, view.Claims.UserID)
		}
	}

	h.Renderer.Render(w, http.StatusOK, "home.html", view)
}

// SubmitReview handles the review widget: an existing own review is updated
// in place, otherwise a new one is created.
func (h *Handlers) SubmitReview(w http.ResponseWriter, r *http.Request) {
	claims := session.FromContext(r.Context())
	score, _ := strconv.Atoi(r.PostFormValue("score"))
	comment := r.PostFormValue("comment")

	existing, err := h.Backend.ListReviews(r.Context())
	if err != nil {
		existing = nil
	}

	if err := h.Reviews.Submit(r.Context(), claims, session.Token(r), score, comment, existing); err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		view := homeView{Base: h.base(r, "Beranda"), PhotoBase: h.Backend.UploadsBase()}
		view.Error = "Ulasan tidak dapat disimpan: " + err.Error()
		view.Reviews = existing
		view.Average = reviews.Average(existing)
		h.Renderer.Render(w, http.StatusOK, "home.html", view)
		return
	}

	h.Cache.Invalidate(r.Context(), cache.KeyReviews)
	if claims != nil {
		h.Events.Publish("review.submitted", claims.Email, "review", strconv.Itoa(claims.UserID))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type venuesView struct {
	Base
	Venues    []models.Venue
	PhotoBase string
}

func (h *Handlers) Venue(w http.ResponseWriter, r *http.Request) {
	view := venuesView{Base: h.base(r, "Koleksi"), PhotoBase: h.Backend.UploadsBase()}
	venues, err := h.cachedVenues(r.Context())
	if err != nil {
		view.Error = "Data koleksi tidak dapat dimuat. Coba lagi nanti."
	} else {
		view.Venues = venues
	}
	h.Renderer.Render(w, http.StatusOK, "venue.html", view)
}

func (h *Handlers) Galery(w http.ResponseWriter, r *http.Request) {
	view := venuesView{Base: h.base(r, "Galeri"), PhotoBase: h.Backend.UploadsBase()}
	venues, err := h.cachedVenues(r.Context())
	if err != nil {
		view.Error = "Galeri tidak dapat dimuat. Coba lagi nanti."
	} else {
		view.Venues = venues
	}
	h.Renderer.Render(w, http.StatusOK, "galery.html", view)
}

func (h *Handlers) Sejarah(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, http.StatusOK, "sejarah.html", h.base(r, "Sejarah"))
}

func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, http.StatusOK, "contact.html", h.base(r, "Kontak"))
}

type destinationView struct {
	Base
	Tickets []models.Ticket
}

func (h *Handlers) DestinationInfo(w http.ResponseWriter, r *http.Request) {
	view := destinationView{Base: h.base(r, "Informasi Kunjungan")}
	tickets, err := h.cachedTickets(r.Context())
	if err != nil {
		view.Error = "Informasi harga tidak dapat dimuat. Coba lagi nanti."
	} else {
		view.Tickets = tickets
	}
	h.Renderer.Render(w, http.StatusOK, "destination_info.html", view)
}

// Profile shows the buyer's account details from the session claims.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, http.StatusOK, "profile.html", h.base(r, "Profil"))
}
