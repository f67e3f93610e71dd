package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"etiket-museum/internal/guard"
	"etiket-museum/internal/logger"
	"etiket-museum/internal/session"
)

// NewRouter assembles the site. The role guard runs on every request so
// protected prefixes redirect before any handler executes.
func NewRouter(h *Handlers, store *session.Store, log *logger.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(guard.Middleware(store, log))

	// Public pages
	r.Get("/", h.Home)
	r.Get("/sejarah", h.Sejarah)
	r.Get("/venue", h.Venue)
	r.Get("/galery", h.Galery)
	r.Get("/contact", h.Contact)
	r.Get("/destination-info", h.DestinationInfo)
	r.Post("/reviews", h.SubmitReview)

	// Auth
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.Get("/register", h.RegisterPage)
	r.Post("/register", h.Register)
	r.Get("/verify-email", h.VerifyEmailPage)
	r.Post("/verify-email", h.VerifyEmail)
	r.Post("/verify-email/resend", h.ResendVerification)
	r.Get("/reset-password", h.ResetPasswordPage)
	r.Post("/reset-password", h.ResetPassword)
	r.Get("/auth/google/callback", h.GoogleCallback)
	r.Post("/logout", h.Logout)

	// Buyer
	r.Get("/beli/calender", h.Calendar)
	r.Post("/beli/calender/bayar", h.Pay)
	r.Get("/pembeli/profile", h.Profile)

	// Admin
	r.Route("/admin", func(r chi.Router) {
		r.Get("/", h.Dashboard)
		r.Get("/data-tiket", h.AdminTickets)
		r.Post("/data-tiket", h.SaveTicket)
		r.Post("/data-tiket/{id}/hapus", h.DeleteTicket)
		r.Get("/data-koleksi", h.AdminVenues)
		r.Post("/data-koleksi", h.SaveVenue)
		r.Post("/data-koleksi/{id}/hapus", h.DeleteVenue)
		r.Get("/data-pemesanan", h.AdminOrders)
		r.Post("/data-pemesanan/{id}/status", h.UpdateOrderStatus)
		r.Get("/data-pemesanan/{id}/tiket", h.DownloadOrderTicket)
		r.Get("/data-pemesanan/{id}/pass", h.OrderPass)
	})

	return r
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.LogRequest(r.Method, r.URL.Path, ww.Status(), time.Since(start))
		})
	}
}
