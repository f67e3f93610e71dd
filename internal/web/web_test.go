package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

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

// fakeBackend is an in-memory stand-in for the REST API, recording the
// requests it serves so tests can assert on what the site sent.
type fakeBackend struct {
	mu       sync.Mutex
	tickets  []models.Ticket
	venues   []models.Venue
	orders   []models.Order
	reviews  []models.Review
	requests []string

	failAll     bool
	rejectToken bool
	redirectURL string
}

func (f *fakeBackend) record(r *http.Request) {
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
}

func (f *fakeBackend) requestLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.requests...)
}

func (f *fakeBackend) handler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			f.record(r)
			failAll, reject := f.failAll, f.rejectToken
			f.mu.Unlock()
			if failAll {
				http.Error(w, `{"message":"backend down"}`, http.StatusInternalServerError)
				return
			}
			if reject && r.Header.Get("Authorization") != "" {
				http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	mux.Get("/api/ticket", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(f.tickets)
	})
	mux.Post("/api/ticket", func(w http.ResponseWriter, r *http.Request) {
		var input models.TicketInput
		json.NewDecoder(r.Body).Decode(&input)
		f.mu.Lock()
		defer f.mu.Unlock()
		created := models.Ticket{ID: len(f.tickets) + 1, Code: input.Code,
			Type: input.Type, Price: input.Price, Terms: input.Terms}
		f.tickets = append(f.tickets, created)
		json.NewEncoder(w).Encode(created)
	})
	mux.Put("/api/ticket/{id}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Ticket{})
	})
	mux.Delete("/api/ticket/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.Get("/api/venue", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(f.venues)
	})
	mux.Post("/api/venue", func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(10 << 20)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.venues = append(f.venues, models.Venue{ID: len(f.venues) + 1, Name: r.FormValue("name")})
		w.WriteHeader(http.StatusCreated)
	})
	mux.Delete("/api/venue/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.Get("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(f.orders)
	})
	mux.Put("/api/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Get("/api/orders/{id}/download-ticket", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-fake"))
	})

	mux.Get("/api/reviews", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(f.reviews)
	})
	mux.Post("/api/reviews/create", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	mux.Put("/api/reviews/update/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct{ Email, Password string }
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "rahasia" {
			http.Error(w, `{"message":"Email atau kata sandi salah."}`, http.StatusUnauthorized)
			return
		}
		role := session.RoleBuyer
		if strings.HasPrefix(creds.Email, "admin") {
			role = session.RoleAdmin
		}
		json.NewEncoder(w).Encode(map[string]string{
			"token": signedToken(nil, 7, creds.Email, role),
			"role":  role,
		})
	})
	mux.Post("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"userId": 42, "msg": "verifikasi dikirim"})
	})
	mux.Post("/api/auth/verify-email", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"msg": "Email berhasil diverifikasi."})
	})
	mux.Post("/api/auth/resend-verification", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"msg": "Kode dikirim."})
	})
	mux.Post("/api/auth/reset-password", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"msg": "Kata sandi diubah."})
	})

	mux.Post("/api/payments", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		url := f.redirectURL
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{"redirectUrl": url}})
	})

	return mux
}

func signedToken(t *testing.T, userID int, email, role string) string {
	claims := jwt.MapClaims{
		"id":       float64(userID),
		"fullName": "Test User",
		"email":    email,
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if t != nil {
		require.NoError(t, err)
	}
	return token
}

type fixture struct {
	backend *fakeBackend
	server  *httptest.Server
	router  http.Handler
	store   *session.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fb := &fakeBackend{redirectURL: "https://pay.example.com/checkout/abc"}
	srv := httptest.NewServer(fb.handler())
	t.Cleanup(srv.Close)

	log := logger.NewLogger()
	t.Cleanup(func() { log.Close() })

	cfg := config.Load()
	cfg.Backend.BaseURL = srv.URL
	cfg.Kafka.Enabled = false

	client := backend.New(cfg.Backend, log)
	store := session.NewStore("", 24*time.Hour)
	renderer, err := NewRenderer(log)
	require.NoError(t, err)

	producer := events.NewProducer(cfg.Kafka, log)
	handlers := NewHandlers(cfg, log, renderer, client,
		cache.New(nil, time.Minute, log),
		booking.NewService(client, producer, log),
		reviews.NewService(client, log),
		pass.NewGenerator("test-secret", "./missing-font.ttf"),
		producer, store)

	return &fixture{
		backend: fb,
		server:  srv,
		router:  NewRouter(handlers, store, log),
		store:   store,
	}
}

// get performs a request through the full router with an optional session.
func (f *fixture) do(t *testing.T, method, target, token string, form map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		values := url.Values{}
		for k, v := range form {
			values.Set(k, v)
		}
		req = httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: token})
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}
