package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etiket-museum/internal/config"
	"etiket-museum/internal/logger"
	"etiket-museum/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logger.NewLogger()
	t.Cleanup(log.Close)

	client := New(config.BackendConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, log)
	return client, server
}

// fakeTicketBackend is an in-memory stand-in for the ticket endpoints.
type fakeTicketBackend struct {
	mu      sync.Mutex
	tickets []models.Ticket
	nextID  int
}

func (f *fakeTicketBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("Authorization") == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		json.NewEncoder(w).Encode(f.tickets)
	case http.MethodPost:
		var input models.TicketInput
		json.NewDecoder(r.Body).Decode(&input)
		f.nextID++
		ticket := models.Ticket{
			ID:        f.nextID,
			Code:      input.Code,
			Type:      input.Type,
			Price:     input.Price,
			CreatedAt: time.Now().UTC(),
		}
		f.tickets = append(f.tickets, ticket)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(ticket)
	}
}

func TestCreateTicketRoundTrip(t *testing.T) {
	fake := &fakeTicketBackend{}
	client, _ := newTestClient(t, fake)
	ctx := context.Background()

	input := models.TicketInput{Code: "TKT-DWS", Type: "Dewasa", Price: 10000}
	created, err := client.CreateTicket(ctx, "admin-token", input)
	require.NoError(t, err)
	assert.Equal(t, "TKT-DWS", created.Code)

	tickets, err := client.ListTickets(ctx, "admin-token")
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, created.ID, tickets[0].ID)
	assert.Equal(t, input.Type, tickets[0].Type)
	assert.Equal(t, input.Price, tickets[0].Price)
}

func TestUnauthorizedMapsToErrSessionExpired(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.ListOrders(context.Background(), "stale-token")
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestErrorEnvelopeDecoding(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "kode tiket sudah dipakai"})
	}))

	_, err := client.CreateTicket(context.Background(), "t", models.TicketInput{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "kode tiket sudah dipakai", apiErr.Message)
}

func TestBearerTokenInjection(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Order{})
	}))

	_, err := client.ListOrders(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestInitiatePayment(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req PaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 7, req.UserID)
		assert.Equal(t, "2026-10-01", req.VisitDate)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"redirectUrl": "https://app.midtrans.com/snap/v3/abc"},
		})
	}))

	url, err := client.InitiatePayment(context.Background(), "tok", PaymentRequest{
		UserID:     7,
		TicketList: []TicketSelection{{TicketID: 1, Quantity: 2}},
		VisitDate:  "2026-10-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://app.midtrans.com/snap/v3/abc", url)
}

func TestInitiatePayment_MissingRedirectURL(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]string{}})
	}))

	_, err := client.InitiatePayment(context.Background(), "tok", PaymentRequest{UserID: 1})
	assert.ErrorIs(t, err, ErrNoRedirectURL)
}

func TestListReviews_AcceptsBothShapes(t *testing.T) {
	array, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Review{{ID: 1, Score: 5}})
	}))
	reviews, err := array.ListReviews(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Score)

	wrapped, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"reviews": []models.Review{{ID: 2, Score: 4}},
		})
	}))
	reviews, err = wrapped.ListReviews(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Score)
}

func TestUpdateOrderStatus(t *testing.T) {
	var gotPath, gotBody string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		gotBody = payload["attendanceStatus"]
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))

	err := client.UpdateOrderStatus(context.Background(), "tok", 12, models.StatusArrived)
	require.NoError(t, err)
	assert.Equal(t, "/api/orders/12/status", gotPath)
	assert.Equal(t, "ARRIVED", gotBody)
}

func TestVenueMultipartUpload(t *testing.T) {
	var gotName, gotYear, gotFile string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotName = r.FormValue("name")
		gotYear = r.FormValue("year")
		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		gotFile = header.Filename
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))

	err := client.CreateVenue(context.Background(), "tok", models.VenueInput{
		Name:      "Kain Tapis",
		Year:      1890,
		PhotoName: "tapis.jpg",
		Photo:     []byte{0xFF, 0xD8, 0xFF},
	})
	require.NoError(t, err)
	assert.Equal(t, "Kain Tapis", gotName)
	assert.Equal(t, "1890", gotYear)
	assert.Equal(t, "tapis.jpg", gotFile)
}
