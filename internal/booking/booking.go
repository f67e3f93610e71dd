package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"etiket-museum/internal/backend"
	"etiket-museum/internal/logger"
	"etiket-museum/internal/models"
	"etiket-museum/internal/session"
)

// Validation failures shown inline on the booking page.
var (
	ErrNotLoggedIn = errors.New("Silahkan login dulu.")
	ErrNoDate      = errors.New("Silakan pilih tanggal kunjungan.")
	ErrPastDate    = errors.New("Tanggal kunjungan sudah lewat.")
	ErrNoTickets   = errors.New("Silakan pilih minimal satu tiket.")
)

// Selection maps ticket type id to the chosen quantity.
type Selection map[int]int

// Set stores a quantity, clamped to zero. Negative input never lands.
func (s Selection) Set(ticketID, qty int) {
	if qty < 0 {
		qty = 0
	}
	s[ticketID] = qty
}

// Total is the number of tickets selected across all types.
func (s Selection) Total() int {
	var total int
	for _, qty := range s {
		total += qty
	}
	return total
}

// Subtotal is the sum of quantity times unit price over all ticket types.
func Subtotal(types []models.Ticket, sel Selection) float64 {
	var total float64
	for _, ticket := range types {
		total += float64(sel[ticket.ID]) * ticket.Price
	}
	return total
}

// ActivityPublisher receives activity events; satisfied by events.Producer.
type ActivityPublisher interface {
	Publish(eventType, actor, entity, entityID string)
}

// Service drives the payment initiation step of the booking flow.
type Service struct {
	Backend *backend.Client
	Events  ActivityPublisher
	Logger  *logger.Logger
}

func NewService(client *backend.Client, events ActivityPublisher, log *logger.Logger) *Service {
	return &Service{Backend: client, Events: events, Logger: log}
}

// Initiate validates the booking and asks the backend for a payment
// redirect URL. No request is sent unless a visit date is chosen, at least
// one ticket is selected and the session belongs to a buyer with a known
// id.
func (s *Service) Initiate(ctx context.Context, claims *session.Claims, token, visitDate string, types []models.Ticket, sel Selection) (string, error) {
	if token == "" || claims == nil || claims.Role != session.RoleBuyer {
		return "", ErrNotLoggedIn
	}
	if visitDate == "" {
		return "", ErrNoDate
	}
	visit, err := time.Parse("2006-01-02", visitDate)
	if err != nil {
		return "", ErrNoDate
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if visit.Before(today) {
		return "", ErrPastDate
	}
	if sel.Total() == 0 {
		return "", ErrNoTickets
	}
	if claims.UserID == 0 {
		return "", ErrNotLoggedIn
	}

	var ticketList []backend.TicketSelection
	for _, ticket := range types {
		if qty := sel[ticket.ID]; qty > 0 {
			ticketList = append(ticketList, backend.TicketSelection{TicketID: ticket.ID, Quantity: qty})
		}
	}

	s.Logger.Info("BOOKING", fmt.Sprintf("initiating payment: user=%d date=%s tickets=%d", claims.UserID, visitDate, sel.Total()))

	redirectURL, err := s.Backend.InitiatePayment(ctx, token, backend.PaymentRequest{
		UserID:     claims.UserID,
		TicketList: ticketList,
		VisitDate:  visitDate,
	})
	if err != nil {
		s.Logger.Error("BOOKING", fmt.Sprintf("payment initiation failed: %v", err))
		return "", err
	}

	if s.Events != nil {
		s.Events.Publish("payment.initiated", claims.Email, "booking", visitDate)
	}
	return redirectURL, nil
}
