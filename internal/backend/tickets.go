package backend

import (
	"context"
	"fmt"
	"net/http"

	"etiket-museum/internal/models"
)

// ListTickets fetches all ticket types. The booking page reads this
// anonymously; the admin screen passes its bearer token.
func (c *Client) ListTickets(ctx context.Context, token string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := c.doJSON(ctx, http.MethodGet, "/api/ticket", token, nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (c *Client) CreateTicket(ctx context.Context, token string, input models.TicketInput) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := c.doJSON(ctx, http.MethodPost, "/api/ticket", token, input, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (c *Client) UpdateTicket(ctx context.Context, token string, id int, input models.TicketInput) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/ticket/%d", id), token, input, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (c *Client) DeleteTicket(ctx context.Context, token string, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/ticket/%d", id), token, nil, nil)
}
