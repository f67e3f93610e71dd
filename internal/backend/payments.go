package backend

import (
	"context"
	"errors"
	"net/http"
)

// ErrNoRedirectURL means the payment provider accepted the request but the
// response carried no checkout URL to send the browser to.
var ErrNoRedirectURL = errors.New("payment redirect URL not found in response")

type TicketSelection struct {
	TicketID int `json:"ticketId"`
	Quantity int `json:"quantity"`
}

type PaymentRequest struct {
	UserID     int               `json:"userId"`
	TicketList []TicketSelection `json:"ticketList"`
	VisitDate  string            `json:"visitDate"`
}

// InitiatePayment submits a booking and returns the payment gateway URL
// the browser must be redirected to.
func (c *Client) InitiatePayment(ctx context.Context, token string, req PaymentRequest) (string, error) {
	var resp struct {
		Data struct {
			RedirectURL string `json:"redirectUrl"`
		} `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/payments", token, req, &resp); err != nil {
		return "", err
	}
	if resp.Data.RedirectURL == "" {
		return "", ErrNoRedirectURL
	}
	return resp.Data.RedirectURL, nil
}
