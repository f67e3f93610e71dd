package models

import "time"

// Ticket is a purchasable ticket type managed from the admin back office.
// The backend owns its lifecycle; this service only renders and submits it.
type Ticket struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	Type      string    `json:"type"`
	Price     float64   `json:"price"`
	Terms     string    `json:"terms,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TicketInput is the payload for the ticket create/update forms.
type TicketInput struct {
	Code  string  `json:"code"`
	Type  string  `json:"type"`
	Price float64 `json:"price"`
	Terms string  `json:"terms,omitempty"`
}
