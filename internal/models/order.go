package models

import "time"

// AttendanceStatus describes whether a ticket holder has checked in.
type AttendanceStatus string

const (
	StatusNotArrived AttendanceStatus = "NOT_ARRIVED"
	StatusArrived    AttendanceStatus = "ARRIVED"
	StatusExpired    AttendanceStatus = "EXPIRED"
	StatusCancelled  AttendanceStatus = "CANCELLED"
)

// OrderItem is one ticket-type line of an order.
type OrderItem struct {
	Ticket      Ticket  `json:"ticket"`
	Quantity    int     `json:"quantity"`
	TicketPrice float64 `json:"ticketPrice"`
}

// Order is a visitor booking as returned by the backend.
type Order struct {
	ID               int              `json:"id"`
	OrderCode        string           `json:"orderCode"`
	VisitorName      string           `json:"visitorName"`
	VisitDate        Date             `json:"visitDate"`
	AttendanceStatus AttendanceStatus `json:"attendanceStatus"`
	OrderItems       []OrderItem      `json:"orderItems"`
}

// EffectiveStatus derives the status shown to admins. An order still marked
// NOT_ARRIVED whose visit date has passed is displayed as EXPIRED; the backend
// record is not mutated.
func (o Order) EffectiveStatus(now time.Time) AttendanceStatus {
	if o.AttendanceStatus == StatusNotArrived && o.VisitDate.Time.Before(startOfDay(now)) {
		return StatusExpired
	}
	return o.AttendanceStatus
}

// IsTerminal reports whether a status blocks further mutation.
// EXPIRED and CANCELLED admit no confirm/cancel actions.
func (s AttendanceStatus) IsTerminal() bool {
	return s == StatusExpired || s == StatusCancelled
}

// CanUpdate reports whether the admin status action buttons apply.
// Only ARRIVED and CANCELLED may be set, and only from a non-terminal state.
func (o Order) CanUpdate(now time.Time) bool {
	return !o.EffectiveStatus(now).IsTerminal()
}

// TotalPrice sums quantity times the price captured at purchase time.
func (o Order) TotalPrice() float64 {
	var total float64
	for _, item := range o.OrderItems {
		total += float64(item.Quantity) * item.TicketPrice
	}
	return total
}

// TotalQuantity sums the ticket count across all lines.
func (o Order) TotalQuantity() int {
	var total int
	for _, item := range o.OrderItems {
		total += item.Quantity
	}
	return total
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
