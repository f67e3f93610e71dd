package backend

import (
	"context"
	"fmt"
	"net/http"

	"etiket-museum/internal/models"
)

func (c *Client) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus sets ARRIVED or CANCELLED on an order. EXPIRED is never
// written; it is derived locally from the visit date.
func (c *Client) UpdateOrderStatus(ctx context.Context, token string, id int, status models.AttendanceStatus) error {
	payload := struct {
		AttendanceStatus models.AttendanceStatus `json:"attendanceStatus"`
	}{AttendanceStatus: status}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", id), token, payload, nil)
}

// DownloadTicket fetches the backend-rendered ticket file for an order.
func (c *Client) DownloadTicket(ctx context.Context, token string, id int) ([]byte, string, error) {
	return c.doRaw(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d/download-ticket", id), token)
}
