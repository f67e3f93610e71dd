package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"etiket-museum/internal/models"
)

func (c *Client) ListVenues(ctx context.Context, token string) ([]models.Venue, error) {
	var venues []models.Venue
	if err := c.doJSON(ctx, http.MethodGet, "/api/venue", token, nil, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

func (c *Client) CreateVenue(ctx context.Context, token string, input models.VenueInput) error {
	return c.doMultipart(ctx, http.MethodPost, "/api/venue", token, venueFields(input), "photo", input.PhotoName, input.Photo, nil)
}

func (c *Client) UpdateVenue(ctx context.Context, token string, id int, input models.VenueInput) error {
	return c.doMultipart(ctx, http.MethodPut, fmt.Sprintf("/api/venue/%d", id), token, venueFields(input), "photo", input.PhotoName, input.Photo, nil)
}

func (c *Client) DeleteVenue(ctx context.Context, token string, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/venue/%d", id), token, nil, nil)
}

func venueFields(input models.VenueInput) map[string]string {
	return map[string]string{
		"name":        input.Name,
		"description": input.Description,
		"year":        strconv.Itoa(input.Year),
	}
}
