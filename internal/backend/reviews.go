package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"etiket-museum/internal/models"
)

type reviewPayload struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// ListReviews fetches all reviews. The backend has answered both with a
// bare array and with a {"reviews": [...]} wrapper, so both are accepted.
func (c *Client) ListReviews(ctx context.Context) ([]models.Review, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/reviews", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.LogBackend(http.MethodGet, "/api/reviews", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var reviews []models.Review
	if err := json.Unmarshal(body, &reviews); err == nil {
		return reviews, nil
	}

	var wrapped struct {
		Reviews []models.Review `json:"reviews"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode reviews response: %w", err)
	}
	return wrapped.Reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, token string, score int, comment string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/reviews/create", token, reviewPayload{score, comment}, nil)
}

func (c *Client) UpdateReview(ctx context.Context, token string, id, score int, comment string) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/reviews/update/%d", id), token, reviewPayload{score, comment}, nil)
}

func (c *Client) DeleteReview(ctx context.Context, token string, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", id), token, nil, nil)
}
