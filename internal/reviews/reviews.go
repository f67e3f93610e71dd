// Package reviews backs the rating widget on the home page.
package reviews

import (
	"context"
	"fmt"

	"etiket-museum/internal/backend"
	"etiket-museum/internal/logger"
	"etiket-museum/internal/models"
	"etiket-museum/internal/session"
)

// Average is the unweighted mean of all fetched scores, 0 when there are
// no reviews to average.
func Average(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var total int
	for _, review := range reviews {
		total += review.Score
	}
	return float64(total) / float64(len(reviews))
}

// FindOwn returns the current user's review, or nil. One review per user
// is enforced server-side; locally we only need it to pick PUT over POST.
func FindOwn(all []models.Review, userID int) *models.Review {
	for i := range all {
		if all[i].UserID == userID {
			return &all[i]
		}
	}
	return nil
}

type Service struct {
	Backend *backend.Client
	Logger  *logger.Logger
}

func NewService(client *backend.Client, log *logger.Logger) *Service {
	return &Service{Backend: client, Logger: log}
}

// Submit creates the user's review, or updates it when one already exists.
func (s *Service) Submit(ctx context.Context, claims *session.Claims, token string, score int, comment string, existing []models.Review) error {
	if claims == nil || token == "" {
		return backend.ErrSessionExpired
	}
	if score < 1 || score > 5 {
		return fmt.Errorf("score must be between 1 and 5, got %d", score)
	}

	if own := FindOwn(existing, claims.UserID); own != nil {
		s.Logger.Info("REVIEW", fmt.Sprintf("updating review %d for user %d", own.ID, claims.UserID))
		return s.Backend.UpdateReview(ctx, token, own.ID, score, comment)
	}

	s.Logger.Info("REVIEW", fmt.Sprintf("creating review for user %d", claims.UserID))
	return s.Backend.CreateReview(ctx, token, score, comment)
}
