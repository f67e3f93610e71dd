package models

import "time"

// ReviewUser is the reviewer's public info embedded in a review.
type ReviewUser struct {
	FullName string `json:"fullName"`
}

// Review is a visitor review with a 1-5 score. Each authenticated user may
// hold at most one review; the backend enforces that.
type Review struct {
	ID        int        `json:"id"`
	UserID    int        `json:"userId"`
	Score     int        `json:"score"`
	Comment   string     `json:"comment"`
	UpdatedAt time.Time  `json:"updatedAt"`
	User      ReviewUser `json:"user"`
}
