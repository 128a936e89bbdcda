package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Status is a post's moderation state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Post represents a submitted link awaiting or past a moderation decision.
// CommentCount is maintained externally and carried as an opaque integer.
type Post struct {
	ID           string     `json:"id" validate:"required"`
	Title        string     `json:"title" validate:"required,max=200"`
	Body         string     `json:"body,omitempty" validate:"omitempty,max=1000"`
	URL          string     `json:"url,omitempty" validate:"omitempty,url"`
	AuthorID     string     `json:"author_id" validate:"required"`
	Status       Status     `json:"status" validate:"required,oneof=pending approved rejected"`
	VoteCount    int        `json:"vote_count"`
	CommentCount int        `json:"comment_count"`
	CreatedAt    time.Time  `json:"created_at" validate:"required"`
	ModeratorID  string     `json:"moderator_id,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
}

// Vote is one identity's signed endorsement of one post. A voter holds at
// most one vote per post; the pair (PostID, VoterID) is the vote's identity.
type Vote struct {
	PostID    string    `json:"post_id" validate:"required"`
	VoterID   string    `json:"voter_id" validate:"required"`
	Value     int       `json:"value" validate:"required,oneof=1 -1"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is an authenticated identity. IsAdmin is the sole input to the
// moderation-permission check.
type Profile struct {
	ID           string    `json:"id" validate:"required"`
	Username     string    `json:"username" validate:"required,min=2,max=50"`
	IsAdmin      bool      `json:"is_admin"`
	PasswordHash []byte    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
