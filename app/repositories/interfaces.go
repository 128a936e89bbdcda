package repositories

import (
	"time"

	"linkboard/app/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	Insert(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	// UpdateStatus applies a moderation decision. The pending check runs
	// inside the store transaction, so racing moderators get one winner and
	// one ErrInvalidTransition.
	UpdateStatus(id string, status models.Status, moderatorID string, decidedAt time.Time) (*models.Post, error)
	// ListByStatus returns posts with the given status, newest first.
	ListByStatus(status models.Status) ([]*models.Post, error)
}

// CastResult is what a vote mutation settled on.
type CastResult struct {
	VoteCount int `json:"vote_count"` // post aggregate after the cast
	UserVote  int `json:"user_vote"`  // caller's net value, 0 after a toggle-off
}

// VoteRepository defines the interface for vote data access. Cast is the
// single atomic primitive: the vote row and the post's aggregate count change
// in one store transaction or not at all.
type VoteRepository interface {
	Get(postID, voterID string) (*models.Vote, error)
	// GetForPosts returns the voter's live vote values keyed by post ID,
	// reading all posts in one store round trip. Unvoted posts are absent.
	GetForPosts(postIDs []string, voterID string) (map[string]int, error)
	ListByPost(postID string) ([]*models.Vote, error)
	Cast(postID, voterID string, value int) (*CastResult, error)
}

// ProfileRepository defines the interface for identity data access
type ProfileRepository interface {
	Insert(profile *models.Profile) error
	GetByID(id string) (*models.Profile, error)
	GetByUsername(username string) (*models.Profile, error)
	Update(profile *models.Profile) error
}

// SessionRepository maps opaque bearer tokens to profile IDs.
type SessionRepository interface {
	Create(token, profileID string) error
	GetProfileID(token string) (string, error)
	Delete(token string) error
}
