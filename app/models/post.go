package models

import (
	"time"

	"github.com/google/uuid"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return asValidationError(err)
	}
	return nil
}

// BeforeCreate sets up the fields every fresh submission starts with
func (p *Post) BeforeCreate() {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.Status = StatusPending
	p.VoteCount = 0
	p.CommentCount = 0
	p.ModeratorID = ""
	p.DecidedAt = nil
}

// ApplyDecision moves a pending post to a terminal status and records who
// decided and when. Approved and rejected are terminal: a second decision
// fails with ErrInvalidTransition and changes nothing.
func (p *Post) ApplyDecision(decision Status, moderatorID string, now time.Time) error {
	if decision != StatusApproved && decision != StatusRejected {
		return &ValidationError{Field: "decision", Reason: "must be approved or rejected"}
	}
	if p.Status != StatusPending {
		return ErrInvalidTransition
	}
	p.Status = decision
	p.ModeratorID = moderatorID
	p.DecidedAt = &now
	return nil
}
