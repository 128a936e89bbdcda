package models

import (
	"time"

	"github.com/google/uuid"
)

// Validate checks if the profile meets all validation requirements
func (p *Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return asValidationError(err)
	}
	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Profile) BeforeCreate() {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
}
