package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stamp assigns the identity and timestamps a new comment receives from the store.
func (c *Comment) Stamp(now time.Time) error {
	if c.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		c.ID = id.String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	return nil
}

// BeforeCreate is the gorm hook that stamps the comment before insertion.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	return c.Stamp(time.Now().UTC())
}
