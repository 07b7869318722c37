package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups posts under a unique slug used in listing URLs
type Category struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string    `json:"title" db:"title" gorm:"type:text;not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:text;not null;unique"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null"`
	IsPublished bool      `json:"isPublished" db:"is_published" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}
