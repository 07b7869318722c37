package models

import (
	"time"

	"github.com/google/uuid"
)

// Location is an optional place reference for a post
type Location struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	IsPublished bool      `json:"isPublished" db:"is_published" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}
