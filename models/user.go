package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered author
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null;unique"`
	FirstName    string    `json:"firstName,omitempty" db:"first_name" gorm:"type:text"`
	LastName     string    `json:"lastName,omitempty" db:"last_name" gorm:"type:text"`
	Email        string    `json:"email,omitempty" db:"email" gorm:"type:text"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`

	Posts    []Post    `json:"posts,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}
