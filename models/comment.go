package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to a post; comments are listed oldest first
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	PostID    uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Text      string    `json:"text" db:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
}
