package models

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a publication. A post may be scheduled by setting PubDate
// in the future; it stays hidden from everyone but its author until then.
type Post struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string     `json:"title" db:"title" gorm:"type:text;not null"`
	Text        string     `json:"text" db:"text" gorm:"type:text;not null"`
	PubDate     time.Time  `json:"pubDate" db:"pub_date" gorm:"type:timestamptz;not null"`
	AuthorID    uuid.UUID  `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty" db:"category_id" gorm:"type:uuid;index"`
	LocationID  *uuid.UUID `json:"locationId,omitempty" db:"location_id" gorm:"type:uuid"`
	ImageKey    *string    `json:"imageKey,omitempty" db:"image_key" gorm:"type:text"`
	IsPublished bool       `json:"isPublished" db:"is_published" gorm:"not null;default:true"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`

	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
	Location *Location `json:"location,omitempty" gorm:"foreignKey:LocationID;references:ID;constraint:OnDelete:SET NULL"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`

	// CommentCount is annotated by listing queries, never persisted.
	CommentCount int64 `json:"commentCount" gorm:"->;-:migration"`
}
