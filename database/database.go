package database

import (
	"gorm.io/gorm"

	"github.com/blogicum/backend/blog"
)

// Database bundles one store per entity. New wires gorm-backed repositories
// over a shared connection; NewMemory wires the in-memory stores used in
// tests and DB_TYPE=memory mode.
type Database struct {
	users      blog.UserStore
	categories blog.CategoryStore
	locations  blog.LocationStore
	posts      blog.PostStore
	comments   blog.CommentStore
}

// New initializes a Database with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		users:      NewUserRepo(db),
		categories: NewCategoryRepo(db),
		locations:  NewLocationRepo(db),
		posts:      NewPostRepo(db),
		comments:   NewCommentRepo(db),
	}
}

// NewMemory initializes a Database over a single in-memory store set.
func NewMemory() Database {
	m := NewMemoryStore()
	return Database{
		users:      m.Users(),
		categories: m.Categories(),
		locations:  m.Locations(),
		posts:      m.Posts(),
		comments:   m.Comments(),
	}
}

// Accessor methods for each store

func (d Database) Users() blog.UserStore {
	return d.users
}

func (d Database) Categories() blog.CategoryStore {
	return d.categories
}

func (d Database) Locations() blog.LocationStore {
	return d.locations
}

func (d Database) Posts() blog.PostStore {
	return d.posts
}

func (d Database) Comments() blog.CommentStore {
	return d.comments
}
