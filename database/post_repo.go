package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blogicum/backend/blog"
	"github.com/blogicum/backend/models"
)

const commentCountSelect = "posts.*, " +
	"(SELECT count(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// Add inserts a new post into the database
func (r *PostRepo) Add(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// FindByID returns a post with its author, category and location preloaded.
// Visibility is the caller's concern.
func (r *PostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Select(commentCountSelect).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindPage runs a filtered, ordered, paginated listing query. The visibility
// rule is part of the query itself, never applied to fetched rows.
func (r *PostRepo) FindPage(ctx context.Context, q blog.PostQuery) (*blog.PostPage, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{})
	if q.AuthorID != nil {
		base = base.Where("posts.author_id = ?", *q.AuthorID)
	}
	if q.CategoryID != nil {
		base = base.Where("posts.category_id = ?", *q.CategoryID)
	}
	if !q.IncludeHidden {
		base = base.
			Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published AND posts.pub_date <= ? AND (posts.category_id IS NULL OR categories.is_published)", q.Now)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}
	page, totalPages := blog.ClampPage(q.Page, int(total), blog.PostsPerPage)

	var posts []*models.Post
	err := base.
		Select(commentCountSelect).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Order("posts.pub_date DESC").
		Offset((page - 1) * blog.PostsPerPage).
		Limit(blog.PostsPerPage).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &blog.PostPage{
		Items:      posts,
		Number:     page,
		PerPage:    blog.PostsPerPage,
		TotalItems: int(total),
		TotalPages: totalPages,
	}, nil
}

// Update updates an existing post in the database
func (r *PostRepo) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes a post by id; its comments cascade at the schema level.
func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}
