package database

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blogicum/backend/blog"
	"github.com/blogicum/backend/models"
)

// MemoryStore is an in-memory store set sharing one lock and one map per
// entity. It mirrors the relational schema's referential behavior: deleting
// a category or location nulls the reference on posts, deleting a post
// removes its comments, deleting a user removes their posts and comments.
// Missing rows surface as gorm.ErrRecordNotFound so callers handle both
// backends the same way.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]models.User
	categories map[uuid.UUID]models.Category
	locations  map[uuid.UUID]models.Location
	posts      map[uuid.UUID]models.Post
	comments   map[uuid.UUID]models.Comment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[uuid.UUID]models.User),
		categories: make(map[uuid.UUID]models.Category),
		locations:  make(map[uuid.UUID]models.Location),
		posts:      make(map[uuid.UUID]models.Post),
		comments:   make(map[uuid.UUID]models.Comment),
	}
}

func (m *MemoryStore) Users() blog.UserStore          { return &memoryUserStore{m} }
func (m *MemoryStore) Categories() blog.CategoryStore { return &memoryCategoryStore{m} }
func (m *MemoryStore) Locations() blog.LocationStore  { return &memoryLocationStore{m} }
func (m *MemoryStore) Posts() blog.PostStore          { return &memoryPostStore{m} }
func (m *MemoryStore) Comments() blog.CommentStore    { return &memoryCommentStore{m} }

// resolvePost returns a copy of a stored post with its relations attached
// and its comment count computed. Callers must hold at least a read lock.
func (m *MemoryStore) resolvePost(stored models.Post) *models.Post {
	post := stored
	if author, ok := m.users[post.AuthorID]; ok {
		post.Author = &author
	}
	if post.CategoryID != nil {
		if category, ok := m.categories[*post.CategoryID]; ok {
			post.Category = &category
		}
	}
	if post.LocationID != nil {
		if location, ok := m.locations[*post.LocationID]; ok {
			post.Location = &location
		}
	}
	for _, comment := range m.comments {
		if comment.PostID == post.ID {
			post.CommentCount++
		}
	}
	return &post
}

type memoryUserStore struct{ m *MemoryStore }

func (s *memoryUserStore) Add(_ context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.m.users[user.ID] = *user
	return nil
}

func (s *memoryUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	if user, ok := s.m.users[id]; ok {
		return &user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memoryUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, user := range s.m.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memoryUserStore) Update(_ context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.m.users[user.ID] = *user
	return nil
}

func (s *memoryUserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.users, id)
	for postID, post := range s.m.posts {
		if post.AuthorID == id {
			delete(s.m.posts, postID)
			for commentID, comment := range s.m.comments {
				if comment.PostID == postID {
					delete(s.m.comments, commentID)
				}
			}
		}
	}
	for commentID, comment := range s.m.comments {
		if comment.AuthorID == id {
			delete(s.m.comments, commentID)
		}
	}
	return nil
}

type memoryCategoryStore struct{ m *MemoryStore }

func (s *memoryCategoryStore) Add(_ context.Context, category *models.Category) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	s.m.categories[category.ID] = *category
	return nil
}

func (s *memoryCategoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	if category, ok := s.m.categories[id]; ok {
		return &category, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memoryCategoryStore) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, category := range s.m.categories {
		if category.Slug == slug {
			return &category, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memoryCategoryStore) FindPublished(_ context.Context) ([]*models.Category, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var categories []*models.Category
	for _, category := range s.m.categories {
		if category.IsPublished {
			c := category
			categories = append(categories, &c)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		return strings.Compare(categories[i].Title, categories[j].Title) < 0
	})
	return categories, nil
}

func (s *memoryCategoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.categories, id)
	for postID, post := range s.m.posts {
		if post.CategoryID != nil && *post.CategoryID == id {
			post.CategoryID = nil
			s.m.posts[postID] = post
		}
	}
	return nil
}

type memoryLocationStore struct{ m *MemoryStore }

func (s *memoryLocationStore) Add(_ context.Context, location *models.Location) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	if location.CreatedAt.IsZero() {
		location.CreatedAt = time.Now().UTC()
	}
	s.m.locations[location.ID] = *location
	return nil
}

func (s *memoryLocationStore) FindByID(_ context.Context, id uuid.UUID) (*models.Location, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	if location, ok := s.m.locations[id]; ok {
		return &location, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memoryLocationStore) FindAll(_ context.Context) ([]*models.Location, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var locations []*models.Location
	for _, location := range s.m.locations {
		l := location
		locations = append(locations, &l)
	}
	sort.Slice(locations, func(i, j int) bool {
		return strings.Compare(locations[i].Name, locations[j].Name) < 0
	})
	return locations, nil
}

func (s *memoryLocationStore) Delete(_ context.Context, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.locations, id)
	for postID, post := range s.m.posts {
		if post.LocationID != nil && *post.LocationID == id {
			post.LocationID = nil
			s.m.posts[postID] = post
		}
	}
	return nil
}

type memoryPostStore struct{ m *MemoryStore }

func (s *memoryPostStore) Add(_ context.Context, post *models.Post) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	stored := *post
	stored.Author, stored.Category, stored.Location, stored.Comments = nil, nil, nil, nil
	stored.CommentCount = 0
	s.m.posts[post.ID] = stored
	return nil
}

func (s *memoryPostStore) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	stored, ok := s.m.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s.m.resolvePost(stored), nil
}

func (s *memoryPostStore) FindPage(_ context.Context, q blog.PostQuery) (*blog.PostPage, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var matched []*models.Post
	for _, stored := range s.m.posts {
		if q.AuthorID != nil && stored.AuthorID != *q.AuthorID {
			continue
		}
		if q.CategoryID != nil && (stored.CategoryID == nil || *stored.CategoryID != *q.CategoryID) {
			continue
		}
		post := s.m.resolvePost(stored)
		if !q.IncludeHidden && !blog.FullyPublic(post, q.Now) {
			continue
		}
		matched = append(matched, post)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PubDate.After(matched[j].PubDate)
	})

	total := len(matched)
	page, totalPages := blog.ClampPage(q.Page, total, blog.PostsPerPage)
	start := (page - 1) * blog.PostsPerPage
	end := start + blog.PostsPerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &blog.PostPage{
		Items:      matched[start:end],
		Number:     page,
		PerPage:    blog.PostsPerPage,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

func (s *memoryPostStore) Update(_ context.Context, post *models.Post) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.posts[post.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	// CommentCount is a read-side annotation; storing it would double the
	// count on the next resolve.
	stored := *post
	stored.Author, stored.Category, stored.Location, stored.Comments = nil, nil, nil, nil
	stored.CommentCount = 0
	s.m.posts[post.ID] = stored
	return nil
}

func (s *memoryPostStore) Delete(_ context.Context, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.posts, id)
	for commentID, comment := range s.m.comments {
		if comment.PostID == id {
			delete(s.m.comments, commentID)
		}
	}
	return nil
}

type memoryCommentStore struct{ m *MemoryStore }

func (s *memoryCommentStore) Add(_ context.Context, comment *models.Comment) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	stored := *comment
	stored.Author = nil
	s.m.comments[comment.ID] = stored
	return nil
}

func (s *memoryCommentStore) FindByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	if comment, ok := s.m.comments[id]; ok {
		return &comment, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memoryCommentStore) FindByPost(_ context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var comments []*models.Comment
	for _, comment := range s.m.comments {
		if comment.PostID != postID {
			continue
		}
		c := comment
		if author, ok := s.m.users[c.AuthorID]; ok {
			c.Author = &author
		}
		comments = append(comments, &c)
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *memoryCommentStore) Update(_ context.Context, comment *models.Comment) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *comment
	stored.Author = nil
	s.m.comments[comment.ID] = stored
	return nil
}

func (s *memoryCommentStore) Delete(_ context.Context, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.comments, id)
	return nil
}
