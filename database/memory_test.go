package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/blogicum/backend/blog"
	"github.com/blogicum/backend/models"
)

func seedUser(t *testing.T, store *MemoryStore, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, store.Users().Add(context.Background(), user))
	return user
}

func seedPost(t *testing.T, store *MemoryStore, author *models.User, mutate func(*models.Post)) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       "post",
		Text:        "text",
		PubDate:     time.Now().UTC().Add(-time.Hour),
		AuthorID:    author.ID,
		IsPublished: true,
	}
	if mutate != nil {
		mutate(post)
	}
	require.NoError(t, store.Posts().Add(context.Background(), post))
	return post
}

func TestCategoryDeleteNullsPostReference(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	author := seedUser(t, store, "alice")

	category := &models.Category{Title: "Travel", Slug: "travel", IsPublished: true}
	require.NoError(t, store.Categories().Add(ctx, category))
	post := seedPost(t, store, author, func(p *models.Post) { p.CategoryID = &category.ID })

	require.NoError(t, store.Categories().Delete(ctx, category.ID))

	// The post survives with a null category.
	reloaded, err := store.Posts().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CategoryID)
}

func TestLocationDeleteNullsPostReference(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	author := seedUser(t, store, "alice")

	location := &models.Location{Name: "Riga", IsPublished: true}
	require.NoError(t, store.Locations().Add(ctx, location))
	post := seedPost(t, store, author, func(p *models.Post) { p.LocationID = &location.ID })

	require.NoError(t, store.Locations().Delete(ctx, location.ID))

	reloaded, err := store.Posts().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.LocationID)
}

func TestPostDeleteCascadesComments(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	author := seedUser(t, store, "alice")
	commenter := seedUser(t, store, "bob")
	post := seedPost(t, store, author, nil)

	comment := &models.Comment{PostID: post.ID, AuthorID: commenter.ID, Text: "hi"}
	require.NoError(t, store.Comments().Add(ctx, comment))

	require.NoError(t, store.Posts().Delete(ctx, post.ID))

	_, err := store.Comments().FindByID(ctx, comment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserDeleteCascadesPostsAndComments(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	alicePost := seedPost(t, store, alice, nil)
	bobPost := seedPost(t, store, bob, nil)

	aliceComment := &models.Comment{PostID: bobPost.ID, AuthorID: alice.ID, Text: "from alice"}
	require.NoError(t, store.Comments().Add(ctx, aliceComment))
	bobComment := &models.Comment{PostID: alicePost.ID, AuthorID: bob.ID, Text: "from bob"}
	require.NoError(t, store.Comments().Add(ctx, bobComment))

	require.NoError(t, store.Users().Delete(ctx, alice.ID))

	_, err := store.Posts().FindByID(ctx, alicePost.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Alice's comment on Bob's post is gone; Bob's comment died with
	// Alice's post.
	_, err = store.Comments().FindByID(ctx, aliceComment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = store.Comments().FindByID(ctx, bobComment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Bob's own post is untouched.
	_, err = store.Posts().FindByID(ctx, bobPost.ID)
	assert.NoError(t, err)
}

func TestFindPageFiltersHiddenPosts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	author := seedUser(t, store, "alice")
	now := time.Now().UTC()

	hiddenCategory := &models.Category{Title: "Drafts", Slug: "drafts", IsPublished: false}
	require.NoError(t, store.Categories().Add(ctx, hiddenCategory))

	visible := seedPost(t, store, author, nil)
	seedPost(t, store, author, func(p *models.Post) { p.IsPublished = false })
	seedPost(t, store, author, func(p *models.Post) { p.PubDate = now.Add(time.Hour) })
	seedPost(t, store, author, func(p *models.Post) { p.CategoryID = &hiddenCategory.ID })

	page, err := store.Posts().FindPage(ctx, blog.PostQuery{Now: now, Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, visible.ID, page.Items[0].ID)

	// The owner's profile feed includes everything.
	all, err := store.Posts().FindPage(ctx, blog.PostQuery{
		AuthorID:      &author.ID,
		IncludeHidden: true,
		Now:           now,
		Page:          1,
	})
	require.NoError(t, err)
	assert.Len(t, all.Items, 4)
}

func TestFindPageOrdersAndAnnotates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	author := seedUser(t, store, "alice")
	now := time.Now().UTC()

	older := seedPost(t, store, author, func(p *models.Post) { p.PubDate = now.Add(-2 * time.Hour) })
	newer := seedPost(t, store, author, func(p *models.Post) { p.PubDate = now.Add(-time.Hour) })

	require.NoError(t, store.Comments().Add(ctx, &models.Comment{PostID: older.ID, AuthorID: author.ID, Text: "one"}))
	require.NoError(t, store.Comments().Add(ctx, &models.Comment{PostID: older.ID, AuthorID: author.ID, Text: "two"}))

	page, err := store.Posts().FindPage(ctx, blog.PostQuery{Now: now, Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	// Newest publication first.
	assert.Equal(t, newer.ID, page.Items[0].ID)
	assert.Equal(t, older.ID, page.Items[1].ID)

	assert.Equal(t, int64(0), page.Items[0].CommentCount)
	assert.Equal(t, int64(2), page.Items[1].CommentCount)
}

func TestFindPageClampsOutOfRangePages(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	author := seedUser(t, store, "alice")
	now := time.Now().UTC()

	for i := 0; i < 25; i++ {
		seedPost(t, store, author, func(p *models.Post) {
			p.PubDate = now.Add(-time.Duration(i+1) * time.Minute)
		})
	}

	last, err := store.Posts().FindPage(ctx, blog.PostQuery{Now: now, Page: 99})
	require.NoError(t, err)
	assert.Equal(t, 3, last.Number)
	assert.Equal(t, 3, last.TotalPages)
	assert.Equal(t, 25, last.TotalItems)
	assert.Len(t, last.Items, 5)

	first, err := store.Posts().FindPage(ctx, blog.PostQuery{Now: now, Page: -1})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Number)
	assert.Len(t, first.Items, 10)
}

func TestFindPageByCategory(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	author := seedUser(t, store, "alice")
	now := time.Now().UTC()

	travel := &models.Category{Title: "Travel", Slug: "travel", IsPublished: true}
	require.NoError(t, store.Categories().Add(ctx, travel))

	inCategory := seedPost(t, store, author, func(p *models.Post) { p.CategoryID = &travel.ID })
	seedPost(t, store, author, nil)

	page, err := store.Posts().FindPage(ctx, blog.PostQuery{CategoryID: &travel.ID, Now: now, Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, inCategory.ID, page.Items[0].ID)
}

func TestUpdateKeepsCommentCountStable(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	author := seedUser(t, store, "alice")
	commenter := seedUser(t, store, "bob")
	post := seedPost(t, store, author, nil)

	comment := &models.Comment{PostID: post.ID, AuthorID: commenter.ID, Text: "hi"}
	require.NoError(t, store.Comments().Add(ctx, comment))

	// Load, edit, save: the same sequence the edit handler runs. The loaded
	// post carries the computed count; saving it back must not bake that
	// count into the stored row.
	loaded, err := store.Posts().FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), loaded.CommentCount)

	loaded.Title = "edited"
	require.NoError(t, store.Posts().Update(ctx, loaded))

	reloaded, err := store.Posts().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", reloaded.Title)
	assert.Equal(t, int64(1), reloaded.CommentCount)

	// A second round trip must not inflate it either.
	require.NoError(t, store.Posts().Update(ctx, reloaded))
	again, err := store.Posts().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.CommentCount)
}

func TestMemoryDatabaseWiring(t *testing.T) {
	db := NewMemory()
	ctx := context.Background()

	user := &models.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, db.Users().Add(ctx, user))

	found, err := db.Users().FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}
