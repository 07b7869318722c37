package blog_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogicum/backend/blog"
	"github.com/blogicum/backend/database"
	"github.com/blogicum/backend/errs"
	"github.com/blogicum/backend/models"
)

func TestNormalizePubDate(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dt   time.Time
		want time.Time
	}{
		{"exactly now snaps to now", now, now},
		{"30 seconds ahead snaps to now", now.Add(30 * time.Second), now},
		{"60 seconds ahead snaps to now", now.Add(60 * time.Second), now},
		{"61 seconds ahead is kept", now.Add(61 * time.Second), now.Add(61 * time.Second)},
		{"past date is kept", now.Add(-time.Hour), now.Add(-time.Hour)},
		{"far future is kept", now.Add(48 * time.Hour), now.Add(48 * time.Hour)},
		{"sub-second precision is dropped", now.Add(-time.Hour).Add(450 * time.Millisecond), now.Add(-time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, blog.NormalizePubDate(tt.dt, now))
		})
	}
}

func TestNormalizePubDateConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	dt := time.Date(2024, 5, 10, 10, 0, 0, 0, loc) // 07:00 UTC

	got := blog.NormalizePubDate(dt, now)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, time.Date(2024, 5, 10, 7, 0, 0, 0, time.UTC), got)
}

func TestPostFormValidate(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	store := database.NewMemoryStore()
	categories := store.Categories()

	published := &models.Category{Title: "Travel", Slug: "travel", IsPublished: true}
	require.NoError(t, categories.Add(ctx, published))
	hidden := &models.Category{Title: "Drafts", Slug: "drafts", IsPublished: false}
	require.NoError(t, categories.Add(ctx, hidden))

	valid := func() blog.PostForm {
		return blog.PostForm{Title: "A trip", Text: "We went places.", PubDate: now.Add(-time.Hour)}
	}

	t.Run("valid without category", func(t *testing.T) {
		form := valid()
		require.NoError(t, form.Validate(ctx, categories, now))
		assert.Nil(t, form.CategoryID)
	})

	t.Run("valid with published category", func(t *testing.T) {
		form := valid()
		form.CategoryID = &published.ID
		assert.NoError(t, form.Validate(ctx, categories, now))
	})

	t.Run("unpublished category fails", func(t *testing.T) {
		form := valid()
		form.CategoryID = &hidden.ID
		err := form.Validate(ctx, categories, now)
		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("unknown category fails", func(t *testing.T) {
		form := valid()
		ghost := uuid.New()
		form.CategoryID = &ghost
		assert.Error(t, form.Validate(ctx, categories, now))
	})

	t.Run("missing title fails", func(t *testing.T) {
		form := valid()
		form.Title = "   "
		assert.Error(t, form.Validate(ctx, categories, now))
	})

	t.Run("missing text fails", func(t *testing.T) {
		form := valid()
		form.Text = ""
		assert.Error(t, form.Validate(ctx, categories, now))
	})

	t.Run("missing pub_date fails", func(t *testing.T) {
		form := valid()
		form.PubDate = time.Time{}
		assert.Error(t, form.Validate(ctx, categories, now))
	})

	t.Run("near-future pub_date snaps during validation", func(t *testing.T) {
		form := valid()
		form.PubDate = now.Add(45 * time.Second)
		require.NoError(t, form.Validate(ctx, categories, now))
		assert.Equal(t, now.Truncate(time.Second), form.PubDate)
	})
}

func TestCommentFormValidate(t *testing.T) {
	form := blog.CommentForm{Text: "Nice one"}
	assert.NoError(t, form.Validate())

	empty := blog.CommentForm{Text: " \n\t"}
	err := empty.Validate()
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestRegistrationFormValidate(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	users := store.Users()
	require.NoError(t, users.Add(ctx, &models.User{Username: "taken", PasswordHash: "x"}))

	t.Run("valid", func(t *testing.T) {
		form := blog.RegistrationForm{Username: "fresh", Password: "secret"}
		assert.NoError(t, form.Validate(ctx, users))
	})

	t.Run("duplicate username fails", func(t *testing.T) {
		form := blog.RegistrationForm{Username: "taken", Password: "secret"}
		assert.Error(t, form.Validate(ctx, users))
	})

	t.Run("missing password fails", func(t *testing.T) {
		form := blog.RegistrationForm{Username: "fresh"}
		assert.Error(t, form.Validate(ctx, users))
	})
}

func TestProfileFormValidate(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	users := store.Users()
	require.NoError(t, users.Add(ctx, &models.User{Username: "alice", PasswordHash: "x"}))
	require.NoError(t, users.Add(ctx, &models.User{Username: "bob", PasswordHash: "x"}))

	t.Run("keeping own username is allowed", func(t *testing.T) {
		form := blog.ProfileForm{Username: "alice"}
		assert.NoError(t, form.Validate(ctx, users, "alice"))
	})

	t.Run("renaming to a free username is allowed", func(t *testing.T) {
		form := blog.ProfileForm{Username: "carol"}
		assert.NoError(t, form.Validate(ctx, users, "alice"))
	})

	t.Run("renaming onto another user fails", func(t *testing.T) {
		form := blog.ProfileForm{Username: "bob"}
		assert.Error(t, form.Validate(ctx, users, "alice"))
	})
}
