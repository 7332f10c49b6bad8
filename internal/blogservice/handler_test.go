package blogservice

import (
	"context"
	"crypto/rand"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/krn-hov/Blog-List-App/internal/common"
)

// setupTestUser is a helper function to create a test user in the database.
func setupTestUser(db *sql.DB, username, email string) (*int, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (username, name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int
	err = db.QueryRow(query, username, "Test User", email, randomBytes).Scan(&id)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

func setupTestEnvironment(t *testing.T) (*BlogService, *sql.DB, func() error, *int, error) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	id, err := setupTestUser(db, "testuser", "testuser@example.com")
	if err != nil {
		return nil, nil, nil, nil, err
	}

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM blogs")
		if err != nil {
			return err
		}

		cache.Flush()

		return nil
	}

	return NewBlogService(db, cache), db, cleanup, id, nil
}

func createRandomBlog(db *sql.DB, userID int) (*int, error) {
	query := `
		INSERT INTO blogs (title, author, url, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int
	err := db.QueryRow(query, "Test Blog", "Test Author", "https://example.com/", 3, userID).Scan(&id)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

func intptr(i int) *int {
	return &i
}

func TestCreateBlog(t *testing.T) {
	s, db, cleanup, userID, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	testCases := []struct {
		name        string
		req         *CreateBlogRequest
		wantLikes   int
		expectedErr error
	}{
		{
			name: "valid blog",
			req: &CreateBlogRequest{
				Title:  "React sequences",
				Author: "Michael Ban",
				URL:    "https://reactsequences.com/",
				Likes:  intptr(6),
				UserID: *userID,
			},
			wantLikes: 6,
		},
		{
			name: "likes default to zero",
			req: &CreateBlogRequest{
				Title:  "AI in the future",
				Author: "albert",
				URL:    "https://ai.com/",
				UserID: *userID,
			},
			wantLikes: 0,
		},
		{
			name: "author is optional",
			req: &CreateBlogRequest{
				Title:  "Anonymous thoughts",
				URL:    "https://anon.example.com/",
				UserID: *userID,
			},
			wantLikes: 0,
		},
		{
			name: "missing title",
			req: &CreateBlogRequest{
				Author: "albert",
				URL:    "https://ai.com/",
				UserID: *userID,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
		{
			name: "missing url",
			req: &CreateBlogRequest{
				Title:  "AI in the future",
				Author: "albert",
				UserID: *userID,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"url": "must be provided"}},
		},
		{
			name: "negative likes",
			req: &CreateBlogRequest{
				Title:  "AI in the future",
				URL:    "https://ai.com/",
				Likes:  intptr(-1),
				UserID: *userID,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"likes": "must not be negative"}},
		},
		{
			name: "missing user ID",
			req: &CreateBlogRequest{
				Title: "AI in the future",
				URL:   "https://ai.com/",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"user_id": "must be greater than zero"}},
		},
		{
			name: "unknown user ID",
			req: &CreateBlogRequest{
				Title:  "AI in the future",
				URL:    "https://ai.com/",
				UserID: 999,
			},
			expectedErr: ErrUserForeignKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			blog, err := s.CreateBlog(ctx, tc.req)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.NotZero(t, blog.ID)
				assert.Equal(t, tc.req.Title, blog.Title)
				assert.Equal(t, tc.req.Author, blog.Author)
				assert.Equal(t, tc.req.URL, blog.URL)
				assert.Equal(t, tc.wantLikes, blog.Likes)
				assert.Equal(t, *userID, blog.User.ID)
				assert.Equal(t, "testuser", blog.User.Username)

				var count int
				err := db.QueryRow("SELECT COUNT(*) FROM blogs").Scan(&count)
				assert.NoError(t, err)
				assert.Equal(t, 1, count)
			}

			t.Cleanup(func() {
				err := cleanup()
				assert.NoError(t, err)
			})
		})
	}
}

func TestGetBlogByID(t *testing.T) {
	s, db, cleanup, userID, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	blogID, err := createRandomBlog(db, *userID)
	assert.NoError(t, err)

	testCases := []struct {
		name        string
		id          int
		expectedErr error
	}{
		{name: "valid ID", id: *blogID},
		{name: "unknown ID", id: 999, expectedErr: ErrRecordNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			blog, err := s.GetBlogByID(ctx, tc.id)
			if tc.expectedErr != nil {
				assert.Nil(t, blog)
				assert.Equal(t, tc.expectedErr, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Test Blog", blog.Title)
				assert.Equal(t, "Test Author", blog.Author)
				assert.Equal(t, "https://example.com/", blog.URL)
				assert.Equal(t, 3, blog.Likes)
				assert.Equal(t, "testuser", blog.User.Username)
			}
		})
	}

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestGetBlogs(t *testing.T) {
	s, db, cleanup, userID, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	_, err = createRandomBlog(db, *userID)
	assert.NoError(t, err)
	_, err = createRandomBlog(db, *userID)
	assert.NoError(t, err)

	ctx := context.Background()

	blogs, err := s.GetBlogs(ctx)
	assert.NoError(t, err)
	assert.Len(t, blogs, 2)
	for _, blog := range blogs {
		assert.NotZero(t, blog.ID)
		assert.Equal(t, "testuser", blog.User.Username)
	}

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestUpdateBlog(t *testing.T) {
	s, db, cleanup, userID, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	blogID, err := createRandomBlog(db, *userID)
	assert.NoError(t, err)

	testCases := []struct {
		name        string
		req         *UpdateBlogRequest
		expectedErr error
	}{
		{
			name: "replaces every mutable field",
			req: &UpdateBlogRequest{
				ID:     *blogID,
				Title:  "AI in the future",
				Author: "albert",
				URL:    "https://ai.com/",
				Likes:  intptr(10),
			},
		},
		{
			name: "unknown ID",
			req: &UpdateBlogRequest{
				ID:     999,
				Title:  "AI in the future",
				Author: "albert",
				URL:    "https://ai.com/",
				Likes:  intptr(10),
			},
			expectedErr: ErrRecordNotFound,
		},
		{
			name: "missing title",
			req: &UpdateBlogRequest{
				ID:  *blogID,
				URL: "https://ai.com/",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			blog, err := s.UpdateBlog(ctx, tc.req)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.Equal(t, tc.req.Title, blog.Title)
				assert.Equal(t, tc.req.Author, blog.Author)
				assert.Equal(t, tc.req.URL, blog.URL)
				assert.Equal(t, *tc.req.Likes, blog.Likes)
			}
		})
	}

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestDeleteBlog(t *testing.T) {
	s, db, cleanup, userID, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	blogID, err := createRandomBlog(db, *userID)
	assert.NoError(t, err)

	ctx := context.Background()

	err = s.DeleteBlog(ctx, *blogID, *userID)
	assert.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM blogs").Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	// deleting the same id again fails the same way, with no state change
	err = s.DeleteBlog(ctx, *blogID, *userID)
	assert.Equal(t, ErrRecordNotFound, err)

	err = s.DeleteBlog(ctx, *blogID, *userID)
	assert.Equal(t, ErrRecordNotFound, err)

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}

func TestGetBlogsByUserID(t *testing.T) {
	s, db, cleanup, userID, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	otherID, err := setupTestUser(db, "otheruser", "otheruser@example.com")
	assert.NoError(t, err)

	_, err = createRandomBlog(db, *userID)
	assert.NoError(t, err)
	_, err = createRandomBlog(db, *userID)
	assert.NoError(t, err)

	ctx := context.Background()

	blogs, err := s.GetBlogsByUserID(ctx, *userID)
	assert.NoError(t, err)
	assert.Len(t, blogs, 2)

	blogs, err = s.GetBlogsByUserID(ctx, *otherID)
	assert.Equal(t, ErrRecordNotFound, err)
	assert.Nil(t, blogs)

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})
}
