package blogservice

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ishaangoyal/quickmark/internal/common"
)

func strptr(s string) *string {
	return &s
}

func setupTestEnvironment(t *testing.T) (*BlogService, *sql.DB, func() error, int) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	var userID int
	err := db.QueryRow("INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id", "testuser", "testuser@example.com", []byte("x")).Scan(&userID)
	if err != nil {
		t.Fatalf("could not create test user: %v", err)
	}

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM blogs")
		if err != nil {
			return err
		}

		cache.Flush()

		return nil
	}

	return NewBlogService(db, cache), db, cleanup, userID
}

func createTestBlog(db *sql.DB, userID int, title string) (int, error) {
	var id int
	err := db.QueryRow("INSERT INTO blogs (title, content, user_id) VALUES ($1, $2, $3) RETURNING id", title, "This is a test blog.", userID).Scan(&id)
	return id, err
}

func TestCreateBlog(t *testing.T) {
	s, _, cleanup, userID := setupTestEnvironment(t)

	longTitle := ""
	for i := 0; i < 76; i++ {
		longTitle += "a"
	}

	testCases := []struct {
		name        string
		req         *CreateBlogRequest
		expectedErr error
	}{
		{
			name: "valid blog",
			req: &CreateBlogRequest{
				Title:   "Test Blog",
				Content: "This is a test blog.",
				UserID:  userID,
			},
		},
		{
			name: "empty title",
			req: &CreateBlogRequest{
				Title:   "",
				Content: "This is a test blog.",
				UserID:  userID,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
		{
			name: "title too long",
			req: &CreateBlogRequest{
				Title:   longTitle,
				Content: "This is a test blog.",
				UserID:  userID,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must not be more than 75 characters long"}},
		},
		{
			name: "empty content",
			req: &CreateBlogRequest{
				Title:   "Test Blog",
				Content: "",
				UserID:  userID,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"content": "must be provided"}},
		},
		{
			name: "unknown author",
			req: &CreateBlogRequest{
				Title:   "Test Blog",
				Content: "This is a test blog.",
				UserID:  999999,
			},
			expectedErr: ErrUserForeignKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			defer cleanup()

			id, err := s.CreateBlog(context.Background(), tc.req)
			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr, err)
				return
			}

			assert.NoError(t, err)
			assert.Greater(t, id, 0)
		})
	}
}

func TestCreateBlogSanitizesContent(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)
	defer cleanup()

	id, err := s.CreateBlog(context.Background(), &CreateBlogRequest{
		Title:   "Test Blog",
		Content: `hello <script>alert("xss")</script>world`,
		UserID:  userID,
	})
	assert.NoError(t, err)

	var content string
	err = db.QueryRow("SELECT content FROM blogs WHERE id = $1", id).Scan(&content)
	assert.NoError(t, err)
	assert.Equal(t, "hello world", content)
}

func TestGetBlogByID(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)
	defer cleanup()

	id, err := createTestBlog(db, userID, "Test Blog")
	assert.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		blog, err := s.GetBlogByID(context.Background(), id)
		assert.NoError(t, err)
		assert.Equal(t, "Test Blog", blog.Title)
		assert.Equal(t, userID, blog.Author.ID)
		assert.Equal(t, "testuser", *blog.Author.Name)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.GetBlogByID(context.Background(), 999999)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestUpdateBlog(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)
	defer cleanup()

	id, err := createTestBlog(db, userID, "Original Title")
	assert.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		err := s.UpdateBlog(context.Background(), id, strptr("New Title"), nil)
		assert.NoError(t, err)

		blog, err := s.GetBlogByID(context.Background(), id)
		assert.NoError(t, err)
		assert.Equal(t, "New Title", blog.Title)
		assert.Equal(t, "This is a test blog.", blog.Content)
	})

	t.Run("empty supplied field rejected", func(t *testing.T) {
		err := s.UpdateBlog(context.Background(), id, strptr(""), nil)
		assert.Equal(t, common.ValidationError{Errors: map[string]string{"title": "must be provided"}}, err)
	})

	t.Run("missing blog", func(t *testing.T) {
		err := s.UpdateBlog(context.Background(), 999999, strptr("Ghost"), nil)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestDeleteBlog(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)
	defer cleanup()

	id, err := createTestBlog(db, userID, "Doomed Blog")
	assert.NoError(t, err)

	t.Run("wrong owner", func(t *testing.T) {
		err := s.DeleteBlog(context.Background(), id, userID+1)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("owner deletes", func(t *testing.T) {
		err := s.DeleteBlog(context.Background(), id, userID)
		assert.NoError(t, err)

		_, err = s.GetBlogByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestGetBlogsPagination(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)
	defer cleanup()

	for i := 0; i < 25; i++ {
		_, err := createTestBlog(db, userID, fmt.Sprintf("Blog %02d", i))
		assert.NoError(t, err)
	}

	t.Run("first page with defaults", func(t *testing.T) {
		page, err := s.GetBlogs(context.Background(), 0, 0)
		assert.NoError(t, err)
		assert.Len(t, page.Blogs, 10)
		assert.Equal(t, 1, page.Metadata.Page)
		assert.Equal(t, 10, page.Metadata.Limit)
		assert.Equal(t, 25, page.Metadata.TotalRows)
		assert.Equal(t, 3, page.Metadata.TotalPages)
	})

	t.Run("last page is partial", func(t *testing.T) {
		page, err := s.GetBlogs(context.Background(), 3, 10)
		assert.NoError(t, err)
		assert.Len(t, page.Blogs, 5)
		assert.Equal(t, 3, page.Metadata.TotalPages)
	})

	t.Run("page beyond the end is empty", func(t *testing.T) {
		page, err := s.GetBlogs(context.Background(), 9, 10)
		assert.NoError(t, err)
		assert.Len(t, page.Blogs, 0)
		assert.Equal(t, 3, page.Metadata.TotalPages)
	})

	t.Run("total pages follows the limit", func(t *testing.T) {
		page, err := s.GetBlogs(context.Background(), 1, 7)
		assert.NoError(t, err)
		assert.Len(t, page.Blogs, 7)
		assert.Equal(t, 4, page.Metadata.TotalPages)
	})

	t.Run("newest first", func(t *testing.T) {
		page, err := s.GetBlogs(context.Background(), 1, 1)
		assert.NoError(t, err)
		assert.Len(t, page.Blogs, 1)
		assert.Equal(t, "Blog 24", page.Blogs[0].Title)
	})
}

func TestGetBlogsByAuthor(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)
	defer cleanup()

	var otherID int
	err := db.QueryRow("INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id", "other", "other@example.com", []byte("x")).Scan(&otherID)
	assert.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := createTestBlog(db, userID, fmt.Sprintf("Mine %d", i))
		assert.NoError(t, err)
	}
	_, err = createTestBlog(db, otherID, "Theirs")
	assert.NoError(t, err)

	page, err := s.GetBlogsByAuthor(context.Background(), userID, 1, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Blogs, 3)
	assert.Equal(t, 3, page.Metadata.TotalRows)
	for _, b := range page.Blogs {
		assert.Equal(t, userID, b.Author.ID)
	}
}

func TestSearchBlogs(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)
	defer cleanup()

	_, err := createTestBlog(db, userID, "Cooking with Go")
	assert.NoError(t, err)
	_, err = createTestBlog(db, userID, "Gardening basics")
	assert.NoError(t, err)

	page, err := s.SearchBlogs(context.Background(), "cooking", 1, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Blogs, 1)
	assert.Equal(t, "Cooking with Go", page.Blogs[0].Title)

	_, err = s.SearchBlogs(context.Background(), "", 1, 10)
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"q": "must be provided"}}, err)
}

func TestCounts(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)
	defer cleanup()

	id, err := createTestBlog(db, userID, "Counted Blog")
	assert.NoError(t, err)

	t.Run("fresh blog has zero counts", func(t *testing.T) {
		likes, err := s.LikeCount(context.Background(), id)
		assert.NoError(t, err)
		assert.Equal(t, 0, likes)

		saves, err := s.SaveCount(context.Background(), id)
		assert.NoError(t, err)
		assert.Equal(t, 0, saves)
	})

	t.Run("missing blog is not found", func(t *testing.T) {
		_, err := s.LikeCount(context.Background(), 999999)
		assert.ErrorIs(t, err, ErrRecordNotFound)

		_, err = s.SaveCount(context.Background(), 999999)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestGetSavedBlogs(t *testing.T) {
	s, db, cleanup, userID := setupTestEnvironment(t)
	defer cleanup()

	first, err := createTestBlog(db, userID, "First Saved")
	assert.NoError(t, err)
	second, err := createTestBlog(db, userID, "Second Saved")
	assert.NoError(t, err)
	_, err = createTestBlog(db, userID, "Never Saved")
	assert.NoError(t, err)

	_, err = db.Exec("INSERT INTO blog_saves (user_id, blog_id, created_at) VALUES ($1, $2, now() - interval '1 minute'), ($1, $3, now())", userID, first, second)
	assert.NoError(t, err)

	page, err := s.GetSavedBlogs(context.Background(), userID, 1, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Blogs, 2)
	assert.Equal(t, "Second Saved", page.Blogs[0].Title)
	assert.Equal(t, "First Saved", page.Blogs[1].Title)
}
