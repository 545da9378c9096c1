package commentservice

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ishaangoyal/quickmark/internal/common"
)

func setupTestEnvironment(t *testing.T) (*CommentService, *sql.DB, func() error, int, int) {
	db := common.TestDB("file://../../migrations", t)

	var userID int
	err := db.QueryRow("INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id", "testuser", "testuser@example.com", []byte("x")).Scan(&userID)
	if err != nil {
		t.Fatalf("could not create test user: %v", err)
	}

	var blogID int
	err = db.QueryRow("INSERT INTO blogs (title, content, user_id) VALUES ($1, $2, $3) RETURNING id", "Test Blog", "This is a test blog.", userID).Scan(&blogID)
	if err != nil {
		t.Fatalf("could not create test blog: %v", err)
	}

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM comments")
		return err
	}

	return NewCommentService(db), db, cleanup, userID, blogID
}

func TestCreateComment(t *testing.T) {
	s, _, cleanup, userID, blogID := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		req         *CreateCommentRequest
		expectedErr error
	}{
		{
			name: "valid comment",
			req: &CreateCommentRequest{
				Title:   "Nice post",
				Content: "Really enjoyed reading this.",
				BlogID:  blogID,
				UserID:  userID,
			},
		},
		{
			name: "content too short",
			req: &CreateCommentRequest{
				Title:   "Nice post",
				Content: "short",
				BlogID:  blogID,
				UserID:  userID,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"content": "must be at least 10 characters long"}},
		},
		{
			name: "empty title",
			req: &CreateCommentRequest{
				Title:   "",
				Content: "Really enjoyed reading this.",
				BlogID:  blogID,
				UserID:  userID,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
		{
			name: "missing blog",
			req: &CreateCommentRequest{
				Title:   "Nice post",
				Content: "Really enjoyed reading this.",
				BlogID:  999999,
				UserID:  userID,
			},
			expectedErr: ErrBlogForeignKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			defer cleanup()

			id, err := s.CreateComment(context.Background(), tc.req)
			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr, err)
				return
			}

			assert.NoError(t, err)
			assert.Greater(t, id, 0)
		})
	}
}

func TestUpdateComment(t *testing.T) {
	s, _, cleanup, userID, blogID := setupTestEnvironment(t)
	defer cleanup()

	id, err := s.CreateComment(context.Background(), &CreateCommentRequest{
		Title:   "Original",
		Content: "Original comment body.",
		BlogID:  blogID,
		UserID:  userID,
	})
	assert.NoError(t, err)

	t.Run("update", func(t *testing.T) {
		err := s.UpdateComment(context.Background(), id, "Edited", "Edited comment body.")
		assert.NoError(t, err)

		comment, err := s.GetCommentByID(context.Background(), id)
		assert.NoError(t, err)
		assert.Equal(t, "Edited", comment.Title)
		assert.Equal(t, "Edited comment body.", comment.Content)
	})

	// the update path validates its input like every other operation
	t.Run("validation always runs", func(t *testing.T) {
		err := s.UpdateComment(context.Background(), id, "Edited", "short")
		assert.Equal(t, common.ValidationError{Errors: map[string]string{"content": "must be at least 10 characters long"}}, err)
	})

	t.Run("missing comment", func(t *testing.T) {
		err := s.UpdateComment(context.Background(), 999999, "Edited", "Edited comment body.")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestDeleteComment(t *testing.T) {
	s, _, cleanup, userID, blogID := setupTestEnvironment(t)
	defer cleanup()

	id, err := s.CreateComment(context.Background(), &CreateCommentRequest{
		Title:   "Doomed",
		Content: "This comment will be deleted.",
		BlogID:  blogID,
		UserID:  userID,
	})
	assert.NoError(t, err)

	err = s.DeleteComment(context.Background(), id)
	assert.NoError(t, err)

	_, err = s.GetCommentByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	err = s.DeleteComment(context.Background(), id)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestGetCommentsByBlog(t *testing.T) {
	s, db, cleanup, userID, blogID := setupTestEnvironment(t)
	defer cleanup()

	_, err := db.Exec(`
		INSERT INTO comments (title, content, user_id, blog_id, created_at)
		VALUES
			('First', 'The first comment here.', $1, $2, now() - interval '2 minutes'),
			('Second', 'The second comment here.', $1, $2, now() - interval '1 minute'),
			('Third', 'The third comment here.', $1, $2, now())`, userID, blogID)
	assert.NoError(t, err)

	comments, err := s.GetCommentsByBlog(context.Background(), blogID)
	assert.NoError(t, err)
	assert.Len(t, comments, 3)
	assert.Equal(t, "Third", comments[0].Title)
	assert.Equal(t, "First", comments[2].Title)

	empty, err := s.GetCommentsByBlog(context.Background(), 999999)
	assert.NoError(t, err)
	assert.Len(t, empty, 0)
}
