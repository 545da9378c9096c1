package commentservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrBlogForeignKey = errors.New("blog_id does not exist")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newCommentModel(db *sql.DB) *CommentModel {
	return &CommentModel{db: db}
}

func foreignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503" && pqErr.Constraint == name
	}
	return false
}

func (m *CommentModel) insert(ctx context.Context, title, content string, userID, blogID int) (int, error) {
	query := `
		INSERT INTO comments (title, content, user_id, blog_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int
	err := m.db.QueryRowContext(ctx, query, title, content, userID, blogID).Scan(&id)
	if err != nil {
		switch {
		case foreignKeyError(err, "comments_blog_id_fkey"):
			return 0, ErrBlogForeignKey
		case foreignKeyError(err, "comments_user_id_fkey"):
			return 0, ErrUserForeignKey
		default:
			return 0, err
		}
	}

	return id, nil
}

func (m *CommentModel) getByID(ctx context.Context, id int) (*Comment, error) {
	query := `
		SELECT c.id, c.title, c.content, c.blog_id, c.created_at, c.updated_at, u.id, u.name
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.id = $1`

	var comment Comment
	err := m.db.QueryRowContext(ctx, query, id).Scan(&comment.ID, &comment.Title, &comment.Content, &comment.BlogID, &comment.CreatedAt, &comment.UpdatedAt, &comment.Author.ID, &comment.Author.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &comment, nil
}

func (m *CommentModel) update(ctx context.Context, id int, title, content string) error {
	query := `
		UPDATE comments
		SET title = $1, content = $2, updated_at = now()
		WHERE id = $3`

	res, err := m.db.ExecContext(ctx, query, title, content, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (m *CommentModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM comments
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// listByBlog returns all comments on a blog, newest first.
func (m *CommentModel) listByBlog(ctx context.Context, blogID int) ([]Comment, error) {
	query := `
		SELECT c.id, c.title, c.content, c.blog_id, c.created_at, c.updated_at, u.id, u.name
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.blog_id = $1
		ORDER BY c.created_at DESC, c.id DESC`

	rows, err := m.db.QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var comment Comment
		err := rows.Scan(&comment.ID, &comment.Title, &comment.Content, &comment.BlogID, &comment.CreatedAt, &comment.UpdatedAt, &comment.Author.ID, &comment.Author.Name)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
