package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *BlogModel) insert(ctx context.Context, title, content string, userID int) (int, error) {
	query := `
		INSERT INTO blogs (title, content, user_id)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int
	err := m.db.QueryRowContext(ctx, query, title, content, userID).Scan(&id)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_user_id_fkey"):
			return 0, ErrUserForeignKey
		default:
			return 0, err
		}
	}

	return id, nil
}

// getBlogByID joins the users table for the author's public fields.
func (m *BlogModel) getBlogByID(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT b.id, b.title, b.content, b.created_at, b.updated_at, u.id, u.name
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	var blog Blog
	err := row.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.CreatedAt, &blog.UpdatedAt, &blog.Author.ID, &blog.Author.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

// updateBlog overwrites only the supplied fields; a nil field keeps the
// stored value.
func (m *BlogModel) updateBlog(ctx context.Context, id int, title, content *string) error {
	query := `
		UPDATE blogs
		SET title = COALESCE($1, title), content = COALESCE($2, content), updated_at = now()
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

func (m *BlogModel) deleteBlog(ctx context.Context, blogID, userID int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND user_id = $2`

	res, err := m.db.ExecContext(ctx, query, blogID, userID)
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

// getBlogs returns one page of blogs, newest first, together with the total
// row count the page arithmetic needs.
func (m *BlogModel) getBlogs(ctx context.Context, limit, offset int) ([]Blog, int, error) {
	query := `
		SELECT count(*) OVER(), b.id, b.title, b.content, b.created_at, b.updated_at, u.id, u.name
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $1 OFFSET $2`

	return m.queryBlogPage(ctx, query, limit, offset)
}

func (m *BlogModel) getBlogsByAuthor(ctx context.Context, authorID, limit, offset int) ([]Blog, int, error) {
	query := `
		SELECT count(*) OVER(), b.id, b.title, b.content, b.created_at, b.updated_at, u.id, u.name
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2 OFFSET $3`

	return m.queryBlogPage(ctx, query, authorID, limit, offset)
}

func (m *BlogModel) getBlogsByTitle(ctx context.Context, title string, limit, offset int) ([]Blog, int, error) {
	query := `
		SELECT count(*) OVER(), b.id, b.title, b.content, b.created_at, b.updated_at, u.id, u.name
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.title ILIKE $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2 OFFSET $3`

	return m.queryBlogPage(ctx, query, "%"+title+"%", limit, offset)
}

// getSavedBlogs returns the blogs a user has saved, most recently saved
// first.
func (m *BlogModel) getSavedBlogs(ctx context.Context, userID, limit, offset int) ([]Blog, int, error) {
	query := `
		SELECT count(*) OVER(), b.id, b.title, b.content, b.created_at, b.updated_at, u.id, u.name
		FROM blog_saves s
		JOIN blogs b ON b.id = s.blog_id
		JOIN users u ON b.user_id = u.id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3`

	return m.queryBlogPage(ctx, query, userID, limit, offset)
}

func (m *BlogModel) queryBlogPage(ctx context.Context, query string, args ...any) ([]Blog, int, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	totalRows := 0
	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&totalRows, &blog.ID, &blog.Title, &blog.Content, &blog.CreatedAt, &blog.UpdatedAt, &blog.Author.ID, &blog.Author.Name)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return blogs, totalRows, nil
}

func (m *BlogModel) likeCount(ctx context.Context, blogID int) (int, error) {
	return m.counter(ctx, blogID, `SELECT like_count FROM blogs WHERE id = $1`)
}

func (m *BlogModel) saveCount(ctx context.Context, blogID int) (int, error) {
	return m.counter(ctx, blogID, `SELECT save_count FROM blogs WHERE id = $1`)
}

func (m *BlogModel) counter(ctx context.Context, blogID int, query string) (int, error) {
	var count int
	err := m.db.QueryRowContext(ctx, query, blogID).Scan(&count)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return count, nil
}
