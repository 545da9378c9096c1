package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound         = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("duplicate email")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("follow edge not found")
	ErrAlreadyLiked     = errors.New("blog already liked")
	ErrNotLiked         = errors.New("blog not liked")
	ErrAlreadySaved     = errors.New("blog already saved")
	ErrNotSaved         = errors.New("blog not saved")
	ErrBlogNotFound     = errors.New("blog not found")
)

func newUserModel(db *sql.DB) *UserModel {
	return &UserModel{db: db}
}

// uniqueViolation reports whether err is a violation of the named unique or
// primary key constraint.
func uniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == name
	}
	return false
}

// foreignKeyViolation reports whether err is a violation of the named
// foreign key constraint.
func foreignKeyViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503" && pqErr.Constraint == name
	}
	return false
}

func (m *UserModel) insert(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	args := []any{
		u.Name,
		u.Email,
		u.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		switch {
		case uniqueViolation(err, "users_email_key"):
			return ErrDuplicateEmail
		default:
			return err
		}
	}
	return nil
}

func (m *UserModel) getByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Password.hash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *UserModel) getByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.Password.hash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *UserModel) update(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at`

	args := []any{
		u.Name,
		u.Email,
		u.Password.hash,
		u.ID,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrNotFound
		case uniqueViolation(err, "users_email_key"):
			return ErrDuplicateEmail
		default:
			return err
		}
	}

	return nil
}

func (m *UserModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM users
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
		return ErrNotFound
	}

	return nil
}

func (m *UserModel) follow(ctx context.Context, followerID, followedID int) error {
	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)`

	_, err := m.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		switch {
		case uniqueViolation(err, "follows_pkey"):
			return ErrAlreadyFollowing
		case foreignKeyViolation(err, "follows_followed_id_fkey"):
			return ErrNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *UserModel) unfollow(ctx context.Context, followerID, followedID int) error {
	query := `
		DELETE FROM follows
		WHERE follower_id = $1 AND followed_id = $2`

	res, err := m.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFollowing
	}

	return nil
}

func (m *UserModel) countFollowers(ctx context.Context, userID int) (int, error) {
	query := `
		SELECT count(*)
		FROM follows
		WHERE followed_id = $1`

	var count int
	err := m.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// listFollowers returns the users holding an edge towards userID, newest
// follow first.
func (m *UserModel) listFollowers(ctx context.Context, userID int) ([]User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.created_at, u.updated_at
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followed_id = $1
		ORDER BY f.created_at DESC`

	return m.queryUsers(ctx, query, userID)
}

func (m *UserModel) listFollowing(ctx context.Context, userID int) ([]User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.created_at, u.updated_at
		FROM follows f
		JOIN users u ON u.id = f.followed_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC`

	return m.queryUsers(ctx, query, userID)
}

func (m *UserModel) queryUsers(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// like records the edge and bumps the denormalised counter on blogs inside
// one transaction. Either both rows change or neither does.
func (m *UserModel) like(ctx context.Context, userID, blogID int) error {
	return m.connectBlog(ctx, userID, blogID, "blog_likes", "like_count", ErrAlreadyLiked)
}

func (m *UserModel) unlike(ctx context.Context, userID, blogID int) error {
	return m.disconnectBlog(ctx, userID, blogID, "blog_likes", "like_count", ErrNotLiked)
}

func (m *UserModel) save(ctx context.Context, userID, blogID int) error {
	return m.connectBlog(ctx, userID, blogID, "blog_saves", "save_count", ErrAlreadySaved)
}

func (m *UserModel) unsave(ctx context.Context, userID, blogID int) error {
	return m.disconnectBlog(ctx, userID, blogID, "blog_saves", "save_count", ErrNotSaved)
}

func (m *UserModel) connectBlog(ctx context.Context, userID, blogID int, table, counter string, dupErr error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	insert := fmt.Sprintf(`INSERT INTO %s (user_id, blog_id) VALUES ($1, $2)`, table)

	_, err = tx.ExecContext(ctx, insert, userID, blogID)
	if err != nil {
		_ = tx.Rollback()
		switch {
		case uniqueViolation(err, table+"_pkey"):
			return dupErr
		case foreignKeyViolation(err, table+"_blog_id_fkey"):
			return ErrBlogNotFound
		default:
			return err
		}
	}

	update := fmt.Sprintf(`UPDATE blogs SET %s = %s + 1 WHERE id = $1`, counter, counter)

	res, err := tx.ExecContext(ctx, update, blogID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if rows != 1 {
		_ = tx.Rollback()
		return ErrBlogNotFound
	}

	return tx.Commit()
}

func (m *UserModel) disconnectBlog(ctx context.Context, userID, blogID int, table, counter string, missingErr error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	del := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND blog_id = $2`, table)

	res, err := tx.ExecContext(ctx, del, userID, blogID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if rows == 0 {
		_ = tx.Rollback()
		return missingErr
	}

	update := fmt.Sprintf(`UPDATE blogs SET %s = %s - 1 WHERE id = $1`, counter, counter)

	res, err = tx.ExecContext(ctx, update, blogID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	rows, err = res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if rows != 1 {
		_ = tx.Rollback()
		return ErrBlogNotFound
	}

	return tx.Commit()
}

func (m *UserModel) liked(ctx context.Context, userID, blogID int) (bool, error) {
	return m.blogConnected(ctx, userID, blogID, "blog_likes")
}

func (m *UserModel) saved(ctx context.Context, userID, blogID int) (bool, error) {
	return m.blogConnected(ctx, userID, blogID, "blog_saves")
}

func (m *UserModel) blogConnected(ctx context.Context, userID, blogID int, table string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = $1 AND blog_id = $2)`, table)

	var exists bool
	err := m.db.QueryRowContext(ctx, query, userID, blogID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}
