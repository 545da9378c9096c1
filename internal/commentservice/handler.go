package commentservice

import (
	"context"
	"database/sql"

	"github.com/ishaangoyal/quickmark/internal/common"
)

func NewCommentService(db *sql.DB) *CommentService {
	return &CommentService{m: newCommentModel(db)}
}

type CreateCommentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	BlogID  int    `json:"blog_id"`
	UserID  int    `json:"user_id"`
}

// CreateComment creates a comment on a blog and returns its id. Input is
// always validated; there is no unvalidated path.
func (s *CommentService) CreateComment(ctx context.Context, req *CreateCommentRequest) (int, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	validateID(v, req.BlogID, "blog_id")
	validateID(v, req.UserID, "user_id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	return s.m.insert(ctx, req.Title, req.Content, req.UserID, req.BlogID)
}

// GetCommentByID returns a comment by its ID. The app layer uses it for
// ownership checks before updates and deletes.
func (s *CommentService) GetCommentByID(ctx context.Context, id int) (*Comment, error) {
	v := common.NewValidator()
	validateID(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByID(ctx, id)
}

func (s *CommentService) UpdateComment(ctx context.Context, id int, title, content string) error {
	v := common.NewValidator()
	validateID(v, id, "id")
	validateTitle(v, title)
	validateContent(v, content)
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.update(ctx, id, title, content)
}

func (s *CommentService) DeleteComment(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateID(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.delete(ctx, id)
}

// GetCommentsByBlog returns all comments on a blog, newest first.
func (s *CommentService) GetCommentsByBlog(ctx context.Context, blogID int) ([]Comment, error) {
	v := common.NewValidator()
	validateID(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.listByBlog(ctx, blogID)
}
