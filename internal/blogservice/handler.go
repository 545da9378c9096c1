package blogservice

import (
	"context"
	"database/sql"

	"github.com/ishaangoyal/quickmark/internal/common"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

type CreateBlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  int    `json:"user_id"`
}

// CreateBlog creates a new blog post and returns its id. The author is
// always the verified caller, never a field of the request body.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (int, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	validateID(v, req.UserID, "user_id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	return s.m.insert(ctx, req.Title, sanitizeContent(req.Content), req.UserID)
}

// GetBlogByID returns a blog post by its ID.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateID(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogByID(ctx, id)
}

// UpdateBlog overwrites only the supplied fields. Ownership is checked by
// the caller before this runs.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, title, content *string) error {
	v := common.NewValidator()
	validateID(v, id, "id")
	if title != nil {
		validateTitle(v, *title)
	}
	if content != nil {
		validateContent(v, *content)
	}
	if !v.Valid() {
		return v.ValidationError()
	}

	if content != nil {
		clean := sanitizeContent(*content)
		content = &clean
	}

	return s.m.updateBlog(ctx, id, title, content)
}

// DeleteBlog deletes a blog post owned by userID.
func (s *BlogService) DeleteBlog(ctx context.Context, blogID, userID int) error {
	v := common.NewValidator()
	validateID(v, blogID, "id")
	validateID(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.m.deleteBlog(ctx, blogID, userID)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyLikeCount(blogID))
	s.c.Delete(common.CacheKeySaveCount(blogID))

	return nil
}

// GetBlogs returns one page of the public listing, newest first.
func (s *BlogService) GetBlogs(ctx context.Context, page, limit int) (*BlogPage, error) {
	page, limit = normalizePage(page, limit)

	blogs, totalRows, err := s.m.getBlogs(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return newBlogPage(blogs, page, limit, totalRows), nil
}

// GetBlogsByAuthor returns one page of an author's blogs, newest first.
func (s *BlogService) GetBlogsByAuthor(ctx context.Context, authorID, page, limit int) (*BlogPage, error) {
	v := common.NewValidator()
	validateID(v, authorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	page, limit = normalizePage(page, limit)

	blogs, totalRows, err := s.m.getBlogsByAuthor(ctx, authorID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return newBlogPage(blogs, page, limit, totalRows), nil
}

// SearchBlogs returns one page of blogs whose title contains the query.
func (s *BlogService) SearchBlogs(ctx context.Context, title string, page, limit int) (*BlogPage, error) {
	v := common.NewValidator()
	v.Check(title != "", "q", "must be provided")
	v.Check(v.CheckMaxLength(title, maxTitleLength), "q", "must not be more than 75 characters long")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	page, limit = normalizePage(page, limit)

	blogs, totalRows, err := s.m.getBlogsByTitle(ctx, title, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return newBlogPage(blogs, page, limit, totalRows), nil
}

// GetSavedBlogs returns one page of the blogs a user has saved.
func (s *BlogService) GetSavedBlogs(ctx context.Context, userID, page, limit int) (*BlogPage, error) {
	v := common.NewValidator()
	validateID(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	page, limit = normalizePage(page, limit)

	blogs, totalRows, err := s.m.getSavedBlogs(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return newBlogPage(blogs, page, limit, totalRows), nil
}

// LikeCount serves the public like counter, read through the cache.
func (s *BlogService) LikeCount(ctx context.Context, blogID int) (int, error) {
	return s.cachedCount(ctx, blogID, common.CacheKeyLikeCount(blogID), s.m.likeCount)
}

// SaveCount serves the public save counter, read through the cache.
func (s *BlogService) SaveCount(ctx context.Context, blogID int) (int, error) {
	return s.cachedCount(ctx, blogID, common.CacheKeySaveCount(blogID), s.m.saveCount)
}

func (s *BlogService) cachedCount(ctx context.Context, blogID int, key string, fetch func(context.Context, int) (int, error)) (int, error) {
	v := common.NewValidator()
	validateID(v, blogID, "id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	if cached, ok := s.c.Get(key); ok {
		return cached.(int), nil
	}

	count, err := fetch(ctx, blogID)
	if err != nil {
		return 0, err
	}

	s.c.Set(key, count)

	return count, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func newBlogPage(blogs []Blog, page, limit, totalRows int) *BlogPage {
	return &BlogPage{
		Blogs: blogs,
		Metadata: Metadata{
			Page:       page,
			Limit:      limit,
			TotalRows:  totalRows,
			TotalPages: (totalRows + limit - 1) / limit,
		},
	}
}
