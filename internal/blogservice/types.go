package blogservice

import (
	"database/sql"
	"time"

	"github.com/ishaangoyal/quickmark/internal/common"
)

type Blog struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	// Content is stored as sanitised HTML/Markdown.
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Author carries only the public fields of the owning user. The password
// hash never crosses this boundary.
type Author struct {
	ID   int     `json:"id"`
	Name *string `json:"name,omitempty"`
}

// Metadata carries the page arithmetic the clients paginate with.
type Metadata struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalRows  int `json:"total_rows"`
	TotalPages int `json:"total_pages"`
}

// BlogPage is one page of a listing plus its metadata.
type BlogPage struct {
	Blogs    []Blog   `json:"blogs"`
	Metadata Metadata `json:"metadata"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
