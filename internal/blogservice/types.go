package blogservice

import (
	"database/sql"
	"time"

	"github.com/krn-hov/Blog-List-App/internal/common"
	"github.com/krn-hov/Blog-List-App/internal/userservice"
)

type Blog struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	// User carries the owner's display identity. The owner's own blog
	// collection is never expanded here.
	User      userservice.User `json:"user"`
	UserID    int              `json:"user_id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
