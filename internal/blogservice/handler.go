package blogservice

import (
	"context"
	"database/sql"

	"github.com/krn-hov/Blog-List-App/internal/common"
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	// Likes is a pointer so an omitted value can default to zero.
	Likes  *int `json:"likes"`
	UserID int  `json:"user_id"`
}

type UpdateBlogRequest struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

// ListStats bundles the aggregate figures for the whole blog list.
type ListStats struct {
	TotalLikes int              `json:"total_likes"`
	Favorite   *BlogStat        `json:"favorite"`
	MostBlogs  *AuthorBlogCount `json:"most_blogs"`
	MostLikes  *AuthorLikeCount `json:"most_likes"`
}

// CreateBlog persists a new blog owned by req.UserID. Likes defaults to 0 when
// absent from the request.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	likes := 0
	if req.Likes != nil {
		likes = *req.Likes
	}

	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateAuthor(v, req.Author)
	validateURL(v, req.URL)
	validateLikes(v, likes)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := Blog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  likes,
		UserID: req.UserID,
	}

	err := s.m.insert(ctx, &blog)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogs())

	return s.m.getBlogByID(ctx, blog.ID)
}

// GetBlogByID returns a blog with its owner joined in.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		if blog, ok := cached.(*Blog); ok {
			return blog, nil
		}
	}

	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), blog)

	return blog, nil
}

// GetBlogs returns the whole blog list in insertion order.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogs()); ok {
		if blogs, ok := cached.([]Blog); ok {
			return blogs, nil
		}
	}

	blogs, err := s.m.getBlogs(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlogs(), blogs)

	return blogs, nil
}

// UpdateBlog replaces the mutable fields of a blog. Ownership is enforced by
// the caller before this runs; the write itself is last-write-wins.
func (s *BlogService) UpdateBlog(ctx context.Context, req *UpdateBlogRequest) (*Blog, error) {
	likes := 0
	if req.Likes != nil {
		likes = *req.Likes
	}

	v := common.NewValidator()
	validateInt(v, req.ID, "id")
	validateTitle(v, req.Title)
	validateAuthor(v, req.Author)
	validateURL(v, req.URL)
	validateLikes(v, likes)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := Blog{
		ID:     req.ID,
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  likes,
	}

	err := s.m.updateBlog(ctx, &blog)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlog(req.ID))
	s.c.Delete(common.CacheKeyBlogs())

	return s.m.getBlogByID(ctx, req.ID)
}

// DeleteBlog removes a blog owned by userID. Deleting an id that does not
// exist fails with ErrRecordNotFound, every time.
func (s *BlogService) DeleteBlog(ctx context.Context, blogID, userID int) error {
	v := common.NewValidator()
	validateInt(v, blogID, "id")
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.m.deleteBlog(ctx, blogID, userID)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(blogID))
	s.c.Delete(common.CacheKeyBlogs())

	return nil
}

// GetBlogsByUserID returns every blog owned by one user.
func (s *BlogService) GetBlogsByUserID(ctx context.Context, userID int) ([]Blog, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogsByUserID(ctx, userID)
}

// Stats computes the aggregate figures over the full blog list.
func (s *BlogService) Stats(ctx context.Context) (*ListStats, error) {
	blogs, err := s.GetBlogs(ctx)
	if err != nil {
		return nil, err
	}

	return &ListStats{
		TotalLikes: TotalLikes(blogs),
		Favorite:   FavoriteBlog(blogs),
		MostBlogs:  MostBlogs(blogs),
		MostLikes:  MostLikes(blogs),
	}, nil
}
