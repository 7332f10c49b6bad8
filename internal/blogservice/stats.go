package blogservice

// Aggregate helpers over an in-memory blog list. All of them are pure: they
// never touch the database and never mutate their input.

type BlogStat struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type AuthorBlogCount struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikeCount struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Dummy always returns 1. It exists to pin down the API shape in tests.
func Dummy(blogs []Blog) int {
	return 1
}

func TotalLikes(blogs []Blog) int {
	total := 0
	for _, blog := range blogs {
		total += blog.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes, or nil for an empty list.
// On a tie the earliest entry wins.
func FavoriteBlog(blogs []Blog) *BlogStat {
	if len(blogs) == 0 {
		return nil
	}

	favorite := blogs[0]
	for _, blog := range blogs[1:] {
		if blog.Likes > favorite.Likes {
			favorite = blog
		}
	}

	return &BlogStat{Title: favorite.Title, Author: favorite.Author, Likes: favorite.Likes}
}

// MostBlogs returns the author with the most entries, or nil for an empty
// list. On a tie the author encountered first wins.
func MostBlogs(blogs []Blog) *AuthorBlogCount {
	if len(blogs) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, blog := range blogs {
		if _, seen := counts[blog.Author]; !seen {
			order = append(order, blog.Author)
		}
		counts[blog.Author]++
	}

	top := order[0]
	for _, author := range order[1:] {
		if counts[author] > counts[top] {
			top = author
		}
	}

	return &AuthorBlogCount{Author: top, Blogs: counts[top]}
}

// MostLikes returns the author with the highest like sum across their entries,
// or nil for an empty list. Same tie-break as MostBlogs.
func MostLikes(blogs []Blog) *AuthorLikeCount {
	if len(blogs) == 0 {
		return nil
	}

	likes := make(map[string]int)
	var order []string
	for _, blog := range blogs {
		if _, seen := likes[blog.Author]; !seen {
			order = append(order, blog.Author)
		}
		likes[blog.Author] += blog.Likes
	}

	top := order[0]
	for _, author := range order[1:] {
		if likes[author] > likes[top] {
			top = author
		}
	}

	return &AuthorLikeCount{Author: top, Likes: likes[top]}
}
