package domain

import "time"

// Post es una entrada del blog. AuthorID se fija al crear y no cambia.
type Post struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Published bool         `json:"published"`
	AuthorID  string       `json:"authorId"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Author    *UserSummary `json:"author,omitempty"`
}

// OwnerID devuelve el usuario dueño del post.
func (p Post) OwnerID() string {
	return p.AuthorID
}

// PostPage es una pagina del listado de posts.
type PostPage struct {
	Data        []Post `json:"data"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	TotalItems  int    `json:"totalItems"`
}
