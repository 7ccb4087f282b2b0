package models

import "time"

// AuthorNotStated is shown when an article carries no author of its own.
const AuthorNotStated = "Não mencionado"

// Source identifies the outlet that published an article
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article represents a single news item as returned by NewsAPI
type Article struct {
	Source      Source    `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Content     string    `json:"content,omitempty"`
}

// ResolvedAuthor returns the author to display. Outlets that credit
// themselves as the author, or articles without one, get AuthorNotStated.
func (a Article) ResolvedAuthor() string {
	if a.Author == "" || a.Author == a.Source.Name {
		return AuthorNotStated
	}
	return a.Author
}
