package news

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/bilgisen/gamenews/internal/models"
)

// Normalizer cleans articles as they come back from the provider
type Normalizer struct {
	htmlTagRegex *regexp.Regexp
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		htmlTagRegex: regexp.MustCompile(`<[^>]*>`),
	}
}

// CleanHTML removes HTML tags and normalizes whitespace
func (n *Normalizer) CleanHTML(input string) string {
	cleaned := n.htmlTagRegex.ReplaceAllString(input, " ")
	cleaned = html.UnescapeString(cleaned)
	return strings.Join(strings.Fields(cleaned), " ")
}

// NormalizeArticle cleans the text fields of a single article
func (n *Normalizer) NormalizeArticle(a models.Article) models.Article {
	a.Title = n.CleanHTML(a.Title)
	a.Description = n.CleanHTML(a.Description)
	a.Author = strings.TrimSpace(a.Author)
	a.Source.Name = strings.TrimSpace(a.Source.Name)
	a.URL = strings.TrimSpace(a.URL)
	return a
}

// ValidateArticle checks the article has the fields a card needs
func (n *Normalizer) ValidateArticle(a models.Article) error {
	if a.Title == "" {
		return fmt.Errorf("missing required field: title")
	}
	if a.URL == "" {
		return fmt.Errorf("missing required field: url")
	}
	return nil
}

// Process normalizes every article and drops the invalid ones, keeping order
func (n *Normalizer) Process(articles []models.Article) ([]models.Article, []error) {
	valid := make([]models.Article, 0, len(articles))
	var errs []error

	for i, a := range articles {
		normalized := n.NormalizeArticle(a)
		if err := n.ValidateArticle(normalized); err != nil {
			errs = append(errs, fmt.Errorf("invalid article %d (%q): %w", i, a.URL, err))
			continue
		}
		valid = append(valid, normalized)
	}

	return valid, errs
}
