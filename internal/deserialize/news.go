package deserialize

import (
	"time"

	"github.com/mmcdole/movement/internal/domain"
)

// NewsArticles deserializes news feed responses
type NewsArticles struct{}

// DeserializeNewsArticles implements domain.NewsArticleDeserializer
func (NewsArticles) DeserializeNewsArticles(response map[string]any) []domain.NewsArticle {
	records := sources(response)
	articles := make([]domain.NewsArticle, 0, len(records))
	for _, src := range records {
		if a, ok := newsArticle(src); ok {
			articles = append(articles, a)
		}
	}
	return articles
}

func newsArticle(src map[string]any) (domain.NewsArticle, bool) {
	title, ok := stringField(src, "title")
	if !ok {
		return domain.NewsArticle{}, false
	}
	date, ok := timeField(src, "created_at", time.UTC)
	if !ok {
		return domain.NewsArticle{}, false
	}
	link, ok := urlField(src, "url")
	if !ok {
		return domain.NewsArticle{}, false
	}

	article := domain.NewsArticle{
		Title:   title,
		Date:    date,
		URL:     link,
		Body:    optionalString(src, "body"),
		Excerpt: optionalString(src, "excerpt"),
	}
	if image, ok := urlField(src, "image_url"); ok {
		article.ImageURL = image
	}
	return article, true
}
