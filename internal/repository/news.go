package repository

import (
	"github.com/mmcdole/movement/internal/dispatch"
	"github.com/mmcdole/movement/internal/domain"
	"github.com/mmcdole/movement/internal/future"
	"github.com/mmcdole/movement/internal/query"
)

// NewsArticleRepository fetches the news feed
type NewsArticleRepository struct {
	urls         domain.URLProvider
	client       domain.JSONClient
	deserializer domain.NewsArticleDeserializer
	queue        dispatch.Queue
}

// NewNewsArticleRepository creates a news repository delivering on queue
func NewNewsArticleRepository(
	urls domain.URLProvider,
	client domain.JSONClient,
	deserializer domain.NewsArticleDeserializer,
	queue dispatch.Queue,
) *NewsArticleRepository {
	return &NewsArticleRepository{
		urls:         urls,
		client:       client,
		deserializer: deserializer,
		queue:        queue,
	}
}

// FetchNewsArticles implements domain.NewsArticleRepository
func (r *NewsArticleRepository) FetchNewsArticles() *future.Future[[]domain.NewsArticle] {
	promise := future.NewPromiseOn[[]domain.NewsArticle](r.queue)

	fetchObject(r.client, r.queue, NameNews, r.urls.NewsFeedURL(), query.News(), promise,
		func(object map[string]any) []domain.NewsArticle {
			return r.deserializer.DeserializeNewsArticles(object)
		})

	return promise.Future()
}
