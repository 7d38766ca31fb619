package repository

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/movement/internal/deserialize"
	"github.com/mmcdole/movement/internal/dispatch"
	"github.com/mmcdole/movement/internal/domain"
	"github.com/mmcdole/movement/internal/query"
)

func newNewsRepo() (*NewsArticleRepository, *fakeJSONClient, *dispatch.ManualQueue) {
	client := &fakeJSONClient{}
	queue := dispatch.NewManualQueue()
	repo := NewNewsArticleRepository(fakeURLProvider{}, client, deserialize.NewsArticles{}, queue)
	return repo, client, queue
}

func decodeJSON(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestNewsArticleRepository_Request(t *testing.T) {
	repo, client, _ := newNewsRepo()

	repo.FetchNewsArticles()

	require.Equal(t, 1, client.count())
	req := client.last()
	assert.Equal(t, "https://search.example.com/articles/_search", req.URL)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, query.News(), req.Body)
}

func TestNewsArticleRepository_Success(t *testing.T) {
	repo, client, queue := newNewsRepo()

	f := repo.FetchNewsArticles()
	client.last().Promise.Success(decodeJSON(t, `{"hits": {"hits": [{"_source": {
		"title": "Bernie to release new album",
		"body": "yeahhh",
		"excerpt": "excerpt A",
		"created_at": "2015-08-28T22:03:24Z",
		"url": "https://berniesanders.com/a",
		"image_url": "https://berniesanders.com/a.jpg"
	}}]}}`))

	// Nothing is visible until the delivery queue runs
	assert.False(t, f.IsCompleted())
	require.Equal(t, 1, queue.Len())
	queue.Drain()

	articles, ok := f.Value()
	require.True(t, ok)
	require.Len(t, articles, 1)
	a := articles[0]
	assert.Equal(t, "Bernie to release new album", a.Title)
	assert.Equal(t, "yeahhh", a.Body)
	assert.Equal(t, "excerpt A", a.Excerpt)
	assert.True(t, time.Date(2015, 8, 28, 22, 3, 24, 0, time.UTC).Equal(a.Date))
	assert.Equal(t, "https://berniesanders.com/a", a.URL.String())
	assert.Equal(t, "https://berniesanders.com/a.jpg", a.ImageURL.String())
}

func TestNewsArticleRepository_PassesObjectToDeserializer(t *testing.T) {
	client := &fakeJSONClient{}
	queue := dispatch.NewManualQueue()
	deserializer := &fakeNewsDeserializer{returned: []domain.NewsArticle{{Title: "canned"}}}
	repo := NewNewsArticleRepository(fakeURLProvider{}, client, deserializer, queue)

	f := repo.FetchNewsArticles()
	response := map[string]any{"hits": map[string]any{}}
	client.last().Promise.Success(response)
	queue.Drain()

	assert.Equal(t, response, deserializer.received)
	articles, _ := f.Value()
	assert.Equal(t, []domain.NewsArticle{{Title: "canned"}}, articles)
}

func TestNewsArticleRepository_UnexpectedShape(t *testing.T) {
	repo, client, queue := newNewsRepo()

	f := repo.FetchNewsArticles()
	client.last().Promise.Success([]any{1.0, 2.0, 3.0})

	assert.False(t, f.IsCompleted())
	queue.Drain()

	err := f.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnexpectedShape)
	assert.NotErrorIs(t, err, domain.ErrTransport)

	var shapeErr *domain.UnexpectedShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, NameNews, shapeErr.Repository)
	assert.Equal(t, "[]interface {}", shapeErr.Got)
}

func TestNewsArticleRepository_TransportFailure(t *testing.T) {
	repo, client, queue := newNewsRepo()

	f := repo.FetchNewsArticles()
	transportErr := &domain.TransportError{Method: http.MethodPost, URL: "x", Err: errors.New("offline")}
	client.last().Promise.Failure(transportErr)

	assert.False(t, f.IsCompleted())
	queue.Drain()

	assert.Same(t, transportErr, f.Err())
}

func TestNewsArticleRepository_ExactlyOneCompletion(t *testing.T) {
	repo, client, queue := newNewsRepo()

	var successes, failures int
	f := repo.FetchNewsArticles()
	f.OnSuccess(func([]domain.NewsArticle) { successes++ }).
		OnFailure(func(error) { failures++ })

	client.last().Promise.Success(map[string]any{})
	client.last().Promise.Failure(errors.New("ignored"))
	queue.Drain()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 0, failures)
}

func TestNewsArticleRepository_IndependentFetches(t *testing.T) {
	repo, client, queue := newNewsRepo()

	a := repo.FetchNewsArticles()
	b := repo.FetchNewsArticles()

	require.Equal(t, 2, client.count())
	assert.NotSame(t, a, b)

	boom := errors.New("boom")
	client.requests[0].Promise.Failure(boom)
	client.requests[1].Promise.Success(map[string]any{})
	queue.Drain()

	assert.Same(t, boom, a.Err())
	assert.True(t, b.IsSuccess())
}
