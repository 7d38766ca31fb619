package repository

import (
	"github.com/mmcdole/movement/internal/dispatch"
	"github.com/mmcdole/movement/internal/domain"
	"github.com/mmcdole/movement/internal/future"
	"github.com/mmcdole/movement/internal/query"
)

// VideoRepository fetches recent videos
type VideoRepository struct {
	urls         domain.URLProvider
	client       domain.JSONClient
	deserializer domain.VideoDeserializer
	queue        dispatch.Queue
}

// NewVideoRepository creates a video repository delivering on queue
func NewVideoRepository(
	urls domain.URLProvider,
	client domain.JSONClient,
	deserializer domain.VideoDeserializer,
	queue dispatch.Queue,
) *VideoRepository {
	return &VideoRepository{
		urls:         urls,
		client:       client,
		deserializer: deserializer,
		queue:        queue,
	}
}

// FetchVideos implements domain.VideoRepository
func (r *VideoRepository) FetchVideos() *future.Future[[]domain.Video] {
	promise := future.NewPromiseOn[[]domain.Video](r.queue)

	fetchObject(r.client, r.queue, NameVideos, r.urls.VideoURL(), query.Videos(), promise,
		func(object map[string]any) []domain.Video {
			return r.deserializer.DeserializeVideos(object)
		})

	return promise.Future()
}
