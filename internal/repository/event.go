package repository

import (
	"github.com/mmcdole/movement/internal/dispatch"
	"github.com/mmcdole/movement/internal/domain"
	"github.com/mmcdole/movement/internal/future"
	"github.com/mmcdole/movement/internal/query"
)

// EventRepository searches for events around a geocoded address
type EventRepository struct {
	geocoder     domain.Geocoder
	urls         domain.URLProvider
	client       domain.JSONClient
	deserializer domain.EventDeserializer
	queue        dispatch.Queue
}

// NewEventRepository creates an event repository delivering on queue
func NewEventRepository(
	geocoder domain.Geocoder,
	urls domain.URLProvider,
	client domain.JSONClient,
	deserializer domain.EventDeserializer,
	queue dispatch.Queue,
) *EventRepository {
	return &EventRepository{
		geocoder:     geocoder,
		urls:         urls,
		client:       client,
		deserializer: deserializer,
		queue:        queue,
	}
}

// FetchEvents implements domain.EventRepository. A geocoding failure is
// delivered as-is and no search request is made.
func (r *EventRepository) FetchEvents(zipCode string, radiusMiles float64) *future.Future[domain.EventSearchResult] {
	promise := future.NewPromiseOn[domain.EventSearchResult](r.queue)

	r.geocoder.Geocode(zipCode).
		OnSuccess(func(center domain.Coordinate) {
			body := query.Events(center.Latitude, center.Longitude, radiusMiles)

			fetchObject(r.client, r.queue, NameEvents, r.urls.EventsURL(), body, promise,
				func(object map[string]any) domain.EventSearchResult {
					return domain.EventSearchResult{
						Center: center,
						Events: r.deserializer.DeserializeEvents(object),
					}
				})
		}).
		OnFailure(func(err error) {
			r.queue.Schedule(func() { promise.Failure(err) })
		})

	return promise.Future()
}
