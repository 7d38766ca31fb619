// Package repository composes query building, transport, deserialization
// and delivery for each content type.
//
// Every fetch issues exactly one transport request and resolves its future
// exactly once. The resolution is always scheduled on the delivery queue,
// never performed on the goroutine the transport completed on.
package repository

import (
	"fmt"
	"net/http"

	"github.com/mmcdole/movement/internal/dispatch"
	"github.com/mmcdole/movement/internal/domain"
	"github.com/mmcdole/movement/internal/future"
)

// Repository names used to tag UnexpectedShapeError
const (
	NameEvents = "events"
	NameNews   = "news"
	NameVideos = "videos"
)

// fetchObject POSTs body to url and hands decoded objects to onObject.
// onObject runs on the transport goroutine; its result is delivered via queue.
func fetchObject[T any](
	client domain.JSONClient,
	queue dispatch.Queue,
	name, url string,
	body any,
	promise *future.Promise[T],
	onObject func(map[string]any) T,
) {
	client.JSONPromise(url, http.MethodPost, body).
		OnSuccess(func(raw any) {
			object, ok := raw.(map[string]any)
			if !ok {
				shapeErr := &domain.UnexpectedShapeError{Repository: name, Got: fmt.Sprintf("%T", raw)}
				queue.Schedule(func() { promise.Failure(shapeErr) })
				return
			}

			result := onObject(object)
			queue.Schedule(func() { promise.Success(result) })
		}).
		OnFailure(func(err error) {
			queue.Schedule(func() { promise.Failure(err) })
		})
}
