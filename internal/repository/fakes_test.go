package repository

import (
	"sync"

	"github.com/mmcdole/movement/internal/domain"
	"github.com/mmcdole/movement/internal/future"
)

type jsonRequest struct {
	URL     string
	Method  string
	Body    any
	Promise *future.Promise[any]
}

// fakeJSONClient records every request and leaves it pending until the test
// resolves its promise.
type fakeJSONClient struct {
	mu       sync.Mutex
	requests []*jsonRequest
}

func (c *fakeJSONClient) JSONPromise(url, method string, body any) *future.Future[any] {
	req := &jsonRequest{URL: url, Method: method, Body: body, Promise: future.NewPromise[any]()}
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()
	return req.Promise.Future()
}

func (c *fakeJSONClient) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

func (c *fakeJSONClient) last() *jsonRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		return nil
	}
	return c.requests[len(c.requests)-1]
}

type fakeURLProvider struct{}

func (fakeURLProvider) EventsURL() string   { return "https://search.example.com/events/_search" }
func (fakeURLProvider) NewsFeedURL() string { return "https://search.example.com/articles/_search" }
func (fakeURLProvider) VideoURL() string    { return "https://search.example.com/videos/_search" }

type fakeGeocoder struct {
	addresses []string
	promise   *future.Promise[domain.Coordinate]
}

func newFakeGeocoder() *fakeGeocoder {
	return &fakeGeocoder{promise: future.NewPromise[domain.Coordinate]()}
}

func (g *fakeGeocoder) Geocode(address string) *future.Future[domain.Coordinate] {
	g.addresses = append(g.addresses, address)
	return g.promise.Future()
}

type fakeNewsDeserializer struct {
	received map[string]any
	returned []domain.NewsArticle
}

func (d *fakeNewsDeserializer) DeserializeNewsArticles(response map[string]any) []domain.NewsArticle {
	d.received = response
	return d.returned
}

type fakeEventDeserializer struct {
	received map[string]any
	returned []domain.Event
}

func (d *fakeEventDeserializer) DeserializeEvents(response map[string]any) []domain.Event {
	d.received = response
	return d.returned
}
