package components

import (
	"net/url"
	"testing"
	"time"

	"github.com/mmcdole/movement/internal/domain"
	"github.com/stretchr/testify/assert"
)

func newInspector(item any) Inspector {
	i := NewInspector()
	i.now = func() time.Time { return time.Date(2015, 9, 10, 12, 0, 0, 0, time.UTC) }
	i.SetSize(60, 30)
	i.SetItem(item)
	return i
}

func TestInspector_Empty(t *testing.T) {
	i := newInspector(nil)
	assert.False(t, i.HasItem())
	assert.Contains(t, i.View(), "Nothing selected")
}

func TestInspector_NewsArticle(t *testing.T) {
	link, _ := url.Parse("https://berniesanders.com/news/rally")
	i := newInspector(domain.NewsArticle{
		Title: "Rally",
		Date:  time.Date(2015, 9, 7, 0, 0, 0, 0, time.UTC),
		Body:  "<p>Thousands came.</p><script>x()</script>",
		URL:   link,
	})

	view := i.View()
	assert.Contains(t, view, "Rally")
	assert.Contains(t, view, "3d")
	assert.Contains(t, view, "Thousands came.")
	assert.NotContains(t, view, "x()")
}

func TestInspector_Event(t *testing.T) {
	capacity, attending := 100, 42
	i := newInspector(domain.Event{
		Name:          "Canvass",
		StartTime:     time.Date(2015, 9, 12, 10, 0, 0, 0, time.FixedZone("EDT", -4*3600)),
		Venue:         &domain.Venue{Name: "Office", City: "Burlington", State: "VT", Zip: "05401"},
		Capacity:      &capacity,
		AttendeeCount: &attending,
	})

	view := i.View()
	assert.Contains(t, view, "Sat Sep 12, 10:00 AM EDT")
	assert.Contains(t, view, "Burlington, VT 05401")
	assert.Contains(t, view, "42 of 100 attending")
}

func TestInspector_Video(t *testing.T) {
	i := newInspector(domain.Video{Title: "Town hall", Identifier: "abc123", Date: time.Date(2015, 9, 10, 0, 0, 0, 0, time.UTC)})

	view := i.View()
	assert.Contains(t, view, "Today")
	assert.Contains(t, view, "watch?v=abc123")
}
