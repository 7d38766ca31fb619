package deserialize

import (
	"time"
	_ "time/tzdata"

	"github.com/mmcdole/movement/internal/domain"
)

// US abbreviations the events backend uses in its timezone field.
// Anything else is tried as an IANA name.
var timezoneAbbreviations = map[string]string{
	"EST":  "America/New_York",
	"EDT":  "America/New_York",
	"CST":  "America/Chicago",
	"CDT":  "America/Chicago",
	"MST":  "America/Denver",
	"MDT":  "America/Denver",
	"PST":  "America/Los_Angeles",
	"PDT":  "America/Los_Angeles",
	"AKST": "America/Anchorage",
	"AKDT": "America/Anchorage",
	"HST":  "Pacific/Honolulu",
}

// Events deserializes event search responses
type Events struct{}

// DeserializeEvents implements domain.EventDeserializer
func (Events) DeserializeEvents(response map[string]any) []domain.Event {
	records := sources(response)
	events := make([]domain.Event, 0, len(records))
	for _, src := range records {
		if e, ok := event(src); ok {
			events = append(events, e)
		}
	}
	return events
}

func event(src map[string]any) (domain.Event, bool) {
	name, ok := stringField(src, "name")
	if !ok {
		return domain.Event{}, false
	}

	timezone := optionalString(src, "timezone")
	start, ok := timeField(src, "start_time", location(timezone))
	if !ok {
		return domain.Event{}, false
	}

	link, ok := urlField(src, "url")
	if !ok {
		return domain.Event{}, false
	}

	e := domain.Event{
		Name:          name,
		StartTime:     start,
		URL:           link,
		Description:   optionalString(src, "description"),
		Timezone:      timezone,
		EventTypeName: optionalString(src, "event_type_name"),
		Capacity:      optionalInt(src, "capacity"),
		AttendeeCount: optionalInt(src, "attendee_count"),
	}
	if v, ok := src["venue"].(map[string]any); ok {
		e.Venue = venue(v)
	}
	return e, true
}

func venue(src map[string]any) *domain.Venue {
	v := &domain.Venue{
		Name:     optionalString(src, "name"),
		Address1: optionalString(src, "address1"),
		Address2: optionalString(src, "address2"),
		City:     optionalString(src, "city"),
		State:    optionalString(src, "state"),
		Zip:      optionalString(src, "zip"),
	}
	if loc, ok := src["location"].(map[string]any); ok {
		lat, latOK := floatField(loc, "lat")
		lon, lonOK := floatField(loc, "lon")
		if latOK && lonOK {
			v.Location = &domain.Coordinate{Latitude: lat, Longitude: lon}
		}
	}
	return v
}

// location resolves the event timezone, falling back to UTC
func location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	if iana, ok := timezoneAbbreviations[name]; ok {
		name = iana
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
