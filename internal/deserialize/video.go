package deserialize

import (
	"time"

	"github.com/mmcdole/movement/internal/domain"
)

// Videos deserializes video search responses
type Videos struct{}

// DeserializeVideos implements domain.VideoDeserializer
func (Videos) DeserializeVideos(response map[string]any) []domain.Video {
	records := sources(response)
	videos := make([]domain.Video, 0, len(records))
	for _, src := range records {
		if v, ok := video(src); ok {
			videos = append(videos, v)
		}
	}
	return videos
}

func video(src map[string]any) (domain.Video, bool) {
	title, ok := stringField(src, "title")
	if !ok {
		return domain.Video{}, false
	}
	id, ok := stringField(src, "videoId")
	if !ok {
		return domain.Video{}, false
	}
	date, ok := timeField(src, "created_at", time.UTC)
	if !ok {
		return domain.Video{}, false
	}

	return domain.Video{
		Title:       title,
		Identifier:  id,
		Date:        date,
		Description: optionalString(src, "description"),
	}, true
}
