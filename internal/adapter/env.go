package adapter

import (
	"strings"

	"github.com/spf13/viper"
)

// envKeyReplacer maps nested keys to env names: search.news_url -> MOVEMENT_SEARCH_NEWS_URL
var envKeyReplacer = strings.NewReplacer(".", "_")

// configKeys lists every key so AutomaticEnv can see keys absent from the file
var configKeys = []string{
	"search.events_url",
	"search.news_url",
	"search.videos_url",
	"geocoder.url",
	"geocoder.user_agent",
	"http.timeout",
	"http.requests_per_second",
	"http.burst",
	"http.user_agent",
	"events.default_zip",
	"events.radius_miles",
	"store.path",
	"logging.file",
	"logging.level",
}

func bindEnv(v *viper.Viper) {
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}
}
