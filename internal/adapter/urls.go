package adapter

// URLProvider serves search endpoints from configuration
type URLProvider struct {
	cfg SearchConfig
}

// NewURLProvider creates a provider over the search section of the config
func NewURLProvider(cfg SearchConfig) *URLProvider {
	return &URLProvider{cfg: cfg}
}

func (p *URLProvider) EventsURL() string   { return p.cfg.EventsURL }
func (p *URLProvider) NewsFeedURL() string { return p.cfg.NewsURL }
func (p *URLProvider) VideoURL() string    { return p.cfg.VideosURL }
