package cfg

type Cfg struct {
	// Content API configuration
	WordPressAPIURL    string
	RequestTimeout     int // seconds
	PostsRevalidate    int // seconds
	TaxonomyRevalidate int // seconds

	// Application configuration
	SiteName      string
	SiteURL       string
	Port          string
	SectionsDir   string
	WatchSections bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
