package site

// Section is one listing page of the site, configured by a YAML file
// in the sections directory.
type Section struct {
	Name              string          // Derived from filename (without .yml extension)
	Title             string          `yaml:"title"`
	Description       string          `yaml:"description"`
	Categories        []string        `yaml:"categories"` // content API category slugs
	PlaceholderPrefix string          `yaml:"placeholder_prefix"`
	Hero              string          `yaml:"hero"`
	Parent            string          `yaml:"parent"`
	Home              bool            `yaml:"home"`
	Sitemap           SectionSitemap  `yaml:"sitemap"`
	Settings          SectionSettings `yaml:"settings"`
}

type SectionSitemap struct {
	ChangeFrequency string  `yaml:"change_frequency"`
	Priority        float64 `yaml:"priority"`
}

type SectionSettings struct {
	Enabled                bool `yaml:"enabled"`
	PerPage                int  `yaml:"per_page"`
	PlaceholderCount       int  `yaml:"placeholder_count"`
	UseCategoryDescription bool `yaml:"use_category_description"`
}

const (
	HeroCarousel = "carousel"
	HeroInner    = "inner"

	// CarouselSize is how many of the newest posts the carousel hero shows.
	CarouselSize = 3
)

func (s *Section) Path() string {
	return "/" + s.Name
}

func (s *Section) FeedPath() string {
	return "/" + s.Name + "/feed.xml"
}
