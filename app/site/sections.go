package site

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var changeFrequencies = []string{"always", "hourly", "daily", "weekly", "monthly", "yearly", "never"}

type SectionCache struct {
	sectionsDir string
	cache       map[string]*Section
	mu          sync.RWMutex
}

func NewSectionCache(sectionsDir string) *SectionCache {
	return &SectionCache{
		sectionsDir: sectionsDir,
		cache:       make(map[string]*Section),
	}
}

func (sc *SectionCache) Dir() string {
	return sc.sectionsDir
}

func (sc *SectionCache) Run() error {
	if _, err := os.Stat(sc.sectionsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(sc.sectionsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".yml")

		section, err := sc.LoadSection(name)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Section loaded", "section", name, "enabled", section.Settings.Enabled, "categories", section.Categories)
	}

	return nil
}

func (sc *SectionCache) LoadSection(name string) (*Section, error) {
	file := sc.getSectionFilePath(name)
	section, err := sc.parseSection(file)
	if err != nil {
		return nil, err
	}

	section.Name = name
	if section.Title == "" {
		section.Title = titleFromName(name)
	}

	if err := sc.validateSection(section); err != nil {
		return nil, fmt.Errorf("invalid section %s: %w", file, err)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cache[section.Name] = section

	return section, nil
}

// Remove forgets a section whose file was deleted.
func (sc *SectionCache) Remove(name string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	delete(sc.cache, name)
}

func (sc *SectionCache) GetSection(name string) (*Section, error) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	section, ok := sc.cache[name]
	if !ok {
		return nil, fmt.Errorf("section with name '%s' not found", name)
	}
	return section, nil
}

// GetEnabledSection returns the section only if it is enabled.
func (sc *SectionCache) GetEnabledSection(name string) (*Section, bool) {
	section, err := sc.GetSection(name)
	if err != nil || !section.Settings.Enabled {
		return nil, false
	}
	return section, true
}

// Home is the enabled section flagged as the home page.
func (sc *SectionCache) Home() (*Section, bool) {
	for _, section := range sc.GetEnabledSections() {
		if section.Home {
			return section, true
		}
	}
	return nil, false
}

// GetEnabledSections returns enabled sections ordered by name.
func (sc *SectionCache) GetEnabledSections() []*Section {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	sections := make([]*Section, 0, len(sc.cache))
	for _, s := range sc.cache {
		if s.Settings.Enabled {
			sections = append(sections, s)
		}
	}
	slices.SortFunc(sections, func(a, b *Section) int {
		return strings.Compare(a.Name, b.Name)
	})
	return sections
}

func (sc *SectionCache) GetSectionCount() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.cache)
}

func (sc *SectionCache) parseSection(file string) (*Section, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	section := Section{
		Settings: SectionSettings{Enabled: true},
	}
	if err := yaml.Unmarshal(data, &section); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if section.Hero == "" {
		section.Hero = HeroInner
	}
	if section.Sitemap.ChangeFrequency == "" {
		section.Sitemap.ChangeFrequency = "weekly"
	}
	if section.Sitemap.Priority == 0 {
		section.Sitemap.Priority = 0.5
	}
	if section.Settings.PerPage == 0 {
		section.Settings.PerPage = 100
	}
	if section.Settings.PlaceholderCount == 0 {
		section.Settings.PlaceholderCount = 30
	}

	return &section, nil
}

func (sc *SectionCache) validateSection(section *Section) error {
	if section == nil {
		return fmt.Errorf("section is nil")
	}

	requiredFields := map[string]string{
		"section name":       section.Name,
		"placeholder prefix": section.PlaceholderPrefix,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	if len(section.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}

	if section.Hero != HeroCarousel && section.Hero != HeroInner {
		return fmt.Errorf("invalid hero: %s", section.Hero)
	}

	if !slices.Contains(changeFrequencies, section.Sitemap.ChangeFrequency) {
		return fmt.Errorf("invalid sitemap change frequency: %s", section.Sitemap.ChangeFrequency)
	}

	if section.Sitemap.Priority < 0 || section.Sitemap.Priority > 1 {
		return fmt.Errorf("sitemap priority must be between 0 and 1")
	}

	nonNegativeFields := map[string]int{
		"per page":          section.Settings.PerPage,
		"placeholder count": section.Settings.PlaceholderCount,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	if section.Settings.PerPage > 100 {
		return fmt.Errorf("per page must not exceed 100")
	}

	return nil
}

func (sc *SectionCache) getSectionFilePath(name string) string {
	return filepath.Join(sc.sectionsDir, name+".yml")
}

// titleFromName turns "white-paper" into "White Paper".
func titleFromName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}
