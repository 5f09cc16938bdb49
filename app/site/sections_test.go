package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSection(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".yml"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestSectionCacheLoadValidSection(t *testing.T) {
	tempDir := t.TempDir()
	writeSection(t, tempDir, "research", `
title: "Research"
description: "In-depth research and analysis on key topics"
categories:
  - research
placeholder_prefix: "research-"
hero: inner
parent: "Chapter"

sitemap:
  change_frequency: monthly
  priority: 0.6

settings:
  per_page: 50
  use_category_description: true
`)

	sectionCache := NewSectionCache(tempDir)
	if err := sectionCache.Run(); err != nil {
		t.Fatal(err)
	}

	if sectionCache.GetSectionCount() != 1 {
		t.Errorf("Expected 1 section, got %d", sectionCache.GetSectionCount())
	}

	section, err := sectionCache.GetSection("research")
	if err != nil {
		t.Fatal(err)
	}

	if section.Name != "research" {
		t.Errorf("Expected name 'research', got '%s'", section.Name)
	}
	if !section.Settings.Enabled {
		t.Error("Expected section to be enabled by default")
	}
	if section.Settings.PerPage != 50 {
		t.Errorf("Expected per_page 50, got %d", section.Settings.PerPage)
	}
	if section.Settings.PlaceholderCount != 30 {
		t.Errorf("Expected default placeholder count 30, got %d", section.Settings.PlaceholderCount)
	}
	if section.Sitemap.Priority != 0.6 || section.Sitemap.ChangeFrequency != "monthly" {
		t.Errorf("Unexpected sitemap hints: %+v", section.Sitemap)
	}
	if !section.Settings.UseCategoryDescription {
		t.Error("Expected use_category_description to be set")
	}
	if section.Path() != "/research" || section.FeedPath() != "/research/feed.xml" {
		t.Errorf("Unexpected paths %s %s", section.Path(), section.FeedPath())
	}
}

func TestSectionCacheDefaults(t *testing.T) {
	tempDir := t.TempDir()
	writeSection(t, tempDir, "white-paper", `
categories: [white-paper]
placeholder_prefix: "whitepaper-"
`)

	sectionCache := NewSectionCache(tempDir)
	section, err := sectionCache.LoadSection("white-paper")
	if err != nil {
		t.Fatal(err)
	}

	if section.Title != "White Paper" {
		t.Errorf("Expected title derived from name, got '%s'", section.Title)
	}
	if section.Hero != HeroInner {
		t.Errorf("Expected default hero '%s', got '%s'", HeroInner, section.Hero)
	}
	if section.Settings.PerPage != 100 {
		t.Errorf("Expected default per_page 100, got %d", section.Settings.PerPage)
	}
	if section.Sitemap.ChangeFrequency != "weekly" {
		t.Errorf("Expected default change frequency weekly, got %s", section.Sitemap.ChangeFrequency)
	}
}

func TestSectionCacheInvalidSections(t *testing.T) {
	cases := map[string]string{
		"no-categories": `placeholder_prefix: "x-"`,
		"no-prefix":     `categories: [a]`,
		"bad-hero": `
categories: [a]
placeholder_prefix: "x-"
hero: banner`,
		"bad-priority": `
categories: [a]
placeholder_prefix: "x-"
sitemap:
  priority: 1.5`,
		"bad-frequency": `
categories: [a]
placeholder_prefix: "x-"
sitemap:
  change_frequency: fortnightly`,
		"too-many": `
categories: [a]
placeholder_prefix: "x-"
settings:
  per_page: 500`,
	}

	for name, body := range cases {
		tempDir := t.TempDir()
		writeSection(t, tempDir, name, body)

		if _, err := NewSectionCache(tempDir).LoadSection(name); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestSectionCacheInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	writeSection(t, tempDir, "broken", "categories: [unterminated")

	err := NewSectionCache(tempDir).Run()
	if err == nil || !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("Expected YAML parse error, got %v", err)
	}
}

func TestSectionCacheMissingDir(t *testing.T) {
	sectionCache := NewSectionCache(filepath.Join(t.TempDir(), "missing"))
	if err := sectionCache.Run(); err != nil {
		t.Errorf("Expected missing directory to be ignored, got %v", err)
	}
	if sectionCache.GetSectionCount() != 0 {
		t.Errorf("Expected no sections, got %d", sectionCache.GetSectionCount())
	}
}

func TestSectionCacheEnabledAndHome(t *testing.T) {
	tempDir := t.TempDir()
	writeSection(t, tempDir, "chapter", `
categories: [insights, research]
placeholder_prefix: "post-"
hero: carousel
home: true`)
	writeSection(t, tempDir, "insights", `
categories: [insights]
placeholder_prefix: "insight-"`)
	writeSection(t, tempDir, "archive", `
categories: [archive]
placeholder_prefix: "archive-"
settings:
  enabled: false`)

	sectionCache := NewSectionCache(tempDir)
	if err := sectionCache.Run(); err != nil {
		t.Fatal(err)
	}

	enabled := sectionCache.GetEnabledSections()
	if len(enabled) != 2 || enabled[0].Name != "chapter" || enabled[1].Name != "insights" {
		t.Errorf("Expected chapter and insights in order, got %d sections", len(enabled))
	}

	if _, ok := sectionCache.GetEnabledSection("archive"); ok {
		t.Error("Expected disabled section to be hidden")
	}

	home, ok := sectionCache.Home()
	if !ok || home.Name != "chapter" {
		t.Errorf("Expected chapter as home, got %v", home)
	}

	sectionCache.Remove("insights")
	if _, err := sectionCache.GetSection("insights"); err == nil {
		t.Error("Expected removed section to be gone")
	}
}
