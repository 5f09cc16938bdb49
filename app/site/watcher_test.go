package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

func TestWatcherReloadsChangedSection(t *testing.T) {
	tempDir := t.TempDir()
	writeSection(t, tempDir, "insights", `
title: "Insights"
categories: [insights]
placeholder_prefix: "insight-"`)

	sectionCache := NewSectionCache(tempDir)
	if err := sectionCache.Run(); err != nil {
		t.Fatal(err)
	}

	watcher := NewWatcher(sectionCache)
	watcher.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	writeSection(t, tempDir, "insights", `
title: "Fresh Insights"
categories: [insights]
placeholder_prefix: "insight-"`)

	reloaded := waitFor(t, func() bool {
		s, err := sectionCache.GetSection("insights")
		return err == nil && s.Title == "Fresh Insights"
	})
	if !reloaded {
		t.Error("Expected section title to be reloaded")
	}

	if err := os.Remove(filepath.Join(tempDir, "insights.yml")); err != nil {
		t.Fatal(err)
	}

	removed := waitFor(t, func() bool {
		_, err := sectionCache.GetSection("insights")
		return err != nil
	})
	if !removed {
		t.Error("Expected section to be removed")
	}
}

func TestWatcherKeepsSectionOnInvalidEdit(t *testing.T) {
	tempDir := t.TempDir()
	writeSection(t, tempDir, "research", `
categories: [research]
placeholder_prefix: "research-"`)

	sectionCache := NewSectionCache(tempDir)
	if err := sectionCache.Run(); err != nil {
		t.Fatal(err)
	}

	watcher := NewWatcher(sectionCache)
	writeSection(t, tempDir, "research", `categories: []`)

	watcher.pending["research"] = 0
	watcher.flush()

	s, err := sectionCache.GetSection("research")
	if err != nil {
		t.Fatalf("Expected previous section to survive, got %v", err)
	}
	if s.PlaceholderPrefix != "research-" {
		t.Errorf("Expected previous prefix kept, got %s", s.PlaceholderPrefix)
	}
}
