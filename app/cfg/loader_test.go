package cfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func withoutEnvFiles(t *testing.T) {
	t.Helper()
	old := EnvFiles
	EnvFiles = nil
	t.Cleanup(func() { EnvFiles = old })
}

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestLoadArgs_Defaults(t *testing.T) {
	withoutEnvFiles(t)
	t.Setenv("WORDPRESS_API_URL", "")

	cfg, err := LoadArgs([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.SiteName != "Klyseria" {
		t.Errorf("Expected site name 'Klyseria', got '%s'", cfg.SiteName)
	}
	if cfg.SectionsDir != "./sections" {
		t.Errorf("Expected sections dir './sections', got '%s'", cfg.SectionsDir)
	}
	if cfg.GetPostsRevalidate() != 60*time.Second {
		t.Errorf("Expected posts revalidate 60s, got %v", cfg.GetPostsRevalidate())
	}
	if cfg.GetTaxonomyRevalidate() != time.Hour {
		t.Errorf("Expected taxonomy revalidate 1h, got %v", cfg.GetTaxonomyRevalidate())
	}
	if cfg.GetRequestTimeout() != 10*time.Second {
		t.Errorf("Expected request timeout 10s, got %v", cfg.GetRequestTimeout())
	}
	if cfg.APIConfigured() {
		t.Error("API should not be configured without WORDPRESS_API_URL")
	}
}

func TestLoadArgs_FlagsAndEnv(t *testing.T) {
	withoutEnvFiles(t)
	t.Setenv("WORDPRESS_API_URL", "https://cms.example.com/wp-json/wp/v2/")
	t.Setenv("SITE_URL", "https://www.example.com/")

	cfg, err := LoadArgs([]string{"--port", "9090", "--debug"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port '9090', got '%s'", cfg.Port)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.WordPressAPIURL != "https://cms.example.com/wp-json/wp/v2" {
		t.Errorf("Expected trailing slash trimmed, got '%s'", cfg.WordPressAPIURL)
	}
	if cfg.SiteURL != "https://www.example.com" {
		t.Errorf("Expected trailing slash trimmed, got '%s'", cfg.SiteURL)
	}
	if !cfg.APIConfigured() {
		t.Error("API should be configured")
	}
}

func TestAPIConfigured_Placeholder(t *testing.T) {
	cfg := &Cfg{WordPressAPIURL: "https://your-wordpress-site.com/wp-json/wp/v2"}
	if cfg.APIConfigured() {
		t.Error("Placeholder API URL should count as not configured")
	}
}

func TestLoadArgs_InvalidSiteURL(t *testing.T) {
	withoutEnvFiles(t)

	_, err := LoadArgs([]string{"--site-url", "example.com"})
	if err == nil {
		t.Error("Expected error for site URL without scheme")
	}
}

func TestLoadArgs_NegativeTimeout(t *testing.T) {
	withoutEnvFiles(t)

	_, err := LoadArgs([]string{"--request-timeout", "-1"})
	if err == nil {
		t.Error("Expected error for negative request timeout")
	}
}

func TestLoadArgs_EnvFile(t *testing.T) {
	tempDir := t.TempDir()
	envFile := filepath.Join(tempDir, ".env")
	content := "WORDPRESS_API_URL=https://from-file.example.com/wp-json/wp/v2\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	old := EnvFiles
	EnvFiles = []string{filepath.Join(tempDir, ".env.local"), envFile}
	defer func() { EnvFiles = old }()

	// godotenv never overrides variables that are already set
	os.Unsetenv("WORDPRESS_API_URL")
	defer os.Unsetenv("WORDPRESS_API_URL")

	cfg, err := LoadArgs([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.WordPressAPIURL != "https://from-file.example.com/wp-json/wp/v2" {
		t.Errorf("Expected API URL from env file, got '%s'", cfg.WordPressAPIURL)
	}
}
