// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GitHubToken   string
	SourceRepo    string // Upstream "owner/repo" whose PRs are read.
	TargetRepo    string // Downstream "owner/repo" receiving tracking issues.
	BaseBranch    string
	PRAuthor      string
	BotLogin      string
	SummaryMarker string
	FooterMarker  string
	PostPace      time.Duration
	RetryBackoff  time.Duration
	MaxAttempts   int
	SyncInterval  time.Duration // 0 runs a single pass.
	DBPath        string        // Empty disables the local journal.
}

// Load reads configuration from environment variables and returns a validated
// Config. envFile, when non-empty, is loaded first without overriding
// variables already present in the process environment.
//
// Required: REVIEWSYNC_SOURCE_REPO, REVIEWSYNC_TARGET_REPO,
// REVIEWSYNC_PR_AUTHOR, REVIEWSYNC_BOT_LOGIN, and a token from
// REVIEWSYNC_GITHUB_TOKEN or GITHUB_TOKEN.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file %q: %w", envFile, err)
		}
	}

	token := os.Getenv("REVIEWSYNC_GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("REVIEWSYNC_GITHUB_TOKEN (or GITHUB_TOKEN) is required")
	}

	sourceRepo, err := requireRepo("REVIEWSYNC_SOURCE_REPO")
	if err != nil {
		return nil, err
	}
	targetRepo, err := requireRepo("REVIEWSYNC_TARGET_REPO")
	if err != nil {
		return nil, err
	}

	prAuthor := os.Getenv("REVIEWSYNC_PR_AUTHOR")
	if prAuthor == "" {
		return nil, fmt.Errorf("REVIEWSYNC_PR_AUTHOR is required")
	}
	botLogin := os.Getenv("REVIEWSYNC_BOT_LOGIN")
	if botLogin == "" {
		return nil, fmt.Errorf("REVIEWSYNC_BOT_LOGIN is required")
	}

	cfg := &Config{
		GitHubToken:   token,
		SourceRepo:    sourceRepo,
		TargetRepo:    targetRepo,
		BaseBranch:    getEnvDefault("REVIEWSYNC_BASE_BRANCH", "main"),
		PRAuthor:      prAuthor,
		BotLogin:      botLogin,
		SummaryMarker: getEnvDefault("REVIEWSYNC_SUMMARY_MARKER", "Additional Comments"),
		FooterMarker:  getEnvDefault("REVIEWSYNC_FOOTER_MARKER", "Review settings"),
		DBPath:        getEnvDefault("REVIEWSYNC_DB_PATH", "reviewsync.db"),
		MaxAttempts:   3,
		PostPace:      2 * time.Second,
		RetryBackoff:  2 * time.Second,
	}

	if cfg.PostPace, err = durationEnv("REVIEWSYNC_POST_PACE", cfg.PostPace); err != nil {
		return nil, err
	}
	if cfg.RetryBackoff, err = durationEnv("REVIEWSYNC_RETRY_BACKOFF", cfg.RetryBackoff); err != nil {
		return nil, err
	}
	if cfg.SyncInterval, err = durationEnv("REVIEWSYNC_SYNC_INTERVAL", 0); err != nil {
		return nil, err
	}

	if v, ok := os.LookupEnv("REVIEWSYNC_MAX_ATTEMPTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("REVIEWSYNC_MAX_ATTEMPTS has invalid value %q: expected positive integer", v)
		}
		cfg.MaxAttempts = n
	}

	return cfg, nil
}

// requireRepo reads an env var that must be a non-empty "owner/repo" string.
func requireRepo(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	parts := strings.SplitN(v, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("%s has invalid value %q: expected owner/repo", key, v)
	}
	return v, nil
}

func getEnvDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", key, v, err)
	}
	return parsed, nil
}
