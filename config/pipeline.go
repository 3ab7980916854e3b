package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	MinPageCount = 2
	MaxPageCount = 8
)

type PipelineConfig struct {
	DefaultPageCount   int
	DefaultVoiceID     string
	DefaultStyle       string
	MaxConcurrentPages int
	CallTimeout        time.Duration
	MaxAttempts        int
}

func GetPipelineConfig() (*PipelineConfig, error) {
	defaultPageCount := 4
	if pageCount := os.Getenv("DEFAULT_PAGE_COUNT"); pageCount != "" {
		parsed, err := strconv.Atoi(pageCount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DEFAULT_PAGE_COUNT: %w", err)
		}
		if parsed < MinPageCount || parsed > MaxPageCount {
			return nil, fmt.Errorf("DEFAULT_PAGE_COUNT must be between %d and %d", MinPageCount, MaxPageCount)
		}
		defaultPageCount = parsed
	}

	defaultVoiceID := os.Getenv("DEFAULT_VOICE_ID")
	if defaultVoiceID == "" {
		return nil, fmt.Errorf("DEFAULT_VOICE_ID must be set")
	}

	defaultStyle := os.Getenv("DEFAULT_STYLE")
	if defaultStyle == "" {
		defaultStyle = "fantasy"
	}

	// Page counts are small, so the default is fully parallel stage two.
	maxConcurrentPages := 0
	if maxConcurrent := os.Getenv("MAX_CONCURRENT_PAGES"); maxConcurrent != "" {
		parsed, err := strconv.Atoi(maxConcurrent)
		if err != nil {
			return nil, fmt.Errorf("failed to parse MAX_CONCURRENT_PAGES: %w", err)
		}
		maxConcurrentPages = parsed
	}

	callTimeout := 60 * time.Second
	if timeout := os.Getenv("CALL_TIMEOUT_SECONDS"); timeout != "" {
		parsed, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to parse CALL_TIMEOUT_SECONDS: %w", err)
		}
		callTimeout = time.Duration(parsed) * time.Second
	}

	maxAttempts := 3
	if attempts := os.Getenv("MAX_CALL_ATTEMPTS"); attempts != "" {
		parsed, err := strconv.Atoi(attempts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse MAX_CALL_ATTEMPTS: %w", err)
		}
		maxAttempts = parsed
	}

	return &PipelineConfig{
		DefaultPageCount:   defaultPageCount,
		DefaultVoiceID:     defaultVoiceID,
		DefaultStyle:       defaultStyle,
		MaxConcurrentPages: maxConcurrentPages,
		CallTimeout:        callTimeout,
		MaxAttempts:        maxAttempts,
	}, nil
}

// ClampPageCount bounds a requested page count to the supported range,
// falling back to the configured default when the request carries none.
func (c *PipelineConfig) ClampPageCount(requested int) int {
	if requested == 0 {
		return c.DefaultPageCount
	}
	if requested < MinPageCount {
		return MinPageCount
	}
	if requested > MaxPageCount {
		return MaxPageCount
	}
	return requested
}
