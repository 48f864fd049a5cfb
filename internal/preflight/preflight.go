package preflight

import (
	"context"
	"fmt"
	"path/filepath"

	"vynlassets/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// Failed reports whether the check failed and should fail the overall run.
func (r Result) Failed() bool {
	return !r.Passed && !r.Optional
}

// RunAll executes every preflight check for cfg in a stable order.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckReadableDir("Music root", cfg.Paths.MusicRoot),
		CheckReadableDir("Graphics directory", cfg.Paths.GraphicsDir),
		CheckFriendsImages(cfg),
	}

	for _, album := range cfg.Albums {
		if ctx.Err() != nil {
			return results
		}
		result := CheckReadableDir(fmt.Sprintf("Album %s", album.Name), album.Source)
		result.Optional = true
		results = append(results, result)
	}

	profile := CheckReadableFile("Profile image", cfg.Profile.Source)
	profile.Optional = true
	results = append(results, profile)

	results = append(results, CheckWritableDir("Public directory", cfg.Paths.PublicDir))
	return results
}

// AnyFailed reports whether any required check failed.
func AnyFailed(results []Result) bool {
	for _, r := range results {
		if r.Failed() {
			return true
		}
	}
	return false
}

// CheckFriendsImages counts how many configured friends images exist.
func CheckFriendsImages(cfg *config.Config) Result {
	const name = "Friends images"

	var present, listed int
	var firstMissing string
	for _, image := range cfg.Friends.Images {
		if image == "" {
			continue
		}
		listed++
		if CheckReadableFile(name, filepath.Join(cfg.Paths.GraphicsDir, image)).Passed {
			present++
		} else if firstMissing == "" {
			firstMissing = image
		}
	}

	result := Result{Name: name, Optional: true, Passed: present == listed}
	result.Detail = fmt.Sprintf("%d/%d present", present, listed)
	if firstMissing != "" {
		result.Detail += fmt.Sprintf(" (first missing: %s)", firstMissing)
	}
	return result
}
