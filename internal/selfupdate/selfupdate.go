// Package selfupdate implements `mftfind update`: check GitHub releases
// for a newer build and replace the running executable in place.
package selfupdate

import (
	"context"
	"errors"
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
)

// Repository is the GitHub slug releases are published under.
const Repository = "mftfind/mftfind"

// Update checks Repository for a release newer than currentVersion and, if
// one exists, downloads and replaces the running executable. currentVersion
// must be a real semantic version; "dev" builds refuse to update.
func Update(ctx context.Context, currentVersion string) (string, error) {
	if currentVersion == "" || currentVersion == "dev" {
		return "", errors.New("selfupdate: not available for development builds")
	}
	if _, err := semver.ParseTolerant(currentVersion); err != nil {
		return "", fmt.Errorf("selfupdate: parse current version %q: %w", currentVersion, err)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(Repository))
	if err != nil {
		return "", fmt.Errorf("selfupdate: detect latest release: %w", err)
	}
	if !found {
		return "", fmt.Errorf("selfupdate: no release found for %s", Repository)
	}
	if latest.LessOrEqual(currentVersion) {
		return currentVersion, nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return "", fmt.Errorf("selfupdate: locate running executable: %w", err)
	}
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return "", fmt.Errorf("selfupdate: replace executable: %w", err)
	}

	return latest.Version(), nil
}
