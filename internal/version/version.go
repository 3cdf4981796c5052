package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-version"
	"go.uber.org/zap"
)

// AppVersion is overridden at build time with -ldflags "-X .../internal/version.AppVersion=v1.2.3".
var AppVersion = "v0.0.0"

const releasesURL = "https://api.github.com/repos/nulzo/prompt-router/releases/latest"

type release struct {
	TagName string `json:"tag_name"`
}

// Checker compares the running version against the latest published release.
type Checker struct {
	URL     string
	Current string
	Client  *http.Client
}

func NewChecker() *Checker {
	return &Checker{
		URL:     releasesURL,
		Current: AppVersion,
		Client:  &http.Client{Timeout: 2 * time.Second},
	}
}

// Latest returns the newest release tag and whether it is ahead of Current.
func (c *Checker) Latest(ctx context.Context) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("release check: unexpected status %d", resp.StatusCode)
	}

	var r release
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", false, fmt.Errorf("release check: %w", err)
	}

	current, err := version.NewVersion(c.Current)
	if err != nil {
		return "", false, fmt.Errorf("release check: current version %q: %w", c.Current, err)
	}
	latest, err := version.NewVersion(r.TagName)
	if err != nil {
		return "", false, fmt.Errorf("release check: latest version %q: %w", r.TagName, err)
	}

	return r.TagName, current.LessThan(latest), nil
}

// CheckForUpdates logs a warning when a newer release exists. Failures are only logged at debug.
func (c *Checker) CheckForUpdates(ctx context.Context, logger *zap.Logger) {
	latest, outdated, err := c.Latest(ctx)
	if err != nil {
		logger.Debug("Release check failed", zap.Error(err))
		return
	}
	if outdated {
		logger.Warn("You are running an outdated version",
			zap.String("current", c.Current),
			zap.String("latest", latest),
		)
	}
}
