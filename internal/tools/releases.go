package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultReleaseURL is the GitHub "latest release" endpoint for the formatter.
const DefaultReleaseURL = "https://api.github.com/repos/GDQuest/GDScript-formatter/releases/latest"

type githubReleaseAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type githubRelease struct {
	TagName string               `json:"tag_name"`
	Assets  []githubReleaseAsset `json:"assets"`
}

// fetchLatestRelease queries the release endpoint, retrying transport errors
// and 5xx responses within the configured retry budget.
func (m *Manager) fetchLatestRelease(ctx context.Context) (githubRelease, error) {
	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(250*time.Millisecond),
		backoff.WithMaxInterval(2*time.Second),
	)
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(max(m.retries, 0))), ctx)

	return backoff.RetryNotifyWithData(func() (githubRelease, error) {
		return m.requestRelease(ctx)
	}, policy, func(err error, wait time.Duration) {
		m.log.V(1).Info("retrying release lookup", "url", m.releaseURL, "error", err.Error(), "wait", wait)
	})
}

func (m *Manager) requestRelease(ctx context.Context) (githubRelease, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.releaseURL, nil)
	if err != nil {
		return githubRelease{}, backoff.Permanent(fmt.Errorf("create release request: %w", err))
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return githubRelease{}, &NetworkError{Op: "query release", URL: m.releaseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &NetworkError{
			Op:  "query release",
			URL: m.releaseURL,
			Err: fmt.Errorf("unexpected status %s", resp.Status),
		}
		if resp.StatusCode >= 500 {
			return githubRelease{}, statusErr
		}
		return githubRelease{}, backoff.Permanent(statusErr)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return githubRelease{}, backoff.Permanent(fmt.Errorf("parse release JSON: %w", err))
	}
	if strings.TrimSpace(release.TagName) == "" {
		return githubRelease{}, backoff.Permanent(fmt.Errorf("release metadata missing tag_name"))
	}
	return release, nil
}

// selectAsset picks the zip asset built for platform.
func selectAsset(release githubRelease, platform Platform) (githubReleaseAsset, error) {
	needle := "-" + platform.Key()
	for _, asset := range release.Assets {
		if strings.HasPrefix(asset.Name, assetPrefix) &&
			strings.Contains(asset.Name, needle) &&
			strings.HasSuffix(asset.Name, assetExtension) {
			return asset, nil
		}
	}
	return githubReleaseAsset{}, fmt.Errorf("no downloadable formatter asset found for %s in release %s", platform.Key(), release.TagName)
}
