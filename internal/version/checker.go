package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const checkTimeout = 5 * time.Second

// ReleasesURL is the endpoint describing the latest published release.
// Tests point it at a local server.
var ReleasesURL = "https://api.github.com/repos/studiowebux/lifeweeks/releases/latest"

// Release is the subset of the GitHub release payload that is used
type Release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// UpdateInfo is the outcome of an update check
type UpdateInfo struct {
	Available bool
	Latest    string
	URL       string
}

// CheckForUpdate reports whether a release newer than currentVersion exists.
// Development builds ("dev" or empty) never report an update.
func CheckForUpdate(ctx context.Context, currentVersion string) (UpdateInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return UpdateInfo{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "lifeweeks/"+currentVersion)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return UpdateInfo{}, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UpdateInfo{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return UpdateInfo{}, fmt.Errorf("failed to decode response: %w", err)
	}

	info := UpdateInfo{
		Latest: strings.TrimPrefix(release.TagName, "v"),
		URL:    release.HTMLURL,
	}
	current := strings.TrimPrefix(currentVersion, "v")
	if current == "" || current == "dev" {
		return info, nil
	}
	info.Available = info.Latest != "" && isNewerVersion(info.Latest, current)
	return info, nil
}

// isNewerVersion compares two dotted versions and returns true if latest > current.
// Pre-release and build suffixes are ignored.
func isNewerVersion(latest, current string) bool {
	latestParts := parseVersion(latest)
	currentParts := parseVersion(current)

	n := max(len(latestParts), len(currentParts))
	for i := 0; i < n; i++ {
		var l, c int
		if i < len(latestParts) {
			l = latestParts[i]
		}
		if i < len(currentParts) {
			c = currentParts[i]
		}
		if l != c {
			return l > c
		}
	}
	return false
}

func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))
	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		result = append(result, num)
	}
	return result
}
