// Package version checks GitHub for newer cutroom releases. Results
// are cached on disk so the editor does not hit the network on every
// launch.
package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	repoOwner = "wilbur182"
	repoName  = "cutroom"
	apiURL    = "https://api.github.com/repos/%s/%s/releases/latest"
)

// Release represents a GitHub release response.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
}

// CheckResult holds the result of a version check.
type CheckResult struct {
	CurrentVersion string
	LatestVersion  string
	UpdateURL      string
	ReleaseNotes   string
	HasUpdate      bool
	Error          error
}

// Check fetches the latest release from GitHub and compares versions.
// Development builds skip the check and report no update.
func Check(currentVersion string) CheckResult {
	result := CheckResult{CurrentVersion: currentVersion}

	if isDevelopmentVersion(currentVersion) {
		return result
	}

	client := &http.Client{Timeout: 5 * time.Second}
	url := fmt.Sprintf(apiURL, repoOwner, repoName)

	resp, err := client.Get(url)
	if err != nil {
		result.Error = err
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Errorf("github api: %s", resp.Status)
		return result
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		result.Error = err
		return result
	}

	result.LatestVersion = release.TagName
	result.UpdateURL = release.HTMLURL
	result.ReleaseNotes = release.Body
	result.HasUpdate = isNewer(release.TagName, currentVersion)

	return result
}

// isDevelopmentVersion returns true for non-release versions.
func isDevelopmentVersion(v string) bool {
	if v == "" || v == "unknown" || v == "devel" {
		return true
	}
	if strings.HasPrefix(v, "devel+") {
		return true
	}
	return false
}

// isNewer reports whether the latest tag describes a release newer
// than the running version. Dotted parts compare numerically when both
// sides are numbers.
func isNewer(latest, current string) bool {
	l, c := normalize(latest), normalize(current)
	if l == "" || c == "" || l == c {
		return false
	}

	lp, cp := strings.Split(l, "."), strings.Split(c, ".")
	for i := 0; i < len(lp) || i < len(cp); i++ {
		ls, cs := versionPart(lp, i), versionPart(cp, i)
		ln, lerr := strconv.Atoi(ls)
		cn, cerr := strconv.Atoi(cs)
		if lerr == nil && cerr == nil {
			if ln != cn {
				return ln > cn
			}
			continue
		}
		if ls != cs {
			return ls > cs
		}
	}
	return false
}

// normalize strips the leading v and any pre-release or build suffix.
func normalize(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	return v
}

func versionPart(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return "0"
}
