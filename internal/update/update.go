package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	// Hard-wire your repo here
	defaultRepo = "emberhold-games/emberhold"

	// GitHub API base
	githubAPI = "https://api.github.com"

	maxReleaseBodyBytes = 1 << 20
)

var (
	allowedAssetHosts = map[string]struct{}{
		"api.github.com":                        {},
		"github.com":                            {},
		"objects.githubusercontent.com":         {},
		"github-releases.githubusercontent.com": {},
	}
	repoPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)
)

// Check asks GitHub for the latest release and reports how the running
// build compares. It only reads: downloading and swapping the binary is
// left to the player and their package manager.
func Check(currentVersion string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	rel, err := fetchLatestRelease(ctx, defaultRepo)
	if err != nil {
		return "", err
	}
	return releaseStatus(rel.TagName, currentVersion), nil
}

// releaseStatus is the compare half of Check, split out so it can be
// exercised without the network. Very lightweight compare: equal means
// up to date, dev builds just hear what the latest is.
func releaseStatus(latestTag, currentVersion string) string {
	latest := strings.TrimPrefix(latestTag, "v")
	current := strings.TrimPrefix(currentVersion, "v")

	switch {
	case latest == current:
		return fmt.Sprintf("Up to date (v%s).", latest)
	case current == "dev" || current == "":
		return fmt.Sprintf("Latest release is v%s.", latest)
	default:
		return fmt.Sprintf("Update available: v%s → v%s. Grab it from the releases page.", current, latest)
	}
}

// ---- GitHub release API ----

type githubRelease struct {
	TagName string        `json:"tag_name"`
	Assets  []githubAsset `json:"assets"`
}

type githubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

func safeHTTPClient() *http.Client {
	return &http.Client{Timeout: 20 * time.Second}
}

func validateRepo(repo string) error {
	if !repoPattern.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %q", repo)
	}
	return nil
}

func validateHTTPSURL(raw string, allowedHosts map[string]struct{}) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if !strings.EqualFold(parsed.Scheme, "https") {
		return fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme)
	}
	host := strings.ToLower(parsed.Hostname())
	if _, ok := allowedHosts[host]; !ok {
		return fmt.Errorf("unsupported URL host: %s", host)
	}
	return nil
}

func fetchLatestRelease(ctx context.Context, repo string) (*githubRelease, error) {
	if err := validateRepo(repo); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/repos/%s/releases/latest", githubAPI, repo)
	if err := validateHTTPSURL(url, map[string]struct{}{"api.github.com": {}}); err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	req.Header.Set("Accept", "application/vnd.github+json")

	// #nosec G704 -- URL is fixed to api.github.com and validated above.
	resp, err := safeHTTPClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("github latest release: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var rel githubRelease
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReleaseBodyBytes)).Decode(&rel); err != nil {
		return nil, err
	}
	if rel.TagName == "" {
		return nil, errors.New("latest release has no tag_name")
	}

	for _, asset := range rel.Assets {
		if err := validateHTTPSURL(asset.BrowserDownloadURL, allowedAssetHosts); err != nil {
			return nil, fmt.Errorf("invalid asset URL for %s: %w", asset.Name, err)
		}
	}

	return &rel, nil
}
