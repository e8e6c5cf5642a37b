package update

import "testing"

func TestValidateRepo(t *testing.T) {
	valid := []string{
		"emberhold-games/emberhold",
		"org.repo/name-1",
	}
	for _, repo := range valid {
		if err := validateRepo(repo); err != nil {
			t.Fatalf("expected valid repo %q, got error: %v", repo, err)
		}
	}

	invalid := []string{
		"",
		"owner",
		"owner/repo/extra",
		"owner /repo",
		"owner/repo?x=1",
		"../owner/repo",
	}
	for _, repo := range invalid {
		if err := validateRepo(repo); err == nil {
			t.Fatalf("expected invalid repo %q to fail", repo)
		}
	}
}

func TestValidateHTTPSURL(t *testing.T) {
	allowed := map[string]struct{}{
		"github.com": {},
	}

	if err := validateHTTPSURL("https://github.com/emberhold-games/emberhold", allowed); err != nil {
		t.Fatalf("expected allowed URL to pass: %v", err)
	}

	if err := validateHTTPSURL("http://github.com/emberhold-games/emberhold", allowed); err == nil {
		t.Fatalf("expected non-https URL to fail")
	}

	if err := validateHTTPSURL("https://example.com/emberhold-games/emberhold", allowed); err == nil {
		t.Fatalf("expected non-allowlisted host URL to fail")
	}
}

func TestReleaseStatus(t *testing.T) {
	cases := []struct {
		latestTag string
		current   string
		want      string
	}{
		{"v0.3.0", "0.3.0", "Up to date (v0.3.0)."},
		{"v0.3.0", "v0.3.0", "Up to date (v0.3.0)."},
		{"v0.3.0", "dev", "Latest release is v0.3.0."},
		{"v0.3.0", "", "Latest release is v0.3.0."},
		{"v0.4.0", "0.3.0", "Update available: v0.3.0 → v0.4.0. Grab it from the releases page."},
	}
	for _, tc := range cases {
		if got := releaseStatus(tc.latestTag, tc.current); got != tc.want {
			t.Fatalf("releaseStatus(%q, %q): got %q want %q", tc.latestTag, tc.current, got, tc.want)
		}
	}
}
