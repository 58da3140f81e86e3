package artifact

import (
	"fmt"
	"strings"
)

// URLBase resolves the base URL artifacts will be fetched from, in
// precedence order: an explicit override (urlBaseOverride, the
// "artifact-url-base" config key), then the hosting provider's known
// download-URL pattern, then a bare fallback built from the repository
// URL.
//
// Only "github" is implemented as a known pattern; any other hosting
// value falls through to the repository-URL fallback.
func URLBase(urlBaseOverride, hosting, repoURL, tag string) string {
	if urlBaseOverride != "" {
		return strings.TrimSuffix(urlBaseOverride, "/")
	}
	switch hosting {
	case "github":
		repo := githubRepoSlug(repoURL)
		if repo != "" {
			return fmt.Sprintf("https://github.com/%s/releases/download/%s", repo, tag)
		}
	}
	if repoURL == "" {
		return ""
	}
	return strings.TrimSuffix(repoURL, "/") + "/releases/download/" + tag
}

// GithubRepoSlug extracts "owner/name" from an https or ssh GitHub remote
// URL, for callers outside this package (the host and announce commands'
// resolveHostRepo) that need the same repo identification URLBase uses
// internally.
func GithubRepoSlug(repoURL string) string {
	return githubRepoSlug(repoURL)
}

// githubRepoSlug extracts "owner/name" from an https or ssh GitHub remote
// URL. Returns "" if repoURL does not look like a GitHub remote.
func githubRepoSlug(repoURL string) string {
	url := strings.TrimSuffix(repoURL, ".git")
	switch {
	case strings.HasPrefix(url, "https://github.com/"):
		return strings.TrimPrefix(url, "https://github.com/")
	case strings.HasPrefix(url, "git@github.com:"):
		return strings.TrimPrefix(url, "git@github.com:")
	default:
		return ""
	}
}
