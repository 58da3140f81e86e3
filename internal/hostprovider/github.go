package hostprovider

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/go-github/v81/github"
)

// GitHubProvider implements Provider against the GitHub releases API.
// Authenticates with GITHUB_TOKEN when set, falling back to an
// unauthenticated client (rate-limited) for public-repo dry runs,
// mirroring the auth pattern the teacher's poller uses.
type GitHubProvider struct {
	client *github.Client
}

// NewGitHubProvider builds a GitHubProvider. token may be empty.
func NewGitHubProvider(token string) *GitHubProvider {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHubProvider{client: client}
}

func (p *GitHubProvider) CreateDraft(ctx context.Context, owner, repo, tag string, opts ReleaseOptions) (*DraftRelease, error) {
	rel, _, err := p.client.Repositories.CreateRelease(ctx, owner, repo, &github.RepositoryRelease{
		TagName:    github.Ptr(tag),
		Name:       github.Ptr(opts.Name),
		Body:       github.Ptr(opts.Body),
		Draft:      github.Ptr(true),
		Prerelease: github.Ptr(opts.Prerelease),
	})
	if err != nil {
		return nil, fmt.Errorf("create draft release %s: %w", tag, err)
	}
	return &DraftRelease{ID: rel.GetID(), Tag: tag, HTMLURL: rel.GetHTMLURL()}, nil
}

// Upload attaches an asset to a draft release. The GitHub API requires an
// *os.File, so r is spooled through a temp file when the caller didn't
// already hand us one.
func (p *GitHubProvider) Upload(ctx context.Context, owner, repo string, release *DraftRelease, name string, r io.Reader, size int64) (*UploadedAsset, error) {
	f, ok := r.(*os.File)
	if !ok {
		tmp, err := os.CreateTemp("", "distplan-upload-*")
		if err != nil {
			return nil, fmt.Errorf("spool asset %s: %w", name, err)
		}
		defer os.Remove(tmp.Name())
		defer tmp.Close()
		if _, err := io.Copy(tmp, r); err != nil {
			return nil, fmt.Errorf("spool asset %s: %w", name, err)
		}
		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("spool asset %s: %w", name, err)
		}
		f = tmp
	}

	asset, _, err := p.client.Repositories.UploadReleaseAsset(ctx, owner, repo, release.ID, &github.UploadOptions{Name: name}, f)
	if err != nil {
		return nil, fmt.Errorf("upload asset %s to release %s: %w", name, release.Tag, err)
	}
	return &UploadedAsset{Name: asset.GetName(), DownloadURL: asset.GetBrowserDownloadURL()}, nil
}

func (p *GitHubProvider) Publish(ctx context.Context, owner, repo string, release *DraftRelease) error {
	_, _, err := p.client.Repositories.EditRelease(ctx, owner, repo, release.ID, &github.RepositoryRelease{
		Draft: github.Ptr(false),
	})
	if err != nil {
		return fmt.Errorf("publish release %s: %w", release.Tag, err)
	}
	return nil
}

// RepoSlug splits an "owner/repo" hosting slug into its two parts.
func RepoSlug(slug string) (owner, repo string, err error) {
	for i := 0; i < len(slug); i++ {
		if slug[i] == '/' {
			return slug[:i], slug[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("invalid repo slug %q, want owner/repo", slug)
}
