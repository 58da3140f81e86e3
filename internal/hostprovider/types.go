// Package hostprovider drives the "host" phase of the job graph: it
// creates a draft release, uploads the artifacts the planner selected,
// and later flips that draft to visible when the announce phase is
// reached. The only implementation is GitHub, matching the planner's
// single supported hosting provider.
package hostprovider

import (
	"context"
	"io"
)

// DraftRelease identifies a release created on the hosting provider
// before any artifacts are attached.
type DraftRelease struct {
	// ID is the provider-native release identifier.
	ID int64

	// Tag is the release's tag name.
	Tag string

	// HTMLURL is the provider's web URL for the release, available as
	// soon as the draft exists.
	HTMLURL string
}

// UploadedAsset is a single artifact attached to a DraftRelease.
type UploadedAsset struct {
	Name        string
	DownloadURL string
}

// ReleaseOptions configures a draft release at creation time.
type ReleaseOptions struct {
	Name       string
	Body       string
	Prerelease bool
}

// Provider drives a single hosting provider through the announcement
// state machine's hosted(draft) -> announced transitions.
type Provider interface {
	// CreateDraft creates a new draft release for tag. Entering
	// hosted(draft) requires every selected artifact to then be
	// uploaded via Upload.
	CreateDraft(ctx context.Context, owner, repo, tag string, opts ReleaseOptions) (*DraftRelease, error)

	// Upload attaches name's contents from r to an existing draft
	// release.
	Upload(ctx context.Context, owner, repo string, release *DraftRelease, name string, r io.Reader, size int64) (*UploadedAsset, error)

	// Publish flips a draft release to visible, the point at which the
	// announcement moves to "announced" and asset URLs become
	// permanent.
	Publish(ctx context.Context, owner, repo string, release *DraftRelease) error
}
