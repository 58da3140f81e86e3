package release

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NoMatchingReleases is returned when a tag selects no package at all: a
// singular tag naming an unknown package, a unified tag whose version
// matches nothing, or a version mismatch for a named package.
type NoMatchingReleases struct {
	Tag     string
	Reason  string
	Version string
}

func (e *NoMatchingReleases) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("no matching releases for tag %q: %s (version %s)", e.Tag, e.Reason, e.Version)
	}
	return fmt.Sprintf("no matching releases for tag %q: %s", e.Tag, e.Reason)
}

func (e *NoMatchingReleases) JSON() ([]byte, error) {
	type wire struct {
		Tag     string `json:"tag"`
		Reason  string `json:"reason"`
		Version string `json:"version,omitempty"`
	}
	return json.MarshalIndent(wire{Tag: e.Tag, Reason: e.Reason, Version: e.Version}, "", "  ")
}

// AmbiguousAnnouncement is returned when no tag is given and the distable
// packages in the workspace disagree about their own version, so there is
// no single implicit version to announce.
type AmbiguousAnnouncement struct {
	Candidates []string
}

func (e *AmbiguousAnnouncement) Error() string {
	return fmt.Sprintf("ambiguous implicit announcement: candidate versions %s", strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousAnnouncement) JSON() ([]byte, error) {
	type wire struct {
		Candidates []string `json:"candidates"`
	}
	return json.MarshalIndent(wire{Candidates: e.Candidates}, "", "  ")
}
