package artifact

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ReferenceNotSatisfied is returned when an installer, Homebrew formula,
// npm package or MSI artifact needs an archive artifact that the planner
// never scheduled — e.g. an
// installer targets a triple with no corresponding executable-zip.
type ReferenceNotSatisfied struct {
	Installer string
	Missing   []string
}

func (e *ReferenceNotSatisfied) Error() string {
	return fmt.Sprintf("installer %q references archives not scheduled: %s", e.Installer, strings.Join(e.Missing, ", "))
}

func (e *ReferenceNotSatisfied) JSON() ([]byte, error) {
	type wire struct {
		Installer string   `json:"installer"`
		Missing   []string `json:"missing"`
	}
	return json.MarshalIndent(wire{Installer: e.Installer, Missing: e.Missing}, "", "  ")
}

// NoChecksumTarget is returned when the configured checksum policy names an
// algorithm but there are no artifacts left to attach it to.
type NoChecksumTarget struct {
	Algorithm string
}

func (e *NoChecksumTarget) Error() string {
	return fmt.Sprintf("checksum algorithm %q configured but no artifacts to checksum", e.Algorithm)
}

func (e *NoChecksumTarget) JSON() ([]byte, error) {
	type wire struct {
		Algorithm string `json:"algorithm"`
	}
	return json.MarshalIndent(wire{Algorithm: e.Algorithm}, "", "  ")
}
