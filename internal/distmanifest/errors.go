package distmanifest

import (
	"encoding/json"
	"fmt"
)

// MergeConflict is returned when two input manifests disagree on a
// scalar field the reducer requires to agree (the merge is the canonical
// planner bug case the spec calls out: siblings must never write
// conflicting scalars).
type MergeConflict struct {
	Field    string
	SystemA  string
	SystemB  string
	ValueA   string
	ValueB   string
}

func (e *MergeConflict) Error() string {
	return fmt.Sprintf("merge conflict on %q: system %s wrote %q, system %s wrote %q", e.Field, e.SystemA, e.ValueA, e.SystemB, e.ValueB)
}

func (e *MergeConflict) JSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// UnsupportedSchema is returned when a manifest declares a dist_version
// too old (or too new) for this reader's compat window.
type UnsupportedSchema struct {
	Found string
	Want  string
}

func (e *UnsupportedSchema) Error() string {
	return fmt.Sprintf("manifest schema %q is outside the supported range (current %s)", e.Found, e.Want)
}

func (e *UnsupportedSchema) JSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}
