// Package hook resolves and executes the user hook identifiers a
// workspace can list under plan-jobs/host-jobs/publish-jobs/
// build-local-artifacts-jobs/build-global-artifacts-jobs/
// post-announce-jobs. A hook is either a well-known Task name, run
// in-process through the embedded Task runner, or a leading-"./"
// workflow file reference that only CI executes — distplan's job graph
// records it as a job but never runs it itself.
package hook

import "strings"

// Kind distinguishes the two forms a hook identifier can take.
type Kind int

const (
	// KindWellKnown names a task in the workspace's embedded Taskfile.
	KindWellKnown Kind = iota

	// KindWorkflowFile is a "./path/to/workflow.yml"-style reference to
	// a CI workflow file. distplan validates it exists but leaves
	// execution to the CI provider.
	KindWorkflowFile
)

// Identifier is a parsed hook reference.
type Identifier struct {
	Kind Kind

	// Name is the well-known task name, set only when Kind is
	// KindWellKnown.
	Name string

	// Path is the workflow file path, set only when Kind is
	// KindWorkflowFile.
	Path string
}

// Parse classifies a raw hook identifier string from config.
func Parse(raw string) Identifier {
	if strings.HasPrefix(raw, "./") {
		return Identifier{Kind: KindWorkflowFile, Path: raw}
	}
	return Identifier{Kind: KindWellKnown, Name: raw}
}

// String returns the identifier in its original configured form.
func (id Identifier) String() string {
	if id.Kind == KindWorkflowFile {
		return id.Path
	}
	return id.Name
}
