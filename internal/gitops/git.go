// Package gitops provides git operations using go-git, eliminating the need
// for the git binary to be installed on the system.
package gitops

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RemoteURL returns the first fetch URL configured for "origin", used by
// the artifact planner to derive a GitHub repo slug when no explicit
// repository URL is configured.
func RemoteURL(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", fmt.Errorf("opening repo: %w", err)
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("looking up origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no configured URL")
	}
	return urls[0], nil
}

// IsDirty reports whether the worktree at path has uncommitted changes,
// used by the planner's --allow-dirty gate.
func IsDirty(path string) (bool, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return false, fmt.Errorf("opening repo: %w", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("reading status: %w", err)
	}
	return !status.IsClean(), nil
}

// IsRepo returns true if the path is a git repository
func IsRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// Archive writes a gzipped tarball of the tree at ref (HEAD if empty),
// rooted under prefix, to w. It walks the commit tree directly rather
// than touching the worktree, so it produces identical output regardless
// of what is currently checked out.
func Archive(path, ref, prefix string, w io.Writer) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("failed to open repo: %w", err)
	}

	var commit *object.Commit
	if ref == "" {
		head, err := repo.Head()
		if err != nil {
			return fmt.Errorf("failed to get HEAD: %w", err)
		}
		commit, err = repo.CommitObject(head.Hash())
		if err != nil {
			return fmt.Errorf("failed to resolve HEAD commit: %w", err)
		}
	} else {
		hash, err := repo.ResolveRevision(plumbing.Revision(ref))
		if err != nil {
			return fmt.Errorf("failed to resolve ref %s: %w", ref, err)
		}
		commit, err = repo.CommitObject(*hash)
		if err != nil {
			return fmt.Errorf("failed to resolve commit %s: %w", ref, err)
		}
	}

	tree, err := commit.Tree()
	if err != nil {
		return fmt.Errorf("failed to get tree: %w", err)
	}

	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	walker := object.NewTreeWalker(tree, true, nil)
	defer walker.Close()

	for {
		name, entry, err := walker.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to walk tree: %w", err)
		}
		if !entry.Mode.IsFile() {
			continue
		}

		blob, err := repo.BlobObject(entry.Hash)
		if err != nil {
			return fmt.Errorf("failed to read blob %s: %w", name, err)
		}
		reader, err := blob.Reader()
		if err != nil {
			return fmt.Errorf("failed to open blob %s: %w", name, err)
		}

		hdr := &tar.Header{
			Name: filepath.ToSlash(filepath.Join(prefix, name)),
			Mode: int64(entry.Mode),
			Size: blob.Size,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			reader.Close()
			return fmt.Errorf("failed to write tar header for %s: %w", name, err)
		}
		if _, err := io.Copy(tw, reader); err != nil {
			reader.Close()
			return fmt.Errorf("failed to write tar body for %s: %w", name, err)
		}
		reader.Close()
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finalize tar: %w", err)
	}
	return gz.Close()
}
