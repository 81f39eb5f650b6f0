// Package gitinfo resolves the commit SHA and branch name the scan
// orchestrator stamps onto a ScanRun, via libgit2.
package gitinfo

import (
	"fmt"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

// Info is the commit identity a scan is run against.
type Info struct {
	SHA    string
	Branch string
}

// Resolve opens the git repository at repoPath and reads its current HEAD
// commit and branch name. When repoPath is not a git repository, it returns
// a zero-value Info and no error — a scan can still proceed against a bare
// directory, just without commit-level deduplication.
func Resolve(repoPath string) (Info, error) {
	repo, err := git2go.OpenRepository(repoPath)
	if err != nil {
		return Info{}, nil
	}
	defer repo.Free()

	head, err := repo.Head()
	if err != nil {
		return Info{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	defer head.Free()

	return Info{
		SHA:    head.Target().String(),
		Branch: branchName(head),
	}, nil
}

// branchName derives a short branch name from HEAD's full reference name
// (e.g. "refs/heads/main" -> "main"). Detached HEAD yields an empty string.
func branchName(head *git2go.Reference) string {
	const headsPrefix = "refs/heads/"

	name := head.Name()
	if !strings.HasPrefix(name, headsPrefix) {
		return ""
	}

	return strings.TrimPrefix(name, headsPrefix)
}
