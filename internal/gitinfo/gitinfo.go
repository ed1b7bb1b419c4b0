// Package gitinfo resolves the git facts displayed by the git widgets.
package gitinfo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/alexisbeaulieu97/statusline/internal/logger"
)

// maxAheadBehindWalk bounds the commit walk used for ahead/behind counts.
const maxAheadBehindWalk = 2000

// Info is a snapshot of a working tree.
type Info struct {
	Branch      string
	Detached    bool
	Commit      string
	RootDir     string
	Staged      int
	Modified    int
	Untracked   int
	HasUpstream bool
	Ahead       int
	Behind      int
}

// Dirty reports whether the working tree has any staged, modified or untracked files.
func (i *Info) Dirty() bool {
	if i == nil {
		return false
	}
	return i.Staged > 0 || i.Modified > 0 || i.Untracked > 0
}

// Provider looks up git facts for a directory. A nil Info with a nil error means
// the directory is not inside a repository.
type Provider interface {
	Lookup(ctx context.Context, dir string) (*Info, error)
}

// GoGitProvider reads repositories with go-git, without shelling out.
type GoGitProvider struct {
	log *logger.Logger
}

// NewProvider returns a go-git backed Provider.
func NewProvider(log *logger.Logger) *GoGitProvider {
	return &GoGitProvider{log: log}
}

var _ Provider = (*GoGitProvider)(nil)

// Lookup opens the repository containing dir and collects branch, status and upstream facts.
func (p *GoGitProvider) Lookup(ctx context.Context, dir string) (*Info, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(dir) == "" {
		return nil, nil
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true, EnableDotGitCommonDir: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil
		}
		return nil, fmt.Errorf("open repository at %s: %w", dir, err)
	}

	info := &Info{}

	worktree, err := repo.Worktree()
	if err == nil {
		info.RootDir = worktree.Filesystem.Root()
	}

	head, err := repo.Head()
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// Fresh repository without commits: HEAD names a branch that does not exist yet.
		if ref, refErr := repo.Reference(plumbing.HEAD, false); refErr == nil && ref.Type() == plumbing.SymbolicReference {
			info.Branch = ref.Target().Short()
		}
	case err != nil:
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	default:
		info.Commit = head.Hash().String()
		if head.Name().IsBranch() {
			info.Branch = head.Name().Short()
		} else {
			info.Detached = true
		}
	}

	if worktree != nil {
		if ctx != nil && ctx.Err() != nil {
			return info, ctx.Err()
		}
		st, statusErr := worktree.Status()
		if statusErr != nil {
			p.log.WithField("dir", dir).Error(statusErr, "git status failed")
		} else {
			countStatus(info, st)
		}
	}

	if info.Branch != "" && head != nil {
		if err := p.fillUpstream(ctx, repo, head, info); err != nil {
			p.log.WithField("branch", info.Branch).Debug(fmt.Sprintf("upstream lookup skipped: %v", err))
		}
	}

	return info, nil
}

func countStatus(info *Info, st git.Status) {
	for _, fs := range st {
		if fs.Worktree == git.Untracked {
			info.Untracked++
			continue
		}
		if fs.Staging != git.Unmodified {
			info.Staged++
		}
		if fs.Worktree != git.Unmodified {
			info.Modified++
		}
	}
}

func (p *GoGitProvider) fillUpstream(ctx context.Context, repo *git.Repository, head *plumbing.Reference, info *Info) error {
	branchCfg, err := repo.Branch(info.Branch)
	if err != nil {
		return err
	}
	if branchCfg.Remote == "" || branchCfg.Merge == "" {
		return nil
	}

	upstreamName := plumbing.NewRemoteReferenceName(branchCfg.Remote, branchCfg.Merge.Short())
	upstream, err := repo.Reference(upstreamName, true)
	if err != nil {
		return err
	}
	info.HasUpstream = true

	if upstream.Hash() == head.Hash() {
		return nil
	}

	local, err := repo.CommitObject(head.Hash())
	if err != nil {
		return err
	}
	remote, err := repo.CommitObject(upstream.Hash())
	if err != nil {
		return err
	}

	bases, err := local.MergeBase(remote)
	if err != nil {
		return err
	}
	var base plumbing.Hash
	if len(bases) > 0 {
		base = bases[0].Hash
	}

	if info.Ahead, err = countUntil(ctx, repo, local.Hash, base); err != nil {
		return err
	}
	if info.Behind, err = countUntil(ctx, repo, remote.Hash, base); err != nil {
		return err
	}
	return nil
}

var errStopWalk = errors.New("stop walk")

// countUntil counts commits reachable from start before reaching stop.
func countUntil(ctx context.Context, repo *git.Repository, start, stop plumbing.Hash) (int, error) {
	iter, err := repo.Log(&git.LogOptions{From: start})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	count := 0
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash == stop || count >= maxAheadBehindWalk {
			return errStopWalk
		}
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		count++
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return count, err
	}
	return count, nil
}

// ShortCommit returns the abbreviated commit hash.
func (i *Info) ShortCommit() string {
	if i == nil {
		return ""
	}
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// RepoName returns the base name of the repository root.
func (i *Info) RepoName() string {
	if i == nil || i.RootDir == "" {
		return ""
	}
	return filepath.Base(i.RootDir)
}
