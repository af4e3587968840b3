// Package gitrepo transfers the git objects of a repository from one remote
// to another. Metadata migration happens over the API, this is the separate
// leg that moves the actual history.
package gitrepo

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/iv-mexx/gitlab-migrator/pkg/logger"

	"go.uber.org/zap"
)

// Options holds the clone and push URLs for one repository transfer.
type Options struct {
	FromRepoURL string
	ToRepoURL   string
}

// MigrateRepository clones the full source repository, all branches and tags
// included, into a scratch directory and pushes everything to the destination
// remote. An empty source repository skips the push and succeeds.
func MigrateRepository(opts *Options) error {
	if opts.FromRepoURL == "" || opts.ToRepoURL == "" {
		return fmt.Errorf("source and destination repository URLs are required")
	}

	tmpDir, err := os.MkdirTemp("", "gitlab-migrator-*")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	logger.Logger.Info("Cloning repository",
		zap.String("from", opts.FromRepoURL),
		zap.String("into", tmpDir))
	if err := runGit("clone", "--mirror", opts.FromRepoURL, tmpDir); err != nil {
		return fmt.Errorf("git clone failed: %w", err)
	}

	empty, err := isEmptyRepository(tmpDir)
	if err != nil {
		return err
	}
	if empty {
		logger.Logger.Info("Source repository is empty, skipping push")
		return nil
	}

	logger.Logger.Info("Pushing all branches and tags", zap.String("to", opts.ToRepoURL))
	if err := runGit("-C", tmpDir, "push", opts.ToRepoURL, "--all"); err != nil {
		return fmt.Errorf("git push --all failed: %w", err)
	}
	if err := runGit("-C", tmpDir, "push", opts.ToRepoURL, "--tags"); err != nil {
		return fmt.Errorf("git push --tags failed: %w", err)
	}
	return nil
}

// isEmptyRepository reports whether the clone has no refs at all. git
// show-ref exits non-zero on a refless repository, so only an exit error with
// empty output counts as "empty".
func isEmptyRepository(repoDir string) (bool, error) {
	out, err := exec.Command("git", "-C", repoDir, "show-ref").Output()
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok && len(out) == 0 {
			return true, nil
		}
		return false, fmt.Errorf("git show-ref failed: %w", err)
	}
	return len(out) == 0, nil
}

func runGit(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
