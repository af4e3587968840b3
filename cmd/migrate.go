package cmd

import (
	"fmt"
	"os"

	"github.com/iv-mexx/gitlab-migrator/internal/clients"
	"github.com/iv-mexx/gitlab-migrator/internal/gitrepo"
	"github.com/iv-mexx/gitlab-migrator/internal/migration"
	ghlog "github.com/iv-mexx/gitlab-migrator/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func MigrateProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate a project from the source to the destination instance",
		Long: `Migrate one project and its metadata from the source GitLab instance to the
destination GitLab instance.

The migration resolves or creates the destination group, creates the project,
then copies deploy keys, labels, milestones, issues with their notes, and
snippets with their notes, in that order. Finally the git repository itself is
cloned from the source and pushed to the destination.

GitLab credentials for both instances must be configured via environment
variables.`,
		Example: `gitlab-migrator migrate --project mygroup/myproject`,
		RunE:    migrateProject,
	}

	cmd.Flags().String("project", "", "Source project (numeric ID or path with namespace)")
	cmd.Flags().Bool("skip-repo", false, "Skip the git repository transfer, migrate metadata only")

	if err := cmd.MarkFlagRequired("project"); err != nil {
		ghlog.Logger.Error("failed to mark project as required", zap.Error(err))
		return nil
	}

	return cmd
}

// newMigrator builds the dual-instance migrator from the environment.
func newMigrator() (*migration.Migrator, error) {
	sourceClient, err := clients.NewGitLabClient(
		os.Getenv("SOURCE_GITLAB_ENDPOINT"),
		os.Getenv("SOURCE_GITLAB_TOKEN"),
	).GitlabAuth()
	if err != nil {
		return nil, fmt.Errorf("failed to create source GitLab client: %w", err)
	}

	destClient, err := clients.NewGitLabClient(
		os.Getenv("DEST_GITLAB_ENDPOINT"),
		os.Getenv("DEST_GITLAB_TOKEN"),
	).GitlabAuth()
	if err != nil {
		return nil, fmt.Errorf("failed to create destination GitLab client: %w", err)
	}

	return migration.New(
		migration.NewInstance(sourceClient),
		migration.NewInstance(destClient),
		ghlog.Logger,
	), nil
}

func migrateProject(cmd *cobra.Command, args []string) error {
	if err := VerifyRequiredEnvVars(); err != nil {
		return err
	}
	project, _ := cmd.Flags().GetString("project")
	skipRepo, _ := cmd.Flags().GetBool("skip-repo")

	migrator, err := newMigrator()
	if err != nil {
		return err
	}

	sourceProject, err := migrator.SourceProject(project)
	if err != nil {
		ghlog.Logger.Error("Failed to fetch source project", zap.Error(err))
		return err
	}

	newProject, err := migrator.Run(sourceProject)
	if err != nil {
		ghlog.Logger.Error("Migration failed",
			zap.String("project", sourceProject.PathWithNamespace),
			zap.Error(err))
		return err
	}

	if !skipRepo {
		err := gitrepo.MigrateRepository(&gitrepo.Options{
			FromRepoURL: sourceProject.SSHURLToRepo,
			ToRepoURL:   newProject.SSHURLToRepo,
		})
		if err != nil {
			ghlog.Logger.Error("Repository transfer failed", zap.Error(err))
			return err
		}
	}

	ghlog.Logger.Info("Migration completed successfully",
		zap.Int("id", newProject.ID),
		zap.String("path", newProject.PathWithNamespace),
		zap.String("url", newProject.WebURL))
	return nil
}
