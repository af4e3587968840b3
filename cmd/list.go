package cmd

import (
	"fmt"

	"github.com/iv-mexx/gitlab-migrator/internal/gitrepo"
	ghlog "github.com/iv-mexx/gitlab-migrator/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func ListProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-projects",
		Short: "List source projects and whether they are migrated already",
		Long: `List all projects of the source GitLab instance and classify each one as
already migrated (a destination project with the same path exists) or not yet
migrated.

With --migrate, every not yet migrated project is migrated afterwards, one by
one.

GitLab credentials for both instances must be configured via environment
variables.`,
		Example: `gitlab-migrator list-projects
gitlab-migrator list-projects --migrate`,
		RunE: listProjects,
	}

	cmd.Flags().Bool("migrate", false, "Migrate all not yet migrated projects")
	cmd.Flags().Bool("skip-repo", false, "Skip the git repository transfer when migrating")

	return cmd
}

func listProjects(cmd *cobra.Command, args []string) error {
	if err := VerifyRequiredEnvVars(); err != nil {
		return err
	}
	migrateAll, _ := cmd.Flags().GetBool("migrate")
	skipRepo, _ := cmd.Flags().GetBool("skip-repo")

	migrator, err := newMigrator()
	if err != nil {
		return err
	}

	notMigrated, migrated, err := migrator.ClassifyProjects()
	if err != nil {
		ghlog.Logger.Error("Failed to classify projects", zap.Error(err))
		return err
	}

	for _, p := range notMigrated {
		fmt.Printf("\t⚠️  not migrated project: %s\n", p.PathWithNamespace)
	}
	for _, p := range migrated {
		fmt.Printf("\t✅  migrated project    : %s\n", p.PathWithNamespace)
	}
	fmt.Println("\nSummary:")
	fmt.Printf("⚠️  %d not migrated projects.\n", len(notMigrated))
	fmt.Printf("✅  %d migrated projects.\n", len(migrated))

	if !migrateAll {
		return nil
	}

	for _, p := range notMigrated {
		newProject, err := migrator.Run(p)
		if err != nil {
			ghlog.Logger.Error("Migration failed",
				zap.String("project", p.PathWithNamespace),
				zap.Error(err))
			return err
		}
		if !skipRepo {
			err := gitrepo.MigrateRepository(&gitrepo.Options{
				FromRepoURL: p.SSHURLToRepo,
				ToRepoURL:   newProject.SSHURLToRepo,
			})
			if err != nil {
				ghlog.Logger.Error("Repository transfer failed", zap.Error(err))
				return err
			}
		}
	}
	return nil
}
