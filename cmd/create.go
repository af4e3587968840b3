package cmd

import (
	ghlog "github.com/iv-mexx/gitlab-migrator/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func CreateProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-project",
		Short: "Create a destination project based on a source project",
		Long: `Create a project in the destination GitLab instance based on a source
project, without migrating any metadata.

The destination group is resolved by path and created if it does not exist
yet. No group membership is replayed for this variant; use migrate for the
full copy.

GitLab credentials for both instances must be configured via environment
variables.`,
		Example: `gitlab-migrator create-project --project mygroup/myproject`,
		RunE:    createProject,
	}

	cmd.Flags().String("project", "", "Source project (numeric ID or path with namespace)")

	if err := cmd.MarkFlagRequired("project"); err != nil {
		ghlog.Logger.Error("failed to mark project as required", zap.Error(err))
		return nil
	}

	return cmd
}

func createProject(cmd *cobra.Command, args []string) error {
	if err := VerifyRequiredEnvVars(); err != nil {
		return err
	}
	project, _ := cmd.Flags().GetString("project")

	migrator, err := newMigrator()
	if err != nil {
		return err
	}

	sourceProject, err := migrator.SourceProject(project)
	if err != nil {
		ghlog.Logger.Error("Failed to fetch source project", zap.Error(err))
		return err
	}

	// No identity mapping here: a nil map skips the membership replay when
	// the group has to be created.
	group, err := migrator.EnsureGroup(sourceProject.Namespace, nil)
	if err != nil {
		ghlog.Logger.Error("Group resolution failed", zap.Error(err))
		return err
	}

	newProject, err := migrator.CreateProject(sourceProject, group)
	if err != nil {
		ghlog.Logger.Error("Project creation failed", zap.Error(err))
		return err
	}

	ghlog.Logger.Info("Project created successfully",
		zap.Int("id", newProject.ID),
		zap.String("path", newProject.PathWithNamespace))
	return nil
}
