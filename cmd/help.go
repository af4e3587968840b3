package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func HelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Help about the gitlab-migrator commands",
		Long: `gitlab-migrator is a CLI tool for migrating projects from one GitLab instance to another.

Required Environment Variables:
SOURCE_GITLAB_ENDPOINT      Source GitLab API endpoint (e.g., https://gitlab.old.example.com)
SOURCE_GITLAB_TOKEN         Source GitLab Personal Access Token
DEST_GITLAB_ENDPOINT        Destination GitLab API endpoint (e.g., https://gitlab.new.example.com)
DEST_GITLAB_TOKEN           Destination GitLab Personal Access Token

Optional Environment Variables:
LOG_LEVEL                   Log level (debug, info, warn, error; default info)

Available Commands:
verify                      Verify configuration and credentials
list-projects               List source projects, classified migrated / not migrated
create-project              Create a destination project without metadata
migrate                     Migrate one project with all its metadata
help                        Show this help message

Examples:
# Verify configuration
gitlab-migrator verify

# List all source projects
gitlab-migrator list-projects

# Migrate everything that is not migrated yet
gitlab-migrator list-projects --migrate

# Create the destination project only
gitlab-migrator create-project --project mygroup/myproject

# Full migration of one project
gitlab-migrator migrate --project mygroup/myproject`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(cmd.Long)
		},
	}
}
