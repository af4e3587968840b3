package cmd

import (
	"fmt"
	"os"

	"github.com/iv-mexx/gitlab-migrator/internal/clients"
	ghlog "github.com/iv-mexx/gitlab-migrator/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func VerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify connections and credentials",
		Long: `Verify source and destination GitLab connections and configuration.

This command checks:
- Required environment variables
- Source GitLab API access
- Destination GitLab API access

All credentials must be set via environment variables before running this command.`,
		RunE: runVerify,
	}
	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	if err := VerifyRequiredEnvVars(); err != nil {
		return err
	}
	ghlog.Logger.Info("Verifying configuration and credentials...")

	if err := verifyGitLab("source", os.Getenv("SOURCE_GITLAB_ENDPOINT"), os.Getenv("SOURCE_GITLAB_TOKEN")); err != nil {
		return err
	}
	if err := verifyGitLab("destination", os.Getenv("DEST_GITLAB_ENDPOINT"), os.Getenv("DEST_GITLAB_TOKEN")); err != nil {
		return err
	}

	ghlog.Logger.Info("✓ All configurations and credentials verified successfully!")
	return nil
}

// VerifyRequiredEnvVars rejects a run before any network call when the
// endpoint or token of either instance is missing.
func VerifyRequiredEnvVars() error {
	required := []struct {
		name  string
		value string
	}{
		{"SOURCE_GITLAB_ENDPOINT", os.Getenv("SOURCE_GITLAB_ENDPOINT")},
		{"SOURCE_GITLAB_TOKEN", os.Getenv("SOURCE_GITLAB_TOKEN")},
		{"DEST_GITLAB_ENDPOINT", os.Getenv("DEST_GITLAB_ENDPOINT")},
		{"DEST_GITLAB_TOKEN", os.Getenv("DEST_GITLAB_TOKEN")},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}

	if len(missing) > 0 {
		ghlog.Logger.Error("Missing required environment variables",
			zap.Strings("missing", missing))
		return fmt.Errorf("missing required environment variables")
	}

	ghlog.Logger.Info("All required environment variables are set")
	return nil
}

func verifyGitLab(side, endpoint, token string) error {
	ghlog.Logger.Info("Checking GitLab credentials", zap.String("instance", side))

	client, err := clients.NewGitLabClient(endpoint, token).GitlabAuth()
	if err != nil {
		ghlog.Logger.Debug("GitLab authentication failed", zap.Error(err))
		return fmt.Errorf("%s GitLab authentication failed: %w", side, err)
	}

	user, _, err := client.Users.CurrentUser()
	if err != nil {
		return fmt.Errorf("%s GitLab token rejected: %w", side, err)
	}

	ghlog.Logger.Info("GitLab credentials verified",
		zap.String("instance", side),
		zap.String("user", user.Username))
	return nil
}
