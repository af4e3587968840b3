package main

import (
	"fmt"
	"os"

	"github.com/iv-mexx/gitlab-migrator/cmd"
	"github.com/iv-mexx/gitlab-migrator/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "gitlab-migrator",
		Short: "GitLab to GitLab Project Migration Tool",
	}

	// Add commands
	rootCmd.AddCommand(
		cmd.HelpCmd(),
		cmd.VerifyCmd(),
		cmd.ListProjectsCmd(),
		cmd.CreateProjectCmd(),
		cmd.MigrateProjectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func init() {
	_ = gotenv.Load()
	logger.InitLogger()
	defer logger.SyncLogger()
}
