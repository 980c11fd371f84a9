package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MB-Ndhlovu/bantu-devstack/internal/compose"
	"github.com/MB-Ndhlovu/bantu-devstack/internal/config"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop the development stack",
	Long:  `Stop all running development stack services.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		runner, err := compose.NewRunner(cfg.StackDir, cfg.ComposeFiles)
		if err != nil {
			color.Red("✗ %v", err)
			return &ExitError{Code: 1, Err: err}
		}

		color.Cyan("Stopping Bantu OS development stack...")

		if err := runner.Down(); err != nil {
			color.Red("✗ Failed to stop stack: %v", err)
			return &ExitError{Code: 1, Err: err}
		}

		color.Green("✓ Stack stopped successfully")
		return nil
	},
}
