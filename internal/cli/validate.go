package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MB-Ndhlovu/bantu-devstack/internal/compose"
	"github.com/MB-Ndhlovu/bantu-devstack/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the compose files against the configured services",
	Long: `Parse the configured compose files and verify that every service
bantu-devstack is going to start is actually defined.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		stack, err := compose.LoadStack(cfg.StackDir, cfg.ComposeFiles)
		if err != nil {
			color.Red("✗ %v", err)
			return &ExitError{Code: 1, Err: err}
		}

		result := stack.Validate(cfg.Services)
		if !result.Valid {
			for _, e := range result.Errors {
				color.Red("✗ %s", e)
			}
			return &ExitError{Code: 1, Err: fmt.Errorf("compose validation failed with %d error(s)", len(result.Errors))}
		}

		color.Green("✓ %d services defined, all %d required services present", len(stack.Services), len(cfg.Services))
		return nil
	},
}
