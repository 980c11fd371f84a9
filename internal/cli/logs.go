package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MB-Ndhlovu/bantu-devstack/internal/compose"
	"github.com/MB-Ndhlovu/bantu-devstack/internal/config"
)

var logsCmd = &cobra.Command{
	Use:   "logs [service]",
	Short: "Show recent logs for one or all services",
	Args:  cobra.MaximumNArgs(1),
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

		tail, _ := cmd.Flags().GetInt("tail")

		services := cfg.Services
		if len(args) == 1 {
			services = args
		}

		for _, svc := range services {
			color.Cyan("── %s ──", svc)
			out, err := runner.Logs(svc, tail)
			if err != nil {
				color.Yellow("⚠ %v", err)
				continue
			}
			fmt.Print(out)
		}

		return nil
	},
}

func init() {
	logsCmd.Flags().Int("tail", logTail, "Number of log lines per service")
}
