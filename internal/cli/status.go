package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MB-Ndhlovu/bantu-devstack/internal/compose"
	"github.com/MB-Ndhlovu/bantu-devstack/internal/config"
	"github.com/MB-Ndhlovu/bantu-devstack/internal/readiness"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show status of the development stack",
	Long:  `Display container status for the stack and probe the web frontend.`,
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

		out, err := runner.PS()
		if err != nil {
			color.Red("✗ Failed to get status: %v", err)
			return &ExitError{Code: 1, Err: err}
		}
		fmt.Print(out)

		color.Cyan("\nEndpoint        Status        URL")
		color.Cyan("────────────────────────────────────────")
		printEndpointStatus("Web frontend", cfg.ReadyURL, readiness.Probe(cfg.ReadyURL))

		return nil
	},
}

func printEndpointStatus(name, url string, status readiness.ServiceStatus) {
	var statusText string
	switch status {
	case readiness.StatusUp:
		statusText = color.GreenString("✓ UP      ")
	case readiness.StatusStarting:
		statusText = color.YellowString("⚠ STARTING")
	case readiness.StatusDown:
		statusText = color.RedString("✗ DOWN    ")
	default:
		statusText = color.RedString("✗ UNKNOWN ")
	}

	color.New().Printf("%-15s %s    %s\n", name, statusText, url)
}
