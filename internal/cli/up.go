package cli

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/juju/webbrowser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MB-Ndhlovu/bantu-devstack/internal/compose"
	"github.com/MB-Ndhlovu/bantu-devstack/internal/config"
	"github.com/MB-Ndhlovu/bantu-devstack/internal/envfile"
	"github.com/MB-Ndhlovu/bantu-devstack/internal/readiness"
)

const logTail = 200

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Start the development stack and wait until it is ready",
	Long: `Start the Bantu OS development stack using docker compose.

This copies the env template on first run, forces the development
auth setting, starts the configured services in the background, and
polls the web frontend until it responds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration (Viper resolves behind the scenes)
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if noBrowser, _ := cmd.Flags().GetBool("no-browser"); noBrowser {
			cfg.OpenBrowser = false
		}

		color.Cyan("Starting Bantu OS development stack...")

		// Best-effort env preparation; a broken env file is worth a warning,
		// not an abort.
		prepareEnv(cfg)

		if err := compose.Preflight(); err != nil {
			color.Red("✗ %v", err)
			return &ExitError{Code: 1, Err: err}
		}

		runner, err := compose.NewRunner(cfg.StackDir, cfg.ComposeFiles)
		if err != nil {
			color.Red("✗ %v", err)
			return &ExitError{Code: 1, Err: err}
		}

		// Pull images if requested
		if cfg.PullOnStart {
			color.Cyan("→ Pulling latest images...")
			if err := runner.Pull(); err != nil {
				color.Yellow("⚠ Failed to pull images: %v", err)
			}
		}

		color.Cyan("→ Starting services: %s", strings.Join(cfg.Services, ", "))
		if err := runner.Up(cfg.Services...); err != nil {
			color.Red("✗ Failed to start stack: %v", err)
			return &ExitError{Code: 1, Err: err}
		}

		color.Cyan("→ Waiting up to %ds for %s", cfg.WaitSeconds, cfg.ReadyURL)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		poller := readiness.NewPoller(cfg.ReadyURL, time.Duration(cfg.WaitSeconds)*time.Second)
		if err := poller.Wait(ctx); err != nil {
			if errors.Is(err, readiness.ErrTimeout) {
				color.Red("✗ Stack did not become ready within %ds", cfg.WaitSeconds)
				printDiagnostics(runner, cfg.Services)
				return &ExitError{Code: 2, Err: err}
			}
			return err
		}

		color.Green("✓ Stack is ready at %s", cfg.ReadyURL)

		if cfg.OpenBrowser {
			openBrowser(cfg.ReadyURL)
		}

		color.Cyan("\nRun 'bantu-devstack status' to check health")

		return nil
	},
}

// prepareEnv copies the template on first run and forces the dev auth pair.
func prepareEnv(cfg *config.Config) {
	template := filepath.Join(cfg.StackDir, cfg.EnvTemplate)
	target := filepath.Join(cfg.StackDir, cfg.EnvFile)

	copied, err := envfile.CopyFromTemplate(template, target)
	if err != nil {
		color.Yellow("⚠ Failed to copy env template: %v", err)
	} else if copied {
		color.Cyan("→ Created %s from %s", target, template)
	}

	if err := envfile.Set(target, cfg.AuthKey, cfg.AuthValue); err != nil {
		color.Yellow("⚠ Failed to update %s: %v", target, err)
	}
}

func printDiagnostics(runner *compose.Runner, services []string) {
	color.Cyan("\nService status:")
	if out, err := runner.PS(); err != nil {
		color.Yellow("⚠ %v", err)
	} else {
		fmt.Print(out)
	}

	for _, svc := range services {
		color.Cyan("\nRecent logs for %s:", svc)
		if out, err := runner.Logs(svc, logTail); err != nil {
			color.Yellow("⚠ %v", err)
		} else {
			fmt.Print(out)
		}
	}
}

func openBrowser(rawURL string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		color.Yellow("⚠ Cannot open browser: %v", err)
		return
	}
	if err := webbrowser.Open(u); err != nil {
		color.Yellow("⚠ Cannot open browser: %v", err)
	}
}

func init() {
	// Define flags
	upCmd.Flags().Int("wait", 0, "Maximum seconds to wait for readiness")
	upCmd.Flags().Bool("pull", false, "Pull latest images before starting")
	upCmd.Flags().Bool("no-browser", false, "Do not open the browser when ready")

	// Bind flags to viper
	viper.BindPFlag("wait-seconds", upCmd.Flags().Lookup("wait"))
	viper.BindPFlag("pull-on-start", upCmd.Flags().Lookup("pull"))
}
