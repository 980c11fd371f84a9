package cli

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MB-Ndhlovu/bantu-devstack/internal/config"
	"github.com/MB-Ndhlovu/bantu-devstack/internal/envfile"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Inspect or edit the stack env file",
}

var envShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved env file values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		path := filepath.Join(cfg.StackDir, cfg.EnvFile)
		values, err := envfile.Read(path)
		if err != nil {
			return err
		}

		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Printf("%s=%s\n", k, values[k])
		}

		return nil
	},
}

var envSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set one key in the env file, preserving everything else",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		path := filepath.Join(cfg.StackDir, cfg.EnvFile)
		if err := envfile.Set(path, args[0], args[1]); err != nil {
			return err
		}

		color.Green("✓ %s=%s written to %s", args[0], args[1], path)
		return nil
	},
}

func init() {
	envCmd.AddCommand(envShowCmd)
	envCmd.AddCommand(envSetCmd)
}
