package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MB-Ndhlovu/bantu-devstack/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.Display()
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Persist one configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		viper.Set(args[0], args[1])

		// Load validates the resulting configuration before anything is
		// written out.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if err := config.Save(cfg); err != nil {
			color.Red("✗ Failed to save config: %v", err)
			return err
		}

		color.Green("✓ %s set to %s", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
