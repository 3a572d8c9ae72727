package cli

import (
	"fmt"

	"github.com/davarch/pipeline-status/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

var switchCmd = &cobra.Command{
	Use:     "switch <alias>",
	Aliases: []string{"s"},
	Short:   "Switch the active server",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		if err := cfg.SwitchServer(args[0]); err != nil {
			return err
		}
		if err := config.Save(cfgPath, cfg); err != nil {
			return err
		}

		fmt.Printf("switched to: %s\n", args[0])
		printServers(cfg)
		return nil
	},
}

func init() {
	switchCmd.ValidArgsFunction = serverAliasCompletion

	rootCmd.AddCommand(switchCmd)
}
