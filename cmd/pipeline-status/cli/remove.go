package cli

import (
	"fmt"

	"github.com/davarch/pipeline-status/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <alias>",
	Aliases: []string{"rm"},
	Short:   "Remove a server from the config",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		newActive, err := cfg.RemoveServer(args[0])
		if err != nil {
			return err
		}
		if err := config.Save(cfgPath, cfg); err != nil {
			return err
		}

		fmt.Printf("removed: %s\n", args[0])
		if newActive != "" {
			fmt.Printf("now active: %s\n", newActive)
		}
		if len(cfg.Servers) == 0 {
			fmt.Println("no servers remaining")
			return nil
		}
		printServers(cfg)
		return nil
	},
}

func init() {
	removeCmd.ValidArgsFunction = serverAliasCompletion

	rootCmd.AddCommand(removeCmd)
}
