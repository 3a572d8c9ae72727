package cli

import (
	"fmt"

	"github.com/davarch/pipeline-status/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <alias> <url> [token]",
	Short: "Add or update a server and make it active",
	Long:  "Stores a server entry in the config file. The token is stored as plaintext.",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		alias, url := args[0], args[1]
		token := ""
		if len(args) == 3 {
			token = args[2]
		}

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		updated := cfg.AddServer(alias, url, token)
		if err := config.Save(cfgPath, cfg); err != nil {
			return err
		}

		verb := "added"
		if updated {
			verb = "updated"
		}
		fmt.Printf("%s: %s (now active)\n", verb, alias)
		printServers(cfg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
