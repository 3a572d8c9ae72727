package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/davarch/pipeline-status/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List configured servers",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		if listJSON {
			type item struct {
				Alias  string `json:"alias"`
				URL    string `json:"url"`
				Active bool   `json:"active"`
				Token  string `json:"token"`
			}
			items := make([]item, 0, len(cfg.Servers))
			for _, alias := range cfg.Aliases() {
				srv := cfg.Servers[alias]
				items = append(items, item{
					Alias:  alias,
					URL:    srv.URL,
					Active: srv.Active,
					Token:  maskToken(srv.Token),
				})
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		}

		printServers(cfg)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON")

	rootCmd.AddCommand(listCmd)
}

func printServers(cfg config.Config) {
	if len(cfg.Servers) == 0 {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, alias := range cfg.Aliases() {
		srv := cfg.Servers[alias]
		active := " "
		if srv.Active {
			active = "*"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", active, alias, srv.URL, maskToken(srv.Token))
	}
	_ = w.Flush()
}

func maskToken(token string) string {
	if token == "" {
		return "<no token>"
	}
	return strings.Repeat("*", len(token))
}
