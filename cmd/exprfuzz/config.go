package main

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Long: `Config prints the configuration a campaign would use: exprfuzz.toml
(from --config or the nearest parent directory) over the built-in defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Path != "" {
			dimColor.Fprintf(cmd.OutOrStdout(), "# %s\n", cfg.Path)
		}
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
	},
}
