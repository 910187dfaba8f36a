package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"exprfuzz/internal/config"
)

// loadConfig reads --config, or the nearest exprfuzz.toml, or defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if strings.TrimSpace(path) != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(".")
}
