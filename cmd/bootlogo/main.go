package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/config"
)

const Name = "bootlogo"

var logger = log.New(os.Stderr, Name+": ", log.LstdFlags)

var rootCmd = &cobra.Command{
	Use:   Name,
	Short: "Turn a picture into a round multi-resolution Windows boot logo icon",
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default $"+config.EnvConfigPath+")")
}

// loadConfig resolves the --config flag, then the environment, then defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadDefault(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
