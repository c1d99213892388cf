package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/pipeline"
	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the preview and icon whenever the source picture changes",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringP("input", "i", "", "Source picture")
	watchCmd.Flags().StringP("output", "o", "", "Output directory (default: new temp directory)")
	addConversionFlags(watchCmd)
	watchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := conversionOptions(cmd, cfg)
	if err != nil {
		return err
	}
	// The directory outlives failed builds here; later saves write into it.
	dir, _, err := outputDir(cmd, cfg)
	if err != nil {
		return err
	}

	rebuild := func() error {
		result, err := pipeline.Convert(inputPath, dir, opts)
		if err != nil {
			return err
		}
		logger.Printf("Built %s", result)
		return nil
	}

	// A source that does not convert yet is not fatal; the next save retries.
	if err := rebuild(); err != nil {
		logger.Printf("Initial build failed: %v", err)
	}

	w, err := watch.New(inputPath, rebuild, logger)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Output: %s\n", dir)
	return w.Run(ctx)
}
