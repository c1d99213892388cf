package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/pipeline"
	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/raster"
	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/round"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Write a single round PNG of a picture, without the minimum size check",
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().StringP("input", "i", "", "Source picture")
	previewCmd.Flags().StringP("output", "o", "", "Output PNG file")
	previewCmd.Flags().Int("size", 100, "Edge length of the preview in pixels")
	previewCmd.Flags().String("filter", round.DefaultFilter, fmt.Sprintf("Resampling filter %v", round.FilterNames()))
	previewCmd.MarkFlagRequired("input")
	previewCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	size, _ := cmd.Flags().GetInt("size")
	filter, _ := cmd.Flags().GetString("filter")

	if size < 1 || size > round.MaxDimension {
		return fmt.Errorf("size must be between 1 and %d, got %d", round.MaxDimension, size)
	}

	icon, err := pipeline.Preview(inputPath, round.Size{Width: size, Height: size}, filter)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	encoded, err := raster.EncodePNG(icon)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	if err := os.WriteFile(outputPath, encoded, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("Preview %dx%d -> %s (%d bytes)\n", size, size, outputPath, len(encoded))
	return nil
}
