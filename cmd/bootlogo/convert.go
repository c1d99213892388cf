package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/config"
	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/pipeline"
	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/round"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a picture into a round preview PNG and a multi-size ICO",
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringP("input", "i", "", "Source picture")
	convertCmd.Flags().StringP("output", "o", "", "Output directory (default: new temp directory)")
	addConversionFlags(convertCmd)
	convertCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(convertCmd)
}

func addConversionFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("size", nil, "Icon size WxH or N, repeatable; first is the preview (default 256,128,64,48,32,16)")
	cmd.Flags().String("filter", round.DefaultFilter, fmt.Sprintf("Resampling filter %v", round.FilterNames()))
}

// conversionOptions starts from the config file and applies flags the user
// set explicitly.
func conversionOptions(cmd *cobra.Command, cfg *config.Config) (pipeline.Options, error) {
	opts := cfg.PipelineOptions()
	if cmd.Flags().Changed("size") {
		values, _ := cmd.Flags().GetStringArray("size")
		sizes, err := round.ParseSizeSpec(values)
		if err != nil {
			return opts, err
		}
		opts.Sizes = sizes
	}
	if cmd.Flags().Changed("filter") {
		opts.Filter, _ = cmd.Flags().GetString("filter")
	}
	return opts, nil
}

// outputDir picks the flag, then the config file, then a fresh temp directory.
// created reports whether the directory was made here and belongs to the
// caller to remove.
func outputDir(cmd *cobra.Command, cfg *config.Config) (dir string, created bool, err error) {
	dir, _ = cmd.Flags().GetString("output")
	if dir == "" {
		dir = cfg.OutputDir
	}
	if dir != "" {
		return dir, false, nil
	}
	dir, err = os.MkdirTemp("", cfg.TempPrefix)
	if err != nil {
		return "", false, fmt.Errorf("creating temp directory: %w", err)
	}
	return dir, true, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := conversionOptions(cmd, cfg)
	if err != nil {
		return err
	}
	dir, created, err := outputDir(cmd, cfg)
	if err != nil {
		return err
	}

	result, err := pipeline.Convert(inputPath, dir, opts)
	if err != nil {
		if created {
			os.RemoveAll(dir)
		}
		return fmt.Errorf("conversion: %w", err)
	}

	fmt.Printf("Converted %dx%d -> %d icon sizes\n", result.SrcWidth, result.SrcHeight, len(result.Sizes))
	fmt.Printf("Input:   %s\n", inputPath)
	fmt.Printf("Preview: %s (%s)\n", result.PreviewPath, result.Sizes.Preview())
	fmt.Printf("Icon:    %s (%s)\n", result.IconPath, result.Sizes)

	return nil
}
