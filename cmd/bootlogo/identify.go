package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/pipeline"
	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/raster"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect image dimensions, format and color mode",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	info, err := pipeline.Describe(path)
	if err != nil {
		return err
	}
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	fmt.Printf("File:       %s\n", path)
	fmt.Printf("Dimensions: %d x %d\n", info.Width, info.Height)
	fmt.Printf("Format:     %s\n", info.Format)
	fmt.Printf("Color mode: %s\n", info.ColorMode)
	fmt.Printf("File size:  %s\n", formatFileSize(st.Size()))

	if info.Format == "ico" {
		icons, err := raster.ReadICO(path)
		if err != nil {
			fmt.Printf("Entries:    unreadable: %v\n", err)
			return nil
		}
		fmt.Printf("Entries:    %d\n", len(icons))
		for i, icon := range icons {
			b := icon.Bounds()
			fmt.Printf("  #%d  %d x %d  %s\n", i+1, b.Dx(), b.Dy(), raster.ColorModeName(icon.ColorModel()))
		}
	}

	return nil
}

// formatFileSize renders n bytes with two decimals in the largest unit
// below 1024, from B up to TB.
func formatFileSize(n int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(n)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", size, units[i])
}
