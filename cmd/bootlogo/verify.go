package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/pipeline"
)

var verifyCmd = &cobra.Command{
	Use:          "verify [file]",
	Short:        "Check that a file is a picture that decodes cleanly",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !pipeline.Validate(path) {
		return fmt.Errorf("%s: not a valid image", path)
	}
	fmt.Printf("%s: ok\n", path)
	return nil
}
