package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the system file that holds the boot logo before replacing it",
	RunE:  runBackup,
}

func init() {
	backupCmd.Flags().String("target", "", "File to back up (default %SystemRoot%\\System32\\imageres.dll)")
	backupCmd.Flags().String("dir", "", "Backup directory (default: new temp directory)")
	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	target, _ := cmd.Flags().GetString("target")
	if target == "" {
		target = cfg.Backup.Target
	}
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = cfg.Backup.Dir
	}
	if dir == "" {
		dir, err = os.MkdirTemp("", cfg.TempPrefix)
		if err != nil {
			return fmt.Errorf("creating temp directory: %w", err)
		}
	}

	// Replacing the icon needs write access later; report it up front but
	// still take the copy.
	if err := backup.CheckAccess(target); err != nil {
		logger.Printf("%s is not writable by this user: %v", target, err)
	}

	path, err := backup.Backup(target, dir)
	if err != nil {
		return fmt.Errorf("backup: %w", err)
	}

	fmt.Printf("Target: %s\n", target)
	fmt.Printf("Backup: %s\n", path)
	return nil
}
