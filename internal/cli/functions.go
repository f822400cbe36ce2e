package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daryltucker/dexview/internal/assets"
	"github.com/daryltucker/dexview/internal/output"
)

var functionsTarget string

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "Manage jq functions for analysing list output",
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install jq helper functions to ~/.jq/ (include them with jq -L ~/.jq)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetDir := functionsTarget
		if targetDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get user home directory: %w", err)
			}
			targetDir = filepath.Join(home, ".jq")
		}

		count, err := installFunctions(targetDir)
		if err != nil {
			return err
		}
		output.Logger.Info("Installation Complete", "target", targetDir, "total_files", count)
		return nil
	},
}

// installFunctions copies the embedded jq files into targetDir.
// Files that fail individually are logged and skipped.
func installFunctions(targetDir string) (int, error) {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create target directory %s: %w", targetDir, err)
	}

	entries, err := fs.ReadDir(assets.Functions, "functions")
	if err != nil {
		return 0, fmt.Errorf("failed to read embedded functions: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		content, err := fs.ReadFile(assets.Functions, "functions/"+entry.Name())
		if err != nil {
			output.Logger.Error("Failed to read embedded file", "file", entry.Name(), "error", err)
			continue
		}

		targetPath := filepath.Join(targetDir, entry.Name())
		if err := os.WriteFile(targetPath, content, 0644); err != nil {
			output.Logger.Error("Failed to write to target", "path", targetPath, "error", err)
			continue
		}

		output.Logger.Info("Installed function", "name", entry.Name())
		count++
	}
	return count, nil
}

func init() {
	functionsCmd.AddCommand(installCmd)
	rootCmd.AddCommand(functionsCmd)
	installCmd.Flags().StringVar(&functionsTarget, "target", "", "Install directory (default ~/.jq)")
}
