// Package main provides the entry point for the resume editor.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "resume_editor",
	Short:        "Resume Editor",
	Long:         "Resume Editor is a local form editor with a live preview. Edits are saved automatically and the finished resume can be exported to HTML or PDF.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
