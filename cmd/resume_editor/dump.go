package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var dumpOutput string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the saved resume as JSON",
	Long:  "Loads the saved resume, repairing it the same way the editor does, and writes it as JSON to stdout or a file.",
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutput, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	gw, store, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	jsonBytes, err := json.MarshalIndent(gw.Load(context.Background()), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resume to JSON: %w", err)
	}

	if dumpOutput == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(dumpOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(dumpOutput, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
