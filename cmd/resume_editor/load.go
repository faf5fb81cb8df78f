package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var loadInput string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Replace the saved resume with a JSON file",
	Long:  "Validates a snapshot file against the document schema and saves it as the current resume.",
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().StringVarP(&loadInput, "in", "i", "", "Path to a snapshot JSON file (required)")

	if err := loadCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, _ []string) error {
	content, err := readSnapshot(loadInput)
	if err != nil {
		return err
	}
	doc, err := decodeSnapshot(content)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	gw, store, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if !gw.Save(context.Background(), doc) {
		return fmt.Errorf("failed to save resume")
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s\n", loadInput)
	return nil
}
