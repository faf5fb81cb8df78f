package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/completion"
	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/types"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved resume and its completion",
	Long:  "Loads the saved resume and prints a summary, the completion checklist and whether it can be exported.",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print the report as JSON")
	rootCmd.AddCommand(statusCmd)
}

// StatusReport is the machine-readable form of the status command.
type StatusReport struct {
	Progress  int                      `json:"progress"`
	Checklist []completion.Requirement `json:"checklist"`
	Export    editor.ExportStatus      `json:"export"`
	Document  *types.Document          `json:"document"`
}

func buildStatusReport(doc *types.Document) StatusReport {
	return StatusReport{
		Progress:  completion.Compute(doc),
		Checklist: completion.Checklist(doc),
		Export:    editor.CheckExport(doc, nil),
		Document:  doc,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	gw, store, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	report := buildStatusReport(gw.Load(context.Background()))
	out := cmd.OutOrStdout()

	if statusJSON {
		jsonBytes, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status to JSON: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(jsonBytes))
		return nil
	}

	printer := observability.NewPrinter(out)
	printer.PrintDocument(report.Document)
	printer.PrintCompletion(report.Progress, report.Checklist)
	printer.PrintExportStatus(report.Export)
	return nil
}
