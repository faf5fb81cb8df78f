package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/export"
	"github.com/jonathan/resume-editor/internal/rendering"
)

var (
	exportOutput  string
	exportFormat  string
	exportVariant string
	exportPaper   string
	exportMargin  float64
	exportForce   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved resume to HTML or PDF",
	Long:  "Renders the saved resume preview and writes it as a standalone HTML page or, with a local Chrome/Chromium, as a PDF.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output file path (required)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: html or pdf (defaults to the output extension)")
	exportCmd.Flags().StringVar(&exportVariant, "variant", "", "Preview variant: full or minimal (overrides config)")
	exportCmd.Flags().StringVar(&exportPaper, "paper", "letter", "PDF paper size: letter or a4")
	exportCmd.Flags().Float64Var(&exportMargin, "margin", 0.4, "PDF margin in inches")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "Export even when required fields are missing")

	if err := exportCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(exportCmd)
}

// exportFormatFor resolves the output format from the flag or the extension.
func exportFormatFor(format, path string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if format == "htm" {
			format = "html"
		}
	}
	switch format {
	case "html", "pdf":
		return format, nil
	}
	return "", fmt.Errorf("unsupported export format %q (use html or pdf)", format)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := exportFormatFor(exportFormat, exportOutput)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if exportVariant != "" {
		cfg.Variant = exportVariant
	}
	variant, err := rendering.ParseVariant(cfg.Variant)
	if err != nil {
		return err
	}

	gw, store, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	ctx := context.Background()
	doc := gw.Load(ctx)

	if status := editor.CheckExport(doc, nil); !status.Ready && !exportForce {
		return fmt.Errorf("%s", status.Message)
	}

	renderer, err := rendering.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	html, err := renderer.RenderPreviewDocument(rendering.BuildPreview(doc, variant))
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	content := []byte(html)
	if format == "pdf" {
		content, err = export.PDF(ctx, html, export.Options{
			Paper:    exportPaper,
			Margin:   exportMargin,
			Verbose:  cfg.Verbose,
			ExecPath: os.Getenv("CHROME_PATH"),
		})
		if err != nil {
			return err
		}
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(exportOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, content, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", strings.ToUpper(format), exportOutput)
	return nil
}
