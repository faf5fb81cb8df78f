package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/storage"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/jonathan/resume-editor/internal/validation"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a resume snapshot",
	Long:  "Checks a snapshot against the document schema and the contact field rules. Reads the saved snapshot unless --in is given.",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to a snapshot JSON file (defaults to the saved snapshot)")
	rootCmd.AddCommand(validateCmd)
}

// readSnapshot returns the raw snapshot from path, or from the store when
// path is empty.
func readSnapshot(path string) ([]byte, error) {
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot file not found: %s", path)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot file: %w", err)
		}
		return content, nil
	}

	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	_, store, err := openGateway(cfg)
	if err != nil {
		return nil, err
	}
	defer closeStore(store)

	content, err := store.Get(context.Background(), cfg.Key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("no saved resume under key %q", cfg.Key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return content, nil
}

// decodeSnapshot checks content against the document schema and decodes it.
func decodeSnapshot(content []byte) (*types.Document, error) {
	if err := schemas.ValidateDocument(content); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, fmt.Errorf("snapshot does not match the document schema: %w", err)
		}
		return nil, fmt.Errorf("failed to validate snapshot: %w", err)
	}

	var doc types.Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot JSON: %w", err)
	}
	return &doc, nil
}

func runValidate(cmd *cobra.Command, _ []string) error {
	content, err := readSnapshot(validateInput)
	if err != nil {
		return err
	}
	doc, err := decodeSnapshot(content)
	if err != nil {
		return err
	}

	results, _ := validation.ValidateFields(editor.RequiredFields(doc), nil)
	observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(results)
	return validation.Err(results)
}
