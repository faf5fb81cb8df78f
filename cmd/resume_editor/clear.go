package main

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved resume",
	Long:  "Deletes the saved resume snapshot after confirmation. The next editor session starts from an empty document.",
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

// confirmClear asks the user to confirm the deletion.
var confirmClear = func(message string) (bool, error) {
	var ok bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	if !clearYes {
		ok, err := confirmClear("Are you sure you want to clear all data? This cannot be undone.")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Nothing was deleted")
			return nil
		}
	}

	gw, store, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := gw.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear saved resume: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Saved resume cleared")
	return nil
}
