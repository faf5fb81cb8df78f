package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/config"
)

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvStore, "")
	t.Setenv(config.EnvBackend, "")
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// writeSnapshot writes a snapshot JSON file into dir.
func writeSnapshot(t *testing.T, dir string, snapshot any) string {
	t.Helper()
	data, err := json.Marshal(snapshot)
	require.NoError(t, err)
	path := filepath.Join(dir, "snapshot.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// completeSnapshot passes the export precondition.
func completeSnapshot() map[string]any {
	return map[string]any{
		"name":    "Ann Lee",
		"title":   "Engineer",
		"email":   "ann@example.com",
		"phone":   "+1 555 123 4567",
		"summary": "Builds things.",
		"skills":  []string{"Go", "SQL"},
		"experience": []map[string]any{
			{"id": "x1", "role": "Developer", "company": "Acme", "bullets": []string{"Shipped v1"}},
		},
	}
}
