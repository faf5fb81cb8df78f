package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintParams(t *testing.T) {
	params, err := printParams(Options{})
	require.NoError(t, err)
	assert.Equal(t, LetterWidth, params.PaperWidth)
	assert.Equal(t, LetterHeight, params.PaperHeight)
	assert.True(t, params.PrintBackground)

	params, err = printParams(Options{Paper: "a4", Margin: 0.5})
	require.NoError(t, err)
	assert.Equal(t, A4Width, params.PaperWidth)
	assert.Equal(t, 0.5, params.MarginTop)
	assert.Equal(t, 0.5, params.MarginRight)
}

func TestPrintParams_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "unknown paper", opts: Options{Paper: "legal"}},
		{name: "negative margin", opts: Options{Margin: -1}},
		{name: "margin wider than page", opts: Options{Margin: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := printParams(tt.opts)
			var exportErr *Error
			assert.True(t, errors.As(err, &exportErr))
		})
	}
}

func TestPDF_InvalidOptionsSkipBrowser(t *testing.T) {
	_, err := PDF(context.Background(), "<p>hi</p>", Options{Paper: "legal"})
	assert.Error(t, err)
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Message: "failed to print PDF", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to print PDF: boom", err.Error())
}

func findBrowser() string {
	if path := os.Getenv("CHROME_PATH"); path != "" {
		return path
	}
	for _, name := range []string{"chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

func TestPDF_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	browser := findBrowser()
	if browser == "" {
		t.Skip("no Chrome/Chromium found")
	}

	pdf, err := PDF(context.Background(), "<!DOCTYPE html><html><body><h1>Ann Lee</h1></body></html>",
		Options{ExecPath: browser, Timeout: 60 * time.Second})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
