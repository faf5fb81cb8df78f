// Package export prints the rendered preview to PDF with a headless browser.
package export

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds a single PDF render.
const DefaultTimeout = 30 * time.Second

// Paper sizes in inches.
const (
	LetterWidth  = 8.5
	LetterHeight = 11.0
	A4Width      = 8.27
	A4Height     = 11.69
)

// Options controls PDF output.
type Options struct {
	Paper   string // "letter" or "a4"
	Margin  float64
	Timeout time.Duration
	Verbose bool
	// ExecPath overrides the browser binary chromedp looks up.
	ExecPath string
}

// Error wraps a failure to produce a PDF.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// printParams builds the PrintToPDF command for opts.
func printParams(opts Options) (*page.PrintToPDFParams, error) {
	width, height := LetterWidth, LetterHeight
	switch opts.Paper {
	case "", "letter":
	case "a4":
		width, height = A4Width, A4Height
	default:
		return nil, &Error{Message: fmt.Sprintf("unknown paper size %q", opts.Paper)}
	}
	margin := opts.Margin
	if margin < 0 || margin*2 >= width {
		return nil, &Error{Message: fmt.Sprintf("margin %.2f does not fit the page", margin)}
	}

	return page.PrintToPDF().
		WithPrintBackground(true).
		WithPaperWidth(width).
		WithPaperHeight(height).
		WithMarginTop(margin).
		WithMarginBottom(margin).
		WithMarginLeft(margin).
		WithMarginRight(margin), nil
}

// allocatorOptions returns the headless browser flags.
func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	flags := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.ExecPath != "" {
		flags = append(flags, chromedp.ExecPath(opts.ExecPath))
	}
	return flags
}

// PDF loads document into a headless browser and prints it.
// Requires Chrome/Chromium to be installed on the system.
func PDF(ctx context.Context, document string, opts Options) ([]byte, error) {
	params, err := printParams(opts)
	if err != nil {
		return nil, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Verbose {
		log.Printf("[export] Starting headless browser (%d bytes of HTML)", len(document))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocatorOptions(opts)...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, document).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = params.Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &Error{Message: "failed to print PDF", Cause: err}
	}

	if opts.Verbose {
		log.Printf("[export] Rendered PDF: %d bytes", len(pdf))
	}
	return pdf, nil
}
