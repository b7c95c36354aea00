// Package diagnostics runs every tool once against the live upstream API and
// reports whether each call succeeded.
package diagnostics

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bobmcallan/youtube138-mcp/internal/config"
	"github.com/bobmcallan/youtube138-mcp/internal/youtube"
)

// Process exit codes for the check command.
const (
	ExitOK     = 0
	ExitFailed = 1
)

// previewLimit is the number of response characters printed per case.
const previewLimit = 1000

// Invoker runs a tool invocation. Satisfied by *youtube.Dispatcher.
type Invoker interface {
	Invoke(ctx context.Context, name string, args map[string]any) (*youtube.Result, error)
}

// Case is one diagnostic tool invocation.
type Case struct {
	Title string
	Tool  string
	Args  map[string]any
}

// DefaultCases covers each registered tool once.
var DefaultCases = []Case{
	{Title: "Search - keyword: despacito", Tool: youtube.ToolSearch, Args: map[string]any{"q": "despacito", "hl": "en", "gl": "US"}},
	{Title: "Auto Complete - prefix: desp", Tool: youtube.ToolAutoComplete, Args: map[string]any{"q": "desp", "hl": "en", "gl": "US"}},
	{Title: "Home - recommendations", Tool: youtube.ToolHome, Args: map[string]any{"hl": "en", "gl": "US"}},
}

// CaseResult records the outcome of one case.
type CaseResult struct {
	Case   Case
	Passed bool
	Text   string
	Err    error
}

// Report summarises a check run.
type Report struct {
	Results []CaseResult
}

// Passed returns the number of successful cases.
func (r Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed {
			n++
		}
	}
	return n
}

// ExitCode returns ExitOK only when every case passed.
func (r Report) ExitCode() int {
	if len(r.Results) > 0 && r.Passed() == len(r.Results) {
		return ExitOK
	}
	return ExitFailed
}

// Checker runs diagnostic cases and prints a human-readable report.
type Checker struct {
	cfg     *config.Config
	invoker Invoker
	out     io.Writer
	delay   time.Duration
	cases   []Case
}

// NewChecker creates a checker for the configured credential and delay.
func NewChecker(cfg *config.Config, invoker Invoker, out io.Writer) *Checker {
	return &Checker{
		cfg:     cfg,
		invoker: invoker,
		out:     out,
		delay:   time.Duration(cfg.Check.DelayMS) * time.Millisecond,
		cases:   DefaultCases,
	}
}

// Run executes all cases and returns the process exit code.
// A missing credential prints setup help and fails before any call.
func (c *Checker) Run(ctx context.Context) int {
	fmt.Fprintln(c.out, "YouTube138 API check")
	fmt.Fprintln(c.out, rule())

	if !c.cfg.HasCredential() {
		fmt.Fprintln(c.out, "Error: RAPIDAPI_KEY environment variable is not set")
		fmt.Fprintln(c.out)
		fmt.Fprint(c.out, config.CredentialInstructions)
		return ExitFailed
	}

	fmt.Fprintf(c.out, "API key:  %s\n", maskKey(c.cfg.API.Key))
	fmt.Fprintf(c.out, "API host: %s\n", c.cfg.API.Host)

	report := c.run(ctx)
	c.printSummary(report)
	return report.ExitCode()
}

func (c *Checker) run(ctx context.Context) Report {
	var report Report
	for i, tc := range c.cases {
		if i > 0 && c.delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(c.delay):
			}
		}

		res := CaseResult{Case: tc}
		if ctx.Err() != nil {
			res.Err = ctx.Err()
		} else {
			result, err := c.invoker.Invoke(ctx, tc.Tool, tc.Args)
			if err != nil {
				res.Err = err
			} else {
				res.Passed = result.OK()
				res.Text, res.Err = result.Text()
			}
		}
		c.printResult(res)
		report.Results = append(report.Results, res)
	}
	return report
}

func (c *Checker) printResult(res CaseResult) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, rule())
	fmt.Fprintf(c.out, "Test: %s\n", res.Case.Title)
	fmt.Fprintln(c.out, rule())

	if res.Passed {
		fmt.Fprintln(c.out, "PASS")
		fmt.Fprintln(c.out, "\nResponse:")
		if preview, truncated := truncate(res.Text, previewLimit); truncated {
			fmt.Fprintln(c.out, preview)
			fmt.Fprintf(c.out, "\n... (truncated, showing first %d characters)\n", previewLimit)
		} else {
			fmt.Fprintln(c.out, res.Text)
		}
		return
	}

	fmt.Fprintln(c.out, "FAIL")
	if res.Err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", res.Err)
	}
	if res.Text != "" {
		fmt.Fprintf(c.out, "Details: %s\n", res.Text)
	}
}

// truncate cuts s to at most n runes so a multi-byte character is never split.
func truncate(s string, n int) (string, bool) {
	if utf8.RuneCountInString(s) <= n {
		return s, false
	}
	r := []rune(s)
	return string(r[:n]), true
}

func (c *Checker) printSummary(report Report) {
	total := len(report.Results)
	passed := report.Passed()

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, rule())
	fmt.Fprintln(c.out, "Summary")
	fmt.Fprintln(c.out, rule())
	fmt.Fprintf(c.out, "Total:  %d\nPassed: %d\nFailed: %d\n\n", total, passed, total-passed)

	for i, res := range report.Results {
		status := "FAIL"
		if res.Passed {
			status = "PASS"
		}
		fmt.Fprintf(c.out, "  %d. %-14s %s\n", i+1, res.Case.Tool, status)
	}
	fmt.Fprintln(c.out)

	if passed == total {
		fmt.Fprintln(c.out, "All checks passed")
	} else {
		fmt.Fprintln(c.out, "Some checks failed, see errors above")
	}
}

// maskKey shows at most the first 10 characters of the key.
func maskKey(key string) string {
	if len(key) > 10 {
		key = key[:10]
	}
	return key + "..."
}

func rule() string {
	return strings.Repeat("=", 80)
}
