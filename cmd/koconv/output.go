package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/introspection"
	"github.com/fatih/color"

	"github.com/aretw0/koconv/pkg/convert"
)

// printResult renders one run, either as JSON state or as a colored summary.
func printResult(w io.Writer, c introspection.Introspectable, report *convert.Report, err error) {
	if jsonOutput {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if encErr := encoder.Encode(c.State()); encErr != nil {
			fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", encErr)
		}
		return
	}

	if report != nil {
		printSummary(w, report)
	}
	if err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Conversion failed: %v\n", err)
	}
}

func printSummary(w io.Writer, report *convert.Report) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	gray := color.New(color.FgHiBlack)

	bold := color.New(color.Bold, color.FgCyan)
	bold.Fprintf(w, "%s -> %s\n", report.Layout.SourceDir, report.Layout.ImplementationDir())

	for _, o := range report.Outcomes {
		switch o.Status {
		case convert.StatusWritten:
			green.Fprint(w, "  written  ")
		case convert.StatusFailed:
			red.Fprint(w, "  failed   ")
		case convert.StatusSkipped:
			yellow.Fprint(w, "  skipped  ")
		default:
			gray.Fprint(w, "  pending  ")
		}
		fmt.Fprintf(w, "%-25s %s\n", o.Branch, o.Path)
		if o.Err != nil {
			gray.Fprintf(w, "             %v\n", o.Err)
		}
	}
}

func printReportsJSON(reports []*convert.Report) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reports)
}
