package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/koconv/pkg/convert"
)

var (
	batchTarget string
)

var batchCmd = &cobra.Command{
	Use:   "batch <pattern>",
	Short: "Convert every version folder matching a glob",
	Long: `Convert every version folder matched by a glob pattern ('**' is supported).
A match may be the folder itself or its metadata.json. Folders without both
metadata.json and model/metadata.json are skipped. Unless --target is given
each implementation is named after its version folder with an "-impl" suffix.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jobs, err := convert.Discover(args[0], batchTarget)
		if err != nil {
			fatal("Failed to expand pattern", err)
		}
		if len(jobs) == 0 {
			fatal("Nothing to convert", fmt.Errorf("no version folders match %q", args[0]))
		}

		opts, err := settings.Options()
		if err != nil {
			fatal("Invalid settings", err)
		}
		opts = append(opts, convert.WithLogger(slog.Default()))

		reports, err := convert.RunBatch(cmd.Context(), jobs, opts...)
		if !jsonOutput {
			for _, r := range reports {
				printSummary(os.Stdout, r)
			}
		} else if encErr := printReportsJSON(reports); encErr != nil {
			fatal("Error encoding JSON", encErr)
		}

		fmt.Printf("Converted %d of %d version folders.\n", len(reports)-countFailed(reports), len(jobs))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func countFailed(reports []*convert.Report) int {
	n := 0
	for _, r := range reports {
		if len(r.Failed()) > 0 {
			n++
		}
	}
	return n
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchTarget, "target", "", "Implementation name for every match (default: <version folder>-impl)")
}
