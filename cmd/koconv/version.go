package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/koconv"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of koconv",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("koconv version %s\n", strings.TrimSpace(koconv.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
