package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/usvisa/datacheck/cmd/validate"
)

var rootCmd = &cobra.Command{
	Use:   "datacheck",
	Short: "Schema checks for ingested training datasets",
	Long:  `datacheck validates the training and testing datasets produced by ingestion against the schema definition before model training.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(validate.Command())
}
