// Package cmd implements the paycli command tree.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "paycli",
	Short: "Submit checkout payments from the terminal",
	Long: `paycli drives the same payment client and session store the web
checkout uses. The backend base URL comes from CHECKOUT_API_URL.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(newPayCmd(), newRoutesCmd())
}
