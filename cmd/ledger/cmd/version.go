package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the ledger CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ledger version %s\n", version)
		fmt.Println("Broker activity statement import and position reconstruction")
		fmt.Println("https://github.com/rustyeddy/ledger")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
