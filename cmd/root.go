// Package cmd wires the cobra command tree
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// configDefault is the embedded config/config.yaml written on first run
var configDefault string

var rootCmd = &cobra.Command{
	Use:   "crm",
	Short: "Second-degree LinkedIn CRM",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute(c string) {
	configDefault = c
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
