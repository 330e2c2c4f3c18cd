package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rockysnow7/cyoa"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cyoa",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cyoa version %s\n", cyoa.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
