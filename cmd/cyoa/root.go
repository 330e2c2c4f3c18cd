package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cyoa",
	Short: "cyoa is a branching interactive-fiction engine",
	Long:  `cyoa compiles a plain-text story script into a scene graph and runs reader sessions over it, either interactively or behind an HTTP API.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("source", "s", "story.txt", "Path to the story script")
}

// loadSource reads the story script named by the --source flag.
func loadSource(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("source")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read story script: %w", err)
	}
	return string(data), nil
}
