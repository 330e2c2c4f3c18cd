package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rockysnow7/cyoa/internal/script"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a story script for consistency",
	Long:  `Parses the story script and reports syntax errors, missing or dangling scenes, and references to undeclared variables.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Story is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat reference-lint findings as fatal")
}

func runValidate(cmd *cobra.Command) error {
	source, err := loadSource(cmd)
	if err != nil {
		return err
	}

	st, err := script.Load(source)
	if err != nil {
		return err
	}

	findings := script.CheckReferences(st)
	for _, f := range findings {
		fmt.Printf("warning: %v\n", f)
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict && len(findings) > 0 {
		return fmt.Errorf("%d reference finding(s)", len(findings))
	}
	return nil
}
