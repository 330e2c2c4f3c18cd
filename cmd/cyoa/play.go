package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rockysnow7/cyoa"
	"github.com/rockysnow7/cyoa/internal/presentation/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a story in the terminal",
	Long:  `Loads the story script and runs a single interactive session, reading choices from stdin.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPlay(cmd); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command) error {
	source, err := loadSource(cmd)
	if err != nil {
		return err
	}

	eng, err := cyoa.New(source)
	if err != nil {
		return fmt.Errorf("failed to load story: %w", err)
	}

	ctx := context.Background()
	id, err := eng.Create(ctx)
	if err != nil {
		return err
	}

	renderer := tui.NewRenderer()
	reader := bufio.NewReader(os.Stdin)

	view, err := eng.Current(ctx, id)
	if err != nil {
		return err
	}

	for {
		fmt.Println(renderer.Narration(view.DisplayText))

		if view.GameOver {
			fmt.Println(renderer.GameOver())
			return nil
		}

		for i, choice := range view.Choices {
			fmt.Println(renderer.Choice(i+1, choice.DisplayText))
		}

		fmt.Print(renderer.Prompt())
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		input := strings.TrimSpace(line)
		if input == "exit" || input == "quit" {
			fmt.Println("Bye!")
			return nil
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(view.Choices) {
			fmt.Printf("Pick a number between 1 and %d.\n", len(view.Choices))
			continue
		}

		view, err = eng.Choose(ctx, id, view.Choices[n-1].ID)
		if err != nil {
			return err
		}
	}
}
